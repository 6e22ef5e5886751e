package services

import (
	"fmt"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repository"
)

type ContactService interface {
	Submit(message *models.ContactMessage) error
	List(page, limit int) ([]models.ContactMessage, int64, error)
	MarkRead(id uint) (*models.ContactMessage, error)
}

type contactService struct {
	contactRepo repository.ContactRepository
}

func NewContactService(contactRepo repository.ContactRepository) ContactService {
	return &contactService{contactRepo: contactRepo}
}

func (s *contactService) Submit(message *models.ContactMessage) error {
	if strings.TrimSpace(message.Name) == "" {
		return fmt.Errorf("%w: name is required", models.ErrInvalidInput)
	}
	if strings.TrimSpace(message.Message) == "" {
		return fmt.Errorf("%w: message is required", models.ErrInvalidInput)
	}
	return s.contactRepo.Create(message)
}

func (s *contactService) List(page, limit int) ([]models.ContactMessage, int64, error) {
	return s.contactRepo.List(page, limit)
}

func (s *contactService) MarkRead(id uint) (*models.ContactMessage, error) {
	return s.contactRepo.MarkRead(id)
}
