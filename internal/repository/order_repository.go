package repository

import (
	"errors"
	"fmt"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Place(order *models.Order, lines []models.OrderLine) error
	GetByID(id uint) (*models.Order, error)
	List(status string, page, limit int) ([]models.Order, int64, error)
	UpdateStatus(id uint, status string) (*models.Order, error)
	CountByStatus() (map[string]int64, error)
	Revenue() (decimal.Decimal, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Place runs the whole checkout in one transaction: resolve each line's
// unit price from the current catalog, insert the order header with the
// computed total, insert the priced line items, and decrement stock.
// Any failure rolls the whole thing back.
func (r *orderRepository) Place(order *models.Order, lines []models.OrderLine) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(lines))

		// Single pass: the price used for the running total is the same
		// value written into the line item.
		for _, line := range lines {
			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: id %d", models.ErrProductNotFound, line.ProductID)
				}
				return err
			}
			// Deactivated products are hidden from the storefront and
			// must not be purchasable either.
			if !product.IsActive {
				return fmt.Errorf("%w: id %d", models.ErrProductNotFound, line.ProductID)
			}

			unit := product.EffectivePrice()
			lineTotal := unit.Mul(decimal.NewFromInt(int64(line.Quantity)))
			total = total.Add(lineTotal)

			items = append(items, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				Price:       unit,
				Total:       lineTotal,
			})
		}

		order.TotalAmount = total
		order.Status = string(models.OrderPending)
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		// Conditional decrement: zero rows affected means the guard
		// failed and the product would have gone negative.
		for _, line := range lines {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", line.ProductID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: product %d", models.ErrInsufficientStock, line.ProductID)
			}
		}

		order.Items = items
		return nil
	})
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(status string, page, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.Model(&models.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Items").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepository) UpdateStatus(id uint, status string) (*models.Order, error) {
	order, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	order.Status = status
	if err := r.db.Model(order).Update("status", status).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// Revenue sums totals of every order that was not cancelled.
func (r *orderRepository) Revenue() (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("status <> ?", string(models.OrderCancelled)).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}
