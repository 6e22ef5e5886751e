package main

import (
	"fmt"
	"log"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Seeds the local database with demo catalog and content data.
func main() {
	fmt.Println("Seeding database...")

	cfg := config.Load()

	db, err := database.Initialize(cfg.DatabaseDSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close(db)

	if err := seed(db); err != nil {
		log.Fatal("Failed to seed database:", err)
	}

	fmt.Println("Database seeded successfully!")
}

func seed(db *gorm.DB) error {
	categories := []models.Category{
		{Name: "Coffee", Slug: "coffee", Description: "Whole bean and ground coffee"},
		{Name: "Tea", Slug: "tea", Description: "Loose leaf and bagged tea"},
		{Name: "Accessories", Slug: "accessories", Description: "Brewing gear"},
	}
	for i := range categories {
		if err := db.Where("slug = ?", categories[i].Slug).
			FirstOrCreate(&categories[i]).Error; err != nil {
			return err
		}
	}

	products := []models.Product{
		{
			CategoryID:  categories[0].ID,
			Name:        "House Blend 250g",
			Slug:        "house-blend-250g",
			Description: "Medium roast, chocolate and hazelnut notes.",
			Price:       decimal.NewFromFloat(12.50),
			Stock:       120,
			IsActive:    true,
		},
		{
			CategoryID:  categories[0].ID,
			Name:        "Single Origin Ethiopia 250g",
			Slug:        "single-origin-ethiopia-250g",
			Description: "Light roast, floral and citrus.",
			Price:       decimal.NewFromFloat(16.00),
			SalePrice:   decimal.NewNullDecimal(decimal.NewFromFloat(13.50)),
			Stock:       60,
			IsActive:    true,
		},
		{
			CategoryID:  categories[1].ID,
			Name:        "Jasmine Green Tea 100g",
			Slug:        "jasmine-green-tea-100g",
			Description: "Scented green tea from Fujian.",
			Price:       decimal.NewFromFloat(8.90),
			Stock:       80,
			IsActive:    true,
		},
		{
			CategoryID:  categories[2].ID,
			Name:        "Ceramic Pour-Over Dripper",
			Slug:        "ceramic-pour-over-dripper",
			Description: "V-shaped dripper for 1-2 cups.",
			Price:       decimal.NewFromFloat(24.00),
			Stock:       35,
			IsActive:    true,
		},
	}
	for i := range products {
		if err := db.Where("slug = ?", products[i].Slug).
			FirstOrCreate(&products[i]).Error; err != nil {
			return err
		}
	}

	now := time.Now()
	promotions := []models.Promotion{
		{
			Title:           "Autumn sale",
			Description:     "15% off all single origin coffee",
			DiscountPercent: 15,
			StartsAt:        now.AddDate(0, 0, -7),
			EndsAt:          now.AddDate(0, 1, 0),
			IsActive:        true,
		},
	}
	for i := range promotions {
		if err := db.Where("title = ?", promotions[i].Title).
			FirstOrCreate(&promotions[i]).Error; err != nil {
			return err
		}
	}

	published := now.AddDate(0, 0, -3)
	posts := []models.Post{
		{
			Title:       "Brewing a better pour-over",
			Slug:        "brewing-a-better-pour-over",
			Excerpt:     "Grind size, water temperature, and patience.",
			Content:     "Start with a medium-fine grind and water just off the boil...",
			Published:   true,
			PublishedAt: &published,
		},
	}
	for i := range posts {
		if err := db.Where("slug = ?", posts[i].Slug).
			FirstOrCreate(&posts[i]).Error; err != nil {
			return err
		}
	}

	return nil
}
