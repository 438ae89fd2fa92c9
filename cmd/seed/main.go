package main

import (
	"log"
	"os"

	"helpdesk-rag-be/internal/model"
	"helpdesk-rag-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	seedProducts(db)

	log.Println("Success: Seeding completed.")
}

func seedProducts(db *gorm.DB) {
	products := []model.Product{
		{
			Name:        "Standard Plan",
			Description: "Monthly helpdesk access with up to 1,000 questions",
			Price:       49.00,
			Stock:       9999,
			Attributes:  datatypes.JSON([]byte(`{"questionQuota": 1000, "period": "monthly"}`)),
		},
		{
			Name:        "Pro Plan",
			Description: "Monthly helpdesk access with up to 10,000 questions",
			Price:       199.00,
			Stock:       9999,
			Attributes:  datatypes.JSON([]byte(`{"questionQuota": 10000, "period": "monthly"}`)),
		},
		{
			Name:        "Question Pack",
			Description: "One-time pack of 500 extra questions",
			Price:       19.00,
			Stock:       9999,
			Attributes:  datatypes.JSON([]byte(`{"questionQuota": 500, "period": "once"}`)),
		},
	}

	for _, p := range products {
		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&p)
		if result.Error != nil {
			log.Printf("Warn: Failed to seed product %q: %v", p.Name, result.Error)
			continue
		}
		if result.RowsAffected > 0 {
			log.Printf("Seeded product: %s", p.Name)
		}
	}
}
