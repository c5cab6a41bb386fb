package db

import (
	"fmt"
	"log"

	"servicehub/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Service{},
		&models.Listing{},
		&models.Request{},
		&models.Quote{},
		&models.Booking{},
		&models.Review{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
