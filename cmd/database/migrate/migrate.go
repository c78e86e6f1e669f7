package migration

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"lucky-tours-api/entities"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Package{}); err != nil {
		log.Fatalf("Error migrating package database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Payment{}); err != nil {
		log.Fatalf("Error migrating payment database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.PendingPayment{}); err != nil {
		log.Fatalf("Error migrating pending payment database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Message{}, &entities.MessageRecipient{}); err != nil {
		log.Fatalf("Error migrating message database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
