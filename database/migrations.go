package database

import (
	"log"

	"factionhub/models"

	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.UserProfile{},
		&models.FactionOverlay{},
		&models.LoreEntry{},
		&models.Member{},
		&models.GalleryItem{},
		&models.Clip{},
	)

	if err != nil {
		log.Printf("Error running migrations: %v", err)
		return err
	}

	log.Println("Migrations completed successfully")
	return nil
}
