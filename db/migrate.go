package db

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"household-services-api/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	if err := MigrateSchema(DB); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}

// MigrateSchema applies the schema to the given connection. It is separate
// from Migrate so tests can run it against their own database.
func MigrateSchema(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Provider{},
		&models.Booking{},
		&models.Review{},
		&models.Complaint{},
		&models.Inquiry{},
		&models.Service{},
		&models.Transaction{},
	)
	if err != nil {
		return err
	}

	// A provider can hold at most one active booking per date. The partial
	// unique index closes the check-then-act race between the friendly
	// conflict check and the insert.
	return db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_provider_date_active
		ON bookings (provider_id, booking_date)
		WHERE status IN ('pending', 'confirmed')
	`).Error
}
