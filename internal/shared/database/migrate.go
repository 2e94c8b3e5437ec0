package database

import (
	"caterly/internal/bookings"
	"caterly/internal/catalog"
	"caterly/internal/promotions"
	"caterly/internal/support"
	"caterly/internal/venues"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalog.CatalogItem{},
		&venues.Venue{},
		&bookings.Booking{},
		&promotions.Campaign{},
		&support.Ticket{},
	)
}
