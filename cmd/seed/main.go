package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"caterly/internal/catalog"
	"caterly/internal/promotions"
	"caterly/internal/shared/config"
	"caterly/internal/shared/database"
	"caterly/internal/venues"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("Starting Caterly database seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\nCleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("Database cleaned successfully")

	fmt.Println("\nSeeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("Database seeded successfully")

	fmt.Println("\nSeeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"support_tickets",
		"bookings",
		"promotion_campaigns",
		"catalog_items",
		"venues",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll populates the catalog, venues, and a sample promotion
func (s *Seeder) SeedAll() error {
	adminID := uuid.New()

	if err := s.seedCatalogItems(adminID); err != nil {
		return err
	}
	if err := s.seedVenues(adminID); err != nil {
		return err
	}
	if err := s.seedPromotions(adminID); err != nil {
		return err
	}
	return nil
}

func (s *Seeder) seedCatalogItems(adminID uuid.UUID) error {
	ctx := context.Background()
	repo := catalog.NewRepository(s.db.GetPostgreSQL())

	items := []catalog.CatalogItem{
		{
			Name:           "Classic Wedding Buffet",
			Description:    "Three-course buffet with carving station and dessert table",
			CatererName:    "Silver Spoon Catering",
			Cuisine:        "american",
			PricePerPerson: decimal.NewFromInt(45),
			ServiceFeePct:  decimal.NewFromInt(10),
			DeliveryFee:    decimal.NewFromInt(50),
			SetupFee:       decimal.Zero,
			DepositPct:     decimal.NewFromInt(30),
			MinimumGuests:  25,
			MaximumGuests:  400,
			Status:         catalog.ItemStatusPublished,
			CreatedBy:      adminID,
		},
		{
			Name:           "Taco Fiesta Station",
			Description:    "Build-your-own taco bar with fresh salsas and aguas frescas",
			CatererName:    "Casa Verde Events",
			Cuisine:        "mexican",
			PricePerPerson: decimal.NewFromFloat(28.50),
			ServiceFeePct:  decimal.NewFromInt(12),
			DeliveryFee:    decimal.NewFromInt(75),
			SetupFee:       decimal.NewFromInt(100),
			DepositPct:     decimal.NewFromInt(25),
			MinimumGuests:  20,
			MaximumGuests:  250,
			Status:         catalog.ItemStatusPublished,
			CreatedBy:      adminID,
		},
		{
			Name:           "Corporate Lunch Boxes",
			Description:    "Individually packed lunches with vegetarian and vegan options",
			CatererName:    "Midtown Kitchen Co",
			Cuisine:        "mediterranean",
			PricePerPerson: decimal.NewFromFloat(18.75),
			ServiceFeePct:  decimal.NewFromInt(8),
			DeliveryFee:    decimal.NewFromInt(35),
			SetupFee:       decimal.Zero,
			DepositPct:     decimal.NewFromInt(20),
			MinimumGuests:  10,
			MaximumGuests:  500,
			Status:         catalog.ItemStatusPublished,
			CreatedBy:      adminID,
		},
		{
			Name:           "Omakase Experience",
			Description:    "Chef-attended sushi service, still finalizing the menu",
			CatererName:    "Kaiseki House",
			Cuisine:        "japanese",
			PricePerPerson: decimal.NewFromInt(95),
			ServiceFeePct:  decimal.NewFromInt(15),
			DeliveryFee:    decimal.Zero,
			SetupFee:       decimal.NewFromInt(250),
			DepositPct:     decimal.NewFromInt(50),
			MinimumGuests:  8,
			MaximumGuests:  40,
			Status:         catalog.ItemStatusDraft,
			CreatedBy:      adminID,
		},
	}

	for i := range items {
		if err := repo.Create(ctx, &items[i]); err != nil {
			return fmt.Errorf("failed to seed catalog item %q: %w", items[i].Name, err)
		}
		fmt.Printf("  Seeded catalog item: %s\n", items[i].Name)
	}
	return nil
}

func (s *Seeder) seedVenues(adminID uuid.UUID) error {
	ctx := context.Background()
	repo := venues.NewRepository(s.db.GetPostgreSQL())

	seedVenues := []venues.Venue{
		{
			Name:        "The Grand Atrium",
			Description: "Downtown ballroom with floor-to-ceiling windows",
			Address:     "100 Main Street",
			City:        "Austin",
			State:       "TX",
			MinCapacity: 50,
			MaxCapacity: 350,
			HourlyRate:  decimal.NewFromInt(450),
			Amenities:   "stage,av_system,parking,catering_kitchen",
			Status:      venues.VenueStatusPublished,
			CreatedBy:   adminID,
		},
		{
			Name:        "Riverside Garden Pavilion",
			Description: "Open-air pavilion along the river walk",
			Address:     "12 Riverbend Drive",
			City:        "Austin",
			State:       "TX",
			MinCapacity: 20,
			MaxCapacity: 150,
			HourlyRate:  decimal.NewFromInt(225),
			Amenities:   "outdoor,string_lights,parking",
			Status:      venues.VenueStatusPublished,
			CreatedBy:   adminID,
		},
	}

	for i := range seedVenues {
		if err := repo.Create(ctx, &seedVenues[i]); err != nil {
			return fmt.Errorf("failed to seed venue %q: %w", seedVenues[i].Name, err)
		}
		fmt.Printf("  Seeded venue: %s\n", seedVenues[i].Name)
	}
	return nil
}

func (s *Seeder) seedPromotions(adminID uuid.UUID) error {
	ctx := context.Background()
	repo := promotions.NewRepository(s.db.GetPostgreSQL())

	now := time.Now()
	campaigns := []promotions.Campaign{
		{
			Code:           "WELCOME10",
			Description:    "10% off your first booking",
			PercentOff:     decimal.NewFromInt(10),
			MinOrderTotal:  decimal.NewFromInt(500),
			StartsAt:       now.AddDate(0, -1, 0),
			EndsAt:         now.AddDate(1, 0, 0),
			MaxRedemptions: 0,
			Active:         true,
			CreatedBy:      adminID,
		},
		{
			Code:           "SUMMER25",
			Description:    "25% off summer events, first 100 bookings",
			PercentOff:     decimal.NewFromInt(25),
			MinOrderTotal:  decimal.NewFromInt(1000),
			StartsAt:       now.AddDate(0, -2, 0),
			EndsAt:         now.AddDate(0, 3, 0),
			MaxRedemptions: 100,
			Active:         true,
			CreatedBy:      adminID,
		},
	}

	for i := range campaigns {
		if err := repo.Create(ctx, &campaigns[i]); err != nil {
			return fmt.Errorf("failed to seed campaign %q: %w", campaigns[i].Code, err)
		}
		fmt.Printf("  Seeded promotion: %s\n", campaigns[i].Code)
	}
	return nil
}
