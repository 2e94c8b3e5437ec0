// api/routes/router.go
package routes

import (
	"context"
	"net/http"
	"time"

	"caterly/internal/bookings"
	"caterly/internal/catalog"
	"caterly/internal/pricing"
	"caterly/internal/promotions"
	"caterly/internal/shared/config"
	"caterly/internal/shared/database"
	"caterly/internal/support"
	"caterly/internal/venues"
	"caterly/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Notifier is the slice of the notification service the routes inject
// into the domain services. May be nil when Kafka is disabled.
type Notifier interface {
	Publish(ctx context.Context, eventType string, payload map[string]interface{}) error
}

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	notifier Notifier

	// Services shared across route groups
	cacheService     cache.Service
	catalogService   catalog.Service
	promotionService promotions.Service
	pricingEngine    *pricing.Engine
	bookingRepo      bookings.Repository
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, notifier Notifier) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		notifier: notifier,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.pricingEngine = pricing.NewEngine(r.config.Pricing.TaxRate)
	if r.db.Redis != nil {
		r.cacheService = cache.NewService(r.db.GetRedisClient())
	}

	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Catalog and promotions come first so the booking wizard can
		// inject their services.
		r.setupCatalogRoutes(api)
		r.setupVenueRoutes(api)
		r.setupPromotionRoutes(api)
		r.setupBookingRoutes(api)
		r.setupSupportRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "caterly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "caterly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

func (r *Router) setupCatalogRoutes(rg *gin.RouterGroup) {
	catalogRepo := catalog.NewRepository(r.db.GetPostgreSQL())
	r.catalogService = catalog.NewService(catalogRepo, r.cacheService, r.config.Redis.CacheTTL)
	catalogController := catalog.NewController(r.catalogService)

	catalog.SetupCatalogRoutes(rg, catalogController)
}

func (r *Router) setupVenueRoutes(rg *gin.RouterGroup) {
	venueRepo := venues.NewRepository(r.db.GetPostgreSQL())
	venueService := venues.NewService(venueRepo)
	venueController := venues.NewController(venueService)

	venues.SetupVenueRoutes(rg, venueController)
}

func (r *Router) setupPromotionRoutes(rg *gin.RouterGroup) {
	promotionRepo := promotions.NewRepository(r.db.GetPostgreSQL())
	r.promotionService = promotions.NewService(promotionRepo)
	promotionController := promotions.NewController(r.promotionService)

	promotions.SetupPromotionRoutes(rg, promotionController)
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	r.bookingRepo = bookings.NewRepository(r.db.GetPostgreSQL())
	sessionStore := bookings.NewSessionStore(r.cacheService, r.config.Redis.WizardSessionTTL)

	bookingService := bookings.NewService(
		r.bookingRepo,
		sessionStore,
		r.catalogService,
		r.promotionService,
		r.notifier,
		r.pricingEngine,
		r.config.Pricing.Currency,
		r.config.Redis.WizardSessionTTL,
	)
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
}

func (r *Router) setupSupportRoutes(rg *gin.RouterGroup) {
	// Booking routes are wired first, so the repository can back the
	// ticket booking-ref check.
	supportRepo := support.NewRepository(r.db.GetPostgreSQL())
	supportService := support.NewService(supportRepo, r.notifier, r.bookingRepo)
	supportController := support.NewController(supportService)

	support.SetupSupportRoutes(rg, supportController)
}
