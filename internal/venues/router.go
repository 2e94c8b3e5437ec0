package venues

import (
	"caterly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupVenueRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - anyone can browse venues
	publicVenues := router.Group("/venues")
	{
		publicVenues.GET("", controller.ListVenues)         // GET /api/v1/venues - Browse venues
		publicVenues.GET("/:venueId", controller.GetVenue)  // GET /api/v1/venues/:venueId - Venue details
	}

	// Admin routes - only admins manage venues
	adminVenues := router.Group("/admin/venues")
	adminVenues.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminVenues.POST("", controller.CreateVenue)           // POST /api/v1/admin/venues - Create venue
		adminVenues.PUT("/:venueId", controller.UpdateVenue)   // PUT /api/v1/admin/venues/:venueId - Update venue
		adminVenues.DELETE("/:venueId", controller.DeleteVenue) // DELETE /api/v1/admin/venues/:venueId - Delete venue
	}
}
