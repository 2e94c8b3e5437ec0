package bookings

import (
	"caterly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(router *gin.RouterGroup, controller Controller) {
	// All booking routes require an authenticated user
	wizard := router.Group("/bookings/wizard")
	wizard.Use(middleware.JWTAuth())
	{
		wizard.POST("", controller.StartWizard)                               // POST /api/v1/bookings/wizard - Open a session
		wizard.GET("/:sessionId", controller.GetWizard)                       // GET /api/v1/bookings/wizard/:sessionId - Session state
		wizard.PUT("/:sessionId/event-details", controller.SetEventDetails)   // PUT step 1 fields
		wizard.PUT("/:sessionId/service-details", controller.SetServiceDetails) // PUT step 2 fields
		wizard.PUT("/:sessionId/contact-info", controller.SetContactInfo)     // PUT step 3 fields
		wizard.POST("/:sessionId/next", controller.AdvanceWizard)             // POST advance (validated)
		wizard.POST("/:sessionId/back", controller.RetreatWizard)             // POST retreat (always allowed)
		wizard.POST("/:sessionId/submit", controller.SubmitWizard)            // POST finalize into a booking
		wizard.DELETE("/:sessionId", controller.AbandonWizard)                // DELETE abandon the draft
	}

	bookings := router.Group("/bookings")
	bookings.Use(middleware.JWTAuth())
	{
		bookings.GET("", controller.GetUserBookings)                 // GET /api/v1/bookings - Booking history
		bookings.GET("/:bookingId", controller.GetBooking)           // GET /api/v1/bookings/:bookingId - Booking details
		bookings.DELETE("/:bookingId", controller.CancelBooking)     // DELETE /api/v1/bookings/:bookingId - Cancel
	}
}
