package support

import (
	"caterly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupSupportRoutes(router *gin.RouterGroup, controller Controller) {
	// Ticket creation is public so unauthenticated visitors can reach us
	public := router.Group("/support")
	{
		public.POST("/tickets", controller.CreateTicket) // POST /api/v1/support/tickets - Open a ticket
	}

	// Admin routes work the queue
	admin := router.Group("/admin/support")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("/tickets", controller.ListTickets)                    // GET /api/v1/admin/support/tickets
		admin.GET("/tickets/:ticketId", controller.GetTicket)            // GET /api/v1/admin/support/tickets/:ticketId
		admin.POST("/tickets/:ticketId/resolve", controller.ResolveTicket) // POST resolve with a note
	}
}
