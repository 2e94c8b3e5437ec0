package catalog

import (
	"caterly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCatalogRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - anyone can browse the catalog
	publicCatalog := router.Group("/catalog")
	{
		publicCatalog.GET("", controller.ListItems)        // GET /api/v1/catalog - Browse catalog
		publicCatalog.GET("/:itemId", controller.GetItem)  // GET /api/v1/catalog/:itemId - Item details
	}

	// Admin routes - only admins manage catalog items
	adminCatalog := router.Group("/admin/catalog")
	adminCatalog.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminCatalog.POST("", controller.CreateItem)          // POST /api/v1/admin/catalog - Create item
		adminCatalog.PUT("/:itemId", controller.UpdateItem)   // PUT /api/v1/admin/catalog/:itemId - Update item
		adminCatalog.DELETE("/:itemId", controller.DeleteItem) // DELETE /api/v1/admin/catalog/:itemId - Delete item
		adminCatalog.GET("", controller.ListItems)            // GET /api/v1/admin/catalog - Admin browse
	}
}
