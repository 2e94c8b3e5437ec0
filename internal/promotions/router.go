package promotions

import (
	"caterly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPromotionRoutes(router *gin.RouterGroup, controller Controller) {
	// Public route for pre-submit code checks
	public := router.Group("/promotions")
	{
		public.POST("/validate", controller.ValidateCode) // POST /api/v1/promotions/validate - Check a code
	}

	// Admin routes manage campaigns
	admin := router.Group("/admin/promotions")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateCampaign)                // POST /api/v1/admin/promotions - Create campaign
		admin.GET("", controller.ListCampaigns)                  // GET /api/v1/admin/promotions - List campaigns
		admin.GET("/:campaignId", controller.GetCampaign)        // GET /api/v1/admin/promotions/:campaignId
		admin.PUT("/:campaignId", controller.UpdateCampaign)     // PUT /api/v1/admin/promotions/:campaignId
		admin.DELETE("/:campaignId", controller.DeleteCampaign)  // DELETE /api/v1/admin/promotions/:campaignId
	}
}
