package promotions

import (
	"errors"
	"net/http"

	"caterly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	CreateCampaign(c *gin.Context)
	GetCampaign(c *gin.Context)
	UpdateCampaign(c *gin.Context)
	DeleteCampaign(c *gin.Context)
	ListCampaigns(c *gin.Context)
	ValidateCode(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateCampaign(c *gin.Context) {
	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	adminID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Admin not authenticated", nil, nil)
		return
	}

	adminUUID, err := uuid.Parse(adminID.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid admin ID format", nil, nil)
		return
	}

	campaign, err := ctrl.service.CreateCampaign(c.Request.Context(), adminUUID, req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Campaign created successfully", campaign, nil)
}

func (ctrl *controller) GetCampaign(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("campaignId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid campaign ID", nil, err.Error())
		return
	}

	campaign, err := ctrl.service.GetCampaign(c.Request.Context(), campaignID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrCampaignNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Campaign retrieved successfully", campaign, nil)
}

func (ctrl *controller) UpdateCampaign(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("campaignId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid campaign ID", nil, err.Error())
		return
	}

	var req UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	adminID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Admin not authenticated", nil, nil)
		return
	}

	adminUUID, err := uuid.Parse(adminID.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid admin ID format", nil, nil)
		return
	}

	campaign, err := ctrl.service.UpdateCampaign(c.Request.Context(), campaignID, adminUUID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrCampaignNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Campaign updated successfully", campaign, nil)
}

func (ctrl *controller) DeleteCampaign(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("campaignId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid campaign ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteCampaign(c.Request.Context(), campaignID); err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrCampaignNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Campaign deleted successfully", nil, nil)
}

func (ctrl *controller) ListCampaigns(c *gin.Context) {
	campaigns, err := ctrl.service.ListCampaigns(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Campaigns retrieved successfully", campaigns, nil)
}

func (ctrl *controller) ValidateCode(c *gin.Context) {
	var req ValidateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	result, err := ctrl.service.ValidateCode(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Promotion code checked", result, nil)
}
