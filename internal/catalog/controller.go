package catalog

import (
	"errors"
	"net/http"

	"caterly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	CreateItem(c *gin.Context)
	GetItem(c *gin.Context)
	UpdateItem(c *gin.Context)
	DeleteItem(c *gin.Context)
	ListItems(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateItem(c *gin.Context) {
	var req CreateCatalogItemRequest
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

	item, err := ctrl.service.CreateItem(c.Request.Context(), adminUUID, req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Catalog item created successfully", item, nil)
}

func (ctrl *controller) GetItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid catalog item ID", nil, err.Error())
		return
	}

	item, err := ctrl.service.GetItem(c.Request.Context(), itemID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrItemNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Catalog item retrieved successfully", item, nil)
}

func (ctrl *controller) UpdateItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid catalog item ID", nil, err.Error())
		return
	}

	var req UpdateCatalogItemRequest
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

	item, err := ctrl.service.UpdateItem(c.Request.Context(), itemID, adminUUID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrItemNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Catalog item updated successfully", item, nil)
}

func (ctrl *controller) DeleteItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid catalog item ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteItem(c.Request.Context(), itemID); err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrItemNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Catalog item deleted successfully", nil, nil)
}

func (ctrl *controller) ListItems(c *gin.Context) {
	var query CatalogListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	items, err := ctrl.service.ListItems(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Catalog items retrieved successfully", items, nil)
}
