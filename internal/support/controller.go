package support

import (
	"errors"
	"net/http"

	"caterly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	CreateTicket(c *gin.Context)
	GetTicket(c *gin.Context)
	ListTickets(c *gin.Context)
	ResolveTicket(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	// Attach the user when the request carried a valid token
	var userID *uuid.UUID
	if raw, exists := c.Get("user_id"); exists {
		if parsed, err := uuid.Parse(raw.(string)); err == nil {
			userID = &parsed
		}
	}

	ticket, err := ctrl.service.CreateTicket(c.Request.Context(), userID, req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrUnknownBookingRef) {
			statusCode = http.StatusUnprocessableEntity
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Support ticket created", ticket, nil)
}

func (ctrl *controller) GetTicket(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("ticketId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID", nil, err.Error())
		return
	}

	ticket, err := ctrl.service.GetTicket(c.Request.Context(), ticketID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrTicketNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Ticket retrieved successfully", ticket, nil)
}

func (ctrl *controller) ListTickets(c *gin.Context) {
	var query TicketListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	tickets, err := ctrl.service.ListTickets(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Tickets retrieved successfully", tickets, nil)
}

func (ctrl *controller) ResolveTicket(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("ticketId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID", nil, err.Error())
		return
	}

	var req ResolveTicketRequest
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

	ticket, err := ctrl.service.ResolveTicket(c.Request.Context(), ticketID, adminUUID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		switch {
		case errors.Is(err, ErrTicketNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, ErrTicketNotOpen):
			statusCode = http.StatusConflict
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Ticket resolved successfully", ticket, nil)
}
