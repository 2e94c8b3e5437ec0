package bookings

import (
	"errors"
	"net/http"

	"caterly/internal/catalog"
	"caterly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	StartWizard(c *gin.Context)
	GetWizard(c *gin.Context)
	SetEventDetails(c *gin.Context)
	SetServiceDetails(c *gin.Context)
	SetContactInfo(c *gin.Context)
	AdvanceWizard(c *gin.Context)
	RetreatWizard(c *gin.Context)
	SubmitWizard(c *gin.Context)
	AbandonWizard(c *gin.Context)

	GetBooking(c *gin.Context)
	GetUserBookings(c *gin.Context)
	CancelBooking(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) StartWizard(c *gin.Context) {
	var req StartWizardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	session, err := ctrl.service.StartWizard(c.Request.Context(), userID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, catalog.ErrItemNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Wizard session started", session, nil)
}

func (ctrl *controller) GetWizard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	session, err := ctrl.service.GetWizard(c.Request.Context(), userID, c.Param("sessionId"))
	if err != nil {
		respondSessionError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Wizard session retrieved", session, nil)
}

func (ctrl *controller) SetEventDetails(c *gin.Context) {
	var payload EventDetailsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	session, err := ctrl.service.SetEventDetails(c.Request.Context(), userID, c.Param("sessionId"), payload)
	if err != nil {
		respondSessionError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event details saved", session, nil)
}

func (ctrl *controller) SetServiceDetails(c *gin.Context) {
	var payload ServiceDetailsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	session, fieldErrs, err := ctrl.service.SetServiceDetails(c.Request.Context(), userID, c.Param("sessionId"), payload)
	if err != nil {
		respondSessionError(c, err)
		return
	}
	if len(fieldErrs) > 0 {
		response.RespondValidationErrors(c, "Service details saved with warnings", session, fieldErrs)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Service details saved", session, nil)
}

func (ctrl *controller) SetContactInfo(c *gin.Context) {
	var payload ContactInfoPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	session, err := ctrl.service.SetContactInfo(c.Request.Context(), userID, c.Param("sessionId"), payload)
	if err != nil {
		respondSessionError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Contact info saved", session, nil)
}

func (ctrl *controller) AdvanceWizard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	session, fieldErrs, err := ctrl.service.Advance(c.Request.Context(), userID, c.Param("sessionId"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	if len(fieldErrs) > 0 {
		response.RespondValidationErrors(c, "Current step is incomplete", session, fieldErrs)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Moved to next step", session, nil)
}

func (ctrl *controller) RetreatWizard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	session, err := ctrl.service.Retreat(c.Request.Context(), userID, c.Param("sessionId"))
	if err != nil {
		respondSessionError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Moved to previous step", session, nil)
}

func (ctrl *controller) SubmitWizard(c *gin.Context) {
	var req SubmitWizardRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
			return
		}
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	booking, fieldErrs, err := ctrl.service.Submit(c.Request.Context(), userID, c.Param("sessionId"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidationFailed):
			response.RespondValidationErrors(c, "Booking request is incomplete", nil, fieldErrs)
		case errors.Is(err, ErrSubmitInProgress):
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		default:
			respondSessionError(c, err)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Booking confirmed", booking, nil)
}

func (ctrl *controller) AbandonWizard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := ctrl.service.AbandonWizard(c.Request.Context(), userID, c.Param("sessionId")); err != nil {
		respondSessionError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Wizard session abandoned", nil, nil)
}

func (ctrl *controller) GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid booking ID", nil, err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	booking, err := ctrl.service.GetBooking(c.Request.Context(), userID, bookingID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrBookingNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

func (ctrl *controller) GetUserBookings(c *gin.Context) {
	var query BookingListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	bookings, err := ctrl.service.GetUserBookings(c.Request.Context(), userID, query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bookings retrieved successfully", bookings, nil)
}

func (ctrl *controller) CancelBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid booking ID", nil, err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	booking, err := ctrl.service.CancelBooking(c.Request.Context(), userID, bookingID)
	if err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrBookingNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking cancelled successfully", booking, nil)
}

// currentUserID pulls the authenticated user out of the gin context and
// writes the error response itself when authentication state is missing.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(raw.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid user ID format", nil, nil)
		return uuid.Nil, false
	}

	return userID, true
}

func respondSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, ErrSessionOwnership):
		response.RespondJSON(c, "error", http.StatusForbidden, err.Error(), nil, nil)
	default:
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
	}
}
