package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondValidationErrors reports field-level validation failures without
// discarding state. Responds 422 and echoes the current data back so
// clients keep what was entered and re-render with the errors.
func RespondValidationErrors(c *gin.Context, message string, data interface{}, fieldErrors []FieldError) {
	RespondJSON(c, "error", http.StatusUnprocessableEntity, message, data, fieldErrors)
}
