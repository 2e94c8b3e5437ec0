package response

type StandardApiResponse struct {
	Status     string      `json:"status"`           // "success" or "error"
	StatusCode int         `json:"status_code"`      // HTTP status code
	Message    string      `json:"message"`          // Human-readable message
	Data       interface{} `json:"data,omitempty"`   // Payload for success
	Errors     interface{} `json:"errors,omitempty"` // Validation or error details
}

// FieldError describes a single invalid form field, keyed so clients
// can render the message next to the offending input.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
