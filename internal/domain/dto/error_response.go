package dto

import "time"

// ErrorResponse is the standard error body returned by every endpoint.
//
// Fields:
//   - Message: user-facing summary of what went wrong.
//   - ErrorDetails: underlying error text, omitted when empty.
//   - Timestamp: moment the error response was built (UTC).
type ErrorResponse struct {
	Message      string    `json:"message" example:"failed to fetch prices"`
	ErrorDetails string    `json:"error,omitempty" example:"upstream open-close GOOG@2025-09-02: status 503"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface so the response can travel through c.Error().
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse with the current UTC timestamp.
// err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now().UTC()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
