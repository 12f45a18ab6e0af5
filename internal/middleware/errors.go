package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockcharts/internal/domain/dto"
	"github.com/guttosm/stockcharts/internal/domain/models"
	"github.com/guttosm/stockcharts/internal/logger"
)

// StatusFor maps a domain error to the HTTP status returned to clients.
//
//   - *models.UnknownTickerError -> 404 Not Found
//   - *models.ValidationError    -> 400 Bad Request
//   - *models.UpstreamError      -> 502 Bad Gateway
//   - anything else              -> 500 Internal Server Error
func StatusFor(err error) int {
	var (
		unknown    *models.UnknownTickerError
		validation *models.ValidationError
		upstream   *models.UpstreamError
	)
	switch {
	case errors.As(err, &unknown):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// AbortWithError logs err with the request-scoped logger and aborts the
// request with a standardized JSON error body.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	logger.FromContext(c.Request.Context()).Error().
		Err(err).
		Int("status", status).
		Str("path", c.Request.URL.Path).
		Msg(message)
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}

// ErrorHandler turns errors attached with c.Error() into a JSON response when
// the handler did not write one itself. The status comes from StatusFor.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	err := c.Errors.Last().Err
	AbortWithError(c, StatusFor(err), "request failed", err)
}
