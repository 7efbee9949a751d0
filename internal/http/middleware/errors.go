package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Om-Mishra7/URL-Shortner/internal/core"
	"github.com/Om-Mishra7/URL-Shortner/internal/logger"
)

// ErrNoRoute is reported for paths no handler serves.
var ErrNoRoute = errors.New("no route")

const msgInternal = "An error occurred"

var errorTable = []struct {
	target  error
	status  int
	message string
}{
	{core.ErrInvalidID, http.StatusBadRequest, "Invalid URL ID"},
	{core.ErrMissingURL, http.StatusBadRequest, "Missing required parameters: URL (This is the URL you want to shorten)"},
	{core.ErrInvalidExpiry, http.StatusBadRequest, "Invalid value for the parameter: seconds_to_expire, it should be a positive integer"},
	{core.ErrUnauthorized, http.StatusUnauthorized, "Invalid authorization token, request has been rejected"},
	{core.ErrNotFoundOrExpired, http.StatusNotFound, "URL ID not found, or URL expired"},
	{core.ErrNotFound, http.StatusNotFound, "URL ID not found"},
	{ErrNoRoute, http.StatusNotFound, "Not found"},
	{core.ErrRateLimited, http.StatusTooManyRequests, "Rate limit exceeded, please try again later"},
	{core.ErrStoreUnavailable, http.StatusServiceUnavailable, msgInternal + ": store unavailable"},
}

// detailError asks Errors to expose the cause in the message.
type detailError struct{ err error }

func (e *detailError) Error() string { return e.err.Error() }
func (e *detailError) Unwrap() error { return e.err }

// WithDetail marks err so the rendered message carries its full text.
// Only for operator-facing endpoints such as the health check.
func WithDetail(err error) error {
	if err == nil {
		return nil
	}
	return &detailError{err: err}
}

// Describe maps err to its HTTP status and client-facing message.
func Describe(err error) (int, string) {
	var de *detailError
	if errors.As(err, &de) {
		status, _ := Describe(de.err)
		return status, msgInternal + ": " + de.err.Error()
	}
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, msgInternal
}

// Errors renders the last error attached by a handler as the uniform
// {status, message, request_id} envelope.
func Errors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, msg := Describe(err)
		if status >= http.StatusInternalServerError {
			logger.Error().Err(err).Str("request_id", GetRequestID(c)).Msg("request failed")
		}
		c.JSON(status, gin.H{
			"status":     "error",
			"message":    msg,
			"request_id": GetRequestID(c),
		})
	}
}
