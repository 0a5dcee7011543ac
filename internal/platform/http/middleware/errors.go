// Package middleware provides the gin middleware shared by every route:
// error translation, panic recovery, request ids and access logging.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"emergy_api/internal/platform/validation"
	"emergy_api/internal/shared/apperr"
)

// TimestampLayout renders error timestamps as dd-MM-yyyy'T'HH:mm:ss'Z' in UTC.
const TimestampLayout = "02-01-2006T15:04:05Z"

const (
	titleNotFound   = "Resource not found"
	titleIntegrity  = "Resource data integrity violation"
	titleBadJSON    = "Error reading JSON"
	titleBadParam   = "Invalid parameter"
	titleValidation = "Validation error"
	titleInternal   = "Internal server error"

	msgBadJSON    = "Invalid data format. Check date fields or numeric types."
	msgValidation = "Please check the fields below"
	msgInternal   = "An unexpected error occurred on the server."
)

var now = time.Now

// ErrorBody is the JSON body of every non-2xx response.
type ErrorBody struct {
	Timestamp string                  `json:"timestamp"`
	Status    int                     `json:"status"`
	Error     string                  `json:"error"`
	Message   string                  `json:"message"`
	Path      string                  `json:"path"`
	Errors    []validation.FieldError `json:"errors,omitempty"`
}

func newBody(c *gin.Context, status int, title, message string) ErrorBody {
	return ErrorBody{
		Timestamp: now().UTC().Format(TimestampLayout),
		Status:    status,
		Error:     title,
		Message:   message,
		Path:      c.Request.URL.Path,
	}
}

// ErrorHandler renders the last error attached with c.Error once the handler
// chain has returned. Nothing is written if the handler already responded.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		ginErr := c.Errors.Last()
		body := translate(c, ginErr)

		attrs := []any{"status", body.Status, "path", body.Path, "request_id", RequestIDFrom(c), "error", ginErr.Err}
		if body.Status >= http.StatusInternalServerError {
			slog.Error("request failed", attrs...)
		} else {
			slog.Warn("request rejected", attrs...)
		}
		c.AbortWithStatusJSON(body.Status, body)
	}
}

func translate(c *gin.Context, ginErr *gin.Error) ErrorBody {
	err := ginErr.Err

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		body := newBody(c, http.StatusUnprocessableEntity, titleValidation, msgValidation)
		body.Errors = validation.Fields(verrs)
		return body
	}
	if ginErr.IsType(gin.ErrorTypeBind) {
		return newBody(c, http.StatusBadRequest, titleBadJSON, msgBadJSON)
	}

	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		return newBody(c, http.StatusInternalServerError, titleInternal, msgInternal)
	}
	switch appErr.Kind {
	case apperr.KindNotFound:
		return newBody(c, http.StatusNotFound, titleNotFound, appErr.Message)
	case apperr.KindConflict, apperr.KindIntegrity:
		return newBody(c, http.StatusConflict, titleIntegrity, appErr.Message)
	case apperr.KindMalformed:
		return newBody(c, http.StatusBadRequest, titleBadParam, appErr.Message)
	case apperr.KindValidation:
		return newBody(c, http.StatusUnprocessableEntity, titleValidation, appErr.Message)
	}
	return newBody(c, http.StatusInternalServerError, titleInternal, msgInternal)
}

// Recovery turns a panic into a 500 error body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.Error("panic recovered", "panic", recovered, "path", c.Request.URL.Path, "request_id", RequestIDFrom(c))
		c.AbortWithStatusJSON(http.StatusInternalServerError, newBody(c, http.StatusInternalServerError, titleInternal, msgInternal))
	})
}
