package handler

import (
	"errors"
	"net/http"

	"github.com/Baaaki/resume-backend/internal/dto"
	"github.com/Baaaki/resume-backend/internal/middleware"
	"github.com/Baaaki/resume-backend/internal/service"
	"github.com/Baaaki/resume-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgUnexpected = "An unexpected error occurred"

// requestError marks a body or parameter the handler could not decode.
type requestError struct {
	err     error
	message string
}

func (e *requestError) Error() string { return e.message + ": " + e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

// ErrorHandler turns the last error attached to the context into the standard
// error body. Handlers only call c.Error and return.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		status, body := translate(c, c.Errors.Last().Err)
		c.AbortWithStatusJSON(status, body)
	}
}

// Recovery converts a panic into a 500 with the standard error body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Log.Error("Recovered from panic",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			middleware.NewErrorResponse(c, http.StatusInternalServerError, msgUnexpected))
	})
}

func translate(c *gin.Context, err error) (int, middleware.ErrorResponse) {
	if fields, ok := dto.FieldErrors(err); ok {
		body := middleware.NewErrorResponse(c, http.StatusBadRequest, "Invalid input parameters")
		body.ValidationErrors = fields
		return http.StatusBadRequest, body
	}

	var reqErr *requestError
	if errors.As(err, &reqErr) {
		logger.Log.Debug("Rejected malformed request", zap.String("path", c.Request.URL.Path), zap.Error(err))
		return http.StatusBadRequest, middleware.NewErrorResponse(c, http.StatusBadRequest, reqErr.message)
	}

	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		status := statusOf(svcErr.Kind)
		body := middleware.NewErrorResponse(c, status, svcErr.Message)
		if status == http.StatusBadRequest && len(svcErr.Fields) > 0 {
			body.ValidationErrors = svcErr.Fields
		}
		return status, body
	}

	logger.Log.Error("Unhandled error",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	return http.StatusInternalServerError, middleware.NewErrorResponse(c, http.StatusInternalServerError, msgUnexpected)
}

func statusOf(kind error) int {
	switch {
	case errors.Is(kind, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, service.ErrDuplicate), errors.Is(kind, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(kind, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(kind, service.ErrInvalidCredentials), errors.Is(kind, service.ErrUnknownIdentity):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// bindJSON decodes and validates the body. On failure the error is attached
// and false is returned.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	if _, ok := dto.FieldErrors(err); ok {
		_ = c.Error(err)
	} else {
		_ = c.Error(&requestError{err: err, message: "Malformed JSON request"})
	}
	return false
}
