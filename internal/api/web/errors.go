package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/djangocon/conference-site/internal/service"
)

// ErrorResponse — тело ответа с ошибкой.
type ErrorResponse struct {
	Message string `json:"message"`
}

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Message: message})
}

// respondServiceError переводит ошибку сервиса в HTTP-статус.
func respondServiceError(c *gin.Context, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		abortWithError(c, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrInvalidCredentials):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	default:
		log.ErrorContext(c.Request.Context(), "request failed",
			slog.String("path", c.Request.URL.Path),
			slog.Any("err", err),
		)
		abortWithError(c, http.StatusInternalServerError, "internal server error")
	}
}
