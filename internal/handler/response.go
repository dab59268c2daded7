package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tradingdesk/internal/service"
)

// Errors go out as {"error": "..."} with 400/404/500; success responses are
// the affected row(s) themselves.

func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// FailFromService maps service errors onto the HTTP taxonomy. Unexpected
// errors are logged and surfaced as a fixed 500 message without detail.
func FailFromService(c *gin.Context, logger *zap.Logger, err error) {
	var active *service.ActiveDrawdownError
	switch {
	case errors.As(err, &active):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":        active.Error(),
			"active_event": active.Event,
		})
	case errors.Is(err, service.ErrValidation):
		Fail(c, http.StatusBadRequest, stripSentinel(err, service.ErrValidation))
	case errors.Is(err, service.ErrNotFound):
		Fail(c, http.StatusNotFound, stripSentinel(err, service.ErrNotFound))
	default:
		if logger != nil {
			logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		}
		Fail(c, http.StatusInternalServerError, "internal server error")
	}
}

func stripSentinel(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}
