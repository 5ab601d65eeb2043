package controllers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"meal-planner-be/internal/apperrors"
	"meal-planner-be/internal/middleware"
)

// respondError writes err as {"error": ...} with the status its kind maps to.
// Server-side failures are logged and answered with fallback.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(c.Request.Context(), fallback,
			"error", err,
			"request_id", middleware.RequestID(c),
		)
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": apperrors.PublicMessage(err, fallback)})
}

// badRequest answers an unparseable body. The decoder error is logged, not returned.
func badRequest(c *gin.Context, logger *slog.Logger, err error) {
	logger.DebugContext(c.Request.Context(), "invalid request body",
		"error", err,
		"request_id", middleware.RequestID(c),
	)
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
