package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arcadehub/ledger_engine/internal/apperrors"
)

// respondWithError translates a service error into the HTTP response for it.
// Handlers call this after their own special cases.
func respondWithError(c *gin.Context, logger *slog.Logger, err error) {
	var imbalanced *apperrors.ImbalancedError
	switch {
	case errors.As(err, &imbalanced):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":        "transaction entries are not balanced",
			"totalDebits":  imbalanced.TotalDebits,
			"totalCredits": imbalanced.TotalCredits,
		})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrRateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrInvalidState), errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrImbalanced):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "operation timed out"})
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
