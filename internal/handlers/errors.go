package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ArowuTest/conomy-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// statusFor maps a service error to its HTTP status code
func statusFor(err error) int {
	var validation *services.ValidationError
	var aggregation *services.AggregationError
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthenticated), errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrUserNotFound), errors.Is(err, services.ErrRequestNotFound), errors.Is(err, services.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInsufficientFunds), errors.Is(err, services.ErrAlreadySettled), errors.Is(err, services.ErrAlreadyReconciled),
		errors.Is(err, services.ErrEmailInUse), errors.Is(err, services.ErrReferralCodeCollision):
		return http.StatusConflict
	case errors.As(err, &aggregation), errors.Is(err, services.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError writes the error as {"error": message}. Store and unexpected
// failures are logged and replaced with a generic message.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	switch status {
	case http.StatusServiceUnavailable:
		slog.Error("Service unavailable", "error", err, "path", c.FullPath())
		message = "Service temporarily unavailable, please try again"
	case http.StatusInternalServerError:
		slog.Error("Unexpected error", "error", err, "path", c.FullPath())
		message = "Something went wrong, please try again"
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": message})
}
