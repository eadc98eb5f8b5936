package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vehicle-rental-api-server/internal/catalog"
	"vehicle-rental-api-server/internal/rental"
)

// respondError maps domain errors onto HTTP statuses. Store failures stay
// generic; nothing is retried, the user retries manually.
func respondError(c *gin.Context, err error) {
	switch {
	case catalog.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, rental.ErrReservationNotFound),
		errors.Is(err, rental.ErrVehicleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, rental.ErrOutOfStock),
		errors.Is(err, rental.ErrAlreadyCancelled):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."})
	}
}

// categoryParam validates the :category path segment.
func categoryParam(c *gin.Context) (string, bool) {
	category := c.Param("category")
	if category != "car" && category != "bike" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category must be car or bike"})
		return "", false
	}
	return category, true
}
