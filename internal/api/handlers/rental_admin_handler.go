package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vehicle-rental-api-server/internal/catalog"
	"vehicle-rental-api-server/internal/rental"
)

// RentalAdminHandler is the admin console's view of the reservation ledger.
type RentalAdminHandler struct {
	Ledger *rental.Ledger
	Store  catalog.Store
}

// OwnerRentals is one owner's bucket in the grouped admin listing.
type OwnerRentals struct {
	Owner        string                `json:"owner"`
	Reservations []ResolvedReservation `json:"reservations"`
}

// GetAllRentals lists every reservation grouped by owner, owners in email
// order, each group by start date.
func (h *RentalAdminHandler) GetAllRentals(c *gin.Context) {
	reservations, err := h.Ledger.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resolver, err := loadResolver(c.Request.Context(), h.Store)
	if err != nil {
		respondError(c, err)
		return
	}

	groups := rental.GroupByOwner(reservations)
	result := make([]OwnerRentals, 0, len(groups))
	for _, owner := range rental.SortedOwners(groups) {
		result = append(result, OwnerRentals{
			Owner:        owner,
			Reservations: resolveAll(resolver, groups[owner]),
		})
	}

	c.JSON(http.StatusOK, result)
}

type PurgeRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// PurgeRentals hard-deletes the given reservations. This is the admin bulk
// path; unlike the user-facing cancel it removes the documents outright and
// does not touch stock.
func (h *RentalAdminHandler) PurgeRentals(c *gin.Context) {
	var req PurgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	purged := 0
	missing := []string{}
	for _, id := range req.IDs {
		err := h.Ledger.Purge(c.Request.Context(), id)
		if errors.Is(err, rental.ErrReservationNotFound) {
			missing = append(missing, id)
			continue
		}
		if err != nil {
			respondError(c, err)
			return
		}
		purged++
	}

	c.JSON(http.StatusOK, gin.H{"purged": purged, "missing": missing})
}
