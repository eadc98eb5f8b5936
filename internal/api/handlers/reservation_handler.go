package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"vehicle-rental-api-server/internal/catalog"
	"vehicle-rental-api-server/internal/models"
	"vehicle-rental-api-server/internal/rental"
	"vehicle-rental-api-server/internal/socket"
)

// ReservationHandler is the storefront booking surface.
type ReservationHandler struct {
	Service *rental.Service
	Ledger  *rental.Ledger
	Store   catalog.Store
	Hub     *socket.Hub
}

// BookingPayload is sent by the client after the payment gateway confirmed
// the charge and handed back a payment id.
type BookingPayload struct {
	Category        string `json:"category" binding:"required,oneof=car bike"`
	VehicleID       int    `json:"vehicleId" binding:"min=0"`
	StartDate       string `json:"startDate" binding:"required"`
	EndDate         string `json:"endDate" binding:"required"`
	PickupLocation  string `json:"pickupLocation" binding:"required"`
	DropoffLocation string `json:"dropoffLocation" binding:"required"`
	PaymentID       string `json:"paymentId" binding:"required"`
}

// CreateReservation books a vehicle: stock is decremented against a fresh
// read, then the reservation is appended. If the write fails the payment is
// already captured; the client only gets a generic error.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var payload BookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservation, err := h.Service.Reserve(c.Request.Context(), rental.BookingRequest{
		Owner:           c.GetString("user_email"),
		Category:        models.Category(payload.Category),
		VehicleID:       payload.VehicleID,
		StartDate:       payload.StartDate,
		EndDate:         payload.EndDate,
		PickupLocation:  payload.PickupLocation,
		DropoffLocation: payload.DropoffLocation,
		PaymentID:       payload.PaymentID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.Hub.Broadcast(socket.Event{Type: socket.EventReservationCreated, Payload: reservation})
	c.JSON(http.StatusCreated, reservation)
}

// ResolvedReservation pairs a reservation with its display view.
type ResolvedReservation struct {
	Reservation models.Reservation      `json:"reservation"`
	Detail      catalog.ResolvedVehicle `json:"detail"`
}

// MyReservations returns the caller's reservations split into current and
// history.
func (h *ReservationHandler) MyReservations(c *gin.Context) {
	email := c.GetString("user_email")

	reservations, err := h.Ledger.ListByOwner(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}

	resolver, err := loadResolver(c.Request.Context(), h.Store)
	if err != nil {
		respondError(c, err)
		return
	}

	current, history := rental.Partition(reservations, rental.Today())
	c.JSON(http.StatusOK, gin.H{
		"current": resolveAll(resolver, current),
		"history": resolveAll(resolver, history),
	})
}

// CancelReservation soft-cancels one of the caller's reservations and puts
// the unit back in stock. Admins may cancel anyone's.
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	id := c.Param("id")

	reservation, err := h.Ledger.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if reservation.ReservationOwner != c.GetString("user_email") && c.GetString("user_role") != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only cancel your own reservations"})
		return
	}

	if err := h.Service.Release(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reservation cancelled successfully"})
}

// loadResolver builds a resolver over both categories' live catalogs.
func loadResolver(ctx context.Context, store catalog.Store) (*catalog.Resolver, error) {
	resolver := catalog.NewResolver()
	for _, category := range []models.Category{models.CategoryCar, models.CategoryBike} {
		snap, err := store.LoadCategory(ctx, category)
		if err != nil {
			return nil, err
		}
		resolver.AddCategory(category, snap)
	}
	return resolver, nil
}

func resolveAll(resolver *catalog.Resolver, reservations []models.Reservation) []ResolvedReservation {
	resolved := make([]ResolvedReservation, 0, len(reservations))
	for _, r := range reservations {
		resolved = append(resolved, ResolvedReservation{
			Reservation: r,
			Detail:      resolver.ResolveReservation(&r),
		})
	}
	return resolved
}
