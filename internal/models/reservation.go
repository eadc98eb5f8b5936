package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// ReservationStatusCancelled marks a soft-cancelled reservation. Active
	// reservations carry no status field at all, matching the stored
	// documents.
	ReservationStatusCancelled = "cancelled"
)

// Reservation is one rental booking. vehicleBrand and vehicleModel are
// denormalized snapshots taken at booking time so the reservation stays
// displayable after the catalog record is renamed or deleted. Dates are ISO
// YYYY-MM-DD strings; lexicographic order equals chronological order.
type Reservation struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"documentId"`
	ReservationOwner string             `bson:"reservationOwner" json:"reservationOwner"`
	VehicleID        int                `bson:"vehicleId" json:"vehicleId"`
	VehicleBrand     string             `bson:"vehicleBrand" json:"vehicleBrand"`
	VehicleModel     string             `bson:"vehicleModel" json:"vehicleModel"`
	Category         Category           `bson:"category" json:"category"`
	StartDate        string             `bson:"startDate" json:"startDate"`
	EndDate          string             `bson:"endDate" json:"endDate"`
	PickupLocation   string             `bson:"pickupLocation" json:"pickupLocation"`
	DropoffLocation  string             `bson:"dropoffLocation" json:"dropoffLocation"`
	PaymentID        string             `bson:"paymentId" json:"paymentId"`
	TotalAmount      float64            `bson:"totalAmount" json:"totalAmount"`
	Timestamp        time.Time          `bson:"timestamp" json:"timestamp"`
	Status           string             `bson:"status,omitempty" json:"status,omitempty"`
}

// IsCancelled reports whether the reservation was soft-cancelled.
func (r *Reservation) IsCancelled() bool {
	return r.Status == ReservationStatusCancelled
}
