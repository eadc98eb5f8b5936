package rental

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vehicle-rental-api-server/internal/catalog"
	"vehicle-rental-api-server/internal/models"
)

// CatalogStore is the slice of the catalog store the booking flow needs.
type CatalogStore interface {
	LoadCategory(ctx context.Context, category models.Category) (*catalog.Snapshot, error)
	LoadVehicles(ctx context.Context, category models.Category) (map[string]models.Vehicle, error)
	SaveVehicles(ctx context.Context, category models.Category, vehicles map[string]models.Vehicle) error
}

// ReservationStore is the slice of the ledger the booking flow needs.
type ReservationStore interface {
	Create(ctx context.Context, reservation *models.Reservation) (primitive.ObjectID, error)
	Get(ctx context.Context, id string) (*models.Reservation, error)
	Cancel(ctx context.Context, id string) error
}

// Service runs the stock reconciliation protocol: reserve decrements a
// vehicle's available-unit counter and appends a reservation, release puts
// the unit back and soft-cancels. Both sides rewrite the whole vehicle
// collection document; two sessions racing on the last unit can both succeed
// (last write wins, counter clamped at zero).
type Service struct {
	Catalog CatalogStore
	Ledger  ReservationStore
	Log     *logrus.Logger
}

// BookingRequest is a booking confirmed by the payment gateway. PaymentID
// comes from the gateway callback; the payment itself is already captured.
type BookingRequest struct {
	Owner           string
	Category        models.Category
	VehicleID       int
	StartDate       string
	EndDate         string
	PickupLocation  string
	DropoffLocation string
	PaymentID       string
}

// RentalDays computes the billed days as ceil((end-start)/24h). The range is
// invalid unless end is strictly after start.
func RentalDays(startDate, endDate string) (int, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return 0, &catalog.ValidationError{Field: "startDate", Message: "invalid date"}
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return 0, &catalog.ValidationError{Field: "endDate", Message: "invalid date"}
	}
	if !end.After(start) {
		return 0, &catalog.ValidationError{Field: "endDate", Message: "must be after startDate"}
	}
	span := end.Sub(start)
	days := int(span / (24 * time.Hour))
	if span%(24*time.Hour) != 0 {
		days++
	}
	return days, nil
}

func (r *BookingRequest) validate() error {
	if !r.Category.IsValid() {
		return &catalog.ValidationError{Field: "category", Message: "must be car or bike"}
	}
	if r.Owner == "" {
		return &catalog.ValidationError{Field: "reservationOwner", Message: "must not be empty"}
	}
	if r.PickupLocation == "" {
		return &catalog.ValidationError{Field: "pickupLocation", Message: "must be chosen"}
	}
	if r.DropoffLocation == "" {
		return &catalog.ValidationError{Field: "dropoffLocation", Message: "must be chosen"}
	}
	return nil
}

// Reserve runs the reserve transition. The vehicle collection is re-read
// fresh right before the decrement to shrink the lost-update window against
// other sessions; it does not close it. A write failure after this point
// leaves the payment captured with no reservation — reported as a plain
// error, not compensated.
func (s *Service) Reserve(ctx context.Context, req BookingRequest) (*models.Reservation, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	days, err := RentalDays(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	snap, err := s.Catalog.LoadCategory(ctx, req.Category)
	if err != nil {
		return nil, fmt.Errorf("reload catalog: %w", err)
	}

	key := strconv.Itoa(req.VehicleID)
	vehicle, ok := snap.Vehicles[key]
	if !ok {
		return nil, ErrVehicleNotFound
	}
	if vehicle.Stock() <= 0 {
		return nil, ErrOutOfStock
	}

	vehicle.SetStock(vehicle.Stock() - 1)
	snap.Vehicles[key] = vehicle
	if err := s.Catalog.SaveVehicles(ctx, req.Category, snap.Vehicles); err != nil {
		return nil, fmt.Errorf("write stock: %w", err)
	}

	brand, model := snapshotNames(snap, &vehicle)
	reservation := &models.Reservation{
		ReservationOwner: req.Owner,
		VehicleID:        req.VehicleID,
		VehicleBrand:     brand,
		VehicleModel:     model,
		Category:         req.Category,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		PickupLocation:   req.PickupLocation,
		DropoffLocation:  req.DropoffLocation,
		PaymentID:        req.PaymentID,
		TotalAmount:      float64(days) * vehicle.PricePerDay,
		Timestamp:        time.Now(),
	}
	id, err := s.Ledger.Create(ctx, reservation)
	if err != nil {
		s.Log.WithFields(logrus.Fields{
			"paymentId": req.PaymentID,
			"owner":     req.Owner,
			"vehicleId": req.VehicleID,
		}).Error("reservation write failed after stock decrement; payment not reversed")
		return nil, fmt.Errorf("append reservation: %w", err)
	}
	reservation.ID = id
	return reservation, nil
}

// Release runs the release transition for a cancellation: put the unit back,
// then soft-cancel the reservation. A missing vehicle record (deleted since
// booking) skips the stock step with a warning; cancellation is never blocked
// by it.
func (s *Service) Release(ctx context.Context, reservationID string) error {
	reservation, err := s.Ledger.Get(ctx, reservationID)
	if err != nil {
		return err
	}
	if reservation.IsCancelled() {
		return ErrAlreadyCancelled
	}

	vehicles, err := s.Catalog.LoadVehicles(ctx, reservation.Category)
	if err != nil {
		return fmt.Errorf("reload vehicles: %w", err)
	}
	key := strconv.Itoa(reservation.VehicleID)
	if vehicle, ok := vehicles[key]; ok {
		vehicle.SetStock(vehicle.Stock() + 1)
		vehicles[key] = vehicle
		if err := s.Catalog.SaveVehicles(ctx, reservation.Category, vehicles); err != nil {
			return fmt.Errorf("write stock: %w", err)
		}
	} else {
		s.Log.WithFields(logrus.Fields{
			"reservationId": reservationID,
			"category":      reservation.Category,
			"vehicleId":     reservation.VehicleID,
		}).Warn("vehicle record missing, skipping stock release")
	}

	return s.Ledger.Cancel(ctx, reservationID)
}

// snapshotNames denormalizes the brand and model names onto the reservation
// so it survives later catalog edits.
func snapshotNames(snap *catalog.Snapshot, vehicle *models.Vehicle) (string, string) {
	brand := snap.Brands[strconv.Itoa(vehicle.BrandID)]
	if brand == "" {
		brand = catalog.UnknownBrand
	}
	model := ""
	for _, group := range snap.Models {
		if group.BrandID.Int() == vehicle.BrandID {
			model = group.Models[strconv.Itoa(vehicle.ModelID)]
			break
		}
	}
	if model == "" {
		model = catalog.UnknownModel
	}
	return brand, model
}
