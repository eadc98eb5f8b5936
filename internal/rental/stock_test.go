package rental

import (
	"context"
	"io"
	"strconv"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vehicle-rental-api-server/internal/catalog"
	"vehicle-rental-api-server/internal/models"
)

// fakeCatalog serves whole-snapshot reads and whole-document writes from
// memory. loadGate, when set, runs after every load and before the caller
// proceeds, which lets the race test hold two sessions on stale reads.
type fakeCatalog struct {
	mu        sync.Mutex
	snapshots map[models.Category]*catalog.Snapshot
	loadGate  func()
	saveErr   error
	saves     int
}

func (f *fakeCatalog) LoadCategory(_ context.Context, category models.Category) (*catalog.Snapshot, error) {
	f.mu.Lock()
	src := f.snapshots[category]
	snap := &catalog.Snapshot{
		Brands:    copyMap(src.Brands),
		Models:    copyMap(src.Models),
		Vehicles:  copyMap(src.Vehicles),
		Locations: copyMap(src.Locations),
	}
	f.mu.Unlock()
	if f.loadGate != nil {
		f.loadGate()
	}
	return snap, nil
}

func (f *fakeCatalog) LoadVehicles(_ context.Context, category models.Category) (map[string]models.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyMap(f.snapshots[category].Vehicles), nil
}

func (f *fakeCatalog) SaveVehicles(_ context.Context, category models.Category, vehicles map[string]models.Vehicle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.snapshots[category].Vehicles = copyMap(vehicles)
	f.saves++
	return nil
}

func (f *fakeCatalog) stock(category models.Category, vehicleID int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	vehicle := f.snapshots[category].Vehicles[strconv.Itoa(vehicleID)]
	return vehicle.Stock()
}

func copyMap[T any](src map[string]T) map[string]T {
	dst := make(map[string]T, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

type fakeLedger struct {
	mu           sync.Mutex
	reservations map[string]*models.Reservation
	createErr    error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{reservations: map[string]*models.Reservation{}}
}

func (f *fakeLedger) Create(_ context.Context, reservation *models.Reservation) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return primitive.NilObjectID, f.createErr
	}
	id := primitive.NewObjectID()
	stored := *reservation
	stored.ID = id
	f.reservations[id.Hex()] = &stored
	return id, nil
}

func (f *fakeLedger) Get(_ context.Context, id string) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reservation, ok := f.reservations[id]
	if !ok {
		return nil, ErrReservationNotFound
	}
	clone := *reservation
	return &clone, nil
}

func (f *fakeLedger) Cancel(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	reservation, ok := f.reservations[id]
	if !ok {
		return ErrReservationNotFound
	}
	reservation.Status = models.ReservationStatusCancelled
	return nil
}

func (f *fakeLedger) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reservations)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func carSnapshot(stock int) *catalog.Snapshot {
	return &catalog.Snapshot{
		Brands: map[string]string{"0": "Toyota"},
		Models: map[string]models.ModelGroup{
			"0": {BrandID: 0, Models: map[string]string{"0": "Corolla"}},
		},
		Vehicles: map[string]models.Vehicle{
			"0": func() models.Vehicle {
				v := models.Vehicle{ID: 0, BrandID: 0, ModelID: 0, PricePerDay: 40}
				v.SetStock(stock)
				return v
			}(),
		},
		Locations: map[string]string{"0": "Airport", "1": "Downtown"},
	}
}

func newService(stock int) (*Service, *fakeCatalog, *fakeLedger) {
	cat := &fakeCatalog{snapshots: map[models.Category]*catalog.Snapshot{
		models.CategoryCar: carSnapshot(stock),
	}}
	ledger := newFakeLedger()
	return &Service{Catalog: cat, Ledger: ledger, Log: quietLogger()}, cat, ledger
}

func bookingRequest() BookingRequest {
	return BookingRequest{
		Owner:           "user@example.com",
		Category:        models.CategoryCar,
		VehicleID:       0,
		StartDate:       "2026-09-10",
		EndDate:         "2026-09-13",
		PickupLocation:  "0",
		DropoffLocation: "1",
		PaymentID:       "pay_123",
	}
}

func TestRentalDays(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		want    int
		wantErr bool
	}{
		{"one day", "2026-09-10", "2026-09-11", 1, false},
		{"three days", "2026-09-10", "2026-09-13", 3, false},
		{"across month boundary", "2026-09-29", "2026-10-02", 3, false},
		{"same day", "2026-09-10", "2026-09-10", 0, true},
		{"end before start", "2026-09-13", "2026-09-10", 0, true},
		{"garbage start", "not-a-date", "2026-09-10", 0, true},
		{"garbage end", "2026-09-10", "13/09/2026", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := RentalDays(tt.start, tt.end)
			if tt.wantErr {
				assert.True(t, catalog.IsValidation(err), "expected validation error, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, days)
		})
	}
}

func TestReserve_HappyPath(t *testing.T) {
	service, cat, ledger := newService(2)

	reservation, err := service.Reserve(context.Background(), bookingRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, cat.stock(models.CategoryCar, 0))
	assert.Equal(t, 1, ledger.count())
	assert.False(t, reservation.ID.IsZero())
	assert.Equal(t, "Toyota", reservation.VehicleBrand)
	assert.Equal(t, "Corolla", reservation.VehicleModel)
	assert.Equal(t, 120.0, reservation.TotalAmount) // 3 days x 40
	assert.Equal(t, "pay_123", reservation.PaymentID)
	assert.Empty(t, reservation.Status)
}

func TestReserve_Validation(t *testing.T) {
	service, cat, ledger := newService(2)

	tests := []struct {
		name   string
		mutate func(*BookingRequest)
	}{
		{"bad category", func(r *BookingRequest) { r.Category = "truck" }},
		{"missing owner", func(r *BookingRequest) { r.Owner = "" }},
		{"missing pickup", func(r *BookingRequest) { r.PickupLocation = "" }},
		{"missing dropoff", func(r *BookingRequest) { r.DropoffLocation = "" }},
		{"bad date range", func(r *BookingRequest) { r.EndDate = r.StartDate }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := bookingRequest()
			tt.mutate(&req)

			_, err := service.Reserve(context.Background(), req)
			assert.True(t, catalog.IsValidation(err), "expected validation error, got %v", err)
		})
	}

	// Nothing touched the catalog or the ledger.
	assert.Equal(t, 2, cat.stock(models.CategoryCar, 0))
	assert.Equal(t, 0, ledger.count())
}

func TestReserve_VehicleNotFound(t *testing.T) {
	service, _, _ := newService(2)

	req := bookingRequest()
	req.VehicleID = 99
	_, err := service.Reserve(context.Background(), req)
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestReserve_OutOfStock(t *testing.T) {
	service, cat, ledger := newService(0)

	_, err := service.Reserve(context.Background(), bookingRequest())
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Equal(t, 0, cat.stock(models.CategoryCar, 0))
	assert.Equal(t, 0, ledger.count())
}

func TestReserve_LedgerWriteFailureKeepsDecrement(t *testing.T) {
	service, cat, ledger := newService(2)
	ledger.createErr = assert.AnError

	_, err := service.Reserve(context.Background(), bookingRequest())
	require.Error(t, err)

	// The stock write already happened and is not compensated.
	assert.Equal(t, 1, cat.stock(models.CategoryCar, 0))
	assert.Equal(t, 0, ledger.count())
}

// Two sessions racing on the last unit: both read stock=1 before either
// writes, so both bookings succeed and the loser's write clamps at zero. The
// whole-document overwrite model accepts this.
func TestReserve_LastUnitRace(t *testing.T) {
	service, cat, ledger := newService(1)

	var gate sync.WaitGroup
	gate.Add(2)
	cat.loadGate = func() {
		gate.Done()
		gate.Wait()
	}

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := service.Reserve(context.Background(), bookingRequest())
			errs <- err
		}()
	}
	for i := 0; i < 2; i++ {
		assert.NoError(t, <-errs)
	}

	assert.Equal(t, 0, cat.stock(models.CategoryCar, 0))
	assert.Equal(t, 2, ledger.count())
}

func TestRelease_RestoresStockAndSoftCancels(t *testing.T) {
	service, cat, ledger := newService(2)

	reservation, err := service.Reserve(context.Background(), bookingRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, cat.stock(models.CategoryCar, 0))

	require.NoError(t, service.Release(context.Background(), reservation.ID.Hex()))

	assert.Equal(t, 2, cat.stock(models.CategoryCar, 0))
	cancelled, err := ledger.Get(context.Background(), reservation.ID.Hex())
	require.NoError(t, err)
	assert.True(t, cancelled.IsCancelled())
}

func TestRelease_SecondCancelRejected(t *testing.T) {
	service, cat, _ := newService(2)

	reservation, err := service.Reserve(context.Background(), bookingRequest())
	require.NoError(t, err)

	require.NoError(t, service.Release(context.Background(), reservation.ID.Hex()))
	err = service.Release(context.Background(), reservation.ID.Hex())
	assert.ErrorIs(t, err, ErrAlreadyCancelled)

	// The unit came back exactly once.
	assert.Equal(t, 2, cat.stock(models.CategoryCar, 0))
}

func TestRelease_MissingVehicleStillCancels(t *testing.T) {
	service, cat, ledger := newService(2)

	reservation, err := service.Reserve(context.Background(), bookingRequest())
	require.NoError(t, err)

	// Admin deleted the vehicle after booking.
	cat.mu.Lock()
	delete(cat.snapshots[models.CategoryCar].Vehicles, "0")
	cat.mu.Unlock()

	require.NoError(t, service.Release(context.Background(), reservation.ID.Hex()))
	cancelled, err := ledger.Get(context.Background(), reservation.ID.Hex())
	require.NoError(t, err)
	assert.True(t, cancelled.IsCancelled())
}

func TestRelease_UnknownReservation(t *testing.T) {
	service, _, _ := newService(2)

	err := service.Release(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
