package rental

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vehicle-rental-api-server/internal/models"
)

// Ledger is the reservation collection. Reservations are appended at booking
// time and never rewritten except to flip status to cancelled; the admin bulk
// flow is the one path that hard-deletes (Purge). The two cancellation
// semantics are deliberately separate operations.
type Ledger struct {
	Collection *mongo.Collection
}

func NewLedger(db *mongo.Database) *Ledger {
	return &Ledger{Collection: db.Collection("rentals")}
}

// Create appends one reservation and returns its assigned document id. No
// uniqueness constraint is applied; overlapping bookings for the same vehicle
// are not prevented here.
func (l *Ledger) Create(ctx context.Context, reservation *models.Reservation) (primitive.ObjectID, error) {
	result, err := l.Collection.InsertOne(ctx, reservation)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("create reservation: %w", err)
	}
	oid, _ := result.InsertedID.(primitive.ObjectID)
	return oid, nil
}

// Get fetches one reservation by document id.
func (l *Ledger) Get(ctx context.Context, id string) (*models.Reservation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrReservationNotFound
	}
	var reservation models.Reservation
	err = l.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&reservation)
	if err == mongo.ErrNoDocuments {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ListByOwner returns all reservations belonging to one email.
func (l *Ledger) ListByOwner(ctx context.Context, email string) ([]models.Reservation, error) {
	return l.list(ctx, bson.M{"reservationOwner": email})
}

// ListAll returns every reservation in the ledger.
func (l *Ledger) ListAll(ctx context.Context) ([]models.Reservation, error) {
	return l.list(ctx, bson.M{})
}

func (l *Ledger) list(ctx context.Context, filter bson.M) ([]models.Reservation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: 1}})
	cursor, err := l.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []models.Reservation
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("decode reservations: %w", err)
	}
	if reservations == nil {
		reservations = []models.Reservation{}
	}
	return reservations, nil
}

// Cancel flips the reservation's status to cancelled. This is the end-user
// path; the document stays in the ledger.
func (l *Ledger) Cancel(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrReservationNotFound
	}
	result, err := l.Collection.UpdateOne(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": models.ReservationStatusCancelled}})
	if err != nil {
		return fmt.Errorf("cancel reservation: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// Purge hard-deletes the reservation. This is the admin bulk path.
func (l *Ledger) Purge(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrReservationNotFound
	}
	result, err := l.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("purge reservation: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// GroupByOwner buckets reservations per owner email, each bucket sorted by
// startDate ascending. Pure; calling it twice on the same input yields
// structurally equal groupings.
func GroupByOwner(reservations []models.Reservation) map[string][]models.Reservation {
	groups := make(map[string][]models.Reservation)
	for _, r := range reservations {
		groups[r.ReservationOwner] = append(groups[r.ReservationOwner], r)
	}
	for owner := range groups {
		group := groups[owner]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].StartDate < group[j].StartDate
		})
		groups[owner] = group
	}
	return groups
}

// SortedOwners returns the group keys in ascending email order for display.
func SortedOwners(groups map[string][]models.Reservation) []string {
	owners := make([]string, 0, len(groups))
	for owner := range groups {
		owners = append(owners, owner)
	}
	sort.Strings(owners)
	return owners
}

// IsHistory classifies a reservation: cancelled or already ended means
// history, anything else is current. Dates are ISO YYYY-MM-DD strings, so
// plain string comparison is chronological.
func IsHistory(r models.Reservation, today string) bool {
	return r.IsCancelled() || r.EndDate < today
}

// Partition splits reservations into current and history per IsHistory.
func Partition(reservations []models.Reservation, today string) (current, history []models.Reservation) {
	current = []models.Reservation{}
	history = []models.Reservation{}
	for _, r := range reservations {
		if IsHistory(r, today) {
			history = append(history, r)
		} else {
			current = append(current, r)
		}
	}
	return current, history
}

// Today returns the current date in the ledger's ISO date format.
func Today() string {
	return time.Now().Format("2006-01-02")
}
