package catalog

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vehicle-rental-api-server/internal/models"
)

// Snapshot is one category's catalog, loaded in full.
type Snapshot struct {
	Brands    map[string]string            `json:"brands"`
	Models    map[string]models.ModelGroup `json:"models"`
	Vehicles  map[string]models.Vehicle    `json:"vehicles"`
	Locations map[string]string            `json:"locations"`
}

// Store is the catalog persistence contract. Every save overwrites the whole
// stored collection document; there are no partial writes and no
// cross-collection transactions. Concurrent writers to the same document are
// last-write-wins.
type Store interface {
	LoadCategory(ctx context.Context, category models.Category) (*Snapshot, error)
	LoadBrands(ctx context.Context, category models.Category) (map[string]string, error)
	LoadModels(ctx context.Context, category models.Category) (map[string]models.ModelGroup, error)
	LoadVehicles(ctx context.Context, category models.Category) (map[string]models.Vehicle, error)
	LoadLocations(ctx context.Context) (map[string]string, error)
	SaveBrands(ctx context.Context, category models.Category, brands map[string]string) error
	SaveModels(ctx context.Context, category models.Category, groups map[string]models.ModelGroup) error
	SaveVehicles(ctx context.Context, category models.Category, vehicles map[string]models.Vehicle) error
	SaveLocations(ctx context.Context, locations map[string]string) error
}

// MongoStore keeps the catalog in the "vehicle" collection, one document per
// logical collection: brands, bike-brands, models, bike-models, cars, bikes,
// locations.
type MongoStore struct {
	Collection *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{Collection: db.Collection("vehicle")}
}

func brandsDocID(category models.Category) string {
	if category == models.CategoryBike {
		return "bike-brands"
	}
	return "brands"
}

func modelsDocID(category models.Category) string {
	if category == models.CategoryBike {
		return "bike-models"
	}
	return "models"
}

func vehiclesDocID(category models.Category) string {
	if category == models.CategoryBike {
		return "bikes"
	}
	return "cars"
}

const locationsDocID = "locations"

// LoadCategory reads brands, models, vehicles and locations in parallel. A
// missing document yields an empty collection; only transport-level failures
// fail the load.
func (s *MongoStore) LoadCategory(ctx context.Context, category models.Category) (*Snapshot, error) {
	snap := &Snapshot{}
	var wg sync.WaitGroup
	errs := make([]error, 4)

	wg.Add(4)
	go func() {
		defer wg.Done()
		snap.Brands, errs[0] = s.LoadBrands(ctx, category)
	}()
	go func() {
		defer wg.Done()
		snap.Models, errs[1] = s.LoadModels(ctx, category)
	}()
	go func() {
		defer wg.Done()
		snap.Vehicles, errs[2] = s.LoadVehicles(ctx, category)
	}()
	go func() {
		defer wg.Done()
		snap.Locations, errs[3] = s.LoadLocations(ctx)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return snap, nil
}

type brandsDoc struct {
	ID     string            `bson:"_id"`
	Brands map[string]string `bson:"brands"`
}

func (s *MongoStore) LoadBrands(ctx context.Context, category models.Category) (map[string]string, error) {
	var doc brandsDoc
	err := s.Collection.FindOne(ctx, bson.M{"_id": brandsDocID(category)}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", brandsDocID(category), err)
	}
	if doc.Brands == nil {
		doc.Brands = map[string]string{}
	}
	return doc.Brands, nil
}

func (s *MongoStore) SaveBrands(ctx context.Context, category models.Category, brands map[string]string) error {
	doc := brandsDoc{ID: brandsDocID(category), Brands: brands}
	return s.replace(ctx, doc.ID, doc)
}

type modelsDoc struct {
	ID     string                       `bson:"_id"`
	Models map[string]models.ModelGroup `bson:"models"`
}

func (s *MongoStore) LoadModels(ctx context.Context, category models.Category) (map[string]models.ModelGroup, error) {
	var doc modelsDoc
	err := s.Collection.FindOne(ctx, bson.M{"_id": modelsDocID(category)}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return map[string]models.ModelGroup{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", modelsDocID(category), err)
	}
	if doc.Models == nil {
		doc.Models = map[string]models.ModelGroup{}
	}
	return doc.Models, nil
}

func (s *MongoStore) SaveModels(ctx context.Context, category models.Category, groups map[string]models.ModelGroup) error {
	doc := modelsDoc{ID: modelsDocID(category), Models: groups}
	return s.replace(ctx, doc.ID, doc)
}

// LoadVehicles reads the flat vehicle document: every key except _id is one
// vehicle record. Counter aliases are normalized on the way in.
func (s *MongoStore) LoadVehicles(ctx context.Context, category models.Category) (map[string]models.Vehicle, error) {
	var raw bson.M
	err := s.Collection.FindOne(ctx, bson.M{"_id": vehiclesDocID(category)}).Decode(&raw)
	if err == mongo.ErrNoDocuments {
		return map[string]models.Vehicle{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", vehiclesDocID(category), err)
	}

	vehicles := make(map[string]models.Vehicle, len(raw))
	for key, value := range raw {
		if key == "_id" {
			continue
		}
		data, ok := marshalSubdocument(value)
		if !ok {
			continue
		}
		var v models.Vehicle
		if err := bson.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode vehicle %s/%s: %w", vehiclesDocID(category), key, err)
		}
		v.NormalizeStock()
		vehicles[key] = v
	}
	return vehicles, nil
}

// SaveVehicles overwrites the flat vehicle document. Records are normalized
// so only vehicleCount is ever written, never a legacy alias.
func (s *MongoStore) SaveVehicles(ctx context.Context, category models.Category, vehicles map[string]models.Vehicle) error {
	doc := bson.M{"_id": vehiclesDocID(category)}
	for key, v := range vehicles {
		v.NormalizeStock()
		doc[key] = v
	}
	return s.replace(ctx, vehiclesDocID(category), doc)
}

// LoadLocations tolerates both stored forms: { locations: { "0": "..." } }
// and the flat { "0": "..." }.
func (s *MongoStore) LoadLocations(ctx context.Context) (map[string]string, error) {
	var raw bson.M
	err := s.Collection.FindOne(ctx, bson.M{"_id": locationsDocID}).Decode(&raw)
	if err == mongo.ErrNoDocuments {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", locationsDocID, err)
	}
	return locationsFromDoc(raw)
}

func (s *MongoStore) SaveLocations(ctx context.Context, locations map[string]string) error {
	doc := bson.M{"_id": locationsDocID, "locations": locations}
	return s.replace(ctx, locationsDocID, doc)
}

func (s *MongoStore) replace(ctx context.Context, id string, doc interface{}) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.Collection.ReplaceOne(ctx, bson.M{"_id": id}, doc, opts); err != nil {
		return fmt.Errorf("save %s: %w", id, err)
	}
	return nil
}

func locationsFromDoc(raw bson.M) (map[string]string, error) {
	if wrapped, ok := raw["locations"]; ok {
		data, isDoc := marshalSubdocument(wrapped)
		if isDoc {
			locations := map[string]string{}
			if err := bson.Unmarshal(data, &locations); err != nil {
				return nil, fmt.Errorf("decode locations: %w", err)
			}
			return locations, nil
		}
	}
	locations := make(map[string]string, len(raw))
	for key, value := range raw {
		if key == "_id" {
			continue
		}
		if name, ok := value.(string); ok {
			locations[key] = name
		}
	}
	return locations, nil
}

// marshalSubdocument re-encodes an embedded document value so it can be
// unmarshalled into a typed struct. The driver hands embedded documents back
// as bson.M or primitive.D depending on the decode target.
func marshalSubdocument(value interface{}) ([]byte, bool) {
	switch d := value.(type) {
	case bson.M:
		data, err := bson.Marshal(d)
		return data, err == nil
	case primitive.D:
		data, err := bson.Marshal(d)
		return data, err == nil
	case map[string]interface{}:
		data, err := bson.Marshal(bson.M(d))
		return data, err == nil
	default:
		return nil, false
	}
}
