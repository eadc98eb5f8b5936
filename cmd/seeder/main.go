// server/cmd/seeder/main.go
//
// Offline catalog seeder: transforms a flat JSON catalog description into the
// per-category brand/model/vehicle documents and uploads them, overwriting
// whatever is stored.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vehicle-rental-api-server/config"
	"vehicle-rental-api-server/internal/catalog"
	"vehicle-rental-api-server/internal/models"
)

// SeedVehicle is one vehicle row of the flat input, referencing its brand and
// model by name.
type SeedVehicle struct {
	Model       string   `json:"model"`
	Image       string   `json:"image"`
	BodyType    string   `json:"bodyType"`
	Power       string   `json:"power"`
	EngineSize  string   `json:"engineSize"`
	Gearbox     string   `json:"gearbox"`
	FuelType    string   `json:"fuelType"`
	Year        int      `json:"year"`
	PricePerDay float64  `json:"pricePerDay"`
	Count       int      `json:"count"`
	Locations   []string `json:"locations"`
}

type SeedBrand struct {
	Name     string        `json:"name"`
	Models   []string      `json:"models"`
	Vehicles []SeedVehicle `json:"vehicles"`
}

type SeedCatalog struct {
	Locations []string    `json:"locations"`
	Cars      []SeedBrand `json:"cars"`
	Bikes     []SeedBrand `json:"bikes"`
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	filePath := flag.String("file", "catalog.json", "path to the flat catalog JSON file")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	data, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("Could not read catalog file: %v", err)
	}
	var seed SeedCatalog
	if err := json.Unmarshal(data, &seed); err != nil {
		log.Fatalf("Could not parse catalog file: %v", err)
	}

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	store := catalog.NewMongoStore(client.Database(cfg.Mongo.DBName))

	locations := map[string]string{}
	locationKeys := map[string]string{}
	for _, name := range seed.Locations {
		key := catalog.InsertRecord(locations, name)
		locationKeys[name] = key
	}
	if err := store.SaveLocations(context.Background(), locations); err != nil {
		log.Fatalf("Failed to save locations: %v", err)
	}

	seedCategory(log, store, models.CategoryCar, seed.Cars, locationKeys)
	seedCategory(log, store, models.CategoryBike, seed.Bikes, locationKeys)

	log.Info("Catalog seeded successfully.")
}

func seedCategory(log *logrus.Logger, store *catalog.MongoStore, category models.Category, seedBrands []SeedBrand, locationKeys map[string]string) {
	brands := map[string]string{}
	groups := map[string]models.ModelGroup{}
	vehicles := map[string]models.Vehicle{}

	// brandIDs/modelIDs resolve the by-name references of the vehicle rows.
	brandIDs := map[string]int{}
	modelIDs := map[string]map[string]int{}

	for _, sb := range seedBrands {
		brandKey, err := catalog.InsertUniqueName(brands, sb.Name)
		if err != nil {
			log.Fatalf("Bad brand %q: %v", sb.Name, err)
		}
		brandID, _ := strconv.Atoi(brandKey)
		brandIDs[sb.Name] = brandID

		if len(sb.Models) == 0 {
			continue
		}
		group := models.ModelGroup{BrandID: models.FlexInt(brandID), Models: map[string]string{}}
		modelIDs[sb.Name] = map[string]int{}
		for _, modelName := range sb.Models {
			modelKey, err := catalog.InsertUniqueName(group.Models, modelName)
			if err != nil {
				log.Fatalf("Bad model %q of brand %q: %v", modelName, sb.Name, err)
			}
			modelID, _ := strconv.Atoi(modelKey)
			modelIDs[sb.Name][modelName] = modelID
		}
		catalog.InsertRecord(groups, group)
	}

	for _, sb := range seedBrands {
		for _, sv := range sb.Vehicles {
			modelID, ok := modelIDs[sb.Name][sv.Model]
			if !ok {
				log.Fatalf("Vehicle of brand %q references unknown model %q", sb.Name, sv.Model)
			}
			keys := make([]string, 0, len(sv.Locations))
			for _, name := range sv.Locations {
				key, ok := locationKeys[name]
				if !ok {
					log.Fatalf("Vehicle of brand %q references unknown location %q", sb.Name, name)
				}
				keys = append(keys, key)
			}

			key := catalog.NextKey(vehicles)
			id, _ := strconv.Atoi(key)
			vehicle := models.Vehicle{
				ID:                 id,
				BrandID:            brandIDs[sb.Name],
				ModelID:            modelID,
				Image:              sv.Image,
				BodyType:           sv.BodyType,
				Power:              sv.Power,
				EngineSize:         sv.EngineSize,
				Gearbox:            sv.Gearbox,
				FuelType:           sv.FuelType,
				Year:               sv.Year,
				PricePerDay:        sv.PricePerDay,
				AvailableLocations: keys,
			}
			vehicle.SetStock(sv.Count)
			vehicles[key] = vehicle
		}
	}

	ctx := context.Background()
	if err := store.SaveBrands(ctx, category, brands); err != nil {
		log.Fatalf("Failed to save %s brands: %v", category, err)
	}
	if err := store.SaveModels(ctx, category, groups); err != nil {
		log.Fatalf("Failed to save %s models: %v", category, err)
	}
	if err := store.SaveVehicles(ctx, category, vehicles); err != nil {
		log.Fatalf("Failed to save %s vehicles: %v", category, err)
	}
	log.WithFields(logrus.Fields{
		"category": category,
		"brands":   len(brands),
		"vehicles": len(vehicles),
	}).Info("Category seeded")
}
