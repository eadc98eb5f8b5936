package catalog

import (
	"fmt"
	"strconv"

	"vehicle-rental-api-server/internal/models"
)

// Placeholder values used when the canonical vehicle record is gone.
const (
	PlaceholderImage = "/no-image.png"
	PlaceholderSpec  = "N/A"
	UnknownBrand     = "Unknown Brand"
	UnknownModel     = "Unknown Model"
)

// ResolvedVehicle is the display view of a (category, vehicleId) pair.
type ResolvedVehicle struct {
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Image       string `json:"image"`
	BodyType    string `json:"bodyType"`
	Power       string `json:"power"`
	EngineSize  string `json:"engineSize"`
	Gearbox     string `json:"gearbox"`
	FuelType    string `json:"fuelType"`
	Year        string `json:"year"`
	PricePerDay string `json:"pricePerDay"`
}

// Resolver answers display lookups over a merged view of the loaded catalog.
// Brands and model groups are merged across categories under
// "{category}-{brandId}" keys; model groups are re-keyed from their group
// index to their brandId (a brandId appears in at most one group per
// category).
type Resolver struct {
	brands   map[string]string
	models   map[string]models.ModelGroup
	vehicles map[models.Category]map[string]models.Vehicle
}

func NewResolver() *Resolver {
	return &Resolver{
		brands:   map[string]string{},
		models:   map[string]models.ModelGroup{},
		vehicles: map[models.Category]map[string]models.Vehicle{},
	}
}

// AddCategory merges one category's snapshot into the resolver.
func (r *Resolver) AddCategory(category models.Category, snap *Snapshot) {
	for key, name := range snap.Brands {
		r.brands[fmt.Sprintf("%s-%s", category, key)] = name
	}
	for _, group := range snap.Models {
		r.models[fmt.Sprintf("%s-%d", category, group.BrandID.Int())] = group
	}
	r.vehicles[category] = snap.Vehicles
}

// ResolveReservation resolves a reservation for display. The denormalized
// vehicleBrand/vehicleModel snapshots on the reservation take precedence over
// the live catalog whenever they are non-empty; the live lookup is a fallback,
// not an override.
func (r *Resolver) ResolveReservation(res *models.Reservation) ResolvedVehicle {
	return r.Resolve(res.Category, res.VehicleID, res.VehicleBrand, res.VehicleModel)
}

// Resolve looks up brand name, model name and specs for a vehicle.
// snapshotBrand/snapshotModel are the caller's denormalized names, empty if
// it has none.
func (r *Resolver) Resolve(category models.Category, vehicleID int, snapshotBrand, snapshotModel string) ResolvedVehicle {
	resolved := ResolvedVehicle{
		Brand:       snapshotBrand,
		Model:       snapshotModel,
		Image:       PlaceholderImage,
		BodyType:    PlaceholderSpec,
		Power:       PlaceholderSpec,
		EngineSize:  PlaceholderSpec,
		Gearbox:     PlaceholderSpec,
		FuelType:    PlaceholderSpec,
		Year:        PlaceholderSpec,
		PricePerDay: PlaceholderSpec,
	}

	vehicle, ok := r.vehicles[category][strconv.Itoa(vehicleID)]
	if !ok {
		if resolved.Brand == "" {
			resolved.Brand = UnknownBrand
		}
		if resolved.Model == "" {
			resolved.Model = UnknownModel
		}
		return resolved
	}

	if vehicle.Image != "" {
		resolved.Image = vehicle.Image
	}
	resolved.BodyType = orPlaceholder(vehicle.BodyType)
	resolved.Power = orPlaceholder(vehicle.Power)
	resolved.EngineSize = orPlaceholder(vehicle.EngineSize)
	resolved.Gearbox = orPlaceholder(vehicle.Gearbox)
	resolved.FuelType = orPlaceholder(vehicle.FuelType)
	if vehicle.Year != 0 {
		resolved.Year = strconv.Itoa(vehicle.Year)
	}
	resolved.PricePerDay = strconv.FormatFloat(vehicle.PricePerDay, 'f', -1, 64)

	brandKey := fmt.Sprintf("%s-%d", category, vehicle.BrandID)
	if resolved.Brand == "" {
		if name, ok := r.brands[brandKey]; ok {
			resolved.Brand = name
		} else {
			resolved.Brand = UnknownBrand
		}
	}
	if resolved.Model == "" {
		group, ok := r.models[brandKey]
		name := ""
		if ok {
			name = group.Models[strconv.Itoa(vehicle.ModelID)]
		}
		if name != "" {
			resolved.Model = name
		} else {
			resolved.Model = UnknownModel
		}
	}
	return resolved
}

func orPlaceholder(s string) string {
	if s == "" {
		return PlaceholderSpec
	}
	return s
}
