package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vehicle-rental-api-server/internal/catalog"
	"vehicle-rental-api-server/internal/models"
)

// CatalogHandler serves the public storefront reads.
type CatalogHandler struct {
	Store catalog.Store
}

// GetCategory returns one category's full catalog: brands, model groups,
// vehicles and locations.
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}

	snap, err := h.Store.LoadCategory(c.Request.Context(), models.Category(category))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// GetVehicle returns one vehicle's resolved detail view.
func (h *CatalogHandler) GetVehicle(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	vehicleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vehicle id must be an integer"})
		return
	}

	snap, err := h.Store.LoadCategory(c.Request.Context(), models.Category(category))
	if err != nil {
		respondError(c, err)
		return
	}

	vehicle, found := snap.Vehicles[strconv.Itoa(vehicleID)]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	resolver := catalog.NewResolver()
	resolver.AddCategory(models.Category(category), snap)
	resolved := resolver.Resolve(models.Category(category), vehicleID, "", "")

	locations := make(map[string]string)
	for _, key := range vehicle.AvailableLocations {
		if name, ok := snap.Locations[key]; ok {
			locations[key] = name
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                 vehicleID,
		"detail":             resolved,
		"vehicleCount":       vehicle.Stock(),
		"availableLocations": locations,
	})
}
