package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vehicle-rental-api-server/internal/catalog"
)

// LocationHandler manages the flat pickup/dropoff location list shared by
// both categories.
type LocationHandler struct {
	Store catalog.Store
}

type LocationRequest struct {
	Name string `json:"name" binding:"required"`
}

// GetLocations lists all locations.
func (h *LocationHandler) GetLocations(c *gin.Context) {
	locations, err := h.Store.LoadLocations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": locations})
}

// CreateLocation adds a location at the next free index.
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	locations, err := h.Store.LoadLocations(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	key := catalog.InsertRecord(locations, req.Name)
	if err := h.Store.SaveLocations(ctx, locations); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"key": key, "name": req.Name})
}

// UpdateLocation renames the location at key.
func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	key := c.Param("key")
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	locations, err := h.Store.LoadLocations(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := catalog.UpdateRecord(locations, key, req.Name); err != nil {
		respondError(c, err)
		return
	}
	if err := h.Store.SaveLocations(ctx, locations); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key, "name": req.Name})
}

// DeleteLocation removes the location at key and renumbers the rest. Vehicle
// and reservation references to old keys are not rewritten.
func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	key := c.Param("key")

	ctx := c.Request.Context()
	locations, err := h.Store.LoadLocations(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	locations, err = catalog.DeleteRecord(locations, key)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.Store.SaveLocations(ctx, locations); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location deleted successfully", "locations": locations})
}
