package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vehicle-rental-api-server/internal/catalog"
	"vehicle-rental-api-server/internal/models"
	"vehicle-rental-api-server/internal/s3"
)

// VehicleHandler is the admin CRUD surface for vehicle records.
type VehicleHandler struct {
	Store    catalog.Store
	Uploader *s3.Uploader
}

type VehiclePayload struct {
	BrandID            int      `json:"brandId" binding:"min=0"`
	ModelID            int      `json:"modelId" binding:"min=0"`
	Image              string   `json:"image"`
	BodyType           string   `json:"bodyType"`
	Power              string   `json:"power"`
	EngineSize         string   `json:"engineSize"`
	Gearbox            string   `json:"gearbox" binding:"required,oneof=Manual Automatic"`
	FuelType           string   `json:"fuelType" binding:"required,oneof=Gas Diesel Hybrid Electric"`
	Year               int      `json:"year" binding:"required,min=1900"`
	PricePerDay        float64  `json:"pricePerDay" binding:"required,gt=0"`
	VehicleCount       int      `json:"vehicleCount" binding:"min=0"`
	AvailableLocations []string `json:"availableLocations"`
}

func (p *VehiclePayload) toVehicle(id int) models.Vehicle {
	v := models.Vehicle{
		ID:                 id,
		BrandID:            p.BrandID,
		ModelID:            p.ModelID,
		Image:              p.Image,
		BodyType:           p.BodyType,
		Power:              p.Power,
		EngineSize:         p.EngineSize,
		Gearbox:            p.Gearbox,
		FuelType:           p.FuelType,
		Year:               p.Year,
		PricePerDay:        p.PricePerDay,
		AvailableLocations: p.AvailableLocations,
	}
	v.SetStock(p.VehicleCount)
	return v
}

// CreateVehicle adds a vehicle record at the next free index.
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	var payload VehiclePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	vehicles, err := h.Store.LoadVehicles(ctx, models.Category(category))
	if err != nil {
		respondError(c, err)
		return
	}

	key := catalog.NextKey(vehicles)
	id, _ := strconv.Atoi(key)
	vehicles[key] = payload.toVehicle(id)

	if err := h.Store.SaveVehicles(ctx, models.Category(category), vehicles); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"key": key, "vehicle": vehicles[key]})
}

// UpdateVehicle replaces the record at key.
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	key := c.Param("key")
	var payload VehiclePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	vehicles, err := h.Store.LoadVehicles(ctx, models.Category(category))
	if err != nil {
		respondError(c, err)
		return
	}
	id, _ := strconv.Atoi(key)
	if err := catalog.UpdateRecord(vehicles, key, payload.toVehicle(id)); err != nil {
		respondError(c, err)
		return
	}
	if err := h.Store.SaveVehicles(ctx, models.Category(category), vehicles); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key, "vehicle": vehicles[key]})
}

// DeleteVehicle removes the record at key and renumbers the survivors,
// keeping each record's embedded id in step with its new key. Reservations
// referencing old ids fall back to their denormalized snapshots.
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	key := c.Param("key")

	ctx := c.Request.Context()
	vehicles, err := h.Store.LoadVehicles(ctx, models.Category(category))
	if err != nil {
		respondError(c, err)
		return
	}
	vehicles, err = catalog.DeleteRecord(vehicles, key)
	if err != nil {
		respondError(c, err)
		return
	}
	for k, v := range vehicles {
		v.ID, _ = strconv.Atoi(k)
		vehicles[k] = v
	}

	if err := h.Store.SaveVehicles(ctx, models.Category(category), vehicles); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted successfully", "vehicles": vehicles})
}

// UploadImage stores a vehicle image on S3 and returns the URL for the
// vehicle form.
func (h *VehicleHandler) UploadImage(c *gin.Context) {
	if h.Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image upload is not configured"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectKey := "vehicles/" + uuid.New().String() + filepath.Ext(fileHeader.Filename)

	url, err := h.Uploader.UploadFile(c.Request.Context(), file, objectKey, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
