package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vehicle-rental-api-server/internal/catalog"
	"vehicle-rental-api-server/internal/models"
)

// BrandHandler is the admin CRUD surface for brand collections. Every write
// re-saves the whole brand document for the category.
type BrandHandler struct {
	Store catalog.Store
}

type BrandRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateBrand adds a brand at the next free index.
func (h *BrandHandler) CreateBrand(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	brands, err := h.Store.LoadBrands(ctx, models.Category(category))
	if err != nil {
		respondError(c, err)
		return
	}

	key, err := catalog.InsertUniqueName(brands, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.Store.SaveBrands(ctx, models.Category(category), brands); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"key": key, "name": brands[key]})
}

// UpdateBrand renames the brand at key. The rename does not cascade into
// model groups or vehicles; they reference the brand by id, not by name.
func (h *BrandHandler) UpdateBrand(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	key := c.Param("brandId")
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	brands, err := h.Store.LoadBrands(ctx, models.Category(category))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := catalog.UpdateRecord(brands, key, req.Name); err != nil {
		respondError(c, err)
		return
	}
	if err := h.Store.SaveBrands(ctx, models.Category(category), brands); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key, "name": req.Name})
}

// DeleteBrand removes the brand and renumbers the rest. Model groups and
// vehicles still pointing at old brand ids are left alone.
func (h *BrandHandler) DeleteBrand(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	key := c.Param("brandId")

	ctx := c.Request.Context()
	brands, err := h.Store.LoadBrands(ctx, models.Category(category))
	if err != nil {
		respondError(c, err)
		return
	}
	brands, err = catalog.DeleteRecord(brands, key)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.Store.SaveBrands(ctx, models.Category(category), brands); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Brand deleted successfully", "brands": brands})
}
