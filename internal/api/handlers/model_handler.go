package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vehicle-rental-api-server/internal/catalog"
	"vehicle-rental-api-server/internal/models"
)

// ModelHandler manages the model names grouped per brand. A brand has at most
// one group per category; the group is created with its first model and
// removed with its last one.
type ModelHandler struct {
	Store catalog.Store
}

type ModelRequest struct {
	Name string `json:"name" binding:"required"`
}

func brandIDParam(c *gin.Context) (int, bool) {
	brandID, err := strconv.Atoi(c.Param("brandId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "brand id must be an integer"})
		return 0, false
	}
	return brandID, true
}

func findGroup(groups map[string]models.ModelGroup, brandID int) (string, models.ModelGroup, bool) {
	for key, group := range groups {
		if group.BrandID.Int() == brandID {
			return key, group, true
		}
	}
	return "", models.ModelGroup{}, false
}

// AddModel inserts a model name under the brand, creating the group on first
// use.
func (h *ModelHandler) AddModel(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	brandID, ok := brandIDParam(c)
	if !ok {
		return
	}
	var req ModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	groups, err := h.Store.LoadModels(ctx, models.Category(category))
	if err != nil {
		respondError(c, err)
		return
	}

	groupKey, group, found := findGroup(groups, brandID)
	if !found {
		group = models.ModelGroup{BrandID: models.FlexInt(brandID), Models: map[string]string{}}
		groupKey = catalog.InsertRecord(groups, group)
	}

	modelKey, err := catalog.InsertUniqueName(group.Models, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	groups[groupKey] = group

	if err := h.Store.SaveModels(ctx, models.Category(category), groups); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"groupKey": groupKey, "key": modelKey, "name": group.Models[modelKey]})
}

// UpdateModel renames the model at key within the brand's group.
func (h *ModelHandler) UpdateModel(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	brandID, ok := brandIDParam(c)
	if !ok {
		return
	}
	key := c.Param("key")
	var req ModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	groups, err := h.Store.LoadModels(ctx, models.Category(category))
	if err != nil {
		respondError(c, err)
		return
	}
	groupKey, group, found := findGroup(groups, brandID)
	if !found {
		respondError(c, catalog.ErrNotFound)
		return
	}
	if err := catalog.UpdateRecord(group.Models, key, req.Name); err != nil {
		respondError(c, err)
		return
	}
	groups[groupKey] = group

	if err := h.Store.SaveModels(ctx, models.Category(category), groups); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key, "name": req.Name})
}

// DeleteModel removes the model at key and renumbers the rest of the group.
// Deleting the last model deletes the group itself, renumbering the group
// collection too.
func (h *ModelHandler) DeleteModel(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	brandID, ok := brandIDParam(c)
	if !ok {
		return
	}
	key := c.Param("key")

	ctx := c.Request.Context()
	groups, err := h.Store.LoadModels(ctx, models.Category(category))
	if err != nil {
		respondError(c, err)
		return
	}
	groupKey, group, found := findGroup(groups, brandID)
	if !found {
		respondError(c, catalog.ErrNotFound)
		return
	}

	remaining, err := catalog.DeleteRecord(group.Models, key)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(remaining) == 0 {
		groups, err = catalog.DeleteRecord(groups, groupKey)
		if err != nil {
			respondError(c, err)
			return
		}
	} else {
		group.Models = remaining
		groups[groupKey] = group
	}

	if err := h.Store.SaveModels(ctx, models.Category(category), groups); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Model deleted successfully", "models": groups})
}
