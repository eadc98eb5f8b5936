package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"vehicle-rental-api-server/internal/models"
)

type UserHandler struct {
	DB *mongo.Database
}

// GetMe returns the authenticated user's profile.
func (h *UserHandler) GetMe(c *gin.Context) {
	uid := c.GetString("user_uid")

	var user models.User
	err := h.DB.Collection("users").FindOne(context.Background(), bson.M{"userUID": uid}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

type UpdateProfileRequest struct {
	Name    string `json:"name"`
	Age     int    `json:"age" binding:"omitempty,min=18,max=120"`
	Mobile  string `json:"mobile"`
	Address string `json:"address"`
}

// UpdateMe updates the authenticated user's profile fields.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	uid := c.GetString("user_uid")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := bson.M{"$set": bson.M{
		"name":    req.Name,
		"age":     req.Age,
		"mobile":  req.Mobile,
		"address": req.Address,
	}}
	result, err := h.DB.Collection("users").UpdateOne(context.Background(), bson.M{"userUID": uid}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// GetAllUsers lists every user account for the admin console.
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	cursor, err := h.DB.Collection("users").Find(context.Background(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query users"})
		return
	}
	defer cursor.Close(context.Background())

	var users []models.User
	if err := cursor.All(context.Background(), &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode users"})
		return
	}
	if users == nil {
		users = []models.User{}
	}

	c.JSON(http.StatusOK, users)
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

// UpdateUserRole promotes or demotes an account.
func (h *UserHandler) UpdateUserRole(c *gin.Context) {
	uid := c.Param("uid")

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.DB.Collection("users").UpdateOne(context.Background(),
		bson.M{"userUID": uid}, bson.M{"$set": bson.M{"role": req.Role}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated successfully"})
}
