package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vehicle-rental-api-server/internal/models"
	"vehicle-rental-api-server/internal/socket"
)

// FormHandler stores contact-form submissions and serves them to the admin
// console.
type FormHandler struct {
	DB  *mongo.Database
	Hub *socket.Hub
}

type ContactFormRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" binding:"required"`
}

// SubmitForm accepts a storefront contact-form submission.
func (h *FormHandler) SubmitForm(c *gin.Context) {
	var req ContactFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form := models.ContactForm{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		Timestamp: time.Now(),
	}
	result, err := h.DB.Collection("forms").InsertOne(context.Background(), form)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit form"})
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		form.ID = oid
	}

	h.Hub.Broadcast(socket.Event{Type: socket.EventFormSubmitted, Payload: form})
	c.JSON(http.StatusCreated, gin.H{"message": "Form submitted successfully", "id": form.ID})
}

// ListForms returns all submissions, newest first.
func (h *FormHandler) ListForms(c *gin.Context) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := h.DB.Collection("forms").Find(context.Background(), bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query forms"})
		return
	}
	defer cursor.Close(context.Background())

	var forms []models.ContactForm
	if err := cursor.All(context.Background(), &forms); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode forms"})
		return
	}
	if forms == nil {
		forms = []models.ContactForm{}
	}

	c.JSON(http.StatusOK, forms)
}

// DeleteForm removes one submission.
func (h *FormHandler) DeleteForm(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form id"})
		return
	}

	result, err := h.DB.Collection("forms").DeleteOne(context.Background(), bson.M{"_id": oid})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete form"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Form deleted successfully"})
}
