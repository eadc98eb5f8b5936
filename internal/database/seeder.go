// server/internal/database/seeder.go
package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"vehicle-rental-api-server/config"
	"vehicle-rental-api-server/internal/auth"
	"vehicle-rental-api-server/internal/models"
)

// SeedAdmin creates the initial admin account if none exists yet.
func SeedAdmin(db *mongo.Database, cfg config.Config, log *logrus.Logger) error {
	email := cfg.Seed.AdminEmail
	password := cfg.Seed.AdminPassword
	if email == "" || password == "" {
		log.Info("No seed admin configured. Seeding skipped.")
		return nil
	}

	userCollection := db.Collection("users")

	count, err := userCollection.CountDocuments(context.Background(), bson.M{"email": email})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info("Admin already exists. Seeding skipped.")
		return nil
	}

	log.Info("Admin not found. Seeding...")
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		UserUID:  uuid.New().String(),
		Email:    email,
		Password: hashedPassword,
		Role:     models.RoleAdmin,
		Name:     "Administrator",
	}
	if _, err := userCollection.InsertOne(context.Background(), admin); err != nil {
		return err
	}

	log.Info("Admin seeded successfully.")
	return nil
}
