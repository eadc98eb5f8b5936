// server/cmd/api/main.go
package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vehicle-rental-api-server/config"
	"vehicle-rental-api-server/internal/api/routes"
	"vehicle-rental-api-server/internal/auth"
	"vehicle-rental-api-server/internal/catalog"
	"vehicle-rental-api-server/internal/database"
	"vehicle-rental-api-server/internal/rental"
	"vehicle-rental-api-server/internal/s3"
	"vehicle-rental-api-server/internal/socket"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// 1. Load configuration (.env first so viper sees the variables)
	_ = godotenv.Load()
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	// 2. Connect to MongoDB
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
	db := client.Database(cfg.Mongo.DBName)
	log.WithField("db", cfg.Mongo.DBName).Info("Connected to MongoDB")

	// 3. Seed the initial admin account
	if err := database.SeedAdmin(db, cfg, log); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	// 4. Build the components
	authService, err := auth.NewService(cfg.JWT)
	if err != nil {
		log.Fatalf("Failed to initialize auth: %v", err)
	}

	store := catalog.NewMongoStore(db)
	ledger := rental.NewLedger(db)
	stockService := &rental.Service{Catalog: store, Ledger: ledger, Log: log}
	wsHub := socket.NewHub(log)

	// Image upload is optional; without a bucket the endpoint reports 503.
	var uploader *s3.Uploader
	if cfg.S3.Bucket != "" {
		uploader, err = s3.NewUploader(cfg.S3)
		if err != nil {
			log.Fatalf("Failed to initialize S3 uploader: %v", err)
		}
	}

	// 5. Wire everything into the router
	router := routes.SetupRouter(cfg, db, store, ledger, stockService, authService, uploader, wsHub)

	// 6. Start server
	log.WithField("port", cfg.Server.Port).Info("Starting API server")
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
