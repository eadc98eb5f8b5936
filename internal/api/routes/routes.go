// server/internal/api/routes/routes.go
package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"

	"vehicle-rental-api-server/config"
	"vehicle-rental-api-server/internal/api/handlers"
	"vehicle-rental-api-server/internal/api/middleware"
	"vehicle-rental-api-server/internal/auth"
	"vehicle-rental-api-server/internal/catalog"
	"vehicle-rental-api-server/internal/rental"
	"vehicle-rental-api-server/internal/s3"
	"vehicle-rental-api-server/internal/socket"
)

// SetupRouter wires the handlers onto the route tree.
func SetupRouter(
	cfg config.Config,
	db *mongo.Database,
	store catalog.Store,
	ledger *rental.Ledger,
	stockService *rental.Service,
	authService *auth.Service,
	s3Uploader *s3.Uploader,
	wsHub *socket.Hub,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(middleware.Metrics())

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	authHandler := &handlers.AuthHandler{DB: db, AuthService: authService}
	userHandler := &handlers.UserHandler{DB: db}
	catalogHandler := &handlers.CatalogHandler{Store: store}
	brandHandler := &handlers.BrandHandler{Store: store}
	modelHandler := &handlers.ModelHandler{Store: store}
	vehicleHandler := &handlers.VehicleHandler{Store: store, Uploader: s3Uploader}
	locationHandler := &handlers.LocationHandler{Store: store}
	reservationHandler := &handlers.ReservationHandler{Service: stockService, Ledger: ledger, Store: store, Hub: wsHub}
	rentalAdminHandler := &handlers.RentalAdminHandler{Ledger: ledger, Store: store}
	formHandler := &handlers.FormHandler{DB: db, Hub: wsHub}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub, AuthService: authService}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := router.Group("/api/v1")
	{
		// === PUBLIC ROUTES ===

		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		public := apiV1.Group("/")
		{
			public.GET("/catalog/:category", catalogHandler.GetCategory)
			public.GET("/catalog/:category/vehicles/:id", catalogHandler.GetVehicle)
			public.GET("/locations", locationHandler.GetLocations)
			public.POST("/forms", formHandler.SubmitForm)
		}

		// === PROTECTED ROUTES ===

		protected := apiV1.Group("/")
		protected.Use(middleware.Authenticate(authService))
		{
			users := protected.Group("/users")
			{
				users.GET("/me", userHandler.GetMe)
				users.PUT("/me", userHandler.UpdateMe)
			}

			reservations := protected.Group("/reservations")
			{
				reservations.POST("/", reservationHandler.CreateReservation)
				reservations.GET("/my", reservationHandler.MyReservations)
				reservations.POST("/:id/cancel", reservationHandler.CancelReservation)
			}
		}

		// === ADMIN ROUTES ===

		// Browsers cannot set headers on WebSocket requests; the handler
		// checks the token itself, so it sits outside the auth middleware.
		apiV1.GET("/admin/ws", webSocketHandler.ServeWs)

		admin := apiV1.Group("/admin")
		admin.Use(middleware.Authenticate(authService))
		admin.Use(middleware.Authorize("admin"))
		{
			adminCatalog := admin.Group("/catalog/:category")
			{
				brands := adminCatalog.Group("/brands")
				{
					brands.POST("/", brandHandler.CreateBrand)
					brands.PUT("/:brandId", brandHandler.UpdateBrand)
					brands.DELETE("/:brandId", brandHandler.DeleteBrand)

					brandModels := brands.Group("/:brandId/models")
					{
						brandModels.POST("/", modelHandler.AddModel)
						brandModels.PUT("/:key", modelHandler.UpdateModel)
						brandModels.DELETE("/:key", modelHandler.DeleteModel)
					}
				}

				vehicles := adminCatalog.Group("/vehicles")
				{
					vehicles.POST("/", vehicleHandler.CreateVehicle)
					vehicles.PUT("/:key", vehicleHandler.UpdateVehicle)
					vehicles.DELETE("/:key", vehicleHandler.DeleteVehicle)
				}
			}

			admin.POST("/vehicles/image", vehicleHandler.UploadImage)

			locations := admin.Group("/locations")
			{
				locations.POST("/", locationHandler.CreateLocation)
				locations.PUT("/:key", locationHandler.UpdateLocation)
				locations.DELETE("/:key", locationHandler.DeleteLocation)
			}

			adminUsers := admin.Group("/users")
			{
				adminUsers.GET("/", userHandler.GetAllUsers)
				adminUsers.PUT("/:uid/role", userHandler.UpdateUserRole)
			}

			forms := admin.Group("/forms")
			{
				forms.GET("/", formHandler.ListForms)
				forms.DELETE("/:id", formHandler.DeleteForm)
			}

			rentals := admin.Group("/rentals")
			{
				rentals.GET("/", rentalAdminHandler.GetAllRentals)
				rentals.POST("/purge", rentalAdminHandler.PurgeRentals)
			}
		}
	}

	return router
}
