package main

import (
	"os"

	"wastebooking/internal/config"
	"wastebooking/internal/database"
	"wastebooking/internal/middleware"
	"wastebooking/internal/modules/auth"
	"wastebooking/internal/modules/booking"
	"wastebooking/internal/modules/municipality"
	jwtsvc "wastebooking/internal/pkg/jwt"
	"wastebooking/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	if cfg.Auth.JWTSecret == "" {
		logrus.Fatal("auth.jwt_secret must be set (WASTE_AUTH_JWT_SECRET)")
	}
	if cfg.Auth.StaffPassword == "" {
		logrus.Fatal("auth.staff_password must be set (WASTE_AUTH_STAFF_PASSWORD)")
	}

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	if err := repository.AutoMigrate(db); err != nil {
		logrus.WithError(err).Fatal("failed to migrate database")
	}

	bookingRepo := repository.NewBookingRepository(db)

	municipalityClient := municipality.NewHTTPClient(cfg.Municipality.URL, cfg.Municipality.Timeout)
	municipalityService := municipality.NewService(municipalityClient, cfg.Municipality.CacheTTL)
	municipalityHandler := municipality.NewHandler(municipalityService)

	bookingService := booking.NewService(bookingRepo, municipalityService, cfg.Booking.SlotCapacity)
	bookingHandler := booking.NewHandler(bookingService)
	staffHandler := booking.NewStaffHandler(bookingService)

	jwtService := jwtsvc.New(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService, err := auth.NewService(cfg.Auth.StaffUsername, cfg.Auth.StaffPassword, jwtService)
	if err != nil {
		logrus.WithError(err).Fatal("failed to set up staff auth")
	}
	authHandler := auth.NewHandler(authService)

	gin.SetMode(cfg.Server.Mode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS())

	api := router.Group("/api")
	{
		bookingHandler.RegisterRoutes(api)
		municipalityHandler.RegisterRoutes(api)
		authHandler.RegisterRoutes(api)
	}

	staff := api.Group("/staff")
	staff.Use(middleware.StaffAuth(jwtService))
	{
		staffHandler.RegisterRoutes(staff)
	}

	logrus.WithField("port", cfg.Server.Port).Info("starting server")
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
