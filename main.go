// File: voyago/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voyago/config"
	"voyago/database"
	bookingRepoPkg "voyago/database/repository/booking"
	catalogRepoPkg "voyago/database/repository/catalog"
	paylogRepoPkg "voyago/database/repository/paylog"
	"voyago/handlers"
	"voyago/middleware"
	"voyago/routes"
	"voyago/services/booking"
	"voyago/services/payment"
	"voyago/services/storage"
	"voyago/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	storageService, err := storage.NewCloudinaryStorage()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories. Subject lookups are served through the generic Redis
	// cache; payment resolves go through the dedicated payment mirror.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	catalogRepo := catalogRepoPkg.NewCachedCatalogRepo(
		catalogRepoPkg.NewMongoCatalogRepo(),
		utils.NewStringCache(utils.GetCacheClient()),
	)
	paymentLogRepo := paylogRepoPkg.NewMongoPaymentLogRepo()

	// payment gateways, selected by explicit configuration.
	gateways := payment.NewRegistry(
		payment.NewPaynowGateway(
			config.AppConfig.PaynowIntegrationID,
			config.AppConfig.PaynowIntegrationKey,
			config.AppConfig.PaynowBaseURL,
			logger,
		),
		payment.NewStripeGateway(logger),
	)

	// services.
	bookingService := booking.NewBookingService(
		bookingRepo,
		catalogRepo,
		paymentLogRepo,
		gateways,
		storageService,
		utils.NewStringCache(utils.GetPaymentCacheClient()),
		logger,
	)

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	catalogHandler := handlers.NewCatalogHandler(catalogRepo)

	// Register routes.
	routes.RegisterRoutes(router, bookingHandler, catalogHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
