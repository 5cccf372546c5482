// File: studiobook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studiobook/config"
	"studiobook/cron"
	"studiobook/database"
	analyticsRepo "studiobook/database/repository/analytics"
	bookingsRepo "studiobook/database/repository/bookings"
	plansRepo "studiobook/database/repository/plans"
	pointsRepo "studiobook/database/repository/points"
	scheduleRepo "studiobook/database/repository/schedule"
	userRepoPkg "studiobook/database/repository/user"
	"studiobook/handlers"
	"studiobook/middleware"
	"studiobook/routes"
	"studiobook/services/booking"
	"studiobook/services/payment"
	"studiobook/services/plans"
	"studiobook/services/points"
	"studiobook/services/schedule"
	"studiobook/services/session"
	"studiobook/services/storage"
	"studiobook/services/system"
	"studiobook/services/tasks"
	"studiobook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitPaymentCache()
	utils.FirebaseInit()

	clock := utils.NewConfiguredStudioClock()

	var avatarStore storage.AvatarStore
	if config.AppConfig.CloudinaryURL != "" {
		store, err := storage.NewAvatarStore()
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize avatar store: %v", err)
		}
		avatarStore = store
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	schedRepo := scheduleRepo.NewFirestoreScheduleRepo()
	ptsRepo := pointsRepo.NewFirestorePointsRepo()
	bkgRepo := bookingsRepo.NewFirestoreBookingsRepo()
	planRepo := plansRepo.NewFirestorePlansRepo()
	userRepo := userRepoPkg.NewFirestoreUserRepo()
	eventRepo := analyticsRepo.NewMongoAnalyticsRepo()

	// services.
	sessionService := session.NewDefaultSessionService(utils.GetAuthClient(), userRepo, avatarStore)

	scheduleService := &schedule.DefaultScheduleService{
		Repo:  schedRepo,
		Clock: clock,
	}

	pointsService := &points.DefaultPointsService{
		Repo: ptsRepo,
	}

	bookingService := &booking.DefaultBookingService{
		Schedule: scheduleService,
		Bookings: bkgRepo,
		Points:   ptsRepo,
		Callable: booking.NewCallableClient(config.AppConfig.FunctionsBaseURL),
		Clock:    clock,
	}

	plansService := &plans.DefaultPlansService{
		Repo: planRepo,
	}
	if err := plansService.Start(context.Background()); err != nil {
		logger.Sugar().Warnf("main: plan catalog watch unavailable, serving direct reads: %v", err)
	}
	defer plansService.Close()

	taskClient := tasks.NewClient()
	defer taskClient.Close()

	paymentService := &payment.DefaultPaymentService{
		Gateway:   payment.NewStripeGateway(),
		Store:     payment.NewAttemptStore(),
		Plans:     plansService,
		Finalizer: taskClient,
	}
	defer paymentService.Close()

	maintenanceService := &system.DefaultMaintenanceService{
		Firestore: utils.GetFirestoreClient(),
		Cache:     utils.GetCacheClient(),
		TTL:       time.Duration(config.AppConfig.MaintenanceCacheTTLSec) * time.Second,
	}

	// Background workers and monitors.
	cron.InitPaymentWorker(paymentService)
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetPaymentCacheClient()},
		database.MongoClient,
	)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Sessions:    sessionService,
		Booking:     bookingService,
		Schedule:    scheduleService,
		Points:      pointsService,
		Plans:       plansService,
		Payments:    paymentService,
		Analytics:   eventRepo,
		Maintenance: maintenanceService,
		Clock:       clock,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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
