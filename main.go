package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chequered/config"
	"chequered/cron"
	"chequered/database"
	"chequered/database/repository"
	"chequered/handlers"
	"chequered/middleware"
	"chequered/routes"
	"chequered/services/admin"
	"chequered/services/booking"
	"chequered/services/checkin"
	"chequered/services/tasks"
	"chequered/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	cacheClient := utils.GetCacheClient()

	// repositories.
	experienceRepo, err := repository.NewCachedExperienceRepo(repository.NewMongoExperienceRepo(), config.AppConfig.ExperienceCacheSize)
	if err != nil {
		logger.Fatal("main: failed to build experience cache", zap.Error(err))
	}
	scheduleRepo := repository.NewMongoScheduleRepo()
	slotRepo := repository.NewMongoSlotRepo()
	bookingRepo := repository.NewMongoBookingRepo()

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	for name, ensure := range map[string]func(context.Context) error{
		"experiences": experienceRepo.EnsureIndexes,
		"schedules":   scheduleRepo.EnsureIndexes,
		"slots":       slotRepo.EnsureIndexes,
		"bookings":    bookingRepo.EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			logger.Fatal("main: failed to ensure indexes", zap.String("collection", name), zap.Error(err))
		}
	}
	cancelIndexes()

	// async hold expiry.
	queueClient := asynq.NewClient(cron.QueueRedisOpt())
	defer queueClient.Close()

	// services.
	location := config.DefaultLocation()
	bookingService := &booking.DefaultBookingService{
		Experiences:     experienceRepo,
		Schedules:       scheduleRepo,
		Slots:           slotRepo,
		Bookings:        bookingRepo,
		Holds:           booking.NewRedisHoldStore(cacheClient),
		Expiry:          tasks.NewAsynqHoldScheduler(queueClient),
		Logger:          logger.Named("booking"),
		HoldTTL:         config.HoldTTL(),
		LookaheadDays:   config.AppConfig.BookingLookaheadDays,
		DefaultLocation: location,
	}
	checkInService := &checkin.DefaultCheckInService{
		Bookings:        bookingRepo,
		Experiences:     experienceRepo,
		Logger:          logger.Named("checkin"),
		DefaultLocation: location,
		OpenBefore:      config.CheckInOpenBefore(),
	}
	adminService := &admin.DefaultAdminService{
		Experiences:     experienceRepo,
		Schedules:       scheduleRepo,
		Slots:           slotRepo,
		Bookings:        bookingRepo,
		SlotSource:      bookingService,
		Logger:          logger.Named("admin"),
		DefaultLocation: location,
	}

	worker := cron.InitHoldWorker(bookingService)

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, cacheClient, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	if err := router.SetTrustedProxies(config.TrustedProxyList()); err != nil {
		logger.Fatal("Invalid TRUSTED_PROXIES", zap.Error(err))
	}
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Visitor:       handlers.NewVisitorHandler(bookingService),
		Staff:         handlers.NewStaffHandler(checkInService),
		Admin:         handlers.NewAdminHandler(adminService),
		HealthHandler: handlers.Health,
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
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	if err := database.CloseDB(ctx); err != nil {
		logger.Sugar().Errorf("main: failed to disconnect MongoDB: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
