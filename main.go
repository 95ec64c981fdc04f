// File: slotwise/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"slotwise/config"
	"slotwise/cron"
	"slotwise/database"
	bookingRepo "slotwise/database/repository/booking"
	notificationRepo "slotwise/database/repository/notification"
	profileRepo "slotwise/database/repository/profile"
	slotRepo "slotwise/database/repository/slot"
	"slotwise/handlers"
	"slotwise/middleware"
	"slotwise/routes"
	"slotwise/services/booking"
	"slotwise/services/notification"
	"slotwise/services/schedule"
	"slotwise/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	mongoClient, err := database.Connect(config.AppConfig.DatabaseURL)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	defer database.Disconnect(mongoClient)
	db := mongoClient.Database(config.AppConfig.DatabaseName)

	utils.InitSummaryCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	slots := slotRepo.NewMongoSlotStore(db)
	bookings := bookingRepo.NewMongoBookingStore(db)
	notifications := notificationRepo.NewMongoNotificationStore(db)
	profiles := profileRepo.NewMongoProfileStore(db)

	for name, ensure := range map[string]func() error{
		"slots":         slots.EnsureIndexes,
		"bookings":      bookings.EnsureIndexes,
		"notifications": notifications.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Sugar().Warnf("main: failed to ensure %s indexes: %v", name, err)
		}
	}

	// services.
	summarySync := &schedule.DefaultSummarySyncer{
		Slots:    slots,
		Profiles: profiles,
		Cache:    utils.GetSummaryCacheClient(),
		CacheTTL: config.SummaryCacheTTL(),
		Logger:   logger,
	}

	queueClient := cron.NewQueueClient()
	defer queueClient.Close()

	scheduleService := &schedule.DefaultScheduleService{
		Slots:        slots,
		Sync:         summarySync,
		Queue:        queueClient,
		Logger:       logger,
		BatchTimeout: config.SaveBatchTimeout(),
		HorizonWeeks: config.AppConfig.PropagationHorizonWeeks,
	}

	notificationService := &notification.DefaultNotificationService{
		Store: notifications,
	}

	bookingService := &booking.DefaultBookingService{
		Bookings:      bookings,
		Notifications: notificationService,
		Slots:         slots,
		Sync:          summarySync,
		RequestTTL:    config.BookingRequestTTL(),
		Logger:        logger,
	}

	// Background worker for deferred summary resyncs.
	cron.InitResyncWorker(summarySync)
	utils.StartHealthMonitor([]*redis.Client{utils.GetSummaryCacheClient()}, mongoClient)

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		Schedule:     handlers.NewScheduleHandler(scheduleService),
		Booking:      handlers.NewBookingHandler(bookingService),
		Notification: handlers.NewNotificationHandler(notificationService),
	}
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
