package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"athena/cmd/sweeper/jobs"
	"athena/internal/clock"
	"athena/internal/config"
	"athena/internal/database"
	"athena/internal/external"
	"athena/internal/logger"
	"athena/internal/messaging"
	"athena/internal/repository"
	"athena/internal/service"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log := logger.Get()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", "error", err)
	}
	defer natsClient.Close()

	repos := repository.NewRepositories(db)
	notifier := external.NewNotificationClient(cfg.Notification)
	payments := external.NewPaymentURLBuilder(cfg.Payment)

	// No Redis locker here: the sweeper only deletes, and deletes compete
	// through the store's transactions.
	services := service.NewServices(repos, notifier, natsClient, nil, payments, clock.NewSystem(), cfg.Booking)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	job := jobs.NewBookingExpirationJob(services.Bookings, cfg.Sweeper.Interval)
	job.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down sweeper...")
	job.Stop()
	log.Info("Sweeper stopped")
}
