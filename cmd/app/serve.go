package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"prestigo/internal/auth"
	"prestigo/internal/capacity"
	"prestigo/internal/config"
	"prestigo/internal/db"
	"prestigo/internal/email"
	"prestigo/internal/events"
	"prestigo/internal/logger"
	"prestigo/internal/reservation"
	"prestigo/internal/server"
	"prestigo/internal/session"
	"prestigo/internal/slot"
	"prestigo/internal/store"
	"prestigo/internal/venue"
)

func newServeCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(migrateUp)
		},
	}
	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "run database migrations on startup")
	return cmd
}

func serve(migrateUp bool) error {
	logger.Info("Starting Prestigo")
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	hours, err := cfg.SlotHours()
	if err != nil {
		return err
	}

	database, err := openDatabase(cfg, migrateUp)
	if err != nil {
		return err
	}
	defer database.Close()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	ledger := capacity.NewLedger(rdb)

	st := store.NewSQLStore(database)
	reservations := reservation.NewRepository(st)

	var guard reservation.CapacityGuard
	if cfg.CapacityGuard == "redis" {
		guard = ledger
	}
	writer := reservation.NewWriter(st, guard)

	emailService := email.New(rdb, newSender(cfg), hours.Location)
	defer emailService.Close()
	logger.Info("Email service initialized", "provider", cfg.EmailProvider)

	notifiers := reservation.Notifiers{emailService}
	if cfg.RabbitMQURL != "" {
		publisher, err := events.NewPublisher(cfg.RabbitMQURL, cfg.EventsExchange)
		if err != nil {
			logger.Warn("reservation events disabled", "error", err)
		} else {
			defer publisher.Close()
			notifiers = append(notifiers, events.ReservationNotifier{Sink: publisher})
			logger.Info("Publishing reservation events", "exchange", cfg.EventsExchange)
		}
	}

	venues := venue.NewService(venue.NewRepository(database), hours, slot.NewGenerator(availabilitySource(cfg, reservations, ledger)))
	identity := auth.ContextIdentity{}

	manager := session.NewManager(venues, writer, identity, notifiers, session.Config{
		WriteTimeout:    cfg.WriteTimeout,
		RefreshInterval: cfg.RefreshInterval,
		IdleTTL:         cfg.SessionIdleTTL,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go emailService.Start(ctx)

	managerDone := make(chan struct{})
	go func() {
		defer close(managerDone)
		manager.Run(ctx)
	}()

	srv := server.New(cfg, server.Handlers{
		Venues:       venue.NewHandler(venues),
		Sessions:     session.NewHandler(manager, venues, identity),
		Reservations: reservation.NewHandler(reservations, identity),
		Email:        emailService,
	})

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	// sessions wait for outstanding reservation writes
	cancel()
	<-managerDone

	logger.Info("Server stopped")
	return nil
}

func openDatabase(cfg *config.Config, migrateUp bool) (*sqlx.DB, error) {
	logger.Info("Connecting to database...", "driver", cfg.DatabaseDriver)
	database, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	logger.Info("Database connected")

	if migrateUp {
		if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
			database.Close()
			return nil, err
		}
		logger.Info("Migrations completed")
	}
	return database, nil
}

func newSender(cfg *config.Config) email.Sender {
	switch cfg.EmailProvider {
	case "mailersend":
		return email.NewMailerSendSender(cfg.MailerSendAPIKey, cfg.EmailFrom, cfg.EmailFromName)
	case "none":
		return email.NopSender{}
	default:
		return &email.SMTPSender{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Pass:     cfg.SMTPPass,
			From:     cfg.EmailFrom,
			FromName: cfg.EmailFromName,
		}
	}
}

func availabilitySource(cfg *config.Config, reservations *reservation.Repository, ledger *capacity.Ledger) slot.AvailabilitySource {
	switch cfg.AvailabilitySource {
	case "redis":
		return ledger
	case "full":
		return slot.FullCapacity{}
	default:
		return reservations
	}
}
