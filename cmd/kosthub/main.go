package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/riandyrn/otelchi"
	"github.com/robfig/cron/v3"

	"github.com/kosthub/kosthub/internal/adapter/blob"
	"github.com/kosthub/kosthub/internal/adapter/fsm"
	"github.com/kosthub/kosthub/internal/adapter/identity"
	"github.com/kosthub/kosthub/internal/adapter/otel"
	"github.com/kosthub/kosthub/internal/adapter/river"
	"github.com/kosthub/kosthub/internal/adapter/sqlite"
	"github.com/kosthub/kosthub/internal/app"
	"github.com/kosthub/kosthub/internal/domain"

	handler "github.com/kosthub/kosthub/internal/adapter/http"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("kosthub: %v", err)
	}
}

func run() error {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	port := envOrDefault("PORT", "8080")
	dbPath := envOrDefault("DATABASE_PATH", "kosthub.db")
	blobDir := envOrDefault("BLOB_DIR", "blobs")
	baseURL := envOrDefault("BASE_URL", "http://localhost:"+port+"/files")
	secret := []byte(envOrDefault("APP_SECRET", "dev-secret-change-me"))

	ctx := context.Background()

	// --- Observability ---
	providers, err := otel.Setup(ctx, otel.ConfigFromEnv())
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			slog.Error("otel shutdown", "error", err)
		}
	}()

	// --- Adapters (out) ---
	db, err := otel.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	if err := sqlite.Migrate(db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	bookings := sqlite.NewBookingRepository(db)
	payments := sqlite.NewPaymentRepository(db)
	contracts := sqlite.NewContractRepository(db)
	maintenance := sqlite.NewMaintenanceRepository(db)
	notifications := sqlite.NewNotificationRepository(db)
	reviews := sqlite.NewReviewRepository(db)
	wishlists := sqlite.NewWishlistRepository(db)
	profiles := sqlite.NewProfileRepository(db)
	properties := sqlite.NewPropertyRepository(db)
	rooms := sqlite.NewRoomRepository(db)

	blobs := blob.New(blobDir, baseURL, secret)
	idp := identity.New(db, secret, 24*time.Hour)

	// --- Async job queue ---
	riverClient, err := river.Setup(ctx, db, slog.Default())
	if err != nil {
		return fmt.Errorf("river setup: %w", err)
	}
	if err := riverClient.Start(ctx); err != nil {
		return fmt.Errorf("starting river: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := riverClient.Stop(stopCtx); err != nil {
			slog.Error("river stop", "error", err)
		}
	}()

	publisher := otel.NewTracingPublisher(river.NewPublisher(riverClient))

	// --- Application ---
	bookingValidator := fsm.New(domain.BookingTransitions)
	paymentValidator := fsm.New(domain.PaymentTransitions)
	maintenanceValidator := fsm.New(domain.MaintenanceTransitions)

	tracedBookings := otel.NewTracingBookingRepository(bookings)

	accountSvc := app.NewAccountService(idp, profiles, blobs)
	propertySvc := app.NewPropertyService(properties, rooms, blobs)
	bookingSvc := app.NewBookingService(tracedBookings, rooms, bookingValidator, publisher, blobs)
	paymentSvc := app.NewPaymentService(payments, tracedBookings, paymentValidator, publisher, blobs)
	contractSvc := app.NewContractService(contracts, tracedBookings, publisher)
	maintenanceSvc := app.NewMaintenanceService(maintenance, properties, maintenanceValidator, publisher, blobs)
	notificationSvc := app.NewNotificationService(notifications)
	reviewSvc := app.NewReviewService(reviews, tracedBookings)
	wishlistSvc := app.NewWishlistService(wishlists, properties)

	// --- Scheduled sweeps ---
	// Reads already expire contracts lazily; the hourly sweep keeps the data
	// fresh for consumers that never read.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@hourly", func() {
		n, err := contractSvc.ExpireDue(context.Background())
		if err != nil {
			slog.Error("contract expiry sweep", "error", err)
			return
		}
		if n > 0 {
			slog.Info("contract expiry sweep", "expired", n)
		}
	}); err != nil {
		return fmt.Errorf("scheduling expiry sweep: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// --- Adapters (in) ---
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(otelchi.Middleware("kosthub", otelchi.WithChiRoutes(router)))
	router.Use(handler.ActorMiddleware(accountSvc))

	api := humachi.New(router, huma.DefaultConfig("kosthub", "0.1.0"))
	handler.RegisterAuth(api, accountSvc)
	handler.RegisterProperties(api, propertySvc)
	handler.RegisterBookings(api, bookingSvc)
	handler.RegisterPayments(api, paymentSvc)
	handler.RegisterContracts(api, contractSvc)
	handler.RegisterMaintenance(api, maintenanceSvc)
	handler.RegisterNotifications(api, notificationSvc)
	handler.RegisterReviews(api, reviewSvc)
	handler.RegisterWishlist(api, wishlistSvc)
	handler.RegisterFiles(router, blobs)

	// --- Server ---
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("kosthub listening", "port", port)
		slog.Info("api docs", "url", "http://localhost:"+port+"/docs")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-done:
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	slog.Info("stopped")
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
