package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"allball/practice-server/internal/api"
	"allball/practice-server/internal/billing"
	"allball/practice-server/internal/config"
	"allball/practice-server/internal/entitlement"
	"allball/practice-server/internal/media"
	"allball/practice-server/internal/runner"
	"allball/practice-server/internal/service"
	"allball/practice-server/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting AllBall Practice Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Storage ---
	st, err := openStore(cfg.Storage)
	if err != nil {
		log.Fatalf("FATAL: Could not open %s store: %v", cfg.Storage.Backend, err)
	}
	defer func() {
		log.Println("Closing store...")
		if err := st.Close(context.Background()); err != nil {
			log.Printf("ERROR: Failed to close store: %v", err)
		}
	}()
	log.Printf("Storage ready (backend=%s)", cfg.Storage.Backend)

	ctx := context.Background()

	// --- State containers ---
	log.Println("Initializing state containers...")
	playerService := service.NewPlayerService(ctx, st)
	drillService := service.NewDrillService(ctx, st, playerService)
	sessionService := service.NewSessionService(ctx, st, playerService)
	templateService := service.NewTemplateService(ctx, st, sessionService)
	settingsService := service.NewSettingsService(ctx, st)

	// Player deletion cascades into drill assignments and the draft form.
	playerService.AttachCleanups(drillService, sessionService)

	// --- Entitlements and billing ---
	entitlementService := entitlement.NewService(ctx, st, entitlement.Plan(cfg.Auth.DefaultPlan))
	billingService := billing.NewStripeService(cfg.Stripe.SecretKey, cfg.Server.ClientOrigin, cfg.Stripe.WebhookSecret)
	prices := entitlement.PriceTable{
		ProMonth: cfg.Stripe.PriceProMonth,
		OrgMonth: cfg.Stripe.PriceOrgMonth,
	}

	// --- Media storage (optional) ---
	var videoStorage media.VideoStorage
	if cfg.S3.BucketName != "" {
		videoStorage, err = media.NewS3Storage(cfg.S3)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize video storage: %v", err)
		}
	} else {
		log.Println("No S3 bucket configured; drill-video media routes disabled.")
	}

	// --- On-court runner and stopwatch ---
	onCourt := runner.New(func(message string) {
		log.Printf("On-court: %s", message)
	})
	practiceTimer := runner.NewPracticeTimer()

	runnerCtx, cancelRunners := context.WithCancel(context.Background())
	defer cancelRunners()
	go onCourt.Run(runnerCtx)
	go practiceTimer.Run(runnerCtx)

	// --- Gin engine and routes ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default()

	log.Println("Setting up API routes...")
	api.SetupRoutes(router, api.Services{
		Players:      playerService,
		Drills:       drillService,
		Sessions:     sessionService,
		Templates:    templateService,
		Settings:     settingsService,
		Entitlements: entitlementService,
		Billing:      billingService,
		Prices:       prices,
		Media:        videoStorage,
		Runner:       onCourt,
		Timer:        practiceTimer,
		JWTSecret:    cfg.Auth.JWTSecret,
		ClientOrigin: cfg.Server.ClientOrigin,
	})

	// --- HTTP server with graceful shutdown ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	cancelRunners()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}

// openStore selects the blob-store backend from config.
func openStore(cfg config.StorageConfig) (store.Store, error) {
	switch cfg.Backend {
	case "mongo":
		return store.NewMongoStore(cfg.MongoURI, cfg.MongoName)
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		return store.NewSQLiteStore(cfg.SQLitePath)
	}
}
