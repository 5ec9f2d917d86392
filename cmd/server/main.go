package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"payfam-backend/internal/auth"
	"payfam-backend/internal/cache"
	"payfam-backend/internal/config"
	"payfam-backend/internal/database"
	"payfam-backend/internal/db"
	"payfam-backend/internal/handlers"
	"payfam-backend/internal/health"
	h "payfam-backend/internal/http"
	"payfam-backend/internal/middleware"
	"payfam-backend/internal/repositories"
	"payfam-backend/internal/services"
	"payfam-backend/internal/storage"
	"payfam-backend/internal/whatsapp"
	"payfam-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (dashboard stats will hit the database)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations
	// Uses embedded migrations for standalone binary operation
	log.Println("Running database migrations...")
	migrator := database.NewMigratorWithFS(pool, migrations.FS, ".")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	memberRepo := repositories.NewMemberRepository(pool)
	dueRepo := repositories.NewMonthlyDueRepository(pool)
	txnRepo := repositories.NewPaymentTransactionRepository(pool)
	messageLogRepo := repositories.NewMessageLogRepository(pool)

	// WhatsApp provider is optional; without one the API hands back wa.me
	// deep links and managers send messages from their own phones
	var waProvider whatsapp.Provider
	if cfg.WhatsApp.APIKey != "" && cfg.WhatsApp.PhoneNumberID != "" {
		waProvider = whatsapp.NewCloudAPIService(cfg.WhatsApp.APIKey, cfg.WhatsApp.PhoneNumberID)
		log.Printf("[WhatsApp] Provider configured: %s", waProvider.GetName())
	} else {
		log.Println("[WhatsApp] No provider configured, using deep links only")
	}

	// Report archive is optional as well
	archiver, err := storage.NewReportArchiver(ctx, &cfg.Archive)
	if err != nil {
		log.Printf("[Archive] Disabled: %v", err)
		archiver = nil
	}

	// Initialize services
	userService := services.NewUserService(userRepo, jwtManager)
	memberService := services.NewMemberService(memberRepo)
	dueService := services.NewDueService(dueRepo, txnRepo, memberRepo)
	notificationService := services.NewNotificationService(messageLogRepo, memberRepo, dueService, waProvider)
	reportService := services.NewReportService(dueService, archiver)
	razorpayService := services.NewRazorpayService(
		cfg.Razorpay.KeyID,
		cfg.Razorpay.KeySecret,
		cfg.Razorpay.WebhookSecret,
		dueService,
	)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	memberHandler := handlers.NewMemberHandler(memberService)
	paymentHandler := handlers.NewPaymentHandler(dueService, notificationService)
	reportHandler := handlers.NewReportHandler(reportService)
	messageHandler := handlers.NewMessageHandler(notificationService)
	dashboardHandler := handlers.NewDashboardHandler(dueService)
	razorpayHandler := handlers.NewRazorpayHandler(razorpayService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(
		authHandler,
		userHandler,
		memberHandler,
		paymentHandler,
		reportHandler,
		messageHandler,
		dashboardHandler,
		razorpayHandler,
		healthHandler,
		authMiddleware,
	)

	// Wrap with panic recovery and metrics middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
