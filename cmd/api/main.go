package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Neoshock-inc/raffle-proyect-sub004/api/routes"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/config"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/handlers"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/repositories"
	mongorepo "github.com/Neoshock-inc/raffle-proyect-sub004/internal/repositories/mongodb"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/services"
	"github.com/Neoshock-inc/raffle-proyect-sub004/pkg/mailer"
	"github.com/Neoshock-inc/raffle-proyect-sub004/pkg/mongodb"
	"github.com/Neoshock-inc/raffle-proyect-sub004/pkg/payphone"
	"github.com/Neoshock-inc/raffle-proyect-sub004/pkg/pixel"
	"github.com/Neoshock-inc/raffle-proyect-sub004/pkg/stripeapi"
	"github.com/Neoshock-inc/raffle-proyect-sub004/pkg/token"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
)

func main() {
	// .env is optional; real deployments pass environment variables directly
	_ = godotenv.Load()

	cfg, err := config.Load(config.GetEnv("CONFIG_PATH", "."))
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	var tenantRepo repositories.TenantRepository = mongorepo.NewTenantRepository(db)
	var raffleRepo repositories.RaffleRepository = mongorepo.NewRaffleRepository(db)
	var poolRepo repositories.NumberPoolRepository = mongorepo.NewNumberPoolRepository(db)
	var assignmentRepo repositories.AssignmentRepository = mongorepo.NewAssignmentRepository(db)
	var packageRepo repositories.TicketPackageRepository = mongorepo.NewTicketPackageRepository(db)
	var invoiceRepo repositories.InvoiceRepository = mongorepo.NewInvoiceRepository(db)
	var referralRepo repositories.ReferralRepository = mongorepo.NewReferralRepository(db)
	var adminUserRepo repositories.AdminUserRepository = mongorepo.NewAdminUserRepository(db)

	// Outbound clients
	purchaseTokens := token.NewService(cfg.Token.Secret, time.Duration(cfg.Token.TTLMinutes)*time.Minute)
	stripeClient := stripeapi.NewClient(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret, cfg.Stripe.MockAPI)
	payphoneClient := payphone.NewClient(cfg.Payphone.BaseURL, cfg.Payphone.Token, cfg.Payphone.StoreID, cfg.Payphone.MockAPI)
	mailClient := mailer.NewClient(cfg.Mailer.BaseURL, cfg.Mailer.APIKey, cfg.Mailer.FromAddress, cfg.Mailer.MockMailer)
	pixelClient := pixel.NewClient(cfg.Pixel.PixelID, cfg.Pixel.AccessToken, cfg.Pixel.MockAPI)

	// Services
	authService := services.NewAuthService(adminUserRepo, cfg)
	tenantService := services.NewTenantService(tenantRepo)
	raffleService := services.NewRaffleService(raffleRepo)
	packageService := services.NewTicketPackageService(packageRepo, raffleRepo)
	poolService := services.NewPoolService(poolRepo, raffleRepo)
	assignmentService := services.NewAssignmentService(assignmentRepo, raffleRepo)
	referralService := services.NewReferralService(referralRepo, assignmentService)
	invoiceService := services.NewInvoiceService(invoiceRepo, raffleRepo, referralRepo, mailClient, pixelClient)
	checkoutService := services.NewCheckoutService(raffleRepo, invoiceRepo, tenantRepo, purchaseTokens, stripeClient, payphoneClient, invoiceService, mailClient, cfg)

	// Handlers
	h := &routes.Handlers{
		Auth:          handlers.NewAuthHandler(authService),
		Tenant:        handlers.NewTenantHandler(tenantService),
		Raffle:        handlers.NewRaffleHandler(raffleService),
		TicketPackage: handlers.NewTicketPackageHandler(packageService),
		Pool:          handlers.NewPoolHandler(poolService),
		Assignment:    handlers.NewAssignmentHandler(assignmentService),
		Referral:      handlers.NewReferralHandler(referralService),
		Checkout:      handlers.NewCheckoutHandler(checkoutService),
		Payphone:      handlers.NewPayphoneHandler(checkoutService),
		Webhook:       handlers.NewWebhookHandler(stripeClient, invoiceService),
		Invoice:       handlers.NewInvoiceHandler(invoiceService),
	}

	router := routes.SetupRouter(cfg, h)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}
	slog.Info("server exited")
}

// setupLogger installs the process-wide structured logger
func setupLogger(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
