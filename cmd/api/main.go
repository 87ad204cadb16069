package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ArowuTest/conomy-backend/api/routes"
	"github.com/ArowuTest/conomy-backend/internal/config"
	"github.com/ArowuTest/conomy-backend/internal/handlers"
	"github.com/ArowuTest/conomy-backend/internal/repositories"
	"github.com/ArowuTest/conomy-backend/internal/repositories/memory"
	mongorepo "github.com/ArowuTest/conomy-backend/internal/repositories/mongodb"
	"github.com/ArowuTest/conomy-backend/internal/services"
	"github.com/ArowuTest/conomy-backend/pkg/jwt"
	mongodb "github.com/ArowuTest/conomy-backend/pkg/mongodb"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// store bundles the repositories of one backing store
type store struct {
	tx          repositories.Transactor
	users       repositories.UserRepository
	team        repositories.TeamRepository
	investments repositories.InvestmentRepository
	recharges   repositories.RechargeRepository
	withdrawals repositories.WithdrawalRepository
	ping        func(ctx context.Context) error
	close       func(ctx context.Context) error
}

func main() {
	// Load .env file if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	setupLogging(cfg.LogLevel)

	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET is not configured")
	}

	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.close(ctx); err != nil {
			log.Printf("Error closing store: %v", err)
		}
	}()

	// Initialize Services
	tokens := jwt.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL(), cfg.JWT.Issuer)
	catalog := services.NewCatalog(cfg.Products)
	referralService := services.NewReferralService(st.users, st.team)
	authService := services.NewAuthService(st.tx, st.users, referralService, tokens)
	ledgerService := services.NewLedgerService(st.tx, st.users, st.investments, st.recharges, st.withdrawals)
	activityService := services.NewActivityService(st.recharges, st.withdrawals, st.investments)
	settlementService := services.NewSettlementService(st.tx, st.users, st.recharges, st.withdrawals)

	handlerDeps := routes.HandlerDependencies{
		Authenticator: authService,
		AuthHandler:   handlers.NewAuthHandler(authService),
		LedgerHandler: handlers.NewLedgerHandler(ledgerService, catalog),
		TeamHandler:   handlers.NewTeamHandler(referralService, activityService),
		AdminHandler:  handlers.NewAdminHandler(settlementService),
		Ping:          st.ping,
	}

	if !strings.EqualFold(cfg.LogLevel, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}
	router := routes.SetupRouter(cfg, handlerDeps)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	slog.Info("Server starting", "port", cfg.Server.Port, "store", cfg.Store, "products", len(catalog.List()))

	// Run server in a goroutine so that it doesn't block
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func openStore(cfg *config.Config) (*store, error) {
	if strings.EqualFold(cfg.Store, "memory") {
		slog.Warn("Using the in-memory store, data is lost on restart")
		mem := memory.New()
		return &store{
			tx:          mem,
			users:       mem.Users(),
			team:        mem.Team(),
			investments: mem.Investments(),
			recharges:   mem.Recharges(),
			withdrawals: mem.Withdrawals(),
			ping:        func(context.Context) error { return nil },
			close:       func(context.Context) error { return nil },
		}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongodb.NewClient(ctx, cfg.MongoDB.URI)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.MongoDB.Database)
	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	slog.Info("Connected to MongoDB", "database", cfg.MongoDB.Database)

	return &store{
		tx:          mongorepo.NewTransactor(db),
		users:       mongorepo.NewUserRepository(db),
		team:        mongorepo.NewTeamRepository(db),
		investments: mongorepo.NewInvestmentRepository(db),
		recharges:   mongorepo.NewRechargeRepository(db),
		withdrawals: mongorepo.NewWithdrawalRepository(db),
		ping:        client.Ping,
		close:       client.Disconnect,
	}, nil
}

func setupLogging(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}
