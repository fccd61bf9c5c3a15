// The server command runs the portfolio statement HTTP backend.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rdevries/portfolio-statement-backend/internal/api"
	"github.com/rdevries/portfolio-statement-backend/internal/config"
	"github.com/rdevries/portfolio-statement-backend/internal/database"
	"github.com/rdevries/portfolio-statement-backend/internal/repository"
	"github.com/rdevries/portfolio-statement-backend/internal/service"
	"github.com/rdevries/portfolio-statement-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New(logger.Config{Level: "info"})
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})

	// Open database connection and apply migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	log.Info().Str("path", cfg.Database.Path).Msg("connected to database")

	// Create repositories
	portfolioRepo := repository.NewPortfolioRepository(db)
	securityRepo := repository.NewSecurityRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	indexRepo := repository.NewIndexRepository(db)
	cashRepo := repository.NewCashRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Create services
	portfolioService := service.NewPortfolioService(portfolioRepo)
	statementService := service.NewStatementService(
		portfolioRepo,
		securityRepo,
		tradeRepo,
		priceRepo,
		indexRepo,
		cashRepo,
		cfg.Risk.FreeRate,
		log,
	)
	tradeService := service.NewTradeService(db, portfolioRepo, securityRepo, tradeRepo, cashRepo, log)
	snapshotService := service.NewSnapshotService(portfolioRepo, snapshotRepo, statementService, log)

	// Schedule the nightly portfolio value snapshot job
	scheduler := cron.New()
	if cfg.Snapshot.Enabled {
		_, err := scheduler.AddFunc(cfg.Snapshot.Schedule, func() {
			now := time.Now().UTC()
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			if err := snapshotService.CaptureAll(context.Background(), today); err != nil {
				log.Error().Err(err).Msg("snapshot job failed")
			}
		})
		if err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.Snapshot.Schedule).Msg("invalid snapshot schedule")
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	// Create router
	router := api.NewRouter(db, portfolioService, statementService, tradeService, snapshotService, cfg, log)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
