// Package api wires the HTTP router and its handlers.
package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/rdevries/portfolio-statement-backend/internal/api/handlers"
	custommiddleware "github.com/rdevries/portfolio-statement-backend/internal/api/middleware"
	"github.com/rdevries/portfolio-statement-backend/internal/config"
	"github.com/rdevries/portfolio-statement-backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	db *sql.DB,
	portfolioService *service.PortfolioService,
	statementService *service.StatementService,
	tradeService *service.TradeService,
	snapshotService *service.SnapshotService,
	cfg *config.Config,
	log zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.RequestLogger(log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(db)
			r.Get("/health", systemHandler.Health)
		})

		portfolioHandler := handlers.NewPortfolioHandler(portfolioService, snapshotService)
		r.Get("/portfolios", portfolioHandler.Portfolios)

		r.Route("/portfolio/{portfolioId}", func(r chi.Router) {
			statementHandler := handlers.NewStatementHandler(statementService)
			r.Get("/statement", statementHandler.Statement)
			r.Get("/value-history", portfolioHandler.ValueHistory)
		})

		r.Route("/trades", func(r chi.Router) {
			tradeHandler := handlers.NewTradeHandler(tradeService)
			r.Post("/", tradeHandler.CreateTrade)
		})
	})

	return r
}
