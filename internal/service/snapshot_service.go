package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rdevries/portfolio-statement-backend/internal/model"
	"github.com/rdevries/portfolio-statement-backend/internal/repository"
)

// SnapshotService records end-of-day total portfolio values for every
// portfolio. Statement generation is a read-only pure function of
// persisted state, so portfolios are valued concurrently.
type SnapshotService struct {
	portfolioRepo *repository.PortfolioRepository
	snapshotRepo  *repository.SnapshotRepository
	statements    *StatementService
	log           zerolog.Logger
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(
	portfolioRepo *repository.PortfolioRepository,
	snapshotRepo *repository.SnapshotRepository,
	statements *StatementService,
	log zerolog.Logger,
) *SnapshotService {
	return &SnapshotService{
		portfolioRepo: portfolioRepo,
		snapshotRepo:  snapshotRepo,
		statements:    statements,
		log:           log.With().Str("service", "snapshot").Logger(),
	}
}

// History returns the recorded snapshots for a portfolio within
// [start, end]. Returns apperrors.ErrPortfolioNotFound when the portfolio
// does not exist.
func (s *SnapshotService) History(portfolioID string, start, end time.Time) ([]model.PortfolioValueSnapshot, error) {
	if _, err := s.portfolioRepo.GetPortfolioOnID(portfolioID); err != nil {
		return nil, err
	}
	return s.snapshotRepo.GetSnapshots(portfolioID, start, end)
}

// CaptureAll values every portfolio as of date and upserts one snapshot
// per portfolio. A valuation failure for one portfolio is logged and
// skipped so the remaining portfolios still get their snapshot.
func (s *SnapshotService) CaptureAll(ctx context.Context, date time.Time) error {
	portfolios, err := s.portfolioRepo.GetPortfolios()
	if err != nil {
		return err
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, p := range portfolios {
		g.Go(func() error {
			statement, err := s.statements.GenerateStatement(p.ID, date)
			if err != nil {
				s.log.Error().Err(err).Str("portfolio_id", p.ID).Msg("failed to value portfolio for snapshot")
				return nil
			}
			return s.snapshotRepo.UpsertSnapshot(p.ID, date, statement.TotalPortfolioValue)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	s.log.Info().
		Str("date", date.Format("2006-01-02")).
		Int("portfolios", len(portfolios)).
		Msg("portfolio value snapshots captured")

	return nil
}
