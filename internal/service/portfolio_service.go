package service

import (
	"github.com/rdevries/portfolio-statement-backend/internal/model"
	"github.com/rdevries/portfolio-statement-backend/internal/repository"
)

// PortfolioService handles portfolio listing and lookup.
type PortfolioService struct {
	portfolioRepo *repository.PortfolioRepository
}

// NewPortfolioService creates a new PortfolioService.
func NewPortfolioService(portfolioRepo *repository.PortfolioRepository) *PortfolioService {
	return &PortfolioService{portfolioRepo: portfolioRepo}
}

// GetAllPortfolios retrieves all portfolios with their client names.
func (s *PortfolioService) GetAllPortfolios() ([]model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolios()
}

// GetPortfolio retrieves a single portfolio with its client name.
// Returns apperrors.ErrPortfolioNotFound when it does not exist.
func (s *PortfolioService) GetPortfolio(portfolioID string) (model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolioOnID(portfolioID)
}
