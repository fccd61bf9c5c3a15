package service

import (
	"fmt"
	"time"

	"github.com/rdevries/portfolio-statement-backend/internal/model"
	"github.com/rdevries/portfolio-statement-backend/pkg/formulas"
)

// benchmarkPeriods are the trailing comparison windows, in display order.
var benchmarkPeriods = []struct {
	Label string
	Days  int
}{
	{"1M", 30},
	{"3M", 90},
	{"6M", 180},
	{"1Y", 365},
}

// benchmarkPerformance compares compounded portfolio return against every
// known market index over each trailing period. The full index x period
// cross product is emitted regardless of what the portfolio actually
// holds: the breadth is intentional.
//
// The portfolio leg restricts the daily return series to dates within the
// period and compounds it. The benchmark leg compounds only actually
// observed index price transitions: gaps are not forward-filled, and
// fewer than two observations leave the leg undefined.
//
// When no indices exist, one placeholder record per period is returned so
// the statement shape stays stable.
func (s *StatementService) benchmarkPerformance(portfolioReturns []DatedReturn, reportDate time.Time) ([]model.BenchmarkComparison, error) {
	indices, err := s.indexRepo.GetMarketIndices()
	if err != nil {
		return nil, fmt.Errorf("failed to load market indices: %w", err)
	}

	if len(indices) == 0 {
		placeholders := make([]model.BenchmarkComparison, 0, len(benchmarkPeriods))
		for _, period := range benchmarkPeriods {
			placeholders = append(placeholders, model.BenchmarkComparison{
				VsIndex:            "N/A",
				Period:             period.Label,
				PortfolioReturnPct: model.UndefinedMetric(),
				BenchmarkReturnPct: model.UndefinedMetric(),
			})
		}
		return placeholders, nil
	}

	comparisons := make([]model.BenchmarkComparison, 0, len(indices)*len(benchmarkPeriods))

	for _, index := range indices {
		for _, period := range benchmarkPeriods {
			start := reportDate.AddDate(0, 0, -period.Days)

			comparison := model.BenchmarkComparison{
				VsIndex:            index.Name,
				Period:             period.Label,
				PortfolioReturnPct: model.UndefinedMetric(),
				BenchmarkReturnPct: model.UndefinedMetric(),
			}

			var periodReturns []float64
			for _, dr := range portfolioReturns {
				if !dr.Date.Before(start) {
					periodReturns = append(periodReturns, dr.Return)
				}
			}
			if len(periodReturns) > 0 {
				total := formulas.CompoundedReturn(periodReturns)
				comparison.PortfolioReturnPct = model.MetricOf(round2(total * 100))
			}

			indexPrices, err := s.indexRepo.GetIndexPrices(index.ID, start, reportDate)
			if err != nil {
				return nil, fmt.Errorf("failed to load index prices: %w", err)
			}

			values := make([]float64, len(indexPrices))
			for i, p := range indexPrices {
				values[i] = p.ClosingValue
			}
			if indexReturns := formulas.Returns(values); len(indexReturns) > 0 {
				total := formulas.CompoundedReturn(indexReturns)
				comparison.BenchmarkReturnPct = model.MetricOf(round2(total * 100))
			}

			comparisons = append(comparisons, comparison)
		}
	}

	return comparisons, nil
}
