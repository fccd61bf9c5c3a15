package service

import (
	"math"

	"github.com/rdevries/portfolio-statement-backend/internal/model"
	"github.com/rdevries/portfolio-statement-backend/pkg/formulas"
)

// valuedHolding pairs a reconstructed holding with its security metadata
// and full-precision current valuation. Rounding happens only when the
// presentation structs are built.
type valuedHolding struct {
	security     model.Security
	position     *holding
	currentPrice float64
	buyValue     float64
	currentValue float64
}

// riskMeasures computes the portfolio-level risk figures from the current
// holdings and the daily return series.
//
//   - Beta is the value-weighted sum of security betas; undefined when
//     there are no holdings or total value is not positive.
//   - Sharpe is annualized over 252 trading days; undefined below two
//     samples or at zero variance.
//   - Delta is the fraction of total value exposed to equity price moves;
//     cash contributes zero, and a portfolio whose total value is not
//     positive has delta 0 rather than undefined.
func (s *StatementService) riskMeasures(holdings []valuedHolding, totalValue float64, dailyReturns []float64) model.RiskMeasures {
	measures := model.RiskMeasures{
		Beta:        model.UndefinedMetric(),
		SharpeRatio: model.UndefinedMetric(),
		Delta:       model.MetricOf(0),
	}

	if len(holdings) > 0 && totalValue > 0 {
		var beta float64
		for _, h := range holdings {
			weight := h.currentValue / totalValue
			beta += weight * h.security.BetaOrZero()
		}
		measures.Beta = model.MetricOf(round2(beta))
	}

	if sharpe, ok := formulas.SharpeRatio(dailyReturns, s.riskFreeRate); ok {
		measures.SharpeRatio = model.MetricOf(round2(sharpe))
	}

	if len(holdings) > 0 && totalValue > 0 {
		var equityValue float64
		for _, h := range holdings {
			equityValue += h.currentValue
		}
		measures.Delta = model.MetricOf(round4(equityValue / totalValue))
	}

	return measures
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
