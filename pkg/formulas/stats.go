// Package formulas provides the statistical primitives used by the
// valuation and risk engine.
package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// TradingDaysPerYear is the assumed number of trading days used when
// annualizing daily statistics.
const TradingDaysPerYear = 252

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// Returns converts a price series into simple period-over-period returns.
// Transitions with a zero or non-finite result are dropped rather than
// zero-filled, so the output may be shorter than len(prices)-1.
func Returns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}

	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			continue
		}
		r := (prices[i] - prices[i-1]) / prices[i-1]
		if math.IsNaN(r) || math.IsInf(r, 0) {
			continue
		}
		returns = append(returns, r)
	}

	return returns
}

// CompoundedReturn computes the total compounded return over a series of
// periodic returns: (1+r1)*(1+r2)*...*(1+rN) - 1.
func CompoundedReturn(returns []float64) float64 {
	cumulative := 1.0
	for _, r := range returns {
		cumulative *= 1 + r
	}
	return cumulative - 1
}

// SharpeRatio computes the annualized Sharpe ratio of a daily return
// series against the given annual risk-free rate.
//
// The ratio is undefined (ok=false) when the series has fewer than two
// samples or zero variance, since the sample standard deviation is either
// meaningless or would divide by zero.
func SharpeRatio(dailyReturns []float64, riskFreeRate float64) (sharpe float64, ok bool) {
	if len(dailyReturns) < 2 {
		return 0, false
	}

	dailyRate := riskFreeRate / TradingDaysPerYear
	excess := make([]float64, len(dailyReturns))
	for i, r := range dailyReturns {
		excess[i] = r - dailyRate
	}

	sd := stat.StdDev(excess, nil)
	if sd == 0 {
		return 0, false
	}

	return math.Sqrt(TradingDaysPerYear) * stat.Mean(excess, nil) / sd, true
}
