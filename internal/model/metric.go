package model

import "encoding/json"

// Metric is a numeric measure that may be undefined. Undefined metrics
// marshal as the string "N/A" instead of a number, so callers never see
// NaN or Inf in a response.
type Metric struct {
	Value float64
	Valid bool
}

// MetricOf returns a defined metric holding v.
func MetricOf(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

// UndefinedMetric returns a metric in its "no data" state.
func UndefinedMetric() Metric {
	return Metric{}
}

// MarshalJSON renders the metric value, or "N/A" when undefined.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return json.Marshal("N/A")
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON accepts either a number or the string "N/A".
func (m *Metric) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		m.Value = v
		m.Valid = true
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*m = Metric{}
	return nil
}
