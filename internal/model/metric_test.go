package model_test

import (
	"encoding/json"
	"testing"

	"github.com/rdevries/portfolio-statement-backend/internal/model"
)

// TestMetric_JSON tests the wire representation of possibly-undefined
// measures.
//
// WHY: Risk figures and benchmark returns mix numbers with "N/A" in the
// same response fields; clients depend on exactly those two shapes.
func TestMetric_JSON(t *testing.T) {
	t.Run("defined metric marshals as a number", func(t *testing.T) {
		data, err := json.Marshal(model.MetricOf(1.25))
		if err != nil {
			t.Fatalf("Marshal() returned unexpected error: %v", err)
		}
		if string(data) != "1.25" {
			t.Errorf("Expected 1.25, got %s", data)
		}
	})

	t.Run("undefined metric marshals as N/A", func(t *testing.T) {
		data, err := json.Marshal(model.UndefinedMetric())
		if err != nil {
			t.Fatalf("Marshal() returned unexpected error: %v", err)
		}
		if string(data) != `"N/A"` {
			t.Errorf(`Expected "N/A", got %s`, data)
		}
	})

	t.Run("unmarshals a number as a defined metric", func(t *testing.T) {
		var m model.Metric
		if err := json.Unmarshal([]byte("0.85"), &m); err != nil {
			t.Fatalf("Unmarshal() returned unexpected error: %v", err)
		}
		if !m.Valid || m.Value != 0.85 {
			t.Errorf("Expected defined metric 0.85, got %+v", m)
		}
	})

	t.Run("unmarshals N/A as undefined", func(t *testing.T) {
		var m model.Metric
		if err := json.Unmarshal([]byte(`"N/A"`), &m); err != nil {
			t.Fatalf("Unmarshal() returned unexpected error: %v", err)
		}
		if m.Valid {
			t.Errorf("Expected undefined metric, got %+v", m)
		}
	})
}
