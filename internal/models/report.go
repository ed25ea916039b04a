package models

import (
	"bytes"
	"encoding/json"
	"math"
)

// Quantity is a reported statistic. Undefined statistics are NaN,
// which JSON cannot carry, so NaN and infinities travel as null.
type Quantity float64

// Float returns the plain float64 value.
func (q Quantity) Float() float64 { return float64(q) }

// IsNaN reports whether the statistic is undefined.
func (q Quantity) IsNaN() bool { return math.IsNaN(float64(q)) }

func (q Quantity) MarshalJSON() ([]byte, error) {
	f := float64(q)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*q = Quantity(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*q = Quantity(f)
	return nil
}

// SessionResult holds the statistics of a single session.
type SessionResult struct {
	Label               string   `json:"label"`
	Count               int      `json:"count"`
	Average             Quantity `json:"average"`
	StandardUncertainty Quantity `json:"standard_uncertainty"`
	ExtraUncertainty    Quantity `json:"extra_uncertainty"`
	TotalUncertainty    Quantity `json:"total_uncertainty"`    // RSS of standard and extra
	ExpandedUncertainty Quantity `json:"expanded_uncertainty"` // k=2 times total
	Repeatability       Quantity `json:"repeatability"`
}

// AggregateResult holds the statistics over all sessions.
type AggregateResult struct {
	Count                       int      `json:"count"`
	Average                     Quantity `json:"average"`
	StandardUncertainty         Quantity `json:"standard_uncertainty"`
	ExpandedUncertainty         Quantity `json:"expanded_uncertainty"`
	BetweenSessionRepeatability Quantity `json:"between_session_repeatability"`
	WithinSessionRepeatability  Quantity `json:"within_session_repeatability"`
}

// Report is the full result of one calculation.
type Report struct {
	Sessions  []SessionResult `json:"sessions"`
	Aggregate AggregateResult `json:"aggregate"`
}
