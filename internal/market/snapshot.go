package market

import (
	"math"
	"time"
)

// Snapshot is a single point-in-time exchange-rate reading with
// day-over-day change. It is immutable once produced by the collector.
type Snapshot struct {
	// Rate is the current USD/KRW rate in won
	Rate float64

	// Change is the absolute change versus the previous close, in won
	Change float64

	// ChangePercent is the change versus the previous close, in percent
	ChangePercent float64

	// Timestamp is the trading day the reading belongs to
	Timestamp time.Time
}

// HasRate reports whether the snapshot carries a usable rate value.
func (s Snapshot) HasRate() bool {
	return s.Rate > 0 && !math.IsNaN(s.Rate) && !math.IsInf(s.Rate, 0)
}

// Valid reports whether all four fields are usable. The analyzer refuses
// to prompt the LLM with an incomplete snapshot and falls back instead.
func (s Snapshot) Valid() bool {
	if !s.HasRate() {
		return false
	}
	if math.IsNaN(s.Change) || math.IsInf(s.Change, 0) {
		return false
	}
	if math.IsNaN(s.ChangePercent) || math.IsInf(s.ChangePercent, 0) {
		return false
	}
	return !s.Timestamp.IsZero()
}
