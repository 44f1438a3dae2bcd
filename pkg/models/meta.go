package models

import (
	"time"

	"github.com/google/uuid"
)

// CalculationMeta stamps every computed response with identity and timing,
// so the UI and logs can correlate a render with the calculation behind it.
type CalculationMeta struct {
	CalculationID string `json:"calculationId"`
	StartedAt     string `json:"startedAt"`
	CompletedAt   string `json:"completedAt"`
	DurationMs    int64  `json:"durationMs"`
	Cached        bool   `json:"cached,omitempty"`
}

// NewCalculationMeta builds the envelope for a calculation that began at
// start and completed now.
func NewCalculationMeta(start time.Time) CalculationMeta {
	now := time.Now()
	return CalculationMeta{
		CalculationID: uuid.New().String(),
		StartedAt:     start.UTC().Format(time.RFC3339),
		CompletedAt:   now.UTC().Format(time.RFC3339),
		DurationMs:    now.Sub(start).Milliseconds(),
	}
}
