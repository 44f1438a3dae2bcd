package models

import (
	"time"

	"github.com/calgal7-del/1040-paydays/pkg/core/projection"
)

// SavedPlan is a named snapshot of the projection form. The form fields are
// embedded so a plan serializes flat, exactly like a forecast request with
// identity and timestamps on top.
type SavedPlan struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	projection.FormValues

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PlanSummary is the listing row for saved plans: identity plus the couple
// of fields the picker UI shows, without the full form.
type PlanSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Summary projects a plan down to its listing row.
func (p SavedPlan) Summary() PlanSummary {
	return PlanSummary{ID: p.ID, Name: p.Name, UpdatedAt: p.UpdatedAt}
}
