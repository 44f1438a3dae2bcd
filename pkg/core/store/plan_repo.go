package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/calgal7-del/1040-paydays/pkg/models"
)

// ErrPlanNotFound is returned by Load and Delete for unknown plan IDs.
var ErrPlanNotFound = errors.New("plan not found")

// PlanRepo is the persistence surface for saved plans. Save assigns the ID
// and timestamps; callers pass the rest.
type PlanRepo interface {
	Save(ctx context.Context, p models.SavedPlan) (models.SavedPlan, error)
	Load(ctx context.Context, id string) (models.SavedPlan, error)
	Recent(ctx context.Context, limit int) ([]models.PlanSummary, error)
	Delete(ctx context.Context, id string) error
}

// PGPlanRepo stores plans in Postgres. The full plan travels as one JSONB
// blob; id, name and the timestamps are lifted into columns for listing.
type PGPlanRepo struct{}

// NewPGPlanRepo creates a repository over the shared pool.
func NewPGPlanRepo() *PGPlanRepo {
	return &PGPlanRepo{}
}

// EnsureSchema creates the saved_plans table when it does not exist yet.
func (r *PGPlanRepo) EnsureSchema(ctx context.Context) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	query := `
		CREATE TABLE IF NOT EXISTS saved_plans (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			plan_json  JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
	`
	if _, err := pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure saved_plans schema: %w", err)
	}
	return nil
}

// Save upserts a plan by ID. A missing ID gets a fresh UUID; created_at is
// preserved across updates.
func (r *PGPlanRepo) Save(ctx context.Context, p models.SavedPlan) (models.SavedPlan, error) {
	pool := GetPool()
	if pool == nil {
		return models.SavedPlan{}, fmt.Errorf("database pool not initialized")
	}

	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = uuid.NewString()
		p.CreatedAt = now
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	jsonData, err := json.Marshal(p)
	if err != nil {
		return models.SavedPlan{}, fmt.Errorf("failed to marshal plan: %w", err)
	}

	query := `
		INSERT INTO saved_plans (id, name, plan_json, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			plan_json = EXCLUDED.plan_json,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := pool.Exec(ctx, query, p.ID, p.Name, jsonData, p.CreatedAt, p.UpdatedAt); err != nil {
		return models.SavedPlan{}, fmt.Errorf("failed to save plan: %w", err)
	}
	return p, nil
}

// Load retrieves one plan by ID.
func (r *PGPlanRepo) Load(ctx context.Context, id string) (models.SavedPlan, error) {
	pool := GetPool()
	if pool == nil {
		return models.SavedPlan{}, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT plan_json FROM saved_plans WHERE id = $1`

	var jsonData []byte
	if err := pool.QueryRow(ctx, query, id).Scan(&jsonData); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.SavedPlan{}, ErrPlanNotFound
		}
		return models.SavedPlan{}, fmt.Errorf("failed to load plan: %w", err)
	}

	var p models.SavedPlan
	if err := json.Unmarshal(jsonData, &p); err != nil {
		return models.SavedPlan{}, fmt.Errorf("failed to unmarshal plan: %w", err)
	}
	return p, nil
}

// Recent lists plan summaries, newest update first.
func (r *PGPlanRepo) Recent(ctx context.Context, limit int) ([]models.PlanSummary, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, name, updated_at FROM saved_plans ORDER BY updated_at DESC LIMIT $1`

	rows, err := pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var out []models.PlanSummary
	for rows.Next() {
		var s models.PlanSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan plan row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read plan rows: %w", err)
	}
	return out, nil
}

// Delete removes a plan by ID.
func (r *PGPlanRepo) Delete(ctx context.Context, id string) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	tag, err := pool.Exec(ctx, `DELETE FROM saved_plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}
