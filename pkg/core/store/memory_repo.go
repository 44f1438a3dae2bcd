package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/calgal7-del/1040-paydays/pkg/models"
)

// MemoryPlanRepo keeps plans in process memory. It backs DB-less runs and
// handler tests; the semantics mirror PGPlanRepo.
type MemoryPlanRepo struct {
	mu    sync.RWMutex
	plans map[string]models.SavedPlan
}

// NewMemoryPlanRepo creates an empty in-memory repository.
func NewMemoryPlanRepo() *MemoryPlanRepo {
	return &MemoryPlanRepo{plans: make(map[string]models.SavedPlan)}
}

func (r *MemoryPlanRepo) Save(ctx context.Context, p models.SavedPlan) (models.SavedPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = uuid.NewString()
		p.CreatedAt = now
	}
	if existing, ok := r.plans[p.ID]; ok {
		p.CreatedAt = existing.CreatedAt
	} else if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	r.plans[p.ID] = p
	return p, nil
}

func (r *MemoryPlanRepo) Load(ctx context.Context, id string) (models.SavedPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plans[id]
	if !ok {
		return models.SavedPlan{}, ErrPlanNotFound
	}
	return p, nil
}

func (r *MemoryPlanRepo) Recent(ctx context.Context, limit int) ([]models.PlanSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	out := make([]models.PlanSummary, 0, len(r.plans))
	for _, p := range r.plans {
		out = append(out, p.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryPlanRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plans[id]; !ok {
		return ErrPlanNotFound
	}
	delete(r.plans, id)
	return nil
}
