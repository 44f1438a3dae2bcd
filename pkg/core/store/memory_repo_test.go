package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/calgal7-del/1040-paydays/pkg/core/projection"
	"github.com/calgal7-del/1040-paydays/pkg/models"
)

func testPlan(name string) models.SavedPlan {
	return models.SavedPlan{
		Name: name,
		FormValues: projection.FormValues{
			CurrentAge:    "30",
			RetirementAge: "65",
			Frequency:     "biweekly",
		},
	}
}

func TestMemoryPlanRepo_SaveAssignsIdentity(t *testing.T) {
	repo := NewMemoryPlanRepo()
	ctx := context.Background()

	saved, err := repo.Save(ctx, testPlan("College fund"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("Save left ID empty")
	}
	if saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
		t.Errorf("Save left timestamps empty: %+v", saved)
	}

	got, err := repo.Load(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != "College fund" || got.CurrentAge != "30" {
		t.Errorf("Load returned %+v", got)
	}
}

func TestMemoryPlanRepo_UpdatePreservesCreatedAt(t *testing.T) {
	repo := NewMemoryPlanRepo()
	ctx := context.Background()

	first, err := repo.Save(ctx, testPlan("v1"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	time.Sleep(2 * time.Millisecond)
	first.Name = "v2"
	second, err := repo.Save(ctx, first)
	if err != nil {
		t.Fatalf("Save update: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("update changed ID: %s -> %s", first.ID, second.ID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("update changed CreatedAt: %v -> %v", first.CreatedAt, second.CreatedAt)
	}
	if second.UpdatedAt.Before(first.UpdatedAt) {
		t.Errorf("UpdatedAt went backwards: %v -> %v", first.UpdatedAt, second.UpdatedAt)
	}

	got, _ := repo.Load(ctx, first.ID)
	if got.Name != "v2" {
		t.Errorf("Load after update returned name %q", got.Name)
	}
}

func TestMemoryPlanRepo_Recent(t *testing.T) {
	repo := NewMemoryPlanRepo()
	ctx := context.Background()

	for _, name := range []string{"oldest", "middle", "newest"} {
		if _, err := repo.Save(ctx, testPlan(name)); err != nil {
			t.Fatalf("Save(%s): %v", name, err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	recent, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Recent returned %d rows, want 3", len(recent))
	}
	if recent[0].Name != "newest" || recent[2].Name != "oldest" {
		t.Errorf("Recent order: %q, %q, %q", recent[0].Name, recent[1].Name, recent[2].Name)
	}

	limited, err := repo.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Recent(2) returned %d rows", len(limited))
	}
}

func TestMemoryPlanRepo_Missing(t *testing.T) {
	repo := NewMemoryPlanRepo()
	ctx := context.Background()

	if _, err := repo.Load(ctx, "nope"); !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("Load(missing) = %v, want ErrPlanNotFound", err)
	}
	if err := repo.Delete(ctx, "nope"); !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("Delete(missing) = %v, want ErrPlanNotFound", err)
	}
}

func TestMemoryPlanRepo_Delete(t *testing.T) {
	repo := NewMemoryPlanRepo()
	ctx := context.Background()

	saved, _ := repo.Save(ctx, testPlan("temp"))
	if err := repo.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Load(ctx, saved.ID); !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("Load after delete = %v, want ErrPlanNotFound", err)
	}
}
