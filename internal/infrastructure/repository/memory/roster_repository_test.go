package memory

import (
	"testing"
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/driver"
	"github.com/pitwall/fantasy-gp/internal/domain/roster"
)

func TestRosterRepository_ReturnsIsolatedCopies(t *testing.T) {
	repo := NewRosterRepository()
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)

	seed := roster.Roster{
		ID:     "roster-001",
		UserID: "usr-paddockfan",
		RaceID: "race-r02",
		Picks: []roster.Pick{
			{DriverID: "drv-verner", Value: 32, Categories: []driver.Category{driver.CategoryElite}},
		},
		BudgetUsed: 32,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := repo.Create(t.Context(), seed); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	listed, err := repo.ListByUserAndRace(t.Context(), "usr-paddockfan", "race-r02")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected one roster, got %d", len(listed))
	}

	// Mutating the returned copy must not leak into the stored roster.
	listed[0].Picks[0].DriverID = "drv-tampered"
	listed[0].Picks[0].Categories[0] = driver.CategoryRookie

	again, err := repo.ListByUserAndRace(t.Context(), "usr-paddockfan", "race-r02")
	if err != nil {
		t.Fatalf("second list failed: %v", err)
	}
	if again[0].Picks[0].DriverID != "drv-verner" {
		t.Fatalf("stored roster was mutated through a returned copy")
	}
	if again[0].Picks[0].Categories[0] != driver.CategoryElite {
		t.Fatalf("stored categories were mutated through a returned copy")
	}
}

func TestRosterRepository_UpdateAndDelete(t *testing.T) {
	repo := NewRosterRepository()
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)

	seed := roster.Roster{ID: "roster-001", UserID: "u", RaceID: "r", CreatedAt: now, UpdatedAt: now}
	if _, err := repo.Create(t.Context(), seed); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	seed.Points = 31
	updated, err := repo.Update(t.Context(), seed)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Points != 31 {
		t.Fatalf("expected points persisted, got %d", updated.Points)
	}

	if err := repo.Delete(t.Context(), "roster-001"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	listed, err := repo.ListByUserAndRace(t.Context(), "u", "r")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected roster gone, got %d", len(listed))
	}

	if err := repo.Delete(t.Context(), "roster-001"); err == nil {
		t.Fatalf("expected error deleting a missing roster")
	}
}
