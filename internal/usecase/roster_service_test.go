package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/driver"
	"github.com/pitwall/fantasy-gp/internal/domain/roster"
	"github.com/pitwall/fantasy-gp/internal/domain/user"
	"github.com/pitwall/fantasy-gp/internal/infrastructure/repository/memory"
	"github.com/pitwall/fantasy-gp/internal/platform/logging"
)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

// validSixDrivers covers every required category within the seeded budget.
var validSixDrivers = []string{
	"drv-verner",
	"drv-maier",
	"drv-duval",
	"drv-okafor",
	"drv-lindqvist",
	"drv-carmo",
}

type rosterFixture struct {
	rosters    *memory.RosterRepository
	users      *memory.UserRepository
	selections *SelectionService
	service    *RosterService
}

func newRosterFixture(now time.Time, rosterID string) rosterFixture {
	driverRepo := memory.NewDriverRepository(memory.SeedDrivers())
	raceRepo := memory.NewRaceRepository(memory.SeedRaces(now))
	userRepo := memory.NewUserRepository(memory.SeedParticipants())
	rosterRepo := memory.NewRosterRepository()

	selections := NewSelectionService(raceRepo, driverRepo, userRepo, roster.DefaultRules(), logging.NewNop())
	selections.now = func() time.Time { return now }

	service := NewRosterService(rosterRepo, driverRepo, raceRepo, userRepo, selections, staticIDGenerator{id: rosterID}, logging.NewNop())
	service.now = func() time.Time { return now }

	return rosterFixture{
		rosters:    rosterRepo,
		users:      userRepo,
		selections: selections,
		service:    service,
	}
}

func (f rosterFixture) fillDraft(t *testing.T, ctx context.Context, userID, raceID string) {
	t.Helper()
	for _, driverID := range validSixDrivers {
		if _, err := f.selections.AddDriver(ctx, userID, raceID, driverID); err != nil {
			t.Fatalf("add driver %s failed: %v", driverID, err)
		}
	}
}

func TestRosterService_SaveCreatesThenUpdates(t *testing.T) {
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	f := newRosterFixture(now, "roster-001")

	f.fillDraft(t, t.Context(), "usr-paddockfan", "race-r02")

	created, err := f.service.Save(t.Context(), "usr-paddockfan", "race-r02")
	if err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if created.ID != "roster-001" {
		t.Fatalf("expected roster-001, got %s", created.ID)
	}
	if created.BudgetUsed != 96 {
		t.Fatalf("expected budget used 96, got %d", created.BudgetUsed)
	}
	if !created.CreatedAt.Equal(now) {
		t.Fatalf("expected created at %v, got %v", now, created.CreatedAt)
	}

	// Swap a rookie for another rookie and save again; the update must
	// target the same roster rather than creating a second one.
	if _, err := f.selections.RemoveDriver(t.Context(), "usr-paddockfan", "race-r02", "drv-carmo"); err != nil {
		t.Fatalf("remove driver failed: %v", err)
	}
	if _, err := f.selections.AddDriver(t.Context(), "usr-paddockfan", "race-r02", "drv-okafor"); !errors.Is(err, roster.ErrDuplicateDriver) {
		t.Fatalf("expected duplicate on re-add, got %v", err)
	}
	if _, err := f.selections.AddDriver(t.Context(), "usr-paddockfan", "race-r02", "drv-sato"); err != nil {
		t.Fatalf("add replacement failed: %v", err)
	}

	updated, err := f.service.Save(t.Context(), "usr-paddockfan", "race-r02")
	if err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("expected update of %s, got %s", created.ID, updated.ID)
	}

	stored, err := f.rosters.ListByUserAndRace(t.Context(), "usr-paddockfan", "race-r02")
	if err != nil {
		t.Fatalf("list rosters failed: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected exactly one persisted roster, got %d", len(stored))
	}
}

func TestRosterService_SaveRejectsIncompleteRoster(t *testing.T) {
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	f := newRosterFixture(now, "roster-001")

	if _, err := f.selections.AddDriver(t.Context(), "usr-paddockfan", "race-r02", "drv-verner"); err != nil {
		t.Fatalf("add driver failed: %v", err)
	}

	_, err := f.service.Save(t.Context(), "usr-paddockfan", "race-r02")
	var validationErr *RosterValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(validationErr.Violations) < 2 {
		t.Fatalf("expected size and category violations, got %v", validationErr.Violations)
	}
}

func TestRosterService_SaveRejectsClosedWindow(t *testing.T) {
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	f := newRosterFixture(now, "roster-001")

	_, err := f.service.Save(t.Context(), "usr-paddockfan", "race-r01")
	var validationErr *RosterValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(validationErr.Violations) == 0 {
		t.Fatalf("expected a race availability violation")
	}
}

func TestRosterService_SaveRechecksLoweredBudget(t *testing.T) {
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	f := newRosterFixture(now, "roster-001")

	// Draft totals 96 against the seeded ceiling of 100.
	f.fillDraft(t, t.Context(), "usr-paddockfan", "race-r02")

	err := f.users.Update(t.Context(), user.Participant{
		ID:       "usr-paddockfan",
		Username: "paddockfan",
		Role:     user.RoleStandard,
		Budget:   90,
		SeasonID: memory.SeedSeasonID,
	})
	if err != nil {
		t.Fatalf("update participant failed: %v", err)
	}

	_, err = f.service.Save(t.Context(), "usr-paddockfan", "race-r02")
	var validationErr *RosterValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error against the lowered ceiling, got %v", err)
	}
	found := false
	for _, v := range validationErr.Violations {
		if strings.Contains(v, "budget") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a budget violation, got %v", validationErr.Violations)
	}

	stored, err := f.rosters.ListByUserAndRace(t.Context(), "usr-paddockfan", "race-r02")
	if err != nil {
		t.Fatalf("list rosters failed: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("expected nothing persisted, got %d rosters", len(stored))
	}
}

func TestRosterService_SaveInFlightRejected(t *testing.T) {
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	f := newRosterFixture(now, "roster-001")

	key := selectionKey("usr-paddockfan", "race-r02")
	if !f.service.acquire(key) {
		t.Fatalf("expected to acquire the save slot")
	}
	defer f.service.release(key)

	if _, err := f.service.Save(t.Context(), "usr-paddockfan", "race-r02"); !errors.Is(err, ErrSaveInFlight) {
		t.Fatalf("expected save-in-flight, got %v", err)
	}
}

func TestRosterService_LoadDropsStaleDriverReferences(t *testing.T) {
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	f := newRosterFixture(now, "roster-001")

	_, err := f.rosters.Create(t.Context(), roster.Roster{
		ID:     "roster-old",
		UserID: "usr-paddockfan",
		RaceID: "race-r02",
		Picks: []roster.Pick{
			{DriverID: "drv-verner", Value: 32, Categories: []driver.Category{driver.CategoryElite}},
			{DriverID: "drv-gone", Value: 12, Categories: []driver.Category{driver.CategoryRookie}},
		},
		BudgetUsed: 44,
		CreatedAt:  now.Add(-time.Hour),
		UpdatedAt:  now.Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("seed roster failed: %v", err)
	}

	loaded, found, err := f.service.Load(t.Context(), "usr-paddockfan", "race-r02")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !found {
		t.Fatalf("expected persisted roster to be found")
	}
	if len(loaded.Picks) != 1 || loaded.Picks[0].DriverID != "drv-verner" {
		t.Fatalf("expected only drv-verner to survive, got %v", loaded.Picks)
	}

	sel, err := f.selections.Selection(t.Context(), "usr-paddockfan", "race-r02")
	if err != nil {
		t.Fatalf("selection failed: %v", err)
	}
	if sel.RosterID() != "roster-old" {
		t.Fatalf("expected draft to target roster-old, got %q", sel.RosterID())
	}
	if sel.Size() != 1 {
		t.Fatalf("expected draft seeded with surviving pick, got size=%d", sel.Size())
	}
}

func TestRosterService_LoadSurfacesDataIntegrityFault(t *testing.T) {
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	f := newRosterFixture(now, "roster-001")

	for _, id := range []string{"roster-a", "roster-b"} {
		if _, err := f.rosters.Create(t.Context(), roster.Roster{
			ID:        id,
			UserID:    "usr-paddockfan",
			RaceID:    "race-r02",
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			t.Fatalf("seed roster %s failed: %v", id, err)
		}
	}

	if _, _, err := f.service.Load(t.Context(), "usr-paddockfan", "race-r02"); !errors.Is(err, ErrDataIntegrity) {
		t.Fatalf("expected data integrity fault, got %v", err)
	}
}

func TestRosterService_DeleteReturnsDraftToCreateMode(t *testing.T) {
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	f := newRosterFixture(now, "roster-001")

	f.fillDraft(t, t.Context(), "usr-paddockfan", "race-r02")
	if _, err := f.service.Save(t.Context(), "usr-paddockfan", "race-r02"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := f.service.Delete(t.Context(), "usr-paddockfan", "race-r02"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	_, found, err := f.service.Load(t.Context(), "usr-paddockfan", "race-r02")
	if err != nil {
		t.Fatalf("load after delete failed: %v", err)
	}
	if found {
		t.Fatalf("expected no persisted roster after delete")
	}

	sel, err := f.selections.Selection(t.Context(), "usr-paddockfan", "race-r02")
	if err != nil {
		t.Fatalf("selection failed: %v", err)
	}
	if sel.RosterID() != "" {
		t.Fatalf("expected draft back in create mode, got target %q", sel.RosterID())
	}
}

func TestRosterService_DeleteRejectedOutsideWindow(t *testing.T) {
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	f := newRosterFixture(now, "roster-001")

	if err := f.service.Delete(t.Context(), "usr-paddockfan", "race-r01"); !errors.Is(err, roster.ErrRaceNotOpen) {
		t.Fatalf("expected race-not-open, got %v", err)
	}
}

func TestRosterService_DeleteMissingRoster(t *testing.T) {
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	f := newRosterFixture(now, "roster-001")

	if err := f.service.Delete(t.Context(), "usr-paddockfan", "race-r02"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
