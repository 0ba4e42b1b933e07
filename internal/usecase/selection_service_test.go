package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/roster"
	"github.com/pitwall/fantasy-gp/internal/domain/user"
	"github.com/pitwall/fantasy-gp/internal/infrastructure/repository/memory"
	"github.com/pitwall/fantasy-gp/internal/platform/logging"
)

func newSelectionFixture(now time.Time) *SelectionService {
	service := NewSelectionService(
		memory.NewRaceRepository(memory.SeedRaces(now)),
		memory.NewDriverRepository(memory.SeedDrivers()),
		memory.NewUserRepository(memory.SeedParticipants()),
		roster.DefaultRules(),
		logging.NewNop(),
	)
	service.now = func() time.Time { return now }

	return service
}

func TestSelectionService_AddAndRemoveDriver(t *testing.T) {
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	service := newSelectionFixture(now)

	sel, err := service.AddDriver(t.Context(), "usr-paddockfan", "race-r02", "drv-verner")
	if err != nil {
		t.Fatalf("add driver failed: %v", err)
	}
	if sel.Size() != 1 || sel.TotalValue() != 32 {
		t.Fatalf("expected size=1 total=32, got size=%d total=%d", sel.Size(), sel.TotalValue())
	}

	if _, err := service.AddDriver(t.Context(), "usr-paddockfan", "race-r02", "drv-verner"); !errors.Is(err, roster.ErrDuplicateDriver) {
		t.Fatalf("expected duplicate driver error, got %v", err)
	}

	sel, err = service.RemoveDriver(t.Context(), "usr-paddockfan", "race-r02", "drv-verner")
	if err != nil {
		t.Fatalf("remove driver failed: %v", err)
	}
	if sel.Size() != 0 {
		t.Fatalf("expected empty selection after removal, got size=%d", sel.Size())
	}

	if _, err := service.RemoveDriver(t.Context(), "usr-paddockfan", "race-r02", "drv-verner"); !errors.Is(err, roster.ErrDriverNotSelected) {
		t.Fatalf("expected driver-not-selected error, got %v", err)
	}
}

func TestSelectionService_PassedDeadlineBlocksMutation(t *testing.T) {
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	service := newSelectionFixture(now)

	if _, err := service.AddDriver(t.Context(), "usr-paddockfan", "race-r01", "drv-verner"); !errors.Is(err, roster.ErrRaceNotOpen) {
		t.Fatalf("expected race-not-open on passed deadline, got %v", err)
	}
}

func TestSelectionService_ProvisionalRaceBlocksMutation(t *testing.T) {
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	service := newSelectionFixture(now)

	// race-r03 has a future deadline but no published schedule.
	if _, err := service.AddDriver(t.Context(), "usr-paddockfan", "race-r03", "drv-verner"); !errors.Is(err, roster.ErrRaceNotOpen) {
		t.Fatalf("expected race-not-open on provisional race, got %v", err)
	}
}

func TestSelectionService_BudgetCeiling(t *testing.T) {
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	service := newSelectionFixture(now)

	// 32 + 28 + 26 = 86; adding 18 would push past the budget of 100.
	for _, driverID := range []string{"drv-verner", "drv-ortega", "drv-maier"} {
		if _, err := service.AddDriver(t.Context(), "usr-paddockfan", "race-r02", driverID); err != nil {
			t.Fatalf("add driver %s failed: %v", driverID, err)
		}
	}

	if _, err := service.AddDriver(t.Context(), "usr-paddockfan", "race-r02", "drv-sato"); !errors.Is(err, roster.ErrBudgetExceeded) {
		t.Fatalf("expected budget exceeded, got %v", err)
	}
}

func TestSelectionService_RosterFullAtMaxSize(t *testing.T) {
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	service := newSelectionFixture(now)

	cheap := []string{"drv-carmo", "drv-lindqvist", "drv-okafor", "drv-duval", "drv-bellin", "drv-sato"}
	for _, driverID := range cheap {
		if _, err := service.AddDriver(t.Context(), "usr-paddockfan", "race-r02", driverID); err != nil {
			t.Fatalf("add driver %s failed: %v", driverID, err)
		}
	}

	if _, err := service.AddDriver(t.Context(), "usr-paddockfan", "race-r02", "drv-maier"); !errors.Is(err, roster.ErrRosterFull) {
		t.Fatalf("expected roster full, got %v", err)
	}
}

func TestSelectionService_SeasonMismatchForbidden(t *testing.T) {
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	service := NewSelectionService(
		memory.NewRaceRepository(memory.SeedRaces(now)),
		memory.NewDriverRepository(memory.SeedDrivers()),
		memory.NewUserRepository([]user.Participant{
			{ID: "usr-retired", Username: "retired", Role: user.RoleStandard, Budget: 100, SeasonID: "season-2025"},
		}),
		roster.DefaultRules(),
		logging.NewNop(),
	)
	service.now = func() time.Time { return now }

	if _, err := service.Selection(t.Context(), "usr-retired", "race-r02"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden on season mismatch, got %v", err)
	}
}

func TestSelectionService_UnknownRaceOrUser(t *testing.T) {
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	service := newSelectionFixture(now)

	if _, err := service.Selection(t.Context(), "usr-ghost", "race-r02"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for unknown user, got %v", err)
	}
	if _, err := service.Selection(t.Context(), "usr-paddockfan", "race-r99"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for unknown race, got %v", err)
	}
}

func TestSelectionService_EndDiscardsDraft(t *testing.T) {
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	service := newSelectionFixture(now)

	if _, err := service.AddDriver(t.Context(), "usr-paddockfan", "race-r02", "drv-verner"); err != nil {
		t.Fatalf("add driver failed: %v", err)
	}

	service.End("usr-paddockfan", "race-r02")

	sel, err := service.Selection(t.Context(), "usr-paddockfan", "race-r02")
	if err != nil {
		t.Fatalf("selection after end failed: %v", err)
	}
	if sel.Size() != 0 {
		t.Fatalf("expected fresh draft after end, got size=%d", sel.Size())
	}
}
