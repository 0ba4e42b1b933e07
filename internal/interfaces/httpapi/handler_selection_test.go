package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/pitwall/fantasy-gp/internal/domain/driver"
	"github.com/pitwall/fantasy-gp/internal/domain/roster"
	"github.com/pitwall/fantasy-gp/internal/domain/user"
	"github.com/pitwall/fantasy-gp/internal/infrastructure/repository/memory"
	"github.com/pitwall/fantasy-gp/internal/platform/cache"
	idgen "github.com/pitwall/fantasy-gp/internal/platform/id"
	"github.com/pitwall/fantasy-gp/internal/platform/logging"
	"github.com/pitwall/fantasy-gp/internal/usecase"
)

type selectionHandlerFixture struct {
	handler *Handler
	rosters *memory.RosterRepository
}

func newSelectionHandlerFixture() selectionHandlerFixture {
	now := time.Now().UTC()
	driverRepo := memory.NewDriverRepository(memory.SeedDrivers())
	raceRepo := memory.NewRaceRepository(memory.SeedRaces(now))
	userRepo := memory.NewUserRepository(memory.SeedParticipants())
	rosterRepo := memory.NewRosterRepository()

	logger := logging.NewNop()
	driverSvc := usecase.NewDriverService(driverRepo, cache.NewDisabledStore(), logger)
	raceSvc := usecase.NewRaceService(raceRepo, logger)
	selectionSvc := usecase.NewSelectionService(raceRepo, driverRepo, userRepo, roster.DefaultRules(), logger)
	rosterSvc := usecase.NewRosterService(rosterRepo, driverRepo, raceRepo, userRepo, selectionSvc, idgen.NewRandomGenerator(), logger)

	handler := NewHandler(driverSvc, raceSvc, selectionSvc, rosterSvc, nil, nil, nil, logger)

	return selectionHandlerFixture{handler: handler, rosters: rosterRepo}
}

func getSelection(t *testing.T, f selectionHandlerFixture, userID, raceID string) selectionDTO {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/v1/races/"+raceID+"/selection", nil)
	req.SetPathValue("raceID", raceID)
	req = req.WithContext(withPrincipal(req.Context(), user.Principal{UserID: userID, Role: user.RoleStandard}))

	rec := httptest.NewRecorder()
	f.handler.GetSelection(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data selectionDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body.Data
}

func TestGetSelection_SeedsFromPersistedRoster(t *testing.T) {
	f := newSelectionHandlerFixture()

	now := time.Now().UTC()
	_, err := f.rosters.Create(t.Context(), roster.Roster{
		ID:     "roster-resync",
		UserID: "usr-paddockfan",
		RaceID: "race-r02",
		Picks: []roster.Pick{
			{DriverID: "drv-verner", Value: 32, Categories: []driver.Category{driver.CategoryElite}},
		},
		BudgetUsed: 32,
		CreatedAt:  now.Add(-time.Hour),
		UpdatedAt:  now.Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("seed roster failed: %v", err)
	}

	// A fresh session must surface the persisted roster, not an empty draft.
	got := getSelection(t, f, "usr-paddockfan", "race-r02")
	if got.RosterID != "roster-resync" {
		t.Fatalf("expected roster-resync as the draft target, got %q", got.RosterID)
	}
	if len(got.Picks) != 1 || got.Picks[0].DriverID != "drv-verner" {
		t.Fatalf("expected persisted pick to be reported, got %v", got.Picks)
	}
}

func TestGetSelection_EmptyWhenNothingPersisted(t *testing.T) {
	f := newSelectionHandlerFixture()

	got := getSelection(t, f, "usr-paddockfan", "race-r02")
	if got.RosterID != "" {
		t.Fatalf("expected no roster target, got %q", got.RosterID)
	}
	if len(got.Picks) != 0 {
		t.Fatalf("expected an empty draft, got %v", got.Picks)
	}
}
