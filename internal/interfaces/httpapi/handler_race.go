package httpapi

import (
	"net/http"
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/race"
)

func (h *Handler) ListRaces(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRaces")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	races, err := h.raceService.ListRaces(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list races failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]raceDTO, 0, len(races))
	for _, item := range races {
		items = append(items, raceToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// GetCurrentRace resolves the next race that has a published schedule and
// an open submission window. When the calendar has none, the response
// carries the NO_RACE eligibility verdict instead of a 404 so clients can
// render the idle state.
func (h *Handler) GetCurrentRace(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentRace")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	current, found, err := h.raceService.CurrentRace(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get current race failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	if !found {
		writeSuccess(ctx, w, http.StatusOK, map[string]any{
			"race":        nil,
			"eligibility": eligibilityToDTO(race.Evaluate(nil, time.Now().UTC())),
		})
		return
	}

	elig, err := h.raceService.Eligibility(ctx, current.ID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"race":        raceToDTO(current),
		"eligibility": eligibilityToDTO(elig),
	})
}

func (h *Handler) GetRace(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRace")
	defer span.End()

	raceID := r.PathValue("raceID")
	item, err := h.raceService.GetRace(ctx, raceID)
	if err != nil {
		h.logger.WarnContext(ctx, "get race failed", "race_id", raceID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, raceToDTO(item))
}

func (h *Handler) GetEligibility(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEligibility")
	defer span.End()

	raceID := r.PathValue("raceID")
	elig, err := h.raceService.Eligibility(ctx, raceID)
	if err != nil {
		h.logger.WarnContext(ctx, "get eligibility failed", "race_id", raceID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eligibilityToDTO(elig))
}
