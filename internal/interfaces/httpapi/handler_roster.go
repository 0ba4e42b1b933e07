package httpapi

import (
	"fmt"
	"net/http"

	"github.com/pitwall/fantasy-gp/internal/usecase"
)

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoster")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	raceID := r.PathValue("raceID")
	persisted, found, err := h.rosterService.Load(ctx, principal.UserID, raceID)
	if err != nil {
		h.logger.WarnContext(ctx, "load roster failed", "user_id", principal.UserID, "race_id", raceID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: no roster submitted for race %s", usecase.ErrNotFound, raceID))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(persisted))
}

// SaveRoster submits the caller's current draft selection. The body is
// empty on purpose: the server-held selection is the source of truth, so a
// retried PUT after a network failure cannot resurrect stale picks.
func (h *Handler) SaveRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveRoster")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	raceID := r.PathValue("raceID")
	saved, err := h.rosterService.Save(ctx, principal.UserID, raceID)
	if err != nil {
		h.logger.WarnContext(ctx, "save roster failed", "user_id", principal.UserID, "race_id", raceID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(saved))
}

func (h *Handler) DeleteRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteRoster")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	raceID := r.PathValue("raceID")
	if err := h.rosterService.Delete(ctx, principal.UserID, raceID); err != nil {
		h.logger.WarnContext(ctx, "delete roster failed", "user_id", principal.UserID, "race_id", raceID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}
