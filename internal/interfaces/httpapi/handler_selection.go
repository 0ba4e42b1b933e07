package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/pitwall/fantasy-gp/internal/usecase"
)

// GetSelection returns the caller's full draft state for a race. Clients
// use it to resynchronize after reconnecting; the response is the complete
// picture, not a delta.
func (h *Handler) GetSelection(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSelection")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	raceID := r.PathValue("raceID")
	sel, err := h.selectionService.Selection(ctx, principal.UserID, raceID)
	if err != nil {
		h.logger.WarnContext(ctx, "get selection failed", "user_id", principal.UserID, "race_id", raceID, "error", err)
		writeError(ctx, w, err)
		return
	}

	// A fresh draft may still have a persisted roster behind it, so seed
	// it from storage before reporting. An already-edited draft is left
	// alone; reseeding would discard the in-progress picks.
	if sel.RosterID() == "" && sel.Size() == 0 {
		if _, _, err := h.rosterService.Load(ctx, principal.UserID, raceID); err != nil {
			h.logger.WarnContext(ctx, "seed selection from roster failed", "user_id", principal.UserID, "race_id", raceID, "error", err)
			writeError(ctx, w, err)
			return
		}
	}

	elig, err := h.raceService.Eligibility(ctx, raceID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, selectionToDTO(sel, elig))
}

func (h *Handler) AddSelectionDriver(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddSelectionDriver")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req addSelectionDriverRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	raceID := r.PathValue("raceID")
	sel, err := h.selectionService.AddDriver(ctx, principal.UserID, raceID, req.DriverID)
	if err != nil {
		h.logger.WarnContext(ctx, "add selection driver failed", "user_id", principal.UserID, "race_id", raceID, "driver_id", req.DriverID, "error", err)
		writeError(ctx, w, err)
		return
	}

	elig, err := h.raceService.Eligibility(ctx, raceID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, selectionToDTO(sel, elig))
}

func (h *Handler) RemoveSelectionDriver(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveSelectionDriver")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	raceID := r.PathValue("raceID")
	driverID := r.PathValue("driverID")
	sel, err := h.selectionService.RemoveDriver(ctx, principal.UserID, raceID, driverID)
	if err != nil {
		h.logger.WarnContext(ctx, "remove selection driver failed", "user_id", principal.UserID, "race_id", raceID, "driver_id", driverID, "error", err)
		writeError(ctx, w, err)
		return
	}

	elig, err := h.raceService.Eligibility(ctx, raceID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, selectionToDTO(sel, elig))
}

func (h *Handler) EndSelection(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EndSelection")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	raceID := r.PathValue("raceID")
	h.selectionService.End(principal.UserID, raceID)

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ended"})
}
