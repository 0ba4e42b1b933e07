package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/pitwall/fantasy-gp/internal/usecase"
)

// RequestElevation exchanges the elevation key for a short-lived grant.
// The token is returned exactly once; afterwards only its expiry is
// observable through GetElevationStatus.
func (h *Handler) RequestElevation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RequestElevation")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req elevationRequest
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

	grant, err := h.elevationService.RequestGrant(ctx, principal, req.Key)
	if err != nil {
		h.logger.WarnContext(ctx, "elevation request failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, grantToDTO(grant))
}

func (h *Handler) GetElevationStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetElevationStatus")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	grant, elevated := h.elevationService.Status(ctx, principal.UserID)
	status := elevationStatusDTO{Elevated: elevated}
	if elevated {
		status.ExpiresAtUTC = grant.ExpiresAt.UTC().Format(time.RFC3339)
	}

	writeSuccess(ctx, w, http.StatusOK, status)
}

func (h *Handler) RevokeElevation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RevokeElevation")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	h.elevationService.Revoke(ctx, principal.UserID)

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "revoked"})
}
