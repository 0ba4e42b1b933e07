package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/pitwall/fantasy-gp/internal/usecase"
)

func (h *Handler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateDriver")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req driverUpsertRequest
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

	created, err := h.catalogService.CreateDriver(ctx, principal, driverInputFromRequest(req))
	if err != nil {
		h.logger.WarnContext(ctx, "create driver failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, driverToDTO(created))
}

func (h *Handler) UpdateDriver(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateDriver")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req driverUpsertRequest
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

	driverID := r.PathValue("driverID")
	updated, err := h.catalogService.UpdateDriver(ctx, principal, driverID, driverInputFromRequest(req))
	if err != nil {
		h.logger.WarnContext(ctx, "update driver failed", "user_id", principal.UserID, "driver_id", driverID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, driverToDTO(updated))
}

func (h *Handler) DeleteDriver(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteDriver")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	driverID := r.PathValue("driverID")
	if err := h.catalogService.DeleteDriver(ctx, principal, driverID); err != nil {
		h.logger.WarnContext(ctx, "delete driver failed", "user_id", principal.UserID, "driver_id", driverID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) CreateParticipant(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateParticipant")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req participantUpsertRequest
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

	created, err := h.catalogService.CreateParticipant(ctx, principal, participantInputFromRequest(req))
	if err != nil {
		h.logger.WarnContext(ctx, "create participant failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, map[string]any{
		"id":        created.ID,
		"username":  created.Username,
		"role":      string(created.Role),
		"budget":    created.Budget,
		"season_id": created.SeasonID,
	})
}

func (h *Handler) UpdateParticipant(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateParticipant")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req participantUpsertRequest
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

	participantID := r.PathValue("participantID")
	updated, err := h.catalogService.UpdateParticipant(ctx, principal, participantID, participantInputFromRequest(req))
	if err != nil {
		h.logger.WarnContext(ctx, "update participant failed", "user_id", principal.UserID, "participant_id", participantID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"id":        updated.ID,
		"username":  updated.Username,
		"role":      string(updated.Role),
		"budget":    updated.Budget,
		"season_id": updated.SeasonID,
	})
}

func (h *Handler) DeleteParticipant(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteParticipant")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	participantID := r.PathValue("participantID")
	if err := h.catalogService.DeleteParticipant(ctx, principal, participantID); err != nil {
		h.logger.WarnContext(ctx, "delete participant failed", "user_id", principal.UserID, "participant_id", participantID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func driverInputFromRequest(req driverUpsertRequest) usecase.DriverInput {
	return usecase.DriverInput{
		SeasonID:   req.SeasonID,
		Name:       req.Name,
		TeamName:   req.TeamName,
		Value:      req.Value,
		Categories: req.Categories,
		Country:    req.Country,
		ImageURL:   req.ImageURL,
		Bio:        req.Bio,
	}
}

func participantInputFromRequest(req participantUpsertRequest) usecase.ParticipantInput {
	return usecase.ParticipantInput{
		Username: req.Username,
		Role:     req.Role,
		Budget:   req.Budget,
		SeasonID: req.SeasonID,
	}
}
