package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/pitwall/fantasy-gp/internal/usecase"
)

// RunApplyResultsJob fans out post-race points across every persisted
// roster of a race. It runs behind the internal job token.
func (h *Handler) RunApplyResultsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunApplyResultsJob")
	defer span.End()

	var req applyResultsRequest
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

	report, err := h.resultsService.ApplyResults(ctx, usecase.ApplyResultsInput{
		RaceID:         req.RaceID,
		PointsByDriver: req.PointsByDriver,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "apply results job failed", "race_id", req.RaceID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}
