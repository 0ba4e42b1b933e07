package httpapi

import (
	"net/http"
	"strings"

	"github.com/pitwall/fantasy-gp/internal/domain/driver"
)

func (h *Handler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDrivers")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	category := driver.Category(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("category"))))

	drivers, err := h.driverService.ListDrivers(ctx, seasonID, category)
	if err != nil {
		h.logger.WarnContext(ctx, "list drivers failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]driverDTO, 0, len(drivers))
	for _, d := range drivers {
		items = append(items, driverToDTO(d))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetDriver(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDriver")
	defer span.End()

	driverID := r.PathValue("driverID")
	d, err := h.driverService.GetDriver(ctx, driverID)
	if err != nil {
		h.logger.WarnContext(ctx, "get driver failed", "driver_id", driverID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, driverToDTO(d))
}
