package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/pitwall/fantasy-gp/internal/platform/logging"
	"github.com/pitwall/fantasy-gp/internal/usecase"
)

type Handler struct {
	driverService    *usecase.DriverService
	raceService      *usecase.RaceService
	selectionService *usecase.SelectionService
	rosterService    *usecase.RosterService
	elevationService *usecase.ElevationService
	catalogService   *usecase.CatalogService
	resultsService   *usecase.ResultsService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	driverService *usecase.DriverService,
	raceService *usecase.RaceService,
	selectionService *usecase.SelectionService,
	rosterService *usecase.RosterService,
	elevationService *usecase.ElevationService,
	catalogService *usecase.CatalogService,
	resultsService *usecase.ResultsService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		driverService:    driverService,
		raceService:      raceService,
		selectionService: selectionService,
		rosterService:    rosterService,
		elevationService: elevationService,
		catalogService:   catalogService,
		resultsService:   resultsService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
