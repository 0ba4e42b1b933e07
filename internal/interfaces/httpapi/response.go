package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/pitwall/fantasy-gp/internal/domain/elevation"
	"github.com/pitwall/fantasy-gp/internal/domain/roster"
	"github.com/pitwall/fantasy-gp/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "fantasy-gp"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	// Roster and selection state must never be replayed from shared caches.
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	var validationErr *usecase.RosterValidationError
	if errors.As(err, &validationErr) {
		writeValidationError(ctx, w, validationErr)
		return
	}

	mapped := mapError(ctx, err)
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: err.Error(),
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: err.Error(),
				},
			},
		},
	})
}

// writeValidationError emits one error item per roster violation so clients
// can show the full list in one round trip.
func writeValidationError(ctx context.Context, w http.ResponseWriter, validationErr *usecase.RosterValidationError) {
	items := make([]googleErrorItem, 0, len(validationErr.Violations))
	for _, violation := range validationErr.Violations {
		items = append(items, googleErrorItem{
			Domain:  errorDomain,
			Reason:  "rosterInvalid",
			Message: violation,
		})
	}

	writeJSON(ctx, w, http.StatusBadRequest, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusBadRequest,
			Message: validationErr.Error(),
			Status:  "INVALID_ARGUMENT",
			Errors:  items,
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: msg,
				},
			},
		},
	})
}

func mapError(ctx context.Context, err error) mappedError {
	ctx, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "notFound",
			Status:     "NOT_FOUND",
		}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "unauthorized",
			Status:     "UNAUTHENTICATED",
		}
	case errors.Is(err, usecase.ErrForbidden):
		return mappedError{
			HTTPStatus: http.StatusForbidden,
			Reason:     "forbidden",
			Status:     "PERMISSION_DENIED",
		}
	case errors.Is(err, usecase.ErrSaveInFlight):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "saveInFlight",
			Status:     "ABORTED",
		}
	case errors.Is(err, usecase.ErrDataIntegrity):
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "dataIntegrity",
			Status:     "INTERNAL",
		}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "dependencyUnavailable",
			Status:     "UNAVAILABLE",
		}
	case errors.Is(err, roster.ErrRaceNotOpen):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "raceNotOpen",
			Status:     "FAILED_PRECONDITION",
		}
	case errors.Is(err, roster.ErrRosterFull),
		errors.Is(err, roster.ErrDuplicateDriver),
		errors.Is(err, roster.ErrBudgetExceeded),
		errors.Is(err, roster.ErrIncompleteRoster),
		errors.Is(err, roster.ErrMissingCategory),
		errors.Is(err, roster.ErrDriverNotSelected):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidSelection",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, elevation.ErrInvalidKey):
		return mappedError{
			HTTPStatus: http.StatusForbidden,
			Reason:     "invalidElevationKey",
			Status:     "PERMISSION_DENIED",
		}
	case errors.Is(err, elevation.ErrElevationExpired):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "elevationExpired",
			Status:     "UNAUTHENTICATED",
		}
	case errors.Is(err, elevation.ErrNotElevated),
		errors.Is(err, elevation.ErrElevationMismatch):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "elevationRequired",
			Status:     "UNAUTHENTICATED",
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
			Status:     "INTERNAL",
		}
	}
}
