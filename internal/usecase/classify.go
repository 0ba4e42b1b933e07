package usecase

import (
	"errors"
	"strings"

	"github.com/pitwall/fantasy-gp/internal/domain/roster"
)

// classifyBackendError re-routes an opaque backend failure into the nearest
// structured category by keyword so the caller sees an actionable message.
// Structured sentinels pass through untouched; this is only the
// compatibility fallback for errors that carry no sentinel.
func classifyBackendError(err error) error {
	if err == nil {
		return nil
	}

	for _, sentinel := range []error{
		roster.ErrRaceNotOpen,
		roster.ErrRosterFull,
		roster.ErrDuplicateDriver,
		roster.ErrBudgetExceeded,
		roster.ErrIncompleteRoster,
		roster.ErrMissingCategory,
		ErrInvalidInput,
		ErrNotFound,
		ErrUnauthorized,
		ErrForbidden,
		ErrDataIntegrity,
		ErrDependencyUnavailable,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "deadline") || strings.Contains(msg, "expired"):
		return errors.Join(roster.ErrRaceNotOpen, err)
	case strings.Contains(msg, "locked"):
		return errors.Join(roster.ErrRaceNotOpen, err)
	case strings.Contains(msg, "budget"):
		return errors.Join(roster.ErrBudgetExceeded, err)
	case strings.Contains(msg, "driver"):
		return errors.Join(ErrNotFound, err)
	case strings.Contains(msg, "race"):
		return errors.Join(ErrNotFound, err)
	default:
		return err
	}
}
