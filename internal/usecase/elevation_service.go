package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pitwall/fantasy-gp/internal/domain/elevation"
	"github.com/pitwall/fantasy-gp/internal/domain/user"
	"github.com/pitwall/fantasy-gp/internal/platform/logging"
)

// ElevationService fronts the grant manager with role checks and audit
// logging. Grants are session-scoped; nothing here touches storage.
type ElevationService struct {
	manager *elevation.Manager
	logger  *logging.Logger
}

func NewElevationService(manager *elevation.Manager, logger *logging.Logger) *ElevationService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ElevationService{
		manager: manager,
		logger:  logger,
	}
}

func (s *ElevationService) RequestGrant(ctx context.Context, principal user.Principal, key string) (elevation.Grant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ElevationService.RequestGrant")
	defer span.End()

	key = strings.TrimSpace(key)
	if key == "" {
		return elevation.Grant{}, fmt.Errorf("%w: elevation key is required", ErrInvalidInput)
	}
	if principal.Role != user.RoleAdmin {
		return elevation.Grant{}, fmt.Errorf("%w: only admins may elevate", ErrForbidden)
	}

	grant, err := s.manager.Issue(principal.UserID, key)
	if err != nil {
		s.logger.WarnContext(ctx, "elevation request denied", "user_id", principal.UserID, "error", err)
		return elevation.Grant{}, err
	}

	s.logger.InfoContext(ctx, "elevation granted",
		"user_id", principal.UserID,
		"expires_at", grant.ExpiresAt,
	)

	return grant, nil
}

func (s *ElevationService) Status(ctx context.Context, userID string) (elevation.Grant, bool) {
	_, span := startUsecaseSpan(ctx, "usecase.ElevationService.Status")
	defer span.End()

	grant, err := s.manager.Require(userID)
	if err != nil {
		return elevation.Grant{}, false
	}

	return grant, true
}

func (s *ElevationService) Revoke(ctx context.Context, userID string) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ElevationService.Revoke")
	defer span.End()

	s.manager.Revoke(userID)
	s.logger.InfoContext(ctx, "elevation revoked", "user_id", userID)
}
