package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pitwall/fantasy-gp/internal/domain/driver"
	"github.com/pitwall/fantasy-gp/internal/domain/elevation"
	"github.com/pitwall/fantasy-gp/internal/domain/user"
	"github.com/pitwall/fantasy-gp/internal/platform/cache"
	idgen "github.com/pitwall/fantasy-gp/internal/platform/id"
	"github.com/pitwall/fantasy-gp/internal/platform/logging"
)

// CatalogService mutates the driver and participant catalog. Every call
// re-checks the actor's elevation grant immediately before dispatch, so a
// grant that expired mid-flight still blocks the write, and invalidates
// the catalog cache after a successful mutation.
type CatalogService struct {
	driverRepo driver.Repository
	userRepo   user.Repository
	manager    *elevation.Manager
	store      *cache.Store
	idGen      idgen.Generator
	logger     *logging.Logger
}

func NewCatalogService(
	driverRepo driver.Repository,
	userRepo user.Repository,
	manager *elevation.Manager,
	store *cache.Store,
	gen idgen.Generator,
	logger *logging.Logger,
) *CatalogService {
	if logger == nil {
		logger = logging.Default()
	}

	return &CatalogService{
		driverRepo: driverRepo,
		userRepo:   userRepo,
		manager:    manager,
		store:      store,
		idGen:      gen,
		logger:     logger,
	}
}

type DriverInput struct {
	SeasonID   string
	Name       string
	TeamName   string
	Value      int64
	Categories []string
	Country    string
	ImageURL   string
	Bio        string
}

type ParticipantInput struct {
	Username string
	Role     string
	Budget   int64
	SeasonID string
}

func (s *CatalogService) CreateDriver(ctx context.Context, actor user.Principal, input DriverInput) (driver.Driver, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.CreateDriver")
	defer span.End()

	if err := s.requireElevation(actor); err != nil {
		return driver.Driver{}, err
	}

	driverID, err := s.idGen.NewID()
	if err != nil {
		return driver.Driver{}, fmt.Errorf("generate driver id: %w", err)
	}

	d, err := driverFromInput(driverID, input)
	if err != nil {
		return driver.Driver{}, err
	}

	if err := s.driverRepo.Create(ctx, d); err != nil {
		return driver.Driver{}, classifyBackendError(fmt.Errorf("create driver: %w", err))
	}

	s.invalidateCatalog(ctx)
	s.logger.InfoContext(ctx, "driver created", "actor", actor.UserID, "driver_id", d.ID, "season_id", d.SeasonID)

	return d, nil
}

func (s *CatalogService) UpdateDriver(ctx context.Context, actor user.Principal, driverID string, input DriverInput) (driver.Driver, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.UpdateDriver")
	defer span.End()

	if err := s.requireElevation(actor); err != nil {
		return driver.Driver{}, err
	}

	driverID = strings.TrimSpace(driverID)
	if driverID == "" {
		return driver.Driver{}, fmt.Errorf("%w: driver id is required", ErrInvalidInput)
	}

	if _, exists, err := s.driverRepo.GetByID(ctx, driverID); err != nil {
		return driver.Driver{}, classifyBackendError(fmt.Errorf("get driver: %w", err))
	} else if !exists {
		return driver.Driver{}, fmt.Errorf("%w: driver=%s", ErrNotFound, driverID)
	}

	d, err := driverFromInput(driverID, input)
	if err != nil {
		return driver.Driver{}, err
	}

	if err := s.driverRepo.Update(ctx, d); err != nil {
		return driver.Driver{}, classifyBackendError(fmt.Errorf("update driver: %w", err))
	}

	s.invalidateCatalog(ctx)
	s.logger.InfoContext(ctx, "driver updated", "actor", actor.UserID, "driver_id", d.ID)

	return d, nil
}

func (s *CatalogService) DeleteDriver(ctx context.Context, actor user.Principal, driverID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.DeleteDriver")
	defer span.End()

	if err := s.requireElevation(actor); err != nil {
		return err
	}

	driverID = strings.TrimSpace(driverID)
	if driverID == "" {
		return fmt.Errorf("%w: driver id is required", ErrInvalidInput)
	}

	if _, exists, err := s.driverRepo.GetByID(ctx, driverID); err != nil {
		return classifyBackendError(fmt.Errorf("get driver: %w", err))
	} else if !exists {
		return fmt.Errorf("%w: driver=%s", ErrNotFound, driverID)
	}

	if err := s.driverRepo.Delete(ctx, driverID); err != nil {
		return classifyBackendError(fmt.Errorf("delete driver: %w", err))
	}

	s.invalidateCatalog(ctx)
	s.logger.InfoContext(ctx, "driver deleted", "actor", actor.UserID, "driver_id", driverID)

	return nil
}

func (s *CatalogService) CreateParticipant(ctx context.Context, actor user.Principal, input ParticipantInput) (user.Participant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.CreateParticipant")
	defer span.End()

	if err := s.requireElevation(actor); err != nil {
		return user.Participant{}, err
	}

	participantID, err := s.idGen.NewID()
	if err != nil {
		return user.Participant{}, fmt.Errorf("generate participant id: %w", err)
	}

	p, err := participantFromInput(participantID, input)
	if err != nil {
		return user.Participant{}, err
	}

	if err := s.userRepo.Create(ctx, p); err != nil {
		return user.Participant{}, classifyBackendError(fmt.Errorf("create participant: %w", err))
	}

	s.logger.InfoContext(ctx, "participant created", "actor", actor.UserID, "participant_id", p.ID)

	return p, nil
}

func (s *CatalogService) UpdateParticipant(ctx context.Context, actor user.Principal, participantID string, input ParticipantInput) (user.Participant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.UpdateParticipant")
	defer span.End()

	if err := s.requireElevation(actor); err != nil {
		return user.Participant{}, err
	}

	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return user.Participant{}, fmt.Errorf("%w: participant id is required", ErrInvalidInput)
	}

	if _, exists, err := s.userRepo.GetByID(ctx, participantID); err != nil {
		return user.Participant{}, classifyBackendError(fmt.Errorf("get participant: %w", err))
	} else if !exists {
		return user.Participant{}, fmt.Errorf("%w: participant=%s", ErrNotFound, participantID)
	}

	p, err := participantFromInput(participantID, input)
	if err != nil {
		return user.Participant{}, err
	}

	if err := s.userRepo.Update(ctx, p); err != nil {
		return user.Participant{}, classifyBackendError(fmt.Errorf("update participant: %w", err))
	}

	s.logger.InfoContext(ctx, "participant updated", "actor", actor.UserID, "participant_id", p.ID)

	return p, nil
}

func (s *CatalogService) DeleteParticipant(ctx context.Context, actor user.Principal, participantID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.DeleteParticipant")
	defer span.End()

	if err := s.requireElevation(actor); err != nil {
		return err
	}

	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return fmt.Errorf("%w: participant id is required", ErrInvalidInput)
	}

	if _, exists, err := s.userRepo.GetByID(ctx, participantID); err != nil {
		return classifyBackendError(fmt.Errorf("get participant: %w", err))
	} else if !exists {
		return fmt.Errorf("%w: participant=%s", ErrNotFound, participantID)
	}

	if err := s.userRepo.Delete(ctx, participantID); err != nil {
		return classifyBackendError(fmt.Errorf("delete participant: %w", err))
	}

	s.logger.InfoContext(ctx, "participant deleted", "actor", actor.UserID, "participant_id", participantID)

	return nil
}

// requireElevation fetches the grant fresh on every call. The token is
// attached to this single operation only, never cached by the mutation.
func (s *CatalogService) requireElevation(actor user.Principal) error {
	if actor.Role != user.RoleAdmin {
		return fmt.Errorf("%w: only admins may administer the catalog", ErrForbidden)
	}
	if _, err := s.manager.Require(actor.UserID); err != nil {
		return err
	}

	return nil
}

func (s *CatalogService) invalidateCatalog(ctx context.Context) {
	if s.store == nil {
		return
	}
	s.store.DeletePrefix(ctx, driverCachePrefix)
}

func driverFromInput(driverID string, input DriverInput) (driver.Driver, error) {
	categories := make([]driver.Category, 0, len(input.Categories))
	for _, raw := range input.Categories {
		categories = append(categories, driver.Category(strings.ToUpper(strings.TrimSpace(raw))))
	}

	d := driver.Driver{
		ID:         driverID,
		SeasonID:   strings.TrimSpace(input.SeasonID),
		Name:       strings.TrimSpace(input.Name),
		TeamName:   strings.TrimSpace(input.TeamName),
		Value:      input.Value,
		Categories: categories,
		Country:    strings.TrimSpace(input.Country),
		ImageURL:   strings.TrimSpace(input.ImageURL),
		Bio:        strings.TrimSpace(input.Bio),
	}
	if err := d.Validate(); err != nil {
		return driver.Driver{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return d, nil
}

func participantFromInput(participantID string, input ParticipantInput) (user.Participant, error) {
	p := user.Participant{
		ID:       participantID,
		Username: strings.TrimSpace(input.Username),
		Role:     user.Role(strings.ToLower(strings.TrimSpace(input.Role))),
		Budget:   input.Budget,
		SeasonID: strings.TrimSpace(input.SeasonID),
	}
	if err := p.Validate(); err != nil {
		return user.Participant{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return p, nil
}
