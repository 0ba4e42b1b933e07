package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pitwall/fantasy-gp/internal/config"
	"github.com/pitwall/fantasy-gp/internal/domain/driver"
	"github.com/pitwall/fantasy-gp/internal/domain/elevation"
	"github.com/pitwall/fantasy-gp/internal/domain/race"
	"github.com/pitwall/fantasy-gp/internal/domain/roster"
	"github.com/pitwall/fantasy-gp/internal/domain/user"
	"github.com/pitwall/fantasy-gp/internal/infrastructure/account/paddock"
	"github.com/pitwall/fantasy-gp/internal/infrastructure/repository/memory"
	"github.com/pitwall/fantasy-gp/internal/infrastructure/repository/postgres"
	"github.com/pitwall/fantasy-gp/internal/interfaces/httpapi"
	"github.com/pitwall/fantasy-gp/internal/platform/cache"
	idgen "github.com/pitwall/fantasy-gp/internal/platform/id"
	"github.com/pitwall/fantasy-gp/internal/platform/logging"
	"github.com/pitwall/fantasy-gp/internal/platform/resilience"
	"github.com/pitwall/fantasy-gp/internal/usecase"
)

// App bundles the HTTP server with the resources it owns: the database
// handle when postgres storage is configured, and the background loops
// that keep eligibility and elevation grants current.
type App struct {
	Server *http.Server

	logger     *logging.Logger
	db         *sqlx.DB
	background *backgroundRunner
}

type repositories struct {
	drivers driver.Repository
	races   race.Repository
	users   user.Repository
	rosters roster.Repository
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, db, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build repositories: %w", err)
	}

	store := cache.NewDisabledStore()
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	gen := idgen.NewRandomGenerator()
	manager := elevation.NewManager(cfg.ElevationKey, cfg.ElevationTTL)

	driverSvc := usecase.NewDriverService(repos.drivers, store, logger)
	raceSvc := usecase.NewRaceService(repos.races, logger)
	selectionSvc := usecase.NewSelectionService(repos.races, repos.drivers, repos.users, roster.DefaultRules(), logger)
	rosterSvc := usecase.NewRosterService(repos.rosters, repos.drivers, repos.races, repos.users, selectionSvc, gen, logger)
	elevationSvc := usecase.NewElevationService(manager, logger)
	catalogSvc := usecase.NewCatalogService(repos.drivers, repos.users, manager, store, gen, logger)
	resultsSvc := usecase.NewResultsService(repos.rosters, repos.races, cfg.ResultsWorkerCount, logger)

	paddockClient := paddock.NewClient(
		&http.Client{Timeout: cfg.PaddockTimeout},
		cfg.PaddockBaseURL,
		cfg.PaddockIntrospectPath,
		resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: cfg.PaddockCircuitFailureCount,
			OpenTimeout:      cfg.PaddockCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.PaddockCircuitHalfOpenMax,
		},
		logger,
	)

	handler := httpapi.NewHandler(
		driverSvc,
		raceSvc,
		selectionSvc,
		rosterSvc,
		elevationSvc,
		catalogSvc,
		resultsSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, paddockClient, manager, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server: server,
		logger: logger,
		db:     db,
		background: newBackgroundRunner(
			selectionSvc,
			manager,
			cfg.EligibilityRecheckInterval,
			cfg.ElevationSweepInterval,
			logger,
		),
	}, nil
}

// Start launches the background loops. The HTTP server itself is started
// by the caller so it controls listen errors and shutdown ordering.
func (a *App) Start() {
	a.background.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.background.Stop()

	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
	}

	return nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, *sqlx.DB, error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := openDatabase(cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		logger.Info("storage ready", "mode", cfg.Storage, "database", dbNameFromURL(cfg.DBURL))

		return repositories{
			drivers: postgres.NewDriverRepository(db),
			races:   postgres.NewRaceRepository(db),
			users:   postgres.NewUserRepository(db),
			rosters: postgres.NewRosterRepository(db),
		}, db, nil
	default:
		now := time.Now().UTC()
		logger.Info("storage ready", "mode", cfg.Storage, "season", memory.SeedSeasonID)

		return repositories{
			drivers: memory.NewDriverRepository(memory.SeedDrivers()),
			races:   memory.NewRaceRepository(memory.SeedRaces(now)),
			users:   memory.NewUserRepository(memory.SeedParticipants()),
			rosters: memory.NewRosterRepository(),
		}, nil, nil
	}
}
