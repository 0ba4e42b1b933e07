package app

import (
	"context"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/pitwall/fantasy-gp/internal/domain/elevation"
	"github.com/pitwall/fantasy-gp/internal/platform/logging"
	"github.com/pitwall/fantasy-gp/internal/usecase"
)

// backgroundRunner owns the periodic loops: the eligibility recheck that
// ends drafts once a deadline passes, and the sweep that clears expired
// elevation grants.
type backgroundRunner struct {
	selections *usecase.SelectionService
	manager    *elevation.Manager

	recheckInterval time.Duration
	sweepInterval   time.Duration

	logger *logging.Logger
	wg     conc.WaitGroup
	cancel context.CancelFunc
}

func newBackgroundRunner(
	selections *usecase.SelectionService,
	manager *elevation.Manager,
	recheckInterval time.Duration,
	sweepInterval time.Duration,
	logger *logging.Logger,
) *backgroundRunner {
	if logger == nil {
		logger = logging.Default()
	}

	return &backgroundRunner{
		selections:      selections,
		manager:         manager,
		recheckInterval: recheckInterval,
		sweepInterval:   sweepInterval,
		logger:          logger,
	}
}

func (r *backgroundRunner) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	r.wg.Go(func() {
		r.runEligibilityRecheck(ctx)
	})
	r.wg.Go(func() {
		r.runElevationSweep(ctx)
	})
}

func (r *backgroundRunner) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	r.wg.Wait()
}

func (r *backgroundRunner) runEligibilityRecheck(ctx context.Context) {
	ticker := time.NewTicker(r.recheckInterval)
	defer ticker.Stop()

	r.logger.Info("eligibility recheck loop started", "interval", r.recheckInterval.String())
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("eligibility recheck loop stopped")
			return
		case <-ticker.C:
			r.selections.Reevaluate(ctx)
		}
	}
}

func (r *backgroundRunner) runElevationSweep(ctx context.Context) {
	ticker := time.NewTicker(r.sweepInterval)
	defer ticker.Stop()

	r.logger.Info("elevation sweep loop started", "interval", r.sweepInterval.String())
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("elevation sweep loop stopped")
			return
		case <-ticker.C:
			for _, userID := range r.manager.Sweep() {
				r.logger.Info("elevation grant expired", "user_id", userID)
			}
		}
	}
}
