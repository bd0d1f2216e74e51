// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/lifecycle"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

const defaultCleanupSpec = "@hourly"

// Scheduler owns the cron runner for background maintenance.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// Params holds dependencies for the Scheduler, injected by Fx
type Params struct {
	fx.In

	Lc             fx.Lifecycle
	Config         *config.Config
	SessionUsecase usecase.SessionUsecase
	Logger         *slog.Logger
}

// New creates the scheduler and registers the expired-session sweep job.
func New(params Params) (*Scheduler, error) {
	spec := defaultCleanupSpec
	if params.Config.Cleanup != nil && params.Config.Cleanup.Spec != "" {
		spec = params.Config.Cleanup.Spec
	}

	scheduler := &Scheduler{
		cron:   cron.New(),
		logger: params.Logger,
	}

	_, err := scheduler.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancel()

		removed, err := params.SessionUsecase.CleanupExpiredSessions(ctx)
		if err != nil {
			params.Logger.Error("Expired session cleanup failed",
				slog.Any("error", err),
			)

			return
		}

		if removed > 0 {
			params.Logger.Info("Expired sessions removed",
				slog.Int("count", removed),
			)
		}
	})
	if err != nil {
		return nil, errors.Wrapf(err, "invalid cleanup schedule %q", spec)
	}

	params.Lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			params.Logger.Info("Starting scheduler",
				slog.String("cleanup_spec", spec),
			)
			scheduler.cron.Start()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Stopping scheduler")

			select {
			case <-scheduler.cron.Stop().Done():
				return nil
			case <-ctx.Done():
				return errors.WithStack(ctx.Err())
			}
		},
	})

	return scheduler, nil
}
