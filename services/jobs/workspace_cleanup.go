package jobs

import (
	"context"
	"fmt"
	"time"

	"shelf_life_app_go/config"
	"shelf_life_app_go/services"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// cleanupTimeout bounds a single cleanup run.
const cleanupTimeout = time.Minute

// StartScheduler registers the workspace cleanup on cfg.CleanupSchedule and
// starts the cron runner. Callers stop it with Stop() on shutdown.
func StartScheduler(svc *services.WorkspaceService, cfg *config.Config, log *zap.Logger) (*cron.Cron, error) {
	if log == nil {
		log = zap.NewNop()
	}

	c := cron.New(cron.WithLocation(cfg.Location()))

	_, err := c.AddFunc(cfg.CleanupSchedule, func() {
		CleanupWorkspaces(svc, log)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid CLEANUP_SCHEDULE %q: %w", cfg.CleanupSchedule, err)
	}

	c.Start()
	log.Info("cron scheduler started", zap.String("schedule", cfg.CleanupSchedule))
	return c, nil
}

// CleanupWorkspaces removes workspaces idle longer than the configured TTL.
func CleanupWorkspaces(svc *services.WorkspaceService, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	removed, err := svc.CleanupExpired(ctx)
	if err != nil {
		log.Error("workspace cleanup failed", zap.Error(err))
		return
	}
	log.Info("workspace cleanup completed", zap.Int64("removed", removed))
}
