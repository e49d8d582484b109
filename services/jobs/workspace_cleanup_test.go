package jobs

import (
	"context"
	"testing"
	"time"

	"shelf_life_app_go/config"
	"shelf_life_app_go/models"
	"shelf_life_app_go/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupCleanupTestDB(t *testing.T) *gorm.DB {
	dsn := "file:" + uuid.New().String() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Workspace{}, &models.Preference{}))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		WorkspaceTTL:    time.Hour,
		CleanupSchedule: "@hourly",
		Timezone:        "America/Bogota",
	}
}

func TestCleanupWorkspaces(t *testing.T) {
	db := setupCleanupTestDB(t)
	cfg := testConfig()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := services.NewWorkspaceService(db, cfg, nil)
	svc.Now = func() time.Time { return now }

	old, err := svc.Create(context.Background())
	require.NoError(t, err)

	core, logs := observer.New(zap.InfoLevel)
	svc.Now = func() time.Time { return now.Add(3 * time.Hour) }
	CleanupWorkspaces(svc, zap.New(core))

	_, err = svc.Get(context.Background(), old.ID())
	assert.ErrorIs(t, err, services.ErrWorkspaceNotFound)

	entries := logs.FilterMessage("workspace cleanup completed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["removed"])
}

func TestStartScheduler(t *testing.T) {
	db := setupCleanupTestDB(t)
	cfg := testConfig()
	svc := services.NewWorkspaceService(db, cfg, nil)

	c, err := StartScheduler(svc, cfg, nil)
	require.NoError(t, err)
	defer c.Stop()

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Next.After(time.Now()))
}

func TestStartSchedulerInvalidSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.CleanupSchedule = "every tuesday"
	svc := services.NewWorkspaceService(setupCleanupTestDB(t), cfg, nil)

	_, err := StartScheduler(svc, cfg, nil)
	assert.Error(t, err)
}
