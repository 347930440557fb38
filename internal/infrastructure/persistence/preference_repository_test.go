package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/constructpro/dashboard/internal/domain/identity"
	"github.com/constructpro/dashboard/internal/domain/shared"
	"github.com/constructpro/dashboard/internal/infrastructure/config"
	"github.com/constructpro/dashboard/internal/infrastructure/logger"
	"github.com/constructpro/dashboard/internal/infrastructure/persistence/models"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(config.StorageConfig{Path: ":memory:"},
		WithLogger(logger.NewGormLogger(zap.NewNop(), logger.GormLevel("warn"), 200*time.Millisecond)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNewDatabase(t *testing.T) {
	db := newTestDatabase(t)
	require.NoError(t, db.Ping())
	assert.True(t, db.DB.Migrator().HasTable(&models.Preference{}))
}

func TestPreferenceRepository_Theme(t *testing.T) {
	ctx := context.Background()
	repo := NewGormPreferenceRepository(newTestDatabase(t).DB)

	theme, err := repo.Theme(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, identity.ThemeSystem, theme)

	require.NoError(t, repo.SetTheme(ctx, "u1", identity.ThemeDark))
	require.NoError(t, repo.SetTheme(ctx, "u1", identity.ThemeLight))

	theme, err = repo.Theme(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, identity.ThemeLight, theme)

	other, err := repo.Theme(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, identity.ThemeSystem, other)

	err = repo.SetTheme(ctx, "u1", identity.Theme("neon"))
	assert.True(t, shared.HasCode(err, shared.CodeInvalidInput))
}

func TestPreferenceRepository_ActiveTenant(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	repo := NewGormPreferenceRepository(db.DB)

	tenant, err := repo.ActiveTenant(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, tenant)

	require.NoError(t, repo.SetActiveTenant(ctx, "u1", "t1"))
	require.NoError(t, repo.SetActiveTenant(ctx, "u1", "t2"))

	tenant, err = repo.ActiveTenant(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "t2", tenant)

	var count int64
	require.NoError(t, db.DB.Model(&models.Preference{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.SetActiveTenant(ctx, "u1", ""))
	tenant, err = repo.ActiveTenant(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, tenant)
}

func TestPreferenceRepository_StoredGarbageThemeFallsBack(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	require.NoError(t, db.DB.Create(&models.Preference{UserID: "u1", Key: models.PreferenceTheme, Value: "sepia", UpdatedAt: time.Now()}).Error)

	theme, err := NewGormPreferenceRepository(db.DB).Theme(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, identity.DefaultTheme, theme)
}
