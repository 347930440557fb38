package persistence

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/constructpro/dashboard/internal/infrastructure/config"
	"github.com/constructpro/dashboard/internal/infrastructure/persistence/models"
)

func TestNewDatabase_DefaultsToMemory(t *testing.T) {
	db, err := NewDatabase(config.StorageConfig{})
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.Ping())
	assert.True(t, db.DB.Migrator().HasTable(&models.Preference{}))
}

func TestNewDatabase_FileSurvivesReopen(t *testing.T) {
	cfg := config.StorageConfig{Path: filepath.Join(t.TempDir(), "prefs.db")}

	db, err := NewDatabase(cfg)
	require.NoError(t, err)
	require.NoError(t, db.DB.Create(&models.Preference{UserID: "u1", Key: models.PreferenceTheme, Value: "dark"}).Error)
	require.NoError(t, db.Close())

	db, err = NewDatabase(cfg)
	require.NoError(t, err)
	defer db.Close()

	var pref models.Preference
	require.NoError(t, db.DB.Where("user_id = ?", "u1").First(&pref).Error)
	assert.Equal(t, "dark", pref.Value)
}

func TestDatabase_Close(t *testing.T) {
	db, err := NewDatabase(config.StorageConfig{Path: ":memory:"})
	require.NoError(t, err)

	require.NoError(t, db.Close())
	assert.Error(t, db.Ping())
}
