package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/constructpro/dashboard/internal/domain/identity"
	"github.com/constructpro/dashboard/internal/domain/shared"
	"github.com/constructpro/dashboard/internal/infrastructure/persistence/models"
)

// GormPreferenceRepository implements identity.PreferenceStore using GORM
type GormPreferenceRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormPreferenceRepository creates a new GormPreferenceRepository
func NewGormPreferenceRepository(db *gorm.DB) *GormPreferenceRepository {
	return &GormPreferenceRepository{db: db, now: time.Now}
}

var _ identity.PreferenceStore = (*GormPreferenceRepository)(nil)

func (r *GormPreferenceRepository) get(ctx context.Context, userID, key string) (string, error) {
	var pref models.Preference
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, key).
		First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read preference %s: %w", key, err)
	}
	return pref.Value, nil
}

func (r *GormPreferenceRepository) set(ctx context.Context, userID, key, value string) error {
	pref := models.Preference{
		UserID:    userID,
		Key:       key,
		Value:     value,
		UpdatedAt: r.now(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&pref).Error
	if err != nil {
		return fmt.Errorf("failed to save preference %s: %w", key, err)
	}
	return nil
}

// Theme returns the stored theme, or identity.DefaultTheme
func (r *GormPreferenceRepository) Theme(ctx context.Context, userID string) (identity.Theme, error) {
	v, err := r.get(ctx, userID, models.PreferenceTheme)
	if err != nil {
		return identity.DefaultTheme, err
	}
	theme := identity.Theme(v)
	if !theme.Valid() {
		return identity.DefaultTheme, nil
	}
	return theme, nil
}

// SetTheme stores theme
func (r *GormPreferenceRepository) SetTheme(ctx context.Context, userID string, theme identity.Theme) error {
	if !theme.Valid() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Tema inválido")
	}
	return r.set(ctx, userID, models.PreferenceTheme, string(theme))
}

// ActiveTenant returns the stored tenant id, or ""
func (r *GormPreferenceRepository) ActiveTenant(ctx context.Context, userID string) (string, error) {
	return r.get(ctx, userID, models.PreferenceTenant)
}

// SetActiveTenant stores tenantID. An empty id clears the preference.
func (r *GormPreferenceRepository) SetActiveTenant(ctx context.Context, userID, tenantID string) error {
	if tenantID == "" {
		err := r.db.WithContext(ctx).
			Where("user_id = ? AND name = ?", userID, models.PreferenceTenant).
			Delete(&models.Preference{}).Error
		if err != nil {
			return fmt.Errorf("failed to clear tenant preference: %w", err)
		}
		return nil
	}
	return r.set(ctx, userID, models.PreferenceTenant, tenantID)
}
