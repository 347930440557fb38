package models

import "time"

// Preference keys
const (
	PreferenceTheme  = "theme"
	PreferenceTenant = "tenant"
)

// Preference is one persisted client setting of one user
type Preference struct {
	UserID    string    `gorm:"primaryKey;size:128"`
	Key       string    `gorm:"column:name;primaryKey;size:32"`
	Value     string    `gorm:"size:255;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Preference) TableName() string {
	return "preferences"
}
