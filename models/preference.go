package models

import "time"

// Preference keys
const (
	PreferenceTheme = "theme"
)

// Preference is a small key/value setting scoped to a workspace.
type Preference struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Scope string `gorm:"type:uuid;not null;uniqueIndex:idx_preference_scope_key" json:"scope"`
	Key   string `gorm:"type:varchar(64);not null;uniqueIndex:idx_preference_scope_key" json:"key"`
	Value string `gorm:"type:varchar(255);not null" json:"value"`
}

// TableName specifies the table name for Preference model
func (Preference) TableName() string {
	return "preferences"
}
