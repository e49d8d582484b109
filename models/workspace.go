package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Date fields of a workspace
const (
	FieldElaboration = "elaboration"
	FieldExpiration  = "expiration"
	FieldEvaluation  = "evaluation"
)

// DateFields lists the editable fields in display order.
var DateFields = []string{FieldElaboration, FieldExpiration, FieldEvaluation}

// Workspace is the persisted calculator state of one browser session.
type Workspace struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Committed dates (midnight UTC). Evaluation is always present.
	ElaborationDate *time.Time `json:"elaboration_date,omitempty"`
	ExpirationDate  *time.Time `json:"expiration_date,omitempty"`
	EvaluationDate  time.Time  `gorm:"not null" json:"evaluation_date"`

	// Text currently shown in each input
	ElaborationText string `gorm:"type:varchar(16)" json:"elaboration_text"`
	ExpirationText  string `gorm:"type:varchar(16)" json:"expiration_text"`
	EvaluationText  string `gorm:"type:varchar(16)" json:"evaluation_text"`

	// Cursor computed by the last keystroke, waiting to be applied to the input
	PendingField  string `gorm:"type:varchar(16)" json:"pending_field,omitempty"`
	PendingCursor int    `json:"pending_cursor"`

	// Snapshot of the last calculation; HasResult is false when data is insufficient
	HasResult           bool   `gorm:"not null;default:false" json:"has_result"`
	TotalShelfLife      int    `json:"total_shelf_life"`
	RemainingDays       int    `json:"remaining_days"`
	RemainingPercentage int    `json:"remaining_percentage"`
	Status              string `gorm:"type:varchar(32)" json:"status,omitempty"`

	LastSeenAt time.Time `gorm:"not null;index" json:"last_seen_at"`

	// Relationships
	Preferences []Preference `gorm:"foreignKey:Scope;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate hook to generate UUID
func (w *Workspace) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	if w.LastSeenAt.IsZero() {
		w.LastSeenAt = time.Now()
	}
	return nil
}

// TableName specifies the table name for Workspace model
func (Workspace) TableName() string {
	return "workspaces"
}

// IsExpired reports whether the workspace was idle longer than ttl.
func (w *Workspace) IsExpired(now time.Time, ttl time.Duration) bool {
	return now.Sub(w.LastSeenAt) > ttl
}

// HasPendingCursor reports whether a keystroke cursor still has to be applied.
func (w *Workspace) HasPendingCursor() bool {
	return w.PendingField != ""
}
