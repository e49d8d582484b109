package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkspaceIsExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	w := &Workspace{LastSeenAt: now.Add(-2 * time.Hour)}

	assert.True(t, w.IsExpired(now, time.Hour))
	assert.False(t, w.IsExpired(now, 3*time.Hour))
}

func TestWorkspaceHasPendingCursor(t *testing.T) {
	w := &Workspace{}
	assert.False(t, w.HasPendingCursor())

	w.PendingField = FieldExpiration
	assert.True(t, w.HasPendingCursor())
}

func TestWorkspaceTableNames(t *testing.T) {
	assert.Equal(t, "workspaces", Workspace{}.TableName())
	assert.Equal(t, "preferences", Preference{}.TableName())
	assert.Equal(t, []string{"elaboration", "expiration", "evaluation"}, DateFields)
}
