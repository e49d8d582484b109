package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"shelf_life_app_go/config"
	"shelf_life_app_go/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreferenceStore persists small UI settings. Absence is reported with ok=false.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// GormPreferenceStore stores preferences in the preferences table, scoped to one workspace.
type GormPreferenceStore struct {
	DB    *gorm.DB
	Scope string
}

func NewGormPreferenceStore(db *gorm.DB, scope string) *GormPreferenceStore {
	return &GormPreferenceStore{DB: db, Scope: scope}
}

func (s *GormPreferenceStore) Get(ctx context.Context, key string) (string, bool, error) {
	var pref models.Preference
	err := s.DB.WithContext(ctx).
		Where(&models.Preference{Scope: s.Scope, Key: key}).
		First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read preference %s: %w", key, err)
	}
	return pref.Value, true, nil
}

func (s *GormPreferenceStore) Set(ctx context.Context, key, value string) error {
	pref := models.Preference{Scope: s.Scope, Key: key, Value: value}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&pref).Error
	if err != nil {
		return fmt.Errorf("failed to save preference %s: %w", key, err)
	}
	return nil
}

// MemoryPreferenceStore keeps preferences in process memory.
type MemoryPreferenceStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryPreferenceStore() *MemoryPreferenceStore {
	return &MemoryPreferenceStore{values: make(map[string]string)}
}

func (s *MemoryPreferenceStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryPreferenceStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Theme returns the stored theme, or fallback when none (or an unknown value) is stored.
func Theme(ctx context.Context, store PreferenceStore, fallback string) (string, error) {
	v, ok, err := store.Get(ctx, models.PreferenceTheme)
	if err != nil {
		return fallback, err
	}
	if !ok || (v != config.ThemeLight && v != config.ThemeDark) {
		return fallback, nil
	}
	return v, nil
}

// ToggleTheme flips between light and dark and persists the new value.
func ToggleTheme(ctx context.Context, store PreferenceStore, fallback string) (string, error) {
	current, err := Theme(ctx, store, fallback)
	if err != nil {
		return current, err
	}

	next := config.ThemeDark
	if current == config.ThemeDark {
		next = config.ThemeLight
	}
	if err := store.Set(ctx, models.PreferenceTheme, next); err != nil {
		return current, err
	}
	return next, nil
}
