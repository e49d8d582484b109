package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"shelf_life_app_go/config"
	"shelf_life_app_go/models"
	"shelf_life_app_go/services/shelflife"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrUnknownField      = errors.New("unknown date field")
	ErrCursorPending     = errors.New("cursor of the previous keystroke has not been applied")
	ErrNoPendingCursor   = errors.New("no pending cursor for this field")
)

// Workspace holds the calculator state of one session. Every mutation
// recomputes the calculation before returning.
type Workspace struct {
	Record      *models.Workspace
	Preferences PreferenceStore

	log *zap.Logger
}

// NewWorkspace wraps a record. A nil logger is replaced by a no-op one.
func NewWorkspace(record *models.Workspace, prefs PreferenceStore, log *zap.Logger) *Workspace {
	if log == nil {
		log = zap.NewNop()
	}
	if prefs == nil {
		prefs = NewMemoryPreferenceStore()
	}
	return &Workspace{Record: record, Preferences: prefs, log: log}
}

// ID returns the workspace identifier.
func (w *Workspace) ID() string {
	return w.Record.ID
}

// Dates returns the committed product dates.
func (w *Workspace) Dates() shelflife.ProductDates {
	return shelflife.ProductDates{
		Elaboration: dateFromColumn(w.Record.ElaborationDate),
		Expiration:  dateFromColumn(w.Record.ExpirationDate),
		Evaluation:  shelflife.FromTime(w.Record.EvaluationDate.UTC()),
	}
}

// HasProductDates reports whether the elaboration or the expiration date is set.
func (w *Workspace) HasProductDates() bool {
	return w.Record.ElaborationDate != nil || w.Record.ExpirationDate != nil
}

// Calculation returns the current result, or ok=false when data is insufficient.
func (w *Workspace) Calculation() (shelflife.Calculation, bool) {
	r := w.Record
	if !r.HasResult {
		return shelflife.Calculation{}, false
	}
	status := shelflife.Status(r.Status)
	return shelflife.Calculation{
		TotalShelfLife:      r.TotalShelfLife,
		RemainingDays:       r.RemainingDays,
		RemainingPercentage: r.RemainingPercentage,
		Status:              status,
		StatusMessage:       status.Message(),
	}, true
}

// Displayed returns the text shown in the input of field.
func (w *Workspace) Displayed(field string) (string, error) {
	text, err := w.textOf(field)
	if err != nil {
		return "", err
	}
	return *text, nil
}

func (w *Workspace) SetElaborationDate(d *shelflife.CalendarDate) {
	w.Record.ElaborationDate = dateToColumn(d)
	w.recompute()
}

func (w *Workspace) SetExpirationDate(d *shelflife.CalendarDate) {
	w.Record.ExpirationDate = dateToColumn(d)
	w.recompute()
}

// SetEvaluationDate replaces the evaluation date. It can never be cleared.
func (w *Workspace) SetEvaluationDate(d shelflife.CalendarDate) {
	w.Record.EvaluationDate = d.Time()
	w.recompute()
}

// ClearDates removes the elaboration and expiration dates and their text.
func (w *Workspace) ClearDates() {
	r := w.Record
	r.ElaborationDate = nil
	r.ExpirationDate = nil
	r.ElaborationText = ""
	r.ExpirationText = ""
	if r.PendingField == models.FieldElaboration || r.PendingField == models.FieldExpiration {
		w.clearPending()
	}
	w.recompute()
}

// Reset returns to the initial state: evaluation is today, the rest is empty.
func (w *Workspace) Reset(now time.Time) {
	r := w.Record
	today := shelflife.FromTime(now)
	r.ElaborationDate = nil
	r.ExpirationDate = nil
	r.EvaluationDate = today.Time()
	r.ElaborationText = ""
	r.ExpirationText = ""
	r.EvaluationText = shelflife.Format(today)
	w.clearPending()
	w.recompute()
}

// Keystroke masks the edited text of field and commits the parsed date.
// The returned cursor stays pending until ApplyCursor is called.
func (w *Workspace) Keystroke(field, raw string, cursor int) (shelflife.MaskResult, error) {
	text, err := w.textOf(field)
	if err != nil {
		return shelflife.MaskResult{}, err
	}
	if w.Record.HasPendingCursor() {
		return shelflife.MaskResult{}, fmt.Errorf("%s: %w", w.Record.PendingField, ErrCursorPending)
	}

	res := shelflife.MaskKeystroke(*text, raw, cursor)
	*text = res.Displayed
	w.Record.PendingField = field
	w.Record.PendingCursor = res.Cursor

	if !res.HasDate {
		if _, reason := shelflife.ParseReason(res.Displayed); reason != shelflife.ReasonNone {
			w.log.Debug("date not committed",
				zap.String("field", field),
				zap.String("text", res.Displayed),
				zap.String("reason", string(reason)))
		}
	}

	switch field {
	case models.FieldElaboration:
		w.SetElaborationDate(optionalDate(res))
	case models.FieldExpiration:
		w.SetExpirationDate(optionalDate(res))
	case models.FieldEvaluation:
		// An unparseable evaluation text keeps the previous evaluation date.
		if res.HasDate {
			w.SetEvaluationDate(res.Date)
		}
	}
	return res, nil
}

// ApplyCursor places the pending cursor of field into hostText and clears it.
func (w *Workspace) ApplyCursor(field, hostText string) (int, error) {
	if _, err := w.textOf(field); err != nil {
		return 0, err
	}
	if w.Record.PendingField != field {
		return 0, fmt.Errorf("%s: %w", field, ErrNoPendingCursor)
	}
	pos := shelflife.ApplyCursor(w.Record.PendingCursor, hostText)
	w.clearPending()
	return pos, nil
}

// Theme returns the stored UI theme.
func (w *Workspace) Theme(ctx context.Context, fallback string) (string, error) {
	return Theme(ctx, w.Preferences, fallback)
}

// ToggleTheme flips the UI theme.
func (w *Workspace) ToggleTheme(ctx context.Context, fallback string) (string, error) {
	return ToggleTheme(ctx, w.Preferences, fallback)
}

func (w *Workspace) recompute() {
	r := w.Record
	r.HasResult = false
	r.TotalShelfLife = 0
	r.RemainingDays = 0
	r.RemainingPercentage = 0
	r.Status = ""

	calc, ok := shelflife.Calculate(w.Dates())
	if !ok {
		return
	}
	r.HasResult = true
	r.TotalShelfLife = calc.TotalShelfLife
	r.RemainingDays = calc.RemainingDays
	r.RemainingPercentage = calc.RemainingPercentage
	r.Status = string(calc.Status)
}

func (w *Workspace) clearPending() {
	w.Record.PendingField = ""
	w.Record.PendingCursor = 0
}

func (w *Workspace) textOf(field string) (*string, error) {
	switch field {
	case models.FieldElaboration:
		return &w.Record.ElaborationText, nil
	case models.FieldExpiration:
		return &w.Record.ExpirationText, nil
	case models.FieldEvaluation:
		return &w.Record.EvaluationText, nil
	}
	return nil, fmt.Errorf("%q: %w", field, ErrUnknownField)
}

func optionalDate(res shelflife.MaskResult) *shelflife.CalendarDate {
	if !res.HasDate {
		return nil
	}
	d := res.Date
	return &d
}

func dateFromColumn(t *time.Time) *shelflife.CalendarDate {
	if t == nil {
		return nil
	}
	d := shelflife.FromTime(t.UTC())
	return &d
}

func dateToColumn(d *shelflife.CalendarDate) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time()
	return &t
}

// WorkspaceService persists workspaces and serialises operations on each one.
type WorkspaceService struct {
	DB       *gorm.DB
	Logger   *zap.Logger
	TTL      time.Duration
	Location *time.Location
	Now      func() time.Time

	locksMu sync.Mutex
	locks   map[string]*workspaceLock
}

// workspaceLock serialises operations on one workspace. refs counts holders
// and waiters; the entry is dropped only when it reaches zero.
type workspaceLock struct {
	mu   sync.Mutex
	refs int
}

func NewWorkspaceService(db *gorm.DB, cfg *config.Config, log *zap.Logger) *WorkspaceService {
	if log == nil {
		log = zap.NewNop()
	}
	return &WorkspaceService{
		DB:       db,
		Logger:   log,
		TTL:      cfg.WorkspaceTTL,
		Location: cfg.Location(),
		Now:      time.Now,
	}
}

func (s *WorkspaceService) now() time.Time {
	return s.Now().In(s.Location)
}

// LocalNow returns the current time in the configured time zone.
func (s *WorkspaceService) LocalNow() time.Time {
	return s.now()
}

// Create starts a new workspace whose evaluation date is today.
func (s *WorkspaceService) Create(ctx context.Context) (*Workspace, error) {
	now := s.now()
	record := &models.Workspace{ID: uuid.New().String(), LastSeenAt: now.UTC()}
	ws := s.wrap(record)
	ws.Reset(now)

	if err := s.DB.WithContext(ctx).Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	s.Logger.Debug("workspace created", zap.String("workspace_id", record.ID))
	return ws, nil
}

// Get loads a workspace without modifying it.
func (s *WorkspaceService) Get(ctx context.Context, id string) (*Workspace, error) {
	unlock := s.lock(id)
	defer unlock()
	return s.load(ctx, id)
}

// Update loads the workspace, runs fn and saves the result. Calls for the
// same workspace run one at a time. Nothing is saved when fn fails.
func (s *WorkspaceService) Update(ctx context.Context, id string, fn func(*Workspace) error) (*Workspace, error) {
	unlock := s.lock(id)
	defer unlock()

	ws, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(ws); err != nil {
		return ws, err
	}

	ws.Record.LastSeenAt = s.Now().UTC()
	if err := s.DB.WithContext(ctx).Save(ws.Record).Error; err != nil {
		return nil, fmt.Errorf("failed to save workspace: %w", err)
	}
	return ws, nil
}

// CleanupExpired deletes workspaces idle longer than the TTL together with
// their preferences and returns how many were removed.
func (s *WorkspaceService) CleanupExpired(ctx context.Context) (int64, error) {
	cutoff := s.Now().UTC().Add(-s.TTL)

	var ids []string
	if err := s.DB.WithContext(ctx).Model(&models.Workspace{}).
		Where("last_seen_at < ?", cutoff).
		Pluck("id", &ids).Error; err != nil {
		return 0, fmt.Errorf("failed to list expired workspaces: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("scope IN ?", ids).Delete(&models.Preference{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.Workspace{}).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired workspaces: %w", err)
	}

	return int64(len(ids)), nil
}

func (s *WorkspaceService) load(ctx context.Context, id string) (*Workspace, error) {
	var record models.Workspace
	err := s.DB.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWorkspaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}
	return s.wrap(&record), nil
}

func (s *WorkspaceService) wrap(record *models.Workspace) *Workspace {
	return NewWorkspace(record, NewGormPreferenceStore(s.DB, record.ID), s.Logger)
}

func (s *WorkspaceService) lock(id string) func() {
	s.locksMu.Lock()
	if s.locks == nil {
		s.locks = make(map[string]*workspaceLock)
	}
	l, ok := s.locks[id]
	if !ok {
		l = &workspaceLock{}
		s.locks[id] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.locksMu.Unlock()
	}
}
