// Package session is the state container behind the UI. It owns the task
// store, the editor draft, the list query, a pending deletion and the
// settings record. Every operation runs synchronously on the caller's
// goroutine.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"taskmaster/internal/logging"
	"taskmaster/internal/settings"
	"taskmaster/internal/storage"
	"taskmaster/internal/task"
)

var ErrNothingPending = errors.New("no deletion pending")

type Session struct {
	store    *storage.Store
	log      *logging.Logger
	now      func() time.Time
	settings settings.Settings
	query    task.Query
	editor   Editor
	pending  *task.Task
}

type Option func(*Session)

// WithClock replaces time.Now. Tests pin the date with it.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithLogger(l *logging.Logger) Option {
	return func(s *Session) { s.log = l }
}

func WithSettings(st settings.Settings) Option {
	return func(s *Session) { s.settings = st }
}

func New(store *storage.Store, opts ...Option) *Session {
	s := &Session{
		store:    store,
		log:      logging.Discard(),
		now:      time.Now,
		settings: settings.Default(),
		query:    task.DefaultQuery(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "session")
	s.editor.Reset(s.settings.Preferences.DefaultPriority)
	return s
}

// Today is the session clock's current time. Stats use its calendar date.
func (s *Session) Today() time.Time {
	return s.now()
}

func (s *Session) Tasks(ctx context.Context) ([]task.Task, error) {
	return s.store.Tasks(ctx)
}

// Visible is the task list narrowed by the current query.
func (s *Session) Visible(ctx context.Context) ([]task.Task, error) {
	tasks, err := s.store.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	return task.Filter(tasks, s.query), nil
}

func (s *Session) Stats(ctx context.Context) (task.Stats, error) {
	tasks, err := s.store.Tasks(ctx)
	if err != nil {
		return task.Stats{}, err
	}
	return task.Summarize(tasks, s.now()), nil
}

func (s *Session) Query() task.Query {
	return s.query
}

func (s *Session) SetSearch(v string) {
	s.query.Search = v
}

func (s *Session) CycleStatusFilter() task.StatusFilter {
	s.query.Status = s.query.Status.Next()
	return s.query.Status
}

func (s *Session) CyclePriorityFilter() task.PriorityFilter {
	s.query.Priority = s.query.Priority.Next()
	return s.query.Priority
}

func (s *Session) Editor() *Editor {
	return &s.editor
}

// StartCreate opens an empty draft using the preferred default priority.
func (s *Session) StartCreate() {
	s.editor.Reset(s.settings.Preferences.DefaultPriority)
	s.editor.open = true
}

// StartEdit loads task id into the editor.
func (s *Session) StartEdit(ctx context.Context, id int) error {
	t, err := s.store.Task(ctx, id)
	if err != nil {
		return err
	}
	s.editor.Load(t)
	return nil
}

// CancelEdit discards the draft without touching the store.
func (s *Session) CancelEdit() {
	s.editor.Reset(s.settings.Preferences.DefaultPriority)
}

// Submit validates the draft and commits it. A *task.ValidationError leaves
// the draft open and the store unchanged.
func (s *Session) Submit(ctx context.Context) (task.Task, error) {
	d := s.editor.Draft.Normalize()
	if err := d.Validate(); err != nil {
		s.log.Debug("task rejected", "error", err)
		return task.Task{}, err
	}

	var (
		t   task.Task
		err error
	)
	if id := s.editor.EditingID(); id != 0 {
		if err = s.store.UpdateTask(ctx, id, d); err != nil {
			return task.Task{}, fmt.Errorf("update task %d: %w", id, err)
		}
		if t, err = s.store.Task(ctx, id); err != nil {
			return task.Task{}, err
		}
		s.log.Info("task updated", "task_id", id)
	} else {
		t, err = s.store.AddTask(ctx, d, task.DateOf(s.now()))
		if err != nil {
			return task.Task{}, fmt.Errorf("add task: %w", err)
		}
		s.log.Info("task created", "task_id", t.ID, "category", t.Category)
	}
	s.editor.Reset(s.settings.Preferences.DefaultPriority)
	return t, nil
}

func (s *Session) Toggle(ctx context.Context, id int) error {
	if err := s.store.Toggle(ctx, id); err != nil {
		return fmt.Errorf("toggle task %d: %w", id, err)
	}
	return nil
}

// RequestDelete marks task id for deletion. Nothing is removed until
// ConfirmDelete. A new request replaces an older one.
func (s *Session) RequestDelete(ctx context.Context, id int) (task.Task, error) {
	t, err := s.store.Task(ctx, id)
	if err != nil {
		return task.Task{}, err
	}
	s.pending = &t
	return t, nil
}

// Pending returns the task awaiting confirmation, if any.
func (s *Session) Pending() (task.Task, bool) {
	if s.pending == nil {
		return task.Task{}, false
	}
	return *s.pending, true
}

func (s *Session) ConfirmDelete(ctx context.Context) (task.Task, error) {
	if s.pending == nil {
		return task.Task{}, ErrNothingPending
	}
	t := *s.pending
	s.pending = nil
	if err := s.store.DeleteTask(ctx, t.ID); err != nil {
		return task.Task{}, fmt.Errorf("delete task %d: %w", t.ID, err)
	}
	s.log.Info("task deleted", "task_id", t.ID)
	return t, nil
}

func (s *Session) CancelDelete() {
	s.pending = nil
}

func (s *Session) Settings() settings.Settings {
	return s.settings
}

// UpdateSettings patches the settings record in place.
func (s *Session) UpdateSettings(fn func(*settings.Settings)) {
	fn(&s.settings)
}

// ReplaceSettings swaps the whole record after validating it.
func (s *Session) ReplaceSettings(st settings.Settings) error {
	if err := st.Validate(); err != nil {
		return err
	}
	s.settings = st
	return nil
}

func (s *Session) ExportSettings(w io.Writer) error {
	if err := settings.Export(w, s.settings, s.now()); err != nil {
		return err
	}
	s.log.Info("settings exported")
	return nil
}

// ImportSettings replaces the settings from a document. On any error the
// current settings are kept.
func (s *Session) ImportSettings(r io.Reader) error {
	st, err := settings.Import(r)
	if err != nil {
		s.log.Warn("settings import failed", "error", err)
		return err
	}
	if err := s.ReplaceSettings(st); err != nil {
		return err
	}
	s.log.Info("settings imported")
	return nil
}
