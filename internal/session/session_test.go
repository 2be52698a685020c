package session

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"taskmaster/internal/logging"
	"taskmaster/internal/settings"
	"taskmaster/internal/storage"
	"taskmaster/internal/task"
)

var fixedNow = time.Date(2024, 1, 15, 9, 0, 0, 0, time.Local)

func newSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	store, err := storage.Open(storage.MemoryDSN)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if err := store.Seed(context.Background(), task.Fixtures()); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return New(store, opts...)
}

func mustTasks(t *testing.T, s *Session) []task.Task {
	t.Helper()
	tasks, err := s.Tasks(context.Background())
	if err != nil {
		t.Fatalf("Tasks: %v", err)
	}
	return tasks
}

func TestSubmitCreate(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	before := mustTasks(t, s)

	s.StartCreate()
	e := s.Editor()
	if !e.Open() || e.EditingID() != 0 {
		t.Fatalf("editor not open for create: %+v", e)
	}
	e.Set(FieldTitle, "  Water the plants ")
	e.Set(FieldCategory, "Home")
	e.Set(FieldDueDate, "2024-01-18")

	created, err := s.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	after := mustTasks(t, s)
	if len(after) != len(before)+1 {
		t.Fatalf("total went from %d to %d", len(before), len(after))
	}
	for _, b := range before {
		if created.ID <= b.ID {
			t.Errorf("new id %d not greater than %d", created.ID, b.ID)
		}
	}
	want := task.Task{ID: 9, Title: "Water the plants", Priority: task.PriorityMedium, DueDate: "2024-01-18", Category: "Home", CreatedAt: "2024-01-15"}
	if created != want {
		t.Errorf("created %+v, want %+v", created, want)
	}
	if s.Editor().Open() || s.Editor().Draft.Title != "" {
		t.Errorf("editor not reset: %+v", s.Editor())
	}
}

func TestSubmitInvalidKeepsDraft(t *testing.T) {
	s := newSession(t)
	before := mustTasks(t, s)

	s.StartCreate()
	s.Editor().Set(FieldTitle, "Only a title")
	_, err := s.Submit(context.Background())

	var verr *task.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Submit = %v, want *task.ValidationError", err)
	}
	if _, ok := verr.Fields["category"]; !ok {
		t.Errorf("category not reported: %v", verr.Fields)
	}
	if _, ok := verr.Fields["due_date"]; !ok {
		t.Errorf("due_date not reported: %v", verr.Fields)
	}
	if len(mustTasks(t, s)) != len(before) {
		t.Error("invalid submit changed the store")
	}
	if !s.Editor().Open() || s.Editor().Draft.Title != "Only a title" {
		t.Errorf("draft lost: %+v", s.Editor())
	}
}

func TestSubmitEditKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)

	if err := s.StartEdit(ctx, 7); err != nil {
		t.Fatalf("StartEdit: %v", err)
	}
	e := s.Editor()
	if e.EditingID() != 7 || e.Draft.Title != "Clean the car" {
		t.Fatalf("editor = %+v", e)
	}
	e.Set(FieldTitle, "Clean the bike")
	e.Set(FieldPriority, "high")

	updated, err := s.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if updated.ID != 7 || !updated.Completed || updated.CreatedAt != "2024-01-10" {
		t.Errorf("identity fields changed: %+v", updated)
	}
	if updated.Title != "Clean the bike" || updated.Priority != task.PriorityHigh {
		t.Errorf("edit not applied: %+v", updated)
	}
	if got := len(mustTasks(t, s)); got != 8 {
		t.Errorf("edit changed task count to %d", got)
	}
}

func TestStartEditMissing(t *testing.T) {
	s := newSession(t)
	if err := s.StartEdit(context.Background(), 42); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("StartEdit(42) = %v, want ErrNotFound", err)
	}
}

func TestCancelEditDiscardsDraft(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	if err := s.StartEdit(ctx, 1); err != nil {
		t.Fatal(err)
	}
	s.Editor().Set(FieldTitle, "changed")
	s.CancelEdit()

	got, _ := s.Tasks(ctx)
	if got[0].Title != task.Fixtures()[0].Title {
		t.Errorf("cancel wrote the draft: %q", got[0].Title)
	}
	if s.Editor().Open() || s.Editor().EditingID() != 0 {
		t.Errorf("editor still open: %+v", s.Editor())
	}
}

func TestDefaultPriorityFollowsSettings(t *testing.T) {
	st := settings.Default()
	st.Preferences.DefaultPriority = task.PriorityLow
	s := newSession(t, WithSettings(st))
	s.StartCreate()
	if got := s.Editor().Draft.Priority; got != task.PriorityLow {
		t.Errorf("draft priority = %q, want low", got)
	}
}

func TestTwoPhaseDelete(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)

	if _, err := s.ConfirmDelete(ctx); !errors.Is(err, ErrNothingPending) {
		t.Errorf("ConfirmDelete with nothing pending = %v", err)
	}

	target, err := s.RequestDelete(ctx, 2)
	if err != nil {
		t.Fatalf("RequestDelete: %v", err)
	}
	if target.ID != 2 {
		t.Errorf("target = %+v", target)
	}
	if len(mustTasks(t, s)) != 8 {
		t.Fatal("request alone removed a task")
	}

	s.CancelDelete()
	if _, ok := s.Pending(); ok {
		t.Error("pending not cleared by cancel")
	}
	if len(mustTasks(t, s)) != 8 {
		t.Fatal("cancel removed a task")
	}

	if _, err := s.RequestDelete(ctx, 2); err != nil {
		t.Fatal(err)
	}
	deleted, err := s.ConfirmDelete(ctx)
	if err != nil {
		t.Fatalf("ConfirmDelete: %v", err)
	}
	if deleted.ID != 2 {
		t.Errorf("deleted %+v", deleted)
	}
	for _, tk := range mustTasks(t, s) {
		if tk.ID == 2 {
			t.Error("task 2 still present")
		}
	}
	if _, ok := s.Pending(); ok {
		t.Error("pending not cleared after confirm")
	}
}

func TestVisibleAppliesQuery(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)

	s.SetSearch("dentist")
	got, err := s.Visible(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("Visible = %+v", got)
	}

	s.SetSearch("")
	if st := s.CycleStatusFilter(); st != task.StatusPending {
		t.Errorf("status = %q", st)
	}
	if pr := s.CyclePriorityFilter(); pr != task.PriorityFilter(task.PriorityHigh) {
		t.Errorf("priority = %q", pr)
	}
	got, _ = s.Visible(ctx)
	if len(got) != 3 {
		t.Errorf("pending high = %d tasks, want 3", len(got))
	}
}

func TestToggleTwice(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	for i := 0; i < 2; i++ {
		if err := s.Toggle(ctx, 5); err != nil {
			t.Fatal(err)
		}
	}
	if mustTasks(t, s)[4].Completed {
		t.Error("double toggle did not restore")
	}
}

func TestStatsUsesClock(t *testing.T) {
	s := newSession(t)
	st, err := s.Stats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if st.Total != 8 || st.Overdue != 1 || st.Upcoming != 4 {
		t.Errorf("stats = %+v", st)
	}
}

func TestSettingsExportImport(t *testing.T) {
	s := newSession(t)
	s.UpdateSettings(func(st *settings.Settings) { st.Name = "Grace" })

	var buf bytes.Buffer
	if err := s.ExportSettings(&buf); err != nil {
		t.Fatalf("ExportSettings: %v", err)
	}
	exported := s.Settings()

	s.UpdateSettings(func(st *settings.Settings) { st.Name = "Someone else" })
	if err := s.ImportSettings(&buf); err != nil {
		t.Fatalf("ImportSettings: %v", err)
	}
	if s.Settings() != exported {
		t.Errorf("settings = %+v, want %+v", s.Settings(), exported)
	}
}

func TestImportFailureKeepsSettings(t *testing.T) {
	s := newSession(t)
	var exported bytes.Buffer
	if err := s.ExportSettings(&exported); err != nil {
		t.Fatal(err)
	}
	s.UpdateSettings(func(st *settings.Settings) { st.Name = "Changed" })
	before := s.Settings()

	for _, doc := range []string{"not json", `{"version": "1.0"}`, exported.String() + "}} not json at all"} {
		if err := s.ImportSettings(strings.NewReader(doc)); err == nil {
			t.Errorf("import of %q succeeded", doc)
		}
		if s.Settings() != before {
			t.Errorf("settings changed after failed import of %q", doc)
		}
	}
}

func TestReplaceSettingsValidates(t *testing.T) {
	s := newSession(t)
	bad := settings.Default()
	bad.Preferences.Theme = "neon"
	if err := s.ReplaceSettings(bad); err == nil {
		t.Error("ReplaceSettings accepted an unknown theme")
	}
	good := settings.Default()
	good.Email = "x@y"
	if err := s.ReplaceSettings(good); err != nil {
		t.Fatal(err)
	}
	if s.Settings().Email != "x@y" {
		t.Error("settings not replaced")
	}
}

func TestEditorMoveWraps(t *testing.T) {
	var e Editor
	e.Move(-1)
	if e.Focus() != FieldDueDate {
		t.Errorf("focus = %d, want due date", e.Focus())
	}
	e.Move(1)
	if e.Focus() != FieldTitle {
		t.Errorf("focus = %d, want title", e.Focus())
	}
	e.Set(FieldPriority, "nope")
	if e.Draft.Priority != "" {
		t.Errorf("invalid priority stored: %q", e.Draft.Priority)
	}
}

func TestLogsCarryComponent(t *testing.T) {
	var buf bytes.Buffer
	s := newSession(t, WithLogger(logging.NewWriter(&buf, logging.LevelInfo, nil)))
	if err := s.Toggle(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if _, err := s.RequestDelete(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ConfirmDelete(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"component":"session"`) {
		t.Errorf("log lacks component attribute: %s", buf.String())
	}
}
