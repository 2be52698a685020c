package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskmaster/internal/config"
	"taskmaster/internal/logging"
	"taskmaster/internal/report"
	"taskmaster/internal/session"
	"taskmaster/internal/settings"
	"taskmaster/internal/task"
)

type view int

const (
	viewDashboard view = iota
	viewTasks
	viewStats
	viewSettings
	viewCount
)

var viewNames = [...]string{
	viewDashboard: "Home",
	viewTasks:     "My Tasks",
	viewStats:     "Statistics",
	viewSettings:  "Settings",
}

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeForm
	modeConfirmDelete
	modeSettingEdit
	modeImportPath
)

// ackExpiredMsg clears the acknowledgment it was scheduled for.
type ackExpiredMsg struct {
	seq int
}

type Model struct {
	ctx  context.Context
	sess *session.Session
	cfg  config.Config
	log  *logging.Logger

	view   view
	mode   mode
	all    []task.Task
	tasks  []task.Task
	stats  task.Stats
	cursor int
	input  textinput.Model

	status    string
	statusErr bool
	ack       string
	ackSeq    int

	fields        []settings.Field
	settingCursor int
	width         int
}

func New(sess *session.Session, cfg config.Config, log *logging.Logger) Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		ctx:    context.Background(),
		sess:   sess,
		cfg:    cfg,
		log:    log.With("component", "ui"),
		view:   viewDashboard,
		mode:   modeBrowse,
		input:  ti,
		fields: settings.Fields(),
		status: "tab to switch views, 1-4 to jump, q to quit.",
	}
	m.refresh()
	return m
}

func Run(sess *session.Session, cfg config.Config, log *logging.Logger) error {
	program := tea.NewProgram(New(sess, cfg, log), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case ackExpiredMsg:
		if msg.seq == m.ackSeq {
			m.ack = ""
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(20, msg.Width-30)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch m.mode {
	case modeSearch:
		return m.updateSearchMode(key, msg)
	case modeForm:
		return m.updateFormMode(key, msg)
	case modeConfirmDelete:
		return m.updateDeleteConfirm(key)
	case modeSettingEdit:
		return m.updateSettingEdit(key, msg)
	case modeImportPath:
		return m.updateImportPath(key, msg)
	}

	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.NextView:
		m.switchView(view((int(m.view) + 1) % int(viewCount)))
		return m, nil
	case m.cfg.Keys.PrevView:
		m.switchView(view((int(m.view) + int(viewCount) - 1) % int(viewCount)))
		return m, nil
	case "1", "2", "3", "4":
		m.switchView(view(key[0] - '1'))
		return m, nil
	}

	switch m.view {
	case viewTasks:
		return m.updateTasksView(key)
	case viewStats:
		return m.updateStatsView(key)
	case viewSettings:
		return m.updateSettingsView(key)
	}
	return m, nil
}

func (m *Model) switchView(v view) {
	m.view = v
	m.cursor = 0
	m.refresh()
}

// refresh reloads everything derived from the store.
func (m *Model) refresh() {
	all, err := m.sess.Tasks(m.ctx)
	if err != nil {
		m.fail("reload failed", err)
		return
	}
	visible, err := m.sess.Visible(m.ctx)
	if err != nil {
		m.fail("reload failed", err)
		return
	}
	stats, err := m.sess.Stats(m.ctx)
	if err != nil {
		m.fail("reload failed", err)
		return
	}
	m.all = all
	m.tasks = visible
	m.stats = stats
	m.cursor = clampCursor(m.cursor, len(m.tasks))
}

func (m *Model) fail(what string, err error) {
	m.status = fmt.Sprintf("%s: %v", what, err)
	m.statusErr = true
	m.log.Error(what, "error", err)
}

func (m *Model) note(s string) {
	m.status = s
	m.statusErr = false
}

func (m Model) selected() (task.Task, bool) {
	if len(m.tasks) == 0 {
		return task.Task{}, false
	}
	return m.tasks[clampCursor(m.cursor, len(m.tasks))], true
}

func (m Model) updateTasksView(key string) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(m.tasks))
	case m.cfg.Keys.Up, "up":
		m.cursor = clampCursor(m.cursor-1, len(m.tasks))
	case m.cfg.Keys.Add:
		m.sess.StartCreate()
		return m.openForm("New task")
	case m.cfg.Keys.Edit:
		t, ok := m.selected()
		if !ok {
			m.note("No task to edit")
			return m, nil
		}
		if err := m.sess.StartEdit(m.ctx, t.ID); err != nil {
			m.fail("edit failed", err)
			return m, nil
		}
		return m.openForm(fmt.Sprintf("Editing task #%d", t.ID))
	case m.cfg.Keys.Toggle:
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := m.sess.Toggle(m.ctx, t.ID); err != nil {
			m.fail("toggle failed", err)
			return m, nil
		}
		m.refresh()
		m.note("Toggled task")
	case m.cfg.Keys.Delete:
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		if _, err := m.sess.RequestDelete(m.ctx, t.ID); err != nil {
			m.fail("delete failed", err)
			return m, nil
		}
		m.mode = modeConfirmDelete
		m.note(fmt.Sprintf("Delete \"%s\"? y/n", t.Title))
	case m.cfg.Keys.Search:
		m.mode = modeSearch
		m.input.Placeholder = "Search tasks..."
		m.input.SetValue(m.sess.Query().Search)
		m.input.CursorEnd()
		m.note("Type to filter, enter to keep, esc to clear")
		cmd := m.input.Focus()
		return m, cmd
	case m.cfg.Keys.StatusFilter:
		f := m.sess.CycleStatusFilter()
		m.cursor = 0
		m.refresh()
		m.note("Status: " + string(f))
	case m.cfg.Keys.PriorityFilter:
		f := m.sess.CyclePriorityFilter()
		m.cursor = 0
		m.refresh()
		m.note("Priority: " + string(f))
	}
	return m, nil
}

func (m Model) updateSearchMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.sess.SetSearch("")
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeBrowse
		m.refresh()
		m.note("Search cleared")
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.input.Blur()
		m.mode = modeBrowse
		m.note(fmt.Sprintf("%d task(s) match", len(m.tasks)))
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.sess.SetSearch(m.input.Value())
		m.cursor = 0
		m.refresh()
		return m, cmd
	}
}

func (m Model) openForm(status string) (tea.Model, tea.Cmd) {
	m.mode = modeForm
	m.loadFocusedField()
	m.note(status + ": tab to move, enter to save, esc to cancel")
	cmd := m.input.Focus()
	return m, cmd
}

func (m *Model) loadFocusedField() {
	e := m.sess.Editor()
	m.input.Placeholder = e.Focus().Label()
	m.input.SetValue(e.Value(e.Focus()))
	m.input.CursorEnd()
}

// storeFocusedField copies the text input into the draft. The priority field
// is cycled, not typed.
func (m *Model) storeFocusedField() {
	e := m.sess.Editor()
	if e.Focus() == session.FieldPriority {
		return
	}
	e.Set(e.Focus(), m.input.Value())
}

func (m Model) updateFormMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := m.sess.Editor()
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.sess.CancelEdit()
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeBrowse
		m.note("Cancelled")
		return m, nil
	case "tab", "down":
		m.storeFocusedField()
		e.Move(1)
		m.loadFocusedField()
		return m, nil
	case "shift+tab", "up":
		m.storeFocusedField()
		e.Move(-1)
		m.loadFocusedField()
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.storeFocusedField()
		editing := e.EditingID() != 0
		saved, err := m.sess.Submit(m.ctx)
		var verr *task.ValidationError
		if errors.As(err, &verr) {
			m.status = "Cannot save: " + describeValidation(verr)
			m.statusErr = true
			return m, nil
		}
		if err != nil {
			m.fail("save failed", err)
			return m, nil
		}
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeBrowse
		m.refresh()
		m.selectID(saved.ID)
		if editing {
			m.note("Task updated")
		} else {
			m.note("Task created")
		}
		return m, nil
	}

	if e.Focus() == session.FieldPriority {
		switch key {
		case " ", "left", "right", "h", "l":
			e.Draft.Priority = e.Draft.Priority.Next()
			m.loadFocusedField()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func describeValidation(verr *task.ValidationError) string {
	labels := map[string]string{"title": "title", "due_date": "due date", "category": "category", "priority": "priority"}
	var parts []string
	for _, f := range []string{"title", "category", "priority", "due_date"} {
		if reason, ok := verr.Fields[f]; ok {
			parts = append(parts, labels[f]+" "+reason)
		}
	}
	return strings.Join(parts, ", ")
}

func (m *Model) selectID(id int) {
	for i, t := range m.tasks {
		if t.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", "esc":
		m.sess.CancelDelete()
		m.mode = modeBrowse
		m.note("Delete cancelled")
	case "y", "Y":
		m.mode = modeBrowse
		t, err := m.sess.ConfirmDelete(m.ctx)
		if err != nil {
			m.fail("delete failed", err)
			return m, nil
		}
		m.refresh()
		m.note(fmt.Sprintf("Deleted \"%s\"", t.Title))
	}
	return m, nil
}

func (m Model) updateStatsView(key string) (tea.Model, tea.Cmd) {
	if key != m.cfg.Keys.Report {
		return m, nil
	}
	path := filepath.Join(m.cfg.ExportDir, report.FileName)
	if err := writeFile(path, func(f *os.File) error {
		return report.WritePDF(f, m.stats, m.sess.Today())
	}); err != nil {
		m.fail("report failed", err)
		return m, nil
	}
	m.log.Info("report written", "path", path)
	m.note("Report written to " + path)
	return m, nil
}

func (m Model) updateSettingsView(key string) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Down, "down":
		m.settingCursor = clampCursor(m.settingCursor+1, len(m.fields))
	case m.cfg.Keys.Up, "up":
		m.settingCursor = clampCursor(m.settingCursor-1, len(m.fields))
	case m.cfg.Keys.Toggle, m.cfg.Keys.Confirm, "enter":
		f := m.fields[m.settingCursor]
		if f.Kind == settings.KindText {
			m.mode = modeSettingEdit
			m.input.Placeholder = f.Label
			m.input.SetValue(f.Value(m.sess.Settings()))
			m.input.CursorEnd()
			m.note("Editing " + f.Label + ": enter to keep, esc to cancel")
			cmd := m.input.Focus()
			return m, cmd
		}
		m.sess.UpdateSettings(f.Advance)
		m.note(fmt.Sprintf("%s: %s", f.Label, f.Value(m.sess.Settings())))
	case m.cfg.Keys.Save:
		return m.acknowledge("Settings saved")
	case m.cfg.Keys.Export:
		path := m.exportPath()
		if err := writeFile(path, func(f *os.File) error {
			return m.sess.ExportSettings(f)
		}); err != nil {
			m.fail("export failed", err)
			return m, nil
		}
		m.note("Settings exported to " + path)
	case m.cfg.Keys.Import:
		m.mode = modeImportPath
		m.input.Placeholder = "Settings file"
		m.input.SetValue(m.exportPath())
		m.input.CursorEnd()
		m.note("Import from: enter to load, esc to cancel")
		cmd := m.input.Focus()
		return m, cmd
	}
	return m, nil
}

// acknowledge shows s until the configured delay passes. A newer
// acknowledgment outlives the ticks of older ones.
func (m Model) acknowledge(s string) (tea.Model, tea.Cmd) {
	m.ackSeq++
	m.ack = s
	seq := m.ackSeq
	return m, tea.Tick(m.cfg.AckDuration(), func(time.Time) tea.Msg {
		return ackExpiredMsg{seq: seq}
	})
}

func (m Model) updateSettingEdit(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.input.Blur()
		m.mode = modeBrowse
		m.note("Edit cancelled")
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		f := m.fields[m.settingCursor]
		v := strings.TrimSpace(m.input.Value())
		m.sess.UpdateSettings(func(s *settings.Settings) { f.Set(s, v) })
		m.input.Blur()
		m.mode = modeBrowse
		m.note(f.Label + " updated")
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateImportPath(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.input.Blur()
		m.mode = modeBrowse
		m.note("Import cancelled")
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		path := strings.TrimSpace(m.input.Value())
		m.input.Blur()
		m.mode = modeBrowse
		f, err := os.Open(path)
		if err != nil {
			m.fail("import failed", err)
			return m, nil
		}
		defer f.Close()
		if err := m.sess.ImportSettings(f); err != nil {
			m.status = "Import failed: " + err.Error()
			m.statusErr = true
			return m, nil
		}
		m.note("Settings imported from " + path)
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) exportPath() string {
	return filepath.Join(m.cfg.ExportDir, settings.ExportFileName)
}

func writeFile(path string, fill func(*os.File) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fill(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
