package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"taskmaster/internal/session"
	"taskmaster/internal/settings"
	"taskmaster/internal/task"
	"taskmaster/internal/ui/styles"
)

const recentCount = 4

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.view {
	case viewDashboard:
		b.WriteString(m.renderDashboard())
	case viewTasks:
		b.WriteString(m.renderTasks())
	case viewStats:
		b.WriteString(m.renderStats())
	case viewSettings:
		b.WriteString(m.renderSettings())
	}

	b.WriteString("\n\n")
	if m.statusErr {
		b.WriteString(styles.Error.Render(m.status))
	} else {
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	b.WriteString(styles.Help.Render(m.renderHelp()))
	return b.String()
}

func (m Model) renderHeader() string {
	tabs := make([]string, 0, int(viewCount))
	for v := viewDashboard; v < viewCount; v++ {
		label := fmt.Sprintf("%d %s", int(v)+1, viewNames[v])
		if v == m.view {
			tabs = append(tabs, styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, styles.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		styles.Title.Render("TaskMaster")+"  ",
		strings.Join(tabs, " "))
}

func statCard(value, label string, style lipgloss.Style) string {
	return styles.Card.Render(style.Bold(true).Render(value) + "\n" + styles.Muted.Render(label))
}

func (m Model) renderSummaryCards() string {
	s := m.stats
	return lipgloss.JoinHorizontal(lipgloss.Top,
		statCard(fmt.Sprint(s.Total), "Total tasks", styles.Selected),
		statCard(fmt.Sprint(s.Pending), "Pending", styles.Warning),
		statCard(fmt.Sprint(s.Completed), "Completed", styles.Success),
		statCard(fmt.Sprintf("%d%%", s.CompletionRate), "Completion rate", styles.Info),
	)
}

func (m Model) renderDashboard() string {
	var b strings.Builder
	b.WriteString(styles.Subtitle.Render("Organise your tasks, track your progress and reach your goals."))
	b.WriteString("\n\n")
	b.WriteString(m.renderSummaryCards())
	b.WriteString("\n\n")
	b.WriteString(styles.Title.Render("Recent tasks"))
	b.WriteString("\n")
	if len(m.all) == 0 {
		b.WriteString(styles.Muted.Render("No tasks yet. Press 2 then 'a' to add one."))
		return b.String()
	}
	prefs := m.sess.Settings().Preferences
	for i, t := range m.all {
		if i == recentCount {
			break
		}
		b.WriteString(m.renderTaskLine(t, false, prefs))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("2 all tasks • 3 statistics"))
	return b.String()
}

func (m Model) renderTaskLine(t task.Task, selected bool, prefs settings.Preferences) string {
	cursor := " "
	if selected {
		cursor = ">"
	}
	checkbox := "[ ]"
	title := t.Title
	if t.Completed {
		checkbox = "[x]"
		title = styles.Done.Render(title)
	} else if selected {
		title = styles.Selected.Render(title)
	}
	due := prefs.FormatDate(t.DueDate) + " (" + relativeDue(t.DueDate, m.sess.Today()) + ")"
	return fmt.Sprintf("%s %s %s  %s  %s  %s",
		cursor, checkbox, title,
		styles.Muted.Render(due),
		styles.Category.Render(t.Category),
		styles.Priority(t.Priority).Render(t.Priority.Label()))
}

// relativeDue describes a due date against today's calendar date.
func relativeDue(due string, now time.Time) string {
	d, err := time.ParseInLocation(task.DateLayout, due, now.Location())
	if err != nil {
		return due
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if d.Equal(today) {
		return "today"
	}
	return humanize.RelTime(d, today, "ago", "from now")
}

func (m Model) renderTasks() string {
	var b strings.Builder
	q := m.sess.Query()

	search := q.Search
	if m.mode == modeSearch {
		search = m.input.View()
	} else if search == "" {
		search = styles.Muted.Render("(none)")
	}
	b.WriteString(fmt.Sprintf("Search: %s   Status: %s   Priority: %s\n\n", search, q.Status, q.Priority))

	if m.mode == modeForm {
		b.WriteString(m.renderForm())
		b.WriteString("\n")
	}

	if len(m.tasks) == 0 {
		b.WriteString(styles.Card.Render(styles.Muted.Render("No tasks found")))
		return b.String()
	}
	prefs := m.sess.Settings().Preferences
	for i, t := range m.tasks {
		b.WriteString(m.renderTaskLine(t, i == m.cursor && m.mode != modeForm, prefs))
		b.WriteString("\n")
		if t.Description != "" {
			b.WriteString("      " + styles.Muted.Render(t.Description) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderForm() string {
	e := m.sess.Editor()
	heading := "New task"
	if e.EditingID() != 0 {
		heading = fmt.Sprintf("Edit task #%d", e.EditingID())
	}
	var b strings.Builder
	b.WriteString(styles.Title.Render(heading))
	b.WriteString("\n")
	for _, f := range session.EditorFields() {
		prefix := " "
		value := e.Value(f)
		if f == e.Focus() {
			prefix = ">"
			if f != session.FieldPriority {
				value = m.input.View()
			} else {
				value = styles.Priority(e.Draft.Priority).Render(e.Draft.Priority.Label()) + styles.Muted.Render("  (space to change)")
			}
		} else if strings.TrimSpace(value) == "" {
			value = styles.Muted.Render("(empty)")
		}
		b.WriteString(fmt.Sprintf("%s %-24s : %s\n", prefix, f.Label(), value))
	}
	return styles.Card.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderStats() string {
	s := m.stats
	var b strings.Builder
	b.WriteString(m.renderSummaryCards())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		statCard(fmt.Sprint(s.Overdue), "Overdue", styles.Error),
		statCard(fmt.Sprint(s.Upcoming), fmt.Sprintf("Upcoming (%d days)", task.UpcomingDays), styles.Info),
	))
	b.WriteString("\n\n")

	b.WriteString(styles.Title.Render("By priority"))
	b.WriteString("\n")
	for _, p := range s.ByPriority {
		prio := task.Priority(p.Name)
		b.WriteString(fmt.Sprintf("  %s %d/%d  %3d%% done\n",
			styles.Priority(prio).Render(fmt.Sprintf("%-8s", prio.Label())), p.Completed, p.Total, p.Rate))
	}
	b.WriteString("\n")

	b.WriteString(styles.Title.Render("By category"))
	b.WriteString("\n")
	if len(s.ByCategory) == 0 {
		b.WriteString(styles.Muted.Render("  No categories"))
	}
	for _, c := range s.ByCategory {
		b.WriteString(fmt.Sprintf("  %-12s %s %d/%d (%d%%)\n", c.Name, progressBar(c.Rate, 20), c.Completed, c.Total, c.Rate))
	}
	return strings.TrimRight(b.String(), "\n")
}

func progressBar(rate, width int) string {
	filled := rate * width / 100
	return styles.Selected.Render(strings.Repeat("█", filled)) + styles.Muted.Render(strings.Repeat("░", width-filled))
}

func (m Model) renderSettings() string {
	var b strings.Builder
	if m.ack != "" {
		b.WriteString(styles.Success.Render("✓ " + m.ack))
		b.WriteString("\n\n")
	}
	st := m.sess.Settings()
	section := ""
	for i, f := range m.fields {
		if f.Section != section {
			if section != "" {
				b.WriteString("\n")
			}
			section = f.Section
			b.WriteString(styles.Title.Render(section))
			b.WriteString("\n")
		}
		prefix := " "
		if i == m.settingCursor {
			prefix = ">"
		}
		value := f.Value(st)
		if i == m.settingCursor && m.mode == modeSettingEdit {
			value = m.input.View()
		} else if f.Kind == settings.KindBool {
			value = onOff(value == "true")
		}
		b.WriteString(fmt.Sprintf("%s %-20s %s\n", prefix, f.Label, value))
	}
	if m.mode == modeImportPath {
		b.WriteString("\nImport from: ")
		b.WriteString(m.input.View())
	}
	return strings.TrimRight(b.String(), "\n")
}

func onOff(b bool) string {
	if b {
		return styles.Success.Render("on")
	}
	return styles.Muted.Render("off")
}

func (m Model) renderHelp() string {
	k := m.cfg.Keys
	switch m.mode {
	case modeForm:
		return "tab/shift+tab move • enter save • " + k.Cancel + " cancel"
	case modeConfirmDelete:
		if t, ok := m.sess.Pending(); ok {
			return fmt.Sprintf("y delete %q • n cancel", t.Title)
		}
		return "y confirm • n cancel"
	case modeSearch, modeSettingEdit, modeImportPath:
		return "enter accept • " + k.Cancel + " cancel"
	}
	nav := fmt.Sprintf("%s/%s views • 1-4 jump • %s quit", k.NextView, k.PrevView, k.Quit)
	switch m.view {
	case viewTasks:
		return fmt.Sprintf("%s/%s move • %s add • %s edit • %s toggle • %s delete • %s search • %s status • %s priority • %s",
			k.Up, k.Down, k.Add, k.Edit, keyName(k.Toggle), k.Delete, k.Search, k.StatusFilter, k.PriorityFilter, nav)
	case viewStats:
		return fmt.Sprintf("%s pdf report • %s", k.Report, nav)
	case viewSettings:
		return fmt.Sprintf("%s/%s move • %s/%s change • %s save • %s export • %s import • %s",
			k.Up, k.Down, keyName(k.Toggle), k.Confirm, k.Save, k.Export, k.Import, nav)
	}
	return nav
}

func keyName(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
