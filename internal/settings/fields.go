package settings

import (
	"strconv"

	"taskmaster/internal/task"
)

type Kind int

const (
	KindText Kind = iota
	KindBool
	KindChoice
)

// Field is one editable entry of the settings panel.
type Field struct {
	Section string
	Label   string
	Kind    Kind
	get     func(Settings) string
	set     func(*Settings, string)
	choices []string
}

func (f Field) Value(s Settings) string {
	return f.get(s)
}

// Set stores v. Bool fields parse it with strconv.ParseBool and choice fields
// ignore values outside their choices.
func (f Field) Set(s *Settings, v string) {
	switch f.Kind {
	case KindBool:
		if _, err := strconv.ParseBool(v); err != nil {
			return
		}
	case KindChoice:
		if !contains(f.choices, v) {
			return
		}
	}
	f.set(s, v)
}

// Advance flips a bool field or moves a choice field to its next value.
// Text fields are unchanged.
func (f Field) Advance(s *Settings) {
	switch f.Kind {
	case KindBool:
		b, _ := strconv.ParseBool(f.get(*s))
		f.set(s, strconv.FormatBool(!b))
	case KindChoice:
		cur := f.get(*s)
		next := f.choices[0]
		for i, c := range f.choices {
			if c == cur {
				next = f.choices[(i+1)%len(f.choices)]
				break
			}
		}
		f.set(s, next)
	}
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func boolField(section, label string, ptr func(*Settings) *bool) Field {
	return Field{
		Section: section,
		Label:   label,
		Kind:    KindBool,
		get:     func(s Settings) string { return strconv.FormatBool(*ptr(&s)) },
		set: func(s *Settings, v string) {
			b, _ := strconv.ParseBool(v)
			*ptr(s) = b
		},
	}
}

func textField(section, label string, ptr func(*Settings) *string) Field {
	return Field{
		Section: section,
		Label:   label,
		Kind:    KindText,
		get:     func(s Settings) string { return *ptr(&s) },
		set:     func(s *Settings, v string) { *ptr(s) = v },
	}
}

func choiceField(section, label string, choices []string, ptr func(*Settings) *string) Field {
	f := textField(section, label, ptr)
	f.Kind = KindChoice
	f.choices = choices
	return f
}

// Fields lists the panel entries grouped by section.
func Fields() []Field {
	priorities := make([]string, 0, len(task.Priorities))
	for _, p := range []task.Priority{task.PriorityLow, task.PriorityMedium, task.PriorityHigh} {
		priorities = append(priorities, string(p))
	}
	return []Field{
		textField("Profile", "Full name", func(s *Settings) *string { return &s.Name }),
		textField("Profile", "Email", func(s *Settings) *string { return &s.Email }),

		boolField("Notifications", "Task reminders", func(s *Settings) *bool { return &s.Notifications.TaskReminders }),
		boolField("Notifications", "Daily digest", func(s *Settings) *bool { return &s.Notifications.DailyDigest }),
		boolField("Notifications", "Weekly report", func(s *Settings) *bool { return &s.Notifications.WeeklyReport }),
		boolField("Notifications", "Email notifications", func(s *Settings) *bool { return &s.Notifications.EmailNotifications }),

		choiceField("Preferences", "Theme", Themes, func(s *Settings) *string { return &s.Preferences.Theme }),
		choiceField("Preferences", "Language", Languages, func(s *Settings) *string { return &s.Preferences.Language }),
		choiceField("Preferences", "Date format", DateFormats, func(s *Settings) *string { return &s.Preferences.DateFormat }),
		{
			Section: "Preferences",
			Label:   "Default priority",
			Kind:    KindChoice,
			choices: priorities,
			get:     func(s Settings) string { return string(s.Preferences.DefaultPriority) },
			set:     func(s *Settings, v string) { s.Preferences.DefaultPriority = task.Priority(v) },
		},

		choiceField("Privacy", "Profile visibility", Visibilities, func(s *Settings) *string { return &s.Privacy.ProfileVisibility }),
		boolField("Privacy", "Data sharing", func(s *Settings) *bool { return &s.Privacy.DataSharing }),
		boolField("Privacy", "Analytics", func(s *Settings) *bool { return &s.Privacy.Analytics }),
	}
}
