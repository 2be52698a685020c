// Package settings holds the user preference record and its JSON export
// document.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"taskmaster/internal/task"
)

// DocumentVersion tags every exported document.
const DocumentVersion = "1.0"

// ExportFileName is the file the UI writes exports to and reads imports from.
const ExportFileName = "taskmaster-settings.json"

const exportDateLayout = "2006-01-02T15:04:05.000Z07:00"

var ErrNoSettings = errors.New("document has no settings")

type Settings struct {
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Notifications Notifications `json:"notifications"`
	Preferences   Preferences   `json:"preferences"`
	Privacy       Privacy       `json:"privacy"`
}

type Notifications struct {
	TaskReminders      bool `json:"taskReminders"`
	DailyDigest        bool `json:"dailyDigest"`
	WeeklyReport       bool `json:"weeklyReport"`
	EmailNotifications bool `json:"emailNotifications"`
}

type Preferences struct {
	Theme           string        `json:"theme"`
	Language        string        `json:"language"`
	DateFormat      string        `json:"dateFormat"`
	DefaultPriority task.Priority `json:"defaultPriority"`
}

type Privacy struct {
	ProfileVisibility string `json:"profileVisibility"`
	DataSharing       bool   `json:"dataSharing"`
	Analytics         bool   `json:"analytics"`
}

var (
	Themes       = []string{"light", "dark", "system"}
	Languages    = []string{"fr", "en", "es"}
	DateFormats  = []string{"DD/MM/YYYY", "MM/DD/YYYY", "YYYY-MM-DD"}
	Visibilities = []string{"public", "private"}
)

func Default() Settings {
	return Settings{
		Name:  "Jean Dupont",
		Email: "jean.dupont@example.com",
		Notifications: Notifications{
			TaskReminders:      true,
			DailyDigest:        false,
			WeeklyReport:       true,
			EmailNotifications: true,
		},
		Preferences: Preferences{
			Theme:           "light",
			Language:        "fr",
			DateFormat:      "DD/MM/YYYY",
			DefaultPriority: task.PriorityMedium,
		},
		Privacy: Privacy{
			ProfileVisibility: "private",
			DataSharing:       false,
			Analytics:         true,
		},
	}
}

// InvalidError lists the enumerated fields holding unknown values.
type InvalidError struct {
	Fields map[string]string
}

func (e *InvalidError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, k := range names {
		parts = append(parts, fmt.Sprintf("%s=%q", k, e.Fields[k]))
	}
	return "invalid settings: " + strings.Join(parts, ", ")
}

// Validate checks the enumerated fields. Free text is not checked.
func (s Settings) Validate() error {
	bad := map[string]string{}
	check := func(name, v string, allowed []string) {
		for _, a := range allowed {
			if v == a {
				return
			}
		}
		bad[name] = v
	}
	check("preferences.theme", s.Preferences.Theme, Themes)
	check("preferences.language", s.Preferences.Language, Languages)
	check("preferences.dateFormat", s.Preferences.DateFormat, DateFormats)
	check("privacy.profileVisibility", s.Privacy.ProfileVisibility, Visibilities)
	if !s.Preferences.DefaultPriority.Valid() {
		bad["preferences.defaultPriority"] = string(s.Preferences.DefaultPriority)
	}
	if len(bad) == 0 {
		return nil
	}
	return &InvalidError{Fields: bad}
}

// Document is the export file layout. Readers only rely on Settings.
type Document struct {
	Settings   *Settings `json:"settings"`
	ExportDate string    `json:"exportDate"`
	Version    string    `json:"version"`
}

// Export writes s as an indented document stamped with now.
func Export(w io.Writer, s Settings, now time.Time) error {
	doc := Document{
		Settings:   &s,
		ExportDate: now.UTC().Format(exportDateLayout),
		Version:    DocumentVersion,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return nil
}

// Import reads a document and returns its settings. Fields absent from the
// embedded record take their zero value, as the record replaces the current
// one wholesale.
func Import(r io.Reader) (Settings, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Settings{}, fmt.Errorf("parse settings document: %w", err)
	}
	if doc.Settings == nil {
		return Settings{}, ErrNoSettings
	}
	if err := doc.Settings.Validate(); err != nil {
		return Settings{}, err
	}
	return *doc.Settings, nil
}

var dateLayouts = map[string]string{
	"DD/MM/YYYY": "02/01/2006",
	"MM/DD/YYYY": "01/02/2006",
	"YYYY-MM-DD": task.DateLayout,
}

// FormatDate renders a YYYY-MM-DD date in the preferred pattern. Values that
// do not parse are returned unchanged.
func (p Preferences) FormatDate(date string) string {
	layout, ok := dateLayouts[p.DateFormat]
	if !ok {
		return date
	}
	t, err := time.Parse(task.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(layout)
}
