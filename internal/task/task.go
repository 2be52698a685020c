// Package task holds the task record and the pure functions computed over a
// task sequence: validation, filtering and aggregation.
package task

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateLayout is the calendar-date layout used for due dates and creation
// dates. Zero padding and fixed width make lexicographic order chronological.
const DateLayout = "2006-01-02"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the priorities from most to least urgent.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func ParsePriority(v string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(v))); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	default:
		return "", fmt.Errorf("unknown priority %q", v)
	}
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Label is the display name of the priority.
func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return string(p)
	}
}

// Next cycles low -> medium -> high -> low.
func (p Priority) Next() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityLow
	}
}

type Task struct {
	ID          int
	Title       string
	Description string
	Completed   bool
	Priority    Priority
	DueDate     string
	Category    string
	CreatedAt   string
}

// Draft is the editable part of a task.
type Draft struct {
	Title       string
	Description string
	Priority    Priority
	DueDate     string
	Category    string
}

func NewDraft(p Priority) Draft {
	if !p.Valid() {
		p = PriorityMedium
	}
	return Draft{Priority: p}
}

// DraftOf returns the editable fields of t.
func DraftOf(t Task) Draft {
	return Draft{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		Category:    t.Category,
	}
}

// Normalize trims surrounding whitespace from every text field.
func (d Draft) Normalize() Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.DueDate = strings.TrimSpace(d.DueDate)
	d.Category = strings.TrimSpace(d.Category)
	return d
}

// Validate reports every missing or malformed field of d.
func (d Draft) Validate() error {
	d = d.Normalize()
	verr := &ValidationError{}
	if d.Title == "" {
		verr.Add("title", "required")
	}
	if d.DueDate == "" {
		verr.Add("due_date", "required")
	} else if !ValidDate(d.DueDate) {
		verr.Add("due_date", "must be YYYY-MM-DD")
	}
	if d.Category == "" {
		verr.Add("category", "required")
	}
	if !d.Priority.Valid() {
		verr.Add("priority", "must be low, medium or high")
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

// ValidationError maps a field name to the reason it was rejected.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Add(field, reason string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = reason
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+e.Fields[name])
	}
	return "invalid task: " + strings.Join(parts, ", ")
}

func ValidDate(v string) bool {
	_, err := time.Parse(DateLayout, v)
	return err == nil
}

// DateOf formats t as a calendar date in t's own location.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}
