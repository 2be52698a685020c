package session

import "taskmaster/internal/task"

// EditorField names the draft fields in form order.
type EditorField int

const (
	FieldTitle EditorField = iota
	FieldCategory
	FieldDescription
	FieldPriority
	FieldDueDate
	fieldCount
)

var fieldLabels = [...]string{
	FieldTitle:       "Title *",
	FieldCategory:    "Category *",
	FieldDescription: "Description",
	FieldPriority:    "Priority",
	FieldDueDate:     "Due date * (YYYY-MM-DD)",
}

func (f EditorField) Label() string {
	if f < 0 || f >= fieldCount {
		return ""
	}
	return fieldLabels[f]
}

// EditorFields lists every field in form order.
func EditorFields() []EditorField {
	out := make([]EditorField, 0, fieldCount)
	for f := FieldTitle; f < fieldCount; f++ {
		out = append(out, f)
	}
	return out
}

// Editor is the create/edit form. editingID is 0 while creating.
type Editor struct {
	Draft     task.Draft
	editingID int
	open      bool
	focus     EditorField
}

func (e *Editor) Reset(p task.Priority) {
	*e = Editor{Draft: task.NewDraft(p)}
}

func (e *Editor) Load(t task.Task) {
	*e = Editor{Draft: task.DraftOf(t), editingID: t.ID, open: true}
}

func (e *Editor) Open() bool {
	return e.open
}

func (e *Editor) EditingID() int {
	return e.editingID
}

func (e *Editor) Focus() EditorField {
	return e.focus
}

// Move shifts focus by delta, wrapping around the form.
func (e *Editor) Move(delta int) {
	n := int(fieldCount)
	e.focus = EditorField(((int(e.focus)+delta)%n + n) % n)
}

func (e *Editor) Value(f EditorField) string {
	switch f {
	case FieldTitle:
		return e.Draft.Title
	case FieldCategory:
		return e.Draft.Category
	case FieldDescription:
		return e.Draft.Description
	case FieldPriority:
		return string(e.Draft.Priority)
	case FieldDueDate:
		return e.Draft.DueDate
	default:
		return ""
	}
}

// Set stores v in field f. The priority field only accepts known priorities.
func (e *Editor) Set(f EditorField, v string) {
	switch f {
	case FieldTitle:
		e.Draft.Title = v
	case FieldCategory:
		e.Draft.Category = v
	case FieldDescription:
		e.Draft.Description = v
	case FieldPriority:
		if p, err := task.ParsePriority(v); err == nil {
			e.Draft.Priority = p
		}
	case FieldDueDate:
		e.Draft.DueDate = v
	}
}
