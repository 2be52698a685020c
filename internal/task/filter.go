package task

import "strings"

type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPending   StatusFilter = "pending"
	StatusCompleted StatusFilter = "completed"
)

// Next cycles all -> pending -> completed -> all.
func (f StatusFilter) Next() StatusFilter {
	switch f {
	case StatusAll:
		return StatusPending
	case StatusPending:
		return StatusCompleted
	default:
		return StatusAll
	}
}

func (f StatusFilter) matches(t Task) bool {
	switch f {
	case StatusPending:
		return !t.Completed
	case StatusCompleted:
		return t.Completed
	default:
		return true
	}
}

// PriorityFilter is either a Priority or PriorityAll.
type PriorityFilter string

const PriorityAll PriorityFilter = "all"

// Next cycles all -> high -> medium -> low -> all.
func (f PriorityFilter) Next() PriorityFilter {
	switch Priority(f) {
	case PriorityHigh:
		return PriorityFilter(PriorityMedium)
	case PriorityMedium:
		return PriorityFilter(PriorityLow)
	case PriorityLow:
		return PriorityAll
	default:
		return PriorityFilter(PriorityHigh)
	}
}

func (f PriorityFilter) matches(t Task) bool {
	if f == PriorityAll || f == "" {
		return true
	}
	return t.Priority == Priority(f)
}

type Query struct {
	Search   string
	Status   StatusFilter
	Priority PriorityFilter
}

// DefaultQuery matches every task.
func DefaultQuery() Query {
	return Query{Status: StatusAll, Priority: PriorityAll}
}

// Matches reports whether t satisfies all three predicates of q.
func (q Query) Matches(t Task) bool {
	if !q.Status.matches(t) || !q.Priority.matches(t) {
		return false
	}
	if q.Search == "" {
		return true
	}
	needle := strings.ToLower(q.Search)
	return strings.Contains(strings.ToLower(t.Title), needle) ||
		strings.Contains(strings.ToLower(t.Description), needle)
}

// Filter returns the tasks matching q in their original order.
func Filter(tasks []Task, q Query) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if q.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
