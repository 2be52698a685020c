package task

import (
	"math"
	"time"
)

// UpcomingDays is how many days ahead a pending task counts as upcoming.
const UpcomingDays = 7

// Breakdown counts the tasks of one priority or one category.
type Breakdown struct {
	Name      string
	Total     int
	Completed int
	Rate      int
}

type Stats struct {
	Total          int
	Completed      int
	Pending        int
	CompletionRate int
	ByPriority     []Breakdown
	ByCategory     []Breakdown
	Overdue        int
	Upcoming       int
}

// Rate returns round(completed/total*100), or 0 when total is 0.
func Rate(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// Summarize aggregates tasks relative to the calendar date of today.
func Summarize(tasks []Task, today time.Time) Stats {
	now := DateOf(today)
	horizon := DateOf(today.AddDate(0, 0, UpcomingDays))

	var s Stats
	prio := map[Priority]*Breakdown{}
	for _, p := range Priorities {
		prio[p] = &Breakdown{Name: string(p)}
	}
	var categories []*Breakdown
	byName := map[string]*Breakdown{}

	for _, t := range tasks {
		s.Total++
		if t.Completed {
			s.Completed++
		}

		if b, ok := prio[t.Priority]; ok {
			b.Total++
			if t.Completed {
				b.Completed++
			}
		}

		c, ok := byName[t.Category]
		if !ok {
			c = &Breakdown{Name: t.Category}
			byName[t.Category] = c
			categories = append(categories, c)
		}
		c.Total++
		if t.Completed {
			c.Completed++
		}

		if t.Completed {
			continue
		}
		switch {
		case t.DueDate < now:
			s.Overdue++
		case t.DueDate <= horizon:
			s.Upcoming++
		}
	}

	s.Pending = s.Total - s.Completed
	s.CompletionRate = Rate(s.Completed, s.Total)

	s.ByPriority = make([]Breakdown, 0, len(Priorities))
	for _, p := range Priorities {
		b := prio[p]
		b.Rate = Rate(b.Completed, b.Total)
		s.ByPriority = append(s.ByPriority, *b)
	}
	s.ByCategory = make([]Breakdown, 0, len(categories))
	for _, c := range categories {
		c.Rate = Rate(c.Completed, c.Total)
		s.ByCategory = append(s.ByCategory, *c)
	}
	return s
}

// Priority returns the breakdown for p.
func (s Stats) Priority(p Priority) Breakdown {
	for _, b := range s.ByPriority {
		if b.Name == string(p) {
			return b
		}
	}
	return Breakdown{Name: string(p)}
}
