package task

import (
	"testing"
	"time"
)

func day(v string) time.Time {
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSummarizeTwoTasks(t *testing.T) {
	tasks := []Task{
		{ID: 1, Priority: PriorityHigh, DueDate: "2024-01-15", Category: "Work"},
		{ID: 2, Completed: true, Priority: PriorityLow, DueDate: "2024-01-15", Category: "Home"},
	}
	s := Summarize(tasks, day("2024-01-10"))
	if s.Total != 2 || s.Completed != 1 || s.Pending != 1 || s.CompletionRate != 50 {
		t.Errorf("got total=%d completed=%d pending=%d rate=%d, want 2/1/1/50",
			s.Total, s.Completed, s.Pending, s.CompletionRate)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, day("2024-01-10"))
	if s.Total != 0 || s.CompletionRate != 0 {
		t.Errorf("empty summary = %+v", s)
	}
	if len(s.ByPriority) != len(Priorities) {
		t.Errorf("ByPriority has %d entries, want %d", len(s.ByPriority), len(Priorities))
	}
	for _, b := range s.ByPriority {
		if b.Rate != 0 {
			t.Errorf("priority %s rate = %d, want 0", b.Name, b.Rate)
		}
	}
	if len(s.ByCategory) != 0 {
		t.Errorf("ByCategory = %v, want empty", s.ByCategory)
	}
}

func TestSummarizeFixtures(t *testing.T) {
	s := Summarize(Fixtures(), day("2024-01-15"))

	if s.Total != 8 || s.Completed != 2 || s.Pending != 6 || s.CompletionRate != 25 {
		t.Errorf("counts = %d/%d/%d rate %d", s.Total, s.Completed, s.Pending, s.CompletionRate)
	}

	high := s.Priority(PriorityHigh)
	if high.Total != 3 || high.Completed != 0 {
		t.Errorf("high = %+v", high)
	}
	low := s.Priority(PriorityLow)
	if low.Total != 2 || low.Completed != 2 || low.Rate != 100 {
		t.Errorf("low = %+v", low)
	}

	wantCats := []string{"Work", "Personal", "Home", "Health", "Studies"}
	if len(s.ByCategory) != len(wantCats) {
		t.Fatalf("categories = %v", s.ByCategory)
	}
	for i, name := range wantCats {
		if s.ByCategory[i].Name != name {
			t.Errorf("category %d = %q, want %q", i, s.ByCategory[i].Name, name)
		}
	}
	home := s.ByCategory[2]
	if home.Total != 2 || home.Completed != 2 || home.Rate != 100 {
		t.Errorf("home = %+v", home)
	}

	// Pending tasks due 01-14 is overdue. Due 01-15 through 01-22 are upcoming.
	if s.Overdue != 1 {
		t.Errorf("overdue = %d, want 1", s.Overdue)
	}
	if s.Upcoming != 4 {
		t.Errorf("upcoming = %d, want 4", s.Upcoming)
	}
}

func TestSummarizeUpcomingBounds(t *testing.T) {
	today := day("2024-03-01")
	tasks := []Task{
		{ID: 1, Priority: PriorityLow, DueDate: "2024-02-29"},
		{ID: 2, Priority: PriorityLow, DueDate: "2024-03-01"},
		{ID: 3, Priority: PriorityLow, DueDate: "2024-03-08"},
		{ID: 4, Priority: PriorityLow, DueDate: "2024-03-09"},
		{ID: 5, Completed: true, Priority: PriorityLow, DueDate: "2024-02-01"},
		{ID: 6, Completed: true, Priority: PriorityLow, DueDate: "2024-03-02"},
	}
	s := Summarize(tasks, today)
	if s.Overdue != 1 {
		t.Errorf("overdue = %d, want 1", s.Overdue)
	}
	if s.Upcoming != 2 {
		t.Errorf("upcoming = %d, want 2", s.Upcoming)
	}
}

func TestRate(t *testing.T) {
	tests := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{3, 3, 100},
	}
	for _, tt := range tests {
		got := Rate(tt.completed, tt.total)
		if got != tt.want {
			t.Errorf("Rate(%d, %d) = %d, want %d", tt.completed, tt.total, got, tt.want)
		}
		if got < 0 || got > 100 {
			t.Errorf("Rate(%d, %d) = %d out of range", tt.completed, tt.total, got)
		}
	}
}
