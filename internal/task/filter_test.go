package task

import "testing"

func ids(tasks []Task) []int {
	out := make([]int, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilter(t *testing.T) {
	tasks := Fixtures()
	tests := []struct {
		name  string
		query Query
		want  []int
	}{
		{name: "default matches everything", query: DefaultQuery(), want: []int{1, 2, 3, 4, 5, 6, 7, 8}},
		{name: "dentist in title", query: Query{Search: "dentist", Status: StatusAll, Priority: PriorityAll}, want: []int{2}},
		{name: "search is case insensitive", query: Query{Search: "DENTIST", Status: StatusAll, Priority: PriorityAll}, want: []int{2}},
		{name: "search matches description", query: Query{Search: "slides", Status: StatusAll, Priority: PriorityAll}, want: []int{4}},
		{name: "completed only", query: Query{Status: StatusCompleted, Priority: PriorityAll}, want: []int{3, 7}},
		{name: "pending high", query: Query{Status: StatusPending, Priority: PriorityFilter(PriorityHigh)}, want: []int{1, 4, 6}},
		{name: "completed high is empty", query: Query{Status: StatusCompleted, Priority: PriorityFilter(PriorityHigh)}, want: []int{}},
		{name: "all three predicates", query: Query{Search: "the", Status: StatusPending, Priority: PriorityFilter(PriorityMedium)}, want: []int{2, 8}},
		{name: "zero value query matches everything", query: Query{}, want: []int{1, 2, 3, 4, 5, 6, 7, 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(tasks, tt.query))
			if !equalInts(got, tt.want) {
				t.Errorf("Filter = %v, want %v", got, tt.want)
			}
		})
	}
}

// Every result satisfies the query, every matching task appears exactly once,
// and the original order is kept.
func TestFilterIsOrderedExactSubsequence(t *testing.T) {
	tasks := Fixtures()
	var queries []Query
	for _, search := range []string{"", "the", "e", "zzz"} {
		for _, st := range []StatusFilter{StatusAll, StatusPending, StatusCompleted} {
			for _, pr := range []PriorityFilter{PriorityAll, PriorityFilter(PriorityLow), PriorityFilter(PriorityMedium), PriorityFilter(PriorityHigh)} {
				queries = append(queries, Query{Search: search, Status: st, Priority: pr})
			}
		}
	}
	for _, q := range queries {
		got := Filter(tasks, q)
		var want []int
		for _, task := range tasks {
			if q.Matches(task) {
				want = append(want, task.ID)
			}
		}
		if !equalInts(ids(got), want) {
			t.Errorf("query %+v: got %v, want %v", q, ids(got), want)
		}
	}
}

func TestFilterNextCycles(t *testing.T) {
	st := StatusAll
	for i := 0; i < 3; i++ {
		st = st.Next()
	}
	if st != StatusAll {
		t.Errorf("status filter cycle ended at %q", st)
	}
	pr := PriorityAll
	seen := []PriorityFilter{}
	for i := 0; i < 4; i++ {
		pr = pr.Next()
		seen = append(seen, pr)
	}
	if pr != PriorityAll {
		t.Errorf("priority filter cycle ended at %q (%v)", pr, seen)
	}
}
