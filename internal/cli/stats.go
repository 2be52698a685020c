package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"taskmaster/internal/session"
	"taskmaster/internal/task"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print statistics for the starter tasks",
	Long: `Print the completion, alert and breakdown statistics of the tasks a fresh
session starts with, then exit.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var statsToday string

func init() {
	statsCmd.Flags().StringVar(&statsToday, "today", "", "reference date as YYYY-MM-DD (default is the current date)")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	now := time.Now()
	if statsToday != "" {
		d, err := time.ParseInLocation(task.DateLayout, statsToday, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --today %q: %w", statsToday, err)
		}
		now = d
	}

	sess, store, err := openSession(cmd.Context(), true, session.WithClock(func() time.Time { return now }))
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := sess.Stats(cmd.Context())
	if err != nil {
		return err
	}
	printStats(cmd.OutOrStdout(), stats, now)
	return nil
}

func printStats(w io.Writer, s task.Stats, today time.Time) {
	rule := strings.Repeat("─", 40)

	fmt.Fprintf(w, "STATISTICS (%s)\n", today.Format(task.DateLayout))
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total:      %d\n", s.Total)
	fmt.Fprintf(w, "Completed:  %d\n", s.Completed)
	fmt.Fprintf(w, "Pending:    %d\n", s.Pending)
	fmt.Fprintf(w, "Rate:       %d%%\n", s.CompletionRate)
	fmt.Fprintf(w, "Overdue:    %d\n", s.Overdue)
	fmt.Fprintf(w, "Upcoming:   %d (next %d days)\n", s.Upcoming, task.UpcomingDays)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "BY PRIORITY")
	fmt.Fprintln(w, rule)
	for _, p := range s.ByPriority {
		fmt.Fprintf(w, "%-8s %d/%d (%d%%)\n", task.Priority(p.Name).Label(), p.Completed, p.Total, p.Rate)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "BY CATEGORY")
	fmt.Fprintln(w, rule)
	if len(s.ByCategory) == 0 {
		fmt.Fprintln(w, "No categories")
	}
	for _, c := range s.ByCategory {
		fmt.Fprintf(w, "%-12s %d/%d (%d%%)\n", c.Name, c.Completed, c.Total, c.Rate)
	}
}
