package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "taskmaster" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "taskmaster")
	}
	for _, name := range []string{"config", "log-file", "log-level"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag --%s", name)
		}
	}
	if f := rootCmd.PersistentFlags().ShorthandLookup("c"); f == nil || f.Name != "config" {
		t.Error("-c is not the config shorthand")
	}
}

func TestStatsCommand(t *testing.T) {
	t.Cleanup(func() { statsToday = "" })

	out, err := executeCommand(rootCmd, "stats", "--today", "2024-01-15")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	for _, want := range []string{
		"STATISTICS (2024-01-15)",
		"Total:      8",
		"Completed:  2",
		"Rate:       25%",
		"Overdue:    1",
		"Upcoming:   4 (next 7 days)",
		"High     0/3 (0%)",
		"Low      2/2 (100%)",
		"Home         2/2 (100%)",
		"Studies      0/1 (0%)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStatsCommandBadDate(t *testing.T) {
	t.Cleanup(func() { statsToday = "" })

	if _, err := executeCommand(rootCmd, "stats", "--today", "15/01/2024"); err == nil {
		t.Fatal("expected an error for a malformed date")
	}
}
