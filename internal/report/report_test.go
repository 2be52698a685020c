package report

import (
	"bytes"
	"testing"
	"time"

	"taskmaster/internal/task"
)

func TestWritePDF(t *testing.T) {
	today := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	tests := map[string][]task.Task{
		"fixtures": task.Fixtures(),
		"empty":    nil,
	}
	for name, tasks := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WritePDF(&buf, task.Summarize(tasks, today), today); err != nil {
				t.Fatalf("WritePDF: %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
				t.Errorf("output does not start with a PDF header: %q", buf.Bytes()[:min(8, buf.Len())])
			}
			if !bytes.Contains(buf.Bytes(), []byte("%%EOF")) {
				t.Error("output has no EOF marker")
			}
		})
	}
}
