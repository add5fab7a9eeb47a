package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "zero reads nothing", maxLines: 0, expected: nil},
		{name: "negative reads nothing", maxLines: -1, expected: nil},
		{name: "read partial (5)", maxLines: 5, expected: expectedAll[5:]},
		{name: "read exactly all (10)", maxLines: 10, expected: expectedAll},
		{name: "read more than exists (20)", maxLines: 20, expected: expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got != nil {
		t.Fatalf("Read() = %v, want nil", got)
	}
}

func TestParse(t *testing.T) {
	line := `{"level":"warn","ts":"2026-03-01T09:15:04.000Z","caller":"app/poller.go:61","msg":"refresh failed","error":"open crew.db: denied","consecutive_failures":2}`
	e := Parse(line)

	if e.Level != "WARN" {
		t.Errorf("Level = %q, want WARN", e.Level)
	}
	if e.Message != "refresh failed" {
		t.Errorf("Message = %q", e.Message)
	}
	want := time.Date(2026, 3, 1, 9, 15, 4, 0, time.UTC)
	if !e.Time.Equal(want) {
		t.Errorf("Time = %v, want %v", e.Time, want)
	}
	wantFields := []Field{
		{Key: "consecutive_failures", Value: "2"},
		{Key: "error", Value: "open crew.db: denied"},
	}
	if !reflect.DeepEqual(e.Fields, wantFields) {
		t.Errorf("Fields = %v, want %v", e.Fields, wantFields)
	}
}

func TestParsePlainLine(t *testing.T) {
	tests := []string{"", "   ", "panic: boom", "{not json"}
	for _, line := range tests {
		e := Parse(line)
		if e.Level != "" || e.Message != line || len(e.Fields) != 0 {
			t.Errorf("Parse(%q) = %+v, want bare message", line, e)
		}
		if e.String() != line {
			t.Errorf("String() = %q, want %q", e.String(), line)
		}
	}
}

func TestEntryString(t *testing.T) {
	e := Entry{
		Time:    time.Date(2026, 3, 1, 9, 15, 4, 0, time.UTC),
		Level:   "INFO",
		Message: "starting",
		Fields:  []Field{{Key: "source", Value: "fixture"}},
	}
	want := "09:15:04 INFO  starting source=fixture"
	if got := e.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
