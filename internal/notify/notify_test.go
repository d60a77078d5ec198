package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNew(t *testing.T) {
	tc := []struct {
		name  string
		level Level
		want  time.Duration
	}{
		{name: "info uses default duration", level: LevelInfo, want: DefaultDuration},
		{name: "success uses default duration", level: LevelSuccess, want: DefaultDuration},
		{name: "error uses long duration", level: LevelError, want: ErrorDuration},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			n := New(tt.level, "msg")
			if n.Duration != tt.want {
				t.Errorf("New() duration = %v, want %v", n.Duration, tt.want)
			}
			if n.Message != "msg" {
				t.Errorf("New() message = %q", n.Message)
			}
		})
	}
}

func TestLog(t *testing.T) {
	var buf strings.Builder
	logger := log.New(&buf)
	sink := NewLog(logger)

	sink.Push(New(LevelError, "generation failed"))
	sink.Push(New(LevelInfo, "song ready"))

	out := buf.String()
	if !strings.Contains(out, "generation failed") {
		t.Errorf("expected error message in log output, got %q", out)
	}
	if !strings.Contains(out, "song ready") {
		t.Errorf("expected info message in log output, got %q", out)
	}
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}

	r.Push(New(LevelInfo, "one"))
	r.Push(New(LevelError, "two"))

	items := r.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(items))
	}
	if items[1].Level != LevelError {
		t.Errorf("unexpected level: %v", items[1].Level)
	}

	r.Reset()
	if len(r.Items()) != 0 {
		t.Error("expected empty buffer after reset")
	}
}
