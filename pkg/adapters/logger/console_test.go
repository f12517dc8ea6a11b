package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/user/timerreel/pkg/ports"
)

func TestConsoleLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleWriter(&buf, ports.LevelWarn, false)

	l.Debug("debug line")
	l.Info("info line")
	l.Warn("warn line %d", 1)
	l.Error("error line %d", 2)

	out := buf.String()
	if strings.Contains(out, "debug line") || strings.Contains(out, "info line") {
		t.Errorf("lines below warn should be dropped:\n%s", out)
	}
	if !strings.Contains(out, "warn line 1") || !strings.Contains(out, "error line 2") {
		t.Errorf("missing warn/error lines:\n%s", out)
	}
}

func TestConsoleLogger_Quiet(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleWriter(&buf, ports.LevelQuiet, false)
	l.Error("should not appear")
	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote %q", buf.String())
	}
}

func TestConsoleLogger_Component(t *testing.T) {
	var buf bytes.Buffer
	root := NewConsoleWriter(&buf, ports.LevelInfo, false)
	root.WithComponent("encode").Info("frame %d queued", 7)
	root.Info("plain line")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", lines)
	}
	if lines[0] != "[encode] frame 7 queued" {
		t.Errorf("component line = %q", lines[0])
	}
	if lines[1] != "plain line" {
		t.Errorf("root line = %q", lines[1])
	}
}

func TestConsoleLogger_DebugElapsed(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleWriter(&buf, ports.LevelDebug, false)
	l.now = func() time.Time { return l.start.Add(1500 * time.Millisecond) }

	l.Debug("tick")
	if got := strings.TrimSpace(buf.String()); got != "1.500s tick" {
		t.Errorf("debug line = %q", got)
	}
}

func TestConsoleLogger_Color(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleWriter(&buf, ports.LevelInfo, true)
	l.WithComponent("mp4").Warn("late sample")

	out := buf.String()
	if !strings.HasPrefix(out, colorYellow) || !strings.Contains(out, colorCyan+"[mp4]") {
		t.Errorf("expected colored output, got %q", out)
	}
}

func TestNoopLogger(t *testing.T) {
	l := NewNoop()
	if l.WithComponent("x") != ports.Logger(l) {
		t.Error("WithComponent should return the same logger")
	}
	l.Error("ignored %d", 1)
}
