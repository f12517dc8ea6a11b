package progressbar

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestBar_WritesProgress(t *testing.T) {
	var buf bytes.Buffer
	bar := New(&buf, "Rendering")

	bar.Start(10)
	for i := 0; i < 10; i++ {
		bar.Advance()
	}
	bar.Finish()

	out := buf.String()
	if !strings.Contains(out, "Rendering") {
		t.Errorf("expected description in output, got %q", out)
	}
	if !strings.Contains(out, "/10") {
		t.Errorf("expected frame count in output, got %q", out)
	}
}

func TestBar_AdvanceBeforeStart(t *testing.T) {
	bar := New(&bytes.Buffer{}, "Rendering")
	bar.Advance()
	bar.Finish()
}

func TestForTerminal_NotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "progress")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, ok := ForTerminal(f, "Rendering").(Noop); !ok {
		t.Error("expected no-op progress for a regular file")
	}
}
