package counter

import (
	"testing"

	"github.com/user/timerreel/pkg/pipeline"
)

func TestFormatHMS(t *testing.T) {
	tests := []struct {
		sec  int
		want string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{61, "00:01:01"},
		{3599, "00:59:59"},
		{3661, "01:01:01"},
		{360000, "100:00:00"},
		{-5, "00:00:00"},
	}
	for _, tt := range tests {
		if got := FormatHMS(tt.sec); got != tt.want {
			t.Errorf("FormatHMS(%d) = %q, want %q", tt.sec, got, tt.want)
		}
	}
}

// values collects the displayed value for every frame of a render.
func values(c *Controller, frames int) []int {
	out := make([]int, frames)
	for i := 0; i < frames; i++ {
		out[i] = c.AdvanceIfSecondBoundary(i)
	}
	return out
}

func TestController_CountDown(t *testing.T) {
	const fps = 30
	req := pipeline.RenderRequest{DurationSec: 3, StartValue: 3, Direction: pipeline.DirectionDown}
	got := values(New(req.StartValue, req.Direction, fps), req.FrameCount(fps))

	if len(got) != 91 {
		t.Fatalf("expected 91 frames, got %d", len(got))
	}
	for i, v := range got {
		want := 3 - i/fps
		if v != want {
			t.Fatalf("frame %d: expected %d, got %d", i, want, v)
		}
	}
	if got[len(got)-1] != 0 {
		t.Errorf("last frame should show 0, got %d", got[len(got)-1])
	}
}

func TestController_CountUp(t *testing.T) {
	const fps = 60
	c := New(0, pipeline.DirectionUp, fps)
	got := values(c, 5*fps+1)

	if got[0] != 0 || got[fps-1] != 0 {
		t.Errorf("first second should show 0, got %d and %d", got[0], got[fps-1])
	}
	if got[fps] != 1 {
		t.Errorf("frame %d should show 1, got %d", fps, got[fps])
	}
	if got[5*fps] != 5 {
		t.Errorf("last frame should show 5, got %d", got[5*fps])
	}
}

func TestController_FloorsAtZero(t *testing.T) {
	c := New(1, pipeline.DirectionDown, 1)
	got := values(c, 5)
	want := []int{1, 0, 0, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frame %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestController_FrameZeroNeverAdvances(t *testing.T) {
	c := New(10, pipeline.DirectionDown, 30)
	if v := c.AdvanceIfSecondBoundary(0); v != 10 {
		t.Errorf("frame 0 should keep the start value, got %d", v)
	}
}

func TestNew_ClampsNegativeStart(t *testing.T) {
	if v := New(-3, pipeline.DirectionUp, 30).Value(); v != 0 {
		t.Errorf("expected 0, got %d", v)
	}
}
