// Package counter implements the per-second counter state.
package counter

import (
	"fmt"

	"github.com/user/timerreel/pkg/pipeline"
)

// Controller holds the displayed counter value in seconds.
type Controller struct {
	fps       int
	direction pipeline.Direction
	value     int
}

// New creates a controller starting at start. Negative starts are clamped to zero.
func New(start int, direction pipeline.Direction, fps int) *Controller {
	if start < 0 {
		start = 0
	}
	return &Controller{fps: fps, direction: direction, value: start}
}

// Value returns the current counter value.
func (c *Controller) Value() int {
	return c.value
}

// AdvanceIfSecondBoundary steps the value when frameIndex is a positive
// multiple of fps and returns the value to display for that frame.
// Counting down floors at zero.
func (c *Controller) AdvanceIfSecondBoundary(frameIndex int) int {
	if frameIndex <= 0 || c.fps <= 0 || frameIndex%c.fps != 0 {
		return c.value
	}
	if c.direction == pipeline.DirectionUp {
		c.value++
	} else if c.value > 0 {
		c.value--
	}
	return c.value
}

// FormatHMS formats seconds as HH:MM:SS. Hours are not wrapped.
// Negative input is treated as zero.
func FormatHMS(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", sec/3600, (sec%3600)/60, sec%60)
}
