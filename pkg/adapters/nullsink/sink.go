// Package nullsink provides the debug sink used when --debug is off.
package nullsink

import (
	"image"

	"github.com/user/timerreel/pkg/ports"
)

// Sink discards render.json and sampled frames. Enabled reports false,
// so the encode stage skips snapshotting frames altogether.
type Sink struct{}

// New creates a discarding sink.
func New() *Sink {
	return &Sink{}
}

func (s *Sink) Enabled() bool                              { return false }
func (s *Sink) SaveRenderJSON(data []byte) error           { return nil }
func (s *Sink) SaveFrame(index int, img image.Image) error { return nil }

var _ ports.DebugSink = (*Sink)(nil)
