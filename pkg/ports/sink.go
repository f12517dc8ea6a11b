package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving sampled frames and the resolved render settings.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveRenderJSON saves the resolved render configuration as JSON.
	SaveRenderJSON(data []byte) error

	// SaveFrame saves a composited frame.
	SaveFrame(index int, img image.Image) error
}

// Progress receives per-frame render progress.
type Progress interface {
	// Start announces the total number of frames.
	Start(total int)

	// Advance reports that one more frame was submitted.
	Advance()

	// Finish is called once the render ends, successfully or not.
	Finish()
}
