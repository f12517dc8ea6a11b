// Package summarizer provides summary generation for render results.
package summarizer

import "time"

// Summary contains all data collected during a render session.
type Summary struct {
	// Metadata
	GeneratedAt time.Time
	SessionID   string

	// Render settings
	Settings Settings

	// Video output details
	Video VideoInfo
}

// Settings contains the render configuration.
type Settings struct {
	Kind        string // timer or stopwatch
	Direction   string // up or down
	StartValue  int    // seconds shown on the first frame
	DurationSec int

	Style   string
	Skin    string
	Width   int
	Height  int
	FPS     int
	Encoder string
	Brand   string // empty when the label is disabled
}

// VideoInfo contains information about the output video.
type VideoInfo struct {
	Path        string
	FrameCount  int
	SampleCount int
	Keyframes   int
	DurationMs  int
	FileSize    int64
	BitRate     int // bits per second
	ElapsedMs   int // wall clock time spent rendering
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSession sets the session identifier.
func (b *Builder) WithSession(id string) *Builder {
	b.summary.SessionID = id
	return b
}

// WithSettings sets render settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithVideo sets video output information.
func (b *Builder) WithVideo(video VideoInfo) *Builder {
	b.summary.Video = video
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
