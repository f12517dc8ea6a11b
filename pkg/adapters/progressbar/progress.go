// Package progressbar reports render progress on a terminal.
package progressbar

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/user/timerreel/pkg/ports"
)

// Bar implements ports.Progress with a terminal progress bar.
type Bar struct {
	w           io.Writer
	description string
	bar         *progressbar.ProgressBar
}

// New creates a progress bar writing to w.
func New(w io.Writer, description string) *Bar {
	return &Bar{w: w, description: description}
}

// ForTerminal returns a progress bar when f is a terminal and a no-op otherwise.
func ForTerminal(f *os.File, description string) ports.Progress {
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return New(f, description)
	}
	return Noop{}
}

// Start creates the bar for total frames.
func (b *Bar) Start(total int) {
	b.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(b.w),
		progressbar.OptionSetDescription(b.description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("frames"),
		progressbar.OptionShowIts(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(b.w)
		}),
	)
}

// Advance moves the bar by one frame.
func (b *Bar) Advance() {
	if b.bar != nil {
		b.bar.Add(1)
	}
}

// Finish completes the bar.
func (b *Bar) Finish() {
	if b.bar != nil {
		b.bar.Finish()
	}
}

// Noop discards progress.
type Noop struct{}

func (Noop) Start(int) {}
func (Noop) Advance()  {}
func (Noop) Finish()   {}

var (
	_ ports.Progress = (*Bar)(nil)
	_ ports.Progress = Noop{}
)
