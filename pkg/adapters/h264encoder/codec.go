// Package h264encoder provides an H.264 video codec backed by an ffmpeg process.
//
// Raw RGBA frames are written to ffmpeg's stdin through the input surface and
// the Annex B stream on stdout is split into access units by a reader goroutine.
package h264encoder

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os/exec"
	"sync"
	"time"

	"github.com/user/timerreel/pkg/adapters/logger"
	"github.com/user/timerreel/pkg/ports"
)

// Ensure Codec implements ports.VideoCodec.
var _ ports.VideoCodec = (*Codec)(nil)

const readChunk = 64 * 1024

// Options configures a Codec.
type Options struct {
	// FFmpegPath is an optional custom path to the ffmpeg binary.
	FFmpegPath string
	// Encoder selects the ffmpeg encoder. The zero value uses libx264.
	Encoder EncoderSpec
	// Logger receives debug output. May be nil.
	Logger ports.Logger
}

// Codec implements ports.VideoCodec over an ffmpeg subprocess.
type Codec struct {
	opts   Options
	logger ports.Logger

	format     ports.EncoderFormat
	configured bool
	surface    *surface

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer

	mu       sync.Mutex
	queue    []ports.OutputEvent
	notify   chan struct{}
	done     chan struct{}
	readErr  error
	started  bool
	inputEOS bool
	stopped  bool
	released bool

	frames int
	units  int
}

// New creates a codec.
func New(opts Options) *Codec {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoop()
	}
	return &Codec{
		opts:   opts,
		logger: log.WithComponent("h264"),
		notify: make(chan struct{}, 1),
	}
}

// Encoder returns the ffmpeg encoder name in use.
func (c *Codec) Encoder() string {
	if c.opts.Encoder.Name == "" {
		return SoftwareEncoder
	}
	return c.opts.Encoder.Name
}

// Configure validates and records the stream parameters.
func (c *Codec) Configure(format ports.EncoderFormat) error {
	if c.started {
		return ErrAlreadyStarted
	}
	if format.Width <= 0 || format.Height <= 0 || format.FrameRate <= 0 || format.BitRate <= 0 {
		return fmt.Errorf("%w: %dx%d@%d %d bps", ErrInvalidFormat, format.Width, format.Height, format.FrameRate, format.BitRate)
	}
	if format.Width%2 != 0 || format.Height%2 != 0 {
		return fmt.Errorf("%w: %dx%d is not divisible by 2", ErrInvalidFormat, format.Width, format.Height)
	}
	c.format = format
	c.configured = true
	return nil
}

// CreateInputSurface returns the drawing surface that feeds the codec.
func (c *Codec) CreateInputSurface() (ports.Surface, error) {
	if !c.configured {
		return nil, ErrNotConfigured
	}
	if c.surface == nil {
		c.surface = &surface{
			codec: c,
			img:   image.NewRGBA(image.Rect(0, 0, c.format.Width, c.format.Height)),
		}
	}
	return c.surface, nil
}

// Start launches ffmpeg and the output reader.
func (c *Codec) Start() error {
	if !c.configured {
		return ErrNotConfigured
	}
	if c.started {
		return ErrAlreadyStarted
	}

	ffmpegPath, err := FindFFmpeg(c.opts.FFmpegPath)
	if err != nil {
		return err
	}

	args := Args(c.format, c.opts.Encoder)
	c.cmd = exec.Command(ffmpegPath, args...)
	c.cmd.Stderr = &c.stderr

	stdin, err := c.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdin pipe: %w", err)
	}
	stdout, err := c.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdout pipe: %w", err)
	}
	c.stdin = stdin

	if err := c.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	c.logger.Debug("Started ffmpeg with %s at %d bps", c.Encoder(), c.format.BitRate)

	c.done = make(chan struct{})
	c.mu.Lock()
	c.started = true
	c.mu.Unlock()

	go c.readOutput(stdout)
	return nil
}

// readOutput splits stdout into access units until ffmpeg exits.
func (c *Codec) readOutput(stdout io.Reader) {
	defer close(c.done)

	var splitter auSplitter
	formatSent := false
	publish := func(units []accessUnit) {
		for _, au := range units {
			if !formatSent {
				if sps, pps, ok := splitter.ParameterSets(); ok {
					c.push(ports.OutputEvent{
						Kind: ports.OutputFormatChanged,
						Format: &ports.TrackFormat{
							Codec:  "h264",
							Width:  c.format.Width,
							Height: c.format.Height,
							SPS:    sps,
							PPS:    pps,
						},
					})
					formatSent = true
				}
			}
			c.push(ports.OutputEvent{
				Kind: ports.OutputBuffer,
				Unit: &ports.AccessUnit{Data: au.data, Keyframe: au.keyframe},
			})
		}
	}

	buf := make([]byte, readChunk)
	var readErr error
	for {
		n, err := stdout.Read(buf)
		if n > 0 {
			publish(splitter.Write(buf[:n]))
		}
		if err != nil {
			if err != io.EOF {
				readErr = err
			}
			break
		}
	}
	publish(splitter.Flush())

	waitErr := c.cmd.Wait()

	c.mu.Lock()
	stopped := c.stopped
	c.mu.Unlock()

	switch {
	case stopped:
		return
	case waitErr != nil:
		c.fail(fmt.Errorf("%w: %v: %s", ErrEncodingFailed, waitErr, bytes.TrimSpace(c.stderr.Bytes())))
	case readErr != nil:
		c.fail(fmt.Errorf("%w: read output: %v", ErrEncodingFailed, readErr))
	default:
		c.push(ports.OutputEvent{
			Kind: ports.OutputBuffer,
			Unit: &ports.AccessUnit{EndOfStream: true},
		})
	}
}

func (c *Codec) push(ev ports.OutputEvent) {
	c.mu.Lock()
	c.queue = append(c.queue, ev)
	if ev.Kind == ports.OutputBuffer && ev.Unit != nil && !ev.Unit.EndOfStream {
		c.units++
	}
	c.mu.Unlock()
	c.wake()
}

func (c *Codec) fail(err error) {
	c.mu.Lock()
	c.readErr = err
	c.mu.Unlock()
	c.wake()
}

func (c *Codec) wake() {
	select {
	case c.notify <- struct{}{}:
	default:
	}
}

// DequeueOutput returns the next output event, waiting up to timeout.
func (c *Codec) DequeueOutput(timeout time.Duration) (ports.OutputEvent, error) {
	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		c.mu.Lock()
		if !c.started {
			c.mu.Unlock()
			return ports.OutputEvent{}, ErrNotStarted
		}
		if len(c.queue) > 0 {
			ev := c.queue[0]
			c.queue[0] = ports.OutputEvent{}
			c.queue = c.queue[1:]
			c.mu.Unlock()
			return ev, nil
		}
		if err := c.readErr; err != nil {
			c.mu.Unlock()
			return ports.OutputEvent{}, err
		}
		c.mu.Unlock()

		if deadline == nil {
			return ports.OutputEvent{Kind: ports.OutputTryAgain}, nil
		}
		select {
		case <-c.notify:
		case <-deadline:
			return ports.OutputEvent{Kind: ports.OutputTryAgain}, nil
		}
	}
}

// SignalEndOfInputStream closes ffmpeg's stdin.
func (c *Codec) SignalEndOfInputStream() error {
	if !c.started {
		return ErrNotStarted
	}
	if c.inputEOS {
		return nil
	}
	c.inputEOS = true
	if err := c.stdin.Close(); err != nil {
		return fmt.Errorf("close ffmpeg input: %w", err)
	}
	c.logger.Debug("Signalled end of input after %d frames", c.frames)
	return nil
}

// Stop terminates ffmpeg if it is still running and waits for the reader.
func (c *Codec) Stop() error {
	if !c.started {
		return ErrNotStarted
	}

	select {
	case <-c.done:
	default:
		c.mu.Lock()
		c.stopped = true
		c.mu.Unlock()
		if !c.inputEOS {
			c.inputEOS = true
			c.stdin.Close()
		}
		if c.cmd.Process != nil {
			c.cmd.Process.Kill()
		}
		<-c.done
	}

	c.mu.Lock()
	units := c.units
	c.mu.Unlock()
	c.logger.Debug("Codec stopped: %d frames in, %d units out", c.frames, units)
	return nil
}

// Release stops the process if needed and drops queued output. Safe to call twice.
func (c *Codec) Release() {
	if c.released {
		return
	}
	c.released = true
	if c.started {
		c.Stop()
	}
	c.mu.Lock()
	c.queue = nil
	c.mu.Unlock()
}

// writeFrame sends one RGBA frame to ffmpeg. It blocks while the pipe is full.
func (c *Codec) writeFrame(img *image.RGBA) error {
	if !c.started {
		return ErrNotStarted
	}
	if c.inputEOS {
		return ErrInputClosed
	}

	w := c.format.Width * 4
	if img.Stride == w && img.Rect.Min == (image.Point{}) {
		if _, err := c.stdin.Write(img.Pix[:w*c.format.Height]); err != nil {
			return fmt.Errorf("failed to write frame: %w", err)
		}
	} else {
		for y := 0; y < c.format.Height; y++ {
			off := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
			row := img.Pix[off : off+w]
			if _, err := c.stdin.Write(row); err != nil {
				return fmt.Errorf("failed to write frame: %w", err)
			}
		}
	}
	c.frames++
	return nil
}

// surface is the codec's RGBA input buffer.
type surface struct {
	codec  *Codec
	img    *image.RGBA
	locked bool
}

// LockCanvas returns the frame buffer for drawing.
func (s *surface) LockCanvas() (*image.RGBA, error) {
	if s.locked {
		return nil, ErrSurfaceLocked
	}
	if !s.codec.started {
		return nil, ErrNotStarted
	}
	s.locked = true
	return s.img, nil
}

// UnlockCanvasAndPost queues the drawn frame for encoding.
func (s *surface) UnlockCanvasAndPost(img *image.RGBA) error {
	if !s.locked {
		return ErrSurfaceNotLocked
	}
	s.locked = false
	if img == nil {
		img = s.img
	}
	if img.Rect.Dx() != s.codec.format.Width || img.Rect.Dy() != s.codec.format.Height {
		return fmt.Errorf("%w: posted %dx%d frame", ErrInvalidFormat, img.Rect.Dx(), img.Rect.Dy())
	}
	return s.codec.writeFrame(img)
}
