// Package encode implements the render-and-encode stage.
package encode

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/user/timerreel/pkg/pipeline"
	"github.com/user/timerreel/pkg/ports"
	"github.com/user/timerreel/pkg/stages/composite"
	"github.com/user/timerreel/pkg/stages/counter"
	"github.com/user/timerreel/pkg/stages/particles"
)

var (
	// ErrFormatChangedTwice is returned when the codec publishes its output format more than once.
	ErrFormatChangedTwice = errors.New("encode: output format changed twice")
	// ErrMuxerNotStarted is returned when an encoded unit arrives before the track exists.
	ErrMuxerNotStarted = errors.New("encode: muxer not started")
	// ErrInvalidFormat is returned for non-positive frame geometry or rate.
	ErrInvalidFormat = errors.New("encode: invalid frame format")
	// ErrInvalidState is returned when the codec is driven out of order.
	ErrInvalidState = errors.New("encode: invalid codec state")
	// ErrEndOfStreamTimeout is returned when the codec never reports end of stream.
	ErrEndOfStreamTimeout = errors.New("encode: timed out waiting for end of stream")
)

const (
	minBitRate       = 3_000_000
	bitsPerPixel     = 0.12
	keyFrameInterval = 2 // seconds

	finalPollTimeout = 10 * time.Millisecond
	// DefaultFinalDrainLimit bounds the wait for the end-of-stream unit.
	DefaultFinalDrainLimit = 2 * time.Minute
)

// FrameDrawer draws one frame of the counter onto a canvas.
type FrameDrawer interface {
	Draw(canvas ports.Canvas, value int, clock pipeline.AnimationClock) error
}

// Options tunes a Stage. The zero value is usable.
type Options struct {
	// DebugEvery saves every Nth frame to the debug sink (0 = only frame 0).
	DebugEvery int
	// Random seeds the particle field. Nil uses a non-deterministic source.
	Random particles.RandomSource
	// NewDrawer overrides the frame compositor.
	NewDrawer func(input pipeline.EncodeInput) FrameDrawer
	// Progress receives per-frame progress. May be nil.
	Progress ports.Progress
	// FinalDrainLimit bounds the wait for the end-of-stream unit.
	FinalDrainLimit time.Duration
}

// Stage renders every frame of a request into the codec and forwards the
// encoded stream to the muxer.
type Stage struct {
	codec    ports.VideoCodec
	muxer    ports.Muxer
	renderer ports.Renderer
	sink     ports.DebugSink
	logger   ports.Logger
	opts     Options
}

// NewStage creates a new encode stage.
func NewStage(codec ports.VideoCodec, muxer ports.Muxer, renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger, opts Options) *Stage {
	if opts.FinalDrainLimit <= 0 {
		opts.FinalDrainLimit = DefaultFinalDrainLimit
	}
	return &Stage{
		codec:    codec,
		muxer:    muxer,
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("encode"),
		opts:     opts,
	}
}

// BitRate returns the target bit rate for a frame format.
func BitRate(width, height, fps int) int {
	return max(minBitRate, int(float64(width)*float64(height)*float64(fps)*bitsPerPixel))
}

// PresentationTimeUs returns the timestamp of frame index at fps, rounded to the microsecond.
func PresentationTimeUs(index, fps int) int64 {
	return (2*1_000_000*int64(index) + int64(fps)) / (2 * int64(fps))
}

// run holds the mutable state of one Execute call.
type run struct {
	session   *session
	track     int
	added     bool
	muxing    bool
	finalized bool
	pending   []int64
	current   int64
	lastPTS   int64
	result    pipeline.EncodeResult
}

// nextPTS pairs an output unit with the oldest submitted frame.
func (r *run) nextPTS() int64 {
	if len(r.pending) == 0 {
		return r.current
	}
	pts := r.pending[0]
	r.pending = r.pending[1:]
	return pts
}

// Execute renders and encodes the request. Codec and muxer are always
// stopped and released before returning.
func (s *Stage) Execute(ctx context.Context, input pipeline.EncodeInput) (result pipeline.EncodeResult, err error) {
	cfg := input.Config
	r := &run{session: newSession(s.codec), track: -1}

	defer func() {
		if terr := s.teardown(r); terr != nil {
			if err == nil {
				err = terr
			} else {
				err = multierror.Append(err, terr)
			}
		}
		result = r.result
	}()

	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.FPS <= 0 {
		return result, fmt.Errorf("%w: %dx%d@%d", ErrInvalidFormat, cfg.Width, cfg.Height, cfg.FPS)
	}

	frames := input.Request.FrameCount(cfg.FPS)
	r.result.BitRate = BitRate(cfg.Width, cfg.Height, cfg.FPS)

	format := ports.EncoderFormat{
		Width:            cfg.Width,
		Height:           cfg.Height,
		FrameRate:        cfg.FPS,
		BitRate:          r.result.BitRate,
		KeyFrameInterval: keyFrameInterval,
	}
	if err := r.session.configure(format); err != nil {
		return result, err
	}
	if err := r.session.start(); err != nil {
		return result, err
	}

	s.logger.Debug("Encoding %d frames at %dx%d@%d, %d bps", frames, cfg.Width, cfg.Height, cfg.FPS, r.result.BitRate)
	if s.sink.Enabled() {
		if err := s.sink.SaveRenderJSON(renderJSON(input)); err != nil {
			s.logger.Warn("Failed to save debug output: %v", err)
		}
	}

	drawer := s.newDrawer(input)
	ctrl := counter.New(input.Request.StartValue, input.Request.Direction, cfg.FPS)
	var clock pipeline.AnimationClock

	if s.opts.Progress != nil {
		s.opts.Progress.Start(frames)
		defer s.opts.Progress.Finish()
	}

	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("render interrupted at frame %d: %w", i, err)
		}

		r.session.feeding()
		value := ctrl.AdvanceIfSecondBoundary(i)
		if err := s.renderFrame(r, drawer, i, value, clock); err != nil {
			return result, err
		}
		clock.Tick(cfg.FPS, cfg.BrandSpeed)

		r.current = PresentationTimeUs(i, cfg.FPS)
		r.pending = append(r.pending, r.current)
		r.result.FramesRendered++
		if s.opts.Progress != nil {
			s.opts.Progress.Advance()
		}

		r.session.draining()
		if _, err := s.drain(ctx, r, false); err != nil {
			return result, err
		}
	}

	if err := r.session.signalEnd(); err != nil {
		return result, err
	}
	r.session.finalDraining()
	if err := s.drainUntilEnd(ctx, r); err != nil {
		return result, err
	}

	if err := r.session.stop(); err != nil {
		return result, err
	}
	if err := s.finalize(r); err != nil {
		return result, err
	}

	r.result.DurationMs = int(PresentationTimeUs(frames-1, cfg.FPS) / 1000)
	s.logger.Debug("Encoded %d samples (%d keyframes)", r.result.SamplesWritten, r.result.Keyframes)
	return result, nil
}

func (s *Stage) newDrawer(input pipeline.EncodeInput) FrameDrawer {
	if s.opts.NewDrawer != nil {
		return s.opts.NewDrawer(input)
	}
	cfg := input.Config
	var field *particles.Field
	if cfg.Style == pipeline.StyleWater {
		field = particles.New(particles.Count(cfg.Width, cfg.Height), cfg.Width, cfg.Height, s.opts.Random)
	}
	return composite.NewStage(cfg, input.Layout, field, s.logger)
}

// renderFrame draws frame i into the codec surface and posts it.
// The surface is posted even when drawing fails.
func (s *Stage) renderFrame(r *run, drawer FrameDrawer, i, value int, clock pipeline.AnimationClock) error {
	img, err := r.session.surface.LockCanvas()
	if err != nil {
		return fmt.Errorf("lock surface: %w", err)
	}

	drawErr := drawer.Draw(s.renderer.WrapCanvas(img), value, clock)
	if drawErr == nil && s.sink.Enabled() && s.shouldSave(i) {
		if err := s.sink.SaveFrame(i, img); err != nil {
			s.logger.Warn("Failed to save debug output: %v", err)
		}
	}

	if err := r.session.surface.UnlockCanvasAndPost(img); err != nil {
		if drawErr != nil {
			return multierror.Append(fmt.Errorf("draw frame %d: %w", i, drawErr), fmt.Errorf("post surface: %w", err))
		}
		return fmt.Errorf("post surface: %w", err)
	}
	if drawErr != nil {
		return fmt.Errorf("draw frame %d: %w", i, drawErr)
	}
	return nil
}

func (s *Stage) shouldSave(i int) bool {
	if s.opts.DebugEvery <= 0 {
		return i == 0
	}
	return i%s.opts.DebugEvery == 0
}

// drain forwards codec output to the muxer until the codec has nothing more.
// With final set it waits up to finalPollTimeout per poll and returns true
// once the end-of-stream unit has been handled. Cancellation is checked
// before every poll.
func (s *Stage) drain(ctx context.Context, r *run, final bool) (bool, error) {
	var timeout time.Duration
	if final {
		timeout = finalPollTimeout
	}

	for {
		if err := ctx.Err(); err != nil {
			return false, fmt.Errorf("drain interrupted: %w", err)
		}
		ev, err := s.codec.DequeueOutput(timeout)
		if err != nil {
			return false, fmt.Errorf("dequeue output: %w", err)
		}

		switch ev.Kind {
		case ports.OutputTryAgain:
			return false, nil

		case ports.OutputFormatChanged:
			if err := s.addTrack(r, ev.Format); err != nil {
				return false, err
			}

		case ports.OutputBuffer:
			unit := ev.Unit
			if unit == nil {
				continue
			}
			if len(unit.Data) > 0 {
				if err := s.writeUnit(r, unit); err != nil {
					return false, err
				}
			}
			if unit.EndOfStream {
				return true, nil
			}
		}
	}
}

// drainUntilEnd polls the codec until the end-of-stream unit arrives.
func (s *Stage) drainUntilEnd(ctx context.Context, r *run) error {
	deadline := time.Now().Add(s.opts.FinalDrainLimit)
	for {
		done, err := s.drain(ctx, r, true)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("final drain interrupted: %w", err)
		}
		if time.Now().After(deadline) {
			return ErrEndOfStreamTimeout
		}
	}
}

func (s *Stage) addTrack(r *run, format *ports.TrackFormat) error {
	if r.added {
		return ErrFormatChangedTwice
	}
	if format == nil {
		return fmt.Errorf("add track: missing output format")
	}
	track, err := s.muxer.AddTrack(*format)
	if err != nil {
		return fmt.Errorf("add track: %w", err)
	}
	r.track = track
	r.added = true
	if err := s.muxer.Start(); err != nil {
		return fmt.Errorf("start muxer: %w", err)
	}
	r.muxing = true
	s.logger.Debug("Output format: %s %dx%d", format.Codec, format.Width, format.Height)
	return nil
}

func (s *Stage) writeUnit(r *run, unit *ports.AccessUnit) error {
	if !r.muxing {
		return ErrMuxerNotStarted
	}

	pts := r.nextPTS()
	if pts < r.lastPTS {
		pts = r.lastPTS
	}
	r.lastPTS = pts

	var flags ports.SampleFlags
	if unit.Keyframe {
		flags |= ports.SampleKeyframe
		r.result.Keyframes++
	}
	if unit.EndOfStream {
		flags |= ports.SampleEndOfStream
	}
	if err := s.muxer.WriteSample(r.track, unit.Data, pts, flags); err != nil {
		return fmt.Errorf("write sample: %w", err)
	}
	r.result.SamplesWritten++
	return nil
}

func (s *Stage) finalize(r *run) error {
	if !r.muxing || r.finalized {
		return nil
	}
	r.finalized = true
	if err := s.muxer.Stop(); err != nil {
		return fmt.Errorf("finalize container: %w", err)
	}
	r.result.Finalized = true
	return nil
}

// teardown stops and releases whatever is still held.
func (s *Stage) teardown(r *run) error {
	var result *multierror.Error
	if err := r.session.stop(); err != nil {
		result = multierror.Append(result, err)
	}
	r.session.release()
	if err := s.finalize(r); err != nil {
		result = multierror.Append(result, err)
	}
	s.muxer.Release()
	return result.ErrorOrNil()
}

// Ensure Stage implements pipeline.Stage
var _ pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult] = (*Stage)(nil)
