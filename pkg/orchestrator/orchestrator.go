// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/ideamans/go-l10n"

	"github.com/user/timerreel/pkg/pipeline"
	"github.com/user/timerreel/pkg/ports"
)

// ErrInvalidDuration is returned when the requested duration is not positive.
var ErrInvalidDuration = errors.New("orchestrator: duration must be positive")

// Config contains all configuration for the orchestrator.
type Config struct {
	Render  pipeline.RenderConfig
	Request pipeline.RenderRequest

	// OutputPath is the explicit output file. When empty a name is derived
	// from the request kind and the start time inside OutputDir.
	OutputPath string
	OutputDir  string

	// Encoder names the codec backend for reporting.
	Encoder string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Render: pipeline.DefaultRenderConfig(),
		Request: pipeline.RenderRequest{
			Kind:        pipeline.KindTimer,
			DurationSec: 60,
			StartValue:  60,
			Direction:   pipeline.DirectionDown,
		},
		OutputDir: ".",
		Encoder:   "libx264",
	}
}

// EncodeStageFactory builds the encode stage that writes its container to out.
type EncodeStageFactory func(out io.Writer, config Config) pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult]

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	layoutStage pipeline.Stage[pipeline.LayoutInput, pipeline.LayoutResult]
	newEncode   EncodeStageFactory
	fs          ports.FileSystem
	logger      ports.Logger
	now         func() time.Time
}

// New creates a new Orchestrator.
func New(
	layoutStage pipeline.Stage[pipeline.LayoutInput, pipeline.LayoutResult],
	newEncode EncodeStageFactory,
	fs ports.FileSystem,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		layoutStage: layoutStage,
		newEncode:   newEncode,
		fs:          fs,
		logger:      logger,
		now:         time.Now,
	}
}

// SetClock overrides the clock used for output naming.
func (o *Orchestrator) SetClock(now func() time.Time) {
	o.now = now
}

// OutputName returns the default file name of a render started at t,
// e.g. timer_20240131_093000.mp4.
func OutputName(kind pipeline.Kind, t time.Time) string {
	return fmt.Sprintf("%s_%s.mp4", kind, t.Format("20060102_150405"))
}

// Run executes the complete pipeline.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	if config.Request.DurationSec <= 0 {
		return RunResult{}, fmt.Errorf("%w: %d", ErrInvalidDuration, config.Request.DurationSec)
	}

	started := o.now()
	result := RunResult{
		SessionID: uuid.NewString(),
		StartedAt: started,
		Kind:      config.Request.Kind,
		Encoder:   config.Encoder,
		Width:     config.Render.Width,
		Height:    config.Render.Height,
		FPS:       config.Render.FPS,
	}

	o.logger.Info(l10n.F("Rendering %s: %d s at %dx%d, %d fps", config.Request.Kind, config.Request.DurationSec, config.Render.Width, config.Render.Height, config.Render.FPS))

	// 1. Layout calculation
	layout, err := o.layoutStage.Execute(ctx, pipeline.LayoutInput{
		Width:  config.Render.Width,
		Height: config.Render.Height,
		Skin:   config.Render.Skin,
	})
	if err != nil {
		o.logger.Error(l10n.F("Failed to calculate layout: %s", err))
		return result, fmt.Errorf("layout stage: %w", err)
	}

	// 2. Provision output
	path := config.OutputPath
	if path == "" {
		path = filepath.Join(config.OutputDir, OutputName(config.Request.Kind, started))
	}
	result.OutputPath = path

	out, err := o.fs.Create(path)
	if err != nil {
		o.logger.Error(l10n.F("Failed to write output: %s", err))
		return result, fmt.Errorf("create output: %w", err)
	}

	// 3. Render and encode
	stage := o.newEncode(out, config)
	encoded, err := stage.Execute(ctx, pipeline.EncodeInput{
		Config:  config.Render,
		Request: config.Request,
		Layout:  layout,
	})
	result.FrameCount = encoded.FramesRendered
	result.SampleCount = encoded.SamplesWritten
	result.Keyframes = encoded.Keyframes
	result.DurationMs = encoded.DurationMs
	result.BitRate = encoded.BitRate

	if closeErr := out.Close(); closeErr != nil {
		err = multierror.Append(err, fmt.Errorf("close output: %w", closeErr)).ErrorOrNil()
	}

	if !encoded.Finalized {
		if rmErr := o.fs.Remove(path); rmErr != nil {
			err = multierror.Append(err, fmt.Errorf("remove unfinished output: %w", rmErr)).ErrorOrNil()
		}
		result.OutputPath = ""
	}

	result.Elapsed = o.now().Sub(started)

	if err != nil {
		o.logger.Error(l10n.F("Failed to encode video: %s", err))
		return result, fmt.Errorf("encode stage: %w", err)
	}
	if !encoded.Finalized {
		return result, fmt.Errorf("encode stage: container was not finalized")
	}

	if size, err := o.fs.Size(path); err == nil {
		result.FileSize = size
	}

	o.logger.Info(l10n.F("Video encoded: %d frames, %d bytes", result.FrameCount, result.FileSize))
	o.logger.Info(l10n.F("Output saved to %s", path))

	return result, nil
}

// RunResult contains the results of a pipeline run for summary generation.
type RunResult struct {
	SessionID  string
	StartedAt  time.Time
	Elapsed    time.Duration
	Kind       pipeline.Kind
	OutputPath string // empty when the output was removed

	Width   int
	Height  int
	FPS     int
	Encoder string
	BitRate int

	FrameCount  int
	SampleCount int
	Keyframes   int
	DurationMs  int
	FileSize    int64
}
