// Package integration contains integration tests for the timerreel pipeline.
package integration

import (
	"context"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/timerreel/pkg/adapters/filesink"
	"github.com/user/timerreel/pkg/adapters/ggrenderer"
	"github.com/user/timerreel/pkg/adapters/h264encoder"
	"github.com/user/timerreel/pkg/adapters/logger"
	"github.com/user/timerreel/pkg/adapters/mp4muxer"
	"github.com/user/timerreel/pkg/adapters/mp4probe"
	"github.com/user/timerreel/pkg/adapters/nullsink"
	"github.com/user/timerreel/pkg/adapters/osfilesystem"
	"github.com/user/timerreel/pkg/adapters/smartencoder"
	"github.com/user/timerreel/pkg/orchestrator"
	"github.com/user/timerreel/pkg/pipeline"
	"github.com/user/timerreel/pkg/ports"
	"github.com/user/timerreel/pkg/stages/composite"
	"github.com/user/timerreel/pkg/stages/encode"
	"github.com/user/timerreel/pkg/stages/layout"
	"github.com/user/timerreel/pkg/stages/particles"
	"github.com/user/timerreel/pkg/timerreel"
)

// TestLayoutToComposite draws a frame of every style onto a real canvas.
func TestLayoutToComposite(t *testing.T) {
	renderer := ggrenderer.New()
	styles := []pipeline.Style{
		pipeline.StylePlain,
		pipeline.StyleNeon,
		pipeline.StyleFire,
		pipeline.StyleWater,
		pipeline.StyleVideo,
	}

	for _, style := range styles {
		t.Run(string(style), func(t *testing.T) {
			cfg := pipeline.DefaultRenderConfig()
			cfg.Width, cfg.Height = 640, 360
			cfg.Style = style

			lr, err := layout.NewStage().Execute(context.Background(), pipeline.LayoutInput{
				Width:  cfg.Width,
				Height: cfg.Height,
				Skin:   cfg.Skin,
			})
			if err != nil {
				t.Fatalf("layout failed: %v", err)
			}

			field := particles.New(particles.Count(cfg.Width, cfg.Height), cfg.Width, cfg.Height, particles.DefaultSource())
			stage := composite.NewStage(cfg, lr, field, logger.NewNoop())

			img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
			if err := stage.Draw(renderer.WrapCanvas(img), 3599, pipeline.AnimationClock{StyleT: 0.5, WaterT: 0.5}); err != nil {
				t.Fatalf("Draw failed: %v", err)
			}

			if distinctColors(img) < 3 {
				t.Errorf("frame looks empty: only %d distinct colors", distinctColors(img))
			}
		})
	}
}

// TestLayoutAcrossSizes checks the counter fits the canvas at the size limits.
func TestLayoutAcrossSizes(t *testing.T) {
	sizes := [][2]int{
		{timerreel.MinWidth, timerreel.MinHeight},
		{1920, 1080},
		{timerreel.MaxWidth, timerreel.MaxHeight},
		{timerreel.MinWidth, timerreel.MaxHeight},
	}

	for _, sz := range sizes {
		lr := layout.ComputeLayout(pipeline.LayoutInput{Width: sz[0], Height: sz[1], Skin: pipeline.SkinMinimal})
		if lr.Canvas.Width != sz[0] || lr.Canvas.Height != sz[1] {
			t.Errorf("%dx%d: canvas = %dx%d", sz[0], sz[1], lr.Canvas.Width, lr.Canvas.Height)
		}
		if lr.CounterSize <= 0 || lr.CounterSize > float64(sz[1]) {
			t.Errorf("%dx%d: counter size %.1f out of range", sz[0], sz[1], lr.CounterSize)
		}
		if lr.CounterBaseline <= 0 || lr.CounterBaseline > float64(sz[1]) {
			t.Errorf("%dx%d: baseline %.1f outside canvas", sz[0], sz[1], lr.CounterBaseline)
		}
	}
}

// TestFullPipeline renders a short stopwatch with ffmpeg and probes the result.
func TestFullPipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if !h264encoder.IsFFmpegAvailable("") {
		t.Skip("ffmpeg not available")
	}

	ctx := context.Background()
	log := logger.NewNoop()
	outDir := t.TempDir()

	codec, info, err := smartencoder.New(ctx, smartencoder.Options{Software: true, Logger: log})
	if err != nil {
		t.Fatalf("failed to create encoder: %v", err)
	}

	cfg := timerreel.NewStopwatchBuilder().
		WithStopwatchDuration(2).
		WithSize(640, 360).
		WithFPS(30).
		Build()

	renderer := ggrenderer.New()
	factory := func(out io.Writer, oc orchestrator.Config) pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult] {
		return encode.NewStage(codec, mp4muxer.New(out, oc.Render.FPS, log), renderer, nullsink.New(), log, encode.Options{})
	}
	orch := orchestrator.New(layout.NewStage(), factory, osfilesystem.New(), log)

	result, err := orch.Run(ctx, cfg.ToOrchestratorConfig("", outDir, info.Encoder))
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}

	// 2 s at 30 fps plus the closing frame.
	if result.FrameCount != 61 {
		t.Errorf("FrameCount = %d, want 61", result.FrameCount)
	}
	if filepath.Dir(result.OutputPath) != outDir {
		t.Errorf("output %s not under %s", result.OutputPath, outDir)
	}

	probe, err := mp4probe.ProbeFile(result.OutputPath)
	if err != nil {
		t.Fatalf("probe failed: %v", err)
	}
	if probe.Codec != "h264" || probe.Width != 640 || probe.Height != 360 {
		t.Errorf("track = %s %dx%d", probe.Codec, probe.Width, probe.Height)
	}
	if len(probe.Samples) != result.SampleCount {
		t.Errorf("probed %d samples, result reports %d", len(probe.Samples), result.SampleCount)
	}
	if len(probe.Samples) == 0 || !probe.Samples[0].Keyframe {
		t.Fatal("first sample should be a keyframe")
	}
	for i := 1; i < len(probe.Samples); i++ {
		if probe.Samples[i].PtsUs <= probe.Samples[i-1].PtsUs {
			t.Fatalf("sample %d pts %d not after %d", i, probe.Samples[i].PtsUs, probe.Samples[i-1].PtsUs)
		}
	}
	if fr := probe.FrameRate(); fr < 29 || fr > 31 {
		t.Errorf("frame rate = %.2f, want ~30", fr)
	}
	t.Logf("Rendered %d frames into %d bytes with %s", result.FrameCount, result.FileSize, info.Encoder)
}

// TestFullPipeline_DebugOutput checks that debug frames and render.json are written.
func TestFullPipeline_DebugOutput(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if !h264encoder.IsFFmpegAvailable("") {
		t.Skip("ffmpeg not available")
	}

	ctx := context.Background()
	log := logger.NewNoop()
	dir := t.TempDir()
	debugDir := filepath.Join(dir, "debug")
	fs := osfilesystem.New()
	if err := fs.MkdirAll(debugDir); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	codec, info, err := smartencoder.New(ctx, smartencoder.Options{Software: true, Logger: log})
	if err != nil {
		t.Fatalf("failed to create encoder: %v", err)
	}

	cfg := timerreel.NewTimerBuilder().
		WithDuration(0, 0, 1).
		WithSize(640, 360).
		WithFPS(30).
		WithStyle(pipeline.StyleWater).
		Build()

	renderer := ggrenderer.New()
	sink := filesink.New(debugDir, fs, renderer)
	factory := func(out io.Writer, oc orchestrator.Config) pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult] {
		return encode.NewStage(codec, mp4muxer.New(out, oc.Render.FPS, log), renderer, sink, log, encode.Options{DebugEvery: 15})
	}
	orch := orchestrator.New(layout.NewStage(), factory, fs, log)

	output := filepath.Join(dir, "timer.mp4")
	if _, err := orch.Run(ctx, cfg.ToOrchestratorConfig(output, "", info.Encoder)); err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(debugDir, "render.json")); err != nil {
		t.Errorf("render.json missing: %v", err)
	}
	frames, _ := filepath.Glob(filepath.Join(debugDir, "frames", "frame-*.png"))
	// Frames 0, 15 and 30 of 31.
	if len(frames) != 3 {
		t.Errorf("expected 3 debug frames, got %d", len(frames))
	}
}

// TestFullPipeline_Cancelled verifies a cancelled render leaves no output behind.
func TestFullPipeline_Cancelled(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if !h264encoder.IsFFmpegAvailable("") {
		t.Skip("ffmpeg not available")
	}

	log := logger.NewNoop()
	codec, info, err := smartencoder.New(context.Background(), smartencoder.Options{Software: true, Logger: log})
	if err != nil {
		t.Fatalf("failed to create encoder: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := timerreel.NewStopwatchBuilder().WithStopwatchDuration(5).WithSize(640, 360).WithFPS(30).Build()
	renderer := ggrenderer.New()
	factory := func(out io.Writer, oc orchestrator.Config) pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult] {
		return encode.NewStage(codec, mp4muxer.New(out, oc.Render.FPS, log), renderer, nullsink.New(), log, encode.Options{})
	}
	orch := orchestrator.New(layout.NewStage(), factory, osfilesystem.New(), log)

	output := filepath.Join(t.TempDir(), "cancelled.mp4")
	if _, err := orch.Run(ctx, cfg.ToOrchestratorConfig(output, "", info.Encoder)); err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Errorf("output should be removed, stat err = %v", err)
	}
}

func distinctColors(img *image.RGBA) int {
	seen := make(map[color.RGBA]struct{})
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 4 {
		for x := b.Min.X; x < b.Max.X; x += 4 {
			seen[img.RGBAAt(x, y)] = struct{}{}
			if len(seen) > 16 {
				return len(seen)
			}
		}
	}
	return len(seen)
}

var _ ports.Canvas = (*ggrenderer.Canvas)(nil)
