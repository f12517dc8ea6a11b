// Package main provides the CLI entry point for timerreel.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/timerreel/pkg/adapters/filesink"
	"github.com/user/timerreel/pkg/adapters/ggrenderer"
	"github.com/user/timerreel/pkg/adapters/logger"
	"github.com/user/timerreel/pkg/adapters/mp4muxer"
	"github.com/user/timerreel/pkg/adapters/nullsink"
	"github.com/user/timerreel/pkg/adapters/osfilesystem"
	"github.com/user/timerreel/pkg/adapters/progressbar"
	"github.com/user/timerreel/pkg/adapters/smartencoder"
	"github.com/user/timerreel/pkg/config"
	"github.com/user/timerreel/pkg/orchestrator"
	"github.com/user/timerreel/pkg/pipeline"
	"github.com/user/timerreel/pkg/ports"
	"github.com/user/timerreel/pkg/stages/encode"
	"github.com/user/timerreel/pkg/stages/layout"
	"github.com/user/timerreel/pkg/summarizer"
	"github.com/user/timerreel/pkg/timerreel"
)

var version = "dev"

// Flag categories
const (
	catOutput     = "Output"
	catVideo      = "Video"
	catAppearance = "Appearance"
	catBrand      = "Brand"
	catWater      = "Water"
	catEncoding   = "Encoding"
	catDebug      = "Debug"
	catLogging    = "Logging"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, l10n.F("Error: %s", err))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:        "timerreel",
		Usage:       l10n.T("Render timer and stopwatch videos"),
		Description: l10n.T("timerreel renders an animated countdown or count-up display into an H.264 MP4 file."),
		Version:     version,
		Commands: []*cli.Command{
			{
				Name:        "timer",
				Usage:       l10n.T("Render a countdown timer"),
				Description: l10n.T("Render a timer that counts down to zero, or up from zero with --forward."),
				Flags: append([]cli.Flag{
					&cli.IntFlag{Name: "hours", Usage: l10n.T("Timer hours (0-99)")},
					&cli.IntFlag{Name: "minutes", Aliases: []string{"m"}, Value: 1, Usage: l10n.T("Timer minutes (0-59)")},
					&cli.IntFlag{Name: "seconds", Aliases: []string{"s"}, Usage: l10n.T("Timer seconds (0-59)")},
					&cli.BoolFlag{Name: "forward", Usage: l10n.T("Count up from zero instead of down")},
				}, renderFlags()...),
				Action: func(c *cli.Context) error {
					b := timerreel.NewTimerBuilder()
					if err := applyConfigFile(c, b); err != nil {
						return err
					}
					b.WithDuration(c.Int("hours"), c.Int("minutes"), c.Int("seconds")).
						WithForward(c.Bool("forward"))
					return render(c, b)
				},
			},
			{
				Name:        "stopwatch",
				Usage:       l10n.T("Render a stopwatch"),
				Description: l10n.T("Render a stopwatch that counts up from zero."),
				Flags: append([]cli.Flag{
					&cli.IntFlag{Name: "duration", Aliases: []string{"d"}, Value: 30, Usage: l10n.T("Stopwatch length in seconds (min: 1)")},
				}, renderFlags()...),
				Action: func(c *cli.Context) error {
					b := timerreel.NewStopwatchBuilder()
					if err := applyConfigFile(c, b); err != nil {
						return err
					}
					b.WithStopwatchDuration(c.Int("duration"))
					return render(c, b)
				},
			},
			{
				Name:      "inspect",
				Usage:     l10n.T("Show the video track of an MP4 file"),
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "samples", Usage: l10n.T("List every sample")},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit(l10n.T("An MP4 file argument is required"), 2)
					}
					return inspect(c.App.Writer, c.Args().First(), c.Bool("samples"))
				},
			},
		},
	}
}

// renderFlags returns the flags shared by the timer and stopwatch commands.
func renderFlags() []cli.Flag {
	d := pipeline.DefaultRenderConfig()
	return []cli.Flag{
		&cli.PathFlag{Name: "config", Aliases: []string{"c"}, Category: l10n.T(catOutput), Usage: l10n.T("YAML configuration file")},
		&cli.PathFlag{Name: "output", Aliases: []string{"o"}, Category: l10n.T(catOutput), Usage: l10n.T("Output MP4 file path")},
		&cli.PathFlag{Name: "out-dir", Category: l10n.T(catOutput), Usage: l10n.T("Directory for generated file names")},
		&cli.PathFlag{Name: "summary", Category: l10n.T(catOutput), Usage: l10n.T("Output render summary to file (Markdown format)")},

		&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Value: d.Width, Category: l10n.T(catVideo), Usage: l10n.T("Video width (640-3840)")},
		&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Value: d.Height, Category: l10n.T(catVideo), Usage: l10n.T("Video height (360-2160)")},
		&cli.IntFlag{Name: "fps", Value: d.FPS, Category: l10n.T(catVideo), Usage: l10n.T("Frame rate (30-120)")},

		&cli.StringFlag{Name: "style", Value: string(d.Style), Category: l10n.T(catAppearance), Usage: l10n.T("Counter style (plain, neon, fire, water, video)")},
		&cli.StringFlag{Name: "skin", Value: string(d.Skin), Category: l10n.T(catAppearance), Usage: l10n.T("Background skin (none, minimal, lcd, glass, retro, flip)")},
		&cli.StringFlag{Name: "digit-color", Value: config.FormatColor(d.DigitColor), Category: l10n.T(catAppearance), Usage: l10n.T("Counter color (#RRGGBB or #AARRGGBB)")},
		&cli.StringFlag{Name: "background-color", Value: config.FormatColor(d.BackgroundColor), Category: l10n.T(catAppearance), Usage: l10n.T("Background color (#RRGGBB or #AARRGGBB)")},
		&cli.StringFlag{Name: "stroke-color", Value: config.FormatColor(d.StrokeColor), Category: l10n.T(catAppearance), Usage: l10n.T("Outline color of the plain style")},
		&cli.Float64Flag{Name: "stroke-width", Value: d.StrokeWidth, Category: l10n.T(catAppearance), Usage: l10n.T("Outline width of the plain style")},

		&cli.StringFlag{Name: "brand", Value: d.BrandText, Category: l10n.T(catBrand), Usage: l10n.T("Brand label text (empty disables it)")},
		&cli.BoolFlag{Name: "brand-animated", Value: d.BrandAnimated, Category: l10n.T(catBrand), Usage: l10n.T("Animate the brand label")},
		&cli.Float64Flag{Name: "brand-speed", Value: d.BrandSpeed, Category: l10n.T(catBrand), Usage: l10n.T("Brand animation speed")},
		&cli.Float64Flag{Name: "brand-amplitude", Value: d.BrandAmplitude, Category: l10n.T(catBrand), Usage: l10n.T("Brand animation amplitude")},
		&cli.Float64Flag{Name: "brand-x", Value: d.BrandRelX, Category: l10n.T(catBrand), Usage: l10n.T("Brand horizontal position (0.02-0.98)")},
		&cli.Float64Flag{Name: "brand-y", Value: d.BrandRelY, Category: l10n.T(catBrand), Usage: l10n.T("Brand vertical position (0.05-0.95)")},

		&cli.BoolFlag{Name: "inner-waves", Value: d.WaterInnerWaves, Category: l10n.T(catWater), Usage: l10n.T("Draw waves inside the digits")},
		&cli.Float64Flag{Name: "wave-intensity", Value: d.WaveIntensity, Category: l10n.T(catWater), Usage: l10n.T("Wave intensity")},
		&cli.Float64Flag{Name: "bubble-speed", Value: d.BubbleSpeed, Category: l10n.T(catWater), Usage: l10n.T("Bubble speed")},

		&cli.StringFlag{Name: "encoder", Category: l10n.T(catEncoding), Usage: l10n.T("Force an ffmpeg H.264 encoder (e.g. h264_nvenc)")},
		&cli.BoolFlag{Name: "software", Category: l10n.T(catEncoding), Usage: l10n.T("Force software encoding (libx264)")},
		&cli.PathFlag{Name: "ffmpeg", Category: l10n.T(catEncoding), Usage: l10n.T("Path to ffmpeg (falls back to FFMPEG_PATH, then PATH)")},

		&cli.BoolFlag{Name: "debug", Category: l10n.T(catDebug), Usage: l10n.T("Enable debug output")},
		&cli.PathFlag{Name: "debug-dir", Value: "./debug", Category: l10n.T(catDebug), Usage: l10n.T("Directory for debug output")},
		&cli.IntFlag{Name: "debug-every", Value: 60, Category: l10n.T(catDebug), Usage: l10n.T("Save every Nth frame (0 = first frame only)")},

		&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Category: l10n.T(catLogging), Usage: l10n.T("Log level (debug, info, warn, error)")},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Category: l10n.T(catLogging), Usage: l10n.T("Suppress all log output")},
	}
}

// settings holds the non-visual options resolved from the config file and flags.
type settings struct {
	output     string
	outDir     string
	encoder    string
	software   bool
	ffmpegPath string
	debug      bool
	debugDir   string
	debugEvery int
}

// applyConfigFile loads --config into the builder. Flags applied later override it.
func applyConfigFile(c *cli.Context, b *timerreel.ConfigBuilder) error {
	if !c.IsSet("config") {
		return nil
	}
	file, err := config.LoadFromFile(c.Path("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	b.FromFile(file)
	return nil
}

// applyFlags applies the render flags that were set explicitly.
func applyFlags(c *cli.Context, b *timerreel.ConfigBuilder, base pipeline.RenderConfig) {
	r := base
	if c.IsSet("width") {
		r.Width = c.Int("width")
	}
	if c.IsSet("height") {
		r.Height = c.Int("height")
	}
	b.WithSize(r.Width, r.Height)
	if c.IsSet("fps") {
		b.WithFPS(c.Int("fps"))
	}
	if c.IsSet("style") {
		b.WithStyle(pipeline.ParseStyle(c.String("style")))
	}
	if c.IsSet("skin") {
		b.WithSkin(pipeline.ParseSkin(c.String("skin")))
	}
	if c.IsSet("digit-color") {
		b.WithDigitColor(config.ParseColor(c.String("digit-color")))
	}
	if c.IsSet("background-color") {
		b.WithBackgroundColor(config.ParseColor(c.String("background-color")))
	}

	strokeColor, strokeWidth := r.StrokeColor, r.StrokeWidth
	if c.IsSet("stroke-color") {
		strokeColor = config.ParseColor(c.String("stroke-color"))
	}
	if c.IsSet("stroke-width") {
		strokeWidth = c.Float64("stroke-width")
	}
	b.WithStroke(strokeColor, strokeWidth)

	brand, animated := r.BrandText, r.BrandAnimated
	if c.IsSet("brand") {
		brand = c.String("brand")
	}
	if c.IsSet("brand-animated") {
		animated = c.Bool("brand-animated")
	}
	b.WithBrand(brand, animated)

	speed, amplitude := r.BrandSpeed, r.BrandAmplitude
	if c.IsSet("brand-speed") {
		speed = c.Float64("brand-speed")
	}
	if c.IsSet("brand-amplitude") {
		amplitude = c.Float64("brand-amplitude")
	}
	b.WithBrandMotion(speed, amplitude)

	x, y := r.BrandRelX, r.BrandRelY
	if c.IsSet("brand-x") {
		x = c.Float64("brand-x")
	}
	if c.IsSet("brand-y") {
		y = c.Float64("brand-y")
	}
	b.WithBrandPosition(x, y)

	waves, intensity, bubbles := r.WaterInnerWaves, r.WaveIntensity, r.BubbleSpeed
	if c.IsSet("inner-waves") {
		waves = c.Bool("inner-waves")
	}
	if c.IsSet("wave-intensity") {
		intensity = c.Float64("wave-intensity")
	}
	if c.IsSet("bubble-speed") {
		bubbles = c.Float64("bubble-speed")
	}
	b.WithWater(waves, intensity, bubbles)
}

// resolveSettings merges the config file and flags for the non-visual options.
func resolveSettings(c *cli.Context) (settings, error) {
	file := config.Defaults()
	if c.IsSet("config") {
		loaded, err := config.LoadFromFile(c.Path("config"))
		if err != nil {
			return settings{}, fmt.Errorf("load config: %w", err)
		}
		file = loaded
	}

	s := settings{
		output:     file.OutputPath,
		outDir:     file.OutputDir,
		encoder:    file.Encoder,
		software:   file.Software,
		ffmpegPath: file.FFmpegPath,
		debug:      file.Debug,
		debugDir:   file.DebugDir,
		debugEvery: file.DebugEvery,
	}
	if c.IsSet("output") {
		s.output = c.Path("output")
	}
	if c.IsSet("out-dir") {
		s.outDir = c.Path("out-dir")
	}
	if s.outDir == "" {
		s.outDir = osfilesystem.DefaultOutputDir()
	}
	if c.IsSet("encoder") {
		s.encoder = c.String("encoder")
	}
	if c.IsSet("software") {
		s.software = c.Bool("software")
	}
	if c.IsSet("ffmpeg") {
		s.ffmpegPath = c.Path("ffmpeg")
	}
	if c.IsSet("debug") {
		s.debug = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		s.debugDir = c.Path("debug-dir")
	}
	if c.IsSet("debug-every") {
		s.debugEvery = c.Int("debug-every")
	}
	return s, nil
}

// render builds the pipeline and runs one render.
func render(c *cli.Context, b *timerreel.ConfigBuilder) error {
	applyFlags(c, b, b.Build().Render)
	cfg := b.Build()
	if cfg.TotalSec() <= 0 {
		return fmt.Errorf("%w: %s", orchestrator.ErrInvalidDuration, l10n.T("set a timer longer than zero"))
	}

	s, err := resolveSettings(c)
	if err != nil {
		return err
	}

	// Create logger
	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn(l10n.T("Interrupted, shutting down..."))
			cancel()
		case <-ctx.Done():
		}
	}()

	// Create adapters
	fs := osfilesystem.New()
	renderer := ggrenderer.New()

	codec, encInfo, err := smartencoder.New(ctx, smartencoder.Options{
		FFmpegPath: s.ffmpegPath,
		Encoder:    s.encoder,
		Software:   s.software,
		Logger:     log,
	})
	if err != nil {
		return err
	}
	log.Info(l10n.F("Using encoder %s (%s)", encInfo.Encoder, encInfo.Backend))

	// Create debug sink
	var sink ports.DebugSink
	if s.debug {
		if err := fs.MkdirAll(s.debugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(s.debugDir, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	var progress ports.Progress = progressbar.Noop{}
	if !c.Bool("quiet") {
		progress = progressbar.ForTerminal(os.Stderr, l10n.T("Rendering"))
	}

	// Create stages
	layoutStage := layout.NewStage()
	newEncodeStage := func(out io.Writer, oc orchestrator.Config) pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult] {
		muxer := mp4muxer.New(out, oc.Render.FPS, log)
		return encode.NewStage(codec, muxer, renderer, sink, log, encode.Options{
			DebugEvery: s.debugEvery,
			Progress:   progress,
		})
	}

	orch := orchestrator.New(layoutStage, newEncodeStage, fs, log)
	orchConfig := cfg.ToOrchestratorConfig(s.output, s.outDir, encInfo.Encoder)

	// Run pipeline
	result, err := orch.Run(ctx, orchConfig)
	if err != nil {
		return err
	}

	if c.IsSet("summary") {
		path := c.Path("summary")
		if err := writeSummary(fs, path, orchConfig, result); err != nil {
			log.Warn(l10n.F("Failed to write summary: %v", err))
		} else {
			log.Info(l10n.F("Summary saved to %s", path))
		}
	}

	fmt.Fprintln(c.App.Writer, result.OutputPath)
	return nil
}

// writeSummary writes a Markdown summary of a finished render.
func writeSummary(fs ports.FileSystem, path string, oc orchestrator.Config, result orchestrator.RunResult) error {
	summary := summarizer.NewBuilder().
		WithSession(result.SessionID).
		WithSettings(summarizer.Settings{
			Kind:        string(oc.Request.Kind),
			Direction:   oc.Request.Direction.String(),
			StartValue:  oc.Request.StartValue,
			DurationSec: oc.Request.DurationSec,
			Style:       string(oc.Render.Style),
			Skin:        string(oc.Render.Skin),
			Width:       result.Width,
			Height:      result.Height,
			FPS:         result.FPS,
			Encoder:     result.Encoder,
			Brand:       oc.Render.BrandText,
		}).
		WithVideo(summarizer.VideoInfo{
			Path:        result.OutputPath,
			FrameCount:  result.FrameCount,
			SampleCount: result.SampleCount,
			Keyframes:   result.Keyframes,
			DurationMs:  result.DurationMs,
			FileSize:    result.FileSize,
			BitRate:     result.BitRate,
			ElapsedMs:   int(result.Elapsed.Milliseconds()),
		}).
		Build()

	formatter := summarizer.NewMarkdownFormatter(
		summarizer.WithTranslator(func(key string) string { return l10n.T(key) }),
		summarizer.WithVersion(version),
	)
	return summarizer.NewWriter(formatter, fs).Write(path, summary)
}
