// Package timerreel provides a high-level API for rendering timer and
// stopwatch videos.
package timerreel

import (
	"image/color"

	"github.com/user/timerreel/pkg/config"
	"github.com/user/timerreel/pkg/orchestrator"
	"github.com/user/timerreel/pkg/pipeline"
)

// Accepted ranges. Out of range values are clamped by Build.
const (
	MinFPS    = 30
	MaxFPS    = 120
	MinWidth  = 640
	MaxWidth  = 3840
	MinHeight = 360
	MaxHeight = 2160

	MaxHours   = 99
	MaxMinutes = 59
	MaxSeconds = 59

	MinBrandX = 0.02
	MaxBrandX = 0.98
	MinBrandY = 0.05
	MaxBrandY = 0.95
)

// Config represents the configuration for one timer or stopwatch video.
type Config struct {
	Render pipeline.RenderConfig
	Kind   pipeline.Kind

	// Timer
	Hours   int
	Minutes int
	Seconds int
	Forward bool // count up from zero instead of down to zero

	// Stopwatch
	StopwatchSec int
}

// TotalSec returns the length of the video in seconds.
func (c Config) TotalSec() int {
	if c.Kind == pipeline.KindStopwatch {
		return c.StopwatchSec
	}
	return c.Hours*3600 + c.Minutes*60 + c.Seconds
}

// Request returns the render request described by the config.
//
// A timer counts down from its total unless Forward is set; a stopwatch
// always counts up from zero.
func (c Config) Request() pipeline.RenderRequest {
	total := c.TotalSec()
	req := pipeline.RenderRequest{
		Kind:        c.Kind,
		DurationSec: total,
	}
	switch {
	case c.Kind == pipeline.KindStopwatch, c.Forward:
		req.StartValue = 0
		req.Direction = pipeline.DirectionUp
	default:
		req.StartValue = total
		req.Direction = pipeline.DirectionDown
	}
	return req
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig(outputPath, outputDir, encoder string) orchestrator.Config {
	return orchestrator.Config{
		Render:     c.Render,
		Request:    c.Request(),
		OutputPath: outputPath,
		OutputDir:  outputDir,
		Encoder:    encoder,
	}
}

// ConfigBuilder provides a fluent interface for building Config.
type ConfigBuilder struct {
	config Config
}

// NewTimerBuilder creates a ConfigBuilder for a one minute countdown.
func NewTimerBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: Config{
			Render:       pipeline.DefaultRenderConfig(),
			Kind:         pipeline.KindTimer,
			Minutes:      1,
			StopwatchSec: 30,
		},
	}
}

// NewStopwatchBuilder creates a ConfigBuilder for a 30 second stopwatch.
func NewStopwatchBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: Config{
			Render:       pipeline.DefaultRenderConfig(),
			Kind:         pipeline.KindStopwatch,
			StopwatchSec: 30,
		},
	}
}

// Build returns the final Config, clamping every value into its range.
func (b *ConfigBuilder) Build() Config {
	cfg := b.config
	r := &cfg.Render

	r.FPS = clamp(r.FPS, MinFPS, MaxFPS)
	// H.264 with 4:2:0 chroma needs even dimensions; the limits are even,
	// so rounding down stays in range.
	r.Width = clamp(r.Width, MinWidth, MaxWidth) &^ 1
	r.Height = clamp(r.Height, MinHeight, MaxHeight) &^ 1
	r.BrandRelX = clampF(r.BrandRelX, MinBrandX, MaxBrandX)
	r.BrandRelY = clampF(r.BrandRelY, MinBrandY, MaxBrandY)
	if r.StrokeWidth < 0 {
		r.StrokeWidth = 0
	}

	cfg.Hours = clamp(cfg.Hours, 0, MaxHours)
	cfg.Minutes = clamp(cfg.Minutes, 0, MaxMinutes)
	cfg.Seconds = clamp(cfg.Seconds, 0, MaxSeconds)
	if cfg.StopwatchSec < 1 {
		cfg.StopwatchSec = 1
	}

	return cfg
}

// FromFile applies the render settings of a configuration file.
func (b *ConfigBuilder) FromFile(c config.Config) *ConfigBuilder {
	b.config.Render = c.ToRenderConfig()
	return b
}

// WithDuration sets the timer length.
// Hours are forced into [0,99], minutes and seconds into [0,59].
func (b *ConfigBuilder) WithDuration(hours, minutes, seconds int) *ConfigBuilder {
	b.config.Hours = hours
	b.config.Minutes = minutes
	b.config.Seconds = seconds
	return b
}

// WithForward makes a timer count up from zero.
func (b *ConfigBuilder) WithForward(forward bool) *ConfigBuilder {
	b.config.Forward = forward
	return b
}

// WithStopwatchDuration sets the stopwatch length in seconds.
// Values below 1 will be forced to 1.
func (b *ConfigBuilder) WithStopwatchDuration(sec int) *ConfigBuilder {
	b.config.StopwatchSec = sec
	return b
}

// WithSize sets the output video size.
func (b *ConfigBuilder) WithSize(width, height int) *ConfigBuilder {
	b.config.Render.Width = width
	b.config.Render.Height = height
	return b
}

// WithFPS sets the frame rate.
func (b *ConfigBuilder) WithFPS(fps int) *ConfigBuilder {
	b.config.Render.FPS = fps
	return b
}

// WithStyle sets the counter style.
func (b *ConfigBuilder) WithStyle(style pipeline.Style) *ConfigBuilder {
	b.config.Render.Style = style
	return b
}

// WithSkin sets the background skin.
func (b *ConfigBuilder) WithSkin(skin pipeline.Skin) *ConfigBuilder {
	b.config.Render.Skin = skin
	return b
}

// WithDigitColor sets the counter colour.
func (b *ConfigBuilder) WithDigitColor(c color.Color) *ConfigBuilder {
	b.config.Render.DigitColor = c
	return b
}

// WithBackgroundColor sets the canvas background colour.
func (b *ConfigBuilder) WithBackgroundColor(c color.Color) *ConfigBuilder {
	b.config.Render.BackgroundColor = c
	return b
}

// WithStroke sets the outline colour and width of the plain style.
func (b *ConfigBuilder) WithStroke(c color.Color, width float64) *ConfigBuilder {
	b.config.Render.StrokeColor = c
	b.config.Render.StrokeWidth = width
	return b
}

// WithBrand sets the brand label. An empty text disables it.
func (b *ConfigBuilder) WithBrand(text string, animated bool) *ConfigBuilder {
	b.config.Render.BrandText = text
	b.config.Render.BrandAnimated = animated
	return b
}

// WithBrandMotion sets the speed and amplitude of the brand animation.
func (b *ConfigBuilder) WithBrandMotion(speed, amplitude float64) *ConfigBuilder {
	b.config.Render.BrandSpeed = speed
	b.config.Render.BrandAmplitude = amplitude
	return b
}

// WithBrandPosition sets the label position relative to the frame.
func (b *ConfigBuilder) WithBrandPosition(x, y float64) *ConfigBuilder {
	b.config.Render.BrandRelX = x
	b.config.Render.BrandRelY = y
	return b
}

// WithWater sets the water style parameters.
func (b *ConfigBuilder) WithWater(innerWaves bool, intensity, bubbleSpeed float64) *ConfigBuilder {
	b.config.Render.WaterInnerWaves = innerWaves
	b.config.Render.WaveIntensity = intensity
	b.config.Render.BubbleSpeed = bubbleSpeed
	return b
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func clampF(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
