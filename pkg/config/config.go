// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/user/timerreel/pkg/pipeline"
)

// Config represents the full configuration file for timerreel.
type Config struct {
	// Output
	OutputPath string `yaml:"output"`
	OutputDir  string `yaml:"out_dir"`

	// Video
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`

	// Appearance
	Style       string      `yaml:"style"`
	Skin        string      `yaml:"skin"`
	Colors      ColorConfig `yaml:"colors"`
	StrokeWidth float64     `yaml:"stroke_width"`

	// Effects
	Water WaterConfig `yaml:"water"`
	Brand BrandConfig `yaml:"brand"`

	// Encoding
	Encoder    string `yaml:"encoder"`
	Software   bool   `yaml:"software"`
	FFmpegPath string `yaml:"ffmpeg_path"`

	// Debug
	Debug      bool   `yaml:"debug"`
	DebugDir   string `yaml:"debug_dir"`
	DebugEvery int    `yaml:"debug_every"`
}

// ColorConfig holds the hex colours of a render.
type ColorConfig struct {
	Digit      string `yaml:"digit"`
	Background string `yaml:"background"`
	Stroke     string `yaml:"stroke"`
}

// WaterConfig holds the settings of the water style.
type WaterConfig struct {
	InnerWaves    bool    `yaml:"inner_waves"`
	WaveIntensity float64 `yaml:"wave_intensity"`
	BubbleSpeed   float64 `yaml:"bubble_speed"`
}

// BrandConfig holds the settings of the brand label.
type BrandConfig struct {
	Text      string  `yaml:"text"`
	Animated  bool    `yaml:"animated"`
	Speed     float64 `yaml:"speed"`
	Amplitude float64 `yaml:"amplitude"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		// Video
		Width:  1920,
		Height: 1080,
		FPS:    60,

		// Appearance
		Style: string(pipeline.StyleVideo),
		Skin:  string(pipeline.SkinMinimal),
		Colors: ColorConfig{
			Digit:      "#4EF3FF",
			Background: "#000000",
			Stroke:     "#000000",
		},
		StrokeWidth: 6,

		// Effects
		Water: WaterConfig{
			InnerWaves:    true,
			WaveIntensity: 1.2,
			BubbleSpeed:   1.5,
		},
		Brand: BrandConfig{
			Text:      pipeline.DefaultBrandText,
			Animated:  true,
			Speed:     1.4,
			Amplitude: 0.02,
			X:         0.5,
			Y:         0.17,
		},

		// Debug
		DebugDir:   "./debug",
		DebugEvery: 60,
	}
}

// LoadFromFile loads configuration from a YAML file. Keys absent from the
// file keep their default values.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ParseColor parses "#RRGGBB" or "#AARRGGBB" into a color.Color. The
// leading '#' is optional. Malformed input yields opaque black.
func ParseColor(hex string) color.Color {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")

	var a uint8 = 0xFF
	switch len(hex) {
	case 6:
	case 8:
		a = hexByte(hex[0], hex[1])
		hex = hex[2:]
	default:
		return color.Black
	}

	return color.NRGBA{
		R: hexByte(hex[0], hex[1]),
		G: hexByte(hex[2], hex[3]),
		B: hexByte(hex[4], hex[5]),
		A: a,
	}
}

// FormatColor renders a colour as "#RRGGBB", or "#AARRGGBB" when it is
// not opaque.
func FormatColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xFF {
		return fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", n.A, n.R, n.G, n.B)
}

func hexByte(hi, lo byte) uint8 {
	return hexValue(hi)<<4 | hexValue(lo)
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

// ToRenderConfig converts Config to pipeline.RenderConfig. Values are not
// clamped here.
func (c Config) ToRenderConfig() pipeline.RenderConfig {
	return pipeline.RenderConfig{
		Width:  c.Width,
		Height: c.Height,
		FPS:    c.FPS,

		Style: pipeline.ParseStyle(c.Style),
		Skin:  pipeline.ParseSkin(c.Skin),

		DigitColor:      ParseColor(c.Colors.Digit),
		BackgroundColor: ParseColor(c.Colors.Background),
		StrokeColor:     ParseColor(c.Colors.Stroke),
		StrokeWidth:     c.StrokeWidth,

		BrandText:      c.Brand.Text,
		BrandAnimated:  c.Brand.Animated,
		BrandSpeed:     c.Brand.Speed,
		BrandAmplitude: c.Brand.Amplitude,
		BrandRelX:      c.Brand.X,
		BrandRelY:      c.Brand.Y,

		WaterInnerWaves: c.Water.InnerWaves,
		WaveIntensity:   c.Water.WaveIntensity,
		BubbleSpeed:     c.Water.BubbleSpeed,
	}
}
