package pipeline

import (
	"image/color"

	"github.com/user/timerreel/pkg/ports"
)

// =============================================================================
// Common Types
// =============================================================================

// Dimension represents width and height.
type Dimension struct {
	Width  int
	Height int
}

// RectF is a rectangle in floating point pixel coordinates.
type RectF struct {
	Left, Top, Right, Bottom float64
}

// Width returns the horizontal extent.
func (r RectF) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent.
func (r RectF) Height() float64 { return r.Bottom - r.Top }

// CenterY returns the vertical centre.
func (r RectF) CenterY() float64 { return (r.Top + r.Bottom) / 2 }

// Inset shrinks the rectangle by d on every side.
func (r RectF) Inset(d float64) RectF {
	return RectF{Left: r.Left + d, Top: r.Top + d, Right: r.Right - d, Bottom: r.Bottom - d}
}

// =============================================================================
// Render Settings
// =============================================================================

// Style selects how the counter text is drawn.
type Style string

const (
	StylePlain Style = "plain"
	StyleNeon  Style = "neon"
	StyleFire  Style = "fire"
	StyleWater Style = "water"
	StyleVideo Style = "video"
)

// Styles lists every supported style.
var Styles = []Style{StylePlain, StyleNeon, StyleFire, StyleWater, StyleVideo}

// ParseStyle parses a style name. Unknown names fall back to StyleVideo.
func ParseStyle(s string) Style {
	for _, st := range Styles {
		if string(st) == s {
			return st
		}
	}
	return StyleVideo
}

// Skin selects the decorative panel drawn behind the counter.
type Skin string

const (
	SkinNone    Skin = "none"
	SkinMinimal Skin = "minimal"
	SkinLCD     Skin = "lcd"
	SkinGlass   Skin = "glass"
	SkinRetro   Skin = "retro"
	SkinFlip    Skin = "flip"
)

// Skins lists every supported skin.
var Skins = []Skin{SkinNone, SkinMinimal, SkinLCD, SkinGlass, SkinRetro, SkinFlip}

// ParseSkin parses a skin name. Unknown names fall back to SkinNone.
func ParseSkin(s string) Skin {
	for _, sk := range Skins {
		if string(sk) == s {
			return sk
		}
	}
	return SkinNone
}

// Direction is the counting direction.
type Direction int

const (
	// DirectionDown decrements once per second, flooring at zero.
	DirectionDown Direction = iota
	// DirectionUp increments once per second.
	DirectionUp
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	if d == DirectionUp {
		return "up"
	}
	return "down"
}

// Kind names what is being rendered; it only affects naming and reporting.
type Kind string

const (
	KindTimer     Kind = "timer"
	KindStopwatch Kind = "stopwatch"
)

// RenderConfig holds the visual and timing settings of one render.
// It is immutable for the duration of a render.
type RenderConfig struct {
	Width  int
	Height int
	FPS    int

	Style Style
	Skin  Skin

	DigitColor      color.Color
	BackgroundColor color.Color
	StrokeColor     color.Color
	StrokeWidth     float64

	BrandText      string // empty disables the label
	BrandAnimated  bool
	BrandSpeed     float64
	BrandAmplitude float64
	BrandRelX      float64
	BrandRelY      float64

	WaterInnerWaves bool
	WaveIntensity   float64
	BubbleSpeed     float64
}

// DefaultBrandText is the label drawn when none is configured.
const DefaultBrandText = "KoSerFit"

// DefaultRenderConfig returns RenderConfig with default values.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:           1920,
		Height:          1080,
		FPS:             60,
		Style:           StyleVideo,
		Skin:            SkinMinimal,
		DigitColor:      color.RGBA{R: 0x4E, G: 0xF3, B: 0xFF, A: 0xFF},
		BackgroundColor: color.RGBA{A: 0xFF},
		StrokeColor:     color.RGBA{A: 0xFF},
		StrokeWidth:     6,
		BrandText:       DefaultBrandText,
		BrandAnimated:   true,
		BrandSpeed:      1.4,
		BrandAmplitude:  0.02,
		BrandRelX:       0.5,
		BrandRelY:       0.17,
		WaterInnerWaves: true,
		WaveIntensity:   1.2,
		BubbleSpeed:     1.5,
	}
}

// RenderRequest describes what to count.
type RenderRequest struct {
	Kind        Kind
	DurationSec int
	StartValue  int
	Direction   Direction
}

// FrameCount returns the number of frames a request renders at fps.
// Both endpoints are included.
func (r RenderRequest) FrameCount(fps int) int {
	return r.DurationSec*fps + 1
}

// AnimationClock holds the time accumulators of the animated effects.
type AnimationClock struct {
	StyleT float64
	WaterT float64
	BrandT float64
}

// Tick advances the clock by one frame.
func (c *AnimationClock) Tick(fps int, brandSpeed float64) {
	dt := 1 / float64(fps)
	c.StyleT += dt
	c.WaterT += dt
	c.BrandT += dt * brandSpeed
}

// =============================================================================
// Layout Stage Types
// =============================================================================

// LayoutInput contains parameters for layout calculation.
type LayoutInput struct {
	Width  int
	Height int
	Skin   Skin
}

// LayoutResult contains the frame geometry shared by every frame of a render.
type LayoutResult struct {
	Canvas Dimension

	// CounterSize is the counter font size in pixels.
	CounterSize float64
	// CounterAnchor is the horizontal centre and vertical reference of the counter.
	CounterAnchor ports.Point
	// CounterBaseline is the y of the counter text baseline.
	CounterBaseline float64

	// BrandSize is the brand label font size in pixels.
	BrandSize float64

	Skin SkinLayout
}

// SkinLayout holds the panel rectangles of a skin.
type SkinLayout struct {
	Visible      bool
	Panel        RectF
	PanelRadius  float64
	HasScreen    bool
	Screen       RectF
	ScreenRadius float64
	HasDivider   bool
	Divider      RectF
}

// =============================================================================
// Encode Stage Types
// =============================================================================

// EncodeInput contains parameters for rendering and encoding one video.
type EncodeInput struct {
	Config  RenderConfig
	Request RenderRequest
	Layout  LayoutResult
}

// EncodeResult contains statistics of the encoded video.
type EncodeResult struct {
	FramesRendered int
	SamplesWritten int
	Keyframes      int
	DurationMs     int
	BitRate        int
	Finalized      bool // the container was written completely
}
