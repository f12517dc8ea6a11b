package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts image processing operations.
type Renderer interface {
	// WrapCanvas returns a canvas that draws directly into img.
	WrapCanvas(img *image.RGBA) Canvas

	// CreateCanvas creates a new drawing canvas with the specified dimensions and background color.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)
}

// Canvas provides the drawing operations used to composite a frame.
// Coordinates are in pixels with the origin at the top left.
type Canvas interface {
	// Clear fills the whole canvas with c.
	Clear(c color.Color)

	// FillRect fills a rectangle.
	FillRect(x, y, w, h float64, p Paint)

	// FillRoundedRect fills a rectangle with rounded corners.
	FillRoundedRect(x, y, w, h, radius float64, p Paint)

	// FillCircle fills a circle.
	FillCircle(cx, cy, r float64, p Paint)

	// DrawPolyline strokes a connected line through points.
	DrawPolyline(points []Point, c color.Color, width float64)

	// DrawText renders text with its horizontal anchor at x and its baseline at y.
	DrawText(text string, x, y float64, style TextStyle)

	// TextBounds returns the ink bounds of text as DrawText would draw it.
	TextBounds(text string, x, y float64, style TextStyle) Bounds

	// ClipText restricts subsequent drawing to the outline of text until ResetClip.
	ClipText(text string, x, y float64, style TextStyle)

	// ResetClip removes any clip region.
	ResetClip()

	// ToImage returns the canvas as an image.Image.
	ToImage() image.Image
}

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// Bounds is an axis-aligned box.
type Bounds struct {
	Left, Top, Right, Bottom float64
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.Right - b.Left }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.Bottom - b.Top }

// Offset returns b translated by (dx, dy).
func (b Bounds) Offset(dx, dy float64) Bounds {
	return Bounds{Left: b.Left + dx, Top: b.Top + dy, Right: b.Right + dx, Bottom: b.Bottom + dy}
}

// Paint is either a solid colour or a gradient.
// A non-nil Gradient takes precedence over Color.
type Paint struct {
	Color    color.Color
	Gradient *Gradient
}

// Solid returns a solid colour paint.
func Solid(c color.Color) Paint {
	return Paint{Color: c}
}

// GradientKind selects the gradient geometry.
type GradientKind int

const (
	// GradientLinear interpolates from (X0,Y0) to (X1,Y1).
	GradientLinear GradientKind = iota
	// GradientRadial interpolates outward from (X0,Y0) over Radius.
	GradientRadial
)

// ColorStop is one gradient stop; Offset is in [0,1].
type ColorStop struct {
	Offset float64
	Color  color.Color
}

// Gradient describes a linear or radial colour ramp.
type Gradient struct {
	Kind   GradientKind
	X0, Y0 float64
	X1, Y1 float64
	Radius float64
	Stops  []ColorStop
}

// LinearGradient builds a linear gradient paint.
func LinearGradient(x0, y0, x1, y1 float64, stops ...ColorStop) Paint {
	return Paint{Gradient: &Gradient{Kind: GradientLinear, X0: x0, Y0: y0, X1: x1, Y1: y1, Stops: stops}}
}

// RadialGradient builds a radial gradient paint.
func RadialGradient(cx, cy, radius float64, stops ...ColorStop) Paint {
	return Paint{Gradient: &Gradient{Kind: GradientRadial, X0: cx, Y0: cy, Radius: radius, Stops: stops}}
}

// FontFace selects one of the embedded typefaces.
type FontFace int

const (
	// FaceCounter is a bold monospaced face for the counter digits.
	FaceCounter FontFace = iota
	// FaceBrand is a bold proportional face for the brand label.
	FaceBrand
)

// TextMode selects whether glyphs are filled or outlined.
type TextMode int

const (
	TextFill TextMode = iota
	TextStroke
)

// TextStyle defines text rendering properties. It is a value; build a new one per pass.
type TextStyle struct {
	Face        FontFace
	Size        float64
	Align       TextAlign
	Mode        TextMode
	StrokeWidth float64 // used when Mode is TextStroke
	Paint       Paint
	BlurRadius  float64 // >0 renders the pass through a Gaussian blur
}

// TextAlign specifies text alignment.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
)
