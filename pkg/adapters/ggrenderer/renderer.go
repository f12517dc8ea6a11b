// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/sfnt"

	"github.com/user/timerreel/pkg/ports"
)

// Renderer implements ports.Renderer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// WrapCanvas returns a canvas drawing into img.
func (r *Renderer) WrapCanvas(img *image.RGBA) ports.Canvas {
	return newCanvas(gg.NewContextForRGBA(img))
}

// CreateCanvas creates a new drawing canvas.
func (r *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	return newCanvas(dc)
}

// EncodeImage encodes an image to the specified format.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		opts := &jpeg.Options{Quality: quality}
		if err := jpeg.Encode(&buf, img, opts); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas using gg.Context.
type Canvas struct {
	dc  *gg.Context
	buf sfnt.Buffer
}

func newCanvas(dc *gg.Context) *Canvas {
	dc.SetLineJoin(gg.LineJoinRound)
	dc.SetLineCap(gg.LineCapRound)
	return &Canvas{dc: dc}
}

// Clear fills the whole canvas.
func (c *Canvas) Clear(col color.Color) {
	c.dc.SetColor(col)
	c.dc.Clear()
}

// FillRect fills a rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, p ports.Paint) {
	c.dc.DrawRectangle(x, y, w, h)
	c.fill(p)
}

// FillRoundedRect fills a rounded rectangle.
func (c *Canvas) FillRoundedRect(x, y, w, h, radius float64, p ports.Paint) {
	c.dc.DrawRoundedRectangle(x, y, w, h, radius)
	c.fill(p)
}

// FillCircle fills a circle.
func (c *Canvas) FillCircle(cx, cy, r float64, p ports.Paint) {
	c.dc.DrawCircle(cx, cy, r)
	c.fill(p)
}

// DrawPolyline strokes a line through points.
func (c *Canvas) DrawPolyline(points []ports.Point, col color.Color, width float64) {
	if len(points) < 2 {
		return
	}
	c.dc.NewSubPath()
	c.dc.MoveTo(points[0].X, points[0].Y)
	for _, pt := range points[1:] {
		c.dc.LineTo(pt.X, pt.Y)
	}
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
	c.dc.Stroke()
}

// DrawText renders one pass of text.
func (c *Canvas) DrawText(text string, x, y float64, style ports.TextStyle) {
	if text == "" || style.Size <= 0 {
		return
	}
	if style.BlurRadius > 0 {
		c.drawBlurred(text, x, y, style)
		return
	}
	c.paintText(c.dc, text, x, y, style)
}

// TextBounds returns the ink bounds of text.
func (c *Canvas) TextBounds(text string, x, y float64, style ports.TextStyle) ports.Bounds {
	var b boundsPath
	c.outline(&b, text, x, y, style)
	if !b.valid {
		return ports.Bounds{Left: x, Top: y, Right: x, Bottom: y}
	}
	return ports.Bounds{Left: b.minX, Top: b.minY, Right: b.maxX, Bottom: b.maxY}
}

// ClipText clips subsequent drawing to the text outline.
func (c *Canvas) ClipText(text string, x, y float64, style ports.TextStyle) {
	c.dc.NewSubPath()
	c.outline(c.dc, text, x, y, style)
	c.dc.Clip()
}

// ResetClip removes the clip region.
func (c *Canvas) ResetClip() {
	c.dc.ResetClip()
}

// ToImage returns the canvas as an image.Image.
func (c *Canvas) ToImage() image.Image {
	return c.dc.Image()
}

// paintText fills or strokes the text outline on dc.
func (c *Canvas) paintText(dc *gg.Context, text string, x, y float64, style ports.TextStyle) {
	dc.NewSubPath()
	c.outline(dc, text, x, y, style)
	applyPaint(dc, style.Paint, style.Mode == ports.TextStroke)
	if style.Mode == ports.TextStroke {
		dc.SetLineWidth(style.StrokeWidth)
		dc.Stroke()
		return
	}
	dc.Fill()
}

func (c *Canvas) fill(p ports.Paint) {
	applyPaint(c.dc, p, false)
	c.dc.Fill()
}

// applyPaint installs p as the fill or stroke style of dc.
func applyPaint(dc *gg.Context, p ports.Paint, stroke bool) {
	if p.Gradient == nil {
		col := p.Color
		if col == nil {
			col = color.Transparent
		}
		dc.SetColor(col)
		return
	}

	g := p.Gradient
	var grad gg.Gradient
	if g.Kind == ports.GradientRadial {
		grad = gg.NewRadialGradient(g.X0, g.Y0, 0, g.X0, g.Y0, g.Radius)
	} else {
		grad = gg.NewLinearGradient(g.X0, g.Y0, g.X1, g.Y1)
	}
	for _, s := range g.Stops {
		grad.AddColorStop(s.Offset, s.Color)
	}
	if stroke {
		dc.SetStrokeStyle(grad)
	} else {
		dc.SetFillStyle(grad)
	}
}

// Ensure Canvas implements ports.Canvas
var _ ports.Canvas = (*Canvas)(nil)
