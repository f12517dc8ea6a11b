package ggrenderer

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/user/timerreel/pkg/ports"
)

// BlurSigma converts a blur radius to a Gaussian standard deviation.
func BlurSigma(radius float64) float64 {
	if radius <= 0 {
		return 0
	}
	return 0.57735*radius + 0.5
}

// drawBlurred renders a text pass into an offscreen layer covering the text
// bounds plus the blur spread, blurs it and composites it over the canvas.
func (c *Canvas) drawBlurred(text string, x, y float64, style ports.TextStyle) {
	sigma := BlurSigma(style.BlurRadius)
	b := c.TextBounds(text, x, y, style)

	margin := math.Ceil(3*sigma + style.StrokeWidth)
	x0 := int(math.Floor(b.Left - margin))
	y0 := int(math.Floor(b.Top - margin))
	x1 := int(math.Ceil(b.Right + margin))
	y1 := int(math.Ceil(b.Bottom + margin))

	area := image.Rect(x0, y0, x1, y1).Intersect(c.dc.Image().Bounds())
	if area.Empty() {
		return
	}

	layer := gg.NewContext(area.Dx(), area.Dy())
	layer.SetLineJoin(gg.LineJoinRound)
	layer.SetLineCap(gg.LineCapRound)

	dx, dy := float64(-area.Min.X), float64(-area.Min.Y)
	pass := style
	pass.BlurRadius = 0
	pass.Paint = shiftPaint(style.Paint, dx, dy)
	c.paintText(layer, text, x+dx, y+dy, pass)

	blurred := imaging.Blur(layer.Image(), sigma)
	c.dc.DrawImage(blurred, area.Min.X, area.Min.Y)
}

// shiftPaint translates gradient geometry into a layer's coordinate space.
func shiftPaint(p ports.Paint, dx, dy float64) ports.Paint {
	if p.Gradient == nil {
		return p
	}
	g := *p.Gradient
	g.X0 += dx
	g.Y0 += dy
	g.X1 += dx
	g.Y1 += dy
	return ports.Paint{Color: p.Color, Gradient: &g}
}
