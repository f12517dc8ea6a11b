package ggrenderer

import (
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/user/timerreel/pkg/ports"
)

var (
	counterFont = mustParse(gomonobold.TTF)
	brandFont   = mustParse(gobold.TTF)
)

func mustParse(ttf []byte) *sfnt.Font {
	f, err := sfnt.Parse(ttf)
	if err != nil {
		panic("ggrenderer: parse embedded font: " + err.Error())
	}
	return f
}

func faceFont(face ports.FontFace) *sfnt.Font {
	if face == ports.FaceBrand {
		return brandFont
	}
	return counterFont
}

// pathSink receives outline segments. *gg.Context satisfies it.
type pathSink interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(x1, y1, x2, y2 float64)
	CubicTo(x1, y1, x2, y2, x3, y3 float64)
	ClosePath()
}

type placedGlyph struct {
	index sfnt.GlyphIndex
	x     float64
}

// layoutRun places the glyphs of text from x=0 and returns the total advance.
func (c *Canvas) layoutRun(f *sfnt.Font, text string, ppem fixed.Int26_6) ([]placedGlyph, float64) {
	glyphs := make([]placedGlyph, 0, len(text))
	var pen fixed.Int26_6
	prev := sfnt.GlyphIndex(0)
	for i, r := range text {
		idx, err := f.GlyphIndex(&c.buf, r)
		if err != nil {
			continue
		}
		if i > 0 && prev != 0 && idx != 0 {
			if k, err := f.Kern(&c.buf, prev, idx, ppem, font.HintingNone); err == nil {
				pen += k
			}
		}
		glyphs = append(glyphs, placedGlyph{index: idx, x: toFloat(pen)})
		adv, err := f.GlyphAdvance(&c.buf, idx, ppem, font.HintingNone)
		if err == nil {
			pen += adv
		}
		prev = idx
	}
	return glyphs, toFloat(pen)
}

// outline emits the glyph outlines of text into dst. x is the alignment
// anchor and y the baseline.
func (c *Canvas) outline(dst pathSink, text string, x, y float64, style ports.TextStyle) {
	if text == "" || style.Size <= 0 {
		return
	}
	f := faceFont(style.Face)
	ppem := fixed.Int26_6(math.Round(style.Size * 64))
	glyphs, advance := c.layoutRun(f, text, ppem)

	switch style.Align {
	case ports.AlignCenter:
		x -= advance / 2
	case ports.AlignRight:
		x -= advance
	}

	for _, g := range glyphs {
		segs, err := f.LoadGlyph(&c.buf, g.index, ppem, nil)
		if err != nil {
			continue
		}
		ox := x + g.x
		open := false
		for _, s := range segs {
			switch s.Op {
			case sfnt.SegmentOpMoveTo:
				if open {
					dst.ClosePath()
				}
				dst.MoveTo(ox+toFloat(s.Args[0].X), y+toFloat(s.Args[0].Y))
				open = true
			case sfnt.SegmentOpLineTo:
				dst.LineTo(ox+toFloat(s.Args[0].X), y+toFloat(s.Args[0].Y))
			case sfnt.SegmentOpQuadTo:
				dst.QuadraticTo(
					ox+toFloat(s.Args[0].X), y+toFloat(s.Args[0].Y),
					ox+toFloat(s.Args[1].X), y+toFloat(s.Args[1].Y),
				)
			case sfnt.SegmentOpCubeTo:
				dst.CubicTo(
					ox+toFloat(s.Args[0].X), y+toFloat(s.Args[0].Y),
					ox+toFloat(s.Args[1].X), y+toFloat(s.Args[1].Y),
					ox+toFloat(s.Args[2].X), y+toFloat(s.Args[2].Y),
				)
			}
		}
		if open {
			dst.ClosePath()
		}
	}
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// boundsPath accumulates the extent of every point it receives.
// Control points are included, so the box can be slightly generous.
type boundsPath struct {
	valid                  bool
	minX, minY, maxX, maxY float64
}

func (b *boundsPath) add(x, y float64) {
	if !b.valid {
		b.minX, b.maxX, b.minY, b.maxY = x, x, y, y
		b.valid = true
		return
	}
	b.minX = math.Min(b.minX, x)
	b.maxX = math.Max(b.maxX, x)
	b.minY = math.Min(b.minY, y)
	b.maxY = math.Max(b.maxY, y)
}

func (b *boundsPath) MoveTo(x, y float64) { b.add(x, y) }
func (b *boundsPath) LineTo(x, y float64) { b.add(x, y) }

func (b *boundsPath) QuadraticTo(x1, y1, x2, y2 float64) {
	b.add(x1, y1)
	b.add(x2, y2)
}

func (b *boundsPath) CubicTo(x1, y1, x2, y2, x3, y3 float64) {
	b.add(x1, y1)
	b.add(x2, y2)
	b.add(x3, y3)
}

func (b *boundsPath) ClosePath() {}
