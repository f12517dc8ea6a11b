package mocks

import (
	"image"
	"image/color"
	"sync"

	"github.com/user/timerreel/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)

	mu       sync.Mutex
	canvases []*Canvas
}

func (m *Renderer) WrapCanvas(img *image.RGBA) ports.Canvas {
	c := &Canvas{img: img}
	m.mu.Lock()
	m.canvases = append(m.canvases, c)
	m.mu.Unlock()
	return c
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	return m.WrapCanvas(image.NewRGBA(image.Rect(0, 0, width, height)))
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{}, nil
}

// Canvases returns every canvas handed out so far.
func (m *Renderer) Canvases() []*Canvas {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*Canvas(nil), m.canvases...)
}

var _ ports.Renderer = (*Renderer)(nil)

// CanvasOp records one drawing call.
type CanvasOp struct {
	Kind   string // clear, rect, rrect, circle, polyline, text, clip, reset
	Text   string
	X, Y   float64
	W, H   float64
	Color  color.Color
	Paint  ports.Paint
	Style  ports.TextStyle
	Points int
}

// Canvas is a mock implementation of ports.Canvas that records every call.
type Canvas struct {
	img *image.RGBA
	Ops []CanvasOp
}

func (m *Canvas) Clear(c color.Color) {
	m.Ops = append(m.Ops, CanvasOp{Kind: "clear", Color: c})
}

func (m *Canvas) FillRect(x, y, w, h float64, p ports.Paint) {
	m.Ops = append(m.Ops, CanvasOp{Kind: "rect", X: x, Y: y, W: w, H: h, Paint: p})
}

func (m *Canvas) FillRoundedRect(x, y, w, h, radius float64, p ports.Paint) {
	m.Ops = append(m.Ops, CanvasOp{Kind: "rrect", X: x, Y: y, W: w, H: h, Paint: p})
}

func (m *Canvas) FillCircle(cx, cy, r float64, p ports.Paint) {
	m.Ops = append(m.Ops, CanvasOp{Kind: "circle", X: cx, Y: cy, W: r, Paint: p})
}

func (m *Canvas) DrawPolyline(points []ports.Point, c color.Color, width float64) {
	m.Ops = append(m.Ops, CanvasOp{Kind: "polyline", Color: c, Points: len(points)})
}

func (m *Canvas) DrawText(text string, x, y float64, style ports.TextStyle) {
	m.Ops = append(m.Ops, CanvasOp{Kind: "text", Text: text, X: x, Y: y, Style: style, Paint: style.Paint})
}

// TextBounds approximates a monospaced run: 0.6 em per rune, 0.7 em tall.
func (m *Canvas) TextBounds(text string, x, y float64, style ports.TextStyle) ports.Bounds {
	w := float64(len([]rune(text))) * style.Size * 0.6
	left := x
	switch style.Align {
	case ports.AlignCenter:
		left -= w / 2
	case ports.AlignRight:
		left -= w
	}
	return ports.Bounds{Left: left, Top: y - style.Size*0.7, Right: left + w, Bottom: y}
}

func (m *Canvas) ClipText(text string, x, y float64, style ports.TextStyle) {
	m.Ops = append(m.Ops, CanvasOp{Kind: "clip", Text: text, X: x, Y: y, Style: style})
}

func (m *Canvas) ResetClip() {
	m.Ops = append(m.Ops, CanvasOp{Kind: "reset"})
}

func (m *Canvas) ToImage() image.Image {
	if m.img != nil {
		return m.img
	}
	return image.NewRGBA(image.Rect(0, 0, 1, 1))
}

// OpsOfKind returns the recorded operations of one kind.
func (m *Canvas) OpsOfKind(kind string) []CanvasOp {
	var out []CanvasOp
	for _, op := range m.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

var _ ports.Canvas = (*Canvas)(nil)
