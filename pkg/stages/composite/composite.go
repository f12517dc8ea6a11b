// Package composite implements the frame composition stage.
package composite

import (
	"errors"
	"math"

	"github.com/user/timerreel/pkg/pipeline"
	"github.com/user/timerreel/pkg/ports"
	"github.com/user/timerreel/pkg/stages/counter"
	"github.com/user/timerreel/pkg/stages/particles"
)

// ErrNilCanvas is returned when Draw is called without a canvas.
var ErrNilCanvas = errors.New("composite: nil canvas")

// Stage draws complete frames: background, skin, brand label and the styled counter.
// It owns the particle field of the water style, so one Stage serves exactly one render.
type Stage struct {
	config pipeline.RenderConfig
	layout pipeline.LayoutResult
	field  *particles.Field
	logger ports.Logger
}

// NewStage creates a new composite stage. A nil field disables water bubbles.
func NewStage(config pipeline.RenderConfig, layout pipeline.LayoutResult, field *particles.Field, logger ports.Logger) *Stage {
	s := &Stage{
		config: config,
		layout: layout,
		field:  field,
		logger: logger.WithComponent("composite"),
	}
	s.logger.Debug("Compositor ready: style=%s skin=%s counter=%.1fpx brand=%.1fpx",
		config.Style, config.Skin, layout.CounterSize, layout.BrandSize)
	return s
}

// Draw paints one frame showing value at the given animation time.
func (s *Stage) Draw(canvas ports.Canvas, value int, clock pipeline.AnimationClock) error {
	if canvas == nil {
		return ErrNilCanvas
	}

	canvas.Clear(s.config.BackgroundColor)
	drawSkin(canvas, s.config.Skin, s.layout.Skin)
	s.drawBrand(canvas, clock)

	text := counter.FormatHMS(value)
	x := s.layout.CounterAnchor.X
	switch s.config.Style {
	case pipeline.StylePlain:
		s.drawPlain(canvas, text, x)
	case pipeline.StyleNeon:
		s.drawNeon(canvas, text, x)
	case pipeline.StyleFire:
		s.drawFire(canvas, text, x)
	case pipeline.StyleWater:
		s.drawWater(canvas, text, x, clock.WaterT)
	default:
		s.drawVideo(canvas, text, x, clock.StyleT)
	}
	return nil
}

// BrandPosition returns the brand label anchor and baseline for a clock.
func (s *Stage) BrandPosition(clock pipeline.AnimationClock) (float64, float64) {
	w := float64(s.layout.Canvas.Width)
	h := float64(s.layout.Canvas.Height)
	x := w * s.config.BrandRelX
	y := h * s.config.BrandRelY
	if s.config.BrandAnimated {
		amp := s.config.BrandAmplitude * math.Min(w, h)
		x += amp * math.Sin(clock.BrandT)
		y += amp * math.Cos(clock.BrandT*1.3)
	}
	return x, y
}

func (s *Stage) drawBrand(canvas ports.Canvas, clock pipeline.AnimationClock) {
	label := s.config.BrandText
	size := s.layout.BrandSize
	if label == "" || size <= 0 {
		return
	}
	x, y := s.BrandPosition(clock)

	if !s.config.BrandAnimated {
		canvas.DrawText(label, x, y, ports.TextStyle{
			Face:  ports.FaceBrand,
			Size:  size,
			Align: ports.AlignCenter,
			Mode:  ports.TextFill,
			Paint: ports.Solid(argb(64, 255, 255, 255)),
		})
		return
	}

	hue := clock.WaterT * 0.11
	canvas.DrawText(label, x, y, ports.TextStyle{
		Face:        ports.FaceBrand,
		Size:        size,
		Align:       ports.AlignCenter,
		Mode:        ports.TextStroke,
		StrokeWidth: size * 0.10,
		BlurRadius:  size * 0.25,
		Paint: ports.LinearGradient(x-size, y-size*0.6, x+size, y+size*0.6,
			ports.ColorStop{Offset: 0, Color: hsv(hue)},
			ports.ColorStop{Offset: 1, Color: hsv(hue + 0.5)},
		),
	})
	canvas.DrawText(label, x, y, whiteLine(ports.FaceBrand, size))
}

// whiteLine is the thin white core stroke drawn over glow passes.
func whiteLine(face ports.FontFace, size float64) ports.TextStyle {
	return ports.TextStyle{
		Face:        face,
		Size:        size,
		Align:       ports.AlignCenter,
		Mode:        ports.TextStroke,
		StrokeWidth: math.Max(2, size*0.02),
		Paint:       ports.Solid(white),
	}
}
