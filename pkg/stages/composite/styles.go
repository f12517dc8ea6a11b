package composite

import (
	"math"

	"github.com/user/timerreel/pkg/pipeline"
	"github.com/user/timerreel/pkg/ports"
)

const waveStep = 2

func (s *Stage) counterStyle() ports.TextStyle {
	return ports.TextStyle{
		Face:  ports.FaceCounter,
		Size:  s.layout.CounterSize,
		Align: ports.AlignCenter,
	}
}

func (s *Stage) drawPlain(canvas ports.Canvas, text string, x float64) {
	y := s.layout.CounterBaseline
	if s.config.StrokeWidth > 0 {
		outline := s.counterStyle()
		outline.Mode = ports.TextStroke
		outline.StrokeWidth = s.config.StrokeWidth
		outline.Paint = ports.Solid(s.config.StrokeColor)
		canvas.DrawText(text, x, y, outline)
	}
	fill := s.counterStyle()
	fill.Paint = ports.Solid(s.config.DigitColor)
	canvas.DrawText(text, x, y, fill)
}

func (s *Stage) drawNeon(canvas ports.Canvas, text string, x float64) {
	size := s.layout.CounterSize
	y := s.layout.CounterBaseline

	glow := s.counterStyle()
	glow.Mode = ports.TextStroke
	glow.StrokeWidth = size * 0.10
	glow.BlurRadius = size * 0.25
	glow.Paint = ports.Solid(s.config.DigitColor)
	canvas.DrawText(text, x, y, glow)

	canvas.DrawText(text, x, y, whiteLine(ports.FaceCounter, size))
}

func (s *Stage) drawFire(canvas ports.Canvas, text string, x float64) {
	size := s.layout.CounterSize
	y := s.layout.CounterBaseline
	cy := s.layout.CounterAnchor.Y

	glow := s.counterStyle()
	glow.Mode = ports.TextStroke
	glow.StrokeWidth = size * 0.10
	glow.BlurRadius = size * 0.18
	glow.Paint = ports.Solid(rgb(255, 140, 0))
	canvas.DrawText(text, x, y, glow)

	fill := s.counterStyle()
	fill.Paint = ports.LinearGradient(x, cy-size*0.6, x, cy+size*0.6,
		ports.ColorStop{Offset: 0, Color: rgb(255, 247, 204)},
		ports.ColorStop{Offset: 0.45, Color: rgb(255, 212, 90)},
		ports.ColorStop{Offset: 0.8, Color: rgb(255, 154, 31)},
		ports.ColorStop{Offset: 1, Color: rgb(255, 77, 0)},
	)
	canvas.DrawText(text, x, y, fill)
}

func (s *Stage) drawWater(canvas ports.Canvas, text string, x, t float64) {
	size := s.layout.CounterSize
	y := s.layout.CounterBaseline
	style := s.counterStyle()
	b := canvas.TextBounds(text, x, y, style)

	canvas.ClipText(text, x, y, style)
	canvas.FillRect(b.Left, b.Top, b.Width(), b.Height(), ports.LinearGradient(0, b.Top, 0, b.Bottom,
		ports.ColorStop{Offset: 0, Color: rgb(168, 227, 255)},
		ports.ColorStop{Offset: 1, Color: rgb(11, 94, 168)},
	))

	if s.config.WaterInnerWaves && b.Width() > 0 {
		canvas.DrawPolyline(WavePoints(b, size, s.config.WaveIntensity, t), argb(32, 255, 255, 255), 1)
	}

	if s.field != nil {
		region := pipeline.RectF{Left: b.Left, Top: b.Top, Right: b.Right, Bottom: b.Bottom}
		s.field.Advance(region, s.config.BubbleSpeed, t)
		for _, p := range s.field.Particles() {
			canvas.FillCircle(p.X, p.Y, p.Radius, ports.RadialGradient(
				p.X-p.Radius*0.35, p.Y-p.Radius*0.35, p.Radius*3,
				ports.ColorStop{Offset: 0, Color: white},
				ports.ColorStop{Offset: 1, Color: transparent},
			))
		}
	}
	canvas.ResetClip()

	outline := s.counterStyle()
	outline.Mode = ports.TextStroke
	outline.StrokeWidth = math.Max(2, size*0.02)
	outline.Paint = ports.Solid(argb(190, 0, 0, 0))
	canvas.DrawText(text, x, y, outline)
}

// WavePoints samples the inner wave line across the text bounds in 2px steps.
func WavePoints(b ports.Bounds, size, intensity, t float64) []ports.Point {
	amp := size * 0.04 * intensity
	k := 2 * math.Pi / (b.Width() * 0.9)
	baseY := (b.Top + b.Bottom) / 2

	points := []ports.Point{{X: b.Left, Y: baseY}}
	for xx := int(b.Left); xx <= int(b.Right); xx += waveStep {
		fx := float64(xx)
		points = append(points, ports.Point{X: fx, Y: baseY + amp*math.Sin(k*fx+t*1.8)})
	}
	return points
}

func (s *Stage) drawVideo(canvas ports.Canvas, text string, x, t float64) {
	size := s.layout.CounterSize
	y := s.layout.CounterBaseline
	cy := s.layout.CounterAnchor.Y

	hue := math.Mod(t*40, 360) / 360
	offsets := []float64{0, 0.16, 0.33, 0.5, 0.66, 0.83}
	stops := make([]ports.ColorStop, len(offsets))
	for i, o := range offsets {
		stops[i] = ports.ColorStop{Offset: float64(i) / float64(len(offsets)-1), Color: hsv(hue + o)}
	}

	glow := s.counterStyle()
	glow.Mode = ports.TextStroke
	glow.StrokeWidth = size * 0.10
	glow.BlurRadius = size * 0.30
	glow.Paint = ports.LinearGradient(x-size*0.9, cy-size*0.5, x+size*0.9, cy+size*0.5, stops...)
	canvas.DrawText(text, x, y, glow)

	canvas.DrawText(text, x, y, whiteLine(ports.FaceCounter, size))
}
