// Package layout implements the frame geometry stage.
package layout

import (
	"context"
	"math"

	"github.com/user/timerreel/pkg/pipeline"
	"github.com/user/timerreel/pkg/ports"
)

// Geometry ratios relative to the frame.
const (
	counterSizeRatio   = 0.18
	counterMinSize     = 40.0
	counterAnchorRatio = 0.55
	// baseline sits 0.35/2 of the font size below the anchor
	counterBaselineShift = 0.175
	brandSizeRatio       = 0.09

	skinPadRatio    = 0.04
	skinRadiusRatio = 0.06
	screenInset     = 0.12
	dividerHalf     = 2.0
)

// Stage computes the frame geometry once per render.
// This is a pure function with no external dependencies.
type Stage struct{}

// NewStage creates a new layout stage.
func NewStage() *Stage {
	return &Stage{}
}

// Execute calculates the layout for the given frame size and skin.
func (s *Stage) Execute(ctx context.Context, input pipeline.LayoutInput) (pipeline.LayoutResult, error) {
	return ComputeLayout(input), nil
}

// ComputeLayout performs the layout calculation.
// This is exposed as a standalone function for testing and reuse.
func ComputeLayout(input pipeline.LayoutInput) pipeline.LayoutResult {
	w := float64(input.Width)
	h := float64(input.Height)

	size := math.Max(h*counterSizeRatio, counterMinSize)
	anchor := ports.Point{X: w / 2, Y: h * counterAnchorRatio}

	return pipeline.LayoutResult{
		Canvas:          pipeline.Dimension{Width: input.Width, Height: input.Height},
		CounterSize:     size,
		CounterAnchor:   anchor,
		CounterBaseline: anchor.Y + size*counterBaselineShift,
		BrandSize:       h * brandSizeRatio,
		Skin:            ComputeSkin(input.Skin, w, h),
	}
}

// ComputeSkin returns the panel rectangles for skin on a w x h frame.
func ComputeSkin(skin pipeline.Skin, w, h float64) pipeline.SkinLayout {
	if skin == pipeline.SkinNone || skin == "" {
		return pipeline.SkinLayout{}
	}

	m := math.Min(w, h)
	pad := m * skinPadRatio
	r := m * skinRadiusRatio

	sl := pipeline.SkinLayout{
		Visible:     true,
		Panel:       pipeline.RectF{Left: pad, Top: pad, Right: w - pad, Bottom: h - pad},
		PanelRadius: r,
	}

	switch skin {
	case pipeline.SkinLCD, pipeline.SkinGlass:
		sl.HasScreen = true
		sl.Screen = sl.Panel.Inset(m * screenInset)
		sl.ScreenRadius = r * 0.7
	case pipeline.SkinFlip:
		sl.HasScreen = true
		sl.Screen = sl.Panel.Inset(m * screenInset)
		sl.ScreenRadius = r * 0.8
		cy := sl.Screen.CenterY()
		sl.HasDivider = true
		sl.Divider = pipeline.RectF{
			Left:   sl.Screen.Left,
			Top:    cy - dividerHalf,
			Right:  sl.Screen.Right,
			Bottom: cy + dividerHalf,
		}
	}

	return sl
}

// Ensure Stage implements pipeline.Stage
var _ pipeline.Stage[pipeline.LayoutInput, pipeline.LayoutResult] = (*Stage)(nil)
