package layout

import (
	"context"
	"math"
	"testing"

	"github.com/user/timerreel/pkg/pipeline"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeLayout_FullHD(t *testing.T) {
	result := ComputeLayout(pipeline.LayoutInput{Width: 1920, Height: 1080, Skin: pipeline.SkinMinimal})

	if result.Canvas != (pipeline.Dimension{Width: 1920, Height: 1080}) {
		t.Errorf("canvas: got %+v", result.Canvas)
	}
	if !approx(result.CounterSize, 194.4) {
		t.Errorf("counter size: expected 194.4, got %v", result.CounterSize)
	}
	if !approx(result.CounterAnchor.X, 960) || !approx(result.CounterAnchor.Y, 594) {
		t.Errorf("counter anchor: got %+v", result.CounterAnchor)
	}
	if !approx(result.CounterBaseline, 594+194.4*0.175) {
		t.Errorf("counter baseline: got %v", result.CounterBaseline)
	}
	if !approx(result.BrandSize, 97.2) {
		t.Errorf("brand size: expected 97.2, got %v", result.BrandSize)
	}
}

func TestComputeLayout_MinimumCounterSize(t *testing.T) {
	result := ComputeLayout(pipeline.LayoutInput{Width: 640, Height: 200})
	if result.CounterSize != 40 {
		t.Errorf("expected counter size to floor at 40, got %v", result.CounterSize)
	}
}

func TestComputeSkin(t *testing.T) {
	tests := []struct {
		name         string
		skin         pipeline.Skin
		visible      bool
		hasScreen    bool
		hasDivider   bool
		screenRadius float64
	}{
		{name: "none", skin: pipeline.SkinNone},
		{name: "minimal", skin: pipeline.SkinMinimal, visible: true},
		{name: "retro", skin: pipeline.SkinRetro, visible: true},
		{name: "lcd", skin: pipeline.SkinLCD, visible: true, hasScreen: true, screenRadius: 64.8 * 0.7},
		{name: "glass", skin: pipeline.SkinGlass, visible: true, hasScreen: true, screenRadius: 64.8 * 0.7},
		{name: "flip", skin: pipeline.SkinFlip, visible: true, hasScreen: true, hasDivider: true, screenRadius: 64.8 * 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sl := ComputeSkin(tt.skin, 1920, 1080)
			if sl.Visible != tt.visible {
				t.Fatalf("visible: expected %v, got %v", tt.visible, sl.Visible)
			}
			if !tt.visible {
				return
			}
			want := pipeline.RectF{Left: 43.2, Top: 43.2, Right: 1876.8, Bottom: 1036.8}
			if !approx(sl.Panel.Left, want.Left) || !approx(sl.Panel.Top, want.Top) ||
				!approx(sl.Panel.Right, want.Right) || !approx(sl.Panel.Bottom, want.Bottom) {
				t.Errorf("panel: expected %+v, got %+v", want, sl.Panel)
			}
			if !approx(sl.PanelRadius, 64.8) {
				t.Errorf("panel radius: expected 64.8, got %v", sl.PanelRadius)
			}
			if sl.HasScreen != tt.hasScreen {
				t.Fatalf("screen: expected %v, got %v", tt.hasScreen, sl.HasScreen)
			}
			if tt.hasScreen {
				if !approx(sl.Screen.Left, 43.2+129.6) || !approx(sl.Screen.Bottom, 1036.8-129.6) {
					t.Errorf("screen: got %+v", sl.Screen)
				}
				if !approx(sl.ScreenRadius, tt.screenRadius) {
					t.Errorf("screen radius: expected %v, got %v", tt.screenRadius, sl.ScreenRadius)
				}
			}
			if sl.HasDivider != tt.hasDivider {
				t.Fatalf("divider: expected %v, got %v", tt.hasDivider, sl.HasDivider)
			}
			if tt.hasDivider {
				if !approx(sl.Divider.Height(), 4) || !approx(sl.Divider.CenterY(), sl.Screen.CenterY()) {
					t.Errorf("divider: got %+v", sl.Divider)
				}
			}
		})
	}
}

func TestStage_Execute(t *testing.T) {
	stage := NewStage()
	input := pipeline.LayoutInput{Width: 1280, Height: 720, Skin: pipeline.SkinFlip}

	result, err := stage.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != ComputeLayout(input) {
		t.Error("Execute and ComputeLayout disagree")
	}
}
