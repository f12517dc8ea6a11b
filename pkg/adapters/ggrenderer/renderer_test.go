package ggrenderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/user/timerreel/pkg/ports"
)

func TestRenderer_CreateCanvas(t *testing.T) {
	r := New()

	canvas := r.CreateCanvas(100, 100, color.White)
	if canvas == nil {
		t.Fatal("expected canvas to be created")
	}

	img := canvas.ToImage()
	bounds := img.Bounds()

	if bounds.Dx() != 100 || bounds.Dy() != 100 {
		t.Errorf("expected 100x100, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderer_WrapCanvasDrawsInPlace(t *testing.T) {
	r := New()
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))

	canvas := r.WrapCanvas(img)
	canvas.Clear(color.RGBA{R: 255, A: 255})

	if got := img.RGBAAt(10, 10); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("expected red pixel in wrapped buffer, got %+v", got)
	}
}

func TestRenderer_EncodePNG(t *testing.T) {
	r := New()

	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	data, err := r.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 50 {
		t.Errorf("expected width 50, got %d", decoded.Bounds().Dx())
	}
}

func TestRenderer_EncodeUnsupported(t *testing.T) {
	r := New()
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if _, err := r.EncodeImage(img, ports.ImageFormat(99), 0); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestCanvas_FillRect(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(40, 40, color.Black)
	canvas.FillRect(10, 10, 20, 20, ports.Solid(color.White))

	img := canvas.ToImage()
	if !isBright(img.At(20, 20)) {
		t.Error("expected white inside the rectangle")
	}
	if isBright(img.At(2, 2)) {
		t.Error("expected black outside the rectangle")
	}
}

func TestCanvas_LinearGradient(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(100, 10, color.Black)
	canvas.FillRect(0, 0, 100, 10, ports.LinearGradient(0, 0, 100, 0,
		ports.ColorStop{Offset: 0, Color: color.Black},
		ports.ColorStop{Offset: 1, Color: color.White},
	))

	img := canvas.ToImage()
	left, _, _, _ := img.At(5, 5).RGBA()
	right, _, _, _ := img.At(95, 5).RGBA()
	if left >= right {
		t.Errorf("expected gradient to brighten left to right: %d >= %d", left, right)
	}
}

func TestCanvas_TextBoundsCentered(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(800, 300, color.Black)
	style := ports.TextStyle{Face: ports.FaceCounter, Size: 100, Align: ports.AlignCenter}

	b := canvas.TextBounds("00:00:00", 400, 200, style)
	if b.Width() <= 0 || b.Height() <= 0 {
		t.Fatalf("expected non-empty bounds, got %+v", b)
	}
	center := (b.Left + b.Right) / 2
	if math.Abs(center-400) > 10 {
		t.Errorf("expected bounds centred near x=400, got %v", center)
	}
	if b.Bottom > 203 {
		t.Errorf("digits should sit on the baseline, bottom=%v", b.Bottom)
	}
	if b.Top > 200-60 {
		t.Errorf("digits should rise well above the baseline, top=%v", b.Top)
	}
}

func TestCanvas_DrawTextFill(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(400, 200, color.Black)
	style := ports.TextStyle{Face: ports.FaceCounter, Size: 80, Align: ports.AlignCenter, Paint: ports.Solid(color.White)}

	canvas.DrawText("88", 200, 140, style)

	if countBright(canvas.ToImage()) == 0 {
		t.Error("expected text pixels to be drawn")
	}
}

func TestCanvas_DrawTextBlurSpreads(t *testing.T) {
	r := New()
	sharp := r.CreateCanvas(400, 200, color.Black)
	glow := r.CreateCanvas(400, 200, color.Black)

	style := ports.TextStyle{
		Face: ports.FaceBrand, Size: 60, Align: ports.AlignCenter,
		Mode: ports.TextStroke, StrokeWidth: 6, Paint: ports.Solid(color.White),
	}
	sharp.DrawText("Ko", 200, 120, style)
	style.BlurRadius = 15
	glow.DrawText("Ko", 200, 120, style)

	if countLit(glow.ToImage()) <= countLit(sharp.ToImage()) {
		t.Error("expected blurred pass to cover more pixels than the sharp pass")
	}
}

func TestCanvas_ClipText(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(400, 200, color.Black)
	style := ports.TextStyle{Face: ports.FaceCounter, Size: 120, Align: ports.AlignCenter}

	canvas.ClipText("1", 200, 160, style)
	canvas.FillRect(0, 0, 400, 200, ports.Solid(color.White))
	canvas.ResetClip()

	img := canvas.ToImage()
	if isBright(img.At(5, 5)) {
		t.Error("expected corner outside the clip to stay black")
	}
	if countBright(img) == 0 {
		t.Error("expected pixels inside the glyph to be filled")
	}
}

func TestBlurSigma(t *testing.T) {
	if BlurSigma(0) != 0 {
		t.Error("expected zero sigma for zero radius")
	}
	if got := BlurSigma(10); math.Abs(got-6.2735) > 1e-9 {
		t.Errorf("expected 6.2735, got %v", got)
	}
}

func isBright(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r > 0x8000 && g > 0x8000 && b > 0x8000
}

func countBright(img image.Image) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if isBright(img.At(x, y)) {
				n++
			}
		}
	}
	return n
}

func countLit(img image.Image) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			if r > 0x0400 {
				n++
			}
		}
	}
	return n
}
