package composite

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	white       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	transparent = color.NRGBA{R: 255, G: 255, B: 255, A: 0}
)

func rgb(r, g, b uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

func argb(a, r, g, b uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// hsv returns a fully opaque colour for hue h (wrapped into [0,1)) with
// saturation 0.95 and value 1.
func hsv(h float64) color.NRGBA {
	return HSV(h, 0.95, 1)
}

// HSV converts hue (turns, wrapped into [0,1)), saturation and value to a colour.
func HSV(h, s, v float64) color.NRGBA {
	h = math.Mod(math.Mod(h, 1)+1, 1)
	r, g, b := colorful.Hsv(h*360, s, v).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
