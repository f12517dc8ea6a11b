package composite

import (
	"github.com/user/timerreel/pkg/pipeline"
	"github.com/user/timerreel/pkg/ports"
)

// Panel colours per skin.
var (
	minimalPanel = rgb(26, 28, 32)
	lcdPanel     = rgb(43, 46, 51)
	glassPanel   = rgb(21, 23, 28)
	retroPanel   = rgb(12, 13, 16)
	flipPanel    = rgb(14, 17, 22)
	flipScreen   = rgb(18, 20, 23)
	flipDivider  = rgb(10, 12, 16)
)

func drawSkin(canvas ports.Canvas, skin pipeline.Skin, sl pipeline.SkinLayout) {
	if !sl.Visible {
		return
	}

	panel, screen := skinPaints(skin, sl.Screen)
	fillRounded(canvas, sl.Panel, sl.PanelRadius, panel)
	if sl.HasScreen {
		fillRounded(canvas, sl.Screen, sl.ScreenRadius, screen)
	}
	if sl.HasDivider {
		d := sl.Divider
		canvas.FillRect(d.Left, d.Top, d.Width(), d.Height(), ports.Solid(flipDivider))
	}
}

func skinPaints(skin pipeline.Skin, screen pipeline.RectF) (ports.Paint, ports.Paint) {
	switch skin {
	case pipeline.SkinLCD:
		return ports.Solid(lcdPanel), ports.LinearGradient(0, screen.Top, 0, screen.Bottom,
			ports.ColorStop{Offset: 0, Color: rgb(215, 229, 210)},
			ports.ColorStop{Offset: 1, Color: rgb(183, 201, 176)},
		)
	case pipeline.SkinGlass:
		return ports.Solid(glassPanel), ports.LinearGradient(0, screen.Top, 0, screen.Bottom,
			ports.ColorStop{Offset: 0, Color: rgb(27, 32, 40)},
			ports.ColorStop{Offset: 1, Color: rgb(15, 18, 23)},
		)
	case pipeline.SkinRetro:
		return ports.Solid(retroPanel), ports.Paint{}
	case pipeline.SkinFlip:
		return ports.Solid(flipPanel), ports.Solid(flipScreen)
	default:
		return ports.Solid(minimalPanel), ports.Paint{}
	}
}

func fillRounded(canvas ports.Canvas, r pipeline.RectF, radius float64, p ports.Paint) {
	canvas.FillRoundedRect(r.Left, r.Top, r.Width(), r.Height(), radius, p)
}
