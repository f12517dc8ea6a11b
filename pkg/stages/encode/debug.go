package encode

import (
	"encoding/json"
	"fmt"
	"image/color"

	"github.com/user/timerreel/pkg/pipeline"
)

// renderSnapshot is the JSON form of the resolved render settings saved in debug mode.
type renderSnapshot struct {
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	FPS             int     `json:"fps"`
	Style           string  `json:"style"`
	Skin            string  `json:"skin"`
	DigitColor      string  `json:"digitColor"`
	BackgroundColor string  `json:"backgroundColor"`
	StrokeColor     string  `json:"strokeColor"`
	StrokeWidth     float64 `json:"strokeWidth"`
	BrandText       string  `json:"brandText"`
	BrandAnimated   bool    `json:"brandAnimated"`
	BrandSpeed      float64 `json:"brandSpeed"`
	BrandAmplitude  float64 `json:"brandAmplitude"`
	BrandRelX       float64 `json:"brandRelX"`
	BrandRelY       float64 `json:"brandRelY"`
	WaterInnerWaves bool    `json:"waterInnerWaves"`
	WaveIntensity   float64 `json:"waveIntensity"`
	BubbleSpeed     float64 `json:"bubbleSpeed"`

	Kind        string `json:"kind"`
	DurationSec int    `json:"durationSec"`
	StartValue  int    `json:"startValue"`
	Direction   string `json:"direction"`
	Frames      int    `json:"frames"`
	BitRate     int    `json:"bitRate"`

	CounterSize     float64 `json:"counterSize"`
	CounterBaseline float64 `json:"counterBaseline"`
	BrandSize       float64 `json:"brandSize"`
}

func renderJSON(input pipeline.EncodeInput) []byte {
	cfg := input.Config
	req := input.Request
	snap := renderSnapshot{
		Width:           cfg.Width,
		Height:          cfg.Height,
		FPS:             cfg.FPS,
		Style:           string(cfg.Style),
		Skin:            string(cfg.Skin),
		DigitColor:      hexColor(cfg.DigitColor),
		BackgroundColor: hexColor(cfg.BackgroundColor),
		StrokeColor:     hexColor(cfg.StrokeColor),
		StrokeWidth:     cfg.StrokeWidth,
		BrandText:       cfg.BrandText,
		BrandAnimated:   cfg.BrandAnimated,
		BrandSpeed:      cfg.BrandSpeed,
		BrandAmplitude:  cfg.BrandAmplitude,
		BrandRelX:       cfg.BrandRelX,
		BrandRelY:       cfg.BrandRelY,
		WaterInnerWaves: cfg.WaterInnerWaves,
		WaveIntensity:   cfg.WaveIntensity,
		BubbleSpeed:     cfg.BubbleSpeed,
		Kind:            string(req.Kind),
		DurationSec:     req.DurationSec,
		StartValue:      req.StartValue,
		Direction:       req.Direction.String(),
		Frames:          req.FrameCount(cfg.FPS),
		BitRate:         BitRate(cfg.Width, cfg.Height, cfg.FPS),
		CounterSize:     input.Layout.CounterSize,
		CounterBaseline: input.Layout.CounterBaseline,
		BrandSize:       input.Layout.BrandSize,
	}
	data, _ := json.MarshalIndent(snap, "", "  ")
	return data
}

func hexColor(c color.Color) string {
	if c == nil {
		return ""
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xFF {
		return fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", n.A, n.R, n.G, n.B)
}
