package develop

import(
	"image"
	"image/color"
	"math"

	"github.com/abworrall/pixelbin/pkg/ecolor"
	"github.com/abworrall/pixelbin/pkg/emath"
)

// ToneMap generates the 8-bit display image: it pushes the exposure by
// `compensation` stops, normalizes into [0,1] (clipping anything
// brighter), applies sRGB gamma, and rounds to 8 bits.
//
// This is the only place in the pipeline that leaves linear light, and
// the only place we drop to 8 bits. The input image is not modified.
func ToneMap(img ecolor.LinearImage, compensation float64, cfg ToneConfig) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	scale := math.Exp2(compensation) / ecolor.MaxValue

	f := func(v float64) uint8 {
		v = emath.Clamp(v * scale, 0.0, 1.0)
		return uint8(emath.GammaExpandAt(v, cfg.Breakpoint) * 255.0 + 0.5)
	}

	for y:=0; y<img.Height; y++ {
		for x:=0; x<img.Width; x++ {
			v := img.RGBAt(x, y)
			out.SetRGBA(x, y, color.RGBA{f(v[0]), f(v[1]), f(v[2]), 0xFF})
		}
	}

	return out
}
