package develop

import(
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/abworrall/pixelbin/pkg/ecolor"
	"github.com/abworrall/pixelbin/pkg/emath"
)

// Exposure is the result of metering an image.
type Exposure struct {
	MeanBrightness float64 // mean luma, in [0,1]
	Compensation   float64 // stops to push (+ve) or pull (-ve) the image by
	Degenerate     bool    // image was black, so Compensation is the fallback
	Manual         bool    // Compensation came from config, not metering
}

func (e Exposure)String() string {
	s := fmt.Sprintf("mean brightness: %.3f, compensation: %+.2f EV", e.MeanBrightness, e.Compensation)
	if e.Degenerate {
		s += " (black image, fallback)"
	} else if e.Manual {
		s += " (manual)"
	}
	return s
}

// MeterLuma aims the mean of the luma grid at cfg.Target (both in
// linear light), and returns how many stops that takes, clamped to
// [cfg.Min, cfg.Max]. A black (or empty) image has no meaningful mean,
// so gets cfg.Fallback instead.
func MeterLuma(luma emath.FloatGrid, cfg ExposureConfig) Exposure {
	mean := 0.0
	if vals := luma.Values(); len(vals) > 0 {
		mean = stat.Mean(vals, nil) / ecolor.MaxValue
	}

	if !(mean > 0) {
		return Exposure{MeanBrightness: 0, Compensation: cfg.Fallback, Degenerate: true}
	}

	comp := math.Log2(cfg.Target / mean)
	return Exposure{
		MeanBrightness: mean,
		Compensation:   emath.Clamp(comp, cfg.Min, cfg.Max),
	}
}

// EstimateExposure meters a linear image, using the given luma weights.
func EstimateExposure(img ecolor.LinearImage, w ecolor.LumaWeights, cfg ExposureConfig) Exposure {
	return MeterLuma(ecolor.Luma(img, w), cfg)
}
