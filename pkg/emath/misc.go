package emath

import "math"

// Some functions that only operate on basic types, that are useful

// SRGBBreakpoint is where the sRGB transfer function switches from the
// linear toe to the power curve.
const SRGBBreakpoint = 0.0031308

// https://www.sjbrown.co.uk/posts/gamma-correct-rendering/ - "linear RGB to sRGB"
// Each channel in `v` is assumed to be in the range [0,1]
func GammaExpand_sRGB(v Vec3) Vec3 {
	return Vec3{
		GammaExpand_F64(v[0]),
		GammaExpand_F64(v[1]),
		GammaExpand_F64(v[2]),
	}
}

func GammaExpand_F64(f float64) float64 {
	return GammaExpandAt(f, SRGBBreakpoint)
}

// GammaExpandAt is the sRGB transfer function with a movable
// breakpoint. Values at or below the breakpoint take the linear branch.
func GammaExpandAt(f, breakpoint float64) float64 {
	if f <= breakpoint {
		return 12.92 * f
	}
	return 1.055 * math.Pow(f, 1.0/2.4) - 0.055
}

func Clamp(f, min, max float64) float64 {
	if f < min { return min }
	if f > max { return max }
	return f
}
