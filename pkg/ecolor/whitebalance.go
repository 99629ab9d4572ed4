package ecolor

import(
	"errors"
	"fmt"
	"math"

	"github.com/abworrall/pixelbin/pkg/bayer"
	"github.com/abworrall/pixelbin/pkg/emath"
)

var ErrInvalidReference = errors.New("invalid white balance reference")

// WhiteBalanceGains are the per-channel multipliers that make a neutral
// scene color come out neutral. Green is the reference, so G is
// always 1.0.
type WhiteBalanceGains struct {
	R, G, B float64
}

// NewWhiteBalanceGains derives gains from the camera's white balance
// reference, i.e. the multipliers it recorded at capture time (dcraw's
// "camera multipliers", rawpy's camera_whitebalance). Those come as
// either (R, G, B) or (R, G, B, G2); the second green is ignored.
//
// All the values must be positive and finite; a zero green would
// otherwise divide by zero.
func NewWhiteBalanceGains(ref []float64) (WhiteBalanceGains, error) {
	if len(ref) != 3 && len(ref) != 4 {
		return WhiteBalanceGains{}, fmt.Errorf("%w: want 3 or 4 values, got %d", ErrInvalidReference, len(ref))
	}
	for i, v := range ref[:3] {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return WhiteBalanceGains{}, fmt.Errorf("%w: value %d is %v", ErrInvalidReference, i, v)
		}
	}

	return WhiteBalanceGains{
		R: ref[0] / ref[1],
		G: 1.0,
		B: ref[2] / ref[1],
	}, nil
}

func (wb WhiteBalanceGains)String() string {
	return fmt.Sprintf("WB[R:%.3f, G:%.3f, B:%.3f]", wb.R, wb.G, wb.B)
}

func (wb WhiteBalanceGains)Vec3() emath.Vec3 { return emath.Vec3{wb.R, wb.G, wb.B} }

// ApplyWhiteBalance merges the four Bayer channels into one linear RGB
// image. Red and blue are scaled by their gains; the two greens are
// simply averaged. Everything is clamped into [0, MaxValue].
func ApplyWhiteBalance(ch bayer.Channels, wb WhiteBalanceGains) LinearImage {
	img := NewLinearImage(ch.Width(), ch.Height())

	for i:=0; i<len(ch.R.Pix); i++ {
		img.Pix[3*i+0] = emath.Clamp(float64(ch.R.Pix[i]) * wb.R, 0, MaxValue)
		img.Pix[3*i+1] = emath.Clamp((float64(ch.G1.Pix[i]) + float64(ch.G2.Pix[i])) / 2.0, 0, MaxValue)
		img.Pix[3*i+2] = emath.Clamp(float64(ch.B.Pix[i]) * wb.B, 0, MaxValue)
	}

	return img
}
