package ecolor

import(
	"github.com/abworrall/pixelbin/pkg/emath"
)

// A ColorMatrix maps white balanced camera RGB into the output RGB
// space, as out = M . in. It isn't normalized; rows needn't sum to 1, so
// it can shift overall brightness.
type ColorMatrix = emath.Mat3

var(
	// A mild correction for Sony sensors under daylight. It undoes some of
	// the cross-talk between channels without pushing saturation too far.
	DefaultColorMatrix = ColorMatrix{
		 1.5, -0.3, -0.2,
		-0.2,  1.3, -0.1,
		-0.1, -0.2,  1.3,
	}

	// Rec.601 luma weights
	DefaultLumaWeights = LumaWeights{0.299, 0.587, 0.114}
)

// LumaWeights combine linear R, G and B into a single brightness value.
type LumaWeights = emath.Vec3

// ApplyColorMatrix returns a new image with `m` applied to every pixel,
// and the result clamped into [0, MaxValue]. Pixels are independent.
func ApplyColorMatrix(img LinearImage, m ColorMatrix) LinearImage {
	out := NewLinearImage(img.Width, img.Height)

	for i:=0; i<len(img.Pix); i+=3 {
		v := m.Apply(emath.Vec3{img.Pix[i], img.Pix[i+1], img.Pix[i+2]})
		v.ClampTo(0, MaxValue)
		out.Pix[i], out.Pix[i+1], out.Pix[i+2] = v[0], v[1], v[2]
	}

	return out
}

// Luma computes the weighted brightness of every pixel, in the same
// units as the image.
func Luma(img LinearImage, w LumaWeights) emath.FloatGrid {
	fg := emath.NewFloatGrid(img.Width, img.Height)
	for y:=0; y<img.Height; y++ {
		for x:=0; x<img.Width; x++ {
			fg.Set(x, y, img.RGBAt(x, y).Dot(w))
		}
	}
	return fg
}
