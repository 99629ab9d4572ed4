package ecolor

import(
	"fmt"
	"image"
	"image/color"

	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/pixelbin/pkg/emath"
)

// MaxValue is the top of the 16-bit linear range every stage works in.
const MaxValue = float64(0xFFFF)

// A LinearImage is an RGB image in linear light, each channel nominally
// in [0, MaxValue]. It implements image.Image and hdr.Image, so it can be
// handed straight to the HDR encoders; via those interfaces the channels
// are presented scaled down into [0.0, 1.0].
type LinearImage struct {
	Width, Height int
	Pix           []float64 // R,G,B interleaved, row-major
}

func NewLinearImage(w, h int) LinearImage {
	return LinearImage{Width: w, Height: h, Pix: make([]float64, 3*w*h)}
}

func (li LinearImage)offset(x, y int) int { return 3 * (y*li.Width + x) }

func (li LinearImage)RGBAt(x, y int) emath.Vec3 {
	i := li.offset(x, y)
	return emath.Vec3{li.Pix[i], li.Pix[i+1], li.Pix[i+2]}
}

func (li *LinearImage)SetRGB(x, y int, v emath.Vec3) {
	i := li.offset(x, y)
	li.Pix[i], li.Pix[i+1], li.Pix[i+2] = v[0], v[1], v[2]
}

func (li LinearImage)Copy() LinearImage {
	out := LinearImage{Width: li.Width, Height: li.Height, Pix: make([]float64, len(li.Pix))}
	copy(out.Pix, li.Pix)
	return out
}

func (li LinearImage)String() string {
	return fmt.Sprintf("LinearImage[%dx%d]", li.Width, li.Height)
}

// Implement image.Image
func (li LinearImage)ColorModel() color.Model { return hdrcolor.RGBModel }
func (li LinearImage)Bounds() image.Rectangle { return image.Rect(0, 0, li.Width, li.Height) }
func (li LinearImage)At(x, y int) color.Color { return li.HDRAt(x, y) }

// Implement hdr.Image
func (li LinearImage)Size() int { return li.Width * li.Height }
func (li LinearImage)HDRAt(x, y int) hdrcolor.Color {
	v := li.RGBAt(x, y).Scale(1.0 / MaxValue)
	return hdrcolor.RGB{R: v[0], G: v[1], B: v[2]}
}

// ToRGBA64 clamps every channel into [0, MaxValue] and truncates it to
// 16 bits, for archival output.
func (li LinearImage)ToRGBA64() *image.RGBA64 {
	img := image.NewRGBA64(li.Bounds())
	for y:=0; y<li.Height; y++ {
		for x:=0; x<li.Width; x++ {
			v := li.RGBAt(x, y)
			v.ClampTo(0, MaxValue)
			img.SetRGBA64(x, y, color.RGBA64{uint16(v[0]), uint16(v[1]), uint16(v[2]), 0xFFFF})
		}
	}
	return img
}
