package develop

import(
	"fmt"
	"image"
	"image/color"

	"github.com/abworrall/pixelbin/pkg/bayer"
	"github.com/abworrall/pixelbin/pkg/emath"
)

// DebugPixel follows one output pixel through each stage.
type DebugPixel struct {
	OutputPos  image.Point
	Sensor     [4]uint16   // R, G1, G2, B sites of the cell
	Merged     emath.Vec3
	Corrected  emath.Vec3
	Preview    color.RGBA
}

func (p DebugPixel)String() string {
	str := fmt.Sprintf("----- Pixel @(%d,%d)-----\n", p.OutputPos.X, p.OutputPos.Y)
	str += fmt.Sprintf("Sensor (R,G1,G2,B) : [%6d, %6d, %6d, %6d]\n", p.Sensor[0], p.Sensor[1], p.Sensor[2], p.Sensor[3])
	str += fmt.Sprintf("Merged             : [%12.4f, %12.4f, %12.4f]\n", p.Merged[0], p.Merged[1], p.Merged[2])
	str += fmt.Sprintf("Corrected          : [%12.4f, %12.4f, %12.4f]\n", p.Corrected[0], p.Corrected[1], p.Corrected[2])
	str += fmt.Sprintf("Preview            : [%12d, %12d, %12d]\n", p.Preview.R, p.Preview.G, p.Preview.B)
	return str
}

// debugPixel gathers the values for one output position. It returns
// false if pt is outside the output.
func (r Result)debugPixel(ch bayer.Channels, pt image.Point) (DebugPixel, bool) {
	if !pt.In(r.Corrected.Bounds()) {
		return DebugPixel{}, false
	}
	return DebugPixel{
		OutputPos: pt,
		Sensor:    [4]uint16{ch.R.At(pt.X, pt.Y), ch.G1.At(pt.X, pt.Y), ch.G2.At(pt.X, pt.Y), ch.B.At(pt.X, pt.Y)},
		Merged:    r.Merged.RGBAt(pt.X, pt.Y),
		Corrected: r.Corrected.RGBAt(pt.X, pt.Y),
		Preview:   r.Preview.RGBAAt(pt.X, pt.Y),
	}, true
}
