package develop

import(
	"errors"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/abworrall/pixelbin/pkg/bayer"
)

var ErrNotMosaic = errors.New("image is not a single channel sensor mosaic")

// A Frame is a sensor mosaic loaded from an input file, with whatever
// we could find out about how it was shot.
type Frame struct {
	LoadFilename string
	Grid         bayer.SensorGrid
	CaptureInfo
}

func (f Frame)String() string {
	return fmt.Sprintf("%s: %s, %s", f.Filename(), f.Grid, f.CaptureInfo)
}

func (f Frame)Filename() string {
	return filepath.Base(f.LoadFilename)
}

// OutputBase is where outputs for this frame go by default: next to
// the input, with a suffix so we never write over it.
func (f Frame)OutputBase() string {
	return strings.TrimSuffix(f.LoadFilename, filepath.Ext(f.LoadFilename)) + "_developed"
}

// SensorGridFromImage copies a grayscale image into a SensorGrid. 8-bit
// grays are widened to 16 bits; anything with color is rejected, as it
// has already been demosaiced.
func SensorGridFromImage(img image.Image) (bayer.SensorGrid, error) {
	b := img.Bounds()
	g := bayer.NewSensorGrid(b.Dx(), b.Dy())

	switch src := img.(type) {
	case *image.Gray16:
		for y:=0; y<g.Height; y++ {
			for x:=0; x<g.Width; x++ {
				g.Set(x, y, src.Gray16At(b.Min.X + x, b.Min.Y + y).Y)
			}
		}

	case *image.Gray:
		for y:=0; y<g.Height; y++ {
			for x:=0; x<g.Width; x++ {
				g.Set(x, y, color.Gray16Model.Convert(src.GrayAt(b.Min.X + x, b.Min.Y + y)).(color.Gray16).Y)
			}
		}

	default:
		return g, fmt.Errorf("%w: got %T", ErrNotMosaic, img)
	}

	return g, nil
}
