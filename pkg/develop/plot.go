package develop

import(
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/abworrall/pixelbin/pkg/ecolor"
)

const histogramBins = 64

// channelCurves bins each channel of img into histogramBins buckets
// over [0, MaxValue], as (bucket midpoint, count) points.
func channelCurves(img ecolor.LinearImage) [3]plotter.XYs {
	counts := [3][histogramBins]float64{}
	width := (ecolor.MaxValue + 1) / histogramBins

	for i:=0; i<len(img.Pix); i++ {
		v := img.Pix[i]
		if v < 0 { v = 0 }
		if v > ecolor.MaxValue { v = ecolor.MaxValue }
		counts[i%3][int(v/width)]++
	}

	curves := [3]plotter.XYs{}
	for c:=0; c<3; c++ {
		curves[c] = make(plotter.XYs, histogramBins)
		for b:=0; b<histogramBins; b++ {
			curves[c][b] = plotter.XY{X: (float64(b) + 0.5) * width, Y: counts[c][b]}
		}
	}
	return curves
}

// PlotHistogram saves a PNG with the distribution of each channel of a
// linear image, one line per channel.
func PlotHistogram(img ecolor.LinearImage, title, filename string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Linear value"
	p.Y.Label.Text = "Pixels"
	p.X.Min, p.X.Max = 0, ecolor.MaxValue

	names := []string{"R", "G", "B"}
	colors := []color.Color{
		color.RGBA{0xD0, 0x20, 0x20, 0xFF},
		color.RGBA{0x20, 0xA0, 0x20, 0xFF},
		color.RGBA{0x20, 0x40, 0xD0, 0xFF},
	}

	for c, pts := range channelCurves(img) {
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("histogram %s: %v", names[c], err)
		}
		line.Color = colors[c]
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(names[c], line)
	}
	p.Legend.Top = true

	if err := p.Save(8*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("save '%s': %v", filename, err)
	}
	return nil
}
