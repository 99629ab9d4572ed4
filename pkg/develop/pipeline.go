package develop

import(
	"errors"
	"fmt"
	"image"
	"log"
	"math"
	"path/filepath"

	"github.com/abworrall/pixelbin/pkg/bayer"
	"github.com/abworrall/pixelbin/pkg/ecolor"
	"github.com/abworrall/pixelbin/pkg/emath"
)

var ErrNoWhiteBalance = errors.New("no white balance reference")

// A Developer turns sensor mosaics into images. It holds no state
// between calls, so one Developer can be shared across goroutines.
type Developer struct {
	Config
	Logf func(format string, args ...interface{})
}

func NewDeveloper(cfg Config) (*Developer, error) {
	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("config: %v", err)
	}
	return &Developer{Config: cfg, Logf: log.Printf}, nil
}

// Result is everything Process produces for one mosaic.
type Result struct {
	Name      string
	Gains     ecolor.WhiteBalanceGains
	Merged    ecolor.LinearImage   // white balanced, camera native
	Corrected ecolor.LinearImage   // after the color matrix
	Preview   *image.RGBA          // exposure adjusted, tone mapped, 8-bit sRGB
	Exposure
	Stats     []StageStats
	Debug     []DebugPixel
}

func (r Result)String() string {
	return fmt.Sprintf("%s: %s, %s", r.Name, r.Gains, r.Exposure)
}

func (d *Developer)logf(format string, args ...interface{}) {
	if d.Logf != nil {
		d.Logf(format, args...)
	}
}

// Process runs the full pipeline over one mosaic. If wbRef is empty, the
// white balance from the config is used. The grid is not modified.
func (d *Developer)Process(grid bayer.SensorGrid, wbRef []float64) (Result, error) {
	return d.process("", grid, wbRef)
}

// ProcessFrame runs the pipeline over a loaded frame, using the config's
// white balance.
func (d *Developer)ProcessFrame(f Frame) (Result, error) {
	return d.process(f.Filename(), f.Grid, nil)
}

func (d *Developer)process(name string, grid bayer.SensorGrid, wbRef []float64) (Result, error) {
	r := Result{Name: name}
	if r.Name == "" {
		r.Name = grid.String()
	}

	if err := grid.Validate(); err != nil {
		return r, err
	}

	if len(wbRef) == 0 {
		wbRef = d.Config.WhiteBalance
	}
	if len(wbRef) == 0 {
		return r, ErrNoWhiteBalance
	}
	gains, err := ecolor.NewWhiteBalanceGains(wbRef)
	if err != nil {
		return r, fmt.Errorf("whitebalance: %w", err)
	}
	r.Gains = gains

	if d.Config.BlackLevel > 0 {
		grid = grid.SubtractBlackLevel(d.Config.BlackLevel)
	}

	ch, err := bayer.Extract(grid, d.Config.Pattern)
	if err != nil {
		return r, err
	}

	r.Merged = ecolor.ApplyWhiteBalance(ch, gains)
	r.Corrected = ecolor.ApplyColorMatrix(r.Merged, d.Config.Matrix)

	luma := ecolor.Luma(r.Corrected, d.Config.Luma)
	if d.Config.Exposure.Manual != nil {
		r.Exposure = Exposure{Compensation: *d.Config.Exposure.Manual, Manual: true}
	} else {
		r.Exposure = MeterLuma(luma, d.Config.Exposure)
	}

	r.Preview = ToneMap(r.Corrected, r.Exposure.Compensation, d.Config.Tone)

	r.Stats = []StageStats{
		SensorStats(grid),
		BayerStats(ch),
		ImageStats("merged", r.Merged),
		ImageStats("corrected", r.Corrected),
	}

	for _, pt := range d.Config.DebugPixels {
		if p, ok := r.debugPixel(ch, pt); ok {
			r.Debug = append(r.Debug, p)
		}
	}

	d.report(r, &luma)

	return r, nil
}

func (d *Developer)report(r Result, luma *emath.FloatGrid) {
	if d.Verbosity > 0 {
		d.logf("%s: gains %s\n", r.Name, r.Gains)
		if det := d.Config.Matrix.Determinant(); math.Abs(det) < 1e-6 {
			d.logf("%s: color matrix is near singular (det=%g)\n", r.Name, det)
		}
		if r.Exposure.Degenerate {
			d.logf("%s: image is black, using fallback exposure\n", r.Name)
		}
		d.logf("%s: %s\n", r.Name, r.Exposure)
	}

	if d.Verbosity > 1 {
		for _, ss := range r.Stats {
			d.logf("%s: %s\n", r.Name, ss)
		}
		d.logf("%s: mean corrected color %s\n", r.Name, r.Stats[len(r.Stats)-1].Swatch())
		d.logf("%s: luma %s\n", r.Name, luma.Stats())

		if d.DumpDir != "" {
			filename := filepath.Join(d.DumpDir, filepath.Base(r.Name) + "_luma.png")
			if err := luma.ToImg(r.Name + " luma", filename); err != nil {
				d.logf("%s: luma dump: %v\n", r.Name, err)
			}
			filename = filepath.Join(d.DumpDir, filepath.Base(r.Name) + "_histogram.png")
			if err := PlotHistogram(r.Corrected, r.Name + " corrected", filename); err != nil {
				d.logf("%s: histogram dump: %v\n", r.Name, err)
			}
		}
	}

	for _, p := range r.Debug {
		d.logf("%s", p)
	}
}
