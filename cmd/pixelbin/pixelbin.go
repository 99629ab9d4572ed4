package main

import(
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/abworrall/pixelbin/pkg/develop"
)

var(
	fVerbosity int
	fOutput string
	fWhiteBalance string
	fCFAPattern string
	fBlackLevel int
	fExposure float64
	fKelvin int
	fPreview string
	fWriteHDR bool
	fWriteRaw bool
	fWorkers int
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.StringVar(&fOutput, "o", "", "output base name (default: input name + _developed)")

	flag.StringVar(&fWhiteBalance, "wb", "", "camera white balance reference, as \"r,g,b\"")
	flag.StringVar(&fCFAPattern, "cfa", "RGGB", "CFA pattern of the sensor: RGGB, GRBG, GBRG or BGGR")
	flag.IntVar(&fBlackLevel, "black", 0, "black level to subtract from the raw values")
	flag.Float64Var(&fExposure, "ev", 0, "manual exposure compensation in stops (default: metered)")
	flag.IntVar(&fKelvin, "kelvin", 0, "target color temperature (accepted, not used)")

	flag.StringVar(&fPreview, "preview", "jpg", "preview format: jpg or png")
	flag.BoolVar(&fWriteHDR, "hdr", false, "also write a Radiance .hdr of the corrected image")
	flag.BoolVar(&fWriteRaw, "rawout", true, "also write the white balanced image, before color correction")
	flag.IntVar(&fWorkers, "workers", 1, "how many images to develop at once")
	flag.Parse()

	log.Printf("pixelbin starting\n")
}

func parseTriplet(s string) ([]float64, error) {
	vals := []float64{}
	for _, field := range strings.Split(s, ",") {
		f, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("'%s': %v", s, err)
		}
		vals = append(vals, f)
	}
	return vals, nil
}

// applyFlags copies any flags given on the command line over the
// config; flags left at their defaults don't clobber values from a
// config file.
func applyFlags(cfg *develop.Config) error {
	var err error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "v":       cfg.Verbosity = fVerbosity
		case "cfa":     cfg.CFAPattern = fCFAPattern
		case "black":   cfg.BlackLevel = uint16(fBlackLevel)
		case "ev":      cfg.Exposure.Manual = &fExposure
		case "kelvin":  cfg.TargetKelvin = fKelvin
		case "preview": cfg.Output.PreviewFormat = fPreview
		case "hdr":     cfg.Output.WriteHDR = fWriteHDR
		case "rawout":  cfg.Output.WriteRaw = fWriteRaw
		case "wb":
			if wb, wbErr := parseTriplet(fWhiteBalance); wbErr != nil {
				err = fmt.Errorf("-wb: %v", wbErr)
			} else {
				cfg.WhiteBalance = wb
			}
		}
	})
	return err
}

func main() {
	b := develop.NewBatch()
	if err := b.LoadFilesAndDirs(flag.Args()...); err != nil {
		log.Fatal(err)
	}
	if len(b.Frames) == 0 {
		log.Fatal("no sensor mosaics (.tif, .tiff) given")
	}

	if err := applyFlags(&b.Config); err != nil {
		log.Fatal(err)
	}

	d, err := develop.NewDeveloper(b.Config)
	if err != nil {
		log.Fatal(err)
	}

	if d.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", d.Config.AsYaml())
	}

	errs := b.DevelopAll(d, fWorkers, fOutput)
	if len(errs) > 0 {
		log.Printf("%d of %d images failed\n", len(errs), len(b.Frames))
		os.Exit(1)
	}
}
