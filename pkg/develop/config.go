package develop

import(
	"fmt"
	"image"
	"log"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/abworrall/pixelbin/pkg/bayer"
	"github.com/abworrall/pixelbin/pkg/ecolor"
	"github.com/abworrall/pixelbin/pkg/emath"
)

/* Example config file ...

verbosity: 1
whitebalance: [2.0, 1.0, 1.5]
cfapattern: RGGB
blacklevel: 512
colormatrix:
  - [ 1.5, -0.3, -0.2]
  - [-0.2,  1.3, -0.1]
  - [-0.1, -0.2,  1.3]
exposure:
  target: 0.18
  min: -1.5
  max: 2.0
  fallback: 0.5
output:
  writeraw: true
  previewformat: jpg
debugpixels:
  - {x: 100, y: 200}

*/

// ExposureConfig holds the auto-exposure policy.
type ExposureConfig struct {
	Target   float64            // Mid-gray we aim the mean luma at, in [0,1]
	Min      float64            // Compensation is clamped to [Min, Max] stops
	Max      float64
	Fallback float64            // Used when the image is entirely black
	Manual   *float64 `yaml:",omitempty"` // If set, skip metering and use this
}

type ToneConfig struct {
	Breakpoint float64 // sRGB linear/power switchover
}

type OutputConfig struct {
	WriteRaw      bool   // also write the merged, pre-matrix image
	WriteHDR      bool   // also write a Radiance .hdr of the corrected image
	PreviewFormat string // "jpg" or "png"
	JPEGQuality   int
	PreviewMaxDim int    `yaml:",omitempty"` // if >0, shrink the written preview to fit
}

type Config struct {
	Verbosity    int
	DumpDir      string `yaml:",omitempty"` // where to put diagnostic images (luma maps)

	WhiteBalance []float64             // camera WB reference: (R, G, B) or (R, G, B, G2)
	CFAPattern   string
	BlackLevel   uint16
	ColorMatrix  [][]float64           // 3 rows of 3
	LumaWeights  []float64

	// TargetKelvin is accepted so existing configs load, but no stage
	// reads it; the white balance comes only from WhiteBalance.
	TargetKelvin int `yaml:",omitempty"`

	Exposure     ExposureConfig
	Tone         ToneConfig
	Output       OutputConfig

	DebugPixels  []image.Point `yaml:",omitempty"` // output coords to dump

	// Values we figure out in Finalize, for access by rest of app
	Pattern      bayer.Pattern       `yaml:"-"`
	Matrix       ecolor.ColorMatrix  `yaml:"-"`
	Luma         ecolor.LumaWeights  `yaml:"-"`
}

func NewConfig() Config {
	return Config{
		CFAPattern:  bayer.RGGB.Name,
		ColorMatrix: ecolor.DefaultColorMatrix.Rows(),
		LumaWeights: append([]float64{}, ecolor.DefaultLumaWeights[:]...),
		Exposure: ExposureConfig{
			Target:   0.18,
			Min:      -1.5,
			Max:      2.0,
			Fallback: 0.5,
		},
		Tone: ToneConfig{
			Breakpoint: emath.SRGBBreakpoint,
		},
		Output: OutputConfig{
			WriteRaw:      true,
			PreviewFormat: "jpg",
			JPEGQuality:   95,
		},
	}
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, err
	}
	return c, c.Finalize()
}

func LoadConfig(filename string) (Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read %s: %v", filename, err)
	}

	c, err := newConfigFromYaml(contents)
	if err != nil {
		return c, fmt.Errorf("config parse %s: %v", filename, err)
	}
	return c, nil
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Fatalf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

// Finalize does sanity checks, and fills in the derived values.
func (c *Config)Finalize() error {
	p, err := bayer.ParsePattern(c.CFAPattern)
	if err != nil {
		return err
	}
	c.Pattern = p

	if c.Matrix, err = emath.FromRows(c.ColorMatrix); err != nil {
		return fmt.Errorf("colormatrix: %v", err)
	}

	if len(c.LumaWeights) != 3 {
		return fmt.Errorf("lumaweights: need 3 values, got %d", len(c.LumaWeights))
	}
	c.Luma = ecolor.LumaWeights{c.LumaWeights[0], c.LumaWeights[1], c.LumaWeights[2]}

	if len(c.WhiteBalance) > 0 {
		if _, err := ecolor.NewWhiteBalanceGains(c.WhiteBalance); err != nil {
			return fmt.Errorf("whitebalance: %v", err)
		}
	}

	if c.Exposure.Target <= 0 || c.Exposure.Target > 1 {
		return fmt.Errorf("exposure target %f not in (0,1]", c.Exposure.Target)
	}
	if c.Exposure.Min > c.Exposure.Max {
		return fmt.Errorf("exposure min %f > max %f", c.Exposure.Min, c.Exposure.Max)
	}

	if c.Tone.Breakpoint <= 0 || c.Tone.Breakpoint >= 1 {
		return fmt.Errorf("tone breakpoint %f not in (0,1)", c.Tone.Breakpoint)
	}

	if _, err := c.GetPreviewWriter(); err != nil {
		return err
	}
	if c.Output.JPEGQuality < 1 || c.Output.JPEGQuality > 100 {
		return fmt.Errorf("output jpegquality %d not in [1,100]", c.Output.JPEGQuality)
	}
	if c.Output.PreviewMaxDim < 0 {
		return fmt.Errorf("output previewmaxdim %d is negative", c.Output.PreviewMaxDim)
	}

	return nil
}

// A PreviewWriter persists the 8-bit preview.
type PreviewWriter func(img image.Image, filename string, cfg OutputConfig) error

func (c Config)GetPreviewWriter() (PreviewWriter, error) {
	switch c.Output.PreviewFormat {
	case "jpg", "jpeg": return writePreviewJPEG, nil
	case "png":         return writePreviewPNG, nil
	default:
		return nil, fmt.Errorf("no preview format named '%s'", c.Output.PreviewFormat)
	}
}

func (c Config)PreviewExt() string {
	if c.Output.PreviewFormat == "png" {
		return ".png"
	}
	return ".jpg"
}
