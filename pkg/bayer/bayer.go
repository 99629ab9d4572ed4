package bayer

// Splitting a raw Bayer mosaic into its four sub-lattices.
//
// RGGB layout (row-major, 0-indexed):
//
//	(even row, even col) = R
//	(even row, odd  col) = G1
//	(odd  row, even col) = G2
//	(odd  row, odd  col) = B
//
// There is no interpolation here; each channel sample is exactly one
// photosite, so a WxH mosaic gives four (W/2)x(H/2) grids.

import(
	"errors"
	"fmt"
	"strings"
)

var(
	ErrOddDimensions = errors.New("sensor grid dimensions must be even")
	ErrEmptyGrid     = errors.New("sensor grid is empty")
	ErrShortGrid     = errors.New("sensor grid has fewer samples than width*height")
)

// A SensorGrid is the single channel mosaic, as read off the sensor.
type SensorGrid struct {
	Width, Height int
	Pix           []uint16 // row-major, len >= Width*Height
}

func NewSensorGrid(w, h int) SensorGrid {
	return SensorGrid{Width: w, Height: h, Pix: make([]uint16, w*h)}
}

func (g SensorGrid)At(x, y int) uint16     { return g.Pix[y*g.Width + x] }
func (g *SensorGrid)Set(x, y int, v uint16) { g.Pix[y*g.Width + x] = v }

func (g SensorGrid)String() string {
	return fmt.Sprintf("SensorGrid[%dx%d]", g.Width, g.Height)
}

// Validate checks the grid can be split into 2x2 blocks.
func (g SensorGrid)Validate() error {
	switch {
	case g.Width <= 0 || g.Height <= 0:
		return fmt.Errorf("%s: %w", g, ErrEmptyGrid)
	case g.Width%2 != 0 || g.Height%2 != 0:
		return fmt.Errorf("%s: %w", g, ErrOddDimensions)
	case len(g.Pix) < g.Width*g.Height:
		return fmt.Errorf("%s, %d samples: %w", g, len(g.Pix), ErrShortGrid)
	}
	return nil
}

// SubtractBlackLevel returns a new grid with `level` taken off every
// sample, saturating at zero.
func (g SensorGrid)SubtractBlackLevel(level uint16) SensorGrid {
	out := SensorGrid{Width: g.Width, Height: g.Height, Pix: make([]uint16, len(g.Pix))}
	for i, v := range g.Pix {
		if v > level {
			out.Pix[i] = v - level
		}
	}
	return out
}

// A ChannelGrid holds the samples for one of the four sub-lattices.
type ChannelGrid struct {
	Width, Height int
	Pix           []uint16
}

func (c ChannelGrid)At(x, y int) uint16 { return c.Pix[y*c.Width + x] }

// Channels are always in this order, whatever the CFA pattern.
type Channels struct {
	R, G1, G2, B ChannelGrid
}

func (ch Channels)Width() int  { return ch.R.Width }
func (ch Channels)Height() int { return ch.R.Height }

// A Pattern says where in each 2x2 block the four channels sit; each
// value is a (col, row) offset.
type Pattern struct {
	Name string
	R, G1, G2, B [2]int
}

var(
	RGGB = Pattern{"RGGB", [2]int{0,0}, [2]int{1,0}, [2]int{0,1}, [2]int{1,1}}
	GRBG = Pattern{"GRBG", [2]int{1,0}, [2]int{0,0}, [2]int{1,1}, [2]int{0,1}}
	GBRG = Pattern{"GBRG", [2]int{0,1}, [2]int{0,0}, [2]int{1,1}, [2]int{1,0}}
	BGGR = Pattern{"BGGR", [2]int{1,1}, [2]int{1,0}, [2]int{0,1}, [2]int{0,0}}

	Patterns = []Pattern{RGGB, GRBG, GBRG, BGGR}
)

func (p Pattern)String() string { return p.Name }

// ParsePattern looks up a CFA pattern by name, case insensitive. The
// empty string gives RGGB.
func ParsePattern(name string) (Pattern, error) {
	if name == "" {
		return RGGB, nil
	}
	for _, p := range Patterns {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Pattern{}, fmt.Errorf("no CFA pattern named '%s', wanted one of %v", name, Patterns)
}

// Extract pulls the four sub-lattices out of the mosaic by strided
// sampling.
func Extract(g SensorGrid, p Pattern) (Channels, error) {
	if err := g.Validate(); err != nil {
		return Channels{}, err
	}

	return Channels{
		R:  subsample(g, p.R),
		G1: subsample(g, p.G1),
		G2: subsample(g, p.G2),
		B:  subsample(g, p.B),
	}, nil
}

func subsample(g SensorGrid, offset [2]int) ChannelGrid {
	c := ChannelGrid{
		Width:  g.Width / 2,
		Height: g.Height / 2,
		Pix:    make([]uint16, (g.Width/2) * (g.Height/2)),
	}

	for y:=0; y<c.Height; y++ {
		row := (2*y + offset[1]) * g.Width
		for x:=0; x<c.Width; x++ {
			c.Pix[y*c.Width + x] = g.Pix[row + 2*x + offset[0]]
		}
	}

	return c
}
