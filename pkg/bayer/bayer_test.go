package bayer

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// phaseGrid fills each 2x2 phase of an RGGB mosaic with a constant.
func phaseGrid(w, h int, r, g1, g2, b uint16) SensorGrid {
	g := NewSensorGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			switch {
			case y%2 == 0 && x%2 == 0:
				g.Set(x, y, r)
			case y%2 == 0:
				g.Set(x, y, g1)
			case x%2 == 0:
				g.Set(x, y, g2)
			default:
				g.Set(x, y, b)
			}
		}
	}
	return g
}

func TestExtractPhases(t *testing.T) {
	g := phaseGrid(4, 4, 1000, 2000, 3000, 4000)

	ch, err := Extract(g, RGGB)
	require.NoError(t, err)

	assert.Equal(t, 2, ch.Width())
	assert.Equal(t, 2, ch.Height())
	if diff := cmp.Diff([]uint16{1000, 1000, 1000, 1000}, ch.R.Pix); diff != "" {
		t.Errorf("R mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uint16{2000, 2000, 2000, 2000}, ch.G1.Pix); diff != "" {
		t.Errorf("G1 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uint16{3000, 3000, 3000, 3000}, ch.G2.Pix); diff != "" {
		t.Errorf("G2 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uint16{4000, 4000, 4000, 4000}, ch.B.Pix); diff != "" {
		t.Errorf("B mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractPartitionsGrid(t *testing.T) {
	for _, dims := range [][2]int{{2, 2}, {4, 6}, {8, 2}, {10, 12}} {
		w, h := dims[0], dims[1]
		g := NewSensorGrid(w, h)
		for i := range g.Pix {
			g.Pix[i] = uint16(i) // every sample distinct
		}

		for _, p := range Patterns {
			ch, err := Extract(g, p)
			require.NoError(t, err)

			seen := map[uint16]int{}
			for _, c := range []ChannelGrid{ch.R, ch.G1, ch.G2, ch.B} {
				assert.Equal(t, w/2, c.Width)
				assert.Equal(t, h/2, c.Height)
				for _, v := range c.Pix {
					seen[v]++
				}
			}

			assert.Len(t, seen, w*h, "%dx%d %s: every sample used", w, h, p)
			for v, n := range seen {
				assert.Equal(t, 1, n, "%dx%d %s: sample %d used %d times", w, h, p, v, n)
			}
		}
	}
}

func TestExtractPatternOffsets(t *testing.T) {
	// A single 2x2 block, samples numbered in reading order
	g := SensorGrid{Width: 2, Height: 2, Pix: []uint16{1, 2, 3, 4}}

	tests := []struct {
		pattern      Pattern
		r, g1, g2, b uint16
	}{
		{RGGB, 1, 2, 3, 4},
		{GRBG, 2, 1, 4, 3},
		{GBRG, 3, 1, 4, 2},
		{BGGR, 4, 2, 3, 1},
	}

	for _, tc := range tests {
		t.Run(tc.pattern.Name, func(t *testing.T) {
			ch, err := Extract(g, tc.pattern)
			require.NoError(t, err)
			assert.Equal(t, tc.r, ch.R.At(0, 0))
			assert.Equal(t, tc.g1, ch.G1.At(0, 0))
			assert.Equal(t, tc.g2, ch.G2.At(0, 0))
			assert.Equal(t, tc.b, ch.B.At(0, 0))
		})
	}
}

func TestExtractRejectsBadGrids(t *testing.T) {
	_, err := Extract(NewSensorGrid(3, 4), RGGB)
	assert.True(t, errors.Is(err, ErrOddDimensions))

	_, err = Extract(NewSensorGrid(4, 5), RGGB)
	assert.True(t, errors.Is(err, ErrOddDimensions))

	_, err = Extract(SensorGrid{}, RGGB)
	assert.True(t, errors.Is(err, ErrEmptyGrid))

	_, err = Extract(SensorGrid{Width: 4, Height: 4, Pix: make([]uint16, 8)}, RGGB)
	assert.True(t, errors.Is(err, ErrShortGrid))
}

func TestParsePattern(t *testing.T) {
	p, err := ParsePattern("")
	require.NoError(t, err)
	assert.Equal(t, RGGB, p)

	for _, want := range Patterns {
		got, err := ParsePattern(want.Name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	p, err = ParsePattern("bggr")
	require.NoError(t, err)
	assert.Equal(t, BGGR, p)

	_, err = ParsePattern("XTRANS")
	assert.Error(t, err)
}

func TestSubtractBlackLevel(t *testing.T) {
	g := SensorGrid{Width: 2, Height: 2, Pix: []uint16{0, 100, 512, 65535}}

	out := g.SubtractBlackLevel(512)
	assert.Equal(t, []uint16{0, 0, 0, 65023}, out.Pix)
	assert.Equal(t, []uint16{0, 100, 512, 65535}, g.Pix, "input untouched")

	same := g.SubtractBlackLevel(0)
	assert.Equal(t, g.Pix, same.Pix)
}
