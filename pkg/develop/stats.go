package develop

import(
	"fmt"

	"github.com/codahale/hdrhistogram"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/abworrall/pixelbin/pkg/bayer"
	"github.com/abworrall/pixelbin/pkg/ecolor"
)

// ChannelStats summarize the distribution of one channel's values.
type ChannelStats struct {
	Name     string
	Min, Max int64
	P50, P99 int64
	Mean     float64
}

func (cs ChannelStats)String() string {
	return fmt.Sprintf("%s[%d-%d, p50=%d, p99=%d]", cs.Name, cs.Min, cs.Max, cs.P50, cs.P99)
}

// StageStats are the ChannelStats for each channel at one point in the
// pipeline.
type StageStats struct {
	Stage    string
	Channels []ChannelStats
}

func (ss StageStats)String() string {
	str := fmt.Sprintf("%-10s:", ss.Stage)
	for _, cs := range ss.Channels {
		str += " " + cs.String()
	}
	return str
}

// Swatch is the mean color of an RGB stage, as a hex string. The
// values are linear, so it'll look darker than the image does.
func (ss StageStats)Swatch() string {
	if len(ss.Channels) != 3 {
		return ""
	}
	c := colorful.Color{
		R: ss.Channels[0].Mean / ecolor.MaxValue,
		G: ss.Channels[1].Mean / ecolor.MaxValue,
		B: ss.Channels[2].Mean / ecolor.MaxValue,
	}
	return c.Clamped().Hex()
}

// channelHistogram takes values in [0, 0xFFFF]; anything outside that
// is clamped, so one bad value doesn't lose the whole stat.
type channelHistogram struct {
	name string
	h    *hdrhistogram.Histogram
}

func newChannelHistogram(name string) channelHistogram {
	return channelHistogram{name: name, h: hdrhistogram.New(1, 0xFFFF, 3)}
}

func (ch channelHistogram)add(v float64) {
	if v < 0 { v = 0 }
	if v > ecolor.MaxValue { v = ecolor.MaxValue }
	ch.h.RecordValue(int64(v)) // can't fail, we clamped to the range
}

func (ch channelHistogram)stats() ChannelStats {
	if ch.h.TotalCount() == 0 {
		return ChannelStats{Name: ch.name}
	}
	return ChannelStats{
		Name: ch.name,
		Min:  ch.h.Min(),
		Max:  ch.h.Max(),
		P50:  ch.h.ValueAtQuantile(50),
		P99:  ch.h.ValueAtQuantile(99),
		Mean: ch.h.Mean(),
	}
}

func gridStats(name string, pix []uint16) ChannelStats {
	ch := newChannelHistogram(name)
	for _, v := range pix {
		ch.add(float64(v))
	}
	return ch.stats()
}

// SensorStats describes the raw mosaic.
func SensorStats(g bayer.SensorGrid) StageStats {
	return StageStats{Stage: "sensor", Channels: []ChannelStats{gridStats("all", g.Pix)}}
}

// BayerStats describes the four extracted sub-lattices.
func BayerStats(ch bayer.Channels) StageStats {
	return StageStats{
		Stage: "bayer",
		Channels: []ChannelStats{
			gridStats("R", ch.R.Pix),
			gridStats("G1", ch.G1.Pix),
			gridStats("G2", ch.G2.Pix),
			gridStats("B", ch.B.Pix),
		},
	}
}

// ImageStats describes a linear RGB image.
func ImageStats(stage string, img ecolor.LinearImage) StageStats {
	hists := []channelHistogram{newChannelHistogram("R"), newChannelHistogram("G"), newChannelHistogram("B")}
	for i:=0; i<len(img.Pix); i+=3 {
		hists[0].add(img.Pix[i])
		hists[1].add(img.Pix[i+1])
		hists[2].add(img.Pix[i+2])
	}

	ss := StageStats{Stage: stage}
	for _, h := range hists {
		ss.Channels = append(ss.Channels, h.stats())
	}
	return ss
}
