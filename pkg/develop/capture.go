package develop

import(
	"fmt"
	"io"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
)

type rat64 [2]int64

// CaptureInfo is what the camera recorded about the shot. None of it
// feeds into the pipeline; it's for the logs, so you can tell which
// frame was which.
type CaptureInfo struct {
	Make         string
	Model        string
	ISO          int64
	ApertureX10  int64   // f/5.6 is the integer 56.
	ShutterSpeed rat64   // 1/500, 1/1000, etc.
}

func (ci CaptureInfo)Camera() string {
	trim := func(s string) string { return strings.Trim(s, " \x00") }
	return strings.TrimSpace(trim(ci.Make) + " " + trim(ci.Model))
}

func (ci CaptureInfo)String() string {
	s := ci.Camera()
	if s == "" {
		s = "unknown camera"
	}
	if ci.ApertureX10 > 0 {
		s += fmt.Sprintf(", f/%.1f", float32(ci.ApertureX10)/10.0)
	}
	if ci.ShutterSpeed[1] > 1 {
		s += fmt.Sprintf(", %d/%d", ci.ShutterSpeed[0], ci.ShutterSpeed[1])
	} else if ci.ShutterSpeed[1] == 1 {
		s += fmt.Sprintf(", %d", ci.ShutterSpeed[0])
	}
	if ci.ISO > 0 {
		s += fmt.Sprintf(", ISO%d", ci.ISO)
	}
	return s
}

// readCaptureInfo pulls what it can from the EXIF data. It only fails if
// there's no EXIF at all; missing individual tags are just left blank.
func readCaptureInfo(r io.Reader) (CaptureInfo, error) {
	ci := CaptureInfo{}

	ex, err := exif.Decode(r)
	if err != nil {
		return ci, fmt.Errorf("exif parsing: %v", err)
	}

	if tag, err := ex.Get(exif.Make); err == nil {
		ci.Make, _ = tag.StringVal()
	}
	if tag, err := ex.Get(exif.Model); err == nil {
		ci.Model, _ = tag.StringVal()
	}

	if tag, err := ex.Get(exif.ISOSpeedRatings); err == nil {
		if val, err := tag.Int64(0); err == nil {
			ci.ISO = val
		}
	}

	if tag, err := ex.Get(exif.FNumber); err == nil {
		if num, denom, err := tag.Rat2(0); err == nil && denom != 0 {
			ci.ApertureX10 = num * 10 / denom
		}
	}

	if tag, err := ex.Get(exif.ExposureTime); err == nil {
		if num, denom, err := tag.Rat2(0); err == nil {
			ci.ShutterSpeed = rat64{num, denom}
		}
	}

	return ci, nil
}
