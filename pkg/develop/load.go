package develop

import(
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"
)

// A Batch is the set of frames (and the config) named on a command line.
type Batch struct {
	Frames []Frame
	Config
}

func NewBatch() Batch {
	return Batch{
		Frames: []Frame{},
		Config: NewConfig(),
	}
}

func (b *Batch)LoadFilesAndDirs(args ...string) error {
	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {

		case err != nil:
			return fmt.Errorf("load %s: %v", arg, err)

		case item.IsDir():
			// Is a dir, recurse into contents
			contents, err := os.ReadDir(arg)
			if err != nil {
				return fmt.Errorf("readdir %s: %v", arg, err)
			}
			for _, content := range contents {
				err := b.LoadFilesAndDirs(filepath.Join(arg, content.Name()))
				if errors.Is(err, ErrNotMosaic) {
					// Prob one of our own outputs
					log.Printf("skipping %s: %v\n", content.Name(), err)
				} else if err != nil {
					return fmt.Errorf("load %s: %v", arg, err)
				}
			}

		default: // is a file, load it
			if err := b.loadFile(arg); err != nil {
				return fmt.Errorf("loadfile %s: %w", arg, err)
			}
		}
	}

	return nil
}

func (b *Batch)loadFile(filename string) error {
	ext := filepath.Ext(filename)

	switch strings.ToLower(ext) {

	case ".tif", ".tiff":
		f, err := LoadFrame(filename)
		if err != nil {
			return fmt.Errorf("Loading %s as TIFF failed: %w", filename, err)
		}
		b.Frames = append(b.Frames, f)

	case ".yaml", ".yml":
		cfg, err := LoadConfig(filename)
		if err != nil {
			return fmt.Errorf("Loading %s as config YAML failed: %v", filename, err)
		}
		b.Config = cfg
		log.Printf("Loaded base configuration from %s\n", filename)
	}

	return nil
}

// LoadFrame reads a sensor mosaic from a single channel TIFF, e.g. the
// output of `dcraw -D -4 -T`. EXIF data is optional.
func LoadFrame(filename string) (Frame, error) {
	f := Frame{LoadFilename: filename}

	// First, try to load the EXIF metadata.
	if reader, err := os.Open(filename); err != nil {
		return f, fmt.Errorf("open+r exif '%s': %v", filename, err)
	} else {
		if ci, err := readCaptureInfo(reader); err == nil {
			f.CaptureInfo = ci
		}
		reader.Close()
	}

	// Re-open the file, now for the image data
	reader, err := os.Open(filename)
	if err != nil {
		return f, fmt.Errorf("open+r img '%s': %v", filename, err)
	}
	defer reader.Close()

	img, err := tiff.Decode(reader)
	if err != nil {
		return f, fmt.Errorf("tiff loading '%s': %v", filename, err)
	}

	if f.Grid, err = SensorGridFromImage(img); err != nil {
		return f, fmt.Errorf("'%s': %w", filename, err)
	}

	return f, nil
}
