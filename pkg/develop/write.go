package develop

// Writers for each of the pipeline's outputs.

import(
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log"
	"os"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/abworrall/pixelbin/pkg/ecolor"
)

func WritePNG(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img)
	}
}

func WriteJPEG(img image.Image, filename string, quality int) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return jpeg.Encode(writer, img, &jpeg.Options{Quality: quality})
	}
}

// WriteTIFF16 writes a linear image as a 16-bit RGB TIFF. Values are
// clamped and truncated, no gamma.
func WriteTIFF16(img ecolor.LinearImage, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return tiff.Encode(writer, img.ToRGBA64(), &tiff.Options{Compression: tiff.Deflate})
	}
}

func WriteHDR(img hdr.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return rgbe.Encode(writer, img)
	}
}

// ShrinkToFit scales img down so neither side is longer than maxDim,
// keeping the aspect ratio. Images that already fit are returned as is.
func ShrinkToFit(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	if maxDim <= 0 || (b.Dx() <= maxDim && b.Dy() <= maxDim) {
		return img
	}

	w, h := maxDim, maxDim
	if b.Dx() > b.Dy() {
		h = b.Dy() * maxDim / b.Dx()
	} else {
		w = b.Dx() * maxDim / b.Dy()
	}
	if w < 1 { w = 1 }
	if h < 1 { h = 1 }

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func writePreviewJPEG(img image.Image, filename string, cfg OutputConfig) error {
	return WriteJPEG(ShrinkToFit(img, cfg.PreviewMaxDim), filename, cfg.JPEGQuality)
}

func writePreviewPNG(img image.Image, filename string, cfg OutputConfig) error {
	return WritePNG(ShrinkToFit(img, cfg.PreviewMaxDim), filename)
}

// OutputFilenames are where WriteAll puts things, for a given base.
func (c Config)OutputFilenames(base string) (raw, corrected, preview, hdrFile string) {
	return base + "_raw.tiff", base + ".tiff", base + "_preview" + c.PreviewExt(), base + ".hdr"
}

// WriteAll persists a Result: the corrected 16-bit TIFF and the
// preview always, the merged TIFF and the .hdr if the config asks. It
// returns the names of the files it wrote.
func (r Result)WriteAll(base string, c Config) ([]string, error) {
	written := []string{}
	rawFile, correctedFile, previewFile, hdrFile := c.OutputFilenames(base)

	if c.Output.WriteRaw {
		if err := WriteTIFF16(r.Merged, rawFile); err != nil {
			return written, fmt.Errorf("write raw '%s': %v", rawFile, err)
		}
		written = append(written, rawFile)
	}

	if err := WriteTIFF16(r.Corrected, correctedFile); err != nil {
		return written, fmt.Errorf("write corrected '%s': %v", correctedFile, err)
	}
	written = append(written, correctedFile)

	pw, err := c.GetPreviewWriter()
	if err != nil {
		return written, err
	}
	if err := pw(r.Preview, previewFile, c.Output); err != nil {
		return written, fmt.Errorf("write preview '%s': %v", previewFile, err)
	}
	written = append(written, previewFile)

	if c.Output.WriteHDR {
		if err := WriteHDR(r.Corrected, hdrFile); err != nil {
			return written, fmt.Errorf("write hdr '%s': %v", hdrFile, err)
		}
		written = append(written, hdrFile)
	}

	if c.Verbosity > 0 {
		for _, f := range written {
			log.Printf("wrote %s\n", f)
		}
	}

	return written, nil
}
