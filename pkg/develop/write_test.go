package develop

import(
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"

	"github.com/abworrall/pixelbin/pkg/bayer"
)

func decodeFile(t *testing.T, filename string, decode func(*os.File) (image.Image, error)) image.Image {
	t.Helper()
	f, err := os.Open(filename)
	require.NoError(t, err)
	defer f.Close()
	img, err := decode(f)
	require.NoError(t, err, filename)
	return img
}

func fixtureResult(t *testing.T, cfg Config) Result {
	d := newTestDeveloper(t, cfg)
	r, err := d.Process(fixtureGrid(), fixtureWB)
	require.NoError(t, err)
	return r
}

func TestWriteAll(t *testing.T) {
	cfg := NewConfig()
	cfg.Output.WriteHDR = true
	r := fixtureResult(t, cfg)
	base := filepath.Join(t.TempDir(), "IMG_0001_developed")

	written, err := r.WriteAll(base, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{
		base + "_raw.tiff",
		base + ".tiff",
		base + "_preview.jpg",
		base + ".hdr",
	}, written)

	corrected := decodeFile(t, base + ".tiff", func(f *os.File) (image.Image, error) { return tiff.Decode(f) })
	assert.Equal(t, image.Rect(0, 0, 2, 2), corrected.Bounds())
	cr, cg, cb, _ := corrected.At(1, 1).RGBA()
	assert.InDelta(t, 1050, cr, 1)
	assert.InDelta(t, 2250, cg, 1)
	assert.InDelta(t, 7100, cb, 1)

	raw := decodeFile(t, base + "_raw.tiff", func(f *os.File) (image.Image, error) { return tiff.Decode(f) })
	rr, rg, rb, _ := raw.At(0, 0).RGBA()
	assert.Equal(t, []uint32{2000, 2500, 6000}, []uint32{rr, rg, rb})

	preview := decodeFile(t, base + "_preview.jpg", func(f *os.File) (image.Image, error) { return jpeg.Decode(f) })
	assert.Equal(t, image.Rect(0, 0, 2, 2), preview.Bounds())

	info, err := os.Stat(base + ".hdr")
	require.NoError(t, err)
	assert.True(t, info.Size() > 0)
}

func TestWriteAllPNGPreviewNoRaw(t *testing.T) {
	cfg := NewConfig()
	cfg.Output.WriteRaw = false
	cfg.Output.PreviewFormat = "png"
	r := fixtureResult(t, cfg)
	base := filepath.Join(t.TempDir(), "out")

	written, err := r.WriteAll(base, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{base + ".tiff", base + "_preview.png"}, written)
	assert.NoFileExists(t, base + "_raw.tiff")

	// PNG is lossless, so the preview survives exactly
	preview := decodeFile(t, base + "_preview.png", func(f *os.File) (image.Image, error) { return png.Decode(f) })
	r8, g8, b8, a8 := preview.At(0, 1).RGBA()
	assert.Equal(t, color.RGBA{72, 104, 176, 0xFF}, color.RGBA{uint8(r8>>8), uint8(g8>>8), uint8(b8>>8), uint8(a8>>8)})
}

func TestWriteAllReportsFailures(t *testing.T) {
	cfg := NewConfig()
	r := fixtureResult(t, cfg)
	base := filepath.Join(t.TempDir(), "no", "such", "dir", "out")

	written, err := r.WriteAll(base, cfg)
	assert.Error(t, err)
	assert.Empty(t, written)

	// The in-memory result is still there
	assert.Equal(t, color.RGBA{72, 104, 176, 0xFF}, r.Preview.RGBAAt(0, 0))
}

func TestSensorGridFromImage(t *testing.T) {
	g16 := image.NewGray16(image.Rect(0, 0, 4, 2))
	g16.SetGray16(3, 1, color.Gray16{0xABCD})
	grid, err := SensorGridFromImage(g16)
	require.NoError(t, err)
	assert.Equal(t, 4, grid.Width)
	assert.Equal(t, 2, grid.Height)
	assert.Equal(t, uint16(0xABCD), grid.At(3, 1))
	assert.Equal(t, uint16(0), grid.At(0, 0))

	g8 := image.NewGray(image.Rect(0, 0, 2, 2))
	g8.SetGray(1, 0, color.Gray{0x12})
	grid, err = SensorGridFromImage(g8)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1212), grid.At(1, 0))

	_, err = SensorGridFromImage(image.NewRGBA64(image.Rect(0, 0, 2, 2)))
	assert.True(t, errors.Is(err, ErrNotMosaic), "got %v", err)
}

func writeMosaicTIFF(t *testing.T, filename string, g bayer.SensorGrid) {
	img := image.NewGray16(image.Rect(0, 0, g.Width, g.Height))
	for y:=0; y<g.Height; y++ {
		for x:=0; x<g.Width; x++ {
			img.SetGray16(x, y, color.Gray16{g.At(x, y)})
		}
	}
	f, err := os.Create(filename)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, tiff.Encode(f, img, nil))
}

func TestLoadFrame(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "IMG_0001.tiff")
	writeMosaicTIFF(t, filename, fixtureGrid())

	f, err := LoadFrame(filename)
	require.NoError(t, err)

	if diff := cmp.Diff(fixtureGrid(), f.Grid); diff != "" {
		t.Errorf("loaded grid (-want +got):\n%s", diff)
	}
	assert.Equal(t, "IMG_0001.tiff", f.Filename())
	assert.Equal(t, filepath.Join(filepath.Dir(filename), "IMG_0001_developed"), f.OutputBase())
	assert.Equal(t, "", f.Camera())

	_, err = LoadFrame(filepath.Join(t.TempDir(), "missing.tiff"))
	assert.Error(t, err)
}

func TestBatchLoadFilesAndDirs(t *testing.T) {
	dir := t.TempDir()
	writeMosaicTIFF(t, filepath.Join(dir, "a.tiff"), fixtureGrid())
	writeMosaicTIFF(t, filepath.Join(dir, "b.TIF"), uniformGrid(2, 2, 7))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "camera.yaml"), []byte("cfapattern: BGGR\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	// An earlier run's output is RGB, and gets skipped
	r := fixtureResult(t, NewConfig())
	_, err := r.WriteAll(filepath.Join(dir, "a_developed"), NewConfig())
	require.NoError(t, err)

	b := NewBatch()
	require.NoError(t, b.LoadFilesAndDirs(dir))

	require.Len(t, b.Frames, 2)
	assert.Equal(t, "a.tiff", b.Frames[0].Filename())
	assert.Equal(t, "b.TIF", b.Frames[1].Filename())
	assert.Equal(t, bayer.BGGR, b.Config.Pattern)

	// Named explicitly, a non-mosaic is an error
	b = NewBatch()
	err = b.LoadFilesAndDirs(filepath.Join(dir, "a_developed.tiff"))
	assert.True(t, errors.Is(err, ErrNotMosaic), "got %v", err)

	b = NewBatch()
	assert.Error(t, b.LoadFilesAndDirs(filepath.Join(dir, "nope")))
}

func TestCaptureInfoString(t *testing.T) {
	ci := CaptureInfo{
		Make:         "Canon\x00",
		Model:        "EOS R5 ",
		ISO:          100,
		ApertureX10:  56,
		ShutterSpeed: rat64{1, 500},
	}
	assert.Equal(t, "Canon EOS R5, f/5.6, 1/500, ISO100", ci.String())
	assert.Equal(t, "unknown camera, 2", CaptureInfo{ShutterSpeed: rat64{2, 1}}.String())
}

func TestShrinkToFit(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 100))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}

	small := ShrinkToFit(img, 200)
	assert.Equal(t, image.Rect(0, 0, 200, 50), small.Bounds())
	r, _, _, _ := small.At(100, 25).RGBA()
	assert.InDelta(t, 0x8080, r, 0x101)

	tall := ShrinkToFit(image.NewRGBA(image.Rect(0, 0, 10, 1000)), 100)
	assert.Equal(t, image.Rect(0, 0, 1, 100), tall.Bounds())

	assert.Same(t, img, ShrinkToFit(img, 0))
	assert.Same(t, img, ShrinkToFit(img, 400))
}

func TestWriteAllShrinksPreview(t *testing.T) {
	cfg := NewConfig()
	cfg.Output.PreviewFormat = "png"
	cfg.Output.PreviewMaxDim = 1
	r := fixtureResult(t, cfg)
	base := filepath.Join(t.TempDir(), "small")

	_, err := r.WriteAll(base, cfg)
	require.NoError(t, err)

	preview := decodeFile(t, base + "_preview.png", func(f *os.File) (image.Image, error) { return png.Decode(f) })
	assert.Equal(t, image.Rect(0, 0, 1, 1), preview.Bounds())
}
