package imageopt_test

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"runtime"
	"testing"

	"lapak/pkg/imageopt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	return img
}

func TestOptimize_PNGIsResizedToFit(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(1600, 400)))

	out := imageopt.Resizer{}.Optimize(buf.Bytes(), "png")

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}

func TestOptimize_JPEGIsReencoded(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, solid(300, 900), &jpeg.Options{Quality: 100}))

	out := imageopt.Resizer{}.Optimize(buf.Bytes(), "image/jpg")

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 266, cfg.Width)
	assert.Equal(t, 800, cfg.Height)
}

func TestOptimize_PassthroughOnFailure(t *testing.T) {
	garbage := []byte("definitely not an image")
	assert.Equal(t, garbage, imageopt.Resizer{}.Optimize(garbage, "png"))

	gif := []byte("GIF89a...")
	assert.Equal(t, gif, imageopt.Resizer{}.Optimize(gif, "gif"))
}

func pngChunk(kind string, data []byte) []byte {
	var b bytes.Buffer
	_ = binary.Write(&b, binary.BigEndian, uint32(len(data)))
	b.WriteString(kind)
	b.Write(data)
	crc := crc32.NewIEEE()
	crc.Write([]byte(kind))
	crc.Write(data)
	_ = binary.Write(&b, binary.BigEndian, crc.Sum32())
	return b.Bytes()
}

// hugePNG is a valid PNG header declaring a 20000x20000 RGBA image with no
// pixel data behind it.
func hugePNG() []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], 20000)
	binary.BigEndian.PutUint32(ihdr[4:], 20000)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 6 // RGBA

	var b bytes.Buffer
	b.WriteString("\x89PNG\r\n\x1a\n")
	b.Write(pngChunk("IHDR", ihdr))
	b.Write(pngChunk("IDAT", nil))
	b.Write(pngChunk("IEND", nil))
	return b.Bytes()
}

func TestOptimize_OversizedHeaderIsNotDecoded(t *testing.T) {
	data := hugePNG()

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 20000, cfg.Width)

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)

	out := imageopt.Resizer{}.Optimize(data, "png")

	runtime.ReadMemStats(&after)
	assert.Equal(t, data, out)
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(64<<20), "no full-size buffer may be allocated")
}
