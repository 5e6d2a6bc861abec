// Package imageopt shrinks uploaded product images before they are stored.
package imageopt

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"strings"

	"golang.org/x/image/draw"
)

const (
	MaxWidth    = 800
	MaxHeight   = 800
	JPEGQuality = 70

	// MaxPixels bounds the decoded size of an upload. Larger images are
	// stored as sent, never decoded.
	MaxPixels = 40_000_000
)

// Optimizer turns raw upload bytes into bytes safe to persist.
type Optimizer interface {
	Optimize(data []byte, formatHint string) []byte
}

// Resizer is the default Optimizer. JPEG and PNG images are scaled to fit
// within MaxWidth x MaxHeight, keeping the aspect ratio, and re-encoded.
// Anything it cannot handle is returned unchanged.
type Resizer struct{}

// Optimize implements Optimizer.
func (Resizer) Optimize(data []byte, formatHint string) []byte {
	format := normalize(formatHint)
	if format != "jpeg" && format != "png" {
		return data
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return data
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return data
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}
	dst := fit(src, MaxWidth, MaxHeight)

	var out bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&out, dst)
	default:
		err = jpeg.Encode(&out, dst, &jpeg.Options{Quality: JPEGQuality})
	}
	if err != nil {
		return data
	}
	return out.Bytes()
}

func normalize(hint string) string {
	hint = strings.ToLower(strings.TrimSpace(hint))
	hint = strings.TrimPrefix(hint, "image/")
	if hint == "jpg" {
		return "jpeg"
	}
	return hint
}

// fit scales src so that it fits in maxW x maxH. Smaller images are scaled up,
// matching a plain "resize to fit" of the upload pipeline.
func fit(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return src
	}

	nw, nh := maxW, h*maxW/w
	if nh > maxH {
		nw, nh = w*maxH/h, maxH
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
