// Package imgout writes rendered frames to image files.
package imgout

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// MaxScale bounds the upscale factor.
const MaxScale = 16

// Format is an output encoding.
type Format uint8

const (
	FormatPNG Format = iota + 1
	FormatBMP
	FormatTIFF
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

var ErrUnknownFormat = errors.New("imgout: unknown image format")

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Upscale enlarges img by an integer factor with nearest-neighbour sampling,
// keeping each pixel a solid block. A factor of 1 returns img unchanged.
func Upscale(img image.Image, factor int) (image.Image, error) {
	if factor < 1 || factor > MaxScale {
		return nil, fmt.Errorf("imgout: scale %d out of range 1..%d", factor, MaxScale)
	}
	if factor == 1 {
		return img, nil
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst, nil
}

// Encode writes img to w in format f.
func Encode(w io.Writer, f Format, img image.Image) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
}

// Save upscales img and writes it to path in the format its extension names.
func Save(path string, img image.Image, scale int) (err error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	out, err := Upscale(img, scale)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if err := Encode(file, f, out); err != nil {
		return fmt.Errorf("imgout: encode %s: %w", f, err)
	}
	return nil
}
