package march

import (
	"image"
	"image/color"
)

// Target is a pixel sink of fixed size.
//
// Implementations should clip out-of-bounds coordinates.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c color.RGBA)
}

// RGB565Target renders into a little-endian RGB565 buffer.
//
// Callers provide the backing buffer and layout (stride). To draw into a
// sub-rectangle of a larger surface, slice Buf at the rectangle's first pixel
// and keep the surface stride.
type RGB565Target struct {
	Buf    []byte
	Stride int // bytes per row
	W      int
	H      int
}

func (t *RGB565Target) Size() (w, h int) { return t.W, t.H }

func (t *RGB565Target) SetPixel(x, y int, c color.RGBA) {
	if t == nil || t.Buf == nil || t.Stride <= 0 {
		return
	}
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return
	}
	off := y*t.Stride + x*2
	if off < 0 || off+2 > len(t.Buf) {
		return
	}
	p := RGB565(c.R, c.G, c.B)
	t.Buf[off] = byte(p)
	t.Buf[off+1] = byte(p >> 8)
}

// RGB565 packs 8-bit channels as rrrrrggggggbbbbb, dropping the low bits.
func RGB565(r, g, b uint8) uint16 {
	return uint16((uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | (uint16(b>>3) & 0x1F))
}

type imageTarget struct {
	img *image.RGBA
}

func (t imageTarget) Size() (w, h int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

func (t imageTarget) SetPixel(x, y int, c color.RGBA) {
	b := t.img.Bounds()
	t.img.SetRGBA(b.Min.X+x, b.Min.Y+y, c)
}
