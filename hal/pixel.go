package hal

import "image"

// RGB565 packs 8-bit channels, dropping the low bits.
func RGB565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

// RGB888From565 expands p back to 8-bit channels (full scale maps to 255).
func RGB888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

// Snapshot copies an RGB565 framebuffer into an opaque RGBA image.
//
// It returns nil for any other pixel format.
func Snapshot(fb Framebuffer) *image.RGBA {
	if fb == nil || fb.Format() != PixelFormatRGB565 {
		return nil
	}
	w, h := fb.Width(), fb.Height()
	if w <= 0 || h <= 0 {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if s, ok := fb.(snapshotter); ok {
		buf := make([]byte, len(fb.Buffer()))
		s.snapshotRGB565(buf)
		decodeRGB565(img, buf, fb.StrideBytes())
		return img
	}
	decodeRGB565(img, fb.Buffer(), fb.StrideBytes())
	return img
}

// snapshotter is implemented by framebuffers that can be written concurrently
// with a read.
type snapshotter interface {
	snapshotRGB565(dst []byte)
}

func decodeRGB565(img *image.RGBA, src []byte, stride int) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	for y := 0; y < h; y++ {
		row := y * stride
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			off := row + x*2
			if off < 0 || off+2 > len(src) {
				break
			}
			r, g, b := RGB888From565(uint16(src[off]) | uint16(src[off+1])<<8)
			j := x * 4
			dst[j+0] = r
			dst[j+1] = g
			dst[j+2] = b
			dst[j+3] = 0xFF
		}
	}
}
