package app

import (
	"image"
	"image/color"
	"strings"
	"unicode/utf8"

	"tilemarch/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

var (
	statusFG = color.RGBA{R: 0xC0, G: 0xC0, B: 0xC0, A: 0xFF}
	errorBG  = color.RGBA{R: 0x60, A: 0xFF}
	errorFG  = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// textFont is the status and error font; its glyphs fit a StatusBarHeight row.
var textFont = &tinyfont.TomThumb

// fbDisplay adapts an RGB565 framebuffer to drivers.Displayer, clipped to a
// rectangle so text cannot spill onto the image.
type fbDisplay struct {
	fb   hal.Framebuffer
	clip image.Rectangle
}

var _ drivers.Displayer = fbDisplay{}

func (d fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return
	}
	if !image.Pt(int(x), int(y)).In(d.clip) {
		return
	}

	pixel := hal.RGB565(c.R, c.G, c.B)
	off := int(y)*d.fb.StrideBytes() + int(x)*2
	if off < 0 || off+2 > len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d fbDisplay) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d fbDisplay) fill(r image.Rectangle, c color.RGBA) {
	r = r.Intersect(d.clip)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			d.SetPixel(int16(x), int16(y), c)
		}
	}
}

func fontMetrics() (width, height, ascent int16) {
	_, outbox := tinyfont.LineWidth(textFont, "0")
	height = int16(textFont.GetYAdvance())
	// Baseline sits one pixel above the bottom of the row.
	return int16(outbox), height, height - 1
}

// drawStatus writes one line of text into r, truncated to its width.
func drawStatus(fb hal.Framebuffer, r image.Rectangle, line string) {
	d := fbDisplay{fb: fb, clip: r}
	d.fill(r, color.RGBA{A: 0xFF})

	w, _, ascent := fontMetrics()
	if w <= 0 {
		return
	}
	chunk, _ := takeRunes(line, int16(r.Dx())/w)
	tinyfont.WriteLine(d, textFont, int16(r.Min.X), int16(r.Min.Y)+ascent, chunk, statusFG)
}

// drawError replaces the whole framebuffer with err, wrapped to its width.
func drawError(fb hal.Framebuffer, err error) {
	if fb == nil || err == nil {
		return
	}
	full := image.Rect(0, 0, fb.Width(), fb.Height())
	d := fbDisplay{fb: fb, clip: full}
	d.fill(full, errorBG)

	w, h, ascent := fontMetrics()
	if w <= 0 || h <= 0 {
		return
	}
	cols := int16(fb.Width()) / w
	if cols <= 0 {
		cols = 1
	}

	lines := append([]string{"render failed:"}, strings.Split(err.Error(), ": ")...)
	lines = append(lines, "", "any key exits")

	y := int16(2)
	for _, line := range lines {
		for {
			if int(y+h) > fb.Height() {
				return
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(d, textFont, 2, y+ascent, chunk, errorFG)
			y += h
			line = strings.TrimLeft(rest, " ")
			if line == "" {
				break
			}
		}
	}
}

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
