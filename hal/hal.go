// Package hal is the display collaborator of the renderer: a pixel surface of
// known format, a key event stream and a line logger, with a desktop backend
// (ebiten window or headless ticker) and a PicoCalc backend.
package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// ErrNotImplemented reports a backend without the requested capability.
var ErrNotImplemented = errors.New("hal: not implemented")

// ErrDismissed is returned by an app step once the user has dismissed the
// display. Runners treat it as a clean exit.
var ErrDismissed = errors.New("hal: dismissed")

// PixelFormat is the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp little-endian: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a row-major pixel surface. Writes to Buffer become visible
// on Present.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode names the non-printing keys; printable keys arrive as KeyUnknown
// with Rune set.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeySpace
)

type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard delivers key events. Events returns nil when the backend has no
// keyboard.
type Keyboard interface {
	Events() <-chan KeyEvent
}

type Display interface {
	Framebuffer() Framebuffer
}

type Input interface {
	Keyboard() Keyboard
}

// HAL is everything the renderer may touch outside its own memory.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
}
