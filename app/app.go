package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"runtime/debug"
	"strings"
	"time"

	"tilemarch/hal"
	"tilemarch/internal/buildinfo"
	"tilemarch/march"
)

// StatusBarHeight is the height of the status line drawn beneath the image.
const StatusBarHeight = 8

type Config struct {
	Scene   march.Scene
	Workers int
	// Overlay draws a status line beneath the image when the framebuffer has
	// room for it.
	Overlay bool
}

var (
	errNoFramebuffer = errors.New("app: no framebuffer")
	errNoKeyboard    = errors.New("app: no keyboard events")
	errKeyboardGone  = errors.New("app: keyboard closed")
)

// Layout places the image and status line inside the framebuffer.
type Layout struct {
	Image  image.Rectangle
	Status image.Rectangle // empty when there is no status line
}

// ComputeLayout centres a w x h image in a fbW x fbH framebuffer, with the
// status line directly beneath it when overlay is set and it fits.
func ComputeLayout(fbW, fbH, w, h int, overlay bool) (Layout, error) {
	if w > fbW || h > fbH {
		return Layout{}, fmt.Errorf("app: framebuffer %dx%d smaller than image %dx%d", fbW, fbH, w, h)
	}
	total := h
	if overlay && h+StatusBarHeight <= fbH {
		total += StatusBarHeight
	} else {
		overlay = false
	}

	x0 := (fbW - w) / 2
	y0 := (fbH - total) / 2
	l := Layout{Image: image.Rect(x0, y0, x0+w, y0+h)}
	if overlay {
		l.Status = image.Rect(x0, y0+h, x0+w, y0+h+StatusBarHeight)
	}
	return l, nil
}

type session struct {
	h   hal.HAL
	cfg Config

	shown bool
	kbd   hal.Keyboard
}

// New returns the step function driven by the host runners. The first step
// renders the scene and presents it; later steps return hal.ErrDismissed once
// a key is pressed.
func New(h hal.HAL, cfg Config) func() error {
	s := &session{h: h, cfg: cfg}
	if in := h.Input(); in != nil {
		s.kbd = in.Keyboard()
	}
	return s.step
}

// Run shows the scene, waits for a key press and tears the display down
// (blocking entrypoint for devices).
//
// Without a keyboard the image stays up until ctx ends.
func Run(ctx context.Context, h hal.HAL, cfg Config) error {
	s := &session{h: h, cfg: cfg}
	if in := h.Input(); in != nil {
		s.kbd = in.Keyboard()
	}
	if err := s.step(); err != nil {
		return err
	}

	err := WaitForKey(ctx, s.kbd)
	if errors.Is(err, errNoKeyboard) {
		s.logf("app: %v; holding display", err)
		<-ctx.Done()
		err = ctx.Err()
	}

	if fb := s.framebuffer(); fb != nil {
		fb.ClearRGB(0, 0, 0)
		_ = fb.Present()
	}
	return err
}

// WaitForKey blocks until a key is pressed or ctx ends.
func WaitForKey(ctx context.Context, kbd hal.Keyboard) error {
	if kbd == nil {
		return errNoKeyboard
	}
	ch := kbd.Events()
	if ch == nil {
		return errNoKeyboard
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-ch:
			if !ok {
				return errKeyboardGone
			}
			if ev.Press {
				return nil
			}
		}
	}
}

func (s *session) step() error {
	if !s.shown {
		s.shown = true
		return s.show()
	}
	return s.pollDismiss()
}

func (s *session) pollDismiss() error {
	if s.kbd == nil {
		return nil
	}
	ch := s.kbd.Events()
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			if ev.Press {
				return hal.ErrDismissed
			}
		default:
			return nil
		}
	}
}

func (s *session) show() error {
	fb := s.framebuffer()
	if fb == nil {
		return errNoFramebuffer
	}
	s.logf("app: tilemarch %s", buildinfo.Short())

	fb.ClearRGB(0, 0, 0)
	if err := s.draw(fb); err != nil {
		s.logf("app: %v", err)
		drawError(fb, err)
	}
	if err := fb.Present(); err != nil {
		s.logf("app: present: %v", err)
	}
	return nil
}

func (s *session) draw(fb hal.Framebuffer) (err error) {
	if fb.Format() != hal.PixelFormatRGB565 {
		return fmt.Errorf("app: unsupported pixel format %d", fb.Format())
	}
	sc := s.cfg.Scene
	if err := sc.Validate(); err != nil {
		return err
	}
	l, err := ComputeLayout(fb.Width(), fb.Height(), sc.Width, sc.Height, s.cfg.Overlay)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			for _, line := range strings.Split(string(debug.Stack()), "\n") {
				if line != "" {
					s.logf("%s", line)
				}
			}
			err = fmt.Errorf("render panic: %v", r)
		}
	}()

	start := time.Now()
	frame, st, err := march.Render(context.Background(), sc, s.cfg.Workers)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	took := time.Since(start)

	frame.Blit(imageTarget(fb, l.Image))
	s.logf("app: rendered %dx%d in %s hits=%d misses=%d nonfinite=%d saturated=%d maxsteps=%d",
		sc.Width, sc.Height, took.Round(time.Millisecond), st.Hits, st.Misses, st.NonFinite, st.Saturated, st.MaxSteps)

	if !l.Status.Empty() {
		drawStatus(fb, l.Status, statusLine(st, took))
	}
	return nil
}

func statusLine(st march.Stats, took time.Duration) string {
	line := fmt.Sprintf("%d/%d lit %dms", st.Hits, st.Hits+st.Misses, took.Milliseconds())
	if st.NonFinite > 0 {
		line += fmt.Sprintf(" %d nonfinite", st.NonFinite)
	}
	return line + "  any key exits"
}

// imageTarget addresses the framebuffer rectangle r as its own RGB565 surface.
func imageTarget(fb hal.Framebuffer, r image.Rectangle) *march.RGB565Target {
	stride := fb.StrideBytes()
	off := r.Min.Y*stride + r.Min.X*2
	buf := fb.Buffer()
	if off < 0 || off > len(buf) {
		return &march.RGB565Target{}
	}
	return &march.RGB565Target{Buf: buf[off:], Stride: stride, W: r.Dx(), H: r.Dy()}
}

func (s *session) framebuffer() hal.Framebuffer {
	d := s.h.Display()
	if d == nil {
		return nil
	}
	return d.Framebuffer()
}

func (s *session) logf(format string, args ...any) {
	if l := s.h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf(format, args...))
	}
}
