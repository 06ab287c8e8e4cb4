package app

import (
	"context"
	"errors"
	"image"
	"strings"
	"sync"
	"testing"
	"time"

	"tilemarch/hal"
	"tilemarch/march"
)

type testFramebuffer struct {
	w, h     int
	buf      []byte
	presents int
}

func newTestFramebuffer(w, h int) *testFramebuffer {
	return &testFramebuffer{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *testFramebuffer) Width() int              { return f.w }
func (f *testFramebuffer) Height() int             { return f.h }
func (f *testFramebuffer) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *testFramebuffer) StrideBytes() int        { return f.w * 2 }
func (f *testFramebuffer) Buffer() []byte          { return f.buf }
func (f *testFramebuffer) Present() error          { f.presents++; return nil }

func (f *testFramebuffer) ClearRGB(r, g, b uint8) {
	p := hal.RGB565(r, g, b)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = byte(p)
		f.buf[i+1] = byte(p >> 8)
	}
}

func (f *testFramebuffer) pixel(x, y int) uint16 {
	off := y*f.w*2 + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

type testKeyboard struct {
	ch chan hal.KeyEvent
}

func (k *testKeyboard) Events() <-chan hal.KeyEvent { return k.ch }

type testLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *testLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}

func (l *testLogger) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func (l *testLogger) contains(sub string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, sub) {
			return true
		}
	}
	return false
}

type testHAL struct {
	log *testLogger
	fb  hal.Framebuffer
	kbd hal.Keyboard
}

func (h *testHAL) Logger() hal.Logger   { return h.log }
func (h *testHAL) Display() hal.Display { return h }
func (h *testHAL) Input() hal.Input     { return h }

func (h *testHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *testHAL) Keyboard() hal.Keyboard       { return h.kbd }

func newTestHAL(w, h int) (*testHAL, *testFramebuffer, *testKeyboard) {
	fb := newTestFramebuffer(w, h)
	kbd := &testKeyboard{ch: make(chan hal.KeyEvent, 8)}
	return &testHAL{log: &testLogger{}, fb: fb, kbd: kbd}, fb, kbd
}

func smallScene() march.Scene {
	s := march.DefaultScene()
	s.Width, s.Height = 64, 48
	return s
}

func TestComputeLayout(t *testing.T) {
	l, err := ComputeLayout(320, 320, 320, 240, true)
	if err != nil {
		t.Fatal(err)
	}
	if l.Image != image.Rect(0, 36, 320, 276) || l.Status != image.Rect(0, 276, 320, 284) {
		t.Fatalf("layout = %+v", l)
	}

	l, err = ComputeLayout(320, 320, 320, 240, false)
	if err != nil {
		t.Fatal(err)
	}
	if l.Image != image.Rect(0, 40, 320, 280) || !l.Status.Empty() {
		t.Fatalf("layout without overlay = %+v", l)
	}

	l, err = ComputeLayout(320, 240, 320, 240, true)
	if err != nil {
		t.Fatal(err)
	}
	if l.Image != image.Rect(0, 0, 320, 240) || !l.Status.Empty() {
		t.Fatalf("layout without room = %+v", l)
	}

	if _, err := ComputeLayout(100, 100, 320, 240, false); err == nil {
		t.Fatal("expected error for small framebuffer")
	}
}

func TestStepRendersIntoFramebuffer(t *testing.T) {
	h, fb, kbd := newTestHAL(64, 48+StatusBarHeight)
	sc := smallScene()
	step := New(h, Config{Scene: sc, Workers: 2, Overlay: true})

	if err := step(); err != nil {
		t.Fatalf("first step: %v", err)
	}
	if fb.presents != 1 {
		t.Fatalf("presents = %d, want 1", fb.presents)
	}
	if !h.log.contains("app: rendered 64x48") {
		t.Fatalf("log = %v", h.log.lines)
	}

	want, _, err := march.Render(context.Background(), sc, 1)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range [][2]int{{0, 0}, {63, 47}, {20, 17}, {32, 24}, {40, 30}} {
		c := want.At(p[0], p[1]).RGBA8()
		if got, exp := fb.pixel(p[0], p[1]), march.RGB565(c.R, c.G, c.B); got != exp {
			t.Fatalf("pixel %v = %#04x, want %#04x", p, got, exp)
		}
	}

	if err := step(); err != nil {
		t.Fatalf("idle step: %v", err)
	}
	kbd.ch <- hal.KeyEvent{Code: hal.KeyUp, Press: false}
	if err := step(); err != nil {
		t.Fatalf("release should not dismiss: %v", err)
	}
	kbd.ch <- hal.KeyEvent{Rune: 'q', Press: true}
	if err := step(); !errors.Is(err, hal.ErrDismissed) {
		t.Fatalf("err = %v, want ErrDismissed", err)
	}
	if fb.presents != 1 {
		t.Fatalf("presents = %d after dismissal, want 1", fb.presents)
	}
}

func TestStatusBarDrawn(t *testing.T) {
	h, fb, _ := newTestHAL(128, 48+StatusBarHeight)
	step := New(h, Config{Scene: smallScene(), Overlay: true})
	if err := step(); err != nil {
		t.Fatal(err)
	}
	lit := 0
	for y := 48; y < fb.h; y++ {
		for x := 32; x < 96; x++ {
			if fb.pixel(x, y) != 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatal("status bar is empty")
	}
}

func TestInvalidSceneShowsError(t *testing.T) {
	h, fb, kbd := newTestHAL(64, 64)
	sc := smallScene()
	sc.HitThreshold = 0
	step := New(h, Config{Scene: sc})
	if err := step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if !h.log.contains("hit threshold") {
		t.Fatalf("log = %v", h.log.lines)
	}
	bg := hal.RGB565(errorBG.R, errorBG.G, errorBG.B)
	if got := fb.pixel(63, 63); got != bg {
		t.Fatalf("corner = %#04x, want error background %#04x", got, bg)
	}
	kbd.ch <- hal.KeyEvent{Code: hal.KeyEnter, Press: true}
	if err := step(); !errors.Is(err, hal.ErrDismissed) {
		t.Fatalf("err = %v, want ErrDismissed", err)
	}
}

func TestSceneLargerThanFramebufferShowsError(t *testing.T) {
	h, _, _ := newTestHAL(32, 32)
	step := New(h, Config{Scene: smallScene()})
	if err := step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if !h.log.contains("smaller than image") {
		t.Fatalf("log = %v", h.log.lines)
	}
}

func TestStepWithoutFramebuffer(t *testing.T) {
	h := &testHAL{log: &testLogger{}}
	step := New(h, Config{Scene: smallScene()})
	if err := step(); !errors.Is(err, errNoFramebuffer) {
		t.Fatalf("err = %v, want errNoFramebuffer", err)
	}
}

func TestWaitForKey(t *testing.T) {
	if err := WaitForKey(context.Background(), nil); !errors.Is(err, errNoKeyboard) {
		t.Fatalf("nil keyboard: %v", err)
	}
	if err := WaitForKey(context.Background(), &testKeyboard{}); !errors.Is(err, errNoKeyboard) {
		t.Fatalf("nil channel: %v", err)
	}

	kbd := &testKeyboard{ch: make(chan hal.KeyEvent, 2)}
	kbd.ch <- hal.KeyEvent{Code: hal.KeyEscape, Press: false}
	kbd.ch <- hal.KeyEvent{Code: hal.KeyEscape, Press: true}
	if err := WaitForKey(context.Background(), kbd); err != nil {
		t.Fatalf("press: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := WaitForKey(ctx, kbd); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("timeout: %v", err)
	}

	close(kbd.ch)
	if err := WaitForKey(context.Background(), kbd); !errors.Is(err, errKeyboardGone) {
		t.Fatalf("closed: %v", err)
	}
}

func TestRunTearsDownAfterKey(t *testing.T) {
	h, fb, kbd := newTestHAL(64, 48)
	kbd.ch <- hal.KeyEvent{Code: hal.KeySpace, Press: true}
	if err := Run(context.Background(), h, Config{Scene: smallScene()}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if fb.presents != 2 {
		t.Fatalf("presents = %d, want 2", fb.presents)
	}
	for i, b := range fb.buf {
		if b != 0 {
			t.Fatalf("byte %d = %#x after teardown", i, b)
		}
	}
}

func TestRunWithoutKeyboardHoldsUntilCanceled(t *testing.T) {
	fb := newTestFramebuffer(64, 48)
	h := &testHAL{log: &testLogger{}, fb: fb}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := Run(ctx, h, Config{Scene: smallScene()}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v", err)
	}
	if !h.log.contains("holding display") {
		t.Fatalf("log = %v", h.log.lines)
	}
}

func TestStatusLine(t *testing.T) {
	line := statusLine(march.Stats{Hits: 3, Misses: 1}, 42*time.Millisecond)
	if line != "3/4 lit 42ms  any key exits" {
		t.Fatalf("status = %q", line)
	}
	line = statusLine(march.Stats{Hits: 3, Misses: 1, NonFinite: 2}, 0)
	if !strings.Contains(line, "2 nonfinite") {
		t.Fatalf("status = %q", line)
	}
}

func TestTakeRunes(t *testing.T) {
	p, r := takeRunes("héllo world", 5)
	if p != "héllo" || r != " world" {
		t.Fatalf("takeRunes = %q, %q", p, r)
	}
	if p, r := takeRunes("abc", 10); p != "abc" || r != "" {
		t.Fatalf("short = %q, %q", p, r)
	}
	if p, r := takeRunes("abc", 0); p != "" || r != "abc" {
		t.Fatalf("zero = %q, %q", p, r)
	}
}
