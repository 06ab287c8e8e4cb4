//go:build !tinygo && cgo

package hal

import (
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow opens a desktop window that displays the framebuffer and forwards
// keyboard input to the app. It blocks until the window is closed or the app
// step returns ErrDismissed, which is reported as a nil error.
func RunWindow(cfg HostConfig, newApp func(HAL) func() error) error {
	h, err := stdoutHost(cfg)
	if err != nil {
		return err
	}
	step := newApp(h)

	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(h.fb.width*scale, h.fb.height*scale)
	ebiten.SetTPS(60)
	err = ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	if g.step == nil {
		return nil
	}
	if err := g.step(); err != nil {
		if errors.Is(err, ErrDismissed) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshotRGB565(g.scratch)
	decodeRGB565(g.img, g.scratch, fb.stride)

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
