//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Host  HostConfig
	Hz    int
	Ticks uint64 // stop after N steps (0 = run until dismissed)

	// DismissAfter injects a key press after N steps (0 = never).
	DismissAfter uint64

	// Capture receives the final framebuffer contents when the run ends
	// without error.
	Capture func(img *image.RGBA) error

	// Log receives log lines (stdout when nil).
	Log io.Writer
}

// RunHeadless runs the app without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}

	var h *hostHAL
	var err error
	if cfg.Log != nil {
		h, err = newHost(cfg.Host, cfg.Log)
	} else {
		h, err = stdoutHost(cfg.Host)
	}
	if err != nil {
		return err
	}
	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
loop:
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrDismissed) {
						break loop
					}
					return err
				}
			}
			tick++
			if cfg.DismissAfter > 0 && tick == cfg.DismissAfter {
				h.kbd.emit(KeyEvent{Code: KeyEnter, Press: true})
			}
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				break loop
			}
		}
	}

	if h.fb.presentCount() == 0 {
		h.logger.WriteLineString(fmt.Sprintf("hal: headless run ended after %d steps without a present", tick))
	}
	if cfg.Capture == nil {
		return nil
	}
	if err := cfg.Capture(Snapshot(h.fb)); err != nil {
		return fmt.Errorf("headless capture: %w", err)
	}
	return nil
}
