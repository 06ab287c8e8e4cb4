//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"

	"tilemarch/app"
	"tilemarch/hal"
	"tilemarch/internal/buildinfo"
	"tilemarch/internal/imgout"
	"tilemarch/march"
)

func main() {
	var (
		headless bool
		outPath  string
		cfg      hal.HeadlessConfig
		appCfg   = app.Config{Scene: march.DefaultScene()}
	)
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 1, "Stop after N ticks in headless mode (0 = run until dismissed).")
	flag.StringVar(&outPath, "out", "", "Write the final frame to this image in headless mode (.png, .bmp, .tif).")
	flag.IntVar(&cfg.Host.Scale, "scale", 2, "Window scale and capture upscale factor.")
	flag.IntVar(&appCfg.Workers, "workers", 0, "Render workers (0 = one per CPU).")
	flag.BoolVar(&appCfg.Overlay, "overlay", true, "Draw the status line beneath the image.")
	flag.Parse()

	cfg.Host.Width = appCfg.Scene.Width
	cfg.Host.Height = appCfg.Scene.Height
	if appCfg.Overlay {
		cfg.Host.Height += app.StatusBarHeight
	}
	cfg.Host.Title = buildinfo.String()

	newApp := func(h hal.HAL) func() error {
		return app.New(h, appCfg)
	}

	if headless {
		if outPath != "" {
			if _, err := imgout.FormatFromPath(outPath); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			scale := cfg.Host.Scale
			cfg.Capture = func(img *image.RGBA) error {
				return imgout.Save(outPath, img, scale)
			}
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, cfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(cfg.Host, newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
