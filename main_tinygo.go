//go:build tinygo && baremetal && picocalc

package main

import (
	"context"

	"tilemarch/app"
	"tilemarch/hal"
	"tilemarch/march"
)

func main() {
	h := hal.New()
	cfg := app.Config{
		Scene:   march.DefaultScene(),
		Workers: 1,
		Overlay: true,
	}
	if err := app.Run(context.Background(), h, cfg); err != nil {
		h.Logger().WriteLineString("main: " + err.Error())
	}
	select {}
}
