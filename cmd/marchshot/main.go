package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"tilemarch/internal/buildinfo"
	"tilemarch/internal/imgout"
	"tilemarch/march"
)

func main() {
	var (
		outPath = flag.String("out", "", "Output image (.png, .bmp, .tif).")
		scale   = flag.Int("scale", 1, "Integer upscale factor.")
		workers = flag.Int("workers", 0, "Render workers (0 = one per CPU).")
		version = flag.Bool("version", false, "Print build information and exit.")
	)
	flag.Parse()

	if *version {
		fmt.Println(buildinfo.String())
		return
	}
	if *outPath == "" || flag.NArg() > 0 {
		fatalf("usage: marchshot -out frame.png [-scale 2] [-workers 0]")
	}
	if _, err := imgout.FormatFromPath(*outPath); err != nil {
		fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sc := march.DefaultScene()
	start := time.Now()
	frame, st, err := march.Render(ctx, sc, *workers)
	if err != nil {
		fatalf("render: %v", err)
	}
	took := time.Since(start)

	if err := imgout.Save(*outPath, frame.Image(), *scale); err != nil {
		fatalf("save: %v", err)
	}
	fmt.Printf("%s: %dx%d x%d in %s hits=%d misses=%d nonfinite=%d maxsteps=%d\n",
		*outPath, sc.Width, sc.Height, *scale, took.Round(time.Millisecond),
		st.Hits, st.Misses, st.NonFinite, st.MaxSteps)
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
