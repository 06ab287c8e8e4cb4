package march

import (
	"context"
	"fmt"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BandRows is the number of image rows rendered by one task.
const BandRows = 8

// Frame is a rendered image in row-major order.
type Frame struct {
	Width  int
	Height int
	Pix    []Color
}

func NewFrame(w, h int) *Frame {
	return &Frame{Width: w, Height: h, Pix: make([]Color, w*h)}
}

func (f *Frame) At(x, y int) Color {
	return f.Pix[y*f.Width+x]
}

// Blit writes the frame into t, clipped to the smaller of the two sizes.
func (f *Frame) Blit(t Target) {
	tw, th := t.Size()
	w := min(f.Width, tw)
	h := min(f.Height, th)
	for y := 0; y < h; y++ {
		row := f.Pix[y*f.Width : y*f.Width+f.Width]
		for x := 0; x < w; x++ {
			t.SetPixel(x, y, row[x].RGBA8())
		}
	}
}

// Image converts the frame to 8-bit RGBA.
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	f.Blit(imageTarget{img})
	return img
}

// Stats summarises one rendered frame.
type Stats struct {
	Hits   int
	Misses int

	// NonFinite counts hit pixels whose color is NaN or infinite. They are
	// written clamped but indicate a defect in the scene (a surface point
	// on the light, for example).
	NonFinite int
	// Saturated counts finite colors clipped to 1 on output.
	Saturated int

	MaxSteps   int
	TotalSteps int
}

func (s *Stats) Add(o Stats) {
	s.Hits += o.Hits
	s.Misses += o.Misses
	s.NonFinite += o.NonFinite
	s.Saturated += o.Saturated
	s.TotalSteps += o.TotalSteps
	if o.MaxSteps > s.MaxSteps {
		s.MaxSteps = o.MaxSteps
	}
}

func (s *Stats) record(c Color, res Result) {
	s.TotalSteps += res.Steps
	if res.Steps > s.MaxSteps {
		s.MaxSteps = res.Steps
	}
	if !res.Hit {
		s.Misses++
		return
	}
	s.Hits++
	switch {
	case !c.Finite():
		s.NonFinite++
	case c.Saturated():
		s.Saturated++
	}
}

// Render evaluates every pixel of the scene.
//
// Rows are grouped into bands of BandRows and up to workers bands run at
// once; workers <= 0 uses one per CPU. Bands own disjoint rows of the frame
// and their own Stats, so no locking is involved. Render stops early with
// ctx.Err() if ctx ends; a panic inside a band (from a user-supplied Field,
// say) is returned as an error.
func Render(ctx context.Context, s Scene, workers int) (*Frame, Stats, error) {
	if err := s.Validate(); err != nil {
		return nil, Stats{}, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	f := NewFrame(s.Width, s.Height)
	m := s.Marcher()
	sh := s.Shader()

	bands := (s.Height + BandRows - 1) / BandRows
	stats := make([]Stats, bands)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for b := 0; b < bands; b++ {
		y0 := b * BandRows
		y1 := min(y0+BandRows, s.Height)
		st := &stats[b]
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("march: rows %d-%d: %v", y0, y1-1, r)
				}
			}()
			for y := y0; y < y1; y++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				row := f.Pix[y*s.Width : (y+1)*s.Width]
				for x := range row {
					c, res := s.fragment(m, sh, x, y)
					row[x] = c
					st.record(c, res)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}

	var total Stats
	for _, st := range stats {
		total.Add(st)
	}
	return f, total, nil
}
