package march

import (
	"math"
	"testing"
)

func TestIntensityFormula(t *testing.T) {
	s := DefaultScene().Shader()
	x := V3(-1.427294, -0.62261, 2.327787)

	w := ModVec(x, 1)
	dl := math.Sqrt(sq(w.X-s.Light.X) + sq(w.Y-s.Light.Y) + sq(w.Z-s.Light.Z))
	dc := math.Sqrt(sq(x.X-s.Camera.X) + sq(x.Y-s.Camera.Y) + sq(x.Z-s.Camera.Z))
	want := 1 / math.Pow(dl, 5) / math.Pow(dc+1, 0.2)

	if got := s.Intensity(x); math.Abs(float64(got)-want) > 1e-5 {
		t.Fatalf("Intensity = %v, want %v", got, want)
	}
}

func TestIntensityIncreasesTowardLight(t *testing.T) {
	s := Shader{
		Camera:          V3(0.5, 0.5, -3),
		Light:           V3(0.5, 0.5, 0.5),
		LightPeriod:     1,
		FalloffExponent: DefaultFalloff,
		FogExponent:     DefaultFog,
	}
	prev := Scalar(0)
	for _, d := range []Scalar{0.45, 0.3, 0.2, 0.1, 0.05, 0.01, 0.001} {
		got := s.Intensity(V3(0.5+d, 0.5, 0.5))
		if !(got > prev) {
			t.Fatalf("intensity at %v = %v, not above %v", d, got, prev)
		}
		prev = got
	}
	if got := s.Intensity(s.Light); !math.IsInf(float64(got), 1) {
		t.Fatalf("intensity on the light = %v, want +Inf", got)
	}
}

func TestIntensityTiledLight(t *testing.T) {
	s := DefaultScene().Shader()
	s.Camera = V3(0, 0, 0)
	s.FogExponent = 0
	p := V3(0.2, 0.6, 0.9)
	// Without fog only the wrapped position matters.
	for _, k := range []Vec3{V3(3, 0, 0), V3(0, -2, 0), V3(0, 0, 5)} {
		if a, b := s.Intensity(p), s.Intensity(p.Add(k)); !near(a, b, 1e-4*a) {
			t.Fatalf("intensity %v at %+v vs %v at %+v", a, p, b, p.Add(k))
		}
	}
}

func TestIntensityPositive(t *testing.T) {
	s := DefaultScene().Shader()
	for _, p := range []Vec3{V3(0.3, 0.5, 0.5), V3(-4.2, 7.1, 12.6), V3(28, -3, 2)} {
		if got := s.Intensity(p); !(got > 0) {
			t.Fatalf("intensity at %+v = %v", p, got)
		}
	}
}

func sq(v Scalar) float64 { return float64(v) * float64(v) }
