package march

import (
	"math"
	"testing"
)

func near(a, b, eps Scalar) bool {
	return Scalar(math.Abs(float64(a-b))) <= eps
}

func TestModFloorsNegatives(t *testing.T) {
	cases := []struct {
		x, n, want Scalar
	}{
		{0.25, 1, 0.25},
		{1.25, 1, 0.25},
		{-0.25, 1, 0.75},
		{-1.75, 1, 0.25},
		{-2, 1, 0},
		{3.5, 2, 1.5},
		{-3.5, 2, 0.5},
	}
	for _, tc := range cases {
		got := Mod(tc.x, tc.n)
		if !near(got, tc.want, 1e-6) {
			t.Fatalf("Mod(%v, %v) = %v, want %v", tc.x, tc.n, got, tc.want)
		}
	}
}

func TestModStaysBelowPeriod(t *testing.T) {
	for _, x := range []Scalar{-1e-9, -1e-7, -3e-8, -5 - 1e-7} {
		got := Mod(x, 1)
		if got < 0 || got >= 1 {
			t.Fatalf("Mod(%v, 1) = %v, want [0, 1)", x, got)
		}
	}
}

func TestModVec(t *testing.T) {
	got := ModVec(V3(-0.5, 2.25, 7), 1)
	want := V3(0.5, 0.25, 0)
	if !near(got.X, want.X, 1e-6) || !near(got.Y, want.Y, 1e-6) || !near(got.Z, want.Z, 1e-6) {
		t.Fatalf("ModVec = %+v, want %+v", got, want)
	}
}

func TestNormalizeUnitLength(t *testing.T) {
	for _, v := range []Vec3{V3(3, 4, 0), V3(-1, 2, -3), V3(0, 0, 1e-3), V3(1e4, 1, 1)} {
		n := Normalize(v)
		if !near(n.Len(), 1, 1e-6) {
			t.Fatalf("|Normalize(%+v)| = %v", v, n.Len())
		}
	}
	n := Normalize(V3(3, 4, 0))
	if !near(n.X, 0.6, 1e-6) || !near(n.Y, 0.8, 1e-6) || n.Z != 0 {
		t.Fatalf("Normalize(3,4,0) = %+v", n)
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	if got := Normalize(Vec3{}); !got.IsZero() {
		t.Fatalf("Normalize(0) = %+v, want zero vector", got)
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(V3(1, 2, 3), V3(4, 6, 3)); !near(got, 5, 1e-6) {
		t.Fatalf("Distance = %v, want 5", got)
	}
	if got := Distance(V3(1, 1, 1), V3(1, 1, 1)); got != 0 {
		t.Fatalf("Distance to self = %v", got)
	}
}

func TestAddMul(t *testing.T) {
	got := V3(1, 2, 3).Add(V3(1, 1, 1).Mul(2))
	if got != V3(3, 4, 5) {
		t.Fatalf("Add/Mul = %+v", got)
	}
}
