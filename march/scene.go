package march

import (
	"errors"
	"fmt"
	"math"
)

// Scene is the complete, immutable description of one frame.
//
// It is passed by value; nothing in march keeps a reference to it after a
// call returns.
type Scene struct {
	Width  int
	Height int

	// FOV is the half-angle in radians covered from the image centre to its
	// left/right and top/bottom edges.
	FOV Scalar

	Camera Vec3
	Light  Vec3

	Field        Field
	HitThreshold Scalar
	MaxDistance  Scalar

	LightPeriod     Scalar
	FalloffExponent Scalar
	FogExponent     Scalar
}

// Reference scene constants.
const (
	DefaultWidth  = 320
	DefaultHeight = 240
	DefaultFOV    = 0.698

	DefaultPeriod       = 1.0
	DefaultRadius       = 0.2
	DefaultHitThreshold = 0.05
	DefaultMaxDistance  = 30.0
	DefaultFog          = 0.2
	DefaultFalloff      = 5.0
)

// DefaultScene returns the reference scene: a 320x240 view from (0,0,-3) into
// a unit lattice of spheres lit from (0,1,-0.5).
func DefaultScene() Scene {
	return Scene{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		FOV:    DefaultFOV,

		Camera: V3(0, 0, -3),
		Light:  V3(0, 1, -0.5),

		Field:        TiledSpheres{Period: DefaultPeriod, Radius: DefaultRadius},
		HitThreshold: DefaultHitThreshold,
		MaxDistance:  DefaultMaxDistance,

		LightPeriod:     DefaultPeriod,
		FalloffExponent: DefaultFalloff,
		FogExponent:     DefaultFog,
	}
}

var errNilField = errors.New("scene: nil field")

// Validate reports configuration that would make marching undefined or
// unbounded.
func (s Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("scene: invalid size %dx%d", s.Width, s.Height)
	}
	if !isFinite(s.FOV) || s.FOV <= 0 || s.FOV >= math.Pi/2 {
		return fmt.Errorf("scene: fov %v out of range (0, pi/2)", s.FOV)
	}
	if s.Field == nil {
		return errNilField
	}
	if !isFinite(s.HitThreshold) || s.HitThreshold <= 0 {
		return fmt.Errorf("scene: hit threshold %v must be positive", s.HitThreshold)
	}
	if !isFinite(s.MaxDistance) || s.MaxDistance <= 0 {
		return fmt.Errorf("scene: max distance %v must be positive", s.MaxDistance)
	}
	if !isFinite(s.LightPeriod) || s.LightPeriod <= 0 {
		return fmt.Errorf("scene: light period %v must be positive", s.LightPeriod)
	}
	if ts, ok := s.Field.(TiledSpheres); ok {
		if !isFinite(ts.Period) || ts.Period <= 0 {
			return fmt.Errorf("scene: tile period %v must be positive", ts.Period)
		}
		if ts.Radius < 0 || ts.Radius >= ts.Period/2 {
			return fmt.Errorf("scene: radius %v out of range [0, %v)", ts.Radius, ts.Period/2)
		}
	}
	return nil
}

func (s Scene) Marcher() Marcher {
	return Marcher{
		Field:        s.Field,
		HitThreshold: s.HitThreshold,
		MaxDistance:  s.MaxDistance,
	}
}

func (s Scene) Shader() Shader {
	return Shader{
		Camera:          s.Camera,
		Light:           s.Light,
		LightPeriod:     s.LightPeriod,
		FalloffExponent: s.FalloffExponent,
		FogExponent:     s.FogExponent,
	}
}

// RayDir returns the unit camera ray through pixel (x, y).
//
// Pixels map linearly to angles in [-FOV, FOV] and angles map to the image
// plane z=1 through tan, which gives a pinhole projection.
func (s Scene) RayDir(x, y int) Vec3 {
	ax := s.FOV * (2*(Scalar(x)/Scalar(s.Width)) - 1)
	ay := s.FOV * (2*(Scalar(y)/Scalar(s.Height)) - 1)
	return Normalize(V3(tan(ax), tan(ay), 1))
}

// Fragment computes the color of pixel (x, y). Misses are black; hits drive
// the red channel only.
func (s Scene) Fragment(x, y int) (Color, Result) {
	return s.fragment(s.Marcher(), s.Shader(), x, y)
}

func (s Scene) fragment(m Marcher, sh Shader, x, y int) (Color, Result) {
	res := m.March(s.Camera, s.RayDir(x, y))
	if !res.Hit {
		return Color{}, res
	}
	return Color{R: sh.Intensity(res.Pos)}, res
}
