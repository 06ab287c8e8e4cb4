package march

// Shader turns a surface point into a light intensity.
type Shader struct {
	Camera Vec3
	Light  Vec3

	// LightPeriod tiles the light the same way the field tiles its spheres:
	// the hit point is wrapped into one cell before measuring the light
	// distance.
	LightPeriod     Scalar
	FalloffExponent Scalar
	FogExponent     Scalar
}

// Intensity is 1/d^FalloffExponent for the distance d from the wrapped hit
// point to the light, attenuated by 1/(c+1)^FogExponent for the distance c to
// the camera.
//
// The result is positive and unbounded: it grows without limit as the
// wrapped point approaches the light, and is +Inf on it.
func (s Shader) Intensity(x Vec3) Scalar {
	fog := 1 / pow(Distance(x, s.Camera)+1, s.FogExponent)
	return 1 / pow(Distance(ModVec(x, s.LightPeriod), s.Light), s.FalloffExponent) * fog
}
