// Package march renders an infinitely tiled sphere lattice by sphere marching
// a signed distance field.
//
// Pipeline (fixed):
//
//	Pixel → Camera ray → March → Hit or miss → Shade → Color → Target.
//
// Every pixel is a pure function of its coordinates and the Scene, so Render
// splits the frame into row bands and evaluates them concurrently. Colors stay
// in float until they reach a Target, where they are clamped to the channel
// range.
//
// Numeric backend: Scalar is float32 and math functions are evaluated through
// float64 conversions.
package march
