package march

// Field is a signed distance field.
//
// Distance must be continuous and must never overestimate the distance to the
// nearest surface, otherwise marching can step through geometry. Negative
// values are inside a surface.
type Field interface {
	Distance(p Vec3) Scalar
}

// TiledSpheres tiles space into cubes of edge Period, each holding one sphere
// of the given Radius centred in the cube.
type TiledSpheres struct {
	Period Scalar
	Radius Scalar
}

// Distance returns the signed distance from p to the sphere of p's cell.
//
// Cells do not interact, so this is exact as long as Radius < Period/2.
func (f TiledSpheres) Distance(p Vec3) Scalar {
	c := f.Period / 2
	return Distance(ModVec(p, f.Period), Vec3{c, c, c}) - f.Radius
}
