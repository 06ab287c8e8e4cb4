package march

// Marcher sphere-marches rays through a Field.
type Marcher struct {
	Field        Field
	HitThreshold Scalar
	MaxDistance  Scalar
}

// Result is the outcome of one march.
//
// Pos is the surface point on a hit and the last sampled position on a miss.
type Result struct {
	Pos   Vec3
	Steps int
	Hit   bool
}

// March steps from origin along dir by the last sampled field distance until
// the distance drops to HitThreshold (hit) or the ray travels further than
// MaxDistance from origin (miss).
//
// The first step has length 1 regardless of the field. dir should be unit
// length; a zero dir never leaves origin and is reported as a miss.
func (m Marcher) March(origin, dir Vec3) Result {
	if dir.IsZero() {
		return Result{Pos: origin}
	}

	pos := origin
	step := Scalar(1)
	steps := 0
	for step > m.HitThreshold {
		pos = pos.Add(dir.Mul(step))
		step = m.Field.Distance(pos)
		steps++

		if Distance(pos, origin) > m.MaxDistance {
			return Result{Pos: pos, Steps: steps}
		}
	}
	return Result{Pos: pos, Steps: steps, Hit: true}
}

// MaxSteps bounds the number of steps March takes for a unit dir.
//
// Every step after the first advances by more than HitThreshold, so the ray
// leaves the MaxDistance sphere after at most this many steps.
func (m Marcher) MaxSteps() int {
	if m.HitThreshold <= 0 {
		return -1
	}
	return int(m.MaxDistance/m.HitThreshold) + 2
}
