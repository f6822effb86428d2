package geometry

import "sphere-raytracer/internal/mathutil"

// Ray is a half-line. Direction need not be unit length.
type Ray struct {
	Origin    mathutil.Vec3
	Direction mathutil.Vec3
}

// At returns the point Origin + Direction*t.
func (r Ray) At(t float64) mathutil.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Hit describes one ray/surface intersection. The zero value means no hit.
type Hit struct {
	OK        bool
	T         float64
	Point     mathutil.Vec3
	Normal    mathutil.Vec3 // unit length, flipped by FrontFace
	FrontFace bool
}
