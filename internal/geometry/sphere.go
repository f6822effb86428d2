package geometry

import (
	"math"

	"sphere-raytracer/internal/mathutil"
)

// Sphere is the only primitive kind so far.
type Sphere struct {
	Center mathutil.Vec3
	Radius float64
}

// IntersectSphere returns the nearest intersection of r with s whose
// parameter lies strictly inside (tMin, tMax).
//
// FrontFace is set whenever the ray direction is not perpendicular to the
// outward normal, whichever side the ray comes from. The stored normal is
// the outward normal in that case and its negation otherwise, so a ray
// grazing the surface at exactly 90° is the only one that sees the flip.
func IntersectSphere(s Sphere, r Ray, tMin, tMax float64) Hit {
	oc := s.Center.Sub(r.Origin)

	a := r.Direction.Len2()
	h := r.Direction.Dot(oc)
	c := oc.Len2() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return Hit{}
	}

	sqrtD := math.Sqrt(discriminant)

	root := (h - sqrtD) / a
	if root <= tMin || tMax <= root {
		root = (h + sqrtD) / a
		if root <= tMin || tMax <= root {
			return Hit{}
		}
	}

	hit := Hit{OK: true, T: root}
	hit.Point = r.At(root)

	outward := hit.Point.Sub(s.Center).Div(s.Radius)
	hit.FrontFace = r.Direction.Dot(outward) != 0
	if hit.FrontFace {
		hit.Normal = outward
	} else {
		hit.Normal = outward.Neg()
	}
	return hit
}
