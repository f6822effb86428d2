package tracer

import (
	"math"
	"math/rand/v2"

	"sphere-raytracer/internal/mathutil"
)

// Sampler supplies uniform values in [0, 1). *rand.Rand satisfies it.
// Implementations are not required to be safe for concurrent use; give
// each goroutine its own.
type Sampler interface {
	Float64() float64
}

// NewSampler returns a PCG-backed sampler. Equal seeds give equal streams.
func NewSampler(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomVec returns a vector with components uniform in [min, max).
func RandomVec(s Sampler, min, max float64) mathutil.Vec3 {
	d := max - min
	return mathutil.Vec3{
		s.Float64()*d + min,
		s.Float64()*d + min,
		s.Float64()*d + min,
	}
}

// RandomUnitVector draws from the [-1,1]³ cube until the point falls inside
// the unit ball (excluding the origin) and projects it onto the sphere.
func RandomUnitVector(s Sampler) mathutil.Vec3 {
	for {
		v := RandomVec(s, -1, 1)
		l2 := v.Len2()
		if 0 < l2 && l2 <= 1 {
			return v.Div(math.Sqrt(l2))
		}
	}
}

// RandomOnHemisphere returns a unit vector on the side of normal.
func RandomOnHemisphere(normal mathutil.Vec3, s Sampler) mathutil.Vec3 {
	v := RandomUnitVector(s)
	if v.Dot(normal) < 0 {
		return v.Neg()
	}
	return v
}
