package geometry

import (
	"errors"
	"fmt"
	"math"

	"sphere-raytracer/internal/mathutil"
)

// ErrInvalidPrimitive is returned by Scene.Validate for degenerate primitives.
var ErrInvalidPrimitive = errors.New("geometry: invalid primitive")

// Kind discriminates the Primitive union.
type Kind uint8

const (
	KindSphere Kind = iota + 1
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Primitive is a closed tagged union over the supported shapes. Only the
// field selected by Kind is meaningful.
type Primitive struct {
	Kind   Kind
	Sphere Sphere
}

// NewSphere wraps a sphere as a scene primitive.
func NewSphere(center mathutil.Vec3, radius float64) Primitive {
	return Primitive{Kind: KindSphere, Sphere: Sphere{Center: center, Radius: radius}}
}

// Intersect dispatches on Kind.
func (p Primitive) Intersect(r Ray, tMin, tMax float64) Hit {
	switch p.Kind {
	case KindSphere:
		return IntersectSphere(p.Sphere, r, tMin, tMax)
	}
	panic(fmt.Sprintf("geometry: unhandled primitive %v", p.Kind))
}

func (p Primitive) validate() error {
	switch p.Kind {
	case KindSphere:
		s := p.Sphere
		for _, c := range s.Center {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return fmt.Errorf("%w: sphere center %v is not finite", ErrInvalidPrimitive, s.Center)
			}
		}
		if !(s.Radius > 0) || math.IsInf(s.Radius, 0) {
			return fmt.Errorf("%w: sphere radius %g must be positive and finite", ErrInvalidPrimitive, s.Radius)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown kind %v", ErrInvalidPrimitive, p.Kind)
}

// Scene is an ordered list of primitives, read-only while rendering.
type Scene struct {
	prims []Primitive
}

// NewScene returns a scene holding prims in order.
func NewScene(prims ...Primitive) *Scene {
	return &Scene{prims: append([]Primitive(nil), prims...)}
}

// Add appends a primitive.
func (s *Scene) Add(p Primitive) {
	s.prims = append(s.prims, p)
}

func (s *Scene) Len() int { return len(s.prims) }

// Primitives returns the scene contents. Callers must not modify the slice.
func (s *Scene) Primitives() []Primitive { return s.prims }

// Validate reports the first degenerate primitive, with its index.
func (s *Scene) Validate() error {
	for i, p := range s.prims {
		if err := p.validate(); err != nil {
			return fmt.Errorf("primitive %d: %w", i, err)
		}
	}
	return nil
}

// ClosestHit scans every primitive, narrowing tMax to the nearest hit so
// far. On equal t the earlier primitive wins.
func (s *Scene) ClosestHit(r Ray, tMin, tMax float64) Hit {
	var closest Hit
	for _, p := range s.prims {
		if h := p.Intersect(r, tMin, tMax); h.OK {
			closest = h
			tMax = h.T
		}
	}
	return closest
}
