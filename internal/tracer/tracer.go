package tracer

import (
	"sphere-raytracer/internal/geometry"
	"sphere-raytracer/internal/mathutil"
)

// Defaults for the hit interval and surface response.
const (
	// DefaultTMin keeps bounced rays from re-hitting their own origin.
	DefaultTMin = 1e-5
	// DefaultTMax is the visibility cutoff; anything farther is sky.
	DefaultTMax = 10.0
	// DefaultAlbedo is the fraction of light every diffuse bounce keeps.
	DefaultAlbedo = 0.5
)

var (
	skyHorizon = mathutil.Vec3{1, 1, 1}
	skyZenith  = mathutil.Vec3{0.5, 0.7, 1.0}
)

// Sky returns the background color for a ray leaving the scene: a vertical
// blend from white (straight down) to sky blue (straight up).
func Sky(dir mathutil.Vec3) mathutil.Vec3 {
	a := (dir.Normalize().Y() + 1) / 2
	return mathutil.Lerp(skyHorizon, skyZenith, a)
}

// Tracer computes linear radiance along rays through a scene.
// A Tracer holds its own Sampler and must not be shared across goroutines.
type Tracer struct {
	Scene   *geometry.Scene
	Sampler Sampler
	TMin    float64
	TMax    float64
	Albedo  float64
}

// New returns a Tracer with the default interval and albedo.
func New(scene *geometry.Scene, s Sampler) *Tracer {
	return &Tracer{
		Scene:   scene,
		Sampler: s,
		TMin:    DefaultTMin,
		TMax:    DefaultTMax,
		Albedo:  DefaultAlbedo,
	}
}

// Trace returns the linear color seen along r with at most maxBounces
// surface interactions. Exhausting the budget yields black.
//
// Each hit scatters once into the hemisphere of the surface normal and
// scales the eventual result by Albedo; the loop is the unrolled form of
// color(r, n) = Albedo * color(scatter(r), n-1).
func (t *Tracer) Trace(r geometry.Ray, maxBounces int) mathutil.Vec3 {
	attenuation := 1.0
	for depth := maxBounces; depth > 0; depth-- {
		hit := t.Scene.ClosestHit(r, t.TMin, t.TMax)
		if !hit.OK {
			return Sky(r.Direction).Scale(attenuation)
		}
		r = geometry.Ray{
			Origin:    hit.Point,
			Direction: RandomOnHemisphere(hit.Normal, t.Sampler),
		}
		attenuation *= t.Albedo
	}
	return mathutil.Vec3{}
}
