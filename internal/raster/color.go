package raster

import (
	"math"

	"sphere-raytracer/internal/mathutil"
)

// Gamma applies gamma-2 tone mapping: square root of each positive
// channel, zero for everything else.
func Gamma(c mathutil.Vec3) mathutil.Vec3 {
	return mathutil.Vec3{gamma(c[0]), gamma(c[1]), gamma(c[2])}
}

func gamma(x float64) float64 {
	if x > 0 {
		return math.Sqrt(x)
	}
	return 0
}

// ToColor quantizes a [0, 1) color to 8 bits per channel.
func ToColor(c mathutil.Vec3) Color {
	return Color{quantize(c[0]), quantize(c[1]), quantize(c[2])}
}

func quantize(x float64) uint8 {
	// NaN fails both comparisons and lands on 0.
	if !(x > 0) {
		return 0
	}
	if x > 0.9999 {
		x = 0.9999
	}
	return uint8(x * 256)
}
