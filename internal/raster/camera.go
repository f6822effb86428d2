package raster

import (
	"fmt"
	"math"

	"sphere-raytracer/internal/mathutil"
)

// DefaultViewportHeight is the world-space height of the image plane.
const DefaultViewportHeight = 2.0

// Camera is a pinhole camera looking down -Z, optionally turned by Yaw
// (degrees around +Y) and Pitch (degrees around +X).
type Camera struct {
	Center         mathutil.Vec3
	FocalLength    float64
	ViewportHeight float64
	Yaw            float64
	Pitch          float64
}

// Viewport is the image plane of a camera sampled at a fixed resolution.
type Viewport struct {
	Origin  mathutil.Vec3 // camera center, where every primary ray starts
	Pixel00 mathutil.Vec3 // center of the top-left pixel
	DeltaU  mathutil.Vec3 // one pixel to the right
	DeltaV  mathutil.Vec3 // one pixel down
}

func (c Camera) validate() error {
	for _, v := range c.Center {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: camera center %v is not finite", ErrInvalidOptions, c.Center)
		}
	}
	if !(c.FocalLength > 0) {
		return fmt.Errorf("%w: focal length %g must be positive", ErrInvalidOptions, c.FocalLength)
	}
	if !(c.ViewportHeight > 0) {
		return fmt.Errorf("%w: viewport height %g must be positive", ErrInvalidOptions, c.ViewportHeight)
	}
	return nil
}

// Viewport lays the image plane out for a width×height image. The plane
// sits FocalLength in front of the camera and is ViewportHeight tall, with
// its width following the image aspect ratio.
func (c Camera) Viewport(width, height int) Viewport {
	viewportWidth := c.ViewportHeight * (float64(width) / float64(height))

	u := mathutil.Vec3{viewportWidth, 0, 0}
	v := mathutil.Vec3{0, -c.ViewportHeight, 0}
	forward := mathutil.Vec3{0, 0, c.FocalLength}

	if R := mathutil.YawPitch(c.Yaw, c.Pitch); !R.IsIdentity() {
		u = R.MulVec3(u)
		v = R.MulVec3(v)
		forward = R.MulVec3(forward)
	}

	deltaU := u.Div(float64(width))
	deltaV := v.Div(float64(height))

	upperLeft := c.Center.Sub(forward).Sub(u.Add(v).Div(2))
	return Viewport{
		Origin:  c.Center,
		Pixel00: upperLeft.Add(deltaU.Add(deltaV).Div(2)),
		DeltaU:  deltaU,
		DeltaV:  deltaV,
	}
}

// PixelCenter returns the world-space center of pixel (col, row).
func (vp Viewport) PixelCenter(col, row int) mathutil.Vec3 {
	return vp.Pixel00.Add(vp.DeltaU.Scale(float64(col))).Add(vp.DeltaV.Scale(float64(row)))
}
