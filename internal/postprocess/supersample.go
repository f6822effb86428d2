package postprocess

import (
	"image"

	"golang.org/x/image/draw"

	"sphere-raytracer/internal/raster"
)

// Downsample reduces an oversized render to width×height with CatmullRom
// filtering. Buffers already at or below the target size are returned as is.
func Downsample(fb *raster.FrameBuffer, width, height int) *raster.FrameBuffer {
	if fb.Width <= width && fb.Height <= height {
		return fb
	}
	return resize(fb, width, height, draw.CatmullRom)
}

// Upscale enlarges fb by an integer factor with nearest-neighbor sampling,
// so every rendered pixel becomes a crisp factor×factor block.
func Upscale(fb *raster.FrameBuffer, factor int) *raster.FrameBuffer {
	if factor <= 1 {
		return fb
	}
	return resize(fb, fb.Width*factor, fb.Height*factor, draw.NearestNeighbor)
}

func resize(fb *raster.FrameBuffer, width, height int, s draw.Scaler) *raster.FrameBuffer {
	src := fb.ToNRGBA()
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	s.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return raster.FromImage(dst)
}
