package imgio

import (
	"fmt"
	"io"

	"github.com/HugoSmits86/nativewebp"

	"sphere-raytracer/internal/raster"
)

// EncodeWebP writes fb as a lossless WebP.
func EncodeWebP(w io.Writer, fb *raster.FrameBuffer) error {
	if err := nativewebp.Encode(w, fb.ToNRGBA(), nil); err != nil {
		return fmt.Errorf("imgio: webp encode: %w", err)
	}
	return nil
}
