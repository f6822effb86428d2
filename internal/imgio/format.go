package imgio

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"sphere-raytracer/internal/raster"
)

// ErrUnknownFormat is returned for file extensions or format names that
// have no encoder.
var ErrUnknownFormat = errors.New("imgio: unknown format")

// Format names an output encoding.
type Format string

const (
	FormatTGA  Format = "tga"
	FormatPPM  Format = "ppm"
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch Format(ext) {
	case FormatTGA, FormatPPM, FormatPNG, FormatWebP:
		return Format(ext), nil
	}
	return "", fmt.Errorf("%w: extension %q", ErrUnknownFormat, filepath.Ext(path))
}

// Encode writes fb in the requested format.
func Encode(w io.Writer, fb *raster.FrameBuffer, format Format) error {
	switch format {
	case FormatTGA:
		return EncodeTGA(w, fb)
	case FormatPPM:
		return EncodePPM(w, fb)
	case FormatPNG:
		if err := png.Encode(w, fb.ToNRGBA()); err != nil {
			return fmt.Errorf("imgio: png encode: %w", err)
		}
		return nil
	case FormatWebP:
		return EncodeWebP(w, fb)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// WriteFile encodes fb to path, choosing the format from the extension and
// creating parent directories as needed. The image is encoded into a
// temporary file next to path and renamed into place, so a failed write
// leaves any existing file untouched and no partial output behind.
func WriteFile(path string, fb *raster.FrameBuffer) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("imgio: %w", err)
		}
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("imgio: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if err := Encode(f, fb, format); err != nil {
		return err
	}
	if err := f.Chmod(0644); err != nil {
		return fmt.Errorf("imgio: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("imgio: close %s: %w", path, err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("imgio: %w", err)
	}
	return nil
}
