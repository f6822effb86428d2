package imgio

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/webp"

	"sphere-raytracer/internal/raster"
)

// Sniff guesses the format of encoded image data from its leading bytes.
// TGA carries no magic number, so anything unrecognized is assumed TGA.
func Sniff(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, []byte(ppmMagic)):
		return FormatPPM
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return FormatPNG
	case len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return FormatWebP
	}
	return FormatTGA
}

// Decode reads encoded image data of the given format into a FrameBuffer.
func Decode(r io.Reader, format Format) (*raster.FrameBuffer, error) {
	var (
		img image.Image
		err error
	)
	switch format {
	case FormatPPM:
		return DecodePPM(r)
	case FormatTGA:
		img, err = tga.Decode(r)
	case FormatPNG:
		img, err = png.Decode(r)
	case FormatWebP:
		img, err = webp.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("imgio: %s decode: %w", format, err)
	}
	return raster.FromImage(img), nil
}

// Load reads and decodes an image file, sniffing its format.
func Load(path string) (*raster.FrameBuffer, Format, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("imgio: read %s: %w", path, err)
	}

	format := Sniff(raw)
	fb, err := Decode(bytes.NewReader(raw), format)
	if err != nil {
		return nil, "", fmt.Errorf("imgio: %s: %w", path, err)
	}
	return fb, format, nil
}
