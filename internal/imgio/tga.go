package imgio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"sphere-raytracer/internal/raster"
)

// ErrTooLarge is returned when an image does not fit a format's size fields.
var ErrTooLarge = errors.New("imgio: image too large")

const (
	tgaHeaderSize    = 18
	tgaTypeTrueColor = 2
	tgaDepth         = 24
	tgaDescriptorTop = 0x20 // origin at the upper-left corner
	tgaMaxDimension  = 1<<16 - 1
)

// EncodeTGA writes fb as an uncompressed 24-bit TGA: an 18-byte header
// followed by BGR triples, top row first, with no footer.
func EncodeTGA(w io.Writer, fb *raster.FrameBuffer) error {
	if fb.Width > tgaMaxDimension {
		return fmt.Errorf("%w: tga width %d exceeds %d", ErrTooLarge, fb.Width, tgaMaxDimension)
	}
	if fb.Height > tgaMaxDimension {
		return fmt.Errorf("%w: tga height %d exceeds %d", ErrTooLarge, fb.Height, tgaMaxDimension)
	}

	var header [tgaHeaderSize]byte
	header[2] = tgaTypeTrueColor
	binary.LittleEndian.PutUint16(header[12:], uint16(fb.Width))
	binary.LittleEndian.PutUint16(header[14:], uint16(fb.Height))
	header[16] = tgaDepth
	header[17] = tgaDescriptorTop

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("imgio: tga header: %w", err)
	}

	body := make([]byte, len(fb.Pix))
	for i := 0; i < len(fb.Pix); i += 3 {
		body[i] = fb.Pix[i+2]
		body[i+1] = fb.Pix[i+1]
		body[i+2] = fb.Pix[i]
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("imgio: tga pixels: %w", err)
	}
	return nil
}
