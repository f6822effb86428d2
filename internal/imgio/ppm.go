package imgio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"sphere-raytracer/internal/raster"
)

// ErrMalformed is returned when decoding input that is not a valid image.
var ErrMalformed = errors.New("imgio: malformed image")

const (
	ppmMagic     = "P3"
	ppmMaxPixels = 1 << 26
)

// EncodePPM writes fb as an ASCII (P3) PPM: magic, size, max value, then
// one "r g b" line per pixel in row-major order.
func EncodePPM(w io.Writer, fb *raster.FrameBuffer) error {
	// bufio.Writer keeps the first write error; Flush reports it.
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%d %d\n255\n", ppmMagic, fb.Width, fb.Height)

	buf := make([]byte, 0, 16)
	for i := 0; i < len(fb.Pix); i += 3 {
		buf = buf[:0]
		buf = strconv.AppendUint(buf, uint64(fb.Pix[i]), 10)
		buf = append(buf, ' ')
		buf = strconv.AppendUint(buf, uint64(fb.Pix[i+1]), 10)
		buf = append(buf, ' ')
		buf = strconv.AppendUint(buf, uint64(fb.Pix[i+2]), 10)
		buf = append(buf, '\n')
		bw.Write(buf)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("imgio: ppm: %w", err)
	}
	return nil
}

// DecodePPM reads an ASCII PPM with a max value of 255. Comments
// starting with '#' are skipped.
func DecodePPM(r io.Reader) (*raster.FrameBuffer, error) {
	tok := newPPMTokens(r)

	w, h, err := readPPMHeader(tok)
	if err != nil {
		return nil, err
	}

	fb := raster.NewFrameBuffer(w, h)
	for i := range fb.Pix {
		v, err := tok.int()
		if err != nil {
			return nil, fmt.Errorf("%w: ppm sample %d: %v", ErrMalformed, i, err)
		}
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("%w: ppm sample %d is %d", ErrMalformed, i, v)
		}
		fb.Pix[i] = uint8(v)
	}
	return fb, nil
}

func readPPMHeader(tok *ppmTokens) (w, h int, err error) {
	magic, err := tok.next()
	if err != nil || magic != ppmMagic {
		return 0, 0, fmt.Errorf("%w: ppm magic %q", ErrMalformed, magic)
	}
	if w, err = tok.int(); err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("%w: ppm width", ErrMalformed)
	}
	if h, err = tok.int(); err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("%w: ppm height", ErrMalformed)
	}
	if w > ppmMaxPixels || h > ppmMaxPixels || int64(w)*int64(h) > ppmMaxPixels {
		return 0, 0, fmt.Errorf("%w: %w: ppm size %dx%d exceeds %d pixels", ErrMalformed, ErrTooLarge, w, h, ppmMaxPixels)
	}
	maxVal, err := tok.int()
	if err != nil || maxVal != 255 {
		return 0, 0, fmt.Errorf("%w: ppm max value must be 255", ErrMalformed)
	}
	return w, h, nil
}

type ppmTokens struct {
	sc *bufio.Scanner
}

func newPPMTokens(r io.Reader) *ppmTokens {
	sc := bufio.NewScanner(r)
	sc.Split(scanPPMWords)
	return &ppmTokens{sc: sc}
}

func (t *ppmTokens) next() (string, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return t.sc.Text(), nil
}

func (t *ppmTokens) int() (int, error) {
	s, err := t.next()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(s)
}

// scanPPMWords is bufio.ScanWords that also drops '#' comments up to the
// end of the line.
func scanPPMWords(data []byte, atEOF bool) (int, []byte, error) {
	start := 0
	for start < len(data) {
		c := data[start]
		if c == '#' {
			nl := bytes.IndexByte(data[start:], '\n')
			if nl < 0 {
				if atEOF {
					return len(data), nil, nil
				}
				return start, nil, nil
			}
			start += nl + 1
			continue
		}
		if !isPPMSpace(c) {
			break
		}
		start++
	}

	for i := start; i < len(data); i++ {
		if isPPMSpace(data[i]) || data[i] == '#' {
			return i, data[start:i], nil
		}
	}
	if atEOF && start < len(data) {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}

func isPPMSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
