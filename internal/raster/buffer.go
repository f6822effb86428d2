package raster

import "image"

// Color is an 8-bit RGB triple.
type Color [3]uint8

// FrameBuffer holds the rendered image as a flat slice for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Pix    []uint8 // RGB interleaved, row-major, top row first, len = W*H*3
}

// NewFrameBuffer allocates a black buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Pix:    make([]uint8, w*h*3),
	}
}

func (fb *FrameBuffer) offset(x, y int) int {
	return (y*fb.Width + x) * 3
}

func (fb *FrameBuffer) At(x, y int) Color {
	i := fb.offset(x, y)
	return Color{fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2]}
}

func (fb *FrameBuffer) Set(x, y int, c Color) {
	i := fb.offset(x, y)
	fb.Pix[i] = c[0]
	fb.Pix[i+1] = c[1]
	fb.Pix[i+2] = c[2]
}

// ToNRGBA converts the buffer to an opaque image for the image/* encoders.
func (fb *FrameBuffer) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for i, j := 0, 0; i < len(fb.Pix); i, j = i+3, j+4 {
		img.Pix[j] = fb.Pix[i]
		img.Pix[j+1] = fb.Pix[i+1]
		img.Pix[j+2] = fb.Pix[i+2]
		img.Pix[j+3] = 255
	}
	return img
}

// FromImage copies any image into a new FrameBuffer, dropping alpha.
func FromImage(src image.Image) *FrameBuffer {
	b := src.Bounds()
	fb := NewFrameBuffer(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := src.At(x, y).RGBA()
			fb.Set(x-b.Min.X, y-b.Min.Y, Color{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8)})
		}
	}
	return fb
}
