package imgio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sphere-raytracer/internal/raster"
)

func testBuffer() *raster.FrameBuffer {
	fb := raster.NewFrameBuffer(3, 2)
	fb.Set(0, 0, raster.Color{255, 0, 0})
	fb.Set(1, 0, raster.Color{0, 255, 0})
	fb.Set(2, 0, raster.Color{0, 0, 255})
	fb.Set(0, 1, raster.Color{1, 2, 3})
	fb.Set(1, 1, raster.Color{128, 64, 32})
	fb.Set(2, 1, raster.Color{255, 255, 255})
	return fb
}

func TestEncodeTGA_Bytes(t *testing.T) {
	fb := raster.NewFrameBuffer(2, 1)
	fb.Set(0, 0, raster.Color{10, 20, 30})
	fb.Set(1, 0, raster.Color{40, 50, 60})

	var buf bytes.Buffer
	if err := EncodeTGA(&buf, fb); err != nil {
		t.Fatalf("EncodeTGA: %v", err)
	}

	want := []byte{
		0, 0, 2, // id length, no color map, uncompressed true color
		0, 0, 0, 0, 0, // color map spec
		0, 0, 0, 0, // x, y origin
		2, 0, 1, 0, // width, height
		24, 0x20, // depth, top-to-bottom
		30, 20, 10,
		60, 50, 40,
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("EncodeTGA =\n%v\nwant\n%v", buf.Bytes(), want)
	}
}

func TestEncodeTGA_TooLarge(t *testing.T) {
	fb := &raster.FrameBuffer{Width: 70000, Height: 1}
	if err := EncodeTGA(&bytes.Buffer{}, fb); !errors.Is(err, ErrTooLarge) {
		t.Errorf("error = %v, want ErrTooLarge", err)
	}
	fb = &raster.FrameBuffer{Width: 1, Height: 1 << 16}
	if err := EncodeTGA(&bytes.Buffer{}, fb); !errors.Is(err, ErrTooLarge) {
		t.Errorf("error = %v, want ErrTooLarge", err)
	}
}

func TestEncodePPM_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodePPM(&buf, testBuffer()); err != nil {
		t.Fatalf("EncodePPM: %v", err)
	}

	want := "P3\n3 2\n255\n" +
		"255 0 0\n0 255 0\n0 0 255\n" +
		"1 2 3\n128 64 32\n255 255 255\n"
	if buf.String() != want {
		t.Errorf("EncodePPM =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestDecodePPM_Comments(t *testing.T) {
	in := "P3 # magic\n# a comment line\n2 1\n255\n9 8 7   6 5\n4#trailing"
	fb, err := DecodePPM(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodePPM: %v", err)
	}
	if fb.Width != 2 || fb.Height != 1 {
		t.Fatalf("size = %dx%d, want 2x1", fb.Width, fb.Height)
	}
	if !bytes.Equal(fb.Pix, []byte{9, 8, 7, 6, 5, 4}) {
		t.Errorf("Pix = %v", fb.Pix)
	}
}

func TestDecodePPM_Malformed(t *testing.T) {
	for _, in := range []string{
		"",
		"P6\n1 1\n255\n\x00\x00\x00",
		"P3\n0 1\n255\n",
		"P3\n1 1\n65535\n1 2 3",
		"P3\n1 1\n255\n1 2",
		"P3\n1 1\n255\n1 2 300",
		"P3\n1 1\n255\n1 -2 3",
		"P3\n4000000000 4000000000\n255\n0 0 0\n",
		"P3\n3037000500 3037000500\n255\n0 0 0\n",
		"P3\n100000 100000\n255\n0 0 0\n",
		"P3\n1 1\n255\n1 x 3",
	} {
		if _, err := DecodePPM(strings.NewReader(in)); !errors.Is(err, ErrMalformed) {
			t.Errorf("DecodePPM(%q) error = %v, want ErrMalformed", in, err)
		}
	}
}

func TestDecodePPM_TooLarge(t *testing.T) {
	_, err := DecodePPM(strings.NewReader("P3\n3037000500 3037000500\n255\n0 0 0\n"))
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("error = %v, want ErrTooLarge", err)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatTGA, FormatPPM, FormatPNG, FormatWebP} {
		t.Run(string(format), func(t *testing.T) {
			src := testBuffer()

			var buf bytes.Buffer
			if err := Encode(&buf, src, format); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if got := Sniff(buf.Bytes()); got != format {
				t.Errorf("Sniff = %q, want %q", got, format)
			}

			back, err := Decode(bytes.NewReader(buf.Bytes()), format)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if back.Width != src.Width || back.Height != src.Height {
				t.Fatalf("size = %dx%d, want %dx%d", back.Width, back.Height, src.Width, src.Height)
			}
			if !bytes.Equal(back.Pix, src.Pix) {
				t.Errorf("pixels = %v, want %v", back.Pix, src.Pix)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"output.tga", FormatTGA},
		{"dir/render.PPM", FormatPPM},
		{"a.b.png", FormatPNG},
		{"x.webp", FormatWebP},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if err != nil || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v; want %q", tt.path, got, err, tt.want)
		}
	}

	for _, bad := range []string{"image.jpg", "noext", ""} {
		if _, err := FormatFromPath(bad); !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("FormatFromPath(%q) error = %v, want ErrUnknownFormat", bad, err)
		}
	}
	if err := Encode(&bytes.Buffer{}, testBuffer(), "bmp"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Encode(bmp) error = %v, want ErrUnknownFormat", err)
	}
}

func TestWriteFileAndLoad(t *testing.T) {
	dir := t.TempDir()
	src := testBuffer()

	for _, name := range []string{"out.tga", "nested/out.ppm", "out.png", "out.webp"} {
		path := filepath.Join(dir, name)
		if err := WriteFile(path, src); err != nil {
			t.Fatalf("WriteFile(%s): %v", name, err)
		}

		fb, format, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
		if want, _ := FormatFromPath(path); format != want {
			t.Errorf("Load(%s) format = %q, want %q", name, format, want)
		}
		if !bytes.Equal(fb.Pix, src.Pix) {
			t.Errorf("Load(%s) pixels differ", name)
		}
	}

	if _, _, err := Load(filepath.Join(dir, "missing.tga")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want ErrNotExist", err)
	}
}

func TestWriteFile_EncodeFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	wide := &raster.FrameBuffer{Width: 70000, Height: 1}

	path := filepath.Join(dir, "wide.tga")
	if err := WriteFile(path, wide); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("WriteFile error = %v, want ErrTooLarge", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("failed write left files behind: %v", entries)
	}

	// An existing file survives a failed overwrite.
	kept := filepath.Join(dir, "kept.tga")
	if err := WriteFile(kept, testBuffer()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	before, err := os.ReadFile(kept)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(kept, wide); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("WriteFile error = %v, want ErrTooLarge", err)
	}
	after, err := os.ReadFile(kept)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("failed write modified the existing file")
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 1 {
		t.Errorf("dir has %d entries, want 1", len(entries))
	}
}
