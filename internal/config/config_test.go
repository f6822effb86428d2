package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"sphere-raytracer/internal/mathutil"
	"sphere-raytracer/internal/raster"
)

func noFlags() Flags {
	return Flags{Bounces: -1, Seed: -1}
}

func TestResolve_Defaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(noFlags())

	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("Workers = %d, want NumCPU", cfg.Workers)
	}
	if len(cfg.Renders) != 1 {
		t.Fatalf("len(Renders) = %d, want 1", len(cfg.Renders))
	}

	r := cfg.Renders[0]
	if r.Name != "render" || r.Width != 256 || r.Height != 144 {
		t.Errorf("render = %q %dx%d, want render 256x144", r.Name, r.Width, r.Height)
	}
	if r.SamplesPerAxis != 20 || *r.MaxBounces != 100 {
		t.Errorf("samples/bounces = %d/%d, want 20/100", r.SamplesPerAxis, *r.MaxBounces)
	}
	if r.Sampling != string(raster.SamplingJitter) {
		t.Errorf("Sampling = %q", r.Sampling)
	}
	if len(r.Spheres) != 3 || r.Spheres[2].Radius != 100 {
		t.Errorf("Spheres = %+v, want the reference world", r.Spheres)
	}
	if *r.Camera != DefaultCamera() {
		t.Errorf("Camera = %+v, want %+v", *r.Camera, DefaultCamera())
	}
	if len(r.Outputs) != 1 || r.Outputs[0] != "render.tga" {
		t.Errorf("Outputs = %v, want [render.tga]", r.Outputs)
	}
}

func TestResolve_FlagsOverride(t *testing.T) {
	zero := 0
	cfg := Config{
		OutputDir: "out",
		Renders: []Render{
			{Name: "a", Width: 100, Height: 50, MaxBounces: &zero},
			{Name: "b", AspectRatio: 2},
		},
	}
	flags := noFlags()
	flags.Width = 40
	flags.Samples = 3
	flags.Bounces = 7
	flags.Seed = 9
	flags.Workers = 2
	flags.Manifest = "manifest.json"
	cfg.Resolve(flags)

	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
	if want := filepath.Join("out", "manifest.json"); cfg.Manifest != want {
		t.Errorf("Manifest = %q, want %q", cfg.Manifest, want)
	}

	a, b := cfg.Renders[0], cfg.Renders[1]
	if a.Width != 40 || a.Height != 22 {
		t.Errorf("a size = %dx%d, want 40x22", a.Width, a.Height)
	}
	if b.Width != 40 || b.Height != 20 {
		t.Errorf("b size = %dx%d, want 40x20", b.Width, b.Height)
	}
	for _, r := range cfg.Renders {
		if r.SamplesPerAxis != 3 || *r.MaxBounces != 7 || r.Seed != 9 {
			t.Errorf("%s: samples/bounces/seed = %d/%d/%d", r.Name, r.SamplesPerAxis, *r.MaxBounces, r.Seed)
		}
	}
	if want := filepath.Join("out", "b.tga"); b.Outputs[0] != want {
		t.Errorf("b output = %q, want %q", b.Outputs[0], want)
	}
}

func TestResolve_KeepsExplicitZeroBounces(t *testing.T) {
	zero := 0
	cfg := Config{Renders: []Render{{MaxBounces: &zero}}}
	cfg.Resolve(noFlags())
	if got := cfg.Renders[0].Options(1).MaxBounces; got != 0 {
		t.Errorf("MaxBounces = %d, want 0", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")
	data := `{
  "workers": 3,
  "renders": [{
    "name": "single",
    "width": 64,
    "height": 48,
    "samples_per_axis": 4,
    "max_bounces": 8,
    "sampling": "grid",
    "supersample": 2,
    "camera": {"center": [0, 0, 0], "focal_length": 1, "yaw": 10},
    "spheres": [{"center": [0, 0, -1], "radius": 0.5}],
    "outputs": ["single.ppm", "single.webp"]
  }]
}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Resolve(noFlags())
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	r := cfg.Renders[0]
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
	if r.Scene().Len() != 1 {
		t.Errorf("scene has %d primitives, want 1", r.Scene().Len())
	}

	cam := r.RasterCamera()
	if cam.Center != (mathutil.Vec3{}) || cam.FocalLength != 1 || cam.ViewportHeight != 2 || cam.Yaw != 10 {
		t.Errorf("camera = %+v", cam)
	}

	opts := r.Options(cfg.Workers)
	if opts.Width != 128 || opts.Height != 96 {
		t.Errorf("supersampled size = %dx%d, want 128x96", opts.Width, opts.Height)
	}
	if opts.SamplesPerAxis != 4 || opts.MaxBounces != 8 || opts.Sampling != raster.SamplingGrid || opts.Workers != 3 {
		t.Errorf("options = %+v", opts)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		renders []Render
	}{
		{"duplicate names", []Render{{Name: "x", Outputs: []string{"a.tga"}}, {Name: "x", Outputs: []string{"b.tga"}}}},
		{"unknown format", []Render{{Name: "x", Outputs: []string{"a.jpg"}}}},
		{"shared output", []Render{{Name: "x", Outputs: []string{"a.tga"}}, {Name: "y", Outputs: []string{"./a.tga"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Renders: tt.renders}
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}
