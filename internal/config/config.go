package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"sphere-raytracer/internal/geometry"
	"sphere-raytracer/internal/imgio"
	"sphere-raytracer/internal/mathutil"
	"sphere-raytracer/internal/raster"
)

// ErrInvalid is wrapped by Validate failures.
var ErrInvalid = errors.New("config: invalid")

// Config holds the batch settings and every render in it.
type Config struct {
	OutputDir string   `json:"output_dir"`
	Workers   int      `json:"workers"`
	Manifest  string   `json:"manifest"`
	Renders   []Render `json:"renders"`
}

// Render describes one image: scene, camera, sampling and outputs.
type Render struct {
	Name string `json:"name"`

	// Image size. Height may be left at zero and is then derived from
	// Width and AspectRatio.
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AspectRatio float64 `json:"aspect_ratio"`

	SamplesPerAxis int      `json:"samples_per_axis"`
	MaxBounces     *int     `json:"max_bounces"`
	Sampling       string   `json:"sampling"`
	Seed           uint64   `json:"seed"`
	Supersample    int      `json:"supersample"`
	Scale          int      `json:"scale"`
	Camera         *Camera  `json:"camera"`
	Spheres        []Sphere `json:"spheres"`
	Outputs        []string `json:"outputs"`
}

// Camera mirrors raster.Camera in JSON form.
type Camera struct {
	Center         mathutil.Vec3 `json:"center"`
	FocalLength    float64       `json:"focal_length"`
	ViewportHeight float64       `json:"viewport_height"`
	Yaw            float64       `json:"yaw"`
	Pitch          float64       `json:"pitch"`
}

// Sphere is a scene sphere in JSON form: {"center": [x, y, z], "radius": r}.
type Sphere struct {
	Center mathutil.Vec3 `json:"center"`
	Radius float64       `json:"radius"`
}

// Defaults for fields left empty.
const (
	DefaultWidth       = 256
	DefaultAspectRatio = 16.0 / 9.0
	DefaultName        = "render"
	DefaultFormat      = imgio.FormatTGA
)

// DefaultCamera sits one unit behind the origin with the image plane at z=-1.
func DefaultCamera() Camera {
	return Camera{
		Center:         mathutil.Vec3{0, 0, 1},
		FocalLength:    2.0,
		ViewportHeight: raster.DefaultViewportHeight,
	}
}

// DefaultSpheres is a small sphere, a smaller neighbor to its left, and a
// huge sphere acting as the ground.
func DefaultSpheres() []Sphere {
	return []Sphere{
		{Center: mathutil.Vec3{0, 0, -1}, Radius: 0.5},
		{Center: mathutil.Vec3{-1, 0, -1}, Radius: 0.4},
		{Center: mathutil.Vec3{0, -100.5, -1}, Radius: 100},
	}
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Negative Bounces and Seed mean "not given".
type Flags struct {
	Width     int
	Height    int
	Samples   int
	Bounces   int
	Seed      int64
	Sampling  string
	Scale     int
	Workers   int
	OutputDir string
	Outputs   []string
	Manifest  string
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Manifest != "" {
		c.Manifest = flags.Manifest
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}

	if len(c.Renders) == 0 {
		c.Renders = []Render{{}}
	}

	for i := range c.Renders {
		r := &c.Renders[i]
		r.applyFlags(flags)
		r.resolve(i)

		for j, out := range r.Outputs {
			if c.OutputDir != "" && !filepath.IsAbs(out) {
				r.Outputs[j] = filepath.Join(c.OutputDir, out)
			}
		}
	}

	if c.Manifest != "" && c.OutputDir != "" && !filepath.IsAbs(c.Manifest) {
		c.Manifest = filepath.Join(c.OutputDir, c.Manifest)
	}
}

func (r *Render) applyFlags(flags Flags) {
	if flags.Width > 0 {
		r.Width = flags.Width
		if flags.Height <= 0 {
			r.Height = 0
		}
	}
	if flags.Height > 0 {
		r.Height = flags.Height
	}
	if flags.Samples > 0 {
		r.SamplesPerAxis = flags.Samples
	}
	if flags.Bounces >= 0 {
		b := flags.Bounces
		r.MaxBounces = &b
	}
	if flags.Seed >= 0 {
		r.Seed = uint64(flags.Seed)
	}
	if flags.Sampling != "" {
		r.Sampling = flags.Sampling
	}
	if flags.Scale > 0 {
		r.Scale = flags.Scale
	}
	if len(flags.Outputs) > 0 {
		r.Outputs = append([]string(nil), flags.Outputs...)
	}
}

func (r *Render) resolve(index int) {
	if r.Name == "" {
		r.Name = DefaultName
		if index > 0 {
			r.Name = fmt.Sprintf("%s-%d", DefaultName, index)
		}
	}

	if r.Width <= 0 {
		r.Width = DefaultWidth
	}
	if r.AspectRatio <= 0 {
		r.AspectRatio = DefaultAspectRatio
	}
	if r.Height <= 0 {
		r.Height = int(float64(r.Width) / r.AspectRatio)
		if r.Height < 1 {
			r.Height = 1
		}
	}

	if r.SamplesPerAxis <= 0 {
		r.SamplesPerAxis = raster.DefaultSamplesPerAxis
	}
	if r.MaxBounces == nil {
		b := raster.DefaultMaxBounces
		r.MaxBounces = &b
	}
	if r.Sampling == "" {
		r.Sampling = string(raster.SamplingJitter)
	}
	if r.Supersample <= 0 {
		r.Supersample = 1
	}
	if r.Scale <= 0 {
		r.Scale = 1
	}

	if r.Camera == nil {
		cam := DefaultCamera()
		r.Camera = &cam
	}
	if r.Camera.FocalLength == 0 {
		r.Camera.FocalLength = DefaultCamera().FocalLength
	}
	if r.Camera.ViewportHeight == 0 {
		r.Camera.ViewportHeight = raster.DefaultViewportHeight
	}

	if r.Spheres == nil {
		r.Spheres = DefaultSpheres()
	}
	if len(r.Outputs) == 0 {
		r.Outputs = []string{r.Name + "." + string(DefaultFormat)}
	}
}

// Validate checks what Resolve cannot default: output formats and
// collisions between renders. Scene and sampling values are checked by the
// renderer itself.
func (c *Config) Validate() error {
	names := make(map[string]bool)
	paths := make(map[string]string)
	for _, r := range c.Renders {
		if names[r.Name] {
			return fmt.Errorf("%w: duplicate render name %q", ErrInvalid, r.Name)
		}
		names[r.Name] = true

		for _, out := range r.Outputs {
			if _, err := imgio.FormatFromPath(out); err != nil {
				return fmt.Errorf("%w: render %q: %w", ErrInvalid, r.Name, err)
			}
			clean := filepath.Clean(out)
			if other, ok := paths[clean]; ok {
				return fmt.Errorf("%w: output %s written by both %q and %q", ErrInvalid, out, other, r.Name)
			}
			paths[clean] = r.Name
		}
	}
	return nil
}

// Scene builds the geometry for r in declaration order.
func (r Render) Scene() *geometry.Scene {
	scene := geometry.NewScene()
	for _, s := range r.Spheres {
		scene.Add(geometry.NewSphere(s.Center, s.Radius))
	}
	return scene
}

// RasterCamera converts the JSON camera.
func (r Render) RasterCamera() raster.Camera {
	c := r.Camera
	if c == nil {
		d := DefaultCamera()
		c = &d
	}
	return raster.Camera{
		Center:         c.Center,
		FocalLength:    c.FocalLength,
		ViewportHeight: c.ViewportHeight,
		Yaw:            c.Yaw,
		Pitch:          c.Pitch,
	}
}

// Options returns the raster options for r. With supersampling the
// renderer works at Supersample times the output size.
func (r Render) Options(workers int) raster.Options {
	bounces := raster.DefaultMaxBounces
	if r.MaxBounces != nil {
		bounces = *r.MaxBounces
	}
	ss := r.Supersample
	if ss < 1 {
		ss = 1
	}
	return raster.Options{
		Width:          r.Width * ss,
		Height:         r.Height * ss,
		SamplesPerAxis: r.SamplesPerAxis,
		MaxBounces:     bounces,
		Sampling:       raster.Sampling(r.Sampling),
		Seed:           r.Seed,
		Workers:        workers,
	}
}
