package raster

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"sphere-raytracer/internal/geometry"
	"sphere-raytracer/internal/mathutil"
	"sphere-raytracer/internal/tracer"
)

// ErrInvalidOptions is wrapped by every render precondition failure.
var ErrInvalidOptions = errors.New("raster: invalid options")

// Sampling selects where sub-samples sit inside their stratum.
type Sampling string

const (
	// SamplingJitter places each sample uniformly at random in its cell.
	SamplingJitter Sampling = "jitter"
	// SamplingGrid places each sample at its cell center.
	SamplingGrid Sampling = "grid"
)

// Reference render settings.
const (
	DefaultSamplesPerAxis = 20
	DefaultMaxBounces     = 100
)

// Options controls a render.
type Options struct {
	Width  int
	Height int

	// SamplesPerAxis is N for an N×N grid of samples per pixel.
	SamplesPerAxis int
	MaxBounces     int
	Sampling       Sampling

	// Seed feeds the per-row samplers when NewSampler is nil. Row y uses
	// Seed+y, so the image does not depend on Workers.
	Seed       uint64
	NewSampler func(row int) tracer.Sampler

	// Workers is the number of goroutines; values below 1 mean 1.
	Workers int

	// Progress, if set, is called after each finished row. It may be
	// called from several goroutines at once.
	Progress func(done, total int)
}

// Validate reports the first unusable setting.
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d must be positive", ErrInvalidOptions, o.Width, o.Height)
	}
	if o.SamplesPerAxis <= 0 {
		return fmt.Errorf("%w: samples per axis %d must be positive", ErrInvalidOptions, o.SamplesPerAxis)
	}
	if o.MaxBounces < 0 {
		return fmt.Errorf("%w: max bounces %d must not be negative", ErrInvalidOptions, o.MaxBounces)
	}
	switch o.Sampling {
	case "", SamplingJitter, SamplingGrid:
	default:
		return fmt.Errorf("%w: unknown sampling %q", ErrInvalidOptions, o.Sampling)
	}
	return nil
}

func (o Options) sampler(row int) tracer.Sampler {
	if o.NewSampler != nil {
		return o.NewSampler(row)
	}
	return tracer.NewSampler(o.Seed + uint64(row))
}

// Render traces scene through cam and returns the gamma-corrected image.
// Rows are distributed over a pool of opts.Workers goroutines; the scene
// and camera are only read.
func Render(scene *geometry.Scene, cam Camera, opts Options) (*FrameBuffer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := cam.validate(); err != nil {
		return nil, err
	}
	if err := scene.Validate(); err != nil {
		return nil, fmt.Errorf("raster: scene: %w", err)
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > opts.Height {
		workers = opts.Height
	}

	fb := NewFrameBuffer(opts.Width, opts.Height)
	vp := cam.Viewport(opts.Width, opts.Height)

	var done atomic.Int64
	rowChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for row := range rowChan {
				tr := tracer.New(scene, opts.sampler(row))
				renderRow(fb, vp, tr, opts, row)
				d := done.Add(1)
				if opts.Progress != nil {
					opts.Progress(int(d), opts.Height)
				}
			}
		}()
	}

	for row := 0; row < opts.Height; row++ {
		rowChan <- row
	}
	close(rowChan)

	wg.Wait()
	return fb, nil
}

// renderRow fills one row. Each pixel averages an N×N stratified grid of
// samples; rows touch disjoint parts of fb.Pix.
func renderRow(fb *FrameBuffer, vp Viewport, tr *tracer.Tracer, opts Options, row int) {
	n := opts.SamplesPerAxis
	count := float64(n * n)

	for col := 0; col < fb.Width; col++ {
		center := vp.PixelCenter(col, row)

		var sum mathutil.Vec3
		for sy := 0; sy < n; sy++ {
			for sx := 0; sx < n; sx++ {
				du := stratum(sx, n, opts.Sampling, tr.Sampler)
				dv := stratum(sy, n, opts.Sampling, tr.Sampler)
				target := center.Add(vp.DeltaU.Scale(du)).Add(vp.DeltaV.Scale(dv))

				r := geometry.Ray{Origin: vp.Origin, Direction: target.Sub(vp.Origin)}
				sum = sum.Add(tr.Trace(r, opts.MaxBounces))
			}
		}

		fb.Set(col, row, ToColor(Gamma(sum.Div(count))))
	}
}

// stratum returns the offset, in pixels from the pixel center, of sample i
// of n along one axis.
func stratum(i, n int, mode Sampling, s tracer.Sampler) float64 {
	xi := 0.5
	if mode != SamplingGrid {
		xi = s.Float64()
	}
	return (float64(i)+xi)/float64(n) - 0.5
}
