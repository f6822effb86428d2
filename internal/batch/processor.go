package batch

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"sphere-raytracer/internal/config"
	"sphere-raytracer/internal/imgio"
	"sphere-raytracer/internal/postprocess"
	"sphere-raytracer/internal/raster"
)

// Config holds all shared settings for a batch run.
type Config struct {
	Workers int

	// ProgressInterval is how often progress is printed. Zero disables it.
	ProgressInterval time.Duration
}

// Result holds the outcome of one render.
type Result struct {
	Name    string        `json:"name"`
	Outputs []string      `json:"outputs"`
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
	Elapsed time.Duration `json:"-"`
	Stats   raster.Stats  `json:"stats"`
}

// Run renders all jobs. Jobs run concurrently and split cfg.Workers between
// them, so a single job gets every worker for its rows.
func Run(cfg Config, jobs []config.Render) []Result {
	total := len(jobs)
	results := make([]Result, total)
	if total == 0 {
		return results
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	jobWorkers := min(workers, total)
	rowWorkers := max(1, workers/jobWorkers)

	var rowsTotal int64
	for _, j := range jobs {
		rowsTotal += int64(j.Options(rowWorkers).Height)
	}
	var rowsDone, processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.ProgressInterval > 0 {
		go func() {
			ticker := time.NewTicker(cfg.ProgressInterval)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					rows := rowsDone.Load()
					if rows > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(rows) / elapsed
						fmt.Printf("  [%d/%d renders, %d/%d rows] %.1f rows/sec\n",
							processed.Load(), total, rows, rowsTotal, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	jobChan := make(chan int, jobWorkers*2)
	var wg sync.WaitGroup

	for w := 0; w < jobWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(jobs[idx], rowWorkers, func(int, int) {
					rowsDone.Add(1)
				})
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

func processJob(job config.Render, workers int, progress func(done, total int)) Result {
	start := time.Now()
	res := Result{
		Name:    job.Name,
		Outputs: job.Outputs,
		Width:   job.Width,
		Height:  job.Height,
	}
	fail := func(err error) Result {
		res.Error = err.Error()
		res.Elapsed = time.Since(start)
		return res
	}

	opts := job.Options(workers)
	opts.Progress = progress

	fb, err := raster.Render(job.Scene(), job.RasterCamera(), opts)
	if err != nil {
		return fail(err)
	}

	// Post-processing: supersample downsample, then pixel-art upscale
	if job.Supersample > 1 {
		fb = postprocess.Downsample(fb, job.Width, job.Height)
	}
	if job.Scale > 1 {
		fb = postprocess.Upscale(fb, job.Scale)
	}
	res.Width, res.Height = fb.Width, fb.Height
	res.Stats = raster.ComputeStats(fb)

	for _, out := range job.Outputs {
		if err := imgio.WriteFile(out, fb); err != nil {
			return fail(err)
		}
	}

	res.Success = true
	res.Elapsed = time.Since(start)
	return res
}
