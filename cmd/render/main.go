package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"sphere-raytracer/internal/batch"
	"sphere-raytracer/internal/config"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to a JSON render config")
	width := flag.Int("width", 0, "Image width in pixels (default: 256)")
	height := flag.Int("height", 0, "Image height in pixels (default: width / aspect ratio)")
	samples := flag.Int("samples", 0, "Samples per pixel axis (default: 20)")
	bounces := flag.Int("bounces", -1, "Maximum bounces per path (default: 100)")
	seed := flag.Int64("seed", -1, "Random seed for jittered sampling (default: 0)")
	sampling := flag.String("sampling", "", "Sub-pixel sampling: jitter or grid (default: jitter)")
	scale := flag.Int("scale", 0, "Nearest-neighbor upscale factor for the output (default: 1)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	outputs := flag.String("output", "", "Comma-separated output files; extension picks tga, ppm, png or webp")
	outputDir := flag.String("output-dir", "", "Directory for relative output paths")
	manifest := flag.String("manifest", "", "Write a JSON manifest of the results to this file")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	flags := config.Flags{
		Width:     *width,
		Height:    *height,
		Samples:   *samples,
		Bounces:   *bounces,
		Seed:      *seed,
		Sampling:  *sampling,
		Scale:     *scale,
		Workers:   *workers,
		OutputDir: *outputDir,
		Manifest:  *manifest,
	}
	if *outputs != "" {
		for _, out := range strings.Split(*outputs, ",") {
			if out = strings.TrimSpace(out); out != "" {
				flags.Outputs = append(flags.Outputs, out)
			}
		}
	}
	cfg.Resolve(flags)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Print summary
	fmt.Println("Sphere ray tracer")
	fmt.Printf("Renders: %d, Workers: %d\n", len(cfg.Renders), cfg.Workers)
	for _, r := range cfg.Renders {
		fmt.Printf("  %s: %dx%d, %d spheres, %dx%d %s samples, %d bounces -> %s\n",
			r.Name, r.Width, r.Height, len(r.Spheres),
			r.SamplesPerAxis, r.SamplesPerAxis, r.Sampling, *r.MaxBounces,
			strings.Join(r.Outputs, ", "))
	}
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		Workers:          cfg.Workers,
		ProgressInterval: 2 * time.Second,
	}, cfg.Renders)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
			fmt.Printf("  %s: %dx%d in %.1fs, mean luma %.3f\n",
				r.Name, r.Width, r.Height, r.Elapsed.Seconds(), r.Stats.MeanLuma)
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(results))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		for _, e := range errors {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	if cfg.Manifest != "" {
		if err := batch.WriteManifest(cfg.Manifest, results); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
		} else {
			fmt.Printf("Manifest: %s\n", cfg.Manifest)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}
