package raster

import "gonum.org/v1/gonum/stat"

// Stats summarizes a rendered image.
type Stats struct {
	MeanLuma   float64 `json:"mean_luma"`
	StdDevLuma float64 `json:"stddev_luma"`
}

// ComputeStats returns the mean and standard deviation of Rec. 709 luma,
// scaled to [0, 1].
func ComputeStats(fb *FrameBuffer) Stats {
	n := fb.Width * fb.Height
	if n == 0 {
		return Stats{}
	}
	luma := make([]float64, n)
	for i := range luma {
		p := fb.Pix[i*3 : i*3+3]
		luma[i] = (0.2126*float64(p[0]) + 0.7152*float64(p[1]) + 0.0722*float64(p[2])) / 255
	}
	mean, std := stat.MeanStdDev(luma, nil)
	if n == 1 {
		std = 0
	}
	return Stats{MeanLuma: mean, StdDevLuma: std}
}
