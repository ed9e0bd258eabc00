package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Total number of pixels rendered
	SamplesPerPixel  int           // Primary rays traced per pixel
	TotalSamples     int           // Total number of primary rays traced
	AverageLuminance float64       // Mean linear luminance over rendered pixels
	Elapsed          time.Duration // Wall time of the pass

	luminanceSum float64
}

// addPixel records one rendered pixel
func (rs *RenderStats) addPixel(luminance float64, samples int) {
	rs.TotalPixels++
	rs.TotalSamples += samples
	rs.luminanceSum += luminance
}

// Merge folds another tile's statistics into rs
func (rs *RenderStats) Merge(other RenderStats) {
	rs.TotalPixels += other.TotalPixels
	rs.TotalSamples += other.TotalSamples
	rs.luminanceSum += other.luminanceSum
	rs.SamplesPerPixel = max(rs.SamplesPerPixel, other.SamplesPerPixel)
	rs.finalize()
}

// finalize recomputes the derived averages
func (rs *RenderStats) finalize() {
	if rs.TotalPixels == 0 {
		rs.AverageLuminance = 0
		return
	}
	rs.AverageLuminance = rs.luminanceSum / float64(rs.TotalPixels)
}
