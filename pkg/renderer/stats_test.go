package renderer

import (
	"math"
	"testing"
)

func TestRenderStats_Merge(t *testing.T) {
	var a, b RenderStats
	a.SamplesPerPixel = 4
	a.addPixel(0.2, 4)
	a.addPixel(0.4, 4)
	a.finalize()

	b.SamplesPerPixel = 4
	b.addPixel(0.9, 4)
	b.finalize()

	var total RenderStats
	total.Merge(a)
	total.Merge(b)

	if total.TotalPixels != 3 || total.TotalSamples != 12 || total.SamplesPerPixel != 4 {
		t.Errorf("Unexpected merged counts %+v", total)
	}
	if math.Abs(total.AverageLuminance-0.5) > 1e-12 {
		t.Errorf("Expected average luminance 0.5, got %v", total.AverageLuminance)
	}
}

func TestRenderStats_EmptyAverage(t *testing.T) {
	var stats RenderStats
	stats.finalize()
	if stats.AverageLuminance != 0 {
		t.Errorf("Expected zero luminance for an empty render, got %v", stats.AverageLuminance)
	}
}
