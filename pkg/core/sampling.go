package core

import "math"

// ConcentricDisk maps a point of the unit square onto the unit disk using
// the concentric mapping, so evenly spaced square points stay evenly spaced
// on the disk. The square's center maps to the disk's center.
func ConcentricDisk(sx, sy float64) (x, y float64) {
	// Map to [-1,1]² and handle degeneracy at the origin
	ox, oy := 2*sx-1, 2*sy-1
	if ox == 0 && oy == 0 {
		return 0, 0
	}

	var r, theta float64
	if math.Abs(ox) > math.Abs(oy) {
		r = ox
		theta = math.Pi / 4 * (oy / ox)
	} else {
		r = oy
		theta = math.Pi/2 - math.Pi/4*(ox/oy)
	}
	return r * math.Cos(theta), r * math.Sin(theta)
}
