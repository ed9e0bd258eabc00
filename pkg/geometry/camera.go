package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrInvalidCamera is returned when a camera configuration cannot produce rays
var ErrInvalidCamera = errors.New("invalid camera")

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Eye          core.Vec3 // Ray origin
	LookAt       core.Vec3 // Point the camera looks at (ignored when AxisAligned)
	Up           core.Vec3 // Up direction (ignored when AxisAligned)
	ViewDistance float64   // Distance from the eye to the image plane, in pixels
	Width        int       // Raster width in pixels
	Height       int       // Raster height in pixels

	// AxisAligned skips the look-at basis: rays go along (x, y, ViewDistance)
	AxisAligned bool

	// Thin lens. Aperture is the lens radius in world units; 0 keeps the
	// pinhole camera. Points at FocusDistance from the eye stay sharp; 0
	// focuses on the image plane at ViewDistance.
	Aperture      float64
	FocusDistance float64
}

// Camera turns camera-space pixel offsets into primary rays
type Camera struct {
	config  CameraConfig
	u, v, w core.Vec3 // Orthonormal basis; the camera looks along -w
	focus   float64
}

// NewCamera validates the config and derives the camera basis.
// For look-at cameras w = unit(eye - lookAt), u = unit(up × w), v = w × u.
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Camera{config: config, focus: config.FocusDistance}
	if c.focus == 0 {
		c.focus = config.ViewDistance
	}
	if config.AxisAligned {
		c.u = core.NewVec3(1, 0, 0)
		c.v = core.NewVec3(0, 1, 0)
		c.w = core.NewVec3(0, 0, -1)
		return c, nil
	}

	c.w = config.Eye.Subtract(config.LookAt).Unit()
	c.u = config.Up.Cross(c.w).Unit()
	c.v = c.w.Cross(c.u)
	return c, nil
}

// Validate checks the raster size, the view distance, the lens and, for
// look-at cameras, that the basis is well defined
func (cc CameraConfig) Validate() error {
	if cc.Width <= 0 || cc.Height <= 0 {
		return fmt.Errorf("%w: raster size %dx%d", ErrInvalidCamera, cc.Width, cc.Height)
	}
	if !(cc.ViewDistance > 0) {
		return fmt.Errorf("%w: view distance %g", ErrInvalidCamera, cc.ViewDistance)
	}
	if !(cc.Aperture >= 0) {
		return fmt.Errorf("%w: aperture %g", ErrInvalidCamera, cc.Aperture)
	}
	if !(cc.FocusDistance >= 0) || math.IsInf(cc.FocusDistance, 1) {
		return fmt.Errorf("%w: focus distance %g", ErrInvalidCamera, cc.FocusDistance)
	}
	if cc.AxisAligned {
		return nil
	}

	forward := cc.Eye.Subtract(cc.LookAt)
	if forward.IsZero() {
		return fmt.Errorf("%w: eye and look-at coincide at %v", ErrInvalidCamera, cc.Eye)
	}
	if cc.Up.Cross(forward).IsZero() {
		return fmt.Errorf("%w: up %v is parallel to the view direction", ErrInvalidCamera, cc.Up)
	}
	return nil
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// PixelOffset converts raster coordinates to camera-space offsets from the image center
func (c *Camera) PixelOffset(i, j int) (x, y float64) {
	return float64(i) - float64(c.config.Width)/2, float64(j) - float64(c.config.Height)/2
}

// GetRay returns the primary ray through camera-space offset (x, y):
// direction unit(u*x + v*y - w*viewDistance)
func (c *Camera) GetRay(x, y float64) core.Ray {
	direction := c.u.Multiply(x).
		Add(c.v.Multiply(y)).
		Subtract(c.w.Multiply(c.config.ViewDistance)).
		Unit()
	return core.NewRay(c.config.Eye, direction)
}

// HasLens reports whether the camera has a non-zero aperture
func (c *Camera) HasLens() bool {
	return c.config.Aperture > 0
}

// GetLensRay returns the ray through camera-space offset (x, y) that leaves
// the lens at disk point (lx, ly), where the disk has unit radius. All lens
// points for one offset meet on the focal plane, so with a zero aperture
// this equals GetRay.
func (c *Camera) GetLensRay(x, y, lx, ly float64) core.Ray {
	ax, ay := lx*c.config.Aperture, ly*c.config.Aperture
	origin := c.config.Eye.Add(c.u.Multiply(ax)).Add(c.v.Multiply(ay))

	scale := c.focus / c.config.ViewDistance
	direction := c.u.Multiply(x*scale - ax).
		Add(c.v.Multiply(y*scale - ay)).
		Subtract(c.w.Multiply(c.focus)).
		Unit()
	return core.NewRay(origin, direction)
}
