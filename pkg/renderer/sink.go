package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
)

// PixelSink receives finished pixels. AddPixel may be called concurrently for
// distinct pixels; Render is called once after every pixel has been added.
type PixelSink interface {
	AddPixel(i, j int, c color.RGBA)
	Render() error
}

// ImageSink stores pixels in an in-memory RGBA image
type ImageSink struct {
	img *image.RGBA
}

// NewImageSink creates a sink backed by a width×height image
func NewImageSink(width, height int) *ImageSink {
	return &ImageSink{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// AddPixel sets one pixel. Distinct pixels touch distinct bytes, so tiles can
// write concurrently without locking.
func (s *ImageSink) AddPixel(i, j int, c color.RGBA) {
	s.img.SetRGBA(i, j, c)
}

// Render does nothing; the image is available through Image
func (s *ImageSink) Render() error {
	return nil
}

// Image returns the backing image
func (s *ImageSink) Image() *image.RGBA {
	return s.img
}

// PNGSink writes the accumulated image to a PNG file on Render
type PNGSink struct {
	*ImageSink
	path string
}

// NewPNGSink creates a sink that saves to path, creating parent directories as needed
func NewPNGSink(width, height int, path string) *PNGSink {
	return &PNGSink{
		ImageSink: NewImageSink(width, height),
		path:      path,
	}
}

// Path returns the output file path
func (s *PNGSink) Path() string {
	return s.path
}

// Render encodes the image as PNG
func (s *PNGSink) Render() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, s.img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
