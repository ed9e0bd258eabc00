package renderer

import (
	"image"
)

// TileRenderer renders rectangular regions of the image into a sink
type TileRenderer struct {
	sampler *Sampler
}

// NewTileRenderer creates a new tile renderer with the given sampler
func NewTileRenderer(sampler *Sampler) *TileRenderer {
	return &TileRenderer{sampler: sampler}
}

// RenderTileBounds samples every pixel within bounds and hands it to the sink.
// Each pixel is written exactly once.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, gridSize int, sink PixelSink) RenderStats {
	samples := SamplesPerPixel(gridSize)
	stats := RenderStats{SamplesPerPixel: samples}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			radiance := tr.sampler.SamplePixel(i, j, gridSize)
			sink.AddPixel(i, j, ToRGBA(radiance))
			stats.addPixel(radiance.Luminance(), samples)
		}
	}

	stats.finalize()
	return stats
}

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{
				ID:     tileID,
				Bounds: image.Rect(x0, y0, x1, y1),
			})
			tileID++
		}
	}

	return tiles
}
