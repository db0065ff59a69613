package renderer

import (
	"image"
	"math/rand"
)

// Tile is one rectangular slice of the film, rendered as a unit by a worker
type Tile struct {
	ID     int
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	Random *rand.Rand      // Tile-specific generator for deterministic renders
}

// NewTile creates a tile whose random stream is derived from its ID, so a
// render with the same seed reproduces exactly regardless of worker count
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
		Random: rand.New(rand.NewSource(seed + int64(id))),
	}
}

// NewTileGrid cuts the image into tileSize squares in row-major order,
// clipping the right and bottom edges to the image
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	var tiles []*Tile
	for y := 0; y < height; y += tileSize {
		for x := 0; x < width; x += tileSize {
			bounds := image.Rect(x, y, min(x+tileSize, width), min(y+tileSize, height))
			tiles = append(tiles, NewTile(len(tiles), bounds, seed))
		}
	}
	return tiles
}
