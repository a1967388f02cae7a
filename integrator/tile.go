package integrator

// Tile is a rectangular region of the frame dispatched to one worker as a
// unit. Mirrors original_source's Bucket (bucket.rs), renamed to match
// this package's own vocabulary.
type Tile struct {
	X, Y, W, H uint32
	Index      int
}

// generateTiles partitions a frameW x frameH image into tileSize x
// tileSize tiles (smaller at the right/bottom edges), then reorders them
// by distance from the image center so the most visually important part
// of the frame completes first — the same spiral dispatch order
// original_source's bucket.rs uses for its buckets.
func generateTiles(frameW, frameH, tileSize uint32) []Tile {
	var tiles []Tile
	for y := uint32(0); y < frameH; y += tileSize {
		for x := uint32(0); x < frameW; x += tileSize {
			w := minU32(tileSize, frameW-x)
			h := minU32(tileSize, frameH-y)
			tiles = append(tiles, Tile{X: x, Y: y, W: w, H: h})
		}
	}

	centerX := float64(frameW) / 2
	centerY := float64(frameH) / 2
	dist := make([]float64, len(tiles))
	for i, t := range tiles {
		tx := float64(t.X) + float64(t.W)/2
		ty := float64(t.Y) + float64(t.H)/2
		dx, dy := tx-centerX, ty-centerY
		dist[i] = dx*dx + dy*dy
	}

	// Insertion sort is adequate here: tile counts are in the hundreds at
	// most, and this runs once per accelerator/resolution change, not
	// per frame.
	for i := 1; i < len(tiles); i++ {
		j := i
		for j > 0 && dist[j-1] > dist[j] {
			dist[j-1], dist[j] = dist[j], dist[j-1]
			tiles[j-1], tiles[j] = tiles[j], tiles[j-1]
			j--
		}
	}
	for i := range tiles {
		tiles[i].Index = i
	}

	return tiles
}

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
