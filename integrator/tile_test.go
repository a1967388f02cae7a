package integrator

import "testing"

func TestGenerateTilesCoversWholeFrame(t *testing.T) {
	tiles := generateTiles(130, 65, 64)
	var area uint32
	for _, tl := range tiles {
		area += tl.W * tl.H
	}
	if area != 130*65 {
		t.Fatalf("expected tiles to cover the whole %dx%d frame, got total area %d", 130, 65, area)
	}
}

func TestGenerateTilesEdgeTilesAreClamped(t *testing.T) {
	tiles := generateTiles(130, 65, 64)
	for _, tl := range tiles {
		if tl.X+tl.W > 130 || tl.Y+tl.H > 65 {
			t.Fatalf("tile %+v overruns the frame bounds", tl)
		}
	}
}

func TestGenerateTilesIndexedByCenterDistance(t *testing.T) {
	tiles := generateTiles(256, 256, 32)
	centerX, centerY := 128.0, 128.0
	var prevDist float64 = -1
	for i, tl := range tiles {
		if tl.Index != i {
			t.Fatalf("expected tile %d to carry Index %d, got %d", i, i, tl.Index)
		}
		tx := float64(tl.X) + float64(tl.W)/2
		ty := float64(tl.Y) + float64(tl.H)/2
		dx, dy := tx-centerX, ty-centerY
		dist := dx*dx + dy*dy
		if dist < prevDist {
			t.Fatalf("expected tiles sorted by non-decreasing distance from center, tile %d broke order", i)
		}
		prevDist = dist
	}
}
