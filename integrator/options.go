package integrator

// Options configures a path-traced render. Mirrors the renderer package's
// Options shape (frame dims, bounce/sample counts, exposure) adapted to
// the path tracer's own knobs rather than the teacher's OpenCL device
// selection fields, which have no equivalent here.
type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Tile size for bucket-parallel dispatch; the spec's fixed 64.
	TileSize uint32

	// Maximum indirect bounces before forced termination.
	MaxDepth uint32

	// Minimum bounces before applying Russian roulette.
	MinBouncesForRR uint32

	// Samples per pixel to accumulate before a render is considered done.
	SamplesPerPixel uint32

	// Exposure for tonemapping.
	Exposure float32

	// Number of worker goroutines; 0 selects runtime.NumCPU().
	NumWorkers int
}

// DefaultOptions returns sane defaults matching the spec's example values.
func DefaultOptions() Options {
	return Options{
		FrameW:          1280,
		FrameH:          720,
		TileSize:        64,
		MaxDepth:        8,
		MinBouncesForRR: 3,
		SamplesPerPixel: 64,
		Exposure:        1.0,
	}
}
