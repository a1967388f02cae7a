// Package integrator implements the progressive, unbiased Monte Carlo
// path tracer: bucket-parallel dispatch over a worker pool, a Disney-style
// principled BSDF, and sRGB tonemapping of the accumulated result.
package integrator

import (
	"github.com/achilleasa/scenecore/accel"
	"github.com/achilleasa/scenecore/log"
	"github.com/achilleasa/scenecore/types"
)

var integratorLog = log.New("integrator")

// tracePath traces one primary ray to completion, implementing spec
// §4.4's per-ray algorithm: emission at each hit weighted by the running
// throughput, a BSDF sample to continue the path, Russian roulette after
// a minimum bounce count, and a throughput update of
// attenuation * |N.wi| / pdf.
func tracePath(r types.Ray, a *accel.Accelerator, env Environment, opts Options, rr *rng) types.Vec3 {
	throughput := types.Vec3{1, 1, 1}
	contribution := types.Vec3{}
	ray := r

	for depth := uint32(0); depth < opts.MaxDepth; depth++ {
		hit, ok := a.Hit(ray, types.PositiveInterval(1e-4))
		if !ok {
			contribution = contribution.Add(throughput.MulVec(env.Radiance(ray.Dir)))
			break
		}

		mat := hit.Material
		if mat == nil {
			break
		}

		if mat.IsEmissive() {
			contribution = contribution.Add(throughput.MulVec(mat.Emissive))
		}

		n := hit.Record.Normal
		wo := ray.Dir.Negate().Normalize()
		if n.Dot(wo) < 0 {
			n = n.Negate()
		}

		wi, f, pdf, ok := Sample(mat, wo, n, rr)
		if !ok || pdf <= 0 {
			break
		}

		if depth >= opts.MinBouncesForRR {
			survival := maxComponent(throughput)
			if survival > 1 {
				survival = 1
			}
			if rr.float32() >= survival {
				break
			}
			throughput = throughput.Mul(1 / survival)
		}

		nDotL := n.Dot(wi)
		throughput = throughput.MulVec(f).Mul(nDotL / pdf)

		if throughput[0] <= 0 && throughput[1] <= 0 && throughput[2] <= 0 {
			break
		}

		ray = types.NewRay(hit.Record.Point.Add(n.Mul(1e-4)), wi)
	}

	return contribution
}

func maxComponent(v types.Vec3) float32 {
	m := v[0]
	if v[1] > m {
		m = v[1]
	}
	if v[2] > m {
		m = v[2]
	}
	return m
}

// Pixel accumulates linear radiance across samples for one pixel.
type Pixel struct {
	Accum   types.Vec3
	Samples uint32
}

// Frame is the progressive accumulation buffer the integrator writes
// into as tiles complete.
type Frame struct {
	W, H   uint32
	Pixels []Pixel
}

func newFrame(w, h uint32) *Frame {
	return &Frame{W: w, H: h, Pixels: make([]Pixel, w*h)}
}

// ToRGBA8 tonemaps the current accumulation state into a display-ready
// buffer, safe to call at any point during a progressive render.
func (fr *Frame) ToRGBA8(exposure float32) []RGBA8 {
	out := make([]RGBA8, len(fr.Pixels))
	for i, p := range fr.Pixels {
		out[i] = Tonemap(p.Accum, p.Samples, exposure)
	}
	return out
}

// Integrator drives a progressive render of a scene (via its already-built
// accel.Accelerator) through a camera, one sample-per-pixel pass at a
// time across a worker pool, in spiral tile order.
type Integrator struct {
	opts Options
	env  Environment

	sceneQ sceneQuery

	tiles        []Tile
	tilesPending map[int]bool
	pool         *pool

	frame         *Frame
	currentSample uint32
	started       bool
	done          bool
}

// New constructs an Integrator. The accelerator and camera are captured
// by sceneQuery and handed to workers at Start; they must not be mutated
// while a render is in flight (the caller owns that invariant, typically
// by rendering from an immutable scene snapshot per spec §4.4's
// side-effect-free bucket rendering requirement).
func New(a *accel.Accelerator, cam *types.Camera, opts Options, env Environment) *Integrator {
	if env == nil {
		env = DefaultSky()
	}
	tiles := generateTiles(opts.FrameW, opts.FrameH, opts.TileSize)
	return &Integrator{
		opts:   opts,
		env:    env,
		sceneQ: sceneQuery{accelerator: a, camera: cam, opts: opts},
		tiles:  tiles,
		frame:  newFrame(opts.FrameW, opts.FrameH),
	}
}

// Start launches the worker pool and dispatches every tile for sample 0.
// Safe to call once; a subsequent Cancel+Start pair is how a caller
// restarts after a scene edit invalidates the current render.
func (it *Integrator) Start() {
	if it.started {
		return
	}
	it.started = true
	it.done = false
	it.currentSample = 0
	it.pool = newPool(it.opts.NumWorkers, len(it.tiles), it.sceneQ, it.env)
	it.dispatchSample(0)
}

func (it *Integrator) dispatchSample(sample uint32) {
	it.tilesPending = make(map[int]bool, len(it.tiles))
	for _, t := range it.tiles {
		it.tilesPending[t.Index] = true
		it.pool.submit(tileTask{Tile: t, Sample: sample})
	}
	integratorLog.Debugf("dispatched sample %d over %d tiles", sample, len(it.tiles))
}

// Poll drains whatever tile results are ready (never blocking — spec
// §4.6's try_recv contract), blits them into the accumulation buffer, and
// advances to the next sample once every tile has reported for the
// current one. Returns the list of tiles that were blitted this call, so
// a caller can update only the changed region of a display texture.
func (it *Integrator) Poll() []Tile {
	if !it.started || it.done {
		return nil
	}

	var updated []Tile
	for _, res := range it.pool.poll() {
		it.blit(res)
		delete(it.tilesPending, res.Tile.Index)
		updated = append(updated, res.Tile)
	}

	if len(it.tilesPending) == 0 {
		it.currentSample++
		if it.currentSample >= it.opts.SamplesPerPixel {
			it.done = true
			return updated
		}
		it.dispatchSample(it.currentSample)
	}

	return updated
}

func (it *Integrator) blit(res tileResult) {
	i := 0
	for localY := uint32(0); localY < res.Tile.H; localY++ {
		for localX := uint32(0); localX < res.Tile.W; localX++ {
			px := res.Tile.X + localX
			py := res.Tile.Y + localY
			idx := py*it.frame.W + px
			pixel := &it.frame.Pixels[idx]
			pixel.Accum = pixel.Accum.Add(res.Pixels[i])
			pixel.Samples++
			i++
		}
	}
}

// Cancel sets the shared cancellation flag; in-flight workers drop
// their pending work and exit, and the pool is stopped. A new Start call
// is required to render again, per spec §4.6's invalidation contract.
func (it *Integrator) Cancel() {
	if !it.started {
		return
	}
	it.pool.setCancelled()
	it.pool.stop()
	it.started = false
}

// Done reports whether every sample has completed.
func (it *Integrator) Done() bool { return it.done }

// Frame returns the live accumulation buffer. Safe to read concurrently
// with Poll only from the same goroutine that calls Poll — there is no
// internal locking, since the spec's model has exactly one main thread
// touching the frame.
func (it *Integrator) Frame() *Frame { return it.frame }
