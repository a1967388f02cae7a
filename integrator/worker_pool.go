package integrator

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/achilleasa/scenecore/accel"
	"github.com/achilleasa/scenecore/types"
)

// tileTask is one tile-at-one-sample unit of work, mirroring the shape of
// df07-go-progressive-raytracer's TileTask (pkg/renderer/worker_pool.go)
// but keyed by sample index rather than a target-sample count, since this
// integrator accumulates exactly one sample per dispatch rather than
// merging a variable number per pass.
type tileTask struct {
	Tile   Tile
	Sample uint32
}

// tileResult carries one rendered tile's pixel colors back to the main
// thread, in tile-local row-major order.
type tileResult struct {
	Tile   Tile
	Sample uint32
	Pixels []types.Vec3
}

// worker renders whatever tiles arrive on taskCh until it is closed. Once
// the shared cancellation flag is set it abandons the tile in progress and
// discards every further task it receives without rendering it or sending a
// result; it exits when taskCh is closed.
type worker struct {
	id       int
	rng      *rng
	taskCh   <-chan tileTask
	resultCh chan<- tileResult
	cancel   *int32

	scn  sceneQuery
	env  Environment
}

// sceneQuery is the read-only view a tile worker needs: a ray intersector
// and a camera to generate primary rays, plus render options. Workers
// never touch scene.Scene or accel.Accelerator mutation methods — only
// Hit — so a snapshot handed to them cannot race with main-thread edits.
type sceneQuery struct {
	accelerator *accel.Accelerator
	camera      *types.Camera
	opts        Options
}

func (w *worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskCh {
		if atomic.LoadInt32(w.cancel) != 0 {
			continue
		}

		pixels := make([]types.Vec3, 0, task.Tile.W*task.Tile.H)
		for localY := uint32(0); localY < task.Tile.H; localY++ {
			// Cancellation is also polled between rows, per spec, so a
			// very large tile on a slow scene doesn't block shutdown
			// for an entire tile's worth of rays.
			if atomic.LoadInt32(w.cancel) != 0 {
				break
			}
			for localX := uint32(0); localX < task.Tile.W; localX++ {
				px := task.Tile.X + localX
				py := task.Tile.Y + localY
				u := (float32(px) + w.rng.float32()) / float32(w.scn.opts.FrameW)
				v := (float32(py) + w.rng.float32()) / float32(w.scn.opts.FrameH)

				r := w.scn.camera.PrimaryRay(u, v)
				color := tracePath(r, w.scn.accelerator, w.env, w.scn.opts, w.rng)
				pixels = append(pixels, color)
			}
		}

		if atomic.LoadInt32(w.cancel) != 0 {
			continue
		}

		w.resultCh <- tileResult{Tile: task.Tile, Sample: task.Sample, Pixels: pixels}
	}
}

// pool is a set of workers sharing one task/result channel pair, started
// once and reused across samples, in the same shape as
// df07-go-progressive-raytracer's WorkerPool.
type pool struct {
	taskCh   chan tileTask
	resultCh chan tileResult
	cancel   int32
	wg       sync.WaitGroup
}

func newPool(numWorkers int, maxTiles int, scn sceneQuery, env Environment) *pool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	p := &pool{
		taskCh:   make(chan tileTask, maxTiles),
		resultCh: make(chan tileResult, maxTiles),
	}

	for i := 0; i < numWorkers; i++ {
		w := &worker{
			id:       i,
			rng:      newRNG(uint64(i)*0x2545f4914f6cdd1d + 1),
			taskCh:   p.taskCh,
			resultCh: p.resultCh,
			cancel:   &p.cancel,
			scn:      scn,
			env:      env,
		}
		p.wg.Add(1)
		go w.run(&p.wg)
	}

	return p
}

func (p *pool) submit(t tileTask) { p.taskCh <- t }

// poll drains whatever results are ready without blocking, the "never
// recv, always try_recv" contract from spec §4.6 applied to this
// package's own channel handoff.
func (p *pool) poll() []tileResult {
	var out []tileResult
	for {
		select {
		case r := <-p.resultCh:
			out = append(out, r)
		default:
			return out
		}
	}
}

func (p *pool) setCancelled() { atomic.StoreInt32(&p.cancel, 1) }

func (p *pool) stop() {
	close(p.taskCh)
	p.wg.Wait()
	close(p.resultCh)
}
