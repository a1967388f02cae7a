package coordinator

import (
	"sync"
	"sync/atomic"

	"github.com/achilleasa/scenecore/accel"
	"github.com/achilleasa/scenecore/log"
	"github.com/achilleasa/scenecore/scene"
)

var coordinatorLog = log.New("coordinator")

// buildResult is what the background build goroutine sends back over its
// completion channel.
type buildResult struct {
	accelerator *accel.Accelerator
	err         error
}

// Coordinator runs spec §4.6's build state machine: it owns at most one
// in-flight background build at a time, hands the worker an immutable
// snapshot rather than the live scene, and exposes a non-blocking Poll the
// interactive thread calls once per frame instead of ever receiving on the
// completion channel directly.
type Coordinator struct {
	mu       sync.Mutex
	state    State
	result   *accel.Accelerator
	err      error
	resultCh chan buildResult
	cancel   *int32
}

// New returns a coordinator in the NotStarted state.
func New() *Coordinator {
	return &Coordinator{state: NotStarted}
}

// State returns the coordinator's current status.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Accelerator returns the last successfully built Accelerator and true, or
// nil and false if the coordinator is not in the Complete state.
func (c *Coordinator) Accelerator() (*accel.Accelerator, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Complete {
		return nil, false
	}
	return c.result, true
}

// Err returns the error a Failed build reported, or nil otherwise.
func (c *Coordinator) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Request starts a new background build over a snapshot of scn, cancelling
// any build already in flight first. Never blocks.
func (c *Coordinator) Request(scn *scene.Scene) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelLocked()

	snap := snapshotScene(scn)
	cancelFlag := new(int32)
	resultCh := make(chan buildResult, 1)

	c.cancel = cancelFlag
	c.resultCh = resultCh
	c.state = Building
	c.err = nil

	coordinatorLog.Debugf("build requested: %d prototypes, %d instances", len(snap.prototypes), len(snap.instances))
	go runBuild(snap, cancelFlag, resultCh)
}

// runBuild is the worker side of the handoff: it owns nothing but its
// snapshot and never touches the live scene, so it needs no lock of its
// own. It checks the cancellation flag before starting and again before
// publishing, and is allowed to finish unpublished work rather than be
// killed (spec §4.6's explicit "no thread-kill required").
func runBuild(snap *snapshot, cancel *int32, resultCh chan<- buildResult) {
	if atomic.LoadInt32(cancel) != 0 {
		return
	}

	a, err := accel.New(snap)

	if atomic.LoadInt32(cancel) != 0 {
		return
	}
	resultCh <- buildResult{accelerator: a, err: err}
}

// Poll drains the completion channel non-blockingly — never recv, always
// try_recv, per spec §4.6 — advancing Building to Complete or Failed. Call
// once per frame from the interactive thread; a no-op when no build is in
// flight or none has finished yet.
func (c *Coordinator) Poll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Building || c.resultCh == nil {
		return
	}

	select {
	case res := <-c.resultCh:
		c.resultCh = nil
		c.cancel = nil
		if res.err != nil {
			c.state = Failed
			c.err = res.err
			coordinatorLog.Warningf("build failed: %s", res.err)
		} else {
			c.state = Complete
			c.result = res.accelerator
			coordinatorLog.Debugf("build complete")
		}
	default:
	}
}

// Cancel aborts an in-flight build and returns to NotStarted. Safe to call
// with no build in flight. Any scene edit or renderer-mode switch must call
// this (spec §4.6's "Cancellation & invalidation").
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	c.state = NotStarted
}

func (c *Coordinator) cancelLocked() {
	if c.cancel != nil {
		atomic.StoreInt32(c.cancel, 1)
	}
	c.cancel = nil
	c.resultCh = nil
}
