package coordinator

import (
	"testing"
	"time"

	"github.com/achilleasa/scenecore/scene"
	"github.com/achilleasa/scenecore/types"
)

func quadScene(t *testing.T) *scene.Scene {
	t.Helper()
	scn := scene.New()
	positions := []types.Vec3{
		{-1, -1, 0},
		{1, -1, 0},
		{1, 1, 0},
		{-1, 1, 0},
	}
	triangles := []scene.Triangle{{0, 1, 2}, {0, 2, 3}}
	protoID, err := scn.AddPrototype("quad", positions, nil, nil, triangles, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := scn.AddInstance(protoID, types.Ident4()); err != nil {
		t.Fatal(err)
	}
	return scn
}

func pollUntil(t *testing.T, c *Coordinator, want State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		c.Poll()
		if c.State() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for state %s, last seen %s", want, c.State())
}

func TestCoordinatorStartsNotStarted(t *testing.T) {
	c := New()
	if c.State() != NotStarted {
		t.Fatalf("expected NotStarted, got %s", c.State())
	}
	if _, ok := c.Accelerator(); ok {
		t.Fatal("expected no accelerator before any build")
	}
}

func TestCoordinatorRequestReachesComplete(t *testing.T) {
	c := New()
	c.Request(quadScene(t))
	if c.State() != Building {
		t.Fatalf("expected Building immediately after Request, got %s", c.State())
	}

	pollUntil(t, c, Complete)

	a, ok := c.Accelerator()
	if !ok || a == nil {
		t.Fatal("expected a built accelerator once Complete")
	}
	if c.Err() != nil {
		t.Fatalf("expected no error on a successful build, got %v", c.Err())
	}
}

func TestCoordinatorCancelReturnsToNotStarted(t *testing.T) {
	c := New()
	c.Request(quadScene(t))
	c.Cancel()
	if c.State() != NotStarted {
		t.Fatalf("expected NotStarted after Cancel, got %s", c.State())
	}

	// Draining any late result must not resurrect the cancelled build.
	time.Sleep(50 * time.Millisecond)
	c.Poll()
	if c.State() != NotStarted {
		t.Fatalf("expected state to remain NotStarted after polling a cancelled build, got %s", c.State())
	}
}

func TestCoordinatorRequestCancelsPriorBuild(t *testing.T) {
	c := New()
	c.Request(quadScene(t))
	c.Request(quadScene(t))
	pollUntil(t, c, Complete)

	a, ok := c.Accelerator()
	if !ok || a == nil {
		t.Fatal("expected the second request to reach Complete with a valid accelerator")
	}
}

func TestSnapshotIsolatesConcurrentSceneEdits(t *testing.T) {
	scn := quadScene(t)
	snap := snapshotScene(scn)

	if err := scn.SetInstanceTransform(0, types.Translate4(types.Vec3{5, 0, 0})); err != nil {
		t.Fatal(err)
	}

	if snap.IterInstances()[0].Transform != types.Ident4() {
		t.Fatal("expected the snapshot's instance transform to be unaffected by a later live-scene edit")
	}
}

func TestStateStringsAreDistinct(t *testing.T) {
	states := []State{NotStarted, Building, Complete, Failed}
	seen := make(map[string]bool)
	for _, s := range states {
		str := s.String()
		if seen[str] {
			t.Fatalf("duplicate state string %q", str)
		}
		seen[str] = true
	}
}
