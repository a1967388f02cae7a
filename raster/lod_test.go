package raster

import (
	"testing"

	"github.com/achilleasa/scenecore/scene"
	"github.com/achilleasa/scenecore/types"
)

func TestPartitionReturnsEverythingNearWhenUnderBudget(t *testing.T) {
	instances := []*scene.Instance{
		instanceAt(0, 0, types.Vec3{0, 0, 0}),
		instanceAt(1, 0, types.Vec3{1, 0, 0}),
	}
	visible := []uint32{0, 1}
	distSq := []float32{0, 1}
	triCountOf := func(scene.PrototypeID) int { return 100 }

	near, far := Partition(visible, distSq, instances, triCountOf, 1000)
	if len(near) != 2 || len(far) != 0 {
		t.Fatalf("expected all instances in the near set when under budget, got near=%d far=%d", len(near), len(far))
	}
}

func TestPartitionSplitsByBudgetAndKeepsNearestClose(t *testing.T) {
	n := 10
	instances := make([]*scene.Instance, n)
	visible := make([]uint32, n)
	distSq := make([]float32, n)
	for i := 0; i < n; i++ {
		instances[i] = instanceAt(scene.InstanceID(i), 0, types.Vec3{float32(i), 0, 0})
		visible[i] = uint32(i)
		distSq[i] = float32(i * i)
	}
	triCountOf := func(scene.PrototypeID) int { return 10 }

	near, far := Partition(visible, distSq, instances, triCountOf, 50)
	if len(near)+len(far) != n {
		t.Fatalf("expected near+far to account for all %d visible instances, got %d", n, len(near)+len(far))
	}

	var nearTotal uint64
	for _, idx := range near {
		nearTotal += uint64(triCountOf(instances[idx].PrototypeID))
	}
	if nearTotal > 50 {
		t.Fatalf("expected near set triangle budget <= 50, got %d", nearTotal)
	}

	maxNearDist := float32(-1)
	for _, idx := range near {
		if distSq[indexOf(visible, idx)] > maxNearDist {
			maxNearDist = distSq[indexOf(visible, idx)]
		}
	}
	for _, idx := range far {
		d := distSq[indexOf(visible, idx)]
		if d < maxNearDist {
			t.Fatalf("expected every far instance to be at least as distant as the farthest near instance, got far dist %f < near max %f", d, maxNearDist)
		}
	}
}

func TestPartitionEmptyVisibleReturnsNil(t *testing.T) {
	near, far := Partition(nil, nil, nil, func(scene.PrototypeID) int { return 1 }, 10)
	if near != nil || far != nil {
		t.Fatal("expected nil, nil for an empty visible set")
	}
}

func indexOf(visible []uint32, idx uint32) int {
	for i, v := range visible {
		if v == idx {
			return i
		}
	}
	return -1
}
