package raster

import "github.com/achilleasa/scenecore/scene"

// Partition splits visible (indices into instances, as produced by Cull)
// into a near set (drawn as full meshes) and a far set (drawn as a proxy
// box), keeping the near set's cumulative triangle count within budget.
// Per spec §4.5, this moves an index boundary by an O(n) nth-element
// selection rather than performing a full O(n log n) sort by distance,
// since only the boundary's position is needed, not a total order.
//
// nthElementByKey partitions visible/distSq so that every instance before
// the boundary estimate has a camera distance no greater than every
// instance after it, without fully ordering either side; the boundary is
// then refined by linearly walking from that estimate while accumulating
// triangle counts, since the exact index at which the cumulative budget
// is exceeded is data-dependent and can't be computed from the
// nth-element partition alone. Total cost is the nth-element's expected
// O(n) plus a single O(n) linear scan.
func Partition(visible []uint32, distSq []float32, instances []*scene.Instance, triCountOf func(scene.PrototypeID) int, budget uint64) (near, far []uint32) {
	n := len(visible)
	if n == 0 {
		return nil, nil
	}

	var total uint64
	for _, idx := range visible {
		total += uint64(triCountOf(instances[idx].PrototypeID))
	}
	if total <= budget {
		return visible, nil
	}

	avgPerInstance := total / uint64(n)
	if avgPerInstance == 0 {
		avgPerInstance = 1
	}
	kEstimate := int(budget / avgPerInstance)
	if kEstimate > n {
		kEstimate = n
	}
	if kEstimate < 0 {
		kEstimate = 0
	}

	nthElementByKey(visible, distSq, 0, n, kEstimate)

	var sum uint64
	for i := 0; i < kEstimate; i++ {
		sum += uint64(triCountOf(instances[visible[i]].PrototypeID))
	}

	k := kEstimate
	if sum <= budget {
		for k < n {
			next := uint64(triCountOf(instances[visible[k]].PrototypeID))
			if sum+next > budget {
				break
			}
			sum += next
			k++
		}
	} else {
		for k > 0 {
			k--
			sum -= uint64(triCountOf(instances[visible[k]].PrototypeID))
			if sum <= budget {
				break
			}
		}
	}

	return visible[:k], visible[k:]
}

// nthElementByKey is the same Hoare-style quickselect accel.selectMedian
// uses for BVH median splits, generalized to an arbitrary rank k and a
// pair of parallel slices (the selected element's partner value moves
// alongside it) instead of a single Bounded slice.
func nthElementByKey(items []uint32, keys []float32, lo, hi, k int) {
	for hi-lo > 1 {
		pivot := keys[lo+(hi-lo)/2]
		i, j := lo, hi-1
		for i <= j {
			for keys[i] < pivot {
				i++
			}
			for keys[j] > pivot {
				j--
			}
			if i <= j {
				items[i], items[j] = items[j], items[i]
				keys[i], keys[j] = keys[j], keys[i]
				i++
				j--
			}
		}
		if k <= j {
			hi = j + 1
		} else if k >= i {
			lo = i
		} else {
			return
		}
	}
}
