// Package accel implements the two-level acceleration structure: a
// bottom-level structure (BLAS) per prototype mesh in local space, and a
// top-level structure (TLAS) over scene instances referencing BLAS entries
// plus their transforms. A linear instance-only fallback is selected at
// construction time when no native acceleration library is available (see
// fallback.go and native/probe.go).
package accel

import (
	"github.com/achilleasa/scenecore/types"
)

// Bounded is implemented by anything the generic builder below can
// partition: BLAS triangles and TLAS instances alike. This mirrors the
// teacher's BoundedVolume interface (scene/compiler/bvh_builder.go), lifted
// to a type parameter since Go 1.18+ generics let BLAS and TLAS share one
// builder/traversal implementation without an interface-dispatch cost on
// every node visit (the teacher predates generics and duplicates the BVH
// builder across its two asset generations instead).
type Bounded interface {
	Bounds() types.AABB
	Centroid() types.Vec3
}

// maxLeafSize is the object count at or below which the builder stops
// partitioning and creates a leaf, per spec's "objects ≤ 4" contract.
const maxLeafSize = 4

// Node is one entry of a flat, contiguous BVH. A node is a leaf when Count
// > 0, in which case FirstPrim indexes the first element of the (builder-
// reordered) item slice belonging to this leaf; otherwise it is an internal
// node and Left/Right index child nodes in the same slice.
type Node struct {
	Bounds    types.AABB
	Left      uint32
	Right     uint32
	FirstPrim uint32
	Count     uint32
	// Axis is the split axis for internal nodes, used by Traverse to
	// decide which child the ray direction favors visiting first.
	Axis uint8
}

func (n *Node) isLeaf() bool { return n.Count > 0 }

// Build partitions items in place and returns the resulting flat node list.
// items is reordered as a side effect (leaves occupy contiguous runs); the
// caller's leaf-content lookups must index through the same (now reordered)
// slice, not the original order.
//
// The split axis is the axis of greatest centroid extent; the split point
// is the median centroid on that axis, found by an O(n) selection
// (quickselect) rather than a full sort, since the spec caps build time and
// a full sort is unnecessary when only the median element's position
// matters. The selection partitions the actual items slice in place —
// never an index set or a parallel array — so no object can be dropped or
// duplicated during partition, the hazard spec.md calls out by name.
func Build[T Bounded](items []T) []Node {
	b := &builder[T]{nodes: make([]Node, 0, 2*len(items)/maxLeafSize+1)}
	if len(items) == 0 {
		return b.nodes
	}
	b.partition(items, 0, len(items))
	return b.nodes
}

type builder[T Bounded] struct {
	nodes []Node
}

// partition builds the subtree over items[lo:hi], returns its node index.
func (b *builder[T]) partition(items []T, lo, hi int) uint32 {
	bounds := types.EmptyAABB()
	centroidBounds := types.EmptyAABB()
	for i := lo; i < hi; i++ {
		bounds = bounds.Union(items[i].Bounds())
		centroidBounds = centroidBounds.ExpandPoint(items[i].Centroid())
	}

	if hi-lo <= maxLeafSize {
		idx := uint32(len(b.nodes))
		b.nodes = append(b.nodes, Node{
			Bounds:    bounds,
			FirstPrim: uint32(lo),
			Count:     uint32(hi - lo),
		})
		return idx
	}

	axis := centroidBounds.LongestAxis()
	mid := lo + (hi-lo)/2
	selectMedian(items, lo, hi, mid, axis)

	idx := uint32(len(b.nodes))
	b.nodes = append(b.nodes, Node{Bounds: bounds, Axis: uint8(axis)})

	left := b.partition(items, lo, mid)
	right := b.partition(items, mid, hi)
	b.nodes[idx].Left = left
	b.nodes[idx].Right = right
	return idx
}

// selectMedian performs a Hoare-style quickselect so that, after it
// returns, items[lo:mid] all have centroid[axis] <= items[mid].centroid[axis]
// <= items[mid:hi]'s, without fully sorting the range. Expected O(n).
func selectMedian[T Bounded](items []T, lo, hi, k int, axis int) {
	for hi-lo > 1 {
		pivot := items[lo+(hi-lo)/2].Centroid().Component(axis)
		i, j := lo, hi-1
		for i <= j {
			for items[i].Centroid().Component(axis) < pivot {
				i++
			}
			for items[j].Centroid().Component(axis) > pivot {
				j--
			}
			if i <= j {
				items[i], items[j] = items[j], items[i]
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

// Stack is a small explicit traversal stack with a fixed-size backing
// array. Traverse declares one as a local value per call, so a ray query
// needs no heap allocation for its stack.
type Stack struct {
	items [64]uint32
	n     int
}

func (s *Stack) push(v uint32) { s.items[s.n] = v; s.n++ }
func (s *Stack) pop() uint32   { s.n--; return s.items[s.n] }
func (s *Stack) empty() bool   { return s.n == 0 }

// Traverse walks nodes iteratively (explicit stack, never recursion, per
// spec §4.3) testing the ray against each node's bounds and invoking
// visitLeaf for leaves whose bounds the ray hits within interval. The near
// child is visited first, determined by comparing the ray direction's sign
// against the split axis's extent on each side, so that once a hit closer
// than the far child's bound is found the far subtree can be skipped
// (visitLeaf is expected to shrink interval.Max as it records closer hits).
func Traverse(nodes []Node, r types.Ray, interval *types.Interval, visitLeaf func(firstPrim, count uint32)) {
	if len(nodes) == 0 {
		return
	}
	var stack Stack
	stack.push(0)

	for !stack.empty() {
		nodeIdx := stack.pop()
		node := &nodes[nodeIdx]

		if !node.Bounds.Hit(r, *interval) {
			continue
		}

		if node.isLeaf() {
			visitLeaf(node.FirstPrim, node.Count)
			continue
		}

		// The near child is whichever side the ray direction points
		// away from along the split axis (i.e. the ray enters that
		// half-space first); pushing far before near means near pops
		// (and is visited) first, tightening interval.Max before the
		// far child's bounds test runs.
		left, right := node.Left, node.Right
		if r.Dir[node.Axis] < 0 {
			left, right = right, left
		}
		stack.push(right)
		stack.push(left)
	}
}
