package topology

import "math"

// Components describes the connected-component
// decomposition of a mesh's faces under "shares an edge".
type Components struct {
	// FaceComponent maps face index to its 0-based
	// component id.
	FaceComponent []int

	// Sizes is indexed by component id; Sizes[i] is the
	// number of faces in component i.
	Sizes []int

	// Main is the index of the largest component, ties
	// broken by lowest id. -1 when there are no faces.
	Main int

	// Floaters lists every non-main component whose size is
	// strictly below the configured threshold, in ascending
	// component-id order.
	Floaters []int
}

// FindConnectedComponents unions faces that share an edge
// (any edge with two or more incident faces) and assigns
// contiguous 0-based component ids by first-seen face
// traversal order.
//
// floaterThresholdPercent follows the spec's definition: a
// non-main component is a floater when its face count is
// strictly less than ceil(floaterThresholdPercent/100 * F).
func FindConnectedComponents(indices []uint32, em *EdgeMap, floaterThresholdPercent float64) Components {
	faceCount := len(indices) / 3
	if faceCount == 0 {
		return Components{Main: -1}
	}

	ds := newDisjointSet(faceCount)
	for _, e := range em.All() {
		if len(e.Faces) < 2 {
			continue
		}
		first := e.Faces[0]
		for _, f := range e.Faces[1:] {
			ds.union(first, f)
		}
	}

	faceComponent := make([]int, faceCount)
	rootToID := make(map[int]int)
	var sizes []int
	for f := 0; f < faceCount; f++ {
		root := ds.find(f)
		id, ok := rootToID[root]
		if !ok {
			id = len(sizes)
			rootToID[root] = id
			sizes = append(sizes, 0)
		}
		faceComponent[f] = id
		sizes[id]++
	}

	main := 0
	for i, s := range sizes {
		if s > sizes[main] {
			main = i
		}
	}

	threshold := int(math.Ceil(floaterThresholdPercent / 100 * float64(faceCount)))
	var floaters []int
	for i, s := range sizes {
		if i != main && s < threshold {
			floaters = append(floaters, i)
		}
	}

	return Components{
		FaceComponent: faceComponent,
		Sizes:         sizes,
		Main:          main,
		Floaters:      floaters,
	}
}

// Count returns the number of distinct components.
func (c Components) Count() int {
	return len(c.Sizes)
}

// IsFloater reports whether component id is in Floaters.
func (c Components) IsFloater(id int) bool {
	for _, f := range c.Floaters {
		if f == id {
			return true
		}
	}
	return false
}
