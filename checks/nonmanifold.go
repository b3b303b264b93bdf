package checks

import "github.com/unixpickle/printmesh/topology"

// NonManifoldResult is the non-manifold check's output.
type NonManifoldResult struct {
	HasNonManifold       bool
	NonManifoldEdgeCount int

	// NonManifoldEdges is the flattened [a0,b0,a1,b1,...]
	// vertex-pair representation, in discovery order.
	NonManifoldEdges []uint32
}

// NonManifold reports whether any edge in em is referenced
// by three or more faces.
func NonManifold(em *topology.EdgeMap) NonManifoldResult {
	edges := em.NonManifoldEdges()
	flat := make([]uint32, 0, len(edges)*2)
	for _, e := range edges {
		flat = append(flat, e.Key.A, e.Key.B)
	}
	return NonManifoldResult{
		HasNonManifold:       len(edges) > 0,
		NonManifoldEdgeCount: len(edges),
		NonManifoldEdges:     flat,
	}
}
