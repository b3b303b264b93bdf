// Package checks implements the five independent analysis
// checks (watertightness, non-manifold edges, connected
// components/floaters, overhang, scale) plus the
// decimation gate that runs ahead of them on oversized
// meshes.
package checks

import "github.com/unixpickle/printmesh/topology"

// WatertightResult is the watertightness check's output.
type WatertightResult struct {
	IsWatertight      bool
	BoundaryEdgeCount int

	// BoundaryEdges is the flattened [a0,b0,a1,b1,...]
	// vertex-pair representation, in discovery order.
	BoundaryEdges []uint32
}

// Watertight reports whether a mesh has zero boundary
// edges, per edge map em.
func Watertight(em *topology.EdgeMap) WatertightResult {
	edges := em.BoundaryEdges()
	flat := make([]uint32, 0, len(edges)*2)
	for _, e := range edges {
		flat = append(flat, e.Key.A, e.Key.B)
	}
	return WatertightResult{
		IsWatertight:      len(edges) == 0,
		BoundaryEdgeCount: len(edges),
		BoundaryEdges:     flat,
	}
}
