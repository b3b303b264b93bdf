// Package repair implements the mesh-rewriting operators:
// floater removal, cleanup, auto-orient, and watertight
// (hole-fill) remeshing.
//
// Every operator is a pure function: it never mutates its
// input mesh. Every new mesh an operator builds carries
// freshly computed normals (MeshCleanup zero-fills them
// when RecomputeNormals is false). RemoveFloaters and
// MeshCleanup drop vertices no kept face references;
// AutoOrient and WatertightRemesh keep every input vertex,
// including unreferenced ones.
package repair

import (
	"sort"

	"github.com/unixpickle/printmesh/mesh"
	"github.com/unixpickle/printmesh/topology"
)

// DefaultFloaterThresholdPercent mirrors the report
// package's default so the operator can run standalone.
const DefaultFloaterThresholdPercent = 5

// FloaterOptions configures RemoveFloaters.
type FloaterOptions struct {
	ThresholdPercent float64
	KeepOnlyLargest  bool
}

// FloaterStats reports what RemoveFloaters did.
type FloaterStats struct {
	Success           bool   `json:"success"`
	NewMeshID         string `json:"newMeshId,omitempty"`
	Error             string `json:"error,omitempty"`
	TrianglesRemoved  int    `json:"trianglesRemoved"`
	VerticesRemoved   int    `json:"verticesRemoved"`
	ComponentsRemoved int    `json:"componentsRemoved"`
}

// Succeeded implements the common stats accessor.
func (s FloaterStats) Succeeded() bool { return s.Success }

// RemoveFloaters recomputes connected components and
// drops every face belonging to a removed component: every
// non-main component when KeepOnlyLargest is set, or just
// the floater set (per ThresholdPercent) otherwise.
//
// If the removed set is empty, the input mesh is returned
// unchanged with zeroed stats.
func RemoveFloaters(m *mesh.Mesh, opts FloaterOptions) (*mesh.Mesh, FloaterStats) {
	threshold := opts.ThresholdPercent
	if threshold == 0 {
		threshold = DefaultFloaterThresholdPercent
	}

	em := topology.BuildEdgeMap(m.Indices)
	components := topology.FindConnectedComponents(m.Indices, em, threshold)

	removed := make(map[int]bool)
	if opts.KeepOnlyLargest {
		for id := 0; id < components.Count(); id++ {
			if id != components.Main {
				removed[id] = true
			}
		}
	} else {
		for _, id := range components.Floaters {
			removed[id] = true
		}
	}

	if len(removed) == 0 {
		return m, FloaterStats{Success: true}
	}

	faceCount := m.TriangleCount()
	var keptFaces []int
	for f := 0; f < faceCount; f++ {
		if !removed[components.FaceComponent[f]] {
			keptFaces = append(keptFaces, f)
		}
	}

	newMesh, oldVertexCount := rebuildFromFaces(m, keptFaces)

	return newMesh, FloaterStats{
		Success:           true,
		NewMeshID:         mesh.DerivedID(m.ID, "defloat"),
		TrianglesRemoved:  faceCount - len(keptFaces),
		VerticesRemoved:   oldVertexCount - newMesh.VertexCount(),
		ComponentsRemoved: len(removed),
	}
}

// rebuildFromFaces keeps only the given faces (already
// sorted or not — order is preserved), remaps vertex
// indices to a dense range covering only the vertices those
// faces reference, and recomputes normals. It returns the new mesh and the vertex count of the
// input mesh, so callers can compute a removed-vertex
// count without recomputing it themselves.
func rebuildFromFaces(m *mesh.Mesh, keptFaces []int) (*mesh.Mesh, int) {
	usedOld := make([]int, 0, len(keptFaces)*3)
	seen := make(map[uint32]bool)
	for _, f := range keptFaces {
		for _, v := range []uint32{m.Indices[3*f], m.Indices[3*f+1], m.Indices[3*f+2]} {
			if !seen[v] {
				seen[v] = true
				usedOld = append(usedOld, int(v))
			}
		}
	}
	sort.Ints(usedOld)

	oldToNew := make(map[uint32]uint32, len(usedOld))
	positions := make([]float32, 0, len(usedOld)*3)
	for newIdx, old := range usedOld {
		oldToNew[uint32(old)] = uint32(newIdx)
		positions = append(positions, m.Positions[3*old], m.Positions[3*old+1], m.Positions[3*old+2])
	}

	indices := make([]uint32, 0, len(keptFaces)*3)
	for _, f := range keptFaces {
		indices = append(indices,
			oldToNew[m.Indices[3*f]],
			oldToNew[m.Indices[3*f+1]],
			oldToNew[m.Indices[3*f+2]],
		)
	}

	newMesh := &mesh.Mesh{
		Positions: positions,
		Indices:   indices,
	}
	newMesh.Normals = mesh.ComputeNormals(newMesh.Positions, newMesh.Indices)
	return newMesh, m.VertexCount()
}
