package repair

import (
	"math"
	"sort"

	"github.com/unixpickle/printmesh/mesh"
)

// Default thresholds for MeshCleanup.
const (
	DefaultAreaThreshold = 1e-10
	DefaultMergeEpsilon  = 1e-6
)

// CleanupOptions configures MeshCleanup.
type CleanupOptions struct {
	AreaThreshold    float64
	MergeEpsilon     float64
	RecomputeNormals *bool // nil means the default, true
}

func (o CleanupOptions) recomputeNormals() bool {
	if o.RecomputeNormals == nil {
		return true
	}
	return *o.RecomputeNormals
}

// CleanupStats reports what MeshCleanup did.
type CleanupStats struct {
	Success          bool   `json:"success"`
	NewMeshID        string `json:"newMeshId,omitempty"`
	TrianglesRemoved int    `json:"trianglesRemoved"`
	VerticesRemoved  int    `json:"verticesRemoved"`
}

// Succeeded implements the common stats accessor.
func (s CleanupStats) Succeeded() bool { return s.Success }

type latticeKey struct {
	x, y, z int64
}

func latticeKeyFor(v mesh.Vec3, epsilon float64) latticeKey {
	return latticeKey{
		x: int64(math.Round(float64(v.X) / epsilon)),
		y: int64(math.Round(float64(v.Y) / epsilon)),
		z: int64(math.Round(float64(v.Z) / epsilon)),
	}
}

// MeshCleanup merges vertices that land on the same
// epsilon lattice cell (first vertex seen at a cell wins,
// later duplicates are remapped to it), then drops any face
// that becomes degenerate: either two of its remapped
// corners coincide, or its post-merge area is below
// areaThreshold.
func MeshCleanup(m *mesh.Mesh, opts CleanupOptions) (*mesh.Mesh, CleanupStats) {
	areaThreshold := opts.AreaThreshold
	if areaThreshold == 0 {
		areaThreshold = DefaultAreaThreshold
	}
	mergeEpsilon := opts.MergeEpsilon
	if mergeEpsilon == 0 {
		mergeEpsilon = DefaultMergeEpsilon
	}

	vertexCount := m.VertexCount()
	oldToMerged := make([]uint32, vertexCount)
	winnerForKey := make(map[latticeKey]uint32, vertexCount)
	for i := 0; i < vertexCount; i++ {
		key := latticeKeyFor(m.Vec3At(uint32(i)), mergeEpsilon)
		if winner, ok := winnerForKey[key]; ok {
			oldToMerged[i] = winner
		} else {
			winnerForKey[key] = uint32(i)
			oldToMerged[i] = uint32(i)
		}
	}

	faceCount := m.TriangleCount()
	var keptFaceIndices []uint32
	degenerateCount := 0
	for f := 0; f < faceCount; f++ {
		a, b, c := m.Triangle(f)
		ma, mb, mc := oldToMerged[a], oldToMerged[b], oldToMerged[c]
		if ma == mb || mb == mc || ma == mc {
			degenerateCount++
			continue
		}
		v0 := vertexAt(m, ma)
		v1 := vertexAt(m, mb)
		v2 := vertexAt(m, mc)
		area := 0.5 * float64(v1.Sub(v0).Cross(v2.Sub(v0)).Norm())
		if area < areaThreshold {
			degenerateCount++
			continue
		}
		keptFaceIndices = append(keptFaceIndices, ma, mb, mc)
	}

	// Compaction: shrink positions to exactly the merged
	// vertices still referenced by a kept face.
	usedMerged := make([]int, 0, len(keptFaceIndices))
	seen := make(map[uint32]bool)
	for _, v := range keptFaceIndices {
		if !seen[v] {
			seen[v] = true
			usedMerged = append(usedMerged, int(v))
		}
	}
	sort.Ints(usedMerged)

	mergedToCompact := make(map[uint32]uint32, len(usedMerged))
	positions := make([]float32, 0, len(usedMerged)*3)
	for newIdx, old := range usedMerged {
		mergedToCompact[uint32(old)] = uint32(newIdx)
		p := m.Vec3At(uint32(old))
		positions = append(positions, p.X, p.Y, p.Z)
	}

	indices := make([]uint32, len(keptFaceIndices))
	for i, v := range keptFaceIndices {
		indices[i] = mergedToCompact[v]
	}

	newMesh := &mesh.Mesh{Positions: positions, Indices: indices}
	if opts.recomputeNormals() {
		newMesh.Normals = mesh.ComputeNormals(newMesh.Positions, newMesh.Indices)
	} else {
		newMesh.Normals = make([]float32, len(positions))
	}

	return newMesh, CleanupStats{
		Success:          true,
		NewMeshID:        mesh.DerivedID(m.ID, "cleaned"),
		TrianglesRemoved: degenerateCount,
		VerticesRemoved:  vertexCount - newMesh.VertexCount(),
	}
}

func vertexAt(m *mesh.Mesh, idx uint32) mesh.Vec3 {
	return m.Vec3At(idx)
}
