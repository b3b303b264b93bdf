package checks

import (
	"sort"

	"github.com/unixpickle/printmesh/mesh"
)

// lcg is the seeded linear-congruential generator the spec
// mandates for decimation, so that two runs (on any
// platform) subsample the same mesh identically.
type lcg struct {
	state uint64
}

const (
	lcgA = 1103515245
	lcgC = 12345
	lcgM = 1 << 31
)

func newLCG(seed int) *lcg {
	return &lcg{state: uint64(seed) % lcgM}
}

func (g *lcg) next() uint64 {
	g.state = (lcgA*g.state + lcgC) % lcgM
	return g.state
}

// shuffleFaceOrder returns a deterministic permutation of
// [0, n) produced by a Fisher-Yates shuffle driven by the
// seeded LCG.
func shuffleFaceOrder(n int, seed int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	g := newLCG(seed)
	for i := n - 1; i > 0; i-- {
		j := int(g.next() % uint64(i+1))
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// DecimateIfNeeded returns m unchanged when its triangle
// count is within maxTriangles. Otherwise it returns a new
// mesh containing a uniform, deterministically-seeded
// subsample of maxTriangles faces, with positions/indices/
// normals compacted to only the vertices the kept faces
// reference.
//
// The second return value reports whether decimation ran;
// the third is the original (pre-decimation) triangle
// count, which callers preserve in report statistics even
// though the returned mesh's own TriangleCount is smaller.
func DecimateIfNeeded(m *mesh.Mesh, maxTriangles int) (result *mesh.Mesh, decimated bool, originalTriangleCount int) {
	faceCount := m.TriangleCount()
	if maxTriangles <= 0 || faceCount <= maxTriangles {
		return m, false, faceCount
	}

	order := shuffleFaceOrder(faceCount, faceCount)
	kept := append([]int{}, order[:maxTriangles]...)
	sort.Ints(kept)

	usedOld := make([]int, 0, len(kept)*3)
	seen := make(map[uint32]bool)
	for _, f := range kept {
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

	var normals []float32
	if m.Normals != nil {
		normals = make([]float32, 0, len(usedOld)*3)
		for _, old := range usedOld {
			normals = append(normals, m.Normals[3*old], m.Normals[3*old+1], m.Normals[3*old+2])
		}
	}

	indices := make([]uint32, 0, len(kept)*3)
	for _, f := range kept {
		indices = append(indices,
			oldToNew[m.Indices[3*f]],
			oldToNew[m.Indices[3*f+1]],
			oldToNew[m.Indices[3*f+2]],
		)
	}

	return &mesh.Mesh{
		ID:        m.ID,
		Name:      m.Name,
		Positions: positions,
		Indices:   indices,
		Normals:   normals,
	}, true, faceCount
}
