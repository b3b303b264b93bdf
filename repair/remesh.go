package repair

import (
	"github.com/unixpickle/printmesh/mesh"
	"github.com/unixpickle/printmesh/topology"
)

// DefaultMaxHoleSize is the default edge-count cap on a
// hole WatertightRemesh will attempt to fill.
const DefaultMaxHoleSize = 100

// RemeshOptions configures WatertightRemesh.
type RemeshOptions struct {
	MaxHoleSize int
}

// RemeshStats reports what WatertightRemesh did.
type RemeshStats struct {
	Success             bool   `json:"success"`
	NewMeshID           string `json:"newMeshId,omitempty"`
	Error               string `json:"error,omitempty"`
	HolesFilled         int    `json:"holesFilled"`
	HolesSkipped        int    `json:"holesSkipped"`
	TrianglesAdded      int    `json:"trianglesAdded"`
	VerticesAdded       int    `json:"verticesAdded"`
	BoundaryEdgesBefore int    `json:"boundaryEdgesBefore"`
	BoundaryEdgesAfter  int    `json:"boundaryEdgesAfter"`
}

// Succeeded implements the common stats accessor.
func (s RemeshStats) Succeeded() bool { return s.Success }

// WatertightRemesh extracts closed boundary loops and fills
// each one (up to MaxHoleSize edges) with a centroid fan:
// a new vertex at the loop's centroid, triangulated against
// every consecutive pair of loop vertices.
//
// If the mesh has no boundary edges, this is a no-op
// success. If no hole can be filled (every closed loop
// exceeds MaxHoleSize, or the boundary edges form no
// closed loop), the input is returned unchanged with
// Success=false.
func WatertightRemesh(m *mesh.Mesh, opts RemeshOptions) (*mesh.Mesh, RemeshStats) {
	maxHoleSize := opts.MaxHoleSize
	if maxHoleSize == 0 {
		maxHoleSize = DefaultMaxHoleSize
	}

	em := topology.BuildEdgeMap(m.Indices)
	boundary := em.BoundaryEdges()
	if len(boundary) == 0 {
		return m, RemeshStats{Success: true}
	}

	loops := extractBoundaryLoops(boundary)

	var accepted [][]uint32
	skipped := 0
	for _, loop := range loops {
		if len(loop) > maxHoleSize {
			skipped++
			continue
		}
		accepted = append(accepted, loop)
	}

	if len(accepted) == 0 {
		errMsg := "every hole exceeds maxHoleSize"
		if skipped == 0 {
			errMsg = "boundary edges form no closed loop"
		}
		return m, RemeshStats{
			Success:             false,
			Error:               errMsg,
			HolesSkipped:        skipped,
			BoundaryEdgesBefore: len(boundary),
			BoundaryEdgesAfter:  len(boundary),
		}
	}

	positions := append([]float32{}, m.Positions...)
	var indices []uint32
	// Reuse original faces first, new fan faces appended.
	indices = append(indices, m.Indices...)

	trianglesAdded := 0
	for _, loop := range accepted {
		centroid := mesh.Vec3{}
		for _, v := range loop {
			centroid = centroid.Add(m.Vec3At(v))
		}
		centroid = centroid.Scale(1 / float32(len(loop)))

		normal := newellNormal(m, loop)
		centroidIdx := uint32(len(positions) / 3)
		positions = append(positions, centroid.X, centroid.Y, centroid.Z)

		for i := 0; i < len(loop); i++ {
			v0 := loop[i]
			v1 := loop[(i+1)%len(loop)]
			// Orient the fan so its normal agrees with the
			// loop's Newell normal.
			tri := [3]uint32{centroidIdx, v0, v1}
			if !triangleAgreesWithNormal(m, positions, tri, normal) {
				tri[1], tri[2] = tri[2], tri[1]
			}
			indices = append(indices, tri[0], tri[1], tri[2])
			trianglesAdded++
		}
	}

	newMesh := &mesh.Mesh{Positions: positions, Indices: indices}
	newMesh.Normals = mesh.ComputeNormals(newMesh.Positions, newMesh.Indices)

	verifyEm := topology.BuildEdgeMap(newMesh.Indices)
	after := len(verifyEm.BoundaryEdges())

	return newMesh, RemeshStats{
		Success:             true,
		NewMeshID:           mesh.DerivedID(m.ID, "remeshed"),
		HolesFilled:         len(accepted),
		HolesSkipped:        skipped,
		TrianglesAdded:      trianglesAdded,
		VerticesAdded:       len(accepted),
		BoundaryEdgesBefore: len(boundary),
		BoundaryEdgesAfter:  after,
	}
}

// extractBoundaryLoops walks the boundary-edge subgraph,
// starting from each unvisited edge in the edge map's
// insertion order, following the neighbor that isn't the
// vertex just arrived from, until the walk returns to its
// starting vertex. Incomplete (dead-end) walks are
// discarded.
func extractBoundaryLoops(boundary []topology.Edge) [][]uint32 {
	adj := make(map[uint32][]uint32)
	for _, e := range boundary {
		adj[e.Key.A] = append(adj[e.Key.A], e.Key.B)
		adj[e.Key.B] = append(adj[e.Key.B], e.Key.A)
	}

	visited := make(map[topology.EdgeKey]bool, len(boundary))
	var loops [][]uint32

	for _, e := range boundary {
		if visited[e.Key] {
			continue
		}
		start := e.Key.A
		prev := e.Key.A
		cur := e.Key.B
		visited[e.Key] = true
		loop := []uint32{start}
		closed := false

		for {
			if cur == start {
				closed = true
				break
			}
			loop = append(loop, cur)

			var next uint32
			found := false
			for _, nb := range adj[cur] {
				if nb == prev {
					continue
				}
				key := topology.CanonicalEdgeKey(cur, nb)
				if visited[key] {
					continue
				}
				next = nb
				found = true
				break
			}
			if !found {
				break
			}
			visited[topology.CanonicalEdgeKey(cur, next)] = true
			prev = cur
			cur = next
		}

		if closed {
			loops = append(loops, loop)
		}
	}

	return loops
}

// newellNormal computes a loop's polygon normal via
// Newell's method, falling back to the up axis when the
// result is near zero (e.g. a perfectly linear degenerate
// loop).
func newellNormal(m *mesh.Mesh, loop []uint32) mesh.Vec3 {
	var n mesh.Vec3
	for i := 0; i < len(loop); i++ {
		cur := m.Vec3At(loop[i])
		next := m.Vec3At(loop[(i+1)%len(loop)])
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	n = n.Normalize()
	if n == (mesh.Vec3{}) {
		return mesh.XYZ(0, 1, 0)
	}
	return n
}

// triangleAgreesWithNormal reports whether a candidate
// triangle's winding produces a normal on the same side as
// the reference normal.
func triangleAgreesWithNormal(m *mesh.Mesh, positions []float32, tri [3]uint32, normal mesh.Vec3) bool {
	v0 := vertexFromBuffer(positions, tri[0])
	v1 := vertexFromBuffer(positions, tri[1])
	v2 := vertexFromBuffer(positions, tri[2])
	faceNormal := v1.Sub(v0).Cross(v2.Sub(v0))
	return faceNormal.Dot(normal) >= 0
}

func vertexFromBuffer(positions []float32, idx uint32) mesh.Vec3 {
	base := 3 * idx
	return mesh.Vec3{X: positions[base], Y: positions[base+1], Z: positions[base+2]}
}
