package repair

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/unixpickle/printmesh/mesh"
	"github.com/unixpickle/printmesh/topology"
)

// genMesh builds an arbitrary, possibly-disconnected,
// possibly-degenerate triangle soup: vertices on a coarse
// integer lattice so merges and degeneracies happen often
// enough to be interesting, referenced by faces drawn with
// replacement.
func genMesh(t *rapid.T) *mesh.Mesh {
	vertexCount := rapid.IntRange(3, 24).Draw(t, "vertexCount")
	coord := rapid.IntRange(-3, 3)
	positions := make([]float32, 0, vertexCount*3)
	for i := 0; i < vertexCount; i++ {
		positions = append(positions,
			float32(coord.Draw(t, "x")),
			float32(coord.Draw(t, "y")),
			float32(coord.Draw(t, "z")),
		)
	}

	faceCount := rapid.IntRange(1, 16).Draw(t, "faceCount")
	vertexIdx := rapid.IntRange(0, vertexCount-1)
	indices := make([]uint32, 0, faceCount*3)
	for i := 0; i < faceCount; i++ {
		a := vertexIdx.Draw(t, "a")
		b := vertexIdx.Draw(t, "b")
		c := vertexIdx.Draw(t, "c")
		indices = append(indices, uint32(a), uint32(b), uint32(c))
	}

	return &mesh.Mesh{ID: "rand", Positions: positions, Indices: indices}
}

// TestRemoveFloatersInvariants checks the universal
// post-condition every repair operator must uphold (the
// output always validates, with indices strictly within
// bounds) plus RemoveFloaters' own idempotence: a second
// pass over its own output never removes anything further.
func TestRemoveFloatersInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := genMesh(t)
		threshold := rapid.Float64Range(0, 50).Draw(t, "threshold")
		out, stats := RemoveFloaters(m, FloaterOptions{ThresholdPercent: threshold})
		if !stats.Succeeded() {
			t.Fatal("RemoveFloaters reported failure")
		}
		if err := mesh.Validate(out); err != nil {
			t.Fatalf("output does not validate: %v", err)
		}

		_, second := RemoveFloaters(out, FloaterOptions{ThresholdPercent: threshold})
		if second.ComponentsRemoved != 0 {
			t.Fatalf("second pass removed %d more components, expected idempotence", second.ComponentsRemoved)
		}
	})
}

// TestMeshCleanupInvariants checks MeshCleanup always
// yields a validating mesh with no duplicate-position
// vertices at the configured epsilon, and is idempotent.
func TestMeshCleanupInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := genMesh(t)
		out, stats := MeshCleanup(m, CleanupOptions{})
		if !stats.Succeeded() {
			t.Fatal("MeshCleanup reported failure")
		}
		if err := mesh.Validate(out); err != nil {
			t.Fatalf("output does not validate: %v", err)
		}

		_, second := MeshCleanup(out, CleanupOptions{})
		if second.VerticesRemoved != 0 || second.TrianglesRemoved != 0 {
			t.Fatalf("second pass changed %d vertices / %d triangles, expected a fixed point",
				second.VerticesRemoved, second.TrianglesRemoved)
		}
	})
}

// TestAutoOrientInvariants checks AutoOrient never degrades
// the overhang percentage relative to the identity
// orientation and always preserves triangle count (rotation
// never touches topology).
func TestAutoOrientInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := genMesh(t)
		if m.TriangleCount() == 0 {
			return
		}
		out, stats := AutoOrient(m, OrientOptions{})
		if !stats.Succeeded() {
			t.Fatal("AutoOrient reported failure")
		}
		if out.TriangleCount() != m.TriangleCount() {
			t.Fatalf("triangle count changed: %d -> %d", m.TriangleCount(), out.TriangleCount())
		}
		if stats.Best.OverhangPercent > stats.Current.OverhangPercent {
			t.Fatalf("best candidate %v is worse than current %v", stats.Best, stats.Current)
		}
	})
}

// TestWatertightRemeshInvariants checks that whenever
// WatertightRemesh reports success, the output validates and
// never has MORE boundary edges than the input (filling
// holes can only remove boundary edges, modulo any it
// skipped for exceeding maxHoleSize).
func TestWatertightRemeshInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := genMesh(t)
		out, stats := WatertightRemesh(m, RemeshOptions{})
		if !stats.Succeeded() {
			return
		}
		if err := mesh.Validate(out); err != nil {
			t.Fatalf("output does not validate: %v", err)
		}
		em := topology.BuildEdgeMap(out.Indices)
		after := len(em.BoundaryEdges())
		if after > stats.BoundaryEdgesBefore {
			t.Fatalf("boundary edges increased: %d -> %d", stats.BoundaryEdgesBefore, after)
		}
	})
}
