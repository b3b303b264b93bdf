package topology

import "testing"

func cubeIndices() []uint32 {
	return []uint32{
		0, 1, 2, 0, 2, 3,
		4, 6, 5, 4, 7, 6,
		0, 4, 5, 0, 5, 1,
		1, 5, 6, 1, 6, 2,
		2, 6, 7, 2, 7, 3,
		3, 7, 4, 3, 4, 0,
	}
}

func TestBuildEdgeMapClosedCube(t *testing.T) {
	em := BuildEdgeMap(cubeIndices())
	if len(em.BoundaryEdges()) != 0 {
		t.Errorf("closed cube should have no boundary edges, got %d", len(em.BoundaryEdges()))
	}
	if len(em.NonManifoldEdges()) != 0 {
		t.Errorf("closed cube should have no non-manifold edges, got %d", len(em.NonManifoldEdges()))
	}
	// 12 triangles, 3 edges each, shared pairwise -> 18 distinct edges.
	if em.Len() != 18 {
		t.Errorf("expected 18 distinct edges, got %d", em.Len())
	}
	if len(em.ManifoldEdges()) != 18 {
		t.Errorf("expected all 18 edges manifold, got %d", len(em.ManifoldEdges()))
	}
}

func TestBuildEdgeMapOpenBox(t *testing.T) {
	// Cube minus the x=0 side face (last two triangles removed).
	indices := cubeIndices()[:len(cubeIndices())-6]
	em := BuildEdgeMap(indices)
	boundary := em.BoundaryEdges()
	if len(boundary) != 4 {
		t.Errorf("expected 4 boundary edges, got %d", len(boundary))
	}
}

func TestNonManifoldEdgeDetection(t *testing.T) {
	// Three triangles all sharing the same edge (0,1).
	indices := []uint32{
		0, 1, 2,
		0, 1, 3,
		0, 1, 4,
	}
	em := BuildEdgeMap(indices)
	nm := em.NonManifoldEdges()
	if len(nm) != 1 {
		t.Fatalf("expected 1 non-manifold edge, got %d", len(nm))
	}
	if len(nm[0].Faces) != 3 {
		t.Errorf("expected 3 incident faces, got %d", len(nm[0].Faces))
	}
}

func TestEdgeMapDeterministicOrder(t *testing.T) {
	indices := cubeIndices()
	em1 := BuildEdgeMap(indices)
	em2 := BuildEdgeMap(indices)
	for i, e := range em1.All() {
		if em2.All()[i].Key != e.Key {
			t.Fatalf("edge order mismatch at %d: %v vs %v", i, e.Key, em2.All()[i].Key)
		}
	}
}
