package mesh

import "testing"

func TestComputeNormalsUnitLength(t *testing.T) {
	// A closed unit cube; every vertex touches at least one
	// non-degenerate face, so every normal should come out
	// unit length.
	positions := []float32{
		0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0,
		0, 0, 1, 1, 0, 1, 1, 1, 1, 0, 1, 1,
	}
	indices := []uint32{
		0, 1, 2, 0, 2, 3, // bottom
		4, 6, 5, 4, 7, 6, // top
		0, 4, 5, 0, 5, 1, // front
		1, 5, 6, 1, 6, 2, // right
		2, 6, 7, 2, 7, 3, // back
		3, 7, 4, 3, 4, 0, // left
	}
	normals := ComputeNormals(positions, indices)
	if len(normals) != len(positions) {
		t.Fatalf("expected normals length %d, got %d", len(positions), len(normals))
	}
	for i := 0; i < len(normals)/3; i++ {
		v := vecAt(normals, uint32(i))
		n := v.Norm()
		if n < 0.999 || n > 1.001 {
			t.Errorf("vertex %d: expected unit normal, got length %v", i, n)
		}
	}
}

func TestComputeNormalsDegenerateIsolatedVertex(t *testing.T) {
	// A degenerate triangle (all collinear) plus an isolated
	// vertex with no incident face at all.
	positions := []float32{
		0, 0, 0, 1, 0, 0, 2, 0, 0,
		5, 5, 5,
	}
	indices := []uint32{0, 1, 2}
	normals := ComputeNormals(positions, indices)
	for _, idx := range []uint32{0, 1, 2, 3} {
		v := vecAt(normals, idx)
		if v != (Vec3{}) {
			t.Errorf("expected zero normal for degenerate/isolated vertex %d, got %v", idx, v)
		}
	}
}

func TestEnsureNormalsIdempotent(t *testing.T) {
	m := unitTriangle()
	m1 := EnsureNormals(m)
	if m1 == m {
		t.Fatal("EnsureNormals should clone when normals are absent")
	}
	m2 := EnsureNormals(m1)
	if m2 != m1 {
		t.Fatal("EnsureNormals should be a no-op when normals are already present")
	}
}
