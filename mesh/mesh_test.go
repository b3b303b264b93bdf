package mesh

import "testing"

func unitTriangle() *Mesh {
	return &Mesh{
		ID:        "tri",
		Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Indices:   []uint32{0, 1, 2},
	}
}

func TestValidateOK(t *testing.T) {
	m := unitTriangle()
	if err := Validate(m); err != nil {
		t.Fatalf("expected valid mesh, got %v", err)
	}
}

func TestValidateBadPositionsLength(t *testing.T) {
	m := unitTriangle()
	m.Positions = append(m.Positions, 1)
	err := Validate(m)
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestValidateIndexOutOfBounds(t *testing.T) {
	m := unitTriangle()
	m.Indices[0] = 99
	err := Validate(m)
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestValidateNormalsLengthMismatch(t *testing.T) {
	m := unitTriangle()
	m.Normals = []float32{0, 0, 1}
	err := Validate(m)
	if err == nil {
		t.Fatal("expected validation error for mismatched normals length")
	}
}

func TestVertexTriangleCounts(t *testing.T) {
	m := unitTriangle()
	if m.VertexCount() != 3 {
		t.Errorf("expected 3 vertices, got %d", m.VertexCount())
	}
	if m.TriangleCount() != 1 {
		t.Errorf("expected 1 triangle, got %d", m.TriangleCount())
	}
}

func TestClone(t *testing.T) {
	m := unitTriangle()
	m1 := m.Clone()
	m1.Positions[0] = 42
	if m.Positions[0] == 42 {
		t.Fatal("clone should not alias the original's buffers")
	}
}

func TestDerivedID(t *testing.T) {
	if got := DerivedID("cube", "repaired"); got != "cube-repaired" {
		t.Errorf("unexpected derived id: %s", got)
	}
	if got := DerivedID("", "repaired"); got != "mesh-repaired" {
		t.Errorf("unexpected derived id for empty parent: %s", got)
	}
}
