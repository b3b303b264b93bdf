package mesh

import "testing"

func TestComputeBoundingBoxEmpty(t *testing.T) {
	b := ComputeBoundingBox(nil)
	if b.Min != (Vec3{}) || b.Max != (Vec3{}) || b.Dimensions != (Vec3{}) {
		t.Fatalf("expected all-zero box for empty input, got %+v", b)
	}
}

func TestComputeBoundingBoxCube(t *testing.T) {
	positions := []float32{0, 0, 0, 2, 3, 4, -1, 0, 0}
	b := ComputeBoundingBox(positions)
	if b.Min != (Vec3{-1, 0, 0}) {
		t.Errorf("unexpected min: %+v", b.Min)
	}
	if b.Max != (Vec3{2, 3, 4}) {
		t.Errorf("unexpected max: %+v", b.Max)
	}
	if b.Dimensions != (Vec3{3, 3, 4}) {
		t.Errorf("unexpected dimensions: %+v", b.Dimensions)
	}
	if got := b.MaxDimension(); got != 4 {
		t.Errorf("expected max dimension 4, got %v", got)
	}
}
