package topology

import "testing"

func TestFindConnectedComponentsEmpty(t *testing.T) {
	c := FindConnectedComponents(nil, BuildEdgeMap(nil), 5)
	if c.Main != -1 {
		t.Errorf("expected main -1 for empty mesh, got %d", c.Main)
	}
	if c.Count() != 0 {
		t.Errorf("expected 0 components, got %d", c.Count())
	}
}

func TestFindConnectedComponentsSingleComponent(t *testing.T) {
	indices := cubeIndices()
	em := BuildEdgeMap(indices)
	c := FindConnectedComponents(indices, em, 5)
	if c.Count() != 1 {
		t.Fatalf("expected 1 component, got %d", c.Count())
	}
	if c.Sizes[0] != 12 {
		t.Errorf("expected component size 12, got %d", c.Sizes[0])
	}
	sum := 0
	for _, s := range c.Sizes {
		sum += s
	}
	if sum != len(indices)/3 {
		t.Errorf("sum of component sizes %d != face count %d", sum, len(indices)/3)
	}
}

func TestFindConnectedComponentsFloater(t *testing.T) {
	// A 10-triangle strip (ids 0..9) plus a single
	// disconnected triangle (id 10): 11 faces total.
	var indices []uint32
	for i := uint32(0); i < 10; i++ {
		indices = append(indices, i, i+1, i+2)
	}
	indices = append(indices, 1000, 1001, 1002)

	em := BuildEdgeMap(indices)
	c := FindConnectedComponents(indices, em, 10)
	if c.Count() != 2 {
		t.Fatalf("expected 2 components, got %d", c.Count())
	}
	if len(c.Floaters) != 1 {
		t.Fatalf("expected 1 floater at 10%% threshold, got %d", len(c.Floaters))
	}
	floaterID := c.Floaters[0]
	if c.Sizes[floaterID] != 1 {
		t.Errorf("expected floater size 1, got %d", c.Sizes[floaterID])
	}
	if floaterID == c.Main {
		t.Error("floater must not be the main component")
	}
}

func TestComponentIDsContiguous(t *testing.T) {
	indices := cubeIndices()
	em := BuildEdgeMap(indices)
	c := FindConnectedComponents(indices, em, 5)
	seen := make(map[int]bool)
	for _, id := range c.FaceComponent {
		if id < 0 || id >= c.Count() {
			t.Fatalf("component id %d out of range [0,%d)", id, c.Count())
		}
		seen[id] = true
	}
	if len(seen) != c.Count() {
		t.Errorf("expected ids 0..%d, saw %d distinct ids", c.Count()-1, len(seen))
	}
}
