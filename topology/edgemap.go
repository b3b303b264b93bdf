// Package topology builds the edge-adjacency and
// connected-component views every analysis check and
// repair operator derives from a mesh's index buffer.
//
// Both views are pure functions of the index buffer: they
// own no state beyond a single call and are rebuilt from
// scratch after any topology-changing operation.
package topology

// An EdgeKey is the canonical undirected representation of
// an edge: the two vertex indices in ascending order.
type EdgeKey struct {
	A, B uint32
}

func newEdgeKey(v0, v1 uint32) EdgeKey {
	if v0 > v1 {
		v0, v1 = v1, v0
	}
	return EdgeKey{A: v0, B: v1}
}

// CanonicalEdgeKey exposes newEdgeKey's (min, max)
// canonicalization for callers outside this package that
// need to track individual edges (e.g. boundary-loop
// walking during hole filling).
func CanonicalEdgeKey(v0, v1 uint32) EdgeKey {
	return newEdgeKey(v0, v1)
}

// An Edge records every triangle (by face index, in
// discovery order) that references a given vertex pair.
type Edge struct {
	Key   EdgeKey
	Faces []int
}

// Manifold reports whether the edge is referenced by
// exactly two triangles.
func (e Edge) Manifold() bool { return len(e.Faces) == 2 }

// Boundary reports whether the edge is referenced by
// exactly one triangle.
func (e Edge) Boundary() bool { return len(e.Faces) == 1 }

// NonManifold reports whether the edge is referenced by
// three or more triangles.
func (e Edge) NonManifold() bool { return len(e.Faces) >= 3 }

// An EdgeMap is an insertion-ordered edge→incident-faces
// index. Go's built-in map does not guarantee iteration
// order, and every downstream consumer of this module
// requires order-deterministic output, so EdgeMap pairs a
// lookup map with an ordered slice of the edges as they
// were first seen.
type EdgeMap struct {
	order []EdgeKey
	byKey map[EdgeKey]int // index into order/edges
	edges []Edge
}

// BuildEdgeMap iterates the faces of an index buffer in
// order and, for each of a face's three vertex pairs,
// inserts or appends to that edge's incident-face list.
func BuildEdgeMap(indices []uint32) *EdgeMap {
	faceCount := len(indices) / 3
	em := &EdgeMap{
		byKey: make(map[EdgeKey]int, faceCount*3/2+1),
	}
	for f := 0; f < faceCount; f++ {
		a, b, c := indices[3*f], indices[3*f+1], indices[3*f+2]
		em.addFaceEdge(a, b, f)
		em.addFaceEdge(b, c, f)
		em.addFaceEdge(c, a, f)
	}
	return em
}

func (em *EdgeMap) addFaceEdge(v0, v1 uint32, face int) {
	key := newEdgeKey(v0, v1)
	if idx, ok := em.byKey[key]; ok {
		em.edges[idx].Faces = append(em.edges[idx].Faces, face)
		return
	}
	em.byKey[key] = len(em.edges)
	em.order = append(em.order, key)
	em.edges = append(em.edges, Edge{Key: key, Faces: []int{face}})
}

// Len returns the number of distinct edges.
func (em *EdgeMap) Len() int {
	return len(em.edges)
}

// Lookup returns the Edge for a vertex pair, if present.
func (em *EdgeMap) Lookup(v0, v1 uint32) (Edge, bool) {
	idx, ok := em.byKey[newEdgeKey(v0, v1)]
	if !ok {
		return Edge{}, false
	}
	return em.edges[idx], true
}

// All returns every edge in insertion (discovery) order.
func (em *EdgeMap) All() []Edge {
	return em.edges
}

// BoundaryEdges returns every edge with exactly one
// incident face, in discovery order.
func (em *EdgeMap) BoundaryEdges() []Edge {
	return em.filter(Edge.Boundary)
}

// ManifoldEdges returns every edge with exactly two
// incident faces, in discovery order.
func (em *EdgeMap) ManifoldEdges() []Edge {
	return em.filter(Edge.Manifold)
}

// NonManifoldEdges returns every edge with three or more
// incident faces, in discovery order.
func (em *EdgeMap) NonManifoldEdges() []Edge {
	return em.filter(Edge.NonManifold)
}

func (em *EdgeMap) filter(pred func(Edge) bool) []Edge {
	var result []Edge
	for _, e := range em.edges {
		if pred(e) {
			result = append(result, e)
		}
	}
	return result
}
