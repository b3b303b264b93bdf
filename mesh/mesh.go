package mesh

import (
	"fmt"

	"github.com/pkg/errors"
)

// A Mesh is the universal mesh-processing unit: packed
// vertex positions, packed triangle indices, and (once the
// mesh has passed through the pipeline) packed vertex
// normals.
//
// Meshes are value objects. The analysis checks and repair
// operators never mutate a Mesh's buffers in place; every
// transformation returns a new Mesh. SetVec3At is the one
// method that writes into a Mesh's buffers.
type Mesh struct {
	ID   string
	Name string

	// Positions has length 3*VertexCount(). Vertex i
	// occupies Positions[3*i : 3*i+3].
	Positions []float32

	// Indices has length 3*TriangleCount(). Triangle f
	// occupies Indices[3*f : 3*f+3]; every value is
	// < VertexCount().
	Indices []uint32

	// Normals, when present, is parallel to Positions. It
	// is optional on input. Every new mesh a repair
	// operator builds carries it; a decimated analysis copy
	// carries it only when its input did.
	Normals []float32
}

// VertexCount returns the number of vertices implied by
// Positions.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles implied by
// Indices.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Vec3At returns the position of vertex i.
func (m *Mesh) Vec3At(i uint32) Vec3 {
	base := 3 * i
	return Vec3{m.Positions[base], m.Positions[base+1], m.Positions[base+2]}
}

// SetVec3At overwrites the position of vertex i.
func (m *Mesh) SetVec3At(i uint32, v Vec3) {
	base := 3 * i
	m.Positions[base] = v.X
	m.Positions[base+1] = v.Y
	m.Positions[base+2] = v.Z
}

// NormalAt returns the normal of vertex i. Normals must be
// present.
func (m *Mesh) NormalAt(i uint32) Vec3 {
	base := 3 * i
	return Vec3{m.Normals[base], m.Normals[base+1], m.Normals[base+2]}
}

// Triangle returns the three vertex indices of triangle f.
func (m *Mesh) Triangle(f int) (a, b, c uint32) {
	base := 3 * f
	return m.Indices[base], m.Indices[base+1], m.Indices[base+2]
}

// TriangleVerts returns the three vertex positions of
// triangle f, in winding order.
func (m *Mesh) TriangleVerts(f int) (v0, v1, v2 Vec3) {
	a, b, c := m.Triangle(f)
	return m.Vec3At(a), m.Vec3At(b), m.Vec3At(c)
}

// Clone returns a deep copy of m, including a copy of m's
// ID and Name.
func (m *Mesh) Clone() *Mesh {
	m1 := &Mesh{
		ID:        m.ID,
		Name:      m.Name,
		Positions: append([]float32{}, m.Positions...),
		Indices:   append([]uint32{}, m.Indices...),
	}
	if m.Normals != nil {
		m1.Normals = append([]float32{}, m.Normals...)
	}
	return m1
}

// DerivedID builds the `<parent>-<op>` identifier repair
// operators assign to the meshes they produce.
func DerivedID(parentID, op string) string {
	if parentID == "" {
		parentID = "mesh"
	}
	return fmt.Sprintf("%s-%s", parentID, op)
}

// ValidationErrors is a non-empty list of problems found
// by Validate. It implements error by joining its
// messages, but callers that want the individual messages
// should range over it directly.
type ValidationErrors []string

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0]
	}
	return fmt.Sprintf("%d mesh validation errors, first: %s", len(e), e[0])
}

// Validate checks the structural invariants spec'd for a
// Mesh: index bounds, length divisibility, count
// consistency, normals-length parity. It does NOT check
// bounding-box ordering: a Mesh stores no bounding box, and
// ComputeBoundingBox derives one from Positions on demand.
//
// It returns a nil error when the mesh is well-formed, or
// a non-nil ValidationErrors otherwise.
func Validate(m *Mesh) error {
	var errs ValidationErrors

	if len(m.Positions)%3 != 0 {
		errs = append(errs, fmt.Sprintf("positions length %d is not divisible by 3", len(m.Positions)))
	}
	if len(m.Indices)%3 != 0 {
		errs = append(errs, fmt.Sprintf("indices length %d is not divisible by 3", len(m.Indices)))
	}
	vertexCount := len(m.Positions) / 3
	if m.Normals != nil && len(m.Normals) != len(m.Positions) {
		errs = append(errs, fmt.Sprintf("normals length %d does not match positions length %d",
			len(m.Normals), len(m.Positions)))
	}
	for _, idx := range m.Indices {
		if int(idx) >= vertexCount {
			errs = append(errs, fmt.Sprintf("index %d exceeds vertex count %d", idx, vertexCount))
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MustValidate panics if Validate fails. No request-handling
// path in this module calls it.
func MustValidate(m *Mesh) {
	if err := Validate(m); err != nil {
		panic(errors.Wrap(err, "mesh: invalid mesh"))
	}
}
