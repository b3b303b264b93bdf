package mesh

// ComputeNormals derives per-vertex normals for a mesh by
// accumulating the unnormalized cross-product of each
// triangle's edges onto its three vertices, then
// normalizing every vertex's accumulated vector.
//
// Because the cross-product's magnitude is twice the
// triangle's area, vertices shared by large triangles are
// weighted more heavily than those only touched by slivers
// — area-weighted averaging falls out of the accumulation
// for free, with no separate weight term.
//
// The returned slice has length equal to positions; a
// vertex touched only by degenerate (zero-area) triangles,
// or no triangles at all, is left as the zero vector.
func ComputeNormals(positions []float32, indices []uint32) []float32 {
	normals := make([]float32, len(positions))
	triangleCount := len(indices) / 3
	for f := 0; f < triangleCount; f++ {
		ia, ib, ic := indices[3*f], indices[3*f+1], indices[3*f+2]
		v0 := vecAt(positions, ia)
		v1 := vecAt(positions, ib)
		v2 := vecAt(positions, ic)
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		addVecAt(normals, ia, n)
		addVecAt(normals, ib, n)
		addVecAt(normals, ic, n)
	}
	for i := 0; i < len(normals)/3; i++ {
		v := vecAt(normals, uint32(i))
		setVecAt(normals, uint32(i), v.Normalize())
	}
	return normals
}

func vecAt(buf []float32, i uint32) Vec3 {
	base := 3 * i
	return Vec3{buf[base], buf[base+1], buf[base+2]}
}

func setVecAt(buf []float32, i uint32, v Vec3) {
	base := 3 * i
	buf[base] = v.X
	buf[base+1] = v.Y
	buf[base+2] = v.Z
}

func addVecAt(buf []float32, i uint32, v Vec3) {
	base := 3 * i
	buf[base] += v.X
	buf[base+1] += v.Y
	buf[base+2] += v.Z
}

// EnsureNormals returns m unchanged if it already carries
// normals, or a clone with freshly computed normals
// otherwise.
func EnsureNormals(m *Mesh) *Mesh {
	if m.Normals != nil {
		return m
	}
	m1 := m.Clone()
	m1.Normals = ComputeNormals(m1.Positions, m1.Indices)
	return m1
}
