package mesh

// A BoundingBox is a componentwise (min, max) pair plus
// the derived per-axis dimensions.
type BoundingBox struct {
	Min        Vec3 `json:"min"`
	Max        Vec3 `json:"max"`
	Dimensions Vec3 `json:"dimensions"`
}

// ComputeBoundingBox returns the axis-aligned bounding box
// of a packed position buffer.
//
// An empty buffer returns the all-zero box, fully general
// rather than returning +Inf/-Inf sentinels that would
// otherwise leak into downstream scale checks.
func ComputeBoundingBox(positions []float32) BoundingBox {
	if len(positions) == 0 {
		return BoundingBox{}
	}
	min := Vec3{positions[0], positions[1], positions[2]}
	max := min
	for i := 3; i < len(positions); i += 3 {
		p := Vec3{positions[i], positions[i+1], positions[i+2]}
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}
	return BoundingBox{
		Min:        min,
		Max:        max,
		Dimensions: max.Sub(min),
	}
}

// BoundingBox returns the bounding box of m's current
// positions.
func (m *Mesh) BoundingBox() BoundingBox {
	return ComputeBoundingBox(m.Positions)
}

// MaxDimension returns the largest of the box's three
// per-axis dimensions.
func (b BoundingBox) MaxDimension() float32 {
	d := b.Dimensions
	max := d.X
	if d.Y > max {
		max = d.Y
	}
	if d.Z > max {
		max = d.Z
	}
	return max
}
