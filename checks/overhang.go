package checks

import "github.com/unixpickle/printmesh/mesh"

// DefaultBuildDirection is the "up" unit vector overhang is
// measured against, absent a printer-specific override.
var DefaultBuildDirection = mesh.XYZ(0, 1, 0)

// OverhangResult is the overhang check's output.
type OverhangResult struct {
	// FaceAngles[f] is the angle, in degrees, between face
	// f's normal and the build direction.
	FaceAngles []float32

	// OverhangMask[f] is true when face f is classified as
	// an overhang.
	OverhangMask []bool

	OverhangFaceCount  int
	OverhangPercentage float32
	MaxAngle           float32
}

// Overhang computes the per-face overhang classification
// for every triangle in m.
//
// A face's normal is its unnormalized edge cross-product,
// normalized; if that normal is near-zero (a degenerate
// triangle), the build direction itself is substituted,
// which treats the face as up-facing (angle 0, never an
// overhang). A face is an overhang iff its angle exceeds
// 90 + thresholdDeg.
func Overhang(m *mesh.Mesh, buildDirection mesh.Vec3, thresholdDeg float32) OverhangResult {
	faceCount := m.TriangleCount()
	result := OverhangResult{
		FaceAngles:   make([]float32, faceCount),
		OverhangMask: make([]bool, faceCount),
	}
	if faceCount == 0 {
		return result
	}

	buildDirection = buildDirection.Normalize()
	cutoff := float32(90) + thresholdDeg
	var overhangCount int
	var maxAngle float32
	for f := 0; f < faceCount; f++ {
		v0, v1, v2 := m.TriangleVerts(f)
		normal := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
		if normal == (mesh.Vec3{}) {
			normal = buildDirection
		}
		angle := normal.AngleDeg(buildDirection)
		result.FaceAngles[f] = angle
		if angle > maxAngle {
			maxAngle = angle
		}
		if angle > cutoff {
			result.OverhangMask[f] = true
			overhangCount++
		}
	}

	result.OverhangFaceCount = overhangCount
	result.OverhangPercentage = 100 * float32(overhangCount) / float32(faceCount)
	result.MaxAngle = maxAngle
	return result
}

// Heat maps an overhang angle to a [0,1] display intensity:
// 0 at the overhang cutoff (90+threshold), 1 at 180
// degrees.
func Heat(angleDeg, thresholdDeg float32) float32 {
	cutoff := float32(90) + thresholdDeg
	span := float32(180) - cutoff
	if span <= 0 {
		return 0
	}
	h := (angleDeg - cutoff) / span
	if h < 0 {
		return 0
	}
	if h > 1 {
		return 1
	}
	return h
}
