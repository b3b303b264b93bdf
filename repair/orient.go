package repair

import (
	"math"

	"github.com/unixpickle/printmesh/checks"
	"github.com/unixpickle/printmesh/mesh"
)

// DefaultYawCandidatesDeg and DefaultPitchCandidatesDeg
// define the (deliberately sparse) orientation search
// space AutoOrient enumerates. Expanding either is a pure
// configuration change.
var (
	DefaultYawCandidatesDeg   = []float64{0, 90, 180, 270}
	DefaultPitchCandidatesDeg = []float64{0, 90}
)

// OrientOptions configures AutoOrient.
type OrientOptions struct {
	OverhangThresholdDeg float64
	YawCandidatesDeg     []float64
	PitchCandidatesDeg   []float64
}

// OrientCandidate is one tested (yaw, pitch) orientation
// and its resulting overhang percentage.
type OrientCandidate struct {
	YawDeg          float64 `json:"yawDeg"`
	PitchDeg        float64 `json:"pitchDeg"`
	OverhangPercent float32 `json:"overhangPercent"`
}

// OrientStats reports what AutoOrient did.
type OrientStats struct {
	Success   bool              `json:"success"`
	NewMeshID string            `json:"newMeshId,omitempty"`
	Current   OrientCandidate   `json:"current"`
	Best      OrientCandidate   `json:"best"`
	All       []OrientCandidate `json:"all"`
}

// Succeeded implements the common stats accessor.
func (s OrientStats) Succeeded() bool { return s.Success }

// AutoOrient searches the cross product of yaw and pitch
// candidates for the orientation with the lowest overhang
// percentage (ties broken by insertion/enumeration order),
// and, if that orientation differs from the identity,
// returns a new mesh rotated into it.
//
// Topology is untouched: indices are reused unchanged.
func AutoOrient(m *mesh.Mesh, opts OrientOptions) (*mesh.Mesh, OrientStats) {
	thresholdDeg := opts.OverhangThresholdDeg
	if thresholdDeg == 0 {
		thresholdDeg = 45
	}
	yaws := opts.YawCandidatesDeg
	if yaws == nil {
		yaws = DefaultYawCandidatesDeg
	}
	pitches := opts.PitchCandidatesDeg
	if pitches == nil {
		pitches = DefaultPitchCandidatesDeg
	}

	var all []OrientCandidate
	var best OrientCandidate
	var current OrientCandidate
	haveBest := false
	for _, yaw := range yaws {
		for _, pitch := range pitches {
			rotated := rotatedPositions(m.Positions, yaw, pitch)
			tmp := &mesh.Mesh{Positions: rotated, Indices: m.Indices}
			overhang := checks.Overhang(tmp, checks.DefaultBuildDirection, float32(thresholdDeg))
			cand := OrientCandidate{YawDeg: yaw, PitchDeg: pitch, OverhangPercent: overhang.OverhangPercentage}
			all = append(all, cand)
			if yaw == 0 && pitch == 0 {
				current = cand
			}
			if !haveBest || cand.OverhangPercent < best.OverhangPercent {
				best = cand
				haveBest = true
			}
		}
	}

	if best.YawDeg == 0 && best.PitchDeg == 0 {
		return m, OrientStats{Success: true, Current: current, Best: best, All: all}
	}

	rotatedPos := rotatedPositions(m.Positions, best.YawDeg, best.PitchDeg)
	newMesh := &mesh.Mesh{Positions: rotatedPos, Indices: append([]uint32{}, m.Indices...)}
	newMesh.Normals = mesh.ComputeNormals(newMesh.Positions, newMesh.Indices)

	return newMesh, OrientStats{
		Success:   true,
		NewMeshID: mesh.DerivedID(m.ID, "oriented"),
		Current:   current,
		Best:      best,
		All:       all,
	}
}

// rotatedPositions applies a yaw rotation about the up (Y)
// axis followed by a pitch rotation about the lateral (X)
// axis to a copy of a packed position buffer.
func rotatedPositions(positions []float32, yawDeg, pitchDeg float64) []float32 {
	out := make([]float32, len(positions))
	yawSin, yawCos := math.Sincos(yawDeg * math.Pi / 180)
	pitchSin, pitchCos := math.Sincos(pitchDeg * math.Pi / 180)
	for i := 0; i < len(positions); i += 3 {
		x, y, z := float64(positions[i]), float64(positions[i+1]), float64(positions[i+2])

		// Yaw about Y.
		x1 := x*yawCos + z*yawSin
		z1 := -x*yawSin + z*yawCos
		y1 := y

		// Pitch about X.
		y2 := y1*pitchCos - z1*pitchSin
		z2 := y1*pitchSin + z1*pitchCos
		x2 := x1

		out[i] = float32(x2)
		out[i+1] = float32(y2)
		out[i+2] = float32(z2)
	}
	return out
}
