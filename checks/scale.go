package checks

import "github.com/unixpickle/printmesh/mesh"

// ScaleSeverity classifies how far a mesh's extent is from
// printable dimensions.
type ScaleSeverity string

const (
	ScaleNone    ScaleSeverity = "none"
	ScaleWarning ScaleSeverity = "warning"
	ScaleError   ScaleSeverity = "error"
)

// Default scale thresholds, in millimeters.
const (
	DefaultHardMinMm  = 5
	DefaultHardMaxMm  = 2000
	DefaultIdealMinMm = 10
	DefaultIdealMaxMm = 300
)

// ScaleResult is the scale check's output.
type ScaleResult struct {
	MaxDimensionMm       float32
	MinDimensionMm       float32
	Severity             ScaleSeverity
	SuggestedScaleFactor float32
	Reason               string
}

// ScaleCheck interprets a bounding box, multiplied by
// unitScale, against the hard/ideal print-volume bounds.
//
// unitScale defaults to 1 (millimeters) when 0 is passed.
func ScaleCheck(bbox mesh.BoundingBox, unitScale float32) ScaleResult {
	if unitScale == 0 {
		unitScale = 1
	}
	dims := bbox.Dimensions.Scale(unitScale)
	maxDim := dims.X
	minDim := dims.X
	for _, d := range []float32{dims.Y, dims.Z} {
		if d > maxDim {
			maxDim = d
		}
		if d < minDim {
			minDim = d
		}
	}

	result := ScaleResult{MaxDimensionMm: maxDim, MinDimensionMm: minDim}

	if maxDim == 0 {
		result.Severity = ScaleError
		result.Reason = "zero dimensions"
		return result
	}

	if maxDim < DefaultHardMinMm {
		result.Severity = ScaleError
		result.SuggestedScaleFactor = DefaultIdealMinMm / maxDim
		result.Reason = "below minimum printable dimension"
		return result
	}
	if maxDim > DefaultHardMaxMm {
		result.Severity = ScaleError
		result.SuggestedScaleFactor = DefaultIdealMaxMm / maxDim
		result.Reason = "exceeds maximum print volume"
		return result
	}
	if maxDim < DefaultIdealMinMm {
		result.Severity = ScaleWarning
		result.SuggestedScaleFactor = DefaultIdealMinMm / maxDim
		result.Reason = "smaller than the ideal print range"
		return result
	}
	if maxDim > DefaultIdealMaxMm {
		result.Severity = ScaleWarning
		result.SuggestedScaleFactor = DefaultIdealMaxMm / maxDim
		result.Reason = "larger than the ideal print range"
		return result
	}

	result.Severity = ScaleNone
	return result
}

// DetectUnits guesses the unit a mesh was authored in from
// the magnitude of its largest dimension, trying
// millimeters, then meters, then inches, and returning the
// first whose scaled value lands inside the hard print
// bounds.
func DetectUnits(maxDim float32) (unit string, scaleFactor float32) {
	candidates := []struct {
		unit  string
		scale float32
	}{
		{"mm", 1},
		{"meters", 1000},
		{"inches", 25.4},
	}
	for _, c := range candidates {
		scaled := maxDim * c.scale
		if scaled >= DefaultHardMinMm && scaled <= DefaultHardMaxMm {
			return c.unit, c.scale
		}
	}
	return "mm", 1
}
