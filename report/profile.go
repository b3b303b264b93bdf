// Package report aggregates the checks package's outputs
// into a versioned, immutable Report, including the
// overlay payload consumed by the (out-of-scope) viewer.
package report

// PrinterProfile configures the analysis thresholds and is
// embedded in every report. MaxPrintDimensionMm is carried
// into the report only: the scale check uses its own
// DefaultIdealMaxMm bound and does not read it.
type PrinterProfile struct {
	Name                    string  `json:"name"`
	OverhangThresholdDeg    float64 `json:"overhangThresholdDeg"`
	MaxPrintDimensionMm     float64 `json:"maxPrintDimensionMm"`
	FloaterThresholdPercent float64 `json:"floaterThresholdPercent"`
	MaxTrianglesForAnalysis int     `json:"maxTrianglesForAnalysis,omitempty"`
}

// Default profile values, per spec §3.
const (
	DefaultOverhangThresholdDeg    = 45
	DefaultMaxPrintDimensionMm     = 300
	DefaultFloaterThresholdPercent = 5
	DefaultMaxTrianglesForAnalysis = 200000
)

// DefaultPrinterProfile returns a profile populated with
// the spec's defaults.
func DefaultPrinterProfile() PrinterProfile {
	return PrinterProfile{
		Name:                    "default",
		OverhangThresholdDeg:    DefaultOverhangThresholdDeg,
		MaxPrintDimensionMm:     DefaultMaxPrintDimensionMm,
		FloaterThresholdPercent: DefaultFloaterThresholdPercent,
		MaxTrianglesForAnalysis: DefaultMaxTrianglesForAnalysis,
	}
}

// PartialPrinterProfile is the wire shape for
// `printerProfile?: partial` in a /analyze request: every
// field is a pointer so "absent" (use default/existing
// value) is distinguishable from "explicitly zero."
type PartialPrinterProfile struct {
	Name                    *string  `json:"name,omitempty"`
	OverhangThresholdDeg    *float64 `json:"overhangThresholdDeg,omitempty"`
	MaxPrintDimensionMm     *float64 `json:"maxPrintDimensionMm,omitempty"`
	FloaterThresholdPercent *float64 `json:"floaterThresholdPercent,omitempty"`
	MaxTrianglesForAnalysis *int     `json:"maxTrianglesForAnalysis,omitempty"`
}

// Merge overlays the non-nil fields of p onto a copy of
// the base profile and returns the result.
func (p PartialPrinterProfile) Merge(base PrinterProfile) PrinterProfile {
	if p.Name != nil {
		base.Name = *p.Name
	}
	if p.OverhangThresholdDeg != nil {
		base.OverhangThresholdDeg = *p.OverhangThresholdDeg
	}
	if p.MaxPrintDimensionMm != nil {
		base.MaxPrintDimensionMm = *p.MaxPrintDimensionMm
	}
	if p.FloaterThresholdPercent != nil {
		base.FloaterThresholdPercent = *p.FloaterThresholdPercent
	}
	if p.MaxTrianglesForAnalysis != nil {
		base.MaxTrianglesForAnalysis = *p.MaxTrianglesForAnalysis
	}
	return base
}
