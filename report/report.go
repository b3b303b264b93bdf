package report

import (
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/unixpickle/printmesh/checks"
	"github.com/unixpickle/printmesh/mesh"
	"github.com/unixpickle/printmesh/topology"
	"github.com/unixpickle/printmesh/version"
)

// SchemaVersion is the current Report/FixPlan wire schema
// version.
const SchemaVersion = "1.0"

// Status summarizes a Report's overall verdict.
type Status string

const (
	StatusPass Status = "PASS"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// MeshStats carries the headline mesh measurements a
// Report surfaces, independent of any per-issue detail.
type MeshStats struct {
	VertexCount    int              `json:"vertexCount"`
	TriangleCount  int              `json:"triangleCount"`
	EdgeCount      int              `json:"edgeCount"`
	ComponentCount int              `json:"componentCount"`
	BoundingBox    mesh.BoundingBox `json:"boundingBox"`

	AnalysisDecimated   bool `json:"analysisDecimated,omitempty"`
	OriginalTriangleCount int `json:"originalTriangleCount,omitempty"`
}

// OverlayData is the machine-readable visualization
// payload referenced by Issue.OverlayKeys.
type OverlayData struct {
	BoundaryEdges      []uint32  `json:"boundaryEdges,omitempty"`
	NonManifoldEdges   []uint32  `json:"nonManifoldEdges,omitempty"`
	ComponentIdPerFace []int     `json:"componentIdPerFace,omitempty"`
	MainComponentIndex int       `json:"mainComponentIndex,omitempty"`
	FloaterIndices     []int     `json:"floaterIndices,omitempty"`
	OverhangFaceMask   []bool    `json:"overhangFaceMask,omitempty"`
	FaceAngles         []float32 `json:"faceAngles,omitempty"`
}

// A Report is the immutable, versioned analysis result.
type Report struct {
	SchemaVersion string         `json:"schemaVersion"`
	ReportID      string         `json:"reportId"`
	CreatedAt     time.Time      `json:"createdAt"`
	ToolVersions  version.Stamp  `json:"toolVersions"`
	MeshStats     MeshStats      `json:"meshStats"`
	PrinterProfile PrinterProfile `json:"printerProfile"`
	Status        Status         `json:"status"`
	Issues        []Issue        `json:"issues"`
	OverlayData   OverlayData    `json:"overlayData"`
}

// nowFunc supplies the clock GenerateReport stamps
// CreatedAt with.
var nowFunc = time.Now

// GenerateReport decimates m if it exceeds the profile's
// analysis cap, builds the edge map once, runs all five
// checks, synthesizes issues, and assembles the final
// Report.
func GenerateReport(m *mesh.Mesh, profile PrinterProfile) *Report {
	originalStats := MeshStats{
		VertexCount:   m.VertexCount(),
		TriangleCount: m.TriangleCount(),
		BoundingBox:   m.BoundingBox(),
	}

	analysisMesh, wasDecimated, originalTriangleCount := checks.DecimateIfNeeded(
		m, profile.MaxTrianglesForAnalysis)

	em := topology.BuildEdgeMap(analysisMesh.Indices)

	watertight := checks.Watertight(em)
	nonManifold := checks.NonManifold(em)
	components := checks.ComponentsCheck(analysisMesh.Indices, em, profile.FloaterThresholdPercent)
	overhang := checks.Overhang(analysisMesh, checks.DefaultBuildDirection, float32(profile.OverhangThresholdDeg))
	scale := checks.ScaleCheck(originalStats.BoundingBox, 1)

	var issues []Issue
	nextID := 1
	newID := func() string {
		id := "issue-" + strconv.Itoa(nextID)
		nextID++
		return id
	}

	if !watertight.IsWatertight {
		issues = append(issues, Issue{
			ID:       newID(),
			Type:     IssueBoundaryEdges,
			Severity: SeverityBlocker,
			Title:    "Open boundary edges",
			Summary:  "The mesh has unconnected boundary edges and does not enclose a volume.",
			Details: map[string]interface{}{
				"boundaryEdgeCount": watertight.BoundaryEdgeCount,
			},
			OverlayKeys: []string{"boundaryEdges"},
		})
	}

	if nonManifold.HasNonManifold {
		issues = append(issues, Issue{
			ID:       newID(),
			Type:     IssueNonManifoldEdges,
			Severity: SeverityBlocker,
			Title:    "Non-manifold edges",
			Summary:  "Some edges are shared by three or more faces, which most slicers reject.",
			Details: map[string]interface{}{
				"nonManifoldEdgeCount": nonManifold.NonManifoldEdgeCount,
			},
			OverlayKeys: []string{"nonManifoldEdges"},
		})
	}

	floaterFaceCount := 0
	for _, id := range components.Components.Floaters {
		floaterFaceCount += components.Components.Sizes[id]
	}
	if len(components.Components.Floaters) > 0 || components.IsMultiComponent {
		issues = append(issues, Issue{
			ID:       newID(),
			Type:     IssueFloaterComponents,
			Severity: SeverityRisk,
			Title:    "Disconnected pieces",
			Summary:  "The mesh contains disconnected pieces that may print as loose debris.",
			Details: map[string]interface{}{
				"floaterCount":     len(components.Components.Floaters),
				"floaterFaceCount": floaterFaceCount,
				"componentCount":   components.Components.Count(),
			},
			OverlayKeys: []string{"componentIdPerFace", "floaterIndices", "mainComponentIndex"},
		})
	}

	if overhang.OverhangPercentage > 20 {
		issues = append(issues, Issue{
			ID:       newID(),
			Type:     IssueOverhang,
			Severity: SeverityRisk,
			Title:    "Excessive overhang",
			Summary:  "A large fraction of the surface overhangs beyond the printable angle.",
			Details: map[string]interface{}{
				"overhangPercentage": overhang.OverhangPercentage,
				"overhangFaceCount":  overhang.OverhangFaceCount,
				"maxOverhangAngle":   overhang.MaxAngle,
			},
			OverlayKeys: []string{"overhangFaceMask", "faceAngles"},
		})
	}

	switch scale.Severity {
	case checks.ScaleError:
		issues = append(issues, Issue{
			ID:       newID(),
			Type:     IssueScaleError,
			Severity: SeverityBlocker,
			Title:    "Unprintable scale",
			Summary:  scale.Reason,
			Details: map[string]interface{}{
				"maxDimensionMm":       scale.MaxDimensionMm,
				"minDimensionMm":       scale.MinDimensionMm,
				"suggestedScaleFactor": scale.SuggestedScaleFactor,
			},
		})
	case checks.ScaleWarning:
		issues = append(issues, Issue{
			ID:       newID(),
			Type:     IssueScaleWarning,
			Severity: SeverityRisk,
			Title:    "Suboptimal scale",
			Summary:  scale.Reason,
			Details: map[string]interface{}{
				"maxDimensionMm":       scale.MaxDimensionMm,
				"minDimensionMm":       scale.MinDimensionMm,
				"suggestedScaleFactor": scale.SuggestedScaleFactor,
			},
		})
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Severity.rank() < issues[j].Severity.rank()
	})

	status := StatusPass
	for _, iss := range issues {
		if iss.Severity == SeverityBlocker {
			status = StatusFail
			break
		}
		if iss.Severity == SeverityRisk {
			status = StatusWarn
		}
	}

	stats := originalStats
	stats.EdgeCount = em.Len()
	stats.ComponentCount = components.Components.Count()
	if wasDecimated {
		stats.AnalysisDecimated = true
		stats.OriginalTriangleCount = originalTriangleCount
	}

	return &Report{
		SchemaVersion:  SchemaVersion,
		ReportID:       uuid.NewString(),
		CreatedAt:      nowFunc().UTC(),
		ToolVersions:   version.Current(),
		MeshStats:      stats,
		PrinterProfile: profile,
		Status:         status,
		Issues:         issues,
		OverlayData: OverlayData{
			BoundaryEdges:      watertight.BoundaryEdges,
			NonManifoldEdges:   nonManifold.NonManifoldEdges,
			ComponentIdPerFace: components.Components.FaceComponent,
			MainComponentIndex: components.Components.Main,
			FloaterIndices:     components.Components.Floaters,
			OverhangFaceMask:   overhang.OverhangMask,
			FaceAngles:         overhang.FaceAngles,
		},
	}
}
