package plan

import (
	"sort"
	"strconv"

	"github.com/unixpickle/printmesh/report"
)

// SchemaVersion matches the report package's, since a
// FixPlan always travels alongside the Report it was
// generated from.
const SchemaVersion = report.SchemaVersion

// A FixPlan is the schema-versioned envelope GenerateFixPlan
// returns: a recommended, ordered list of implemented
// recipes, plus an advisory list reserved for future
// non-implemented suggestions.
type FixPlan struct {
	SchemaVersion string      `json:"schemaVersion"`
	MeshID        string      `json:"meshId"`
	ReportID      string      `json:"reportId"`
	Recommended   []FixRecipe `json:"recommended"`
	Advisory      []FixRecipe `json:"advisory"`
}

// GenerateFixPlan synthesizes recipes from a report's
// issues:
//
//   - any floater_components issue -> remove_floaters (LOW/LOCAL)
//   - any issue at all             -> mesh_cleanup (LOW/NONE)
//   - any overhang issue           -> auto_orient (LOW/NONE)
//   - any boundary_edges issue     -> watertight_remesh (HIGH/GLOBAL)
//
// The recommended list is sorted by (risk, impact) ascending.
// The advisory list is currently always empty.
func GenerateFixPlan(rep *report.Report, meshID string) *FixPlan {
	issuesByType := make(map[string][]string)
	for _, iss := range rep.Issues {
		issuesByType[iss.Type] = append(issuesByType[iss.Type], iss.ID)
	}

	var recommended []FixRecipe
	nextID := 1
	newID := func() string {
		id := recipeIDPrefix + strconv.Itoa(nextID)
		nextID++
		return id
	}

	if ids, ok := issuesByType[report.IssueFloaterComponents]; ok {
		recommended = append(recommended, FixRecipe{
			ID:            newID(),
			Type:          RecipeRemoveFloaters,
			Title:         "Remove disconnected pieces",
			Description:   "Deletes every component smaller than the floater threshold, keeping the main body intact.",
			TargetIssues:  ids,
			Risk:          RiskLow,
			ShapeImpact:   ImpactLocal,
			Deterministic: true,
			Implemented:   true,
			Steps: []Step{
				{Op: "remove_floaters", Params: map[string]interface{}{"thresholdPercent": 5}},
			},
			Warnings:       []string{"Any disconnected piece that was intentional (e.g. support scaffolding) will be deleted."},
			ExpectedEffect: "Disconnected debris pieces are removed; the main body is untouched.",
		})
	}

	if len(rep.Issues) > 0 {
		recommended = append(recommended, FixRecipe{
			ID:            newID(),
			Type:          RecipeMeshCleanup,
			Title:         "Clean up mesh",
			Description:   "Merges coincident vertices and drops degenerate faces.",
			TargetIssues:  allIssueIDs(rep),
			Risk:          RiskLow,
			ShapeImpact:   ImpactNone,
			Deterministic: true,
			Implemented:   true,
			Steps: []Step{
				{Op: "mesh_cleanup", Params: map[string]interface{}{"mergeEpsilon": 1e-6, "areaThreshold": 1e-10}},
			},
			Warnings:       nil,
			ExpectedEffect: "Duplicate vertices are merged and slivers are removed; the printed shape is unaffected.",
		})
	}

	if ids, ok := issuesByType[report.IssueOverhang]; ok {
		recommended = append(recommended, FixRecipe{
			ID:            newID(),
			Type:          RecipeAutoOrient,
			Title:         "Auto-orient for printing",
			Description:   "Searches a fixed set of yaw/pitch rotations for the orientation with the least overhang.",
			TargetIssues:  ids,
			Risk:          RiskLow,
			ShapeImpact:   ImpactNone,
			Deterministic: true,
			Implemented:   true,
			Steps: []Step{
				{Op: "auto_orient", Params: map[string]interface{}{"overhangThresholdDeg": 45}},
			},
			Warnings:       []string{"Does not modify geometry, only orientation; a slicer still needs to add supports for any remaining overhang."},
			ExpectedEffect: "Overhang percentage is reduced or unchanged; the mesh's own shape is untouched.",
		})
	}

	if ids, ok := issuesByType[report.IssueBoundaryEdges]; ok {
		recommended = append(recommended, FixRecipe{
			ID:            newID(),
			Type:          RecipeWatertightRemesh,
			Title:         "Fill holes",
			Description:   "Extracts closed boundary loops and fills each with a centroid fan, up to a configurable hole size.",
			TargetIssues:  ids,
			Risk:          RiskHigh,
			ShapeImpact:   ImpactGlobal,
			Deterministic: true,
			Implemented:   true,
			Steps: []Step{
				{Op: "watertight_remesh", Params: map[string]interface{}{"maxHoleSize": 100}},
			},
			Warnings:       []string{"Fills holes with flat fans, which may not match the intended surface; large holes are skipped rather than filled with guessed geometry."},
			ExpectedEffect: "The mesh becomes watertight; filled regions are flat rather than following the original surface.",
		})
	}

	sort.SliceStable(recommended, func(i, j int) bool {
		a, b := recommended[i], recommended[j]
		if a.Risk.rank() != b.Risk.rank() {
			return a.Risk.rank() < b.Risk.rank()
		}
		return a.ShapeImpact.rank() < b.ShapeImpact.rank()
	})

	return &FixPlan{
		SchemaVersion: SchemaVersion,
		MeshID:        meshID,
		ReportID:      rep.ReportID,
		Recommended:   recommended,
		Advisory:      []FixRecipe{},
	}
}

func allIssueIDs(rep *report.Report) []string {
	ids := make([]string, len(rep.Issues))
	for i, iss := range rep.Issues {
		ids[i] = iss.ID
	}
	return ids
}

const recipeIDPrefix = "recipe-"
