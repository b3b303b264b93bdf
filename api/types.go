// Package api exposes the analysis and repair pipeline as a
// stateless JSON request/response surface: POST /analyze,
// POST /repair, and GET /healthz.
package api

import (
	"github.com/unixpickle/printmesh/mesh"
	"github.com/unixpickle/printmesh/plan"
	"github.com/unixpickle/printmesh/report"
)

// MeshPayload is the wire shape of a mesh: float64 arrays,
// since JSON has no float32 literal type. ToMesh/FromMesh
// narrow and widen at this boundary only.
type MeshPayload struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Positions []float64 `json:"positions"`
	Indices   []uint32  `json:"indices"`
	Normals   []float64 `json:"normals,omitempty"`
}

// ToMesh narrows a wire payload into the internal packed
// float32 representation.
func (p MeshPayload) ToMesh() *mesh.Mesh {
	m := &mesh.Mesh{
		ID:        p.ID,
		Name:      p.Name,
		Positions: narrow(p.Positions),
		Indices:   append([]uint32{}, p.Indices...),
	}
	if p.Normals != nil {
		m.Normals = narrow(p.Normals)
	}
	return m
}

// FromMesh widens an internal mesh into its wire payload.
func FromMesh(m *mesh.Mesh) MeshPayload {
	p := MeshPayload{
		ID:        m.ID,
		Name:      m.Name,
		Positions: widen(m.Positions),
		Indices:   append([]uint32{}, m.Indices...),
	}
	if m.Normals != nil {
		p.Normals = widen(m.Normals)
	}
	return p
}

func narrow(xs []float64) []float32 {
	out := make([]float32, len(xs))
	for i, x := range xs {
		out[i] = float32(x)
	}
	return out
}

func widen(xs []float32) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}

// AnalyzeRequest is the /analyze request body.
type AnalyzeRequest struct {
	Mesh           MeshPayload                    `json:"mesh"`
	PrinterProfile *report.PartialPrinterProfile  `json:"printerProfile,omitempty"`
}

// AnalyzeResponse is the /analyze success response body.
type AnalyzeResponse struct {
	Success bool           `json:"success"`
	Report  *report.Report `json:"report"`
	Plan    *plan.FixPlan  `json:"plan"`
}

// RepairRequest is the /repair request body.
type RepairRequest struct {
	Mesh       MeshPayload            `json:"mesh"`
	RecipeID   string                 `json:"recipeId,omitempty"`
	RecipeType string                 `json:"recipeType"`
	Params     map[string]interface{} `json:"params,omitempty"`
}

// RepairResult mirrors the Succeeded() stats accessor every
// repair operator's stats type implements, flattened to the
// wire shape `{success, newMeshId?, stats}`.
type RepairResult struct {
	Success   bool        `json:"success"`
	NewMeshID string      `json:"newMeshId,omitempty"`
	Error     string      `json:"error,omitempty"`
	Stats     interface{} `json:"stats"`
}

// RepairResponse is the /repair success response body.
type RepairResponse struct {
	Success bool         `json:"success"`
	Mesh    MeshPayload  `json:"mesh"`
	Result  RepairResult `json:"result"`
}

// ErrorResponse is the body of any non-2xx response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
