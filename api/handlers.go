package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/unixpickle/printmesh/mesh"
	"github.com/unixpickle/printmesh/plan"
	"github.com/unixpickle/printmesh/repair"
	"github.com/unixpickle/printmesh/report"
)

// Handler holds the dependencies the HTTP surface needs.
// It carries no mutable state: every request is independent
// and single-threaded, per spec §5.
type Handler struct {
	logger zerolog.Logger
}

// NewHandler builds a Handler logging through the given
// zerolog.Logger.
func NewHandler(logger zerolog.Logger) *Handler {
	return &Handler{logger: logger}
}

// DefaultHandler uses the global zerolog logger.
func DefaultHandler() *Handler {
	return &Handler{logger: log.Logger}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, ErrorResponse{Success: false, Error: err.Error()})
}

// HandleHealthz reports liveness only; there is no
// persisted or cross-request state to check.
func (h *Handler) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleAnalyze implements POST /analyze: parse, validate,
// run the analysis pipeline, generate a fix plan, encode.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, ValidationError{"request body is not valid JSON"})
		return
	}

	if len(req.Mesh.Positions) == 0 && len(req.Mesh.Indices) == 0 {
		h.writeError(w, http.StatusBadRequest, ValidationError{"request body must include a mesh"})
		return
	}

	if errs := validateMeshPayload(req.Mesh); len(errs) > 0 {
		h.writeError(w, http.StatusBadRequest, errs)
		return
	}

	m := req.Mesh.ToMesh()
	if err := mesh.Validate(m); err != nil {
		h.writeError(w, http.StatusBadRequest, ValidationError{err.Error()})
		return
	}

	profile := report.DefaultPrinterProfile()
	if req.PrinterProfile != nil {
		profile = req.PrinterProfile.Merge(profile)
	}

	rep := report.GenerateReport(m, profile)
	fixPlan := plan.GenerateFixPlan(rep, m.ID)

	h.logger.Info().
		Str("mesh_id", m.ID).
		Str("op", "analyze").
		Str("status", string(rep.Status)).
		Dur("duration_ms", time.Since(start)).
		Msg("analyze request completed")

	h.writeJSON(w, http.StatusOK, AnalyzeResponse{Success: true, Report: rep, Plan: fixPlan})
}

// HandleRepair implements POST /repair: parse, validate,
// dispatch to the named operator with params merged over
// its defaults, encode the rewritten mesh and its stats.
func (h *Handler) HandleRepair(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req RepairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, ValidationError{"request body is not valid JSON"})
		return
	}

	if len(req.Mesh.Positions) == 0 && len(req.Mesh.Indices) == 0 {
		h.writeError(w, http.StatusBadRequest, ValidationError{"request body must include a mesh"})
		return
	}
	if errs := validateMeshPayload(req.Mesh); len(errs) > 0 {
		h.writeError(w, http.StatusBadRequest, errs)
		return
	}
	if !validRecipeTypes[req.RecipeType] {
		h.writeError(w, http.StatusBadRequest, &UnknownRecipeError{RecipeType: req.RecipeType})
		return
	}

	m := req.Mesh.ToMesh()
	if err := mesh.Validate(m); err != nil {
		h.writeError(w, http.StatusBadRequest, ValidationError{err.Error()})
		return
	}

	out, result, err := dispatchRepair(m, plan.RecipeKind(req.RecipeType), req.Params)
	if err != nil {
		h.logger.Error().
			Err(errors.WithStack(err)).
			Str("mesh_id", m.ID).
			Str("op", req.RecipeType).
			Dur("duration_ms", time.Since(start)).
			Msg("repair operator failed internally")
		h.writeError(w, http.StatusInternalServerError, errors.New("internal error"))
		return
	}

	h.logger.Info().
		Str("mesh_id", m.ID).
		Str("op", req.RecipeType).
		Bool("success", result.Success).
		Dur("duration_ms", time.Since(start)).
		Msg("repair request completed")

	h.writeJSON(w, http.StatusOK, RepairResponse{
		Success: true,
		Mesh:    FromMesh(out),
		Result:  result,
	})
}

// DispatchRepair is dispatchRepair exported for the CLI
// entrypoint, which dispatches outside of an HTTP request.
func DispatchRepair(m *mesh.Mesh, recipeType string, params map[string]interface{}) (*mesh.Mesh, RepairResult, error) {
	if !validRecipeTypes[recipeType] {
		return nil, RepairResult{}, &UnknownRecipeError{RecipeType: recipeType}
	}
	return dispatchRepair(m, plan.RecipeKind(recipeType), params)
}

// dispatchRepair merges params over each operator's own
// defaults (zero-value options structs already carry those
// defaults) and runs it. It never returns an error for a
// recognized recipeType; a failed-but-valid operator run is
// reported through RepairResult, not an error return.
func dispatchRepair(m *mesh.Mesh, kind plan.RecipeKind, params map[string]interface{}) (*mesh.Mesh, RepairResult, error) {
	switch kind {
	case plan.RecipeRemoveFloaters:
		opts := repair.FloaterOptions{
			ThresholdPercent: paramFloat(params, "thresholdPercent", 0),
			KeepOnlyLargest:  paramBool(params, "keepOnlyLargest", false),
		}
		out, stats := repair.RemoveFloaters(m, opts)
		return out, toResult(stats.Success, stats.NewMeshID, stats.Error, stats), nil

	case plan.RecipeMeshCleanup:
		opts := repair.CleanupOptions{
			AreaThreshold:    paramFloat(params, "areaThreshold", 0),
			MergeEpsilon:     paramFloat(params, "mergeEpsilon", 0),
			RecomputeNormals: paramBoolPtr(params, "recomputeNormals"),
		}
		out, stats := repair.MeshCleanup(m, opts)
		return out, toResult(stats.Success, stats.NewMeshID, "", stats), nil

	case plan.RecipeAutoOrient:
		opts := repair.OrientOptions{
			OverhangThresholdDeg: paramFloat(params, "overhangThresholdDeg", 0),
		}
		out, stats := repair.AutoOrient(m, opts)
		return out, toResult(stats.Success, stats.NewMeshID, "", stats), nil

	case plan.RecipeWatertightRemesh:
		opts := repair.RemeshOptions{
			MaxHoleSize: int(paramFloat(params, "maxHoleSize", 0)),
		}
		out, stats := repair.WatertightRemesh(m, opts)
		return out, toResult(stats.Success, stats.NewMeshID, stats.Error, stats), nil

	default:
		return nil, RepairResult{}, &UnknownRecipeError{RecipeType: string(kind)}
	}
}

func toResult(success bool, newMeshID, errMsg string, stats interface{}) RepairResult {
	return RepairResult{Success: success, NewMeshID: newMeshID, Error: errMsg, Stats: stats}
}

func paramFloat(params map[string]interface{}, key string, def float64) float64 {
	if params == nil {
		return def
	}
	if v, ok := params[key]; ok {
		if f, ok := v.(float64); ok {
			return f
		}
	}
	return def
}

func paramBool(params map[string]interface{}, key string, def bool) bool {
	if params == nil {
		return def
	}
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

func paramBoolPtr(params map[string]interface{}, key string) *bool {
	if params == nil {
		return nil
	}
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return &b
		}
	}
	return nil
}
