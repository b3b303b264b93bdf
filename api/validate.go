package api

import (
	"fmt"
	"math"
)

// ValidationError collects every problem found while
// validating a request body. It implements error so
// handlers can return it directly; callers that want the
// individual messages should range over it.
type ValidationError []string

func (e ValidationError) Error() string {
	if len(e) == 1 {
		return e[0]
	}
	return fmt.Sprintf("%d validation errors, first: %s", len(e), e[0])
}

// validateMeshPayload checks the wire-level mesh invariants
// from spec §6: length divisibility, positive length,
// finiteness, and index bounds.
func validateMeshPayload(m MeshPayload) ValidationError {
	var errs ValidationError

	if len(m.Positions) == 0 {
		errs = append(errs, "mesh.positions must be non-empty")
	}
	if len(m.Positions)%3 != 0 {
		errs = append(errs, fmt.Sprintf("mesh.positions length %d is not divisible by 3", len(m.Positions)))
	}
	if len(m.Indices) == 0 {
		errs = append(errs, "mesh.indices must be non-empty")
	}
	if len(m.Indices)%3 != 0 {
		errs = append(errs, fmt.Sprintf("mesh.indices length %d is not divisible by 3", len(m.Indices)))
	}

	for _, p := range m.Positions {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			errs = append(errs, "mesh.positions contains a non-finite value")
			break
		}
	}

	if len(m.Positions)%3 == 0 && len(m.Positions) > 0 {
		vertexCount := len(m.Positions) / 3
		for _, idx := range m.Indices {
			if int(idx) >= vertexCount {
				errs = append(errs, fmt.Sprintf("index %d exceeds vertex count %d", idx, vertexCount))
				break
			}
		}
	}

	if m.Normals != nil && len(m.Normals) != len(m.Positions) {
		errs = append(errs, fmt.Sprintf("mesh.normals length %d does not match positions length %d",
			len(m.Normals), len(m.Positions)))
	}

	return errs
}

// validRecipeTypes enumerates the recipeType values /repair
// accepts.
var validRecipeTypes = map[string]bool{
	"remove_floaters":   true,
	"mesh_cleanup":       true,
	"auto_orient":        true,
	"watertight_remesh": true,
}
