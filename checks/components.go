package checks

import "github.com/unixpickle/printmesh/topology"

// ComponentsResult is the connected-components check's
// output.
type ComponentsResult struct {
	Components       topology.Components
	IsMultiComponent bool
}

// ComponentsCheck partitions faces into connected
// components and flags floaters using
// floaterThresholdPercent.
func ComponentsCheck(indices []uint32, em *topology.EdgeMap, floaterThresholdPercent float64) ComponentsResult {
	c := topology.FindConnectedComponents(indices, em, floaterThresholdPercent)
	return ComponentsResult{
		Components:       c,
		IsMultiComponent: c.Count() > 1,
	}
}
