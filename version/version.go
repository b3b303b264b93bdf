// Package version holds the compile-time version stamp
// embedded in every report.
package version

// App is this module's own version.
const App = "0.1.0"

// Three and ReactFlow are the viewer/renderer component
// versions the wire schema reserves fields for. The
// interactive node-graph UI and 3-D viewer those names
// describe are out of scope for this module (see spec
// §1), so these are fixed placeholders kept only for
// schema compatibility with callers that read them.
const (
	Three     = "unused"
	ReactFlow = "unused"
)

// Stamp is the {app, three, reactFlow} tuple embedded in a
// Report's toolVersions field.
type Stamp struct {
	App       string `json:"app"`
	Three     string `json:"three"`
	ReactFlow string `json:"reactFlow"`
}

// Current returns the stamp for this build.
func Current() Stamp {
	return Stamp{App: App, Three: Three, ReactFlow: ReactFlow}
}
