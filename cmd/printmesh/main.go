// Command printmesh runs the analyze/repair pipeline
// directly against a mesh JSON file, without a server.
//
// Usage:
//
//	printmesh analyze <mesh.json|->
//	printmesh repair <recipeType> <mesh.json|->
//
// Exit codes: 0 success, 2 invalid arguments, 3 invalid
// mesh, 4 internal error.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goccy/go-json"
	"github.com/unixpickle/essentials"

	"github.com/unixpickle/printmesh/api"
	"github.com/unixpickle/printmesh/mesh"
	"github.com/unixpickle/printmesh/plan"
	"github.com/unixpickle/printmesh/report"
)

func main() {
	// essentials.Must panics on anything that "can't happen"
	// in practice (e.g. marshaling our own report structs);
	// recovering here and exiting 4 keeps that an internal
	// error rather than a crash, per the CLI's exit-code
	// contract.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, r)
			os.Exit(4)
		}
	}()

	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: printmesh analyze <mesh.json|-> | printmesh repair <recipeType> <mesh.json|->")
		os.Exit(2)
	}

	switch os.Args[1] {
	case "analyze":
		runAnalyze(os.Args[2])
	case "repair":
		if len(os.Args) < 4 {
			fmt.Fprintln(os.Stderr, "usage: printmesh repair <recipeType> <mesh.json|->")
			os.Exit(2)
		}
		runRepair(os.Args[2], os.Args[3])
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", os.Args[1])
		os.Exit(2)
	}
}

func readPayload(path string) api.MeshPayload {
	r := os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		must(err, 2)
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	must(err, 2)

	var payload api.MeshPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		fmt.Fprintf(os.Stderr, "invalid mesh JSON: %v\n", err)
		os.Exit(3)
	}
	return payload
}

func loadMesh(path string) *mesh.Mesh {
	payload := readPayload(path)
	m := payload.ToMesh()
	if err := mesh.Validate(m); err != nil {
		fmt.Fprintf(os.Stderr, "invalid mesh: %v\n", err)
		os.Exit(3)
	}
	return m
}

func runAnalyze(path string) {
	log.Println("loading mesh...")
	m := loadMesh(path)

	log.Println("analyzing...")
	rep := report.GenerateReport(m, report.DefaultPrinterProfile())
	fixPlan := plan.GenerateFixPlan(rep, m.ID)

	out, err := json.MarshalIndent(map[string]interface{}{
		"success": true,
		"report":  rep,
		"plan":    fixPlan,
	}, "", "  ")
	essentials.Must(err)

	fmt.Println(string(out))
}

func runRepair(recipeType, path string) {
	log.Println("loading mesh...")
	m := loadMesh(path)

	log.Printf("running %s...\n", recipeType)
	out, result, err := api.DispatchRepair(m, recipeType, nil)
	if err != nil {
		if _, ok := err.(*api.UnknownRecipeError); ok {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "repair failed: %v\n", err)
		os.Exit(4)
	}

	encoded, err := json.MarshalIndent(map[string]interface{}{
		"success": true,
		"mesh":    api.FromMesh(out),
		"result":  result,
	}, "", "  ")
	essentials.Must(err)

	fmt.Println(string(encoded))
}

func must(err error, exitCode int) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode)
	}
}
