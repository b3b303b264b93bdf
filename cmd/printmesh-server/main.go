// Command printmesh-server serves the analyze/repair JSON
// surface over HTTP.
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/unixpickle/printmesh/api"
)

func main() {
	addr := os.Getenv("PRINTMESH_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	router := api.NewRouter(logger)

	log.Printf("listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, router))
}
