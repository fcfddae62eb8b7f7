// wasm-hello serves the same contract as http-hello, with the request
// counter hosted inside a wasmer-instantiated WASM module.
package main

import (
	"log"

	"github.com/searchktools/hostbench/app"
	"github.com/searchktools/hostbench/config"
	"github.com/searchktools/hostbench/workload/wasmhello"
)

func main() {
	cfg := config.New()

	w, err := wasmhello.New()
	if err != nil {
		log.Fatalf("wasm-hello: %v", err)
	}

	app.New(cfg, "wasm-hello", w).Run()
}
