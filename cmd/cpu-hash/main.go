// cpu-hash runs the CPU-bound hashing workload and prints one summary
// line:
//
//	iterations=<N> digest=<64 hex> elapsed_ms=<float>
//
// The optional first argument is the iteration count; anything missing
// or unparsable falls back to the default of 2,000,000.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/searchktools/hostbench/workload/cpuhash"
)

func main() {
	iterations := cpuhash.ParseIterations(os.Args[1:])

	w, err := cpuhash.New(cpuhash.DefaultTag)
	if err != nil {
		log.Fatalf("cpu-hash: %v", err)
	}

	fmt.Println(w.Run(iterations))
}
