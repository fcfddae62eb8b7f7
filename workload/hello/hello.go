// Package hello implements the plain and stateful HTTP echo workloads.
//
// The contract is intentionally tiny: any path returns "hello", except
// paths under /state, which atomically increment a process-wide counter
// and return its new value in decimal.
package hello

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// Workload holds the shared request counter. Safe for concurrent use.
type Workload struct {
	counter atomic.Uint64
}

// New creates a workload with the counter at zero.
func New() *Workload {
	return &Workload{}
}

// Respond maps a request path to its response body. The returned error
// is always nil; the signature matches the serving contract shared with
// the WASM-hosted workload.
func (w *Workload) Respond(path string) (string, error) {
	if strings.HasPrefix(path, "/state") {
		return strconv.FormatUint(w.counter.Add(1), 10), nil
	}
	return "hello", nil
}

// Count returns the number of stateful requests served so far.
func (w *Workload) Count() uint64 {
	return w.counter.Load()
}
