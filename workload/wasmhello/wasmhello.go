// Package wasmhello implements the WASM-hosted variant of the stateful
// echo workload: the request counter lives inside a wasmer-hosted module
// rather than in host memory.
package wasmhello

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/wasmerio/wasmer-go/wasmer"
)

// counterWat is the hosted module: one mutable i64 global and an
// exported fetch-and-increment over it.
const counterWat = `(module
  (global $counter (mut i64) (i64.const 0))
  (func (export "increment") (result i64)
    (global.set $counter (i64.add (global.get $counter) (i64.const 1)))
    (global.get $counter)))`

// Workload hosts the counter module. The instance is single-threaded,
// so calls into it are serialized with a mutex.
type Workload struct {
	mu        sync.Mutex
	increment wasmer.NativeFunction

	// Retained so the runtime objects stay alive for the instance's
	// lifetime.
	engine   *wasmer.Engine
	store    *wasmer.Store
	instance *wasmer.Instance
}

// New compiles and instantiates the counter module. A failure here is a
// startup error; the caller is expected to abort.
func New() (*Workload, error) {
	wasmBytes, err := wasmer.Wat2Wasm(counterWat)
	if err != nil {
		return nil, fmt.Errorf("wasmhello: compiling wat: %w", err)
	}

	engine := wasmer.NewEngine()
	store := wasmer.NewStore(engine)

	module, err := wasmer.NewModule(store, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("wasmhello: building module: %w", err)
	}

	instance, err := wasmer.NewInstance(module, wasmer.NewImportObject())
	if err != nil {
		return nil, fmt.Errorf("wasmhello: instantiating module: %w", err)
	}

	increment, err := instance.Exports.GetFunction("increment")
	if err != nil {
		return nil, fmt.Errorf("wasmhello: resolving increment export: %w", err)
	}

	return &Workload{
		increment: increment,
		engine:    engine,
		store:     store,
		instance:  instance,
	}, nil
}

// Respond maps a request path to its response body. Paths under /state
// call into the module to bump the hosted counter.
func (w *Workload) Respond(path string) (string, error) {
	if !strings.HasPrefix(path, "/state") {
		return "hello", nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	out, err := w.increment()
	if err != nil {
		return "", fmt.Errorf("wasmhello: increment call: %w", err)
	}
	n, ok := out.(int64)
	if !ok {
		return "", fmt.Errorf("wasmhello: increment returned %T, want i64", out)
	}
	return strconv.FormatInt(n, 10), nil
}
