/*
Package hostbench is a small collection of isolated benchmark workloads
for characterizing a host environment.

Each workload is a standalone binary with a deliberately tiny surface:

  - cmd/cpu-hash: CPU-bound SHA-256 hashing over a reused 32-byte
    scratch buffer, printing a single deterministic summary line
  - cmd/http-hello: single-route HTTP echo server with a shared atomic
    request counter under /state
  - cmd/wasm-hello: the same request contract with the counter hosted
    inside a WASM module (wasmer)

Modules

  - workload/cpuhash: buffer builder, hash loop, timer and reporter
  - workload/hello: plain/stateful echo bodies
  - workload/wasmhello: wasmer-hosted counter module
  - app: serving lifecycle (banner, signals, shutdown summary)
  - config: flag configuration with HOSTBENCH_* env overrides
  - core: event-loop HTTP engine (epoll/kqueue)
  - core/http2: portable h2c serving mode
  - core/observability: per-route serving metrics, /stats snapshot
  - core/codec: protobuf/JSON encoding for the stats snapshot
  - core/hostcap: CPU capability detection
*/
package hostbench
