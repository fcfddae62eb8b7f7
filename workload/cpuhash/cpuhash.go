// Package cpuhash implements the CPU-bound hashing workload: a tight
// SHA-256 loop over a reused 32-byte scratch buffer, timed with the
// monotonic clock.
//
// The scratch buffer holds a constant tag, zero padding, and the current
// iteration index encoded little-endian in the trailing 8 bytes. Only the
// counter region is rewritten between iterations, so for a fixed tag and
// iteration count the final digest is fully deterministic.
package cpuhash

import (
	"encoding/binary"
	"fmt"
	"hash"
	"time"

	sha256 "github.com/minio/sha256-simd"
)

const (
	// BufferSize is the size of the scratch buffer fed to the digest on
	// every iteration.
	BufferSize = 32

	// DigestSize is the size of the final SHA-256 digest.
	DigestSize = sha256.Size

	// counterSize is the width of the little-endian iteration counter at
	// the tail of the buffer.
	counterSize = 8

	// prefixCapacity is the room left for the tag ahead of the counter
	// region.
	prefixCapacity = BufferSize - counterSize
)

// DefaultIterations is used when no iteration count is supplied.
const DefaultIterations uint64 = 2_000_000

// DefaultTag seeds the prefix region of the scratch buffer.
var DefaultTag = []byte("cpu-hash-benchmark")

// Workload owns the scratch buffer and the streaming digest state. Both
// are allocated once; Run mutates the counter region in place, so the
// steady-state loop does not allocate.
type Workload struct {
	buf [BufferSize]byte
	h   hash.Hash
}

// New builds a workload for the given tag. The tag must leave room for
// the 8-byte counter region; a longer tag is a startup invariant
// violation, not a per-iteration condition.
func New(tag []byte) (*Workload, error) {
	if len(tag) > prefixCapacity {
		return nil, fmt.Errorf("cpuhash: tag is %d bytes, prefix region holds at most %d", len(tag), prefixCapacity)
	}
	w := &Workload{h: sha256.New()}
	copy(w.buf[:], tag)
	return w, nil
}

// writeCounter overwrites the counter region with iteration i. The
// prefix and padding are untouched after New.
func (w *Workload) writeCounter(i uint64) {
	binary.LittleEndian.PutUint64(w.buf[prefixCapacity:], i)
}

// Run feeds the buffer to the digest exactly n times, i ranging over
// [0, n) in order, then finalizes the digest. The timer spans the first
// update through finalization.
func (w *Workload) Run(n uint64) Report {
	start := time.Now()
	for i := uint64(0); i < n; i++ {
		w.writeCounter(i)
		w.h.Write(w.buf[:])
	}
	var digest [DigestSize]byte
	w.h.Sum(digest[:0])
	elapsed := time.Since(start)

	return Report{Iterations: n, Digest: digest, Elapsed: elapsed}
}
