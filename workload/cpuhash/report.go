package cpuhash

import (
	"fmt"
	"strconv"
	"time"
)

// Report is the outcome of a single run: iteration count, final digest,
// and wall-clock time measured around the hash loop.
type Report struct {
	Iterations uint64
	Digest     [DigestSize]byte
	Elapsed    time.Duration
}

// String renders the single summary line printed by the workload.
func (r Report) String() string {
	return fmt.Sprintf("iterations=%d digest=%x elapsed_ms=%.3f",
		r.Iterations, r.Digest[:], float64(r.Elapsed.Nanoseconds())/1e6)
}

// ParseIterations interprets the optional iteration-count argument. An
// absent or unparsable argument degrades to DefaultIterations rather
// than surfacing an error.
func ParseIterations(args []string) uint64 {
	if len(args) == 0 {
		return DefaultIterations
	}
	n, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return DefaultIterations
	}
	return n
}
