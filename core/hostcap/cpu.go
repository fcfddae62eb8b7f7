// Package hostcap detects the CPU capabilities relevant to the
// workloads, for the serving startup banner and for interpreting
// cpu-hash numbers across hosts.
package hostcap

import (
	"fmt"

	"golang.org/x/sys/cpu"
)

// Features describes the capabilities the workloads care about: wide
// SIMD for the serving path, SHA2 instructions for the hash loop.
type Features struct {
	AVX2 bool // x86_64
	NEON bool // ARM64 (ASIMD)
	SHA2 bool // ARM64 SHA2 extension
}

var detected Features

func init() {
	if cpu.X86.HasAVX2 {
		detected.AVX2 = true
	}
	if cpu.ARM64.HasASIMD {
		detected.NEON = true
	}
	if cpu.ARM64.HasSHA2 {
		detected.SHA2 = true
	}
}

// Detect returns the capabilities of the running host.
func Detect() Features {
	return detected
}

// Summary renders the capabilities for a log line.
func Summary() string {
	f := Detect()
	return fmt.Sprintf("avx2=%v neon=%v sha2=%v", f.AVX2, f.NEON, f.SHA2)
}
