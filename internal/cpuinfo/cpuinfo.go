// Copyright 2025 The go-spmv Authors. SPDX-License-Identifier: Apache-2.0

// Package cpuinfo summarizes the CPU features that matter for
// floating-point throughput, so benchmark output can carry provenance for
// the machine it ran on.
package cpuinfo

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// Summary returns a multi-line description of the host: OS, architecture,
// logical CPU count and the SIMD/FMA feature flags for the current
// architecture.
func Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "GOOS: %s\n", runtime.GOOS)
	fmt.Fprintf(&b, "GOARCH: %s\n", runtime.GOARCH)
	fmt.Fprintf(&b, "NumCPU: %d\n", runtime.NumCPU())
	fmt.Fprintf(&b, "GOMAXPROCS: %d\n", runtime.GOMAXPROCS(0))

	switch runtime.GOARCH {
	case "amd64":
		writeAMD64(&b)
	case "arm64":
		writeARM64(&b)
	}
	return b.String()
}

func writeAMD64(b *strings.Builder) {
	fmt.Fprintf(b, "SSE2: %v\n", cpu.X86.HasSSE2)
	fmt.Fprintf(b, "AVX: %v\n", cpu.X86.HasAVX)
	fmt.Fprintf(b, "AVX2: %v\n", cpu.X86.HasAVX2)
	fmt.Fprintf(b, "AVX512F: %v\n", cpu.X86.HasAVX512F)
	fmt.Fprintf(b, "FMA: %v\n", cpu.X86.HasFMA)
}

func writeARM64(b *strings.Builder) {
	fmt.Fprintf(b, "ASIMD: %v\n", cpu.ARM64.HasASIMD)
	fmt.Fprintf(b, "FP: %v\n", cpu.ARM64.HasFP)
	fmt.Fprintf(b, "SVE: %v\n", cpu.ARM64.HasSVE)
	fmt.Fprintf(b, "SVE2: %v\n", cpu.ARM64.HasSVE2)
	fmt.Fprintf(b, "ATOMICS: %v\n", cpu.ARM64.HasATOMICS)
}
