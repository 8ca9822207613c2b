// Copyright 2025 The go-spmv Authors. SPDX-License-Identifier: Apache-2.0

// Package bench is the wall-clock harness for the SpMV kernels: it times
// repeated kernel invocations after a warm-up and formats the results as
// the one-line CSV records the measurement scripts consume.
package bench

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Runner times repeated invocations of a kernel. Warmup invocations run
// first and are discarded; they stabilize caches and the scheduler before
// anything is measured.
type Runner struct {
	Warmup int
	Runs   int
}

// DefaultRunner matches the measurement protocol the result scripts expect:
// one discarded warm-up followed by ten timed runs.
var DefaultRunner = Runner{Warmup: 1, Runs: 10}

// Run invokes fn Warmup+Runs times and returns the duration of each timed
// run, in order.
func (r Runner) Run(fn func()) []time.Duration {
	for i := 0; i < r.Warmup; i++ {
		fn()
	}
	times := make([]time.Duration, r.Runs)
	for i := range times {
		start := time.Now()
		fn()
		times[i] = time.Since(start)
	}
	return times
}

// Result is one benchmark configuration with its measured run times.
type Result struct {
	Matrix   string
	Schedule string
	Chunk    int
	Threads  int
	Times    []time.Duration
}

// CSVRecord formats the result as a single CSV line:
//
//	matrix,schedule,chunk,threads,run1,...,runN
//
// with run times in fractional milliseconds. No trailing newline.
func (r Result) CSVRecord() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s,%s,%d,%d", r.Matrix, r.Schedule, r.Chunk, r.Threads)
	for _, d := range r.Times {
		fmt.Fprintf(&b, ",%g", millis(d))
	}
	return b.String()
}

// Stats returns the mean and sample standard deviation of the run times,
// in milliseconds.
func (r Result) Stats() (mean, sigma float64) {
	ms := make([]float64, len(r.Times))
	for i, d := range r.Times {
		ms[i] = millis(d)
	}
	mean = stat.Mean(ms, nil)
	sigma = stat.StdDev(ms, nil)
	return mean, sigma
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// MatrixName extracts the matrix identifier from a file path:
// "/data/bcsstk17/bcsstk17.mtx" becomes "bcsstk17".
func MatrixName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".mtx")
}
