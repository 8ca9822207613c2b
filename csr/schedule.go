// Copyright 2025 The go-spmv Authors. SPDX-License-Identifier: Apache-2.0

package csr

import "fmt"

// ScheduleKind selects how the parallel kernel distributes rows across
// workers. The three kinds mirror the OpenMP loop-scheduling policies.
type ScheduleKind int

const (
	// ScheduleStatic divides the row range into contiguous chunk-size
	// blocks assigned round-robin to workers, decided once before
	// execution begins. No runtime rebalancing.
	ScheduleStatic ScheduleKind = iota

	// ScheduleDynamic has workers claim the next unclaimed chunk-size
	// block from a shared cursor until none remain. Useful when rows have
	// very uneven nonzero counts.
	ScheduleDynamic

	// ScheduleGuided is like ScheduleDynamic but the claimed block starts
	// at the remaining row count divided by the worker count and shrinks
	// toward the chunk size as the range is exhausted.
	ScheduleGuided
)

func (k ScheduleKind) String() string {
	switch k {
	case ScheduleStatic:
		return "static"
	case ScheduleDynamic:
		return "dynamic"
	case ScheduleGuided:
		return "guided"
	}
	return fmt.Sprintf("ScheduleKind(%d)", int(k))
}

// ParseScheduleKind converts the command-line spelling of a scheduling
// policy into its ScheduleKind.
func ParseScheduleKind(s string) (ScheduleKind, error) {
	switch s {
	case "static":
		return ScheduleStatic, nil
	case "dynamic":
		return ScheduleDynamic, nil
	case "guided":
		return ScheduleGuided, nil
	}
	return 0, fmt.Errorf("csr: invalid schedule kind %q (want static, dynamic or guided)", s)
}

// Schedule configures the parallel kernel's row partitioning. It is plain
// data: pass it to each MulVecParallel call rather than storing it in
// process-wide state, so different policies can coexist in one process.
type Schedule struct {
	Kind      ScheduleKind
	ChunkSize int
	Threads   int
}

// Validate reports whether the schedule is usable: a known kind, a positive
// chunk size and a positive thread count. The parallel kernel refuses to run
// with an invalid schedule.
func (s Schedule) Validate() error {
	switch s.Kind {
	case ScheduleStatic, ScheduleDynamic, ScheduleGuided:
	default:
		return fmt.Errorf("csr: invalid schedule kind %v", s.Kind)
	}
	if s.ChunkSize <= 0 {
		return fmt.Errorf("csr: chunk size must be positive, got %d", s.ChunkSize)
	}
	if s.Threads <= 0 {
		return fmt.Errorf("csr: thread count must be positive, got %d", s.Threads)
	}
	return nil
}
