// Copyright 2025 The go-spmv Authors. SPDX-License-Identifier: Apache-2.0

package csr

import (
	"sync"
	"sync/atomic"
)

// MulVecParallel computes dst = A·x with rows partitioned across
// s.Threads workers under the scheduling policy in s.
//
// The math is identical to MulVec: each row is computed independently and
// written to a distinct dst slot, and within a row the summation order is
// the CSR storage order. Per-row results are therefore bit-identical to the
// sequential kernel regardless of which worker processed the row. Only the
// cross-row execution order differs.
//
// The call is fork-join: workers are spawned for this invocation only and
// MulVecParallel returns after all of them finish. The matrix and x are
// shared read-only; no row is written by more than one worker, so the
// workers need no locks.
//
// MulVecParallel panics if the schedule is invalid (see Schedule.Validate)
// or if the vector lengths do not match the matrix shape.
func (m *Matrix) MulVecParallel(dst, x []float64, s Schedule) {
	if err := s.Validate(); err != nil {
		panic(err.Error())
	}
	m.checkDims(dst, x)

	var wg sync.WaitGroup
	switch s.Kind {
	case ScheduleStatic:
		m.mulStatic(&wg, dst, x, s)
	case ScheduleDynamic:
		m.mulDynamic(&wg, dst, x, s)
	case ScheduleGuided:
		m.mulGuided(&wg, dst, x, s)
	}
	wg.Wait()
}

// mulStatic assigns block b of chunkSize rows to worker b % threads. The
// assignment is fully determined before any worker runs.
func (m *Matrix) mulStatic(wg *sync.WaitGroup, dst, x []float64, s Schedule) {
	stride := s.Threads * s.ChunkSize
	for w := 0; w < s.Threads; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			for lo := w * s.ChunkSize; lo < m.Rows; lo += stride {
				m.mulRows(dst, x, lo, min(lo+s.ChunkSize, m.Rows))
			}
		}()
	}
}

// mulDynamic has each worker claim the next chunkSize-row block from a
// shared cursor until the row range is exhausted.
func (m *Matrix) mulDynamic(wg *sync.WaitGroup, dst, x []float64, s Schedule) {
	var cursor atomic.Int64
	for i := 0; i < s.Threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				hi := int(cursor.Add(int64(s.ChunkSize)))
				lo := hi - s.ChunkSize
				if lo >= m.Rows {
					return
				}
				m.mulRows(dst, x, lo, min(hi, m.Rows))
			}
		}()
	}
}

// mulGuided sizes each claimed block at remaining/threads, floored at the
// chunk size. Blocks are large while much work remains, amortizing cursor
// contention, and shrink near the end for load balance. The claim is a CAS
// because the block size depends on the cursor value being claimed.
func (m *Matrix) mulGuided(wg *sync.WaitGroup, dst, x []float64, s Schedule) {
	var cursor atomic.Int64
	for i := 0; i < s.Threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				lo := int(cursor.Load())
				if lo >= m.Rows {
					return
				}
				size := (m.Rows - lo) / s.Threads
				if size < s.ChunkSize {
					size = s.ChunkSize
				}
				if !cursor.CompareAndSwap(int64(lo), int64(lo+size)) {
					continue
				}
				m.mulRows(dst, x, lo, min(lo+size, m.Rows))
			}
		}()
	}
}
