// Copyright 2025 The go-spmv Authors. SPDX-License-Identifier: Apache-2.0

// Package csr implements sparse matrix-vector multiplication over matrices
// stored in compressed sparse row form. It provides the COO-to-CSR
// converter plus sequential and parallel multiplication kernels whose
// row-partitioning strategy is configurable via a Schedule.
package csr

import (
	"fmt"
	"sort"
)

// Triplet is a single coordinate-format (COO) entry with 0-based indices.
//
// Repeated (Row, Col) pairs are legal: Matrix-Market files may list the same
// coordinate more than once, with the entries meant to be summed. The
// converter keeps them as separate CSR entries and the kernels' per-row
// summation accumulates both.
type Triplet struct {
	Row, Col int
	Val      float64
}

// Matrix is a sparse matrix in compressed sparse row form.
//
// RowPtr has length Rows+1 and is non-decreasing, with RowPtr[0] == 0 and
// RowPtr[Rows] == NNZ. The nonzeros of row i are
// ColInd[RowPtr[i]:RowPtr[i+1]] and Values[RowPtr[i]:RowPtr[i+1]], sorted by
// column with the original triplet order preserved among duplicates. A row
// with no entries has RowPtr[i] == RowPtr[i+1].
//
// A Matrix is immutable once built and safe for concurrent readers.
type Matrix struct {
	Rows, Cols, NNZ int

	RowPtr []int
	ColInd []int
	Values []float64
}

// Build converts an unordered triplet list into canonical CSR form.
//
// The list is stable-sorted by (row, col): entries with equal coordinates
// keep their relative order and are not merged. The input slice is left
// unmodified. Rows with no entries yield an empty row slice, not an error.
//
// Coordinates must already be 0-based and inside the declared rows x cols
// shape; out-of-bounds entries and non-positive dimensions are rejected.
//
// Complexity is O(nnz log nnz) for the sort plus O(nnz + rows) for the scan.
func Build(triplets []Triplet, rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("csr: invalid shape %dx%d", rows, cols)
	}
	for _, t := range triplets {
		if t.Row < 0 || t.Row >= rows {
			return nil, fmt.Errorf("csr: row index %d outside [0,%d)", t.Row, rows)
		}
		if t.Col < 0 || t.Col >= cols {
			return nil, fmt.Errorf("csr: column index %d outside [0,%d)", t.Col, cols)
		}
	}

	nnz := len(triplets)
	sorted := make([]Triplet, nnz)
	copy(sorted, triplets)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Row != sorted[j].Row {
			return sorted[i].Row < sorted[j].Row
		}
		return sorted[i].Col < sorted[j].Col
	})

	m := &Matrix{
		Rows:   rows,
		Cols:   cols,
		NNZ:    nnz,
		RowPtr: make([]int, rows+1),
		ColInd: make([]int, nnz),
		Values: make([]float64, nnz),
	}

	row := 0
	for i, t := range sorted {
		m.ColInd[i] = t.Col
		m.Values[i] = t.Val
		// Whenever the row index advances, every skipped slot (rows with
		// no entries included) points at the current position.
		for row < t.Row {
			row++
			m.RowPtr[row] = i
		}
	}
	for i := row + 1; i <= rows; i++ {
		m.RowPtr[i] = nnz
	}
	return m, nil
}
