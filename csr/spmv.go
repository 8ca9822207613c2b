// Copyright 2025 The go-spmv Authors. SPDX-License-Identifier: Apache-2.0

package csr

// MulVec computes dst = A·x with a row-wise dot-product loop.
//
// Every entry of dst is overwritten; dst is never read, so repeated calls
// with the same inputs produce identical output. Within a row the products
// are summed in CSR storage order, which fixes the floating-point rounding
// and makes the result bit-identical to MulVecParallel under any Schedule.
//
// MulVec panics if len(x) != A.Cols or len(dst) != A.Rows.
func (m *Matrix) MulVec(dst, x []float64) {
	m.checkDims(dst, x)
	m.mulRows(dst, x, 0, m.Rows)
}

func (m *Matrix) checkDims(dst, x []float64) {
	if len(x) != m.Cols {
		panic("csr: input vector length mismatch")
	}
	if len(dst) != m.Rows {
		panic("csr: output vector length mismatch")
	}
}

// mulRows computes dst entries for rows [lo, hi). Every scheduling policy
// funnels through here, so per-row summation order never varies.
func (m *Matrix) mulRows(dst, x []float64, lo, hi int) {
	for i := lo; i < hi; i++ {
		var sum float64
		for j := m.RowPtr[i]; j < m.RowPtr[i+1]; j++ {
			sum += m.Values[j] * x[m.ColInd[j]]
		}
		dst[i] = sum
	}
}
