// Copyright 2025 The go-spmv Authors. SPDX-License-Identifier: Apache-2.0

package csr

import (
	"math/rand"
	"testing"
)

func TestBuildCanonical(t *testing.T) {
	// Unordered COO input over a 3x3 shape.
	triplets := []Triplet{
		{2, 2, 5.0},
		{0, 2, 1.0},
		{1, 1, 3.0},
		{2, 0, 4.0},
		{0, 0, 2.0},
	}

	m, err := Build(triplets, 3, 3)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	wantRowPtr := []int{0, 2, 3, 5}
	wantColInd := []int{0, 2, 1, 0, 2}
	wantValues := []float64{2.0, 1.0, 3.0, 4.0, 5.0}

	if m.Rows != 3 || m.Cols != 3 || m.NNZ != 5 {
		t.Fatalf("shape = %dx%d nnz %d, want 3x3 nnz 5", m.Rows, m.Cols, m.NNZ)
	}
	for i, want := range wantRowPtr {
		if m.RowPtr[i] != want {
			t.Errorf("RowPtr[%d] = %d, want %d", i, m.RowPtr[i], want)
		}
	}
	for i := range wantColInd {
		if m.ColInd[i] != wantColInd[i] || m.Values[i] != wantValues[i] {
			t.Errorf("entry %d = (%d, %g), want (%d, %g)",
				i, m.ColInd[i], m.Values[i], wantColInd[i], wantValues[i])
		}
	}
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	triplets := []Triplet{{1, 0, 2.0}, {0, 1, 1.0}}
	if _, err := Build(triplets, 2, 2); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if triplets[0] != (Triplet{1, 0, 2.0}) || triplets[1] != (Triplet{0, 1, 1.0}) {
		t.Errorf("input slice was reordered: %v", triplets)
	}
}

func TestBuildEmptyRows(t *testing.T) {
	// Rows 0, 2 and 4 have no entries; rows at both ends are empty.
	triplets := []Triplet{
		{3, 1, 2.0},
		{1, 0, 1.0},
	}
	m, err := Build(triplets, 5, 2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	wantRowPtr := []int{0, 0, 1, 1, 2, 2}
	for i, want := range wantRowPtr {
		if m.RowPtr[i] != want {
			t.Errorf("RowPtr[%d] = %d, want %d", i, m.RowPtr[i], want)
		}
	}
	for i := 0; i < m.Rows; i++ {
		if m.RowPtr[i] > m.RowPtr[i+1] {
			t.Errorf("RowPtr not non-decreasing at %d: %d > %d", i, m.RowPtr[i], m.RowPtr[i+1])
		}
	}
}

func TestBuildNoTriplets(t *testing.T) {
	m, err := Build(nil, 4, 4)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m.NNZ != 0 || len(m.ColInd) != 0 || len(m.Values) != 0 {
		t.Errorf("nnz = %d, want 0", m.NNZ)
	}
	for i, p := range m.RowPtr {
		if p != 0 {
			t.Errorf("RowPtr[%d] = %d, want 0", i, p)
		}
	}
}

func TestBuildDuplicatesKeptInOrder(t *testing.T) {
	// Duplicate coordinates stay separate entries, in input order.
	triplets := []Triplet{
		{0, 0, 1.0},
		{0, 0, 2.0},
	}
	m, err := Build(triplets, 1, 1)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m.NNZ != 2 {
		t.Fatalf("nnz = %d, want 2 (duplicates must not be merged)", m.NNZ)
	}
	if m.Values[0] != 1.0 || m.Values[1] != 2.0 {
		t.Errorf("values = %v, want [1 2] (stable order)", m.Values)
	}
}

func TestBuildRejectsBadInput(t *testing.T) {
	cases := []struct {
		name       string
		triplets   []Triplet
		rows, cols int
	}{
		{"negative row", []Triplet{{-1, 0, 1}}, 2, 2},
		{"row too large", []Triplet{{2, 0, 1}}, 2, 2},
		{"negative col", []Triplet{{0, -1, 1}}, 2, 2},
		{"col too large", []Triplet{{0, 2, 1}}, 2, 2},
		{"zero rows", nil, 0, 2},
		{"zero cols", nil, 2, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Build(tc.triplets, tc.rows, tc.cols); err == nil {
				t.Errorf("Build(%v, %d, %d) succeeded, want error",
					tc.triplets, tc.rows, tc.cols)
			}
		})
	}
}

// TestBuildRoundTrip rebuilds triplets from random CSR matrices and checks
// they are the stable (row, col) sort of the input.
func TestBuildRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for _, size := range []int{1, 7, 64, 301} {
		t.Run(sizeStr(size), func(t *testing.T) {
			nnz := size * 4
			triplets := make([]Triplet, nnz)
			for i := range triplets {
				triplets[i] = Triplet{
					Row: rng.Intn(size),
					Col: rng.Intn(size),
					Val: rng.Float64()*2 - 1,
				}
			}

			m, err := Build(triplets, size, size)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if m.NNZ != nnz || len(m.ColInd) != nnz || len(m.Values) != nnz {
				t.Fatalf("nnz = %d, want %d", m.NNZ, nnz)
			}
			if m.RowPtr[0] != 0 || m.RowPtr[size] != nnz {
				t.Fatalf("RowPtr ends = %d, %d, want 0, %d", m.RowPtr[0], m.RowPtr[size], nnz)
			}

			got := make([]Triplet, 0, nnz)
			for i := 0; i < m.Rows; i++ {
				for j := m.RowPtr[i]; j < m.RowPtr[i+1]; j++ {
					got = append(got, Triplet{i, m.ColInd[j], m.Values[j]})
				}
			}

			want := stableSorted(triplets)
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("entry %d = %v, want %v", i, got[i], want[i])
				}
			}
		})
	}
}

// stableSorted is an O(n^2) insertion sort by (row, col), the reference for
// the converter's stable ordering contract.
func stableSorted(triplets []Triplet) []Triplet {
	out := make([]Triplet, 0, len(triplets))
	for _, t := range triplets {
		i := len(out)
		for i > 0 && (out[i-1].Row > t.Row ||
			(out[i-1].Row == t.Row && out[i-1].Col > t.Col)) {
			i--
		}
		out = append(out, Triplet{})
		copy(out[i+1:], out[i:])
		out[i] = t
	}
	return out
}
