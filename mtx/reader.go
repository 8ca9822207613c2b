// Copyright 2025 The go-spmv Authors. SPDX-License-Identifier: Apache-2.0

// Package mtx reads sparse matrices from Matrix-Market coordinate files.
//
// Only the subset of the format the SpMV benchmarks need is supported:
// real-valued coordinate files with one "row col value" entry per line,
// 1-based indices and any number of leading %-comment lines. Entries are
// returned 0-based, ready for csr.Build.
package mtx

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ajroetker/go-spmv/csr"
)

var (
	// ErrBadHeader means the size line "rows cols nnz" is missing or
	// malformed.
	ErrBadHeader = errors.New("mtx: malformed size header")

	// ErrBadEntry means a matrix entry line does not parse as
	// "row col value" or its coordinates fall outside the declared shape.
	ErrBadEntry = errors.New("mtx: malformed matrix entry")

	// ErrTruncated means the file ended before the declared number of
	// entries was read.
	ErrTruncated = errors.New("mtx: fewer entries than header declares")
)

// ReadFile reads the Matrix-Market file at path.
func ReadFile(path string) (triplets []csr.Triplet, rows, cols int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("mtx: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read reads a Matrix-Market coordinate body from r. It returns the triplet
// list with 0-based coordinates and the declared shape. The length of the
// returned list always equals the nnz the header declares; a shortfall is
// ErrTruncated.
func Read(r io.Reader) (triplets []csr.Triplet, rows, cols int, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	rows, cols, nnz, err := readHeader(sc)
	if err != nil {
		return nil, 0, 0, err
	}

	triplets = make([]csr.Triplet, 0, nnz)
	for len(triplets) < nnz && sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		t, err := parseEntry(fields, rows, cols)
		if err != nil {
			return nil, 0, 0, err
		}
		triplets = append(triplets, t)
	}
	if err := sc.Err(); err != nil {
		return nil, 0, 0, fmt.Errorf("mtx: %w", err)
	}
	if len(triplets) < nnz {
		return nil, 0, 0, fmt.Errorf("%w: got %d of %d", ErrTruncated, len(triplets), nnz)
	}
	return triplets, rows, cols, nil
}

// readHeader skips %-comments and blank lines, then parses "rows cols nnz".
func readHeader(sc *bufio.Scanner) (rows, cols, nnz int, err error) {
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrBadHeader, line)
		}
		dims := make([]int, 3)
		for i, f := range fields {
			dims[i], err = strconv.Atoi(f)
			if err != nil || dims[i] < 0 {
				return 0, 0, 0, fmt.Errorf("%w: %q", ErrBadHeader, line)
			}
		}
		if dims[0] == 0 || dims[1] == 0 {
			return 0, 0, 0, fmt.Errorf("%w: zero-sized shape %q", ErrBadHeader, line)
		}
		return dims[0], dims[1], dims[2], nil
	}
	if err := sc.Err(); err != nil {
		return 0, 0, 0, fmt.Errorf("mtx: %w", err)
	}
	return 0, 0, 0, ErrBadHeader
}

// parseEntry converts one "row col value" line from the file's 1-based
// indices to a 0-based triplet, rejecting out-of-range coordinates so the
// converter never sees them.
func parseEntry(fields []string, rows, cols int) (csr.Triplet, error) {
	if len(fields) != 3 {
		return csr.Triplet{}, fmt.Errorf("%w: %q", ErrBadEntry, strings.Join(fields, " "))
	}
	r, err := strconv.Atoi(fields[0])
	if err != nil {
		return csr.Triplet{}, fmt.Errorf("%w: row %q", ErrBadEntry, fields[0])
	}
	c, err := strconv.Atoi(fields[1])
	if err != nil {
		return csr.Triplet{}, fmt.Errorf("%w: column %q", ErrBadEntry, fields[1])
	}
	v, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return csr.Triplet{}, fmt.Errorf("%w: value %q", ErrBadEntry, fields[2])
	}
	if r < 1 || r > rows || c < 1 || c > cols {
		return csr.Triplet{}, fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrBadEntry, r, c, rows, cols)
	}
	return csr.Triplet{Row: r - 1, Col: c - 1, Val: v}, nil
}
