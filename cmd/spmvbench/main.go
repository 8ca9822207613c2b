// Copyright 2025 The go-spmv Authors. SPDX-License-Identifier: Apache-2.0

// Command spmvbench benchmarks sparse matrix-vector multiplication over a
// Matrix-Market file, comparing loop-scheduling policies and thread counts.
//
// Usage:
//
//	spmvbench <matrix.mtx> <schedule> <chunk_size> <num_threads>
//
// where schedule is static, dynamic or guided. The result is a single CSV
// line on stdout: matrix,schedule,chunk,threads,run1,...,runN with run
// times in milliseconds.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/ajroetker/go-spmv/bench"
	"github.com/ajroetker/go-spmv/csr"
	"github.com/ajroetker/go-spmv/internal/cpuinfo"
	"github.com/ajroetker/go-spmv/mtx"
)

var (
	flagRuns       int
	flagWarmup     int
	flagSequential bool
	flagVerify     bool
	flagCPUInfo    bool
	flagVerbose    bool
)

func main() {
	root := &cobra.Command{
		Use:   "spmvbench <matrix.mtx> <schedule> <chunk_size> <num_threads>",
		Short: "Benchmark CSR SpMV under static, dynamic and guided row scheduling",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(args)
		},
	}
	root.Flags().IntVar(&flagRuns, "runs", bench.DefaultRunner.Runs, "number of timed kernel invocations")
	root.Flags().IntVar(&flagWarmup, "warmup", bench.DefaultRunner.Warmup, "number of discarded warm-up invocations")
	root.Flags().BoolVar(&flagSequential, "seq", false, "time the sequential kernel instead of the parallel one")
	root.Flags().BoolVar(&flagVerify, "verify", false, "check the parallel output exactly matches the sequential kernel")
	root.Flags().BoolVar(&flagCPUInfo, "cpuinfo", false, "print host CPU details before the result")
	root.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "print matrix and timing summaries to stderr")

	if err := root.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "spmvbench: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	path := args[0]

	kind, err := csr.ParseScheduleKind(args[1])
	if err != nil {
		return err
	}
	chunk, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("chunk_size must be an integer, got %q", args[2])
	}
	threads, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("num_threads must be an integer, got %q", args[3])
	}
	schedule := csr.Schedule{Kind: kind, ChunkSize: chunk, Threads: threads}
	if err := schedule.Validate(); err != nil {
		return err
	}
	if flagRuns <= 0 {
		return fmt.Errorf("--runs must be positive, got %d", flagRuns)
	}
	if flagWarmup < 0 {
		return fmt.Errorf("--warmup must not be negative, got %d", flagWarmup)
	}

	if flagCPUInfo {
		fmt.Fprint(os.Stderr, cpuinfo.Summary())
	}

	triplets, rows, cols, err := mtx.ReadFile(path)
	if err != nil {
		return err
	}
	m, err := csr.Build(triplets, rows, cols)
	if err != nil {
		return err
	}
	if flagVerbose {
		fmt.Fprintf(os.Stderr, "%s: %dx%d, %d nonzeros\n", bench.MatrixName(path), m.Rows, m.Cols, m.NNZ)
	}

	// Random input in [-1000, 1000], as the measurement protocol fixes.
	x := make([]float64, m.Cols)
	for i := range x {
		x[i] = rand.Float64()*2000 - 1000
	}
	dst := make([]float64, m.Rows)

	if flagVerify {
		if err := verify(m, x, schedule); err != nil {
			return err
		}
	}

	kernel := func() { m.MulVecParallel(dst, x, schedule) }
	scheduleName := schedule.Kind.String()
	if flagSequential {
		kernel = func() { m.MulVec(dst, x) }
		scheduleName = "sequential"
	}

	runner := bench.Runner{Warmup: flagWarmup, Runs: flagRuns}
	result := bench.Result{
		Matrix:   bench.MatrixName(path),
		Schedule: scheduleName,
		Chunk:    schedule.ChunkSize,
		Threads:  schedule.Threads,
		Times:    runner.Run(kernel),
	}

	fmt.Println(result.CSVRecord())

	if flagVerbose {
		mean, sigma := result.Stats()
		color.New(color.FgGreen).Fprintf(os.Stderr, "%d runs: mean %.3f ms, stddev %.3f ms\n",
			flagRuns, mean, sigma)
	}
	return nil
}

// verify runs both kernels once and demands exact floating-point equality,
// the guarantee the scheduling policies must preserve.
func verify(m *csr.Matrix, x []float64, s csr.Schedule) error {
	seq := make([]float64, m.Rows)
	par := make([]float64, m.Rows)
	m.MulVec(seq, x)
	m.MulVecParallel(par, x, s)
	if !floats.Equal(seq, par) {
		return fmt.Errorf("verification failed: parallel output differs from sequential under %s schedule", s.Kind)
	}
	return nil
}
