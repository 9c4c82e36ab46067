// Copyright 2025 go-trisort Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"slices"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajroetker/go-trisort/platform"
	"github.com/ajroetker/go-trisort/trisort"
	"github.com/ajroetker/go-trisort/workerpool"
)

// benchMaxValue bounds the generated values to [0, benchMaxValue).
const benchMaxValue = 1_000_000

type benchCmd struct {
	app   *app
	sizes []int
	seed  uint64
	csv   string
}

func newBenchCmd(a *app) *cobra.Command {
	b := &benchCmd{app: a}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time trisort against slices.Sort and the fallback sorter",
		Long: `Bench sorts uniform random int32 values in [0, 1000000) for each size
with trisort, slices.Sort and the introsort fallback, prints a table and
writes the timings in seconds to a CSV file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return b.run(cmd.Context(), cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.IntSliceVar(&b.sizes, "sizes", []int{10_000, 100_000, 1_000_000}, "input sizes")
	f.Uint64Var(&b.seed, "seed", 1, "random seed")
	f.StringVar(&b.csv, "csv", "benchmark_results.csv", "CSV output path (empty to skip)")
	return cmd
}

// benchRow holds one size's timings.
type benchRow struct {
	n                          int
	trisort, slicesSort, intro time.Duration
	rep                        trisort.Report
}

func (b *benchCmd) run(ctx context.Context, stdout io.Writer) error {
	info := platform.Current()
	log := b.app.log
	log.Info("benchmark",
		zap.Stringer("platform", info),
		zap.String("features", info.FeatureList()),
		zap.Ints("sizes", b.sizes),
	)

	eng, err := trisort.New[int32](b.app.opts...)
	if err != nil {
		return err
	}
	pool := b.app.pool()
	defer pool.Close()

	rows := make([]benchRow, 0, len(b.sizes))
	for _, n := range b.sizes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("--sizes: negative size %d", n)
		}
		row, err := b.measure(eng, pool, n)
		if err != nil {
			return err
		}
		log.Debug("measured", zap.Int("n", n), zap.Stringer("strategy", row.rep.Strategy))
		rows = append(rows, row)
	}

	fmt.Fprintf(stdout, "# %s\n", info)
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "n\tTriSort\tslices.Sort\tFallback\tstrategy\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%.6fs\t%.6fs\t%.6fs\t%s\t\n", r.n,
			r.trisort.Seconds(), r.slicesSort.Seconds(), r.intro.Seconds(), r.rep.Strategy)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if b.csv == "" {
		return nil
	}
	if err := writeBenchCSV(b.csv, rows); err != nil {
		return err
	}
	log.Info("results saved", zap.String("csv", b.csv))
	return nil
}

// measure times each sorter on its own copy of the same input.
func (b *benchCmd) measure(eng *trisort.Engine[int32], pool *workerpool.Pool, n int) (benchRow, error) {
	row := benchRow{n: n}
	src := randomInts(pool, n, b.seed)

	data := slices.Clone(src)
	start := time.Now()
	rep, err := eng.Sort(data)
	row.trisort = time.Since(start)
	if err != nil {
		return row, fmt.Errorf("n=%d: %w", n, err)
	}
	if !slices.IsSorted(data) {
		return row, fmt.Errorf("n=%d: trisort output is not sorted", n)
	}
	row.rep = rep

	data = slices.Clone(src)
	start = time.Now()
	slices.Sort(data)
	row.slicesSort = time.Since(start)

	data = slices.Clone(src)
	start = time.Now()
	trisort.FallbackSort(data)
	row.intro = time.Since(start)
	if !slices.IsSorted(data) {
		return row, fmt.Errorf("n=%d: fallback output is not sorted", n)
	}
	return row, nil
}

// randomInts fills n values in parallel. Each range draws from its own
// generator seeded by (seed, start), so the result does not depend on the
// worker count.
func randomInts(pool *workerpool.Pool, n int, seed uint64) []int32 {
	out := make([]int32, n)
	const chunk = 1 << 14
	pool.ParallelFor((n+chunk-1)/chunk, func(lo, hi int) {
		for c := lo; c < hi; c++ {
			start := c * chunk
			end := min(start+chunk, n)
			r := rand.New(rand.NewPCG(seed, uint64(start)))
			for i := start; i < end; i++ {
				out[i] = int32(r.IntN(benchMaxValue))
			}
		}
	})
	return out
}

func writeBenchCSV(path string, rows []benchRow) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"n", "TriSort", "SlicesSort", "Fallback"}); err != nil {
		return err
	}
	secs := func(d time.Duration) string { return strconv.FormatFloat(d.Seconds(), 'f', 6, 64) }
	for _, r := range rows {
		if err := w.Write([]string{strconv.Itoa(r.n), secs(r.trisort), secs(r.slicesSort), secs(r.intro)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
