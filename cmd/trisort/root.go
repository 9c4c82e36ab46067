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
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ajroetker/go-trisort/resource"
	"github.com/ajroetker/go-trisort/trisort"
	"github.com/ajroetker/go-trisort/workerpool"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	logLevel    string
	strategy    string
	merge       string
	memoryLimit string
	workers     int
}

// app holds what PersistentPreRunE builds from globalFlags.
type app struct {
	flags globalFlags
	log   *zap.Logger
	mem   *resource.Controller
	opts  []trisort.Option
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "trisort",
		Short:         "Entropy-adaptive integer sorting",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.StringVar(&a.flags.strategy, "strategy", "", "force a strategy: auto, block-merge, fallback, bucket (default $"+trisort.StrategyEnv+" or auto)")
	pf.StringVar(&a.flags.merge, "merge", trisort.MergeKWay.String(), "block merge mode: kway or two-run")
	pf.StringVar(&a.flags.memoryLimit, "memory-limit", "0", "scratch memory budget, e.g. 64MiB (0 = unlimited)")
	pf.IntVarP(&a.flags.workers, "workers", "j", 0, "files processed in parallel (0 = GOMAXPROCS)")

	root.AddCommand(newSortCmd(a), newEntropyCmd(a), newBenchCmd(a))
	return root
}

func (a *app) setup(stderr io.Writer) error {
	log, err := newLogger(stderr, a.flags.logLevel)
	if err != nil {
		return err
	}
	a.log = log

	limit, err := humanize.ParseBytes(a.flags.memoryLimit)
	if err != nil {
		return fmt.Errorf("--memory-limit: %w", err)
	}
	a.mem = resource.NewController(resource.Config{MemoryLimitBytes: int64(limit)})

	a.opts, err = engineOptions(a.flags.strategy, a.flags.merge, a.mem)
	if err != nil {
		return err
	}
	log.Debug("configured",
		zap.String("strategy", a.flags.strategy),
		zap.String("merge", a.flags.merge),
		zap.String("memory_limit", limitString(limit)),
	)
	return nil
}

func (a *app) pool() *workerpool.Pool {
	return workerpool.New(a.flags.workers)
}

func limitString(limit uint64) string {
	if limit == 0 {
		return "unlimited"
	}
	return humanize.IBytes(limit)
}

// engineOptions turns the strategy and merge flags into engine options.
// An empty strategy falls back to the environment.
func engineOptions(strategy, merge string, mem *resource.Controller) ([]trisort.Option, error) {
	var (
		s   trisort.Strategy
		err error
	)
	if strategy == "" {
		s, err = trisort.StrategyFromEnv()
	} else {
		s, err = trisort.ParseStrategy(strategy)
	}
	if err != nil {
		return nil, err
	}
	m, err := trisort.ParseMergeMode(merge)
	if err != nil {
		return nil, err
	}
	return []trisort.Option{
		trisort.WithStrategy(s),
		trisort.WithMergeMode(m),
		trisort.WithMemoryController(mem),
	}, nil
}

// newLogger writes human-readable logs to w at the given level.
func newLogger(w io.Writer, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(zapcore.AddSync(w)), lvl)
	return zap.New(core), nil
}
