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
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajroetker/go-trisort/buffer"
	"github.com/ajroetker/go-trisort/codec"
	"github.com/ajroetker/go-trisort/trisort"
)

// sortedSuffix is appended to an input path to name its output.
const sortedSuffix = ".sorted"

type sortCmd struct {
	app    *app
	io     ioFlags
	output string
}

func newSortCmd(a *app) *cobra.Command {
	s := &sortCmd{app: a}
	cmd := &cobra.Command{
		Use:   "sort [FILE...]",
		Short: "Sort integer files, or stdin to stdout",
		Long: `Sort reads int32 values, sorts them with the entropy-adaptive engine and
writes them back in the same layout.

With no FILE, or when FILE is -, sort reads standard input and writes
standard output. Otherwise each FILE is written to FILE.sorted, or to
--output when exactly one FILE is given. Several files are sorted in
parallel.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.run(cmd.Context(), args, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	s.io.register(cmd.Flags())
	cmd.Flags().StringVarP(&s.output, "output", "o", "", "output path when sorting a single FILE")
	return cmd
}

// sortJob is one input and where its result goes.
type sortJob struct {
	in, out string
}

func (s *sortCmd) jobs(args []string) ([]sortJob, error) {
	if len(args) == 0 {
		return []sortJob{{in: "", out: s.output}}, nil
	}
	if s.output != "" && len(args) > 1 {
		return nil, errors.New("--output needs exactly one FILE")
	}
	jobs := make([]sortJob, len(args))
	for i, in := range args {
		out := s.output
		switch {
		case out != "":
		case in == "-":
			out = "-"
		default:
			out = in + sortedSuffix
		}
		jobs[i] = sortJob{in: in, out: out}
	}
	return jobs, nil
}

func (s *sortCmd) run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	format, err := s.io.parseFormat()
	if err != nil {
		return err
	}
	jobs, err := s.jobs(args)
	if err != nil {
		return err
	}

	pool := s.app.pool()
	defer pool.Close()

	log := s.app.log
	err = pool.Run(ctx, len(jobs), func(ctx context.Context, i int) error {
		job := jobs[i]
		if err := s.sortOne(job, format, stdin, stdout); err != nil {
			log.Error("sort failed", zap.String("file", displayName(job.in)), zap.Error(err))
			return fmt.Errorf("%s: %w", displayName(job.in), err)
		}
		return nil
	})
	log.Debug("scratch memory",
		zap.String("peak", humanize.IBytes(uint64(s.app.mem.PeakMemoryUsage()))),
		zap.String("limit", limitString(uint64(s.app.mem.MemoryLimit()))),
	)
	return err
}

func (s *sortCmd) sortOne(job sortJob, format codec.Format, stdin io.Reader, stdout io.Writer) (err error) {
	inComp, err := s.io.compressionFor(job.in)
	if err != nil {
		return err
	}
	// A derived output keeps the input's compression under auto.
	outComp := inComp
	if s.output != "" || s.io.compression != "auto" {
		if outComp, err = s.io.compressionFor(job.out); err != nil {
			return err
		}
	}

	start := time.Now()
	r, err := openInput(job.in, stdin, inComp)
	if err != nil {
		return err
	}
	var (
		rep   trisort.Report
		write func(io.Writer) error
	)
	switch format {
	case codec.FormatBinary:
		rep, write, err = s.sortBinary(r)
	default:
		rep, write, err = s.sortText(r)
	}
	if cerr := r.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	w, err := createOutput(job.out, stdout, outComp)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	if err := write(w); err != nil {
		return err
	}

	s.app.log.Info("sorted",
		zap.String("file", displayName(job.in)),
		zap.String("output", displayName(job.out)),
		zap.Int("n", rep.N),
		zap.Float64("entropy", rep.Entropy),
		zap.Int("distinct", rep.Distinct),
		zap.Stringer("strategy", rep.Strategy),
		zap.Bool("delegated", rep.Delegated),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// sortText decodes every value, sorts the slice and encodes it back.
func (s *sortCmd) sortText(r io.Reader) (trisort.Report, func(io.Writer) error, error) {
	data, err := codec.ReadInts(r, codec.FormatText)
	if err != nil {
		return trisort.Report{}, nil, err
	}
	eng, err := trisort.New[int32](s.app.opts...)
	if err != nil {
		return trisort.Report{}, nil, err
	}
	rep, err := eng.Sort(data)
	if err != nil {
		return rep, nil, err
	}
	return rep, func(w io.Writer) error { return codec.WriteInts(w, data, codec.FormatText) }, nil
}

// sortBinary sorts the raw bytes in place through the buffer adapter.
func (s *sortCmd) sortBinary(r io.Reader) (trisort.Report, func(io.Writer) error, error) {
	raw, err := codec.ReadRaw(r)
	if err != nil {
		return trisort.Report{}, nil, err
	}
	mem := buffer.NewInt32Memory(raw)
	rep, err := buffer.SortInPlaceReport(mem, s.app.opts...)
	if err != nil {
		return rep, nil, err
	}
	return rep, func(w io.Writer) error {
		_, err := w.Write(mem.Bytes())
		return err
	}, nil
}
