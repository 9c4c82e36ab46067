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
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-trisort/codec"
	"github.com/ajroetker/go-trisort/trisort"
)

type entropyCmd struct {
	app *app
	io  ioFlags
}

func newEntropyCmd(a *app) *cobra.Command {
	e := &entropyCmd{app: a}
	cmd := &cobra.Command{
		Use:   "entropy [FILE...]",
		Short: "Report the normalized entropy and the strategy sort would pick",
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd.Context(), args, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	e.io.register(cmd.Flags())
	return cmd
}

func (e *entropyCmd) run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	format, err := e.io.parseFormat()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}

	reports := make([]trisort.Report, len(args))
	pool := e.app.pool()
	defer pool.Close()
	err = pool.Run(ctx, len(args), func(_ context.Context, i int) error {
		rep, err := e.analyze(args[i], format, stdin)
		if err != nil {
			return fmt.Errorf("%s: %w", args[i], err)
		}
		reports[i] = rep
		return nil
	})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tN\tDISTINCT\tENTROPY\tSTRATEGY")
	for i, rep := range reports {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.4f\t%s\n", args[i], rep.N, rep.Distinct, rep.Entropy, rep.Strategy)
	}
	return tw.Flush()
}

func (e *entropyCmd) analyze(path string, format codec.Format, stdin io.Reader) (trisort.Report, error) {
	c, err := e.io.compressionFor(path)
	if err != nil {
		return trisort.Report{}, err
	}
	r, err := openInput(path, stdin, c)
	if err != nil {
		return trisort.Report{}, err
	}
	defer r.Close()

	data, err := codec.ReadInts(r, format)
	if err != nil {
		return trisort.Report{}, err
	}
	eng, err := trisort.New[int32](e.app.opts...)
	if err != nil {
		return trisort.Report{}, err
	}
	return eng.Analyze(data)
}
