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

// Command trisort sorts int32 data with the adaptive trisort engine.
//
// Usage:
//
//	trisort sort data.txt                      # writes data.txt.sorted
//	trisort sort --format binary -o out.bin.zst in.bin
//	cat data.txt | trisort sort > sorted.txt
//	trisort entropy data.txt                   # prints n, distinct, H, strategy
//	trisort bench --sizes 10000,100000         # timing table and CSV
//
// The TRISORT_STRATEGY environment variable pins a strategy when --strategy
// is not given.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "trisort:", err)
		stop()
		os.Exit(1)
	}
}
