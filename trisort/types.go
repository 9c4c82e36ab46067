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

package trisort

import (
	"fmt"
	"strings"
)

// Integer is the constraint for element types the engine sorts.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// Strategy identifies the sorter the dispatcher ran.
type Strategy int

const (
	// StrategyBlockMerge sorts fixed-size blocks and merges the runs.
	StrategyBlockMerge Strategy = iota

	// StrategyFallback is the general introsort.
	StrategyFallback

	// StrategyBucket projects values onto equal-width buckets.
	StrategyBucket

	// StrategyAuto lets the dispatcher choose from the entropy score.
	// It is only meaningful as an override value.
	StrategyAuto Strategy = -1
)

// String returns a human-readable name for the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyBlockMerge:
		return "block-merge"
	case StrategyFallback:
		return "fallback"
	case StrategyBucket:
		return "bucket"
	case StrategyAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// ParseStrategy is the inverse of Strategy.String. Matching ignores case.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return StrategyAuto, nil
	case "block-merge", "block":
		return StrategyBlockMerge, nil
	case "fallback", "introsort":
		return StrategyFallback, nil
	case "bucket":
		return StrategyBucket, nil
	}
	return StrategyAuto, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Report describes a single dispatcher call.
type Report struct {
	// N is the number of elements sorted.
	N int

	// Entropy is the normalized entropy score in [0, 1].
	Entropy float64

	// Distinct is the number of distinct values seen by the estimator.
	Distinct int

	// Strategy is the sorter that ran.
	Strategy Strategy

	// Delegated is set when the chosen sorter handed the whole slice to
	// the fallback because the input was under its size guard.
	Delegated bool

	// Blocks is the number of blocks sorted by the block merge strategy.
	Blocks int

	// Buckets is the number of non-empty buckets of the bucket strategy,
	// LargestBucket the size of the fullest one.
	Buckets       int
	LargestBucket int

	// ScratchBytes is the transient memory reserved by the sorter,
	// not counting the entropy table.
	ScratchBytes int64
}
