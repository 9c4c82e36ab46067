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

import "fmt"

// Dispatch policy. These are the TriSort+ tuning and the defaults of
// DefaultPolicy.
const (
	// LowEntropyThreshold: scores strictly below it use the block merge sort.
	LowEntropyThreshold = 0.3

	// HighEntropyThreshold: scores at or above it use the bucket sort.
	HighEntropyThreshold = 0.7

	// DefaultBlockSize is the block length used by the dispatcher.
	DefaultBlockSize = 64

	// DefaultBuckets is the bucket count used by the dispatcher.
	DefaultBuckets = 32

	// MinBucketInput: the bucket sort delegates inputs shorter than this.
	MinBucketInput = 64

	// tableLoadFactor sizes the entropy table to the next power of two
	// at or above tableLoadFactor * n.
	tableLoadFactor = 1.3
)

// MergeMode selects how the block merge sort combines its sorted blocks.
type MergeMode int

const (
	// MergeKWay merges every block through a min-heap of run heads.
	MergeKWay MergeMode = iota

	// MergeTwoRun merges the first block against the remainder of the
	// slice with a single two-pointer pass. The result is a permutation
	// of the input but is only sorted when there are at most two blocks.
	// Kept for parity with the original TriSort+ merge.
	MergeTwoRun
)

// String returns a human-readable name for the merge mode.
func (m MergeMode) String() string {
	switch m {
	case MergeKWay:
		return "kway"
	case MergeTwoRun:
		return "two-run"
	default:
		return "unknown"
	}
}

// ParseMergeMode is the inverse of MergeMode.String.
func ParseMergeMode(s string) (MergeMode, error) {
	switch s {
	case "", "kway":
		return MergeKWay, nil
	case "two-run":
		return MergeTwoRun, nil
	}
	return MergeKWay, fmt.Errorf("%w: unknown merge mode %q", ErrInvalidPolicy, s)
}

// Policy holds the tunables of the dispatcher.
type Policy struct {
	LowThreshold  float64
	HighThreshold float64
	BlockSize     int
	Buckets       int
	Merge         MergeMode
}

// DefaultPolicy returns the TriSort+ policy: 0.3 / 0.7 bands, blocks of
// 64, 32 buckets, k-way merge.
func DefaultPolicy() Policy {
	return Policy{
		LowThreshold:  LowEntropyThreshold,
		HighThreshold: HighEntropyThreshold,
		BlockSize:     DefaultBlockSize,
		Buckets:       DefaultBuckets,
		Merge:         MergeKWay,
	}
}

// Validate reports whether the policy is usable.
func (p Policy) Validate() error {
	switch {
	case p.LowThreshold < 0 || p.HighThreshold > 1:
		return fmt.Errorf("%w: thresholds %v/%v outside [0, 1]", ErrInvalidPolicy, p.LowThreshold, p.HighThreshold)
	case p.LowThreshold > p.HighThreshold:
		return fmt.Errorf("%w: low threshold %v above high threshold %v", ErrInvalidPolicy, p.LowThreshold, p.HighThreshold)
	case p.BlockSize < 1:
		return fmt.Errorf("%w: block size %d", ErrInvalidPolicy, p.BlockSize)
	case p.Buckets < 1:
		return fmt.Errorf("%w: bucket count %d", ErrInvalidPolicy, p.Buckets)
	case p.Merge != MergeKWay && p.Merge != MergeTwoRun:
		return fmt.Errorf("%w: merge mode %d", ErrInvalidPolicy, int(p.Merge))
	}
	return nil
}

// Select maps an entropy score to a strategy using half-open bands.
func (p Policy) Select(h float64) Strategy {
	if h < p.LowThreshold {
		return StrategyBlockMerge
	}
	if h < p.HighThreshold {
		return StrategyFallback
	}
	return StrategyBucket
}
