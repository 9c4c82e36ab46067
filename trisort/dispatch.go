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

// Sort measures the entropy of data once and runs exactly one strategy:
//   - H < LowThreshold: BlockSort with the policy's block size
//   - LowThreshold <= H < HighThreshold: FallbackSort
//   - H >= HighThreshold: BucketSort with the policy's bucket count
//
// An engine built WithStrategy skips the selection but still reports the
// measured entropy. On error the slice is unmodified.
func (e *Engine[T]) Sort(data []T) (Report, error) {
	rep, err := e.Analyze(data)
	if err != nil {
		return rep, err
	}

	switch rep.Strategy {
	case StrategyBlockMerge:
		err = blockSort(data, e.policy.BlockSize, e.policy.Merge, e.mem, &rep)
	case StrategyBucket:
		err = bucketSort(data, e.policy.Buckets, e.mem, &rep)
	default:
		FallbackSort(data)
	}
	return rep, err
}

// Analyze measures data and reports the strategy Sort would run, without
// modifying data.
func (e *Engine[T]) Analyze(data []T) (Report, error) {
	rep := Report{N: len(data)}

	h, k, err := entropyNorm(data, e.mem)
	if err != nil {
		return rep, err
	}
	rep.Entropy = h
	rep.Distinct = k

	rep.Strategy = e.strategy
	if rep.Strategy == StrategyAuto {
		rep.Strategy = e.policy.Select(h)
	}
	return rep, nil
}
