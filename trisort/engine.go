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

import "github.com/ajroetker/go-trisort/resource"

// Engine sorts slices of T under a fixed policy. An Engine holds no
// per-call state and may be used from several goroutines at once, each
// sorting its own slice.
type Engine[T Integer] struct {
	policy   Policy
	strategy Strategy
	mem      *resource.Controller
}

// New creates an engine. With no options it uses DefaultPolicy with
// unlimited scratch memory.
func New[T Integer](opts ...Option) (*Engine[T], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.policy.Validate(); err != nil {
		return nil, err
	}
	switch o.strategy {
	case StrategyAuto, StrategyBlockMerge, StrategyFallback, StrategyBucket:
	default:
		return nil, ErrUnknownStrategy
	}
	return &Engine[T]{
		policy:   o.policy,
		strategy: o.strategy,
		mem:      o.mem,
	}, nil
}

// Policy returns the engine's dispatch policy.
func (e *Engine[T]) Policy() Policy {
	return e.policy
}

// EntropyNorm returns the normalized Shannon entropy of data in [0, 1]:
// 0 for an empty slice or a single repeated value, 1 when every distinct
// value occurs equally often. data is not modified.
func (e *Engine[T]) EntropyNorm(data []T) (float64, error) {
	h, _, err := entropyNorm(data, e.mem)
	return h, err
}

// BucketSort sorts data in place by projecting values onto buckets
// equal-width ranges of [min, max] and sorting each bucket. Inputs shorter
// than MinBucketInput, or fewer than two buckets, go to FallbackSort.
func (e *Engine[T]) BucketSort(data []T, buckets int) error {
	var rep Report
	return bucketSort(data, buckets, e.mem, &rep)
}

// BlockSort sorts data in place by sorting blocks of block elements and
// merging them with the engine's merge mode. Inputs of at most 2*block
// elements go to FallbackSort.
func (e *Engine[T]) BlockSort(data []T, block int) error {
	var rep Report
	return blockSort(data, block, e.policy.Merge, e.mem, &rep)
}

// FallbackSort sorts data in place with the general introsort.
func (e *Engine[T]) FallbackSort(data []T) {
	FallbackSort(data)
}

// defaultEngine returns an engine with the default options. Engines are
// plain values, so building one per call costs nothing worth caching.
func defaultEngine[T Integer]() *Engine[T] {
	return &Engine[T]{policy: DefaultPolicy(), strategy: StrategyAuto}
}

// EntropyNorm returns the normalized Shannon entropy of data.
// See Engine.EntropyNorm.
func EntropyNorm[T Integer](data []T) (float64, error) {
	return defaultEngine[T]().EntropyNorm(data)
}

// BucketSort sorts data with the bucket projection sort.
// See Engine.BucketSort.
func BucketSort[T Integer](data []T, buckets int) error {
	return defaultEngine[T]().BucketSort(data, buckets)
}

// BlockSort sorts data with the block merge sort, merging all blocks.
// See Engine.BlockSort.
func BlockSort[T Integer](data []T, block int) error {
	return defaultEngine[T]().BlockSort(data, block)
}

// Sort sorts data in place, choosing the strategy from its entropy.
// See Engine.Sort.
func Sort[T Integer](data []T) error {
	_, err := defaultEngine[T]().Sort(data)
	return err
}
