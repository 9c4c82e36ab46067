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

type options struct {
	policy   Policy
	strategy Strategy
	mem      *resource.Controller
}

func defaultOptions() options {
	return options{
		policy:   DefaultPolicy(),
		strategy: StrategyAuto,
	}
}

// Option configures an Engine.
type Option func(*options)

// WithPolicy replaces the whole dispatch policy.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithThresholds sets the entropy band boundaries.
func WithThresholds(low, high float64) Option {
	return func(o *options) {
		o.policy.LowThreshold = low
		o.policy.HighThreshold = high
	}
}

// WithBlockSize sets the block length used when the dispatcher selects the
// block merge sort.
func WithBlockSize(block int) Option {
	return func(o *options) {
		o.policy.BlockSize = block
	}
}

// WithBuckets sets the bucket count used when the dispatcher selects the
// bucket sort.
func WithBuckets(buckets int) Option {
	return func(o *options) {
		o.policy.Buckets = buckets
	}
}

// WithMergeMode selects how the block merge sort combines its blocks.
func WithMergeMode(m MergeMode) Option {
	return func(o *options) {
		o.policy.Merge = m
	}
}

// WithStrategy pins the dispatcher to one strategy. StrategyAuto restores
// entropy-based selection.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithMemoryController reserves all scratch memory against c.
// A nil controller means unlimited.
func WithMemoryController(c *resource.Controller) Option {
	return func(o *options) {
		o.mem = c
	}
}
