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
	"errors"
	"slices"
	"testing"

	"github.com/ajroetker/go-trisort/resource"
)

func TestSortEmpty(t *testing.T) {
	var empty []int32
	if err := Sort(empty); err != nil {
		t.Fatal(err)
	}

	eng, err := New[int32]()
	if err != nil {
		t.Fatal(err)
	}
	rep, err := eng.Sort(nil)
	if err != nil {
		t.Fatal(err)
	}
	// H = 0 selects the block sort, which delegates the empty slice.
	if rep.Strategy != StrategyBlockMerge || !rep.Delegated || rep.N != 0 {
		t.Errorf("Sort(empty) report = %+v", rep)
	}
}

// TestSortBandSelection builds one input per entropy band and checks that
// the matching strategy ran and left what the direct call would.
func TestSortBandSelection(t *testing.T) {
	r := newRand(31)
	tests := []struct {
		name   string
		data   []int32
		want   Strategy
		direct func([]int32) error
		check  func(t *testing.T, rep Report)
	}{
		{
			name:   "low",
			data:   lowEntropyInput(r),
			want:   StrategyBlockMerge,
			direct: func(d []int32) error { return BlockSort(d, DefaultBlockSize) },
			check: func(t *testing.T, rep Report) {
				if rep.Blocks != 16 || rep.Delegated {
					t.Errorf("block report = %+v, want 16 blocks", rep)
				}
			},
		},
		{
			name:   "mid",
			data:   midEntropyInput(r),
			want:   StrategyFallback,
			direct: func(d []int32) error { FallbackSort(d); return nil },
			check: func(t *testing.T, rep Report) {
				if rep.Blocks != 0 || rep.Buckets != 0 || rep.ScratchBytes != 0 {
					t.Errorf("fallback report = %+v, want no scratch", rep)
				}
			},
		},
		{
			name:   "high",
			data:   highEntropyInput(r),
			want:   StrategyBucket,
			direct: func(d []int32) error { return BucketSort(d, DefaultBuckets) },
			check: func(t *testing.T, rep Report) {
				if rep.Buckets == 0 || rep.Delegated || rep.LargestBucket >= rep.N {
					t.Errorf("bucket report = %+v, want populated buckets", rep)
				}
			},
		},
	}

	eng, err := New[int32]()
	if err != nil {
		t.Fatal(err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			direct := slices.Clone(tt.data)
			if err := tt.direct(direct); err != nil {
				t.Fatal(err)
			}

			rep, err := eng.Sort(tt.data)
			if err != nil {
				t.Fatal(err)
			}
			if rep.Strategy != tt.want {
				t.Errorf("Strategy = %v (H=%v), want %v", rep.Strategy, rep.Entropy, tt.want)
			}
			if rep.N != len(tt.data) {
				t.Errorf("N = %d, want %d", rep.N, len(tt.data))
			}
			tt.check(t, rep)
			if !slices.Equal(direct, tt.data) {
				t.Errorf("Sort output differs from the direct %v call", tt.want)
			}
			if !isSorted(tt.data) {
				t.Errorf("Sort(%s) produced unsorted result", tt.name)
			}
		})
	}
}

func TestPolicySelect(t *testing.T) {
	p := DefaultPolicy()
	tests := []struct {
		h    float64
		want Strategy
	}{
		{0, StrategyBlockMerge},
		{0.2999, StrategyBlockMerge},
		{0.3, StrategyFallback},
		{0.5, StrategyFallback},
		{0.6999, StrategyFallback},
		{0.7, StrategyBucket},
		{1, StrategyBucket},
	}
	for _, tt := range tests {
		if got := p.Select(tt.h); got != tt.want {
			t.Errorf("Select(%v) = %v, want %v", tt.h, got, tt.want)
		}
	}
}

// TestSortPermutation checks every distribution and size keeps its
// multiset and ends sorted.
func TestSortPermutation(t *testing.T) {
	r := newRand(32)
	sizes := []int{0, 1, 2, 63, 64, 65, 128, 129, 500, 4096}
	for _, n := range sizes {
		for _, span := range []int32{1, 2, 16, 1000, 1 << 30} {
			data := generateInt32(r, n, -span/2, span)
			orig := slices.Clone(data)
			if err := Sort(data); err != nil {
				t.Fatal(err)
			}
			if !sameElements(orig, data) {
				t.Errorf("Sort(n=%d, span=%d) changed the multiset", n, span)
			}
			if !isSorted(data) {
				t.Errorf("Sort(n=%d, span=%d) produced unsorted result", n, span)
			}
		}
	}
}

func TestSortIdempotent(t *testing.T) {
	data := generateInt32(newRand(33), 3000, 0, 100)
	if err := Sort(data); err != nil {
		t.Fatal(err)
	}
	once := slices.Clone(data)
	if err := Sort(data); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(once, data) {
		t.Errorf("sorting a sorted slice changed it")
	}
}

func TestSortInt64(t *testing.T) {
	r := newRand(34)
	data := make([]int64, 5000)
	for i := range data {
		data[i] = int64(r.Uint64())
	}
	want := slices.Clone(data)
	slices.Sort(want)
	if err := Sort(data); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(want, data) {
		t.Errorf("Sort(int64) differs from slices.Sort")
	}
}

func TestSortForcedStrategy(t *testing.T) {
	for _, s := range []Strategy{StrategyBlockMerge, StrategyFallback, StrategyBucket} {
		t.Run(s.String(), func(t *testing.T) {
			eng, err := New[int32](WithStrategy(s))
			if err != nil {
				t.Fatal(err)
			}
			data := midEntropyInput(newRand(35))
			rep, err := eng.Sort(data)
			if err != nil {
				t.Fatal(err)
			}
			if rep.Strategy != s {
				t.Errorf("Strategy = %v, want %v", rep.Strategy, s)
			}
			if rep.Entropy < LowEntropyThreshold || rep.Entropy >= HighEntropyThreshold {
				t.Errorf("Entropy = %v, want the measured mid-band score", rep.Entropy)
			}
			if !isSorted(data) {
				t.Errorf("forced %v produced unsorted result", s)
			}
		})
	}
}

func TestSortCustomPolicy(t *testing.T) {
	// Everything below 0.9 goes to the block sort with small blocks.
	eng, err := New[int32](WithThresholds(0.9, 0.95), WithBlockSize(16), WithBuckets(8))
	if err != nil {
		t.Fatal(err)
	}
	data := midEntropyInput(newRand(36))
	rep, err := eng.Sort(data)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Strategy != StrategyBlockMerge || rep.Blocks != 64 {
		t.Errorf("report = %+v, want block merge over 64 blocks", rep)
	}
	if !isSorted(data) {
		t.Errorf("custom policy produced unsorted result")
	}
}

// TestSortAllocationFailure: the entropy table is the first reservation
// of a call, so a tight budget fails before any strategy runs.
func TestSortAllocationFailure(t *testing.T) {
	r := newRand(37)
	for name, data := range map[string][]int32{"low": lowEntropyInput(r), "high": highEntropyInput(r)} {
		t.Run(name, func(t *testing.T) {
			mem := resource.NewController(resource.Config{MemoryLimitBytes: 64})
			eng, err := New[int32](WithMemoryController(mem))
			if err != nil {
				t.Fatal(err)
			}
			orig := slices.Clone(data)
			rep, err := eng.Sort(data)
			if !errors.Is(err, ErrAllocation) {
				t.Fatalf("Sort error = %v, want ErrAllocation", err)
			}
			if rep.N != len(data) || rep.ScratchBytes != 0 {
				t.Errorf("report on failure = %+v", rep)
			}
			if !slices.Equal(orig, data) {
				t.Errorf("Sort modified data on allocation failure")
			}
			if mem.MemoryUsage() != 0 {
				t.Errorf("MemoryUsage() = %d, want 0", mem.MemoryUsage())
			}
		})
	}
}

func TestNewRejectsInvalidPolicy(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"negative_low", WithThresholds(-0.1, 0.7)},
		{"high_above_one", WithThresholds(0.3, 1.5)},
		{"inverted", WithThresholds(0.8, 0.2)},
		{"zero_block", WithBlockSize(0)},
		{"zero_buckets", WithBuckets(0)},
		{"bad_merge", WithMergeMode(MergeMode(9))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New[int32](tt.opt); !errors.Is(err, ErrInvalidPolicy) {
				t.Errorf("New error = %v, want ErrInvalidPolicy", err)
			}
		})
	}

	if _, err := New[int32](WithStrategy(Strategy(42))); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("New(WithStrategy(42)) error = %v, want ErrUnknownStrategy", err)
	}
}

func TestNewWithPolicy(t *testing.T) {
	p := DefaultPolicy()
	p.Merge = MergeTwoRun
	eng, err := New[int16](WithPolicy(p))
	if err != nil {
		t.Fatal(err)
	}
	if eng.Policy() != p {
		t.Errorf("Policy() = %+v, want %+v", eng.Policy(), p)
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in   string
		want Strategy
	}{
		{"", StrategyAuto},
		{"auto", StrategyAuto},
		{"Block-Merge", StrategyBlockMerge},
		{"fallback", StrategyFallback},
		{" bucket ", StrategyBucket},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseStrategy(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
		if back, _ := ParseStrategy(got.String()); back != got {
			t.Errorf("ParseStrategy(%q) = %v, want %v", got.String(), back, got)
		}
	}
	if _, err := ParseStrategy("radix"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("ParseStrategy(radix) error = %v, want ErrUnknownStrategy", err)
	}
	if Strategy(42).String() != "unknown" {
		t.Errorf("Strategy(42).String() = %q", Strategy(42).String())
	}
}

func TestParseMergeMode(t *testing.T) {
	for _, m := range []MergeMode{MergeKWay, MergeTwoRun} {
		got, err := ParseMergeMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMergeMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMergeMode("three-way"); !errors.Is(err, ErrInvalidPolicy) {
		t.Errorf("ParseMergeMode(three-way) error = %v, want ErrInvalidPolicy", err)
	}
}

func TestStrategyFromEnv(t *testing.T) {
	t.Setenv(StrategyEnv, "bucket")
	s, err := StrategyFromEnv()
	if err != nil || s != StrategyBucket {
		t.Errorf("StrategyFromEnv() = %v, %v; want bucket", s, err)
	}

	t.Setenv(StrategyEnv, "")
	s, err = StrategyFromEnv()
	if err != nil || s != StrategyAuto {
		t.Errorf("StrategyFromEnv() = %v, %v; want auto", s, err)
	}

	t.Setenv(StrategyEnv, "bogus")
	if _, err := StrategyFromEnv(); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("StrategyFromEnv(bogus) error = %v, want ErrUnknownStrategy", err)
	}
}

func TestAnalyzeDoesNotModify(t *testing.T) {
	eng, err := New[int32]()
	if err != nil {
		t.Fatal(err)
	}
	data := highEntropyInput(newRand(5))
	orig := slices.Clone(data)

	rep, err := eng.Analyze(data)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(data, orig) {
		t.Error("Analyze modified its input")
	}
	if rep.Strategy != StrategyBucket || rep.Distinct != len(data) || rep.N != len(data) {
		t.Errorf("Analyze = %+v, want bucket with %d distinct", rep, len(data))
	}

	sorted, err := eng.Sort(data)
	if err != nil {
		t.Fatal(err)
	}
	if sorted.Strategy != rep.Strategy || sorted.Entropy != rep.Entropy {
		t.Errorf("Sort report %+v disagrees with Analyze %+v", sorted, rep)
	}
}
