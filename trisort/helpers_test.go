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
	"math/rand/v2"
	"slices"
)

// Helper to check if slice is sorted
func isSorted[T Integer](data []T) bool {
	for i := 1; i < len(data); i++ {
		if data[i] < data[i-1] {
			return false
		}
	}
	return true
}

// sameElements reports whether a and b hold the same multiset.
func sameElements[T Integer](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	x, y := slices.Clone(a), slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// generateInt32 returns n values drawn uniformly from [lo, lo+span).
func generateInt32(r *rand.Rand, n int, lo, span int32) []int32 {
	data := make([]int32, n)
	for i := range data {
		data[i] = lo + r.Int32N(span)
	}
	return data
}

// lowEntropyInput is dominated by a single value: H is about 0.03.
func lowEntropyInput(r *rand.Rand) []int32 {
	data := make([]int32, 0, 1000)
	for range 990 {
		data = append(data, 5)
	}
	for v := range int32(10) {
		data = append(data, 100+v)
	}
	r.Shuffle(len(data), func(i, j int) { data[i], data[j] = data[j], data[i] })
	return data
}

// midEntropyInput is 640 zeros plus 384 distinct values: H is about 0.486.
func midEntropyInput(r *rand.Rand) []int32 {
	data := make([]int32, 0, 1024)
	for range 640 {
		data = append(data, 0)
	}
	for v := range int32(384) {
		data = append(data, v+1)
	}
	r.Shuffle(len(data), func(i, j int) { data[i], data[j] = data[j], data[i] })
	return data
}

// highEntropyInput is a permutation of 1..1000: H is 1.
func highEntropyInput(r *rand.Rand) []int32 {
	data := make([]int32, 1000)
	for i := range data {
		data[i] = int32(i + 1)
	}
	r.Shuffle(len(data), func(i, j int) { data[i], data[j] = data[j], data[i] })
	return data
}
