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

import "math/bits"

// Thresholds for the fallback introsort.
const (
	// insertionThreshold: use insertion sort for slices this size or smaller.
	insertionThreshold = 16

	// sampleThreshold: below this size the pivot is the median of three.
	sampleThreshold = 8
)

// FallbackSort sorts data in place in ascending order.
//
// It is an introsort variant that combines:
//   - Insertion sort for small subslices
//   - Quicksort with a sampled median pivot and 3-way partitioning, so
//     runs of equal values are settled in one pass
//   - Heapsort fallback once the recursion budget is spent, which bounds
//     the worst case at O(n log n)
//
// FallbackSort does not allocate and is not stable.
func FallbackSort[T Integer](data []T) {
	n := len(data)
	if n <= 1 {
		return
	}

	// Max recursion depth: 2 * (floor(log2(n)) + 1)
	introsort(data, 2*bits.Len(uint(n)))
}

// introsort recurses into the smaller partition and loops on the larger
// one, so stack depth stays logarithmic.
func introsort[T Integer](data []T, depthLimit int) {
	for len(data) > insertionThreshold {
		if depthLimit == 0 {
			heapSort(data)
			return
		}
		depthLimit--

		pivot := pivotSampled(data)
		lt, gt := partition3Way(data, pivot)

		if lt < len(data)-gt {
			introsort(data[:lt], depthLimit)
			data = data[gt:]
		} else {
			introsort(data[gt:], depthLimit)
			data = data[:lt]
		}
	}
	insertionSort(data)
}

func insertionSort[T Integer](data []T) {
	for i := 1; i < len(data); i++ {
		key := data[i]
		j := i - 1
		for j >= 0 && data[j] > key {
			data[j+1] = data[j]
			j--
		}
		data[j+1] = key
	}
}

func heapSort[T Integer](data []T) {
	n := len(data)

	// Build max-heap
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(data, i, n)
	}

	// Extract elements
	for i := n - 1; i > 0; i-- {
		data[0], data[i] = data[i], data[0]
		siftDown(data, 0, i)
	}
}

func siftDown[T Integer](data []T, i, n int) {
	for {
		largest := i
		left := 2*i + 1
		right := 2*i + 2

		if left < n && data[left] > data[largest] {
			largest = left
		}
		if right < n && data[right] > data[largest] {
			largest = right
		}
		if largest == i {
			return
		}

		data[i], data[largest] = data[largest], data[i]
		i = largest
	}
}

// medianOf3 returns the median of a, b and c.
func medianOf3[T Integer](a, b, c T) T {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b = c
		if a > b {
			b = a
		}
	}
	return b
}

// pivotSampled picks the median of five evenly spaced samples, or of the
// first, middle and last element for short slices.
func pivotSampled[T Integer](data []T) T {
	n := len(data)
	if n < sampleThreshold {
		return medianOf3(data[0], data[n/2], data[n-1])
	}

	samples := [5]T{
		data[0],
		data[n/4],
		data[n/2],
		data[3*n/4],
		data[n-1],
	}
	insertionSort(samples[:])
	return samples[2]
}

// partition3Way rearranges data into [< pivot | == pivot | > pivot] and
// returns the bounds lt, gt of the middle section (Dutch National Flag).
func partition3Way[T Integer](data []T, pivot T) (int, int) {
	lt := 0
	gt := len(data)
	i := 0

	for i < gt {
		if data[i] < pivot {
			data[lt], data[i] = data[i], data[lt]
			lt++
			i++
		} else if data[i] > pivot {
			gt--
			data[i], data[gt] = data[gt], data[i]
		} else {
			i++
		}
	}

	return lt, gt
}
