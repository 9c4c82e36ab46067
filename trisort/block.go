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

// runCursor is the unread part [pos, end) of one sorted block.
type runCursor struct {
	pos, end int
}

// runHeap is a min-heap of run cursors keyed by their head element.
// Heap operations are written out instead of using container/heap to
// avoid interface boxing per element.
type runHeap[T Integer] struct {
	data []T
	runs []runCursor
}

// less orders by head value, then by position so ties drain the
// leftmost run first.
func (h *runHeap[T]) less(i, j int) bool {
	a, b := h.data[h.runs[i].pos], h.data[h.runs[j].pos]
	if a != b {
		return a < b
	}
	return h.runs[i].pos < h.runs[j].pos
}

func (h *runHeap[T]) down(i int) {
	n := len(h.runs)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2

		if left < n && h.less(left, smallest) {
			smallest = left
		}
		if right < n && h.less(right, smallest) {
			smallest = right
		}
		if smallest == i {
			return
		}

		h.runs[i], h.runs[smallest] = h.runs[smallest], h.runs[i]
		i = smallest
	}
}

func (h *runHeap[T]) init() {
	for i := len(h.runs)/2 - 1; i >= 0; i-- {
		h.down(i)
	}
}

// mergeRuns merges the sorted blocks of data into tmp through runs, then
// copies tmp back. runs must have one entry per block.
func mergeRuns[T Integer](data, tmp []T, block int, runs []runCursor) {
	n := len(data)
	runs = runs[:0]
	for start := 0; start < n; start += block {
		runs = append(runs, runCursor{pos: start, end: min(start+block, n)})
	}

	h := runHeap[T]{data: data, runs: runs}
	h.init()

	for k := 0; len(h.runs) > 0; k++ {
		top := &h.runs[0]
		tmp[k] = data[top.pos]
		top.pos++
		if top.pos == top.end {
			last := len(h.runs) - 1
			h.runs[0] = h.runs[last]
			h.runs = h.runs[:last]
		}
		if len(h.runs) > 1 {
			h.down(0)
		}
	}

	copy(data, tmp)
}

// mergeTwoRuns merges [0, block) against [block, n) with two pointers.
// Only a full merge when [block, n) is itself one sorted run.
func mergeTwoRuns[T Integer](data, tmp []T, block int) {
	n := len(data)
	i, j, k := 0, block, 0
	for i < block && j < n {
		if data[i] <= data[j] {
			tmp[k] = data[i]
			i++
		} else {
			tmp[k] = data[j]
			j++
		}
		k++
	}
	k += copy(tmp[k:], data[i:block])
	copy(tmp[k:], data[j:])
	copy(data, tmp)
}

// blockSort is the body of BlockSort. rep may not be nil.
func blockSort[T Integer](data []T, block int, mode MergeMode, mem *resource.Controller, rep *Report) error {
	if block < 1 {
		return ErrInvalidBlockSize
	}

	n := len(data)
	if block >= n || n <= 2*block {
		FallbackSort(data)
		rep.Delegated = true
		return nil
	}

	blocks := (n + block - 1) / block
	heapLen := 0
	if mode == MergeKWay {
		heapLen = blocks
	}

	// Scratch is reserved before the first block is touched, so a failure
	// leaves data as it was.
	bytes := sizeOf[T](n) + sizeOf[runCursor](heapLen)
	release, err := reserve(mem, "block merge buffer", bytes)
	if err != nil {
		return err
	}
	defer release()
	rep.ScratchBytes = bytes
	rep.Blocks = blocks

	tmp, err := makeScratch[T]("block merge buffer", n)
	if err != nil {
		return err
	}
	runs, err := makeScratch[runCursor]("block run heap", heapLen)
	if err != nil {
		return err
	}

	for start := 0; start < n; start += block {
		FallbackSort(data[start:min(start+block, n)])
	}

	switch mode {
	case MergeTwoRun:
		mergeTwoRuns(data, tmp, block)
	default:
		mergeRuns(data, tmp, block, runs)
	}
	return nil
}
