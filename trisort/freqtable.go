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

// slot is one entry of the open addressing frequency table.
type slot[T Integer] struct {
	key   T
	count int
	used  bool
}

// frequencyTable counts occurrences of each value with linear probing.
// Capacity is always a power of two so probes wrap with a mask.
type frequencyTable[T Integer] struct {
	slots    []slot[T]
	mask     uint64
	distinct int
}

// tableCapacity returns the smallest power of two m with m >= 1.3*n.
func tableCapacity(n int) int {
	m := 1
	for float64(m) < float64(n)*tableLoadFactor {
		m <<= 1
	}
	return m
}

func newFrequencyTable[T Integer](slots []slot[T]) *frequencyTable[T] {
	return &frequencyTable[T]{
		slots: slots,
		mask:  uint64(len(slots) - 1),
	}
}

// add increments the count of v, inserting it on first sight.
// The home slot is the low-order bits of v's two's complement form.
func (t *frequencyTable[T]) add(v T) {
	h := uint64(v) & t.mask
	for t.slots[h].used && t.slots[h].key != v {
		h = (h + 1) & t.mask
	}
	s := &t.slots[h]
	if s.used {
		s.count++
		return
	}
	s.used = true
	s.key = v
	s.count = 1
	t.distinct++
}
