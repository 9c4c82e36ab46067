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
	"math"

	"github.com/ajroetker/go-trisort/resource"
)

// entropyNorm returns the normalized entropy of data and the number of
// distinct values. Slots are visited in table order, so a given input
// always produces the same floating point result.
func entropyNorm[T Integer](data []T, mem *resource.Controller) (float64, int, error) {
	n := len(data)
	if n == 0 {
		return 0, 0, nil
	}

	m := tableCapacity(n)
	release, err := reserve(mem, "frequency table", sizeOf[slot[T]](m))
	if err != nil {
		return 0, 0, err
	}
	defer release()

	slots, err := makeScratch[slot[T]]("frequency table", m)
	if err != nil {
		return 0, 0, err
	}
	tbl := newFrequencyTable(slots)
	for _, v := range data {
		tbl.add(v)
	}

	// A single distinct value has zero diversity; log2(1) would divide by zero.
	if tbl.distinct < 2 {
		return 0, tbl.distinct, nil
	}

	h, invN := 0.0, 1.0/float64(n)
	for i := range tbl.slots {
		if !tbl.slots[i].used {
			continue
		}
		p := float64(tbl.slots[i].count) * invN
		h -= p * math.Log2(p)
	}

	norm := h / math.Log2(float64(tbl.distinct))
	return min(max(norm, 0), 1), tbl.distinct, nil
}
