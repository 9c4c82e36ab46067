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

// projection maps a value onto a bucket index by its linear position in
// [lo, hi]. Both passes of the bucket sort go through index, so counting
// and placement agree.
type projection[T Integer] struct {
	lo    T
	scale float64
	last  int
}

// newProjection returns the projection for buckets buckets over [lo, hi].
// scale = (B-1) / (hi-lo+1); the +1 keeps hi itself below bucket B-1.
func newProjection[T Integer](lo, hi T, buckets int) projection[T] {
	span := float64(uint64(hi)-uint64(lo)) + 1
	return projection[T]{
		lo:    lo,
		scale: float64(buckets-1) / span,
		last:  buckets - 1,
	}
}

// index truncates (v-lo)*scale. The difference is taken on the unsigned
// two's complement form, which is exact for v >= lo at any width.
func (p projection[T]) index(v T) int {
	idx := int(float64(uint64(v)-uint64(p.lo)) * p.scale)
	return min(idx, p.last)
}

// exclusivePrefixSum writes the running totals of counts into offsets,
// offsets[0] = 0 and offsets[len(counts)] = sum(counts).
func exclusivePrefixSum(counts, offsets []int) {
	carry := 0
	for b, c := range counts {
		offsets[b] = carry
		carry += c
	}
	offsets[len(counts)] = carry
}

// bucketScratch holds the transient state of one bucket sort call.
type bucketScratch[T Integer] struct {
	counts  []int
	offsets []int
	next    []int
	buf     []T
}

func bucketScratchBytes[T Integer](n, buckets int) int64 {
	return sizeOf[int](3*buckets+1) + sizeOf[T](n)
}

func newBucketScratch[T Integer](n, buckets int) (*bucketScratch[T], error) {
	ints, err := makeScratch[int]("bucket counters", 3*buckets+1)
	if err != nil {
		return nil, err
	}
	buf, err := makeScratch[T]("bucket buffer", n)
	if err != nil {
		return nil, err
	}
	return &bucketScratch[T]{
		counts:  ints[:buckets],
		offsets: ints[buckets : 2*buckets+1],
		next:    ints[2*buckets+1:],
		buf:     buf,
	}, nil
}

// bucketSort is the body of BucketSort. rep may not be nil.
func bucketSort[T Integer](data []T, buckets int, mem *resource.Controller, rep *Report) error {
	n := len(data)
	if n < MinBucketInput || buckets < 2 {
		FallbackSort(data)
		rep.Delegated = true
		return nil
	}

	lo, hi := data[0], data[0]
	for _, v := range data[1:] {
		if v < lo {
			lo = v
		} else if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return nil
	}

	bytes := bucketScratchBytes[T](n, buckets)
	release, err := reserve(mem, "bucket partition", bytes)
	if err != nil {
		return err
	}
	defer release()
	rep.ScratchBytes = bytes

	s, err := newBucketScratch[T](n, buckets)
	if err != nil {
		return err
	}
	proj := newProjection(lo, hi, buckets)

	for _, v := range data {
		s.counts[proj.index(v)]++
	}

	exclusivePrefixSum(s.counts, s.offsets)
	copy(s.next, s.offsets[:buckets])

	// Distribution keeps the original order inside each bucket.
	for _, v := range data {
		b := proj.index(v)
		s.buf[s.next[b]] = v
		s.next[b]++
	}

	for b := range buckets {
		size := s.counts[b]
		if size == 0 {
			continue
		}
		rep.Buckets++
		rep.LargestBucket = max(rep.LargestBucket, size)
		if size > 1 {
			FallbackSort(s.buf[s.offsets[b]:s.offsets[b+1]])
		}
	}

	copy(data, s.buf)
	return nil
}
