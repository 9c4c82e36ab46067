// Package trisort provides an adaptive in-place sort for signed integer slices.
//
// Before sorting, the dispatcher measures the normalized Shannon entropy of
// the input (how evenly the values spread over the distinct values present)
// and picks one of three strategies:
//
//   - H < 0.3: block merge sort. The slice is cut into blocks of 64
//     elements, each block is sorted in place and the runs are merged.
//     Low diversity makes the runs overlap heavily, so merging is cheap.
//   - 0.3 <= H < 0.7: the fallback introsort.
//   - H >= 0.7: bucket projection sort. Values are projected linearly onto
//     32 equal-width buckets over [min, max] and each bucket is sorted on
//     its own. Buckets stay small and cache resident.
//
// # Example Usage
//
//	import "github.com/ajroetker/go-trisort/trisort"
//
//	func Process(data []int32) error {
//	    return trisort.Sort(data) // in-place ascending sort
//	}
//
// For instrumentation and tuning, build an Engine:
//
//	eng, err := trisort.New[int32](trisort.WithBuckets(64))
//	report, err := eng.Sort(data)
//	fmt.Println(report.Strategy, report.Entropy)
//
// # Memory
//
// The entropy table and the bucket and block scratch buffers are reserved
// against an optional resource.Controller before they are allocated. When
// the reservation fails the call returns an error wrapping ErrAllocation
// and the slice is left unmodified.
//
// Sorting is not stable and a single call never spawns goroutines.
package trisort
