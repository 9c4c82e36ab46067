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
	"fmt"
)

var (
	// ErrAllocation is matched by every scratch allocation failure.
	ErrAllocation = errors.New("trisort: scratch allocation failed")

	// ErrInvalidBlockSize is returned by BlockSort for block sizes below 1.
	ErrInvalidBlockSize = errors.New("trisort: block size must be positive")

	// ErrInvalidPolicy is returned for unusable policies and options.
	ErrInvalidPolicy = errors.New("trisort: invalid policy")

	// ErrUnknownStrategy is returned by ParseStrategy.
	ErrUnknownStrategy = errors.New("trisort: unknown strategy")
)

// AllocationError reports a transient structure that could not be reserved
// or allocated. The slice being sorted is left unmodified.
//
// The underlying cause (usually resource.ErrMemoryLimitExceeded) can be
// accessed via errors.Unwrap.
type AllocationError struct {
	// What names the structure, e.g. "frequency table".
	What  string
	Bytes int64
	cause error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("trisort: allocating %s (%d bytes): %v", e.What, e.Bytes, e.cause)
}

func (e *AllocationError) Unwrap() error { return e.cause }

// Is makes errors.Is(err, ErrAllocation) hold for every AllocationError.
func (e *AllocationError) Is(target error) bool { return target == ErrAllocation }
