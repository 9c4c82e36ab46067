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
	"runtime"
	"unsafe"

	"github.com/ajroetker/go-trisort/resource"
)

// reserve books bytes against mem. The returned release func must be
// called exactly once, typically deferred.
func reserve(mem *resource.Controller, what string, bytes int64) (func(), error) {
	if err := mem.AcquireMemory(bytes); err != nil {
		return nil, &AllocationError{What: what, Bytes: bytes, cause: err}
	}
	return func() { mem.ReleaseMemory(bytes) }, nil
}

// sizeOf returns the bytes needed by n elements of S.
func sizeOf[S any](n int) int64 {
	var zero S
	return int64(n) * int64(unsafe.Sizeof(zero))
}

// makeScratch allocates a slice of n elements, turning the runtime's
// makeslice panic for impossible lengths into an AllocationError.
func makeScratch[S any](what string, n int) (s []S, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(runtime.Error)
			if !ok {
				panic(r)
			}
			s, err = nil, &AllocationError{What: what, Bytes: sizeOf[S](n), cause: rerr}
		}
	}()
	return make([]S, n), nil
}
