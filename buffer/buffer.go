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

// Package buffer binds host-owned memory to the trisort engine.
//
// A host exposes its storage through the Exporter interface, modelled on
// buffer protocols such as Python's: the host lends a View of raw bytes
// with a shape description and gets it back through Release. SortInPlace
// validates the view, reinterprets the bytes as []int32 without copying,
// runs the dispatcher and always returns the view.
package buffer

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/ajroetker/go-trisort/trisort"
)

// ItemSize is the engine's native element width in bytes (int32).
const ItemSize = 4

// Flags describe what the consumer needs from an acquired view.
type Flags uint8

const (
	// FlagWritable requests a mutable view.
	FlagWritable Flags = 1 << iota

	// FlagFormat requests that View.Format be filled in.
	FlagFormat
)

// View is a borrowed window onto host memory.
type View struct {
	// Buf holds the elements in native byte order.
	Buf []byte

	// ItemSize is the width of one element in bytes.
	ItemSize int

	// Ndim is the number of dimensions; only 1 is accepted.
	Ndim int

	// Format is a struct-module style type code such as "i" or "<i".
	// Empty means unspecified.
	Format string

	ReadOnly bool
}

// Exporter is implemented by host objects that can lend their storage.
type Exporter interface {
	// Acquire returns a view of the object's memory. The view stays valid
	// until it is passed to Release.
	Acquire(flags Flags) (*View, error)

	// Release returns a view obtained from Acquire.
	Release(v *View)
}

// ErrInvalidShape is matched by every ShapeError.
var ErrInvalidShape = errors.New("buffer: invalid shape")

// ShapeError reports a view the engine cannot sort. It is returned before
// the engine runs, so the buffer is never partially modified.
type ShapeError struct {
	Reason   string
	Ndim     int
	ItemSize int
	Format   string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("buffer: need 1-D writable int32 buffer: %s (ndim=%d itemsize=%d format=%q)",
		e.Reason, e.Ndim, e.ItemSize, e.Format)
}

// Is makes errors.Is(err, ErrInvalidShape) hold for every ShapeError.
func (e *ShapeError) Is(target error) bool { return target == ErrInvalidShape }

// SortInPlace sorts the int32 elements of obj in place with a trisort
// engine built from opts. The acquired view is released on every path.
func SortInPlace(obj Exporter, opts ...trisort.Option) error {
	_, err := SortInPlaceReport(obj, opts...)
	return err
}

// SortInPlaceReport is SortInPlace that also returns the dispatcher's report.
func SortInPlaceReport(obj Exporter, opts ...trisort.Option) (trisort.Report, error) {
	eng, err := trisort.New[int32](opts...)
	if err != nil {
		return trisort.Report{}, err
	}

	view, err := obj.Acquire(FlagWritable | FlagFormat)
	if err != nil {
		return trisort.Report{}, fmt.Errorf("buffer: acquire: %w", err)
	}
	defer obj.Release(view)

	data, err := Int32s(view)
	if err != nil {
		return trisort.Report{}, err
	}
	return eng.Sort(data)
}

// Int32s validates v and returns its bytes viewed as []int32. The slice
// aliases v.Buf.
func Int32s(v *View) ([]int32, error) {
	shapeErr := func(reason string) error {
		return &ShapeError{Reason: reason, Ndim: v.Ndim, ItemSize: v.ItemSize, Format: v.Format}
	}

	switch {
	case v.Ndim != 1:
		return nil, shapeErr("not one-dimensional")
	case v.ReadOnly:
		return nil, shapeErr("read-only")
	case v.ItemSize != ItemSize:
		return nil, shapeErr("element width mismatch")
	case !signedFormat(v.Format):
		return nil, shapeErr("not a signed integer format")
	case len(v.Buf)%ItemSize != 0:
		return nil, shapeErr("length not a multiple of the element width")
	}

	if len(v.Buf) == 0 {
		return nil, nil
	}
	ptr := unsafe.Pointer(&v.Buf[0])
	if uintptr(ptr)%unsafe.Alignof(int32(0)) != 0 {
		return nil, shapeErr("misaligned")
	}
	return unsafe.Slice((*int32)(ptr), len(v.Buf)/ItemSize), nil
}

// signedFormat accepts an empty format or a single signed integer code
// with an optional byte-order prefix. The width is checked separately.
func signedFormat(f string) bool {
	if f == "" {
		return true
	}
	f = strings.TrimLeft(f, "@=<>!")
	switch f {
	case "b", "h", "i", "l", "q", "n":
		return true
	}
	return false
}
