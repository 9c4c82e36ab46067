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

package buffer

import (
	"errors"
	"sync"
)

// ErrBufferLocked is returned when a writable view is requested while
// another view is outstanding.
var ErrBufferLocked = errors.New("buffer: already exported")

// Memory exports a Go byte slice through the Exporter interface. It lets
// in-process hosts, such as a file loaded by the CLI, use the same
// validation path as foreign buffers.
type Memory struct {
	mu       sync.Mutex
	buf      []byte
	itemSize int
	ndim     int
	format   string
	readOnly bool
	exports  int
}

// NewMemory exports buf as a 1-D writable buffer of itemSize-byte elements
// with the given format code.
func NewMemory(buf []byte, itemSize int, format string) *Memory {
	return &Memory{buf: buf, itemSize: itemSize, ndim: 1, format: format}
}

// NewInt32Memory exports buf as native int32 elements.
func NewInt32Memory(buf []byte) *Memory {
	return NewMemory(buf, ItemSize, "i")
}

// SetShape overrides the dimension count and read-only flag reported by
// views. Intended for hosts that wrap strided or frozen storage.
func (m *Memory) SetShape(ndim int, readOnly bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ndim = ndim
	m.readOnly = readOnly
}

// Acquire implements Exporter.
func (m *Memory) Acquire(flags Flags) (*View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if flags&FlagWritable != 0 && m.exports > 0 {
		return nil, ErrBufferLocked
	}
	m.exports++

	v := &View{
		Buf:      m.buf,
		ItemSize: m.itemSize,
		Ndim:     m.ndim,
		ReadOnly: m.readOnly,
	}
	if flags&FlagFormat != 0 {
		v.Format = m.format
	}
	return v, nil
}

// Release implements Exporter.
func (m *Memory) Release(v *View) {
	if v == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.exports > 0 {
		m.exports--
	}
}

// Exports returns the number of views not yet released.
func (m *Memory) Exports() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exports
}

// Bytes returns the exported storage.
func (m *Memory) Bytes() []byte {
	return m.buf
}
