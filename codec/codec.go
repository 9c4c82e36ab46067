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

// Package codec reads and writes int32 arrays for the trisort command.
//
// Two layouts are supported: whitespace separated decimal text, and raw
// elements in native byte order (little-endian on amd64 and arm64). Either
// may be wrapped in an LZ4 or Zstandard stream.
package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unsafe"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Format is the layout of the integers in a stream.
type Format uint8

const (
	// FormatText is decimal integers separated by whitespace.
	FormatText Format = iota
	// FormatBinary is raw int32 elements in native byte order.
	FormatBinary
)

// String returns the flag spelling of the format.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// ParseFormat is the inverse of Format.String.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "":
		return FormatText, nil
	case "binary", "raw":
		return FormatBinary, nil
	}
	return FormatText, fmt.Errorf("codec: unknown format %q", s)
}

// Compression defines the stream compression.
type Compression uint8

const (
	// CompressionNone indicates no compression.
	CompressionNone Compression = 0
	// CompressionLZ4 indicates an LZ4 frame stream (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD indicates a Zstandard stream (better ratio).
	CompressionZSTD Compression = 2
)

// String returns the flag spelling of the compression.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return "unknown"
	}
}

// CompressionFromPath infers the compression from a file extension.
func CompressionFromPath(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lz4":
		return CompressionLZ4
	case ".zst", ".zstd":
		return CompressionZSTD
	default:
		return CompressionNone
	}
}

// ResolveCompression parses a flag value. "auto" infers from path.
func ResolveCompression(flag, path string) (Compression, error) {
	switch strings.ToLower(flag) {
	case "auto", "":
		return CompressionFromPath(path), nil
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd", "zst":
		return CompressionZSTD, nil
	}
	return CompressionNone, fmt.Errorf("codec: unknown compression %q", flag)
}

// NewReader wraps r with a decompressor for c.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case CompressionZSTD:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("codec: zstd reader: %w", err)
		}
		return dec.IOReadCloser(), nil
	}
	return nil, fmt.Errorf("codec: unknown compression %d", c)
}

// NewWriter wraps w with a compressor for c. Close flushes the stream but
// does not close w.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	case CompressionZSTD:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("codec: zstd writer: %w", err)
		}
		return enc, nil
	}
	return nil, fmt.Errorf("codec: unknown compression %d", c)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// ErrRaggedBinary is returned when a binary stream is not a whole number
// of elements.
var ErrRaggedBinary = errors.New("codec: binary length is not a multiple of 4")

// ReadRaw reads a whole binary stream and checks it holds whole elements.
// The returned bytes are aligned for int32 access.
func ReadRaw(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrRaggedBinary, len(b))
	}
	if len(b) > 0 && uintptr(unsafe.Pointer(&b[0]))%4 != 0 {
		words := make([]int32, len(b)/4)
		aligned := unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), len(b))
		copy(aligned, b)
		b = aligned
	}
	return b, nil
}

// ReadInts decodes a whole stream.
func ReadInts(r io.Reader, f Format) ([]int32, error) {
	switch f {
	case FormatText:
		return readText(r)
	case FormatBinary:
		b, err := ReadRaw(r)
		if err != nil {
			return nil, err
		}
		out := make([]int32, len(b)/4)
		if len(out) > 0 {
			copy(unsafe.Slice((*byte)(unsafe.Pointer(&out[0])), len(b)), b)
		}
		return out, nil
	}
	return nil, fmt.Errorf("codec: unknown format %d", f)
}

func readText(r io.Reader) ([]int32, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	var out []int32
	for sc.Scan() {
		v, err := strconv.ParseInt(sc.Text(), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("codec: value %d: %w", len(out), err)
		}
		out = append(out, int32(v))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// WriteInts encodes data to w.
func WriteInts(w io.Writer, data []int32, f Format) error {
	switch f {
	case FormatText:
		bw := bufio.NewWriter(w)
		var scratch [16]byte
		for _, v := range data {
			line := strconv.AppendInt(scratch[:0], int64(v), 10)
			line = append(line, '\n')
			if _, err := bw.Write(line); err != nil {
				return err
			}
		}
		return bw.Flush()
	case FormatBinary:
		if len(data) == 0 {
			return nil
		}
		_, err := w.Write(unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4))
		return err
	}
	return fmt.Errorf("codec: unknown format %d", f)
}

// fileReader closes the decompressor and then the file.
type fileReader struct {
	io.ReadCloser
	f *os.File
}

func (r *fileReader) Close() error {
	return errors.Join(r.ReadCloser.Close(), r.f.Close())
}

// Open opens path and wraps it with a decompressor for c.
func Open(path string, c Compression) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	rc, err := NewReader(f, c)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &fileReader{ReadCloser: rc, f: f}, nil
}

// fileWriter flushes the compressor and then closes the file.
type fileWriter struct {
	io.WriteCloser
	f *os.File
}

func (w *fileWriter) Close() error {
	return errors.Join(w.WriteCloser.Close(), w.f.Close())
}

// Create creates path and wraps it with a compressor for c.
func Create(path string, c Compression) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	wc, err := NewWriter(f, c)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &fileWriter{WriteCloser: wc, f: f}, nil
}
