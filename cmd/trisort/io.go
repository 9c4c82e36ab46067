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

package main

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/ajroetker/go-trisort/codec"
)

// ioFlags select how integers are read and written.
type ioFlags struct {
	format      string
	compression string
}

func (f *ioFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.format, "format", "f", codec.FormatText.String(), "data layout: text or binary (native int32)")
	fs.StringVarP(&f.compression, "compression", "c", "auto", "stream compression: auto (by extension), none, lz4, zstd")
}

func (f *ioFlags) parseFormat() (codec.Format, error) {
	format, err := codec.ParseFormat(f.format)
	if err != nil {
		return format, fmt.Errorf("--format: %w", err)
	}
	return format, nil
}

// compressionFor resolves the compression flag for path. An empty path is
// a standard stream, where auto means none.
func (f *ioFlags) compressionFor(path string) (codec.Compression, error) {
	c, err := codec.ResolveCompression(f.compression, path)
	if err != nil {
		return c, fmt.Errorf("--compression: %w", err)
	}
	return c, nil
}

// openInput opens path, or wraps stdin when path is "" or "-".
func openInput(path string, stdin io.Reader, c codec.Compression) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return codec.NewReader(stdin, c)
	}
	return codec.Open(path, c)
}

// createOutput creates path, or wraps stdout when path is "" or "-".
func createOutput(path string, stdout io.Writer, c codec.Compression) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return codec.NewWriter(stdout, c)
	}
	return codec.Create(path, c)
}

func displayName(path string) string {
	if path == "" {
		return "-"
	}
	return path
}
