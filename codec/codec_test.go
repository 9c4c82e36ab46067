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

package codec

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressionFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Compression
	}{
		{"data.txt", CompressionNone},
		{"data.bin.lz4", CompressionLZ4},
		{"DATA.ZST", CompressionZSTD},
		{"data.zstd", CompressionZSTD},
		{"noext", CompressionNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompressionFromPath(tt.path), tt.path)
	}
}

func TestResolveCompression(t *testing.T) {
	c, err := ResolveCompression("auto", "x.lz4")
	require.NoError(t, err)
	assert.Equal(t, CompressionLZ4, c)

	c, err = ResolveCompression("none", "x.lz4")
	require.NoError(t, err)
	assert.Equal(t, CompressionNone, c)

	c, err = ResolveCompression("zstd", "")
	require.NoError(t, err)
	assert.Equal(t, CompressionZSTD, c)

	_, err = ResolveCompression("brotli", "")
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	for _, f := range []Format{FormatText, FormatBinary} {
		got, err := ParseFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func TestReadTextWhitespace(t *testing.T) {
	got, err := ReadInts(strings.NewReader(" 5\n-3\t3  3\r\n2147483647 -2147483648\n"), FormatText)
	require.NoError(t, err)
	assert.Equal(t, []int32{5, -3, 3, 3, 2147483647, -2147483648}, got)
}

func TestReadTextErrors(t *testing.T) {
	_, err := ReadInts(strings.NewReader("1 2 x"), FormatText)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "value 2")

	_, err = ReadInts(strings.NewReader("2147483648"), FormatText)
	assert.Error(t, err)
}

func TestReadBinaryRagged(t *testing.T) {
	_, err := ReadInts(bytes.NewReader([]byte{1, 2, 3, 4, 5}), FormatBinary)
	assert.ErrorIs(t, err, ErrRaggedBinary)
}

func TestRoundTrip(t *testing.T) {
	data := []int32{10, -1, 7, 0, 2147483647, -2147483648, 7}
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		for _, f := range []Format{FormatText, FormatBinary} {
			t.Run(c.String()+"_"+f.String(), func(t *testing.T) {
				var buf bytes.Buffer
				w, err := NewWriter(&buf, c)
				require.NoError(t, err)
				require.NoError(t, WriteInts(w, data, f))
				require.NoError(t, w.Close())

				r, err := NewReader(&buf, c)
				require.NoError(t, err)
				defer r.Close()
				got, err := ReadInts(r, f)
				require.NoError(t, err)
				assert.Equal(t, data, got)
			})
		}
	}
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	data := []int32{3, 1, 2}
	for _, name := range []string{"a.txt", "b.txt.lz4", "c.bin.zst"} {
		path := filepath.Join(dir, name)
		c := CompressionFromPath(path)

		w, err := Create(path, c)
		require.NoError(t, err)
		require.NoError(t, WriteInts(w, data, FormatText))
		require.NoError(t, w.Close())

		r, err := Open(path, c)
		require.NoError(t, err)
		got, err := ReadInts(r, FormatText)
		require.NoError(t, err)
		require.NoError(t, r.Close())
		assert.Equal(t, data, got, name)
	}
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInts(&buf, nil, FormatBinary))
	require.NoError(t, WriteInts(&buf, nil, FormatText))
	assert.Zero(t, buf.Len())

	got, err := ReadInts(&buf, FormatText)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadRawAligned(t *testing.T) {
	src := make([]byte, 13)
	for i := range src {
		src[i] = byte(i)
	}
	// The source starts at an odd offset; the result must not.
	b, err := ReadRaw(bytes.NewReader(src[1:]))
	require.NoError(t, err)
	require.Len(t, b, 12)
	assert.Zero(t, uintptr(unsafe.Pointer(&b[0]))%4)
	assert.Equal(t, src[1:], b)
}
