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

// Package platform probes the host CPU so benchmark output can be labelled
// with the instruction set and cache geometry it ran on.
package platform

import (
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// Level is the widest vector instruction set the host reports.
type Level int

const (
	// LevelScalar indicates no vector extension was detected.
	LevelScalar Level = iota

	// LevelSSE2 is the x86-64 baseline (128-bit).
	LevelSSE2

	// LevelAVX2 indicates AVX2 (256-bit).
	LevelAVX2

	// LevelAVX512 indicates AVX-512 Foundation (512-bit).
	LevelAVX512

	// LevelNEON indicates ARM Advanced SIMD (128-bit).
	LevelNEON

	// LevelSVE indicates the ARM Scalable Vector Extension.
	LevelSVE
)

// String returns a human-readable name for the level.
func (l Level) String() string {
	switch l {
	case LevelScalar:
		return "scalar"
	case LevelSSE2:
		return "sse2"
	case LevelAVX2:
		return "avx2"
	case LevelAVX512:
		return "avx512"
	case LevelNEON:
		return "neon"
	case LevelSVE:
		return "sve"
	default:
		return "unknown"
	}
}

// Info describes the host.
type Info struct {
	Arch  string
	OS    string
	CPUs  int
	Level Level

	// Width is the vector register width in bytes for Level.
	Width int

	// CacheLine is the cache line size x/sys/cpu pads to.
	CacheLine int

	// Features lists the detected extensions relevant to sorting kernels.
	Features []string
}

// String formats the probe as a single label, e.g.
// "linux/amd64 avx2 (16 cpus, 64B line)".
func (i Info) String() string {
	return fmt.Sprintf("%s/%s %s (%d cpus, %dB line)", i.OS, i.Arch, i.Level, i.CPUs, i.CacheLine)
}

// FeatureList joins the feature names with commas, or "none".
func (i Info) FeatureList() string {
	if len(i.Features) == 0 {
		return "none"
	}
	return strings.Join(i.Features, ",")
}

// current is filled by init() in the platform_*.go files.
var current Info

// Current returns the probe taken at program start.
func Current() Info {
	info := current
	info.Features = append([]string(nil), current.Features...)
	return info
}

func baseInfo() Info {
	return Info{
		Arch:      runtime.GOARCH,
		OS:        runtime.GOOS,
		CPUs:      runtime.NumCPU(),
		Level:     LevelScalar,
		Width:     16,
		CacheLine: int(unsafe.Sizeof(cpu.CacheLinePad{})),
	}
}
