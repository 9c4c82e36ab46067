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

//go:build amd64

package platform

import "golang.org/x/sys/cpu"

func init() {
	current = detect()
}

func detect() Info {
	info := baseInfo()

	// SSE2 is part of the amd64 baseline.
	info.Level = LevelSSE2
	info.Width = 16
	info.Features = append(info.Features, "sse2")

	if cpu.X86.HasSSE41 {
		info.Features = append(info.Features, "sse4.1")
	}
	if cpu.X86.HasPOPCNT {
		info.Features = append(info.Features, "popcnt")
	}
	if cpu.X86.HasAVX2 {
		info.Level = LevelAVX2
		info.Width = 32
		info.Features = append(info.Features, "avx2")
	}
	if cpu.X86.HasBMI2 {
		info.Features = append(info.Features, "bmi2")
	}
	if cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW {
		info.Level = LevelAVX512
		info.Width = 64
		info.Features = append(info.Features, "avx512f", "avx512bw")
	}
	if cpu.X86.HasAVX512VBMI2 {
		info.Features = append(info.Features, "avx512vbmi2")
	}
	return info
}
