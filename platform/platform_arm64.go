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

//go:build arm64

package platform

import "golang.org/x/sys/cpu"

func init() {
	current = detect()
}

func detect() Info {
	info := baseInfo()

	// ASIMD is part of ARMv8-A; the check is kept for consistency.
	if cpu.ARM64.HasASIMD {
		info.Level = LevelNEON
		info.Width = 16
		info.Features = append(info.Features, "asimd")
	}
	if cpu.ARM64.HasSVE {
		// The SVE vector length is not exposed by x/sys/cpu; report the
		// architectural minimum.
		info.Level = LevelSVE
		info.Features = append(info.Features, "sve")
	}
	if cpu.ARM64.HasSVE2 {
		info.Features = append(info.Features, "sve2")
	}
	if cpu.ARM64.HasCRC32 {
		info.Features = append(info.Features, "crc32")
	}
	return info
}
