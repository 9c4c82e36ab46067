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

import "os"

// StrategyEnv is the environment variable read by StrategyFromEnv.
const StrategyEnv = "TRISORT_STRATEGY"

// StrategyFromEnv returns the strategy named by TRISORT_STRATEGY.
// Unset or empty means StrategyAuto.
// This is useful for benchmarking and debugging a single sorter.
func StrategyFromEnv() (Strategy, error) {
	return ParseStrategy(os.Getenv(StrategyEnv))
}
