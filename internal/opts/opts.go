/*
 * Copyright 2025 GPUKit Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package opts

import (
	"os"
	"strconv"
)

var (
	// NoSGPRToVGPRSpills disables packing scalar spills into vector
	// lanes, forcing every SGPR spill to ordinary scratch memory.
	NoSGPRToVGPRSpills = boolOrDefault("GCNABI_NO_SGPR_TO_VGPR_SPILLS", false)

	// DebugDump enables spew dumps of per-function tracker state.
	DebugDump = boolOrDefault("GCNABI_DEBUG_DUMP", false)
)

func boolOrDefault(key string, def bool) bool {
	if env := os.Getenv(key); env == "" {
		return def
	} else if val, err := strconv.ParseBool(env); err != nil {
		panic("gcnabi: invalid value for " + key)
	} else {
		return val
	}
}
