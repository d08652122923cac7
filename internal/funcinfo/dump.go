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

package funcinfo

import (
    `os`

    `github.com/davecgh/go-spew/spew`
    `github.com/gpukit/gcnabi/internal/opts`
)

var _DumpConfig = spew.ConfigState {
    Indent                : "    ",
    SortKeys              : true,
    DisablePointerMethods : true,
}

// Dump renders the full tracker state for debugging.
func (self *FunctionRegisterInfo) Dump() string {
    return _DumpConfig.Sdump(self)
}

// DebugDump prints the tracker state to stderr when enabled.
func (self *FunctionRegisterInfo) DebugDump() {
    if opts.DebugDump {
        os.Stderr.WriteString(self.Dump())
    }
}
