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
    `github.com/gpukit/gcnabi/internal/regs`
)

// Field setters used when rehydrating tracker state from a snapshot and
// by hosts that assign the scratch registers late. Spill-lane state is
// deliberately not settable: it is re-derived fresh after every reload.

func (self *FunctionRegisterInfo) SetName(name string) {
    self.name = name
}

func (self *FunctionRegisterInfo) SetExplicitKernArgSize(size uint64) {
    self.explicitKernArgSize = size
}

func (self *FunctionRegisterInfo) SetMaxKernArgAlign(align uint32) {
    self.maxKernArgAlign = align
}

func (self *FunctionRegisterInfo) SetLDSSize(size uint32) {
    self.ldsSize = size
}

func (self *FunctionRegisterInfo) SetEntryFunction(v bool) {
    self.isEntry = v
}

func (self *FunctionRegisterInfo) SetNoSignedZerosFPMath(v bool) {
    self.noSignedZerosFPMath = v
}

func (self *FunctionRegisterInfo) SetMemoryBound(v bool) {
    self.memoryBound = v
}

func (self *FunctionRegisterInfo) SetWaveLimiter(v bool) {
    self.waveLimiter = v
}

func (self *FunctionRegisterInfo) SetScratchRSrcReg(r regs.Reg) {
    self.scratchRSrcReg = r
}

func (self *FunctionRegisterInfo) SetScratchWaveOffsetReg(r regs.Reg) {
    self.scratchWaveOffsetReg = r
}

func (self *FunctionRegisterInfo) SetFrameOffsetReg(r regs.Reg) {
    self.frameOffsetReg = r
}

func (self *FunctionRegisterInfo) SetStackPtrOffsetReg(r regs.Reg) {
    self.stackPtrOffsetReg = r
}
