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
    `github.com/gpukit/gcnabi/internal/abi`
    `github.com/gpukit/gcnabi/internal/regs`
)

// The scalar register budget is handed out in two monotonic phases:
// every user register first, then the system registers. Register-
// delivered ABI inputs consume 2 or 4 registers at a time from a fixed
// base, and there is no deallocation.

func (self *FunctionRegisterInfo) nextUserSGPR() int {
    if self.numSystemSGPRs != 0 {
        panic("gcnabi: system SGPRs must be added after user SGPRs")
    } else {
        return int(self.numUserSGPRs)
    }
}

// NextUserSGPR returns the scalar register the next user allocation
// will start at. It must not be called once the system phase has begun.
func (self *FunctionRegisterInfo) NextUserSGPR() regs.Reg {
    return regs.SGPR(self.nextUserSGPR())
}

// NextSystemSGPR returns the scalar register the next system allocation
// will consume.
func (self *FunctionRegisterInfo) NextSystemSGPR() regs.Reg {
    return regs.SGPR(int(self.numUserSGPRs + self.numSystemSGPRs))
}

func (self *FunctionRegisterInfo) addUserSGPRPair(k abi.ArgKind) regs.Reg {
    r := regs.SGPRPair(self.nextUserSGPR())
    self.args.Set(k, abi.MkReg(r))
    self.numUserSGPRs += 2
    return r
}

// AddPrivateSegmentBuffer claims the aligned 4-register group for the
// private segment resource descriptor.
func (self *FunctionRegisterInfo) AddPrivateSegmentBuffer() regs.Reg {
    r := regs.SGPRQuad(self.nextUserSGPR())
    self.args.Set(abi.PrivateSegmentBuffer, abi.MkReg(r))
    self.numUserSGPRs += 4
    return r
}

// AddDispatchPtr claims the register pair for the dispatch pointer.
func (self *FunctionRegisterInfo) AddDispatchPtr() regs.Reg {
    return self.addUserSGPRPair(abi.DispatchPtr)
}

// AddQueuePtr claims the register pair for the queue pointer.
func (self *FunctionRegisterInfo) AddQueuePtr() regs.Reg {
    return self.addUserSGPRPair(abi.QueuePtr)
}

// AddKernargSegmentPtr claims the register pair for the kernel argument
// segment base.
func (self *FunctionRegisterInfo) AddKernargSegmentPtr() regs.Reg {
    return self.addUserSGPRPair(abi.KernargSegmentPtr)
}

// AddDispatchID claims the register pair for the dispatch id.
func (self *FunctionRegisterInfo) AddDispatchID() regs.Reg {
    return self.addUserSGPRPair(abi.DispatchID)
}

// AddFlatScratchInit claims the register pair for the flat scratch
// init value.
func (self *FunctionRegisterInfo) AddFlatScratchInit() regs.Reg {
    return self.addUserSGPRPair(abi.FlatScratchInit)
}

// AddImplicitBufferPtr claims the register pair for the implicit buffer
// pointer.
func (self *FunctionRegisterInfo) AddImplicitBufferPtr() regs.Reg {
    return self.addUserSGPRPair(abi.ImplicitBufferPtr)
}

func (self *FunctionRegisterInfo) addSystemSGPR(k abi.ArgKind) regs.Reg {
    r := self.NextSystemSGPR()
    self.args.Set(k, abi.MkReg(r))
    self.numSystemSGPRs += 1
    return r
}

// AddWorkGroupIDX claims the system register for the X workgroup id.
func (self *FunctionRegisterInfo) AddWorkGroupIDX() regs.Reg {
    return self.addSystemSGPR(abi.WorkGroupIDX)
}

// AddWorkGroupIDY claims the system register for the Y workgroup id.
func (self *FunctionRegisterInfo) AddWorkGroupIDY() regs.Reg {
    return self.addSystemSGPR(abi.WorkGroupIDY)
}

// AddWorkGroupIDZ claims the system register for the Z workgroup id.
func (self *FunctionRegisterInfo) AddWorkGroupIDZ() regs.Reg {
    return self.addSystemSGPR(abi.WorkGroupIDZ)
}

// AddWorkGroupInfo claims the system register for the packed workgroup
// info word.
func (self *FunctionRegisterInfo) AddWorkGroupInfo() regs.Reg {
    return self.addSystemSGPR(abi.WorkGroupInfo)
}

// AddPrivateSegmentWaveByteOffset claims the system register for the
// per-wave scratch byte offset.
func (self *FunctionRegisterInfo) AddPrivateSegmentWaveByteOffset() regs.Reg {
    return self.addSystemSGPR(abi.PrivateSegmentWaveByteOffset)
}
