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

// Package gcnabi tracks, per compiled function, which implicit and
// explicit kernel inputs must be materialized and where each one lives,
// how many scalar registers the ABI has consumed, the wavefront
// occupancy bound, and the packing of scalar spills into vector
// register lanes. It also externalizes that state as a textual snapshot
// and rehydrates it.
package gcnabi

import (
    `github.com/gpukit/gcnabi/internal/abi`
    `github.com/gpukit/gcnabi/internal/funcinfo`
    `github.com/gpukit/gcnabi/internal/regs`
    `github.com/gpukit/gcnabi/internal/snapshot`
    `github.com/gpukit/gcnabi/internal/target`
)

type (
    ArgKind        = abi.ArgKind
    ArgDescriptor  = abi.ArgDescriptor
    Attributes     = abi.Attributes
    CallConv       = abi.CallConv
    Function       = abi.Function
    FunctionInfo   = funcinfo.FunctionRegisterInfo
    LiveInMarker   = funcinfo.LiveInMarker
    MachineFrame   = funcinfo.MachineFrame
    Reg            = regs.Reg
    RegisterPool   = funcinfo.RegisterPool
    SpillHost      = funcinfo.SpillHost
    SpilledReg     = funcinfo.SpilledReg
    SpillVGPR      = funcinfo.SpillVGPR
    StackClass     = funcinfo.StackClass
    Subtarget      = target.Subtarget
    SubtargetCache = target.Cache
    ParseError     = snapshot.ParseError
    VGPRScavenger  = funcinfo.VGPRScavenger
)

const (
    CallFunc       = abi.CallFunc
    CallKernel     = abi.CallKernel
    CallSpirKernel = abi.CallSpirKernel
    CallPixel      = abi.CallPixel
    CallVertex     = abi.CallVertex
    CallGeometry   = abi.CallGeometry
    CallHull       = abi.CallHull
    CallCompute    = abi.CallCompute
)

const (
    PrivateSegmentBuffer         = abi.PrivateSegmentBuffer
    DispatchPtr                  = abi.DispatchPtr
    QueuePtr                     = abi.QueuePtr
    KernargSegmentPtr            = abi.KernargSegmentPtr
    DispatchID                   = abi.DispatchID
    FlatScratchInit              = abi.FlatScratchInit
    PrivateSegmentSize           = abi.PrivateSegmentSize
    WorkGroupIDX                 = abi.WorkGroupIDX
    WorkGroupIDY                 = abi.WorkGroupIDY
    WorkGroupIDZ                 = abi.WorkGroupIDZ
    WorkGroupInfo                = abi.WorkGroupInfo
    PrivateSegmentWaveByteOffset = abi.PrivateSegmentWaveByteOffset
    ImplicitArgPtr               = abi.ImplicitArgPtr
    ImplicitBufferPtr            = abi.ImplicitBufferPtr
    WorkItemIDX                  = abi.WorkItemIDX
    WorkItemIDY                  = abi.WorkItemIDY
    WorkItemIDZ                  = abi.WorkItemIDZ
)

const (
    StackDefault   = funcinfo.StackDefault
    StackSGPRSpill = funcinfo.StackSGPRSpill
)

// NoReg is the absent register.
const NoReg = regs.NoReg

// SGPR returns the i-th 32-bit scalar register.
func SGPR(i int) Reg {
    return regs.SGPR(i)
}

// SGPRPair returns the even-aligned 64-bit scalar group starting at i.
func SGPRPair(i int) Reg {
    return regs.SGPRPair(i)
}

// SGPRQuad returns the quad-aligned 128-bit scalar group starting at i.
func SGPRQuad(i int) Reg {
    return regs.SGPRQuad(i)
}

// VGPR returns the i-th 32-bit vector register.
func VGPR(i int) Reg {
    return regs.VGPR(i)
}

// ParseReg resolves a register name produced by Reg.String.
func ParseReg(name string) (Reg, bool) {
    return regs.Parse(name)
}

// NewRegisterPool builds a scavenger pool that hands out rr in order.
func NewRegisterPool(rr ...Reg) *RegisterPool {
    return funcinfo.NewRegisterPool(rr...)
}

// NewVGPRPool builds a scavenger pool over the first n vector registers.
func NewVGPRPool(n int) *RegisterPool {
    return funcinfo.NewVGPRPool(n)
}

// NewFunctionInfo constructs the tracker for one function before its
// code generation begins.
func NewFunctionInfo(fn *Function, st *Subtarget, frame *MachineFrame) *FunctionInfo {
    return funcinfo.NewFunctionRegisterInfo(fn, st, frame)
}

// NewMachineFrame creates an empty stack frame arena.
func NewMachineFrame() *MachineFrame {
    return funcinfo.NewMachineFrame()
}

// NewSubtargetCache creates a process-wide subtarget cache.
func NewSubtargetCache() *SubtargetCache {
    return target.NewCache()
}

// Serialize externalizes the tracker state as a snapshot document.
func Serialize(fi *FunctionInfo) ([]byte, error) {
    return snapshot.Serialize(fi)
}

// Parse rehydrates tracker state from a snapshot document.
func Parse(data []byte, st *Subtarget) (*FunctionInfo, error) {
    return snapshot.Parse(data, st)
}
