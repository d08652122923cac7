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
    `github.com/gpukit/gcnabi/internal/target`
)

// FunctionRegisterInfo is the per-function kernel ABI and register
// budget tracker. One instance is created before code generation of a
// function begins and owns all of its ABI input placement, scalar
// register accounting, occupancy bound and scalar-to-vector spill
// state.
type FunctionRegisterInfo struct {
    name string
    st   *target.Subtarget
    cc   abi.CallConv

    /* ABI input placement */
    args  abi.ArgumentTable
    needs [abi.NumArgKinds]bool

    /* scalar register budget */
    numUserSGPRs   uint32
    numSystemSGPRs uint32

    /* fixed scratch handling registers */
    scratchRSrcReg       regs.Reg
    scratchWaveOffsetReg regs.Reg
    frameOffsetReg       regs.Reg
    stackPtrOffsetReg    regs.Reg

    /* kernel argument segment */
    explicitKernArgSize uint64
    maxKernArgAlign     uint32

    /* memory footprints and attribute overrides */
    ldsSize                uint32
    gdsSize                uint32
    gitPtrHigh             uint32
    highBitsOf32BitAddress uint32

    /* wave budget */
    occupancy      uint32
    minWavesPerEU  uint32
    maxWavesPerEU  uint32

    /* declared mode flags */
    isEntry             bool
    noSignedZerosFPMath bool
    memoryBound         bool
    waveLimiter         bool
    psInputAddr         uint32

    /* scalar-to-vector spill state */
    spills            map[int][]SpilledReg
    spillVGPRs        []SpillVGPR
    numVGPRSpillLanes int
}

// NewFunctionRegisterInfo derives the tracker state from the declared
// ABI of fn, the subtarget facts and the current frame contents. It is
// pure computation and never fails: malformed attributes fall back to
// their defaults.
func NewFunctionRegisterInfo(fn *abi.Function, st *target.Subtarget, frame *MachineFrame) *FunctionRegisterInfo {
    self := newTracker(st)
    self.name = fn.Name
    self.cc = fn.CallConv
    self.isEntry = fn.CallConv.IsEntry()

    /* declared facts */
    self.explicitKernArgSize = fn.ExplicitKernArgSize
    self.maxKernArgAlign = fn.KernArgAlign
    self.ldsSize = fn.LDSSize
    self.noSignedZerosFPMath = fn.NoSignedZerosFPMath
    self.memoryBound = fn.MemoryBound
    self.waveLimiter = fn.WaveLimiter

    /* wave budget, narrowed by the declared bound and the LDS footprint */
    self.minWavesPerEU, self.maxWavesPerEU = fn.Attrs.IntegerPair("amdgpu-waves-per-eu", 1, st.MaxWavesPerEU)
    self.occupancy = st.MaxWavesPerEU
    self.limitOccupancy()

    /* calling-convention defaults */
    if fn.CallConv.IsKernel() {
        if fn.NumArgs != 0 {
            self.needs[abi.KernargSegmentPtr] = true
        }
        self.needs[abi.WorkGroupIDX] = true
        self.needs[abi.WorkItemIDX] = true
    } else if fn.CallConv == abi.CallPixel {
        self.psInputAddr = fn.Attrs.Integer("InitialPSInputAddr", 0)
    }

    if !self.isEntry {
        /* non-entry functions get no special inputs, only the fixed
         * registers of the scratch access contract with their callers */
        self.scratchRSrcReg = regs.SGPRQuad(0)
        self.scratchWaveOffsetReg = regs.SGPR(33)
        self.frameOffsetReg = regs.SGPR(5)
        self.stackPtrOffsetReg = regs.SGPR(32)

        self.args.Set(abi.PrivateSegmentBuffer, abi.MkReg(self.scratchRSrcReg))
        self.args.Set(abi.PrivateSegmentWaveByteOffset, abi.MkReg(self.scratchWaveOffsetReg))

        if fn.Attrs.Has("amdgpu-implicitarg-ptr") {
            self.needs[abi.ImplicitArgPtr] = true
        }
    } else {
        if fn.Attrs.Has("amdgpu-implicitarg-ptr") {
            self.needs[abi.KernargSegmentPtr] = true
            if st.ImplicitArgAlign > self.maxKernArgAlign {
                self.maxKernArgAlign = st.ImplicitArgAlign
            }
        }
    }

    /* explicit attribute overrides */
    if fn.Attrs.Has("amdgpu-work-group-id-x") { self.needs[abi.WorkGroupIDX] = true }
    if fn.Attrs.Has("amdgpu-work-group-id-y") { self.needs[abi.WorkGroupIDY] = true }
    if fn.Attrs.Has("amdgpu-work-group-id-z") { self.needs[abi.WorkGroupIDZ] = true }
    if fn.Attrs.Has("amdgpu-work-item-id-x")  { self.needs[abi.WorkItemIDX] = true }
    if fn.Attrs.Has("amdgpu-work-item-id-y")  { self.needs[abi.WorkItemIDY] = true }
    if fn.Attrs.Has("amdgpu-work-item-id-z")  { self.needs[abi.WorkItemIDZ] = true }

    hasStackObjects := frame != nil && frame.HasStackObjects()

    if self.isEntry {
        /* X, X-Y and X-Y-Z are the only valid combinations, so Y must
         * be enabled whenever Z is */
        if self.needs[abi.WorkItemIDZ] {
            self.needs[abi.WorkItemIDY] = true
        }
        self.needs[abi.PrivateSegmentWaveByteOffset] = true

        /* hull and geometry shaders keep the wave offset in sgpr5 */
        if st.Gen >= target.GFX9 && (fn.CallConv == abi.CallHull || fn.CallConv == abi.CallGeometry) {
            self.args.Set(abi.PrivateSegmentWaveByteOffset, abi.MkReg(regs.SGPR(5)))
        }
    }

    isAmdHsaOrMesa := st.IsAmdHsaOrMesa(fn.CallConv)

    if isAmdHsaOrMesa {
        self.needs[abi.PrivateSegmentBuffer] = true

        if fn.Attrs.Has("amdgpu-dispatch-ptr") { self.needs[abi.DispatchPtr] = true }
        if fn.Attrs.Has("amdgpu-queue-ptr")    { self.needs[abi.QueuePtr] = true }
        if fn.Attrs.Has("amdgpu-dispatch-id")  { self.needs[abi.DispatchID] = true }
    } else if st.IsMesaGfxShader(fn.CallConv) {
        self.needs[abi.ImplicitBufferPtr] = true
    }

    if fn.Attrs.Has("amdgpu-kernarg-segment-ptr") {
        self.needs[abi.KernargSegmentPtr] = true
    }

    /* flat scratch must be initialized before any stack access */
    if st.FlatAddressSpace && self.isEntry && isAmdHsaOrMesa {
        if hasStackObjects || fn.Attrs.Has("amdgpu-flat-scratch") {
            self.needs[abi.FlatScratchInit] = true
        }
    }

    /* integer overrides, forgiving on malformed text */
    self.gitPtrHigh = fn.Attrs.Integer("amdgpu-git-ptr-high", self.gitPtrHigh)
    self.highBitsOf32BitAddress = fn.Attrs.Integer("amdgpu-32bit-address-high-bits", 0)
    self.gdsSize = fn.Attrs.Integer("amdgpu-gds-size", 0)
    return self
}

// NewEmpty creates a blank tracker for st, used when rehydrating state
// from a snapshot.
func NewEmpty(st *target.Subtarget) *FunctionRegisterInfo {
    return newTracker(st)
}

func newTracker(st *target.Subtarget) *FunctionRegisterInfo {
    return &FunctionRegisterInfo {
        st            : st,
        gitPtrHigh    : 0xffffffff,
        occupancy     : st.MaxWavesPerEU,
        minWavesPerEU : 1,
        maxWavesPerEU : st.MaxWavesPerEU,
        spills        : make(map[int][]SpilledReg),
    }
}

// Name returns the function name.
func (self *FunctionRegisterInfo) Name() string {
    return self.name
}

// Subtarget returns the shared subtarget facts.
func (self *FunctionRegisterInfo) Subtarget() *target.Subtarget {
    return self.st
}

// CallConv returns the declared calling convention.
func (self *FunctionRegisterInfo) CallConv() abi.CallConv {
    return self.cc
}

// IsEntryFunction checks whether the dispatcher invokes this function
// directly.
func (self *FunctionRegisterInfo) IsEntryFunction() bool {
    return self.isEntry
}

// Needs checks whether ABI input k must be materialized.
func (self *FunctionRegisterInfo) Needs(k abi.ArgKind) bool {
    return self.needs[k]
}

// ArgInfo returns the argument table.
func (self *FunctionRegisterInfo) ArgInfo() *abi.ArgumentTable {
    return &self.args
}

// Arg returns the descriptor for ABI input k.
func (self *FunctionRegisterInfo) Arg(k abi.ArgKind) abi.ArgDescriptor {
    return self.args.Get(k)
}

// NumUserSGPRs returns how many user scalar registers are consumed.
func (self *FunctionRegisterInfo) NumUserSGPRs() uint32 {
    return self.numUserSGPRs
}

// NumSystemSGPRs returns how many system scalar registers are consumed.
func (self *FunctionRegisterInfo) NumSystemSGPRs() uint32 {
    return self.numSystemSGPRs
}

// ScratchRSrcReg returns the scratch resource descriptor register.
func (self *FunctionRegisterInfo) ScratchRSrcReg() regs.Reg {
    return self.scratchRSrcReg
}

// ScratchWaveOffsetReg returns the scratch wave offset register.
func (self *FunctionRegisterInfo) ScratchWaveOffsetReg() regs.Reg {
    return self.scratchWaveOffsetReg
}

// FrameOffsetReg returns the frame offset register.
func (self *FunctionRegisterInfo) FrameOffsetReg() regs.Reg {
    return self.frameOffsetReg
}

// StackPtrOffsetReg returns the stack pointer register.
func (self *FunctionRegisterInfo) StackPtrOffsetReg() regs.Reg {
    return self.stackPtrOffsetReg
}

// ExplicitKernArgSize returns the explicit kernarg segment byte size.
func (self *FunctionRegisterInfo) ExplicitKernArgSize() uint64 {
    return self.explicitKernArgSize
}

// MaxKernArgAlign returns the required kernarg segment alignment.
func (self *FunctionRegisterInfo) MaxKernArgAlign() uint32 {
    return self.maxKernArgAlign
}

// LDSSize returns the local memory byte footprint.
func (self *FunctionRegisterInfo) LDSSize() uint32 {
    return self.ldsSize
}

// GDSSize returns the global data share byte footprint.
func (self *FunctionRegisterInfo) GDSSize() uint32 {
    return self.gdsSize
}

// GITPtrHigh returns the global information table pointer high bits.
func (self *FunctionRegisterInfo) GITPtrHigh() uint32 {
    return self.gitPtrHigh
}

// HighBitsOf32BitAddress returns the 32-bit address high-bits override.
func (self *FunctionRegisterInfo) HighBitsOf32BitAddress() uint32 {
    return self.highBitsOf32BitAddress
}

// PSInputAddr returns the pixel shader input address mask.
func (self *FunctionRegisterInfo) PSInputAddr() uint32 {
    return self.psInputAddr
}

// NoSignedZerosFPMath reports the signed-zero floating point assumption.
func (self *FunctionRegisterInfo) NoSignedZerosFPMath() bool {
    return self.noSignedZerosFPMath
}

// IsMemoryBound reports the declared memory-boundedness hint.
func (self *FunctionRegisterInfo) IsMemoryBound() bool {
    return self.memoryBound
}

// NeedsWaveLimiter reports the declared wave limiter hint.
func (self *FunctionRegisterInfo) NeedsWaveLimiter() bool {
    return self.waveLimiter
}
