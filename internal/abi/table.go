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

package abi

import (
    `github.com/gpukit/gcnabi/internal/regs`
)

// ArgKind names one recognized implicit or explicit kernel input.
type ArgKind uint8

const (
    PrivateSegmentBuffer ArgKind = iota
    DispatchPtr
    QueuePtr
    KernargSegmentPtr
    DispatchID
    FlatScratchInit
    PrivateSegmentSize
    WorkGroupIDX
    WorkGroupIDY
    WorkGroupIDZ
    WorkGroupInfo
    PrivateSegmentWaveByteOffset
    ImplicitArgPtr
    ImplicitBufferPtr
    WorkItemIDX
    WorkItemIDY
    WorkItemIDZ
    NumArgKinds
)

var _ArgNames = [NumArgKinds]string {
    PrivateSegmentBuffer         : "privateSegmentBuffer",
    DispatchPtr                  : "dispatchPtr",
    QueuePtr                     : "queuePtr",
    KernargSegmentPtr            : "kernargSegmentPtr",
    DispatchID                   : "dispatchID",
    FlatScratchInit              : "flatScratchInit",
    PrivateSegmentSize           : "privateSegmentSize",
    WorkGroupIDX                 : "workGroupIDX",
    WorkGroupIDY                 : "workGroupIDY",
    WorkGroupIDZ                 : "workGroupIDZ",
    WorkGroupInfo                : "workGroupInfo",
    PrivateSegmentWaveByteOffset : "privateSegmentWaveByteOffset",
    ImplicitArgPtr               : "implicitArgPtr",
    ImplicitBufferPtr            : "implicitBufferPtr",
    WorkItemIDX                  : "workItemIDX",
    WorkItemIDY                  : "workItemIDY",
    WorkItemIDZ                  : "workItemIDZ",
}

func (self ArgKind) String() string {
    if self >= NumArgKinds {
        panic("abi: invalid argument kind")
    } else {
        return _ArgNames[self]
    }
}

// RegClass returns the register class an argument of this kind must be
// delivered in when it is register-delivered.
func (self ArgKind) RegClass() regs.Class {
    switch self {
        case PrivateSegmentBuffer:
            return regs.SReg128
        case DispatchPtr, QueuePtr, KernargSegmentPtr, DispatchID, FlatScratchInit, ImplicitArgPtr, ImplicitBufferPtr:
            return regs.SReg64
        case WorkItemIDX, WorkItemIDY, WorkItemIDZ:
            return regs.VGPR32
        default:
            return regs.SReg32
    }
}

// ArgumentTable is a fixed set of named ArgDescriptor slots, one per
// recognized ABI input kind.
type ArgumentTable struct {
    slots [NumArgKinds]ArgDescriptor
}

// Get returns the descriptor for kind k.
func (self *ArgumentTable) Get(k ArgKind) ArgDescriptor {
    return self.slots[k]
}

// Set assigns the descriptor for kind k.
func (self *ArgumentTable) Set(k ArgKind, d ArgDescriptor) {
    self.slots[k] = d
}

// Any checks whether at least one input is in use.
func (self *ArgumentTable) Any() bool {
    for i := range self.slots {
        if self.slots[i].Present() {
            return true
        }
    }
    return false
}

// ForEach visits every slot in declaration order.
func (self *ArgumentTable) ForEach(fn func(k ArgKind, d ArgDescriptor)) {
    for i := ArgKind(0); i < NumArgKinds; i++ {
        fn(i, self.slots[i])
    }
}
