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
    `github.com/oleiade/lane`
)

// VGPRScavenger hands out vector registers that the register allocator
// is not otherwise using, one at a time. An empty scavenger is how the
// spill-lane allocator learns that it must fail over to memory.
type VGPRScavenger interface {
    FindUnusedVGPR() (regs.Reg, bool)
}

// LiveInMarker is the host hook for marking a claimed spill carrier as
// an implicit live-in of every basic block.
type LiveInMarker interface {
    AddLiveIn(r regs.Reg)
}

// RegisterPool is a FIFO VGPRScavenger over a fixed set of free
// registers.
type RegisterPool struct {
    free *lane.Queue
}

// NewRegisterPool builds a pool that hands out rr in order.
func NewRegisterPool(rr ...regs.Reg) *RegisterPool {
    p := &RegisterPool { free: lane.NewQueue() }
    for _, r := range rr {
        p.free.Enqueue(r)
    }
    return p
}

// NewVGPRPool builds a pool over the first n vector registers.
func NewVGPRPool(n int) *RegisterPool {
    p := &RegisterPool { free: lane.NewQueue() }
    for i := 0; i < n; i++ {
        p.free.Enqueue(regs.VGPR(i))
    }
    return p
}

func (self *RegisterPool) FindUnusedVGPR() (regs.Reg, bool) {
    if self.free.Empty() {
        return regs.NoReg, false
    } else {
        return self.free.Dequeue().(regs.Reg), true
    }
}
