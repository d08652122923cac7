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
    `fmt`

    `github.com/gpukit/gcnabi/internal/opts`
    `github.com/gpukit/gcnabi/internal/regs`
)

// SpilledReg names one 32-bit lane slice of a spill carrier: the vector
// register and the lane index within it.
type SpilledReg struct {
    VGPR regs.Reg
    Lane int
}

func (self SpilledReg) String() string {
    return fmt.Sprintf("%s:%d", self.VGPR, self.Lane)
}

// SpillVGPR is a vector register claimed as a spill carrier. If the
// carrier is also a callee-saved register of a function that makes or
// receives calls, SaveSlot holds the frame object that preserves its
// original contents around the function.
type SpillVGPR struct {
    VGPR        regs.Reg
    SaveSlot    int
    HasSaveSlot bool
}

// SpillHost is the set of host collaborators the spill-lane allocator
// needs: a source of unused vector registers, a hook for marking new
// carriers live-in across the control flow graph, and the callee-saved
// register set of the current calling convention.
type SpillHost struct {
    Scavenger   VGPRScavenger
    LiveIns     LiveInMarker
    CalleeSaved []regs.Reg
}

func (self *SpillHost) isCalleeSaved(r regs.Reg) bool {
    for _, c := range self.CalleeSaved {
        if c == r {
            return true
        }
    }
    return false
}

// SGPRSpillLanes returns the committed lane list for frame slot fi.
func (self *FunctionRegisterInfo) SGPRSpillLanes(fi int) ([]SpilledReg, bool) {
    lanes, ok := self.spills[fi]
    return lanes, ok
}

// SpillCarriers returns every claimed spill carrier in claim order.
func (self *FunctionRegisterInfo) SpillCarriers() []SpillVGPR {
    return self.spillVGPRs
}

// NumVGPRSpillLanes returns the function-wide count of committed lanes.
func (self *FunctionRegisterInfo) NumVGPRSpillLanes() int {
    return self.numVGPRSpillLanes
}

// AllocateSGPRSpillToVGPR packs the scalar spill value of frame slot fi
// into vector register lanes. Packing is all-or-nothing: when no unused
// vector register remains for a needed carrier, every lane placed for
// fi is discarded, the lane counter is rewound and the caller must fall
// back to ordinary memory spilling. Already-packed slots succeed
// immediately and are never re-packed.
func (self *FunctionRegisterInfo) AllocateSGPRSpillToVGPR(frame *MachineFrame, host *SpillHost, fi int) bool {
    if len(self.spills[fi]) != 0 {
        return true
    }

    /* lane packing can be turned off wholesale */
    if opts.NoSGPRToVGPRSpills {
        return false
    }

    /* spill sizes are 1..16 words by contract */
    size := frame.ObjectSize(fi)
    if size < 4 || size > 64 || size % 4 != 0 {
        panic(fmt.Sprintf("gcnabi: invalid sgpr spill size: %d", size))
    }

    numLanes := int(size / 4)
    waveSize := self.st.WavefrontSize
    lanes := make([]SpilledReg, 0, numLanes)

    /* a wide spill may span two carriers */
    for i := 0; i < numLanes; i, self.numVGPRSpillLanes = i + 1, self.numVGPRSpillLanes + 1 {
        var carrier regs.Reg
        index := self.numVGPRSpillLanes % waveSize

        /* a fresh carrier is needed at every wavefront boundary */
        if index != 0 {
            carrier = self.spillVGPRs[len(self.spillVGPRs) - 1].VGPR
        } else {
            r, ok := host.Scavenger.FindUnusedVGPR()

            /* no vector registers left, roll back the whole slot */
            if !ok {
                delete(self.spills, fi)
                self.numVGPRSpillLanes -= i
                return false
            }

            /* carriers clobbering a callee-saved register get a save
             * slot to restore it around the function */
            carrier = r
            spill := SpillVGPR { VGPR: r }

            if (frame.HasCalls() || !self.isEntry) && host.isCalleeSaved(r) {
                spill.SaveSlot = frame.CreateSpillObject(4, 4)
                spill.HasSaveSlot = true
            }

            /* the carrier now carries meaning before the first
             * instruction of every block */
            self.spillVGPRs = append(self.spillVGPRs, spill)
            if host.LiveIns != nil {
                host.LiveIns.AddLiveIn(r)
            }
        }

        lanes = append(lanes, SpilledReg { VGPR: carrier, Lane: index })
    }

    self.spills[fi] = lanes
    return true
}

// RemoveSGPRToVGPRFrameIndices drops every lane-packed frame slot from
// the frame, they no longer need memory addresses. Every remaining
// object goes back to the default stack, only SGPR spill slots use the
// alternate tag.
func (self *FunctionRegisterInfo) RemoveSGPRToVGPRFrameIndices(frame *MachineFrame) {
    for fi := range self.spills {
        frame.RemoveObject(fi)
    }
    frame.ForEachObject(func(fi int) {
        frame.SetStackID(fi, StackDefault)
    })
}
