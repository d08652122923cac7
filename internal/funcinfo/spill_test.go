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
	"testing"

	"github.com/bytedance/gopkg/lang/fastrand"
	"github.com/gpukit/gcnabi/internal/abi"
	"github.com/gpukit/gcnabi/internal/regs"
	"github.com/gpukit/gcnabi/internal/target"
	"github.com/stretchr/testify/require"
)

type liveInRecorder struct {
	rr []regs.Reg
}

func (self *liveInRecorder) AddLiveIn(r regs.Reg) {
	self.rr = append(self.rr, r)
}

func spillSetup(nvgpr int) (*FunctionRegisterInfo, *MachineFrame, *SpillHost, *liveInRecorder) {
	frame := NewMachineFrame()
	fi := NewFunctionRegisterInfo(kernel(nil), hsaTarget(), frame)
	rec := new(liveInRecorder)
	host := &SpillHost{Scavenger: NewVGPRPool(nvgpr), LiveIns: rec}
	return fi, frame, host, rec
}

func TestSpillPackingSingleCarrier(t *testing.T) {
	fi, frame, host, rec := spillSetup(4)
	slot := frame.CreateStackObject(16, 4, StackSGPRSpill)

	require.True(t, fi.AllocateSGPRSpillToVGPR(frame, host, slot))

	lanes, ok := fi.SGPRSpillLanes(slot)
	require.True(t, ok)
	require.Len(t, lanes, 4)
	for i, l := range lanes {
		require.Equal(t, regs.VGPR(0), l.VGPR)
		require.Equal(t, i, l.Lane)
	}

	require.Len(t, fi.SpillCarriers(), 1)
	require.Equal(t, []regs.Reg{regs.VGPR(0)}, rec.rr)
	require.Equal(t, 4, fi.NumVGPRSpillLanes())
}

func TestSpillStraddlesCarriers(t *testing.T) {
	fi, frame, host, _ := spillSetup(4)

	// fill 62 of the 64 lanes of the first carrier
	for fi.NumVGPRSpillLanes() < 62 {
		size := uint32(64)
		if left := 62 - fi.NumVGPRSpillLanes(); left < 16 {
			size = uint32(left * 4)
		}
		slot := frame.CreateStackObject(size, 4, StackSGPRSpill)
		require.True(t, fi.AllocateSGPRSpillToVGPR(frame, host, slot))
	}
	require.Len(t, fi.SpillCarriers(), 1)

	// the next 8-byte spill lands on lanes 62 and 63 of carrier A
	slot := frame.CreateStackObject(8, 4, StackSGPRSpill)
	require.True(t, fi.AllocateSGPRSpillToVGPR(frame, host, slot))

	lanes, _ := fi.SGPRSpillLanes(slot)
	require.Equal(t, []SpilledReg{
		{VGPR: regs.VGPR(0), Lane: 62},
		{VGPR: regs.VGPR(0), Lane: 63},
	}, lanes)
	require.Len(t, fi.SpillCarriers(), 1)

	// any further spill claims a fresh carrier B
	slot = frame.CreateStackObject(4, 4, StackSGPRSpill)
	require.True(t, fi.AllocateSGPRSpillToVGPR(frame, host, slot))

	lanes, _ = fi.SGPRSpillLanes(slot)
	require.Equal(t, []SpilledReg{{VGPR: regs.VGPR(1), Lane: 0}}, lanes)
	require.Len(t, fi.SpillCarriers(), 2)
}

func TestSpillWideValueSpansCarriers(t *testing.T) {
	st := target.NewSubtarget("gfx1010", "+amdhsa,+wavefrontsize32")
	frame := NewMachineFrame()
	fn := kernel(nil)
	fi := NewFunctionRegisterInfo(fn, st, frame)
	host := &SpillHost{Scavenger: NewVGPRPool(2)}

	// 28 lanes of padding, then 8 more lanes crossing the wave32 boundary
	pad := frame.CreateStackObject(64, 4, StackSGPRSpill)
	require.True(t, fi.AllocateSGPRSpillToVGPR(frame, host, pad))
	pad = frame.CreateStackObject(48, 4, StackSGPRSpill)
	require.True(t, fi.AllocateSGPRSpillToVGPR(frame, host, pad))
	require.Equal(t, 28, fi.NumVGPRSpillLanes())

	slot := frame.CreateStackObject(32, 4, StackSGPRSpill)
	require.True(t, fi.AllocateSGPRSpillToVGPR(frame, host, slot))

	lanes, _ := fi.SGPRSpillLanes(slot)
	require.Len(t, lanes, 8)
	for i, l := range lanes[:4] {
		require.Equal(t, regs.VGPR(0), l.VGPR)
		require.Equal(t, 28+i, l.Lane)
	}
	for i, l := range lanes[4:] {
		require.Equal(t, regs.VGPR(1), l.VGPR)
		require.Equal(t, i, l.Lane)
	}
}

func TestSpillRollbackOnExhaustion(t *testing.T) {
	st := target.NewSubtarget("gfx1010", "+amdhsa,+wavefrontsize32")
	frame := NewMachineFrame()
	fi := NewFunctionRegisterInfo(kernel(nil), st, frame)
	host := &SpillHost{Scavenger: NewVGPRPool(1)}

	pad := frame.CreateStackObject(64, 4, StackSGPRSpill)
	require.True(t, fi.AllocateSGPRSpillToVGPR(frame, host, pad))
	pad = frame.CreateStackObject(48, 4, StackSGPRSpill)
	require.True(t, fi.AllocateSGPRSpillToVGPR(frame, host, pad))
	require.Equal(t, 28, fi.NumVGPRSpillLanes())

	// lanes 28..31 fit, lane 32 needs a second carrier that does not exist
	slot := frame.CreateStackObject(32, 4, StackSGPRSpill)
	require.False(t, fi.AllocateSGPRSpillToVGPR(frame, host, slot))

	// all-or-nothing: no lanes committed, counter rewound, carrier kept
	_, ok := fi.SGPRSpillLanes(slot)
	require.False(t, ok)
	require.Equal(t, 28, fi.NumVGPRSpillLanes())
	require.Len(t, fi.SpillCarriers(), 1)
}

func TestSpillIdempotent(t *testing.T) {
	fi, frame, host, rec := spillSetup(4)
	slot := frame.CreateStackObject(16, 4, StackSGPRSpill)

	require.True(t, fi.AllocateSGPRSpillToVGPR(frame, host, slot))
	first, _ := fi.SGPRSpillLanes(slot)
	carriers := len(fi.SpillCarriers())
	lanes := fi.NumVGPRSpillLanes()

	require.True(t, fi.AllocateSGPRSpillToVGPR(frame, host, slot))
	second, _ := fi.SGPRSpillLanes(slot)

	require.Equal(t, first, second)
	require.Len(t, fi.SpillCarriers(), carriers)
	require.Equal(t, lanes, fi.NumVGPRSpillLanes())
	require.Len(t, rec.rr, 1)
}

func TestSpillSizeContract(t *testing.T) {
	fi, frame, host, _ := spillSetup(4)
	for _, size := range []uint32{0, 2, 6, 68, 129} {
		slot := frame.CreateStackObject(size, 4, StackSGPRSpill)
		require.Panics(t, func() { fi.AllocateSGPRSpillToVGPR(frame, host, slot) }, "size %d", size)
	}
}

func TestSpillCalleeSavedCarrier(t *testing.T) {
	frame := NewMachineFrame()
	fn := &abi.Function{Name: "callee", CallConv: abi.CallFunc}
	fi := NewFunctionRegisterInfo(fn, hsaTarget(), frame)
	host := &SpillHost{
		Scavenger:   NewRegisterPool(regs.VGPR(32), regs.VGPR(33)),
		CalleeSaved: []regs.Reg{regs.VGPR(32)},
	}

	slot := frame.CreateStackObject(4, 4, StackSGPRSpill)
	require.True(t, fi.AllocateSGPRSpillToVGPR(frame, host, slot))

	carriers := fi.SpillCarriers()
	require.Len(t, carriers, 1)
	require.Equal(t, regs.VGPR(32), carriers[0].VGPR)
	require.True(t, carriers[0].HasSaveSlot)
	require.Equal(t, uint32(4), frame.ObjectSize(carriers[0].SaveSlot))
}

func TestSpillEntryNoCallsSkipsSaveSlot(t *testing.T) {
	frame := NewMachineFrame()
	fi := NewFunctionRegisterInfo(kernel(nil), hsaTarget(), frame)
	host := &SpillHost{
		Scavenger:   NewRegisterPool(regs.VGPR(32)),
		CalleeSaved: []regs.Reg{regs.VGPR(32)},
	}

	slot := frame.CreateStackObject(4, 4, StackSGPRSpill)
	require.True(t, fi.AllocateSGPRSpillToVGPR(frame, host, slot))
	require.False(t, fi.SpillCarriers()[0].HasSaveSlot)

	// with calls in the body the save slot becomes mandatory
	frame2 := NewMachineFrame()
	fi2 := NewFunctionRegisterInfo(kernel(nil), hsaTarget(), frame2)
	host2 := &SpillHost{
		Scavenger:   NewRegisterPool(regs.VGPR(32)),
		CalleeSaved: []regs.Reg{regs.VGPR(32)},
	}
	frame2.SetHasCalls(true)
	slot = frame2.CreateStackObject(4, 4, StackSGPRSpill)
	require.True(t, fi2.AllocateSGPRSpillToVGPR(frame2, host2, slot))
	require.True(t, fi2.SpillCarriers()[0].HasSaveSlot)
}

func TestSpillLaneCountProperty(t *testing.T) {
	fi, frame, host, _ := spillSetup(64)
	wave := fi.Subtarget().WavefrontSize

	for i := 0; i < 200; i++ {
		words := fastrand.Intn(16) + 1
		slot := frame.CreateStackObject(uint32(words*4), 4, StackSGPRSpill)
		prior := fi.NumVGPRSpillLanes()

		require.True(t, fi.AllocateSGPRSpillToVGPR(frame, host, slot))
		lanes, _ := fi.SGPRSpillLanes(slot)
		require.Len(t, lanes, words)

		for j, l := range lanes {
			require.Equal(t, (prior+j)%wave, l.Lane)
		}
	}
}

func TestRemoveSGPRToVGPRFrameIndices(t *testing.T) {
	fi, frame, host, _ := spillSetup(4)

	packed := frame.CreateStackObject(16, 4, StackSGPRSpill)
	kept := frame.CreateStackObject(8, 4, StackSGPRSpill)
	require.True(t, fi.AllocateSGPRSpillToVGPR(frame, host, packed))

	fi.RemoveSGPRToVGPRFrameIndices(frame)

	require.True(t, frame.IsDeadObject(packed))
	require.Equal(t, StackDefault, frame.StackID(kept))
	frame.ForEachObject(func(id int) {
		require.Equal(t, StackDefault, frame.StackID(id))
	})
}

func BenchmarkSpillPacking(b *testing.B) {
	for i := 0; i < b.N; i++ {
		frame := NewMachineFrame()
		fi := NewFunctionRegisterInfo(kernel(nil), hsaTarget(), frame)
		host := &SpillHost{Scavenger: NewVGPRPool(256)}
		for j := 0; j < 64; j++ {
			slot := frame.CreateStackObject(uint32(fastrand.Intn(16)+1)*4, 4, StackSGPRSpill)
			fi.AllocateSGPRSpillToVGPR(frame, host, slot)
		}
	}
}
