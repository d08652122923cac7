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

package gcnabi_test

import (
	"testing"

	"github.com/gpukit/gcnabi"
	"github.com/stretchr/testify/require"
)

func TestEndToEnd(t *testing.T) {
	cache := gcnabi.NewSubtargetCache()
	st := cache.Get("gfx900", "+amdhsa")
	frame := gcnabi.NewMachineFrame()

	fn := &gcnabi.Function{
		Name:                "vecadd",
		CallConv:            gcnabi.CallKernel,
		NumArgs:             3,
		ExplicitKernArgSize: 24,
		KernArgAlign:        8,
		Attrs:               gcnabi.Attributes{"amdgpu-dispatch-ptr": ""},
	}
	fi := gcnabi.NewFunctionInfo(fn, st, frame)

	// ABI construction and the user SGPR budget
	require.True(t, fi.Needs(gcnabi.DispatchPtr))
	fi.AddPrivateSegmentBuffer()
	fi.AddDispatchPtr()
	fi.AddKernargSegmentPtr()
	require.Equal(t, uint32(8), fi.NumUserSGPRs())
	require.Equal(t, gcnabi.SGPR(8), fi.NextUserSGPR())

	// pack a 16-byte scalar spill into vector lanes
	host := &gcnabi.SpillHost{Scavenger: gcnabi.NewVGPRPool(8)}
	slot := frame.CreateStackObject(16, 4, gcnabi.StackSGPRSpill)
	require.True(t, fi.AllocateSGPRSpillToVGPR(frame, host, slot))
	require.Len(t, fi.SpillCarriers(), 1)

	// snapshot round trip drops spill state but keeps the ABI placement
	data, err := gcnabi.Serialize(fi)
	require.NoError(t, err)

	back, err := gcnabi.Parse(data, st)
	require.NoError(t, err)
	require.Equal(t, fi.Arg(gcnabi.DispatchPtr), back.Arg(gcnabi.DispatchPtr))
	require.Empty(t, back.SpillCarriers())
}

// spillRecorder is a caller-provided scavenger and live-in hook built
// from the package's exported surface alone.
type spillRecorder struct {
	free  []gcnabi.Reg
	lives []gcnabi.Reg
}

func (h *spillRecorder) FindUnusedVGPR() (gcnabi.Reg, bool) {
	if len(h.free) == 0 {
		return gcnabi.NoReg, false
	}
	r := h.free[0]
	h.free = h.free[1:]
	return r, true
}

func (h *spillRecorder) AddLiveIn(r gcnabi.Reg) {
	h.lives = append(h.lives, r)
}

func TestCallerProvidedSpillHost(t *testing.T) {
	st := gcnabi.NewSubtargetCache().Get("gfx900", "+amdhsa")
	frame := gcnabi.NewMachineFrame()
	frame.SetHasCalls(true)

	fn := &gcnabi.Function{Name: "callee", CallConv: gcnabi.CallFunc}
	fi := gcnabi.NewFunctionInfo(fn, st, frame)

	rec := &spillRecorder{free: []gcnabi.Reg{gcnabi.VGPR(40), gcnabi.VGPR(41)}}
	host := &gcnabi.SpillHost{
		Scavenger:   rec,
		LiveIns:     rec,
		CalleeSaved: []gcnabi.Reg{gcnabi.VGPR(40)},
	}

	slot := frame.CreateStackObject(8, 4, gcnabi.StackSGPRSpill)
	require.True(t, fi.AllocateSGPRSpillToVGPR(frame, host, slot))

	// the callee-saved carrier got a save slot and was marked live-in
	carriers := fi.SpillCarriers()
	require.Len(t, carriers, 1)
	require.Equal(t, gcnabi.VGPR(40), carriers[0].VGPR)
	require.True(t, carriers[0].HasSaveSlot)
	require.Equal(t, []gcnabi.Reg{gcnabi.VGPR(40)}, rec.lives)

	// an exhausted scavenger reports memory fallback
	slot = frame.CreateStackObject(4, 4, gcnabi.StackSGPRSpill)
	rec.free = nil
	fi2 := gcnabi.NewFunctionInfo(fn, st, gcnabi.NewMachineFrame())
	require.False(t, fi2.AllocateSGPRSpillToVGPR(frame, host, slot))
}
