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
	"testing"

	"github.com/gpukit/gcnabi/internal/regs"
	"github.com/stretchr/testify/require"
)

func TestArgDescriptorQueries(t *testing.T) {
	var absent ArgDescriptor
	require.False(t, absent.Present())
	require.Panics(t, func() { absent.Register() })
	require.Panics(t, func() { absent.StackOffset() })

	reg := MkReg(regs.SGPRPair(4))
	require.True(t, reg.Present())
	require.True(t, reg.IsRegister())
	require.Equal(t, regs.SGPRPair(4), reg.Register())
	_, masked := reg.Mask()
	require.False(t, masked)

	stack := MkStack(16)
	require.True(t, stack.Present())
	require.False(t, stack.IsRegister())
	require.Equal(t, uint32(16), stack.StackOffset())
}

func TestArgDescriptorMask(t *testing.T) {
	d := MkReg(regs.VGPR(0)).WithMask(0x3ff)
	mask, ok := d.Mask()
	require.True(t, ok)
	require.Equal(t, uint32(0x3ff), mask)

	// masking derives a new value, the original is unchanged
	base := MkStack(8)
	_ = base.WithMask(1)
	_, ok = base.Mask()
	require.False(t, ok)
}

func TestArgumentTableOrder(t *testing.T) {
	var tab ArgumentTable
	require.False(t, tab.Any())

	tab.Set(WorkItemIDX, MkReg(regs.VGPR(0)))
	tab.Set(DispatchPtr, MkReg(regs.SGPRPair(4)))
	require.True(t, tab.Any())

	var seen []ArgKind
	tab.ForEach(func(k ArgKind, d ArgDescriptor) {
		if d.Present() {
			seen = append(seen, k)
		}
	})

	// declaration order, not insertion order
	require.Equal(t, []ArgKind{DispatchPtr, WorkItemIDX}, seen)
}

func TestArgKindClasses(t *testing.T) {
	require.Equal(t, regs.SReg128, PrivateSegmentBuffer.RegClass())
	require.Equal(t, regs.SReg64, DispatchPtr.RegClass())
	require.Equal(t, regs.SReg64, ImplicitArgPtr.RegClass())
	require.Equal(t, regs.SReg32, WorkGroupIDX.RegClass())
	require.Equal(t, regs.SReg32, PrivateSegmentWaveByteOffset.RegClass())
	require.Equal(t, regs.VGPR32, WorkItemIDZ.RegClass())
}

func TestAttributeInteger(t *testing.T) {
	attrs := Attributes{
		"amdgpu-git-ptr-high":            "0xabcd",
		"amdgpu-gds-size":                "128",
		"amdgpu-32bit-address-high-bits": "bogus",
		"empty":                          "",
	}
	require.Equal(t, uint32(0xabcd), attrs.Integer("amdgpu-git-ptr-high", 0xffffffff))
	require.Equal(t, uint32(128), attrs.Integer("amdgpu-gds-size", 0))

	// malformed, empty and absent all keep the default
	require.Equal(t, uint32(7), attrs.Integer("amdgpu-32bit-address-high-bits", 7))
	require.Equal(t, uint32(7), attrs.Integer("empty", 7))
	require.Equal(t, uint32(7), attrs.Integer("missing", 7))
}

func TestAttributeIntegerPair(t *testing.T) {
	lo, hi := Attributes{"amdgpu-waves-per-eu": "2,6"}.IntegerPair("amdgpu-waves-per-eu", 1, 10)
	require.Equal(t, uint32(2), lo)
	require.Equal(t, uint32(6), hi)

	lo, hi = Attributes{"amdgpu-waves-per-eu": "4"}.IntegerPair("amdgpu-waves-per-eu", 1, 10)
	require.Equal(t, uint32(4), lo)
	require.Equal(t, uint32(10), hi)

	lo, hi = Attributes{"amdgpu-waves-per-eu": "x,y"}.IntegerPair("amdgpu-waves-per-eu", 1, 10)
	require.Equal(t, uint32(1), lo)
	require.Equal(t, uint32(10), hi)
}

func TestCallConvKinds(t *testing.T) {
	require.True(t, CallKernel.IsEntry())
	require.True(t, CallKernel.IsKernel())
	require.True(t, CallPixel.IsEntry())
	require.True(t, CallPixel.IsShader())
	require.False(t, CallFunc.IsEntry())
	require.False(t, CallCompute.IsShader())
}
