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

package regs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegNames(t *testing.T) {
	require.Equal(t, "$noreg", NoReg.String())
	require.Equal(t, "$sgpr0", SGPR(0).String())
	require.Equal(t, "$sgpr33", SGPR(33).String())
	require.Equal(t, "$vgpr255", VGPR(255).String())
	require.Equal(t, "$sgpr4_sgpr5", SGPRPair(4).String())
	require.Equal(t, "$sgpr0_sgpr1_sgpr2_sgpr3", SGPRQuad(0).String())
}

func TestRegParseRoundTrip(t *testing.T) {
	rr := []Reg{
		NoReg,
		SGPR(0),
		SGPR(103),
		SGPRPair(6),
		SGPRQuad(8),
		VGPR(0),
		VGPR(42),
	}
	for _, r := range rr {
		p, ok := Parse(r.String())
		require.True(t, ok, r.String())
		require.Equal(t, r, p)
	}
}

func TestRegParseRejects(t *testing.T) {
	bad := []string{
		"",
		"$",
		"sgpr",
		"$sgpr104",
		"$vgpr256",
		"$sgpr1_sgpr3",
		"$sgpr1_sgpr2",
		"$sgpr0_vgpr1",
		"$sgpr2_sgpr3_sgpr4_sgpr5",
		"$sgpr0_sgpr1_sgpr2",
		"$sgpr01",
		"$sgpr-1",
		"$xgpr0",
	}
	for _, s := range bad {
		_, ok := Parse(s)
		require.False(t, ok, s)
	}
}

func TestRegGroupShape(t *testing.T) {
	r := SGPRQuad(4)
	require.True(t, r.IsSGPR())
	require.False(t, r.IsVGPR())
	require.Equal(t, 4, r.Index())
	require.Equal(t, 4, r.Width())
	require.Equal(t, 1, VGPR(7).Width())
}

func TestRegConstructorContracts(t *testing.T) {
	require.Panics(t, func() { SGPR(NumSGPRs) })
	require.Panics(t, func() { VGPR(-1) })
	require.Panics(t, func() { SGPRPair(3) })
	require.Panics(t, func() { SGPRQuad(2) })
	require.Panics(t, func() { SGPRQuad(NumSGPRs - 2) })
}

func TestClassMembership(t *testing.T) {
	require.True(t, SReg32.Contains(SGPR(5)))
	require.False(t, SReg32.Contains(VGPR(5)))
	require.False(t, SReg32.Contains(SGPRPair(4)))

	require.True(t, SReg64.Contains(SGPRPair(4)))
	require.False(t, SReg64.Contains(SGPR(4)))

	require.True(t, SReg128.Contains(SGPRQuad(0)))
	require.False(t, SReg128.Contains(SGPRPair(0)))

	require.True(t, VGPR32.Contains(VGPR(0)))
	require.False(t, VGPR32.Contains(SGPR(0)))
}
