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

package target

import (
    `strings`

    `github.com/gpukit/gcnabi/internal/abi`
)

// Generation is the hardware generation of the device.
type Generation uint8

const (
    SouthernIslands Generation = iota
    SeaIslands
    VolcanicIslands
    GFX9
    GFX10
)

// Env is the host-dispatch environment the code is compiled for.
type Env uint8

const (
    EnvUnknown Env = iota
    EnvHSA
    EnvMesa3D
    EnvPAL
)

// Subtarget carries the immutable facts about one (device, features)
// combination. Instances are shared across functions, obtained through
// a Cache, and never mutated after construction.
type Subtarget struct {
    Device             string
    Features           string
    Gen                Generation
    Env                Env
    WavefrontSize      int
    MaxWavesPerEU      uint32
    LocalMemorySize    uint32
    MaxWorkGroupsPerCU uint32
    FlatAddressSpace   bool
    ImplicitArgAlign   uint32
}

var _Devices = map[string]Generation {
    "gfx600"  : SouthernIslands,
    "gfx700"  : SeaIslands,
    "gfx701"  : SeaIslands,
    "gfx801"  : VolcanicIslands,
    "gfx803"  : VolcanicIslands,
    "gfx900"  : GFX9,
    "gfx906"  : GFX9,
    "gfx908"  : GFX9,
    "gfx1010" : GFX10,
}

// NewSubtarget constructs the subtarget for a device name and a
// comma-separated "+feat" / "-feat" feature string. Unknown devices get
// the newest known generation, unknown features are ignored.
func NewSubtarget(device string, features string) *Subtarget {
    gen, ok := _Devices[device]
    if !ok {
        gen = GFX9
    }

    /* generation-derived defaults */
    st := &Subtarget {
        Device             : device,
        Features           : features,
        Gen                : gen,
        Env                : EnvUnknown,
        WavefrontSize      : 64,
        MaxWavesPerEU      : 10,
        LocalMemorySize    : 65536,
        MaxWorkGroupsPerCU : 16,
        FlatAddressSpace   : gen >= SeaIslands,
        ImplicitArgAlign   : 8,
    }

    /* GFX10 runs twice the wave slots per EU and supports wave32 */
    if gen >= GFX10 {
        st.MaxWavesPerEU = 20
    }

    /* apply the feature toggles in order */
    for _, f := range strings.Split(features, ",") {
        st.applyFeature(strings.TrimSpace(f))
    }
    return st
}

func (self *Subtarget) applyFeature(f string) {
    switch f {
        case "+amdhsa"             : self.Env = EnvHSA
        case "+mesa3d"             : self.Env = EnvMesa3D
        case "+pal"                : self.Env = EnvPAL
        case "+flat-address-space" : self.FlatAddressSpace = true
        case "-flat-address-space" : self.FlatAddressSpace = false
        case "+wavefrontsize32"    : self.WavefrontSize = 32
        case "+wavefrontsize64"    : self.WavefrontSize = 64
    }
}

// IsAmdHsaOrMesa checks whether a function compiles against one of the
// two supported host-dispatch ABIs. Mesa only dispatches compute
// kernels, its graphics shaders go through the implicit buffer pointer
// instead.
func (self *Subtarget) IsAmdHsaOrMesa(cc abi.CallConv) bool {
    return self.Env == EnvHSA || (self.Env == EnvMesa3D && cc.IsKernel())
}

// IsMesaGfxShader checks whether a function compiles as a Mesa graphics
// shader, which receives its resource descriptors indirectly.
func (self *Subtarget) IsMesaGfxShader(cc abi.CallConv) bool {
    return self.Env == EnvMesa3D && cc.IsShader()
}

// OccupancyWithLocalMemSize computes how many wavefronts per execution
// unit can be co-resident given a per-workgroup local memory footprint.
// The result is monotone nonincreasing in bytes and always within
// [1, MaxWavesPerEU].
func (self *Subtarget) OccupancyWithLocalMemSize(bytes uint32) uint32 {
    if bytes == 0 {
        return self.MaxWavesPerEU
    }

    /* how many workgroups fit into the local memory pool */
    groups := self.LocalMemorySize / bytes
    if groups == 0 {
        return 1
    }
    if groups > self.MaxWorkGroupsPerCU {
        groups = self.MaxWorkGroupsPerCU
    }

    /* the wave budget caps it */
    if groups > self.MaxWavesPerEU {
        return self.MaxWavesPerEU
    }
    return groups
}
