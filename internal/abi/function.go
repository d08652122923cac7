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
    `strconv`
    `strings`
)

// CallConv is the declared calling convention of a function.
type CallConv uint8

const (
    CallFunc CallConv = iota
    CallKernel
    CallSpirKernel
    CallPixel
    CallVertex
    CallGeometry
    CallHull
    CallCompute
)

// IsEntry checks whether functions of this convention are invoked
// directly by the dispatcher rather than through an internal call.
func (self CallConv) IsEntry() bool {
    return self != CallFunc
}

// IsKernel checks for the two host-dispatch kernel conventions.
func (self CallConv) IsKernel() bool {
    return self == CallKernel || self == CallSpirKernel
}

// IsShader checks for the graphics shader conventions.
func (self CallConv) IsShader() bool {
    switch self {
        case CallPixel, CallVertex, CallGeometry, CallHull: return true
        default                                           : return false
    }
}

func (self CallConv) String() string {
    switch self {
        case CallFunc       : return "func"
        case CallKernel     : return "kernel"
        case CallSpirKernel : return "spir_kernel"
        case CallPixel      : return "pixel"
        case CallVertex     : return "vertex"
        case CallGeometry   : return "geometry"
        case CallHull       : return "hull"
        case CallCompute    : return "compute"
        default             : panic("abi: invalid calling convention")
    }
}

// Attributes is the function-level attribute surface. Boolean needs are
// expressed by key presence, integer knobs by textual values with radix
// auto-detection (a 0x prefix selects base 16).
type Attributes map[string]string

// Has checks for a boolean attribute.
func (self Attributes) Has(name string) bool {
    _, ok := self[name]
    return ok
}

// Integer parses an integer attribute. An absent, empty or malformed
// value keeps the default, it is not an error.
func (self Attributes) Integer(name string, def uint32) uint32 {
    if s, ok := self[name]; !ok || s == "" {
        return def
    } else if v, err := strconv.ParseUint(s, 0, 32); err != nil {
        return def
    } else {
        return uint32(v)
    }
}

// IntegerPair parses a "min" or "min,max" attribute, keeping the
// defaults for any part that is absent or malformed.
func (self Attributes) IntegerPair(name string, defmin uint32, defmax uint32) (uint32, uint32) {
    s, ok := self[name]
    if !ok || s == "" {
        return defmin, defmax
    }

    /* split off the optional upper bound */
    lo, hi, _ := strings.Cut(s, ",")
    vmin, vmax := defmin, defmax

    /* both halves parse independently and forgivingly */
    if v, err := strconv.ParseUint(lo, 0, 32); err == nil {
        vmin = uint32(v)
    }
    if v, err := strconv.ParseUint(hi, 0, 32); hi != "" && err == nil {
        vmax = uint32(v)
    }
    return vmin, vmax
}

// Function is the declared ABI surface of one function, as handed over
// by the host front end before code generation starts.
type Function struct {
    Name                string
    CallConv            CallConv
    Attrs               Attributes
    NumArgs             int
    ExplicitKernArgSize uint64
    KernArgAlign        uint32
    LDSSize             uint32
    NoSignedZerosFPMath bool
    MemoryBound         bool
    WaveLimiter         bool
}
