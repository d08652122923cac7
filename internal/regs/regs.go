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
    `strconv`
    `strings`
)

// Reg identifies a physical register or a contiguous, aligned group of
// them. The packed layout is kind | width | index, where width counts
// 32-bit words and index is the first word of the group.
type Reg uint32

const (
    _B_kind  = 24
    _B_width = 16
)

const (
    _M_kind  = 0xff
    _M_width = 0xff
)

const (
    _R_kind  = _M_kind << _B_kind
    _R_width = _M_width << _B_width
    _R_index = (1 << _B_width) - 1
)

const (
    _K_none = 0
    _K_sgpr = 1
    _K_vgpr = 2
)

const (
    // NumSGPRs is the number of addressable 32-bit scalar registers.
    NumSGPRs = 104

    // NumVGPRs is the number of addressable 32-bit vector registers.
    NumVGPRs = 256
)

// NoReg is the absent register.
const NoReg Reg = 0

func mkreg(kind uint32, width uint32, index uint32) Reg {
    return Reg(((kind & _M_kind) << _B_kind) | ((width & _M_width) << _B_width) | (index & _R_index))
}

// SGPR returns the i-th 32-bit scalar register.
func SGPR(i int) Reg {
    if i < 0 || i >= NumSGPRs {
        panic("regs: sgpr index out of range: " + strconv.Itoa(i))
    } else {
        return mkreg(_K_sgpr, 1, uint32(i))
    }
}

// SGPRPair returns the even-aligned 64-bit scalar group starting at i.
func SGPRPair(i int) Reg {
    if i < 0 || i % 2 != 0 || i + 2 > NumSGPRs {
        panic("regs: invalid sgpr pair base: " + strconv.Itoa(i))
    } else {
        return mkreg(_K_sgpr, 2, uint32(i))
    }
}

// SGPRQuad returns the quad-aligned 128-bit scalar group starting at i.
func SGPRQuad(i int) Reg {
    if i < 0 || i % 4 != 0 || i + 4 > NumSGPRs {
        panic("regs: invalid sgpr quad base: " + strconv.Itoa(i))
    } else {
        return mkreg(_K_sgpr, 4, uint32(i))
    }
}

// VGPR returns the i-th 32-bit vector register.
func VGPR(i int) Reg {
    if i < 0 || i >= NumVGPRs {
        panic("regs: vgpr index out of range: " + strconv.Itoa(i))
    } else {
        return mkreg(_K_vgpr, 1, uint32(i))
    }
}

func (self Reg) kind() uint32 {
    return uint32(self & _R_kind) >> _B_kind
}

// IsSGPR checks whether the register is a scalar register or group.
func (self Reg) IsSGPR() bool {
    return self.kind() == _K_sgpr
}

// IsVGPR checks whether the register is a vector register.
func (self Reg) IsVGPR() bool {
    return self.kind() == _K_vgpr
}

// Index returns the first 32-bit word of the register group.
func (self Reg) Index() int {
    return int(self & _R_index)
}

// Width returns the size of the register group in 32-bit words.
func (self Reg) Width() int {
    return int(self & _R_width) >> _B_width
}

func (self Reg) word(i int) string {
    switch self.kind() {
        case _K_sgpr : return "sgpr" + strconv.Itoa(self.Index() + i)
        case _K_vgpr : return "vgpr" + strconv.Itoa(self.Index() + i)
        default      : return "noreg"
    }
}

func (self Reg) String() string {
    if self == NoReg {
        return "$noreg"
    }

    /* join every word of the group */
    nb := self.Width()
    ss := make([]string, 0, nb)

    /* convert each word */
    for i := 0; i < nb; i++ {
        ss = append(ss, self.word(i))
    }

    /* add the physical register sigil */
    return "$" + strings.Join(ss, "_")
}

// Parse resolves a register name produced by String back into a Reg.
func Parse(name string) (Reg, bool) {
    if name == "$noreg" || name == "noreg" {
        return NoReg, true
    }

    /* the sigil is optional on input */
    name = strings.TrimPrefix(name, "$")
    part := strings.Split(name, "_")

    /* resolve the first word */
    kind, base, ok := parseWord(part[0])
    if !ok {
        return NoReg, false
    }

    /* remaining words must be contiguous and of the same bank */
    for i := 1; i < len(part); i++ {
        if k, v, ok := parseWord(part[i]); !ok || k != kind || v != base + i {
            return NoReg, false
        }
    }

    /* group widths follow the register bank rules */
    switch width := len(part); {
        case kind == _K_vgpr && width == 1                 : return VGPR(base), true
        case kind == _K_sgpr && width == 1                 : return SGPR(base), true
        case kind == _K_sgpr && width == 2 && base % 2 == 0: return SGPRPair(base), true
        case kind == _K_sgpr && width == 4 && base % 4 == 0: return SGPRQuad(base), true
        default                                            : return NoReg, false
    }
}

func parseWord(s string) (uint32, int, bool) {
    var kind uint32
    var name string

    /* bank prefix */
    switch {
        case strings.HasPrefix(s, "sgpr"): kind, name = _K_sgpr, s[4:]
        case strings.HasPrefix(s, "vgpr"): kind, name = _K_vgpr, s[4:]
        default                          : return 0, 0, false
    }

    /* plain decimal index, no signs, no radix prefixes */
    if i, err := strconv.Atoi(name); err != nil || i < 0 || name != strconv.Itoa(i) {
        return 0, 0, false
    } else if kind == _K_sgpr && i >= NumSGPRs {
        return 0, 0, false
    } else if kind == _K_vgpr && i >= NumVGPRs {
        return 0, 0, false
    } else {
        return kind, i, true
    }
}
