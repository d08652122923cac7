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
    `fmt`

    `github.com/gpukit/gcnabi/internal/regs`
)

const (
    _D_absent = 0
    _D_reg    = 1
    _D_stack  = 2
)

// ArgDescriptor describes how one ABI input is delivered: not at all, in
// a register, or at a byte offset in the scratch stack. An optional bit
// mask narrows the descriptor to the masked bits of the underlying word.
// Descriptors are immutable values.
type ArgDescriptor struct {
    tag    uint8
    masked bool
    mask   uint32
    reg    regs.Reg
    offset uint32
}

// MkReg creates a register-delivered descriptor.
func MkReg(r regs.Reg) ArgDescriptor {
    return ArgDescriptor { tag: _D_reg, reg: r }
}

// MkStack creates a stack-delivered descriptor.
func MkStack(offset uint32) ArgDescriptor {
    return ArgDescriptor { tag: _D_stack, offset: offset }
}

// WithMask derives a descriptor restricted to the masked bits.
func (self ArgDescriptor) WithMask(mask uint32) ArgDescriptor {
    self.masked = true
    self.mask = mask
    return self
}

// Present checks whether the input is delivered at all.
func (self ArgDescriptor) Present() bool {
    return self.tag != _D_absent
}

// IsRegister checks whether the input is delivered in a register.
func (self ArgDescriptor) IsRegister() bool {
    return self.tag == _D_reg
}

// Register returns the delivering register.
func (self ArgDescriptor) Register() regs.Reg {
    if self.tag != _D_reg {
        panic("abi: descriptor is not a register")
    } else {
        return self.reg
    }
}

// StackOffset returns the delivering stack byte offset.
func (self ArgDescriptor) StackOffset() uint32 {
    if self.tag != _D_stack {
        panic("abi: descriptor is not a stack slot")
    } else {
        return self.offset
    }
}

// Mask returns the bit mask, if one was applied.
func (self ArgDescriptor) Mask() (uint32, bool) {
    return self.mask, self.masked
}

func (self ArgDescriptor) String() string {
    switch self.tag {
        case _D_absent : return "<absent>"
        case _D_reg    : return self.maskstr(self.reg.String())
        case _D_stack  : return self.maskstr(fmt.Sprintf("stack+%d", self.offset))
        default        : panic("abi: invalid descriptor tag")
    }
}

func (self ArgDescriptor) maskstr(s string) string {
    if !self.masked {
        return s
    } else {
        return fmt.Sprintf("%s & %#x", s, self.mask)
    }
}
