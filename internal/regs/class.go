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

// Class is a register class constraint: the bank a register must come
// from, its group width, and the alignment of the group base.
type Class uint8

const (
    SReg32 Class = iota
    SReg64
    SReg128
    VGPR32
)

// Contains checks whether r satisfies the class constraint.
func (self Class) Contains(r Reg) bool {
    switch self {
        case SReg32  : return r.IsSGPR() && r.Width() == 1
        case SReg64  : return r.IsSGPR() && r.Width() == 2 && r.Index() % 2 == 0
        case SReg128 : return r.IsSGPR() && r.Width() == 4 && r.Index() % 4 == 0
        case VGPR32  : return r.IsVGPR() && r.Width() == 1
        default      : panic("regs: invalid register class")
    }
}

func (self Class) String() string {
    switch self {
        case SReg32  : return "SReg_32"
        case SReg64  : return "SReg_64"
        case SReg128 : return "SReg_128"
        case VGPR32  : return "VGPR_32"
        default      : panic("regs: invalid register class")
    }
}
