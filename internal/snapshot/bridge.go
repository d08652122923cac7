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

package snapshot

import (
    `gopkg.in/yaml.v3`

    `github.com/gpukit/gcnabi/internal/abi`
    `github.com/gpukit/gcnabi/internal/funcinfo`
    `github.com/gpukit/gcnabi/internal/regs`
    `github.com/gpukit/gcnabi/internal/target`
)

func (self *ArgumentInfo) slot(k abi.ArgKind) **Argument {
    switch k {
        case abi.PrivateSegmentBuffer         : return &self.PrivateSegmentBuffer
        case abi.DispatchPtr                  : return &self.DispatchPtr
        case abi.QueuePtr                     : return &self.QueuePtr
        case abi.KernargSegmentPtr            : return &self.KernargSegmentPtr
        case abi.DispatchID                   : return &self.DispatchID
        case abi.FlatScratchInit              : return &self.FlatScratchInit
        case abi.PrivateSegmentSize           : return &self.PrivateSegmentSize
        case abi.WorkGroupIDX                 : return &self.WorkGroupIDX
        case abi.WorkGroupIDY                 : return &self.WorkGroupIDY
        case abi.WorkGroupIDZ                 : return &self.WorkGroupIDZ
        case abi.WorkGroupInfo                : return &self.WorkGroupInfo
        case abi.PrivateSegmentWaveByteOffset : return &self.PrivateSegmentWaveByteOffset
        case abi.ImplicitArgPtr               : return &self.ImplicitArgPtr
        case abi.ImplicitBufferPtr            : return &self.ImplicitBufferPtr
        case abi.WorkItemIDX                  : return &self.WorkItemIDX
        case abi.WorkItemIDY                  : return &self.WorkItemIDY
        case abi.WorkItemIDZ                  : return &self.WorkItemIDZ
        default                               : panic("snapshot: invalid argument kind")
    }
}

func regvalue(r regs.Reg) StringValue {
    return StringValue { Value: r.String() }
}

func convertArgs(args *abi.ArgumentTable) *ArgumentInfo {
    if !args.Any() {
        return nil
    }

    /* emit every present slot */
    ai := new(ArgumentInfo)
    args.ForEach(func(k abi.ArgKind, d abi.ArgDescriptor) {
        if !d.Present() {
            return
        }

        /* register or stack delivery */
        arg := new(Argument)
        if d.IsRegister() {
            rv := regvalue(d.Register())
            arg.Reg = &rv
        } else {
            off := d.StackOffset()
            arg.Offset = &off
        }

        /* optional sub-range mask */
        if mask, ok := d.Mask(); ok {
            arg.Mask = &mask
        }
        *ai.slot(k) = arg
    })
    return ai
}

// Serialize externalizes the tracker state as a snapshot document.
func Serialize(fi *funcinfo.FunctionRegisterInfo) ([]byte, error) {
    return yaml.Marshal(&Document {
        Name                 : fi.Name(),
        ExplicitKernArgSize  : fi.ExplicitKernArgSize(),
        MaxKernArgAlign      : fi.MaxKernArgAlign(),
        LDSSize              : fi.LDSSize(),
        IsEntryFunction      : fi.IsEntryFunction(),
        NoSignedZerosFPMath  : fi.NoSignedZerosFPMath(),
        MemoryBound          : fi.IsMemoryBound(),
        WaveLimiter          : fi.NeedsWaveLimiter(),
        ScratchRSrcReg       : regvalue(fi.ScratchRSrcReg()),
        ScratchWaveOffsetReg : regvalue(fi.ScratchWaveOffsetReg()),
        FrameOffsetReg       : regvalue(fi.FrameOffsetReg()),
        StackPtrOffsetReg    : regvalue(fi.StackPtrOffsetReg()),
        ArgumentInfo         : convertArgs(fi.ArgInfo()),
    })
}

func resolveFixedReg(v *StringValue, class regs.Class) (regs.Reg, error) {
    if v.Value == "" {
        return regs.NoReg, nil
    }

    /* the register must exist */
    r, ok := regs.Parse(v.Value)
    if !ok {
        return regs.NoReg, errAt(v, "unknown register name")
    }

    /* absent registers carry no class constraint */
    if r == regs.NoReg {
        return regs.NoReg, nil
    }
    if !class.Contains(r) {
        return regs.NoReg, errAt(v, "register is not in class " + class.String())
    }
    return r, nil
}

func resolveArg(k abi.ArgKind, arg *Argument) (abi.ArgDescriptor, error) {
    var desc abi.ArgDescriptor

    /* register or stack delivery, exactly one of the two */
    if arg.Reg != nil {
        r, ok := regs.Parse(arg.Reg.Value)
        if !ok {
            return desc, errAt(arg.Reg, "unknown register name")
        }

        /* a present slot needs a concrete register */
        if r == regs.NoReg {
            return desc, errAt(arg.Reg, "argument register must not be $noreg")
        }
        if !k.RegClass().Contains(r) {
            return desc, errAt(arg.Reg, "register is not in class " + k.RegClass().String())
        }
        desc = abi.MkReg(r)
    } else if arg.Offset != nil {
        desc = abi.MkStack(*arg.Offset)
    } else {
        return desc, &ParseError { Value: k.String(), Reason: "argument needs a register or a stack offset" }
    }

    /* reapply the optional mask */
    if arg.Mask != nil {
        desc = desc.WithMask(*arg.Mask)
    }
    return desc, nil
}

// Parse rehydrates tracker state from a snapshot document. Register
// names are validated against the register class their field requires,
// a mismatch is reported as a *ParseError pointing into the document.
func Parse(data []byte, st *target.Subtarget) (*funcinfo.FunctionRegisterInfo, error) {
    var doc Document
    if err := yaml.Unmarshal(data, &doc); err != nil {
        return nil, err
    }

    /* summary fields */
    fi := funcinfo.NewEmpty(st)
    fi.SetName(doc.Name)
    fi.SetExplicitKernArgSize(doc.ExplicitKernArgSize)
    fi.SetMaxKernArgAlign(doc.MaxKernArgAlign)
    fi.SetLDSSize(doc.LDSSize)
    fi.SetEntryFunction(doc.IsEntryFunction)
    fi.SetNoSignedZerosFPMath(doc.NoSignedZerosFPMath)
    fi.SetMemoryBound(doc.MemoryBound)
    fi.SetWaveLimiter(doc.WaveLimiter)

    /* the four fixed scratch handling registers */
    if r, err := resolveFixedReg(&doc.ScratchRSrcReg, regs.SReg128); err != nil {
        return nil, err
    } else {
        fi.SetScratchRSrcReg(r)
    }
    if r, err := resolveFixedReg(&doc.ScratchWaveOffsetReg, regs.SReg32); err != nil {
        return nil, err
    } else {
        fi.SetScratchWaveOffsetReg(r)
    }
    if r, err := resolveFixedReg(&doc.FrameOffsetReg, regs.SReg32); err != nil {
        return nil, err
    } else {
        fi.SetFrameOffsetReg(r)
    }
    if r, err := resolveFixedReg(&doc.StackPtrOffsetReg, regs.SReg32); err != nil {
        return nil, err
    } else {
        fi.SetStackPtrOffsetReg(r)
    }

    /* the argument block is optional */
    if doc.ArgumentInfo == nil {
        return fi, nil
    }

    /* resolve every present slot against its required class */
    for k := abi.ArgKind(0); k < abi.NumArgKinds; k++ {
        if arg := *doc.ArgumentInfo.slot(k); arg != nil {
            if desc, err := resolveArg(k, arg); err != nil {
                return nil, err
            } else {
                fi.ArgInfo().Set(k, desc)
            }
        }
    }
    return fi, nil
}
