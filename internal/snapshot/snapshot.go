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

// Package snapshot converts live tracker state to and from a textual
// field-labeled document, used for debugging and for round-tripping
// compiled-IR between tool invocations. Spill-lane tables are not part
// of the snapshot, lane packing is re-derived after every reload.
package snapshot

import (
    `fmt`

    `gopkg.in/yaml.v3`
)

// StringValue is a scalar field that remembers where in the source
// document it came from, so resolution failures can point at it.
type StringValue struct {
    Value  string
    Line   int
    Column int
}

func (self *StringValue) UnmarshalYAML(node *yaml.Node) error {
    self.Value = node.Value
    self.Line = node.Line
    self.Column = node.Column
    return nil
}

func (self StringValue) MarshalYAML() (interface{}, error) {
    return &yaml.Node {
        Kind  : yaml.ScalarNode,
        Style : yaml.SingleQuotedStyle,
        Value : self.Value,
    }, nil
}

// Argument is one serialized ArgumentTable slot: a register name or a
// stack byte offset, with an optional bit mask on top.
type Argument struct {
    Reg    *StringValue `yaml:"reg,omitempty"`
    Offset *uint32      `yaml:"offset,omitempty"`
    Mask   *uint32      `yaml:"mask,omitempty"`
}

// ArgumentInfo lists every present ABI input slot by name.
type ArgumentInfo struct {
    PrivateSegmentBuffer         *Argument `yaml:"privateSegmentBuffer,omitempty"`
    DispatchPtr                  *Argument `yaml:"dispatchPtr,omitempty"`
    QueuePtr                     *Argument `yaml:"queuePtr,omitempty"`
    KernargSegmentPtr            *Argument `yaml:"kernargSegmentPtr,omitempty"`
    DispatchID                   *Argument `yaml:"dispatchID,omitempty"`
    FlatScratchInit              *Argument `yaml:"flatScratchInit,omitempty"`
    PrivateSegmentSize           *Argument `yaml:"privateSegmentSize,omitempty"`
    WorkGroupIDX                 *Argument `yaml:"workGroupIDX,omitempty"`
    WorkGroupIDY                 *Argument `yaml:"workGroupIDY,omitempty"`
    WorkGroupIDZ                 *Argument `yaml:"workGroupIDZ,omitempty"`
    WorkGroupInfo                *Argument `yaml:"workGroupInfo,omitempty"`
    PrivateSegmentWaveByteOffset *Argument `yaml:"privateSegmentWaveByteOffset,omitempty"`
    ImplicitArgPtr               *Argument `yaml:"implicitArgPtr,omitempty"`
    ImplicitBufferPtr            *Argument `yaml:"implicitBufferPtr,omitempty"`
    WorkItemIDX                  *Argument `yaml:"workItemIDX,omitempty"`
    WorkItemIDY                  *Argument `yaml:"workItemIDY,omitempty"`
    WorkItemIDZ                  *Argument `yaml:"workItemIDZ,omitempty"`
}

// Document is the root of the snapshot format.
type Document struct {
    Name                 string        `yaml:"name,omitempty"`
    ExplicitKernArgSize  uint64        `yaml:"explicitKernArgSize"`
    MaxKernArgAlign      uint32        `yaml:"maxKernArgAlign"`
    LDSSize              uint32        `yaml:"ldsSize"`
    IsEntryFunction      bool          `yaml:"isEntryFunction"`
    NoSignedZerosFPMath  bool          `yaml:"noSignedZerosFPMath"`
    MemoryBound          bool          `yaml:"memoryBound"`
    WaveLimiter          bool          `yaml:"waveLimiter"`
    ScratchRSrcReg       StringValue   `yaml:"scratchRSrcReg"`
    ScratchWaveOffsetReg StringValue   `yaml:"scratchWaveOffsetReg"`
    FrameOffsetReg       StringValue   `yaml:"frameOffsetReg"`
    StackPtrOffsetReg    StringValue   `yaml:"stackPtrOffsetReg"`
    ArgumentInfo         *ArgumentInfo `yaml:"argumentInfo,omitempty"`
}

// ParseError is a structured deserialization diagnostic carrying the
// offending text and its position in the source document.
type ParseError struct {
    Line   int
    Column int
    Value  string
    Reason string
}

func (self *ParseError) Error() string {
    if self.Line == 0 {
        return fmt.Sprintf("snapshot: %s: %q", self.Reason, self.Value)
    } else {
        return fmt.Sprintf("snapshot: line %d column %d: %s: %q", self.Line, self.Column, self.Reason, self.Value)
    }
}

func errAt(v *StringValue, reason string) *ParseError {
    return &ParseError {
        Line   : v.Line,
        Column : v.Column,
        Value  : v.Value,
        Reason : reason,
    }
}
