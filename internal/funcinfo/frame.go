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

package funcinfo

import (
    `strconv`
)

// StackClass tags the storage class of a frame object.
type StackClass uint8

const (
    StackDefault StackClass = iota
    StackSGPRSpill
)

type frameObject struct {
    size  uint32
    align uint32
    class StackClass
    spill bool
    dead  bool
}

// MachineFrame is the per-function arena of stack frame objects. Frame
// identifiers are indices into the arena and stay valid after removal,
// a removed object merely reads as dead.
type MachineFrame struct {
    objects  []frameObject
    hasCalls bool
}

func NewMachineFrame() *MachineFrame {
    return new(MachineFrame)
}

// CreateStackObject allocates a new frame object and returns its id.
func (self *MachineFrame) CreateStackObject(size uint32, align uint32, class StackClass) int {
    self.objects = append(self.objects, frameObject { size: size, align: align, class: class })
    return len(self.objects) - 1
}

// CreateSpillObject allocates a frame object reserved for spilling.
func (self *MachineFrame) CreateSpillObject(size uint32, align uint32) int {
    self.objects = append(self.objects, frameObject { size: size, align: align, spill: true })
    return len(self.objects) - 1
}

func (self *MachineFrame) object(fi int) *frameObject {
    if fi < 0 || fi >= len(self.objects) || self.objects[fi].dead {
        panic("funcinfo: no such frame object: " + strconv.Itoa(fi))
    } else {
        return &self.objects[fi]
    }
}

// ObjectSize returns the byte size of frame object fi.
func (self *MachineFrame) ObjectSize(fi int) uint32 {
    return self.object(fi).size
}

// StackID returns the storage class tag of frame object fi.
func (self *MachineFrame) StackID(fi int) StackClass {
    return self.object(fi).class
}

// SetStackID retags the storage class of frame object fi.
func (self *MachineFrame) SetStackID(fi int, class StackClass) {
    self.object(fi).class = class
}

// RemoveObject drops frame object fi from the frame.
func (self *MachineFrame) RemoveObject(fi int) {
    self.object(fi).dead = true
}

// IsDeadObject checks whether fi names a removed object.
func (self *MachineFrame) IsDeadObject(fi int) bool {
    return fi >= 0 && fi < len(self.objects) && self.objects[fi].dead
}

// HasStackObjects checks whether any live frame object remains.
func (self *MachineFrame) HasStackObjects() bool {
    for i := range self.objects {
        if !self.objects[i].dead {
            return true
        }
    }
    return false
}

// ForEachObject visits every live frame object id in creation order.
func (self *MachineFrame) ForEachObject(fn func(fi int)) {
    for i := range self.objects {
        if !self.objects[i].dead {
            fn(i)
        }
    }
}

// HasCalls reports whether the function contains calls.
func (self *MachineFrame) HasCalls() bool {
    return self.hasCalls
}

// SetHasCalls records that the function contains calls.
func (self *MachineFrame) SetHasCalls(v bool) {
    self.hasCalls = v
}
