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

// Occupancy returns the current wavefronts-per-EU bound. It only ever
// narrows over the lifetime of the tracker and stays within
// [1, Subtarget.MaxWavesPerEU].
func (self *FunctionRegisterInfo) Occupancy() uint32 {
    return self.occupancy
}

// MinWavesPerEU returns the declared lower wave bound.
func (self *FunctionRegisterInfo) MinWavesPerEU() uint32 {
    return self.minWavesPerEU
}

// MaxWavesPerEU returns the declared upper wave bound.
func (self *FunctionRegisterInfo) MaxWavesPerEU() uint32 {
    return self.maxWavesPerEU
}

// LimitOccupancy narrows the occupancy to at most limit. Widening
// requests are ignored, and the bound never drops below one wave.
func (self *FunctionRegisterInfo) LimitOccupancy(limit uint32) {
    if limit < 1 {
        limit = 1
    }
    if limit < self.occupancy {
        self.occupancy = limit
    }
}

// limitOccupancy applies the two construction-time constraints in
// sequence: the attribute-declared bound, then the LDS footprint.
func (self *FunctionRegisterInfo) limitOccupancy() {
    self.LimitOccupancy(self.maxWavesPerEU)
    self.LimitOccupancy(self.st.OccupancyWithLocalMemSize(self.ldsSize))
}
