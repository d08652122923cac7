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
    `sync`

    `golang.org/x/sync/singleflight`
)

// Cache maps a canonicalized (device, features) key to a shared
// Subtarget. The first lookup for a key constructs the subtarget, with
// concurrent first lookups for the same key serialized onto a single
// construction; every later lookup is a read.
type Cache struct {
    mu sync.RWMutex
    st map[string]*Subtarget
    sf singleflight.Group
}

func NewCache() *Cache {
    return &Cache {
        st: make(map[string]*Subtarget),
    }
}

func cachekey(device string, features string) string {
    return device + "\x00" + features
}

// Get returns the shared subtarget for (device, features).
func (self *Cache) Get(device string, features string) *Subtarget {
    key := cachekey(device, features)

    /* fast path, the key already exists */
    self.mu.RLock()
    st, ok := self.st[key]
    self.mu.RUnlock()
    if ok {
        return st
    }

    /* single writer per key */
    val, _, _ := self.sf.Do(key, func() (interface{}, error) {
        self.mu.Lock()
        defer self.mu.Unlock()

        /* lost the race against an earlier flight */
        if st, ok := self.st[key]; ok {
            return st, nil
        }

        /* first access constructs and stores */
        st := NewSubtarget(device, features)
        self.st[key] = st
        return st, nil
    })
    return val.(*Subtarget)
}
