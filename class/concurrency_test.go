/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package class_test

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"dirpx.dev/rop/class"
	"dirpx.dev/rop/property"
)

// TestConcurrentFirstUse verifies that concurrent first-time queries run the
// declaration exactly once and all observe the finalized store.
func TestConcurrentFirstUse(t *testing.T) {
	var calls atomic.Int32
	parent := class.Define[Base]("HammerBase", nil, func(r *class.Registrar[Base]) {
		calls.Add(1)
		r.Property(tagInt, "value", property.Field(func(b *Base) *int { return &b.Value }))
	})
	child := class.Define[Derived]("HammerDerived", parent, func(r *class.Registrar[Derived]) {
		calls.Add(1)
		r.Property(tagInt, "level", property.Field(func(d *Derived) *int { return &d.Level }))
	})

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				m := child
				if (i+id)%3 == 0 {
					m = parent
				}
				if m.Find("value") == nil {
					t.Errorf("%s: value not found", m.Name())
					return
				}
				if m == child && len(m.All()) != 2 {
					t.Errorf("%s: All() = %d entries, want 2", m.Name(), len(m.All()))
					return
				}
			}
		}(w)
	}
	wg.Wait()

	if got := calls.Load(); got != 2 {
		t.Fatalf("declare callbacks ran %d times, want 2", got)
	}
}

// TestConcurrentAccess verifies handles on distinct instances are race-free.
func TestConcurrentAccess(t *testing.T) {
	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			d := &Derived{}
			h := class.Property(d, "value")
			for i := 0; i < 1000; i++ {
				property.Set(h, i+id)
				if got := property.Get[int](h); got != i+id {
					t.Errorf("got %d want %d", got, i+id)
					return
				}
			}
		}(w)
	}
	wg.Wait()
}
