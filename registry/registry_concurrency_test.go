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

package registry_test

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"dirpx.dev/rop/apis"
	"dirpx.dev/rop/class"
	"dirpx.dev/rop/config"
	"dirpx.dev/rop/property"
	"dirpx.dev/rop/registry"
)

// Plain named types used by the registry tests.
type Pipe struct{}
type Tank struct{}

type motor struct{ RPM int }

type pump struct {
	motor
	Flow float64
}

var (
	motorClass = class.Define[motor]("Motor", nil, func(r *class.Registrar[motor]) {
		r.Property(1, "rpm", property.Field(func(m *motor) *int { return &m.RPM }))
	})
	pumpClass = class.Define[pump]("Pump", motorClass, func(r *class.Registrar[pump]) {
		r.Property(2, "flow", property.Field(func(p *pump) *float64 { return &p.Flow }))
	})
)

// impostor claims the name "Motor" with another Go type.
type impostor struct{}

var impostorClass = class.Define[impostor]("Motor", nil, nil)

// Classes are finalized and registered from many goroutines at once; the
// registry must end with exactly one entry per class.
func TestConcurrentClassRegistration(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	classes := []*class.Meta{pumpClass, motorClass}

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				m := classes[(i+id)%len(classes)]
				m.Init()
				if err := reg.Register(m); err != nil {
					t.Errorf("register %s: %v", m, err)
					return
				}
				if got, ok := reg.Lookup(m.Name()); !ok || got != apis.Class(m) {
					t.Errorf("lookup %s: got (%v,%v)", m, got, ok)
					return
				}
				_ = reg.Entries()
			}
		}(w)
	}
	wg.Wait()

	if reg.Count() != 2 {
		t.Fatalf("count: got %d want 2", reg.Count())
	}
	entries := reg.Entries()
	if entries[0].Name != "Motor" || entries[1].Name != "Pump" {
		t.Fatalf("entries: got %q,%q want Motor,Pump", entries[0].Name, entries[1].Name)
	}
	if entries[1].Class.ParentName() != "Motor" {
		t.Fatalf("Pump parent: got %q want Motor", entries[1].Class.ParentName())
	}
}

// Two classes racing for one name: exactly one wins, every other attempt
// fails with ErrConflictingRegistration, and the winner never changes.
func TestConcurrentConflictingRegistration(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	contenders := []apis.Class{motorClass, impostorClass}

	var wins [2]atomic.Int64
	var other atomic.Value
	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				k := (i + id) % 2
				err := reg.Register(contenders[k])
				switch {
				case err == nil:
					wins[k].Add(1)
				case !errors.Is(err, registry.ErrConflictingRegistration):
					other.Store(fmt.Sprint(err))
				}
			}
		}(w)
	}
	wg.Wait()

	if e := other.Load(); e != nil {
		t.Fatalf("unexpected error: %v", e)
	}
	if (wins[0].Load() == 0) == (wins[1].Load() == 0) {
		t.Fatalf("exactly one contender must win: motor=%d impostor=%d", wins[0].Load(), wins[1].Load())
	}
	got, _ := reg.Lookup("Motor")
	want := contenders[0]
	if wins[0].Load() == 0 {
		want = contenders[1]
	}
	if got != want {
		t.Fatalf("winner changed: got %v want %v", got, want)
	}
}

// Reset empties the registry without touching snapshots taken before.
func TestResetKeepsSnapshot(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	pumpClass.Init()
	for _, c := range []apis.Class{motorClass, pumpClass, registry.Named(reflect.TypeOf(Pipe{}), "pipe")} {
		if err := reg.Register(c); err != nil {
			t.Fatalf("register %s: %v", c.Name(), err)
		}
	}

	snap := reg.Entries()
	reg.Reset()

	if reg.Count() != 0 {
		t.Fatalf("count after reset: got %d want 0", reg.Count())
	}
	if len(snap) != 3 || snap[0].Name != "Motor" || snap[2].Name != "pipe" {
		t.Fatalf("snapshot changed after reset: %+v", snap)
	}
	if _, ok := reg.Lookup("Pump"); ok {
		t.Fatal("lookup after reset: Pump still present")
	}
}

var _ apis.Registry = registry.New(config.DefaultConfig())
