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

package registry

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"dirpx.dev/rop/apis"
	"dirpx.dev/rop/config"
	uref "dirpx.dev/rop/utils/reflect"
)

var (
	// ErrNilClass is returned when a nil class or a class without type is provided.
	ErrNilClass = errors.New("rop(registry): nil class provided")
	// ErrEmptyName is returned when a class reports an empty name.
	ErrEmptyName = errors.New("rop(registry): empty class name provided")
	// ErrConflictingRegistration indicates an attempt to bind a name or a type
	// that is already bound to a different class.
	ErrConflictingRegistration = errors.New("rop(registry): conflicting class registration")
)

// New returns an empty registry normalizing class types under cfg. A
// non-positive MaxUnwrap falls back to config.DefaultMaxUnwrap.
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	return &registry{
		cfg:    cfg,
		byName: make(map[string]apis.Class),
		byType: make(map[reflect.Type]apis.Class),
	}
}

// registry indexes every class twice: by name and by normalized type. Both
// indexes always hold the same set of classes.
type registry struct {
	cfg apis.Config

	mu     sync.RWMutex
	byName map[string]apis.Class
	byType map[reflect.Type]apis.Class
}

// Register binds c under its name and its normalized type. Registering the
// same class again is a no-op.
func (r *registry) Register(c apis.Class) error {
	if c == nil || c.Type() == nil {
		return ErrNilClass
	}
	name := c.Name()
	if name == "" {
		return ErrEmptyName
	}
	t, err := uref.Normalize(c.Type(), r.cfg)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.byName[name]; ok && old != c {
		return fmt.Errorf("%w: name %q is bound to %s", ErrConflictingRegistration, name, old.Type())
	}
	if old, ok := r.byType[t]; ok && old != c {
		return fmt.Errorf("%w: type %s is bound to %q", ErrConflictingRegistration, t, old.Name())
	}
	r.byName[name] = c
	r.byType[t] = c
	return nil
}

func (r *registry) Lookup(name string) (apis.Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byName[name]
	return c, ok
}

// LookupType finds the class registered for the nearest named type of t.
func (r *registry) LookupType(t reflect.Type) (apis.Class, bool) {
	if t == nil {
		return nil, false
	}
	nt, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byType[nt]
	return c, ok
}

// Entries returns a copy of the registry sorted by class name.
func (r *registry) Entries() []apis.Entry {
	r.mu.RLock()
	entries := make([]apis.Entry, 0, len(r.byType))
	for t, c := range r.byType {
		entries = append(entries, apis.Entry{Name: c.Name(), Type: t, Class: c})
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

func (r *registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byType)
}

// Reset forgets every class. Snapshots taken by Entries are unaffected.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.byName)
	clear(r.byType)
}
