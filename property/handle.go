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

package property

import (
	"fmt"
	"reflect"

	"dirpx.dev/rop/apis"
)

// OptionTable exposes the choice options and ancestry of the instance's
// class. It is implemented by *class.Meta.
type OptionTable interface {
	// Options returns the options class registered for its choice property name.
	Options(class, name string) ([]string, bool)
	// Ancestors returns the ancestor chain, nearest first.
	Ancestors() []string
}

// Handle binds a descriptor to one instance. The zero Handle is invalid.
// A handle does not own the instance and must not outlive it.
type Handle struct {
	d   *Descriptor
	obj any
	tbl OptionTable
}

// Bind returns a handle for d on obj. A nil d yields an invalid handle.
func Bind(d *Descriptor, obj any, tbl OptionTable) Handle {
	if d == nil {
		return Handle{}
	}
	return Handle{d: d, obj: obj, tbl: tbl}
}

// Valid reports whether the handle refers to a property.
func (h Handle) Valid() bool { return h.d != nil }

// Descriptor returns the bound descriptor, nil for an invalid handle.
func (h Handle) Descriptor() *Descriptor { return h.d }

// Object returns the bound instance.
func (h Handle) Object() any { return h.obj }

// Name returns the property name, "" for an invalid handle.
func (h Handle) Name() string {
	if h.d == nil {
		return ""
	}
	return h.d.name
}

// Class returns the declaring class name, "" for an invalid handle.
func (h Handle) Class() string {
	if h.d == nil {
		return ""
	}
	return h.d.class
}

// Tag returns the type tag, zero for an invalid handle.
func (h Handle) Tag() apis.Tag {
	if h.d == nil {
		return 0
	}
	return h.d.tag
}

// IsChoice reports whether the bound property is a choice property.
func (h Handle) IsChoice() bool { return h.d != nil && h.d.choice }

// Description returns the property description, "" for an invalid handle.
func (h Handle) Description() string {
	if h.d == nil {
		return ""
	}
	return h.d.doc
}

// Type returns the storage type, nil for an invalid handle.
func (h Handle) Type() reflect.Type {
	if h.d == nil {
		return nil
	}
	return h.d.acc.typ
}

// Interface returns a copy of the current value. It panics on an invalid handle.
func (h Handle) Interface() any {
	return reflect.ValueOf(h.location()).Elem().Interface()
}

// location returns the storage pointer, panicking on misuse.
func (h Handle) location() any {
	if h.d == nil {
		panic(ErrInvalidHandle)
	}
	loc := h.d.acc.get(h.obj)
	if loc == nil {
		panic(fmt.Errorf("%w: %s", ErrUnreachable, h.d))
	}
	return loc
}

// store commits the value pointed to by ptr through the setter.
func (h Handle) store(ptr any) {
	if h.d == nil {
		panic(ErrInvalidHandle)
	}
	h.d.acc.set(h.obj, ptr)
}

// Get returns the value of the property. T must be the storage type.
func Get[T any](h Handle) T {
	p, ok := h.location().(*T)
	if !ok {
		panic(fmt.Errorf("%w: %s stores %s, requested %s", ErrTypeMismatch, h.d, h.d.acc.typ, reflect.TypeFor[T]()))
	}
	return *p
}

// Set writes v through the property's setter. T must be the storage type.
func Set[T any](h Handle, v T) {
	if h.d == nil {
		panic(ErrInvalidHandle)
	}
	if want := reflect.TypeFor[T](); want != h.d.acc.typ {
		panic(fmt.Errorf("%w: %s stores %s, given %s", ErrTypeMismatch, h.d, h.d.acc.typ, want))
	}
	tmp := v
	h.store(&tmp)
}
