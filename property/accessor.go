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

	uref "dirpx.dev/rop/utils/reflect"
)

// Accessor binds a property to its storage on an instance.
//
// get returns a pointer to the storage (*V, boxed in any); set receives a
// pointer to the new value and commits it. Both closures are fixed when the
// accessor is built and never change afterwards.
type Accessor struct {
	get    func(obj any) any
	set    func(obj any, v any)
	owner  reflect.Type
	typ    reflect.Type
	custom bool
}

// Field binds a struct member directly. field must return the address of
// the member for the given instance.
func Field[C, V any](field func(*C) *V) Accessor {
	return Accessor{
		get:   func(obj any) any { return field(obj.(*C)) },
		set:   func(obj any, v any) { *field(obj.(*C)) = *v.(*V) },
		owner: reflect.TypeFor[*C](),
		typ:   reflect.TypeFor[V](),
	}
}

// Methods binds a custom getter/setter pair. The getter exposes the internal
// state by pointer; the setter receives the candidate value and may validate
// or transform it before committing.
func Methods[C, V any](get func(*C) *V, set func(*C, *V)) Accessor {
	return Accessor{
		get:    func(obj any) any { return get(obj.(*C)) },
		set:    func(obj any, v any) { set(obj.(*C), v.(*V)) },
		owner:  reflect.TypeFor[*C](),
		typ:    reflect.TypeFor[V](),
		custom: true,
	}
}

// StructField binds the named field of C through reflection, following
// promoted fields and reaching unexported ones. It panics with ErrNoField
// when C has no such field.
func StructField[C any](name string) Accessor {
	p, ft, ok := uref.FieldPath(reflect.TypeFor[C](), name)
	if !ok {
		panic(fmt.Errorf("%w: %s.%s", ErrNoField, reflect.TypeFor[C](), name))
	}
	return Accessor{
		get: func(obj any) any { return uref.Walk(obj, p) },
		set: func(obj any, v any) {
			dst := uref.Walk(obj, p)
			if dst == nil {
				panic(fmt.Errorf("%w: %s", ErrUnreachable, name))
			}
			reflect.ValueOf(dst).Elem().Set(reflect.ValueOf(v).Elem())
		},
		owner: reflect.TypeFor[*C](),
		typ:   ft,
	}
}

// IsZero reports whether a is the zero Accessor.
func (a Accessor) IsZero() bool { return a.get == nil || a.set == nil }

// Owner returns the instance pointer type the accessor accepts.
func (a Accessor) Owner() reflect.Type { return a.owner }

// Type returns the storage type.
func (a Accessor) Type() reflect.Type { return a.typ }

// Custom reports whether the accessor is a getter/setter pair.
func (a Accessor) Custom() bool { return a.custom }

// Rebase adapts a to instances of owner, a descendant pointer type, using up
// to convert such an instance to the one a expects. up returns nil when the
// ancestor part is unreachable.
func (a Accessor) Rebase(owner reflect.Type, up func(any) any) Accessor {
	get, set := a.get, a.set
	return Accessor{
		get: func(obj any) any {
			base := up(obj)
			if base == nil {
				return nil
			}
			return get(base)
		},
		set: func(obj any, v any) {
			base := up(obj)
			if base == nil {
				panic(ErrUnreachable)
			}
			set(base, v)
		},
		owner:  owner,
		typ:    a.typ,
		custom: a.custom,
	}
}
