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

package class

import (
	"fmt"
	"reflect"

	"dirpx.dev/rop/apis"
	"dirpx.dev/rop/property"
)

// Object is implemented by instances of reflected classes. PropertyClass
// must return the Meta of the instance's dynamic class and must not
// dereference the receiver.
type Object interface {
	PropertyClass() *Meta
}

// Of returns the class of obj, or nil.
func Of(obj Object) *Meta {
	if obj == nil {
		return nil
	}
	return obj.PropertyClass()
}

// bind resolves d on obj, checking that obj is an instance of m.
func bind(m *Meta, obj Object, d *property.Descriptor) property.Handle {
	if d == nil {
		return property.Handle{}
	}
	if t := reflect.TypeOf(obj); t != m.ptr {
		panic(fmt.Errorf("%w: %s reports class %s (%s)", ErrForeignObject, t, m.name, m.ptr))
	}
	return property.Bind(d, obj, m)
}

// Property returns a handle on the property called name, preferring the
// most-derived declaration. The handle is invalid when nothing matches.
func Property(obj Object, name string) property.Handle {
	m := Of(obj)
	if m == nil {
		return property.Handle{}
	}
	return bind(m, obj, m.Find(name))
}

// PropertyIn returns a handle on the property called name declared by
// className. The handle is invalid when nothing matches.
func PropertyIn(obj Object, name, className string) property.Handle {
	m := Of(obj)
	if m == nil {
		return property.Handle{}
	}
	return bind(m, obj, m.FindIn(name, className))
}

// Has reports whether obj has a property called name.
func Has(obj Object, name string) bool {
	m := Of(obj)
	return m != nil && m.Find(name) != nil
}

// HasIn reports whether obj has a property called name declared by className.
func HasIn(obj Object, name, className string) bool {
	m := Of(obj)
	return m != nil && m.FindIn(name, className) != nil
}

// Choice returns a choice handle on the property called name.
// It fails with property.ErrInvalidHandle or property.ErrNotChoice.
func Choice(obj Object, name string) (property.Choice, error) {
	return property.AsChoice(Property(obj, name))
}

// ChoiceIn returns a choice handle on the property called name declared by className.
func ChoiceIn(obj Object, name, className string) (property.Choice, error) {
	return property.AsChoice(PropertyIn(obj, name, className))
}

// Value reads the property called name. It reports false when obj has no
// such property. T must be the storage type.
func Value[T any](obj Object, name string) (T, bool) {
	h := Property(obj, name)
	if !h.Valid() {
		var zero T
		return zero, false
	}
	return property.Get[T](h), true
}

// SetValue writes the property called name. It reports false when obj has
// no such property. T must be the storage type.
func SetValue[T any](obj Object, name string, v T) bool {
	h := Property(obj, name)
	if !h.Valid() {
		return false
	}
	property.Set(h, v)
	return true
}

// Handles binds every property of obj, in the order of Meta.All.
func Handles(obj Object) []property.Handle {
	m := Of(obj)
	if m == nil {
		return nil
	}
	all := m.All()
	out := make([]property.Handle, 0, len(all))
	for _, d := range all {
		out = append(out, bind(m, obj, d))
	}
	return out
}

// NewObjectStrategy creates an apis.Strategy that names values by the
// class they report through Object.
func NewObjectStrategy() apis.Strategy {
	return objectStrategy{}
}

type objectStrategy struct{}

// Ensure objectStrategy implements apis.Strategy.
var _ apis.Strategy = objectStrategy{}

var objectType = reflect.TypeFor[Object]()

// TryResolve returns the class name of v when v is an Object.
func (objectStrategy) TryResolve(v any, _ apis.Config) (string, bool) {
	o, ok := v.(Object)
	if !ok {
		return "", false
	}
	if m := o.PropertyClass(); m != nil {
		return m.name, true
	}
	return "", false
}

// TryResolveType asks a zero instance of t, or of *t, for its class.
func (s objectStrategy) TryResolveType(t reflect.Type, cfg apis.Config) (string, bool) {
	switch {
	case t == nil:
		return "", false
	case t.Kind() == reflect.Ptr && t.Implements(objectType):
		return s.TryResolve(reflect.New(t.Elem()).Interface(), cfg)
	case t.Kind() != reflect.Ptr && reflect.PointerTo(t).Implements(objectType):
		return s.TryResolve(reflect.New(t).Interface(), cfg)
	}
	return "", false
}
