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

	"go.uber.org/zap"

	"dirpx.dev/rop/apis"
	"dirpx.dev/rop/merge"
	"dirpx.dev/rop/property"
)

// Registrar collects the own declarations of class C. It is only valid
// inside the declare callback passed to Define.
type Registrar[C any] struct {
	m *Meta
}

// Name returns the name of the class being declared.
func (r *Registrar[C]) Name() string { return r.m.name }

// Property declares a property. It returns the new descriptor.
func (r *Registrar[C]) Property(tag apis.Tag, name string, acc property.Accessor, opts ...property.Option) *property.Descriptor {
	return r.m.add(tag, name, acc, false, opts)
}

// Choice declares a choice property whose storage is an integer index into
// options. Duplicate option strings are accepted and reported as a warning.
func (r *Registrar[C]) Choice(tag apis.Tag, name string, acc property.Accessor, options []string, opts ...property.Option) *property.Descriptor {
	if acc.IsZero() {
		panic(fmt.Errorf("%w: %s.%s", ErrNilAccessor, r.m.name, name))
	}
	if !isInteger(acc.Type()) {
		panic(fmt.Errorf("%w: %s.%s stores %s", ErrChoiceStorage, r.m.name, name, acc.Type()))
	}
	log := r.m.logger()
	if len(options) == 0 {
		log.Debug("choice property has no options",
			zap.String("class", r.m.name), zap.String("property", name))
	}
	if dup := merge.Duplicates(options); len(dup) > 0 {
		log.Warn("choice property has duplicate options",
			zap.String("class", r.m.name),
			zap.String("property", name),
			zap.Strings("duplicates", dup))
	}

	d := r.m.add(tag, name, acc, true, opts)
	own := r.m.options[r.m.name]
	if own == nil {
		own = make(map[string][]string)
		r.m.options[r.m.name] = own
	}
	own[name] = append([]string(nil), options...)
	return d
}

// Describe sets or overwrites the description of an own property. It
// reports whether the property was found.
func (r *Registrar[C]) Describe(name, doc string) bool {
	d, ok := r.m.own[name]
	if ok {
		d.SetDescription(doc)
	}
	return ok
}

// add records an own descriptor with the next registration order.
func (m *Meta) add(tag apis.Tag, name string, acc property.Accessor, choice bool, opts []property.Option) *property.Descriptor {
	if acc.IsZero() {
		panic(fmt.Errorf("%w: %s.%s", ErrNilAccessor, m.name, name))
	}
	if acc.Owner() != m.ptr {
		panic(fmt.Errorf("%w: %s.%s is bound to %s, want %s", ErrAccessorOwner, m.name, name, acc.Owner(), m.ptr))
	}

	log := m.logger()
	if name == "" {
		log.Debug("property declared with empty name", zap.String("class", m.name))
	}
	if prev, dup := m.own[name]; dup {
		log.Warn("property declared twice, later declaration wins",
			zap.String("class", m.name),
			zap.String("property", name),
			zap.Int("previous_order", prev.Order()))
		if prev.IsChoice() && !choice {
			delete(m.options[m.name], name)
		}
	}

	d := property.NewDescriptor(tag, name, m.name, m.counter, acc, choice).Apply(opts...)
	m.counter++
	m.own[name] = d
	return d
}

func isInteger(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}
