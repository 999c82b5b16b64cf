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
	"reflect"

	"dirpx.dev/rop/merge"
	"dirpx.dev/rop/property"
)

// Name returns the class name.
func (m *Meta) Name() string { return m.name }

// String returns the class name.
func (m *Meta) String() string { return m.name }

// Type returns the struct type of the class.
func (m *Meta) Type() reflect.Type { return m.typ }

// Parent returns the parent class, or nil for a root class.
func (m *Meta) Parent() *Meta { return m.parent }

// ParentName returns the parent class name, or "" for a root class.
func (m *Meta) ParentName() string { return m.parentName() }

// Ancestors returns the ancestor class names, nearest first.
func (m *Meta) Ancestors() []string {
	m.Init()
	return append([]string(nil), m.chain...)
}

// Find returns the descriptor called name, preferring the most-derived
// declaring class, or nil.
func (m *Meta) Find(name string) *property.Descriptor {
	m.Init()
	if d, ok := m.own[name]; ok {
		return d
	}
	for _, d := range m.all {
		if d.Name() == name {
			return d
		}
	}
	return nil
}

// FindIn returns the descriptor called name declared by class className,
// or nil. It reaches properties shadowed by descendants.
func (m *Meta) FindIn(name, className string) *property.Descriptor {
	m.Init()
	for _, d := range m.all {
		if d.Name() == name && d.Class() == className {
			return d
		}
	}
	return nil
}

// All returns every descriptor, own first then each ancestor's in chain
// order. Shadowed names are kept.
func (m *Meta) All() []*property.Descriptor {
	m.Init()
	return append([]*property.Descriptor(nil), m.all...)
}

// Own returns the descriptors declared by this class in registration order.
func (m *Meta) Own() []*property.Descriptor {
	m.Init()
	return append([]*property.Descriptor(nil), m.ownList...)
}

// Effective returns one descriptor per name, the nearest declaration
// winning, most-derived first.
func (m *Meta) Effective() []*property.Descriptor {
	m.Init()
	return append([]*property.Descriptor(nil), m.effective...)
}

// Shadowed returns the name-keyed view where nearer classes win.
func (m *Meta) Shadowed() map[string]*property.Descriptor {
	m.Init()
	out := make(map[string]*property.Descriptor, len(m.shadowed))
	for k, v := range m.shadowed {
		out[k] = v
	}
	return out
}

// Named returns every descriptor called name across the chain, most-derived first.
func (m *Meta) Named(name string) []*property.Descriptor {
	m.Init()
	return merge.ByName(m.all, name)
}

// AncestorProperties returns the own properties of className, which must be
// this class or one of its ancestors, in registration order. It returns nil
// for an unrelated class.
func (m *Meta) AncestorProperties(className string) []*property.Descriptor {
	m.Init()
	if className == m.name {
		return m.Own()
	}
	l, ok := m.ancestorLists[className]
	if !ok {
		return nil
	}
	return append([]*property.Descriptor(nil), l...)
}

// Count returns the number of distinct property names.
func (m *Meta) Count() int {
	m.Init()
	return len(m.shadowed)
}

// Names returns the distinct property names, most-derived first.
func (m *Meta) Names() []string {
	m.Init()
	return merge.Names(m.all)
}

// Options returns the options that className registered for its choice
// property name.
func (m *Meta) Options(className, name string) ([]string, bool) {
	m.Init()
	opts, ok := m.options[className][name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), opts...), true
}

// IsA reports whether the class is className or derives from it.
func (m *Meta) IsA(className string) bool {
	for c := m; c != nil; c = c.parent {
		if c.name == className {
			return true
		}
	}
	return false
}
