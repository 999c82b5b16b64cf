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
	"reflect"

	"dirpx.dev/rop/apis"
)

// Descriptor is the metadata of one declared property.
// It is immutable once its class is finalized.
type Descriptor struct {
	name   string
	class  string
	tag    apis.Tag
	order  int
	acc    Accessor
	choice bool
	doc    string
}

// NewDescriptor creates a descriptor. It is called by the registration engine;
// order is the next registration counter value of class.
func NewDescriptor(tag apis.Tag, name, class string, order int, acc Accessor, choice bool) *Descriptor {
	return &Descriptor{
		name:   name,
		class:  class,
		tag:    tag,
		order:  order,
		acc:    acc,
		choice: choice,
	}
}

// Name returns the property name.
func (d *Descriptor) Name() string { return d.name }

// Class returns the name of the declaring class.
func (d *Descriptor) Class() string { return d.class }

// Tag returns the application-defined type tag.
func (d *Descriptor) Tag() apis.Tag { return d.tag }

// Order returns the registration order within the declaring class.
func (d *Descriptor) Order() int { return d.order }

// IsChoice reports whether the property is an enumerated choice.
func (d *Descriptor) IsChoice() bool { return d.choice }

// Description returns the free-text documentation, possibly empty.
func (d *Descriptor) Description() string { return d.doc }

// Type returns the storage type of the property.
func (d *Descriptor) Type() reflect.Type { return d.acc.typ }

// IsCustom reports whether the property uses a custom getter/setter pair.
func (d *Descriptor) IsCustom() bool { return d.acc.custom }

// Accessor returns the bound accessor.
func (d *Descriptor) Accessor() Accessor { return d.acc }

// String returns "Class.name".
func (d *Descriptor) String() string { return d.class + "." + d.name }

// SetDescription overwrites the description. It is only meant to be called
// while the declaring class is being registered.
func (d *Descriptor) SetDescription(doc string) { d.doc = doc }

// Rebase returns a copy whose accessor accepts instances of owner.
// See Accessor.Rebase.
func (d *Descriptor) Rebase(owner reflect.Type, up func(any) any) *Descriptor {
	cp := *d
	cp.acc = d.acc.Rebase(owner, up)
	return &cp
}

// Option adjusts a descriptor while it is being declared.
type Option func(*Descriptor)

// Doc sets the property description.
func Doc(text string) Option {
	return func(d *Descriptor) { d.doc = text }
}

// Apply runs opts on d in order. Nil options are skipped.
func (d *Descriptor) Apply(opts ...Option) *Descriptor {
	for _, o := range opts {
		if o != nil {
			o(d)
		}
	}
	return d
}
