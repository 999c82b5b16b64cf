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

// Package class keeps the per-class property metadata.
//
// A class is a Go struct type that declares its properties once, through
// Define, and optionally names a parent class. Single inheritance is
// expressed with struct embedding: the child embeds the parent struct, by
// value or by pointer, at any depth. Ancestor properties are then reachable
// from child instances.
//
//	var BaseClass = class.Define[Base]("Base", nil, func(r *class.Registrar[Base]) {
//	    r.Choice(TagChoice, "mode", property.Field(func(b *Base) *int { return &b.Mode }),
//	        []string{"Off", "On", "Auto"})
//	    r.Property(TagInt, "value", property.Field(func(b *Base) *int { return &b.Value }),
//	        property.Doc("raw value"))
//	})
//
//	func (*Base) PropertyClass() *class.Meta { return BaseClass }
//
// Every class must implement Object on its pointer type, and every
// descendant must override PropertyClass, otherwise the promoted method of
// the parent reports the wrong class.
//
// # Lifecycle
//
// Define only records the declaration. The store is finalized on first use
// (Init or any query), exactly once, parent first. After that it is
// immutable and read without locks. The declare callback must not query its
// own Meta.
//
// # Lookup
//
// Not-found is a normal outcome: Find returns nil, Property returns an
// invalid handle, Has and Value report false. Misuse (foreign accessors,
// non-integer choice storage, an unreachable parent) panics at declaration.
package class

import "errors"

var (
	// ErrAccessorOwner is raised when an accessor is bound to a type other than *C.
	ErrAccessorOwner = errors.New("rop(class): accessor does not belong to the declaring class")
	// ErrNilAccessor is raised when a property is declared with a zero accessor.
	ErrNilAccessor = errors.New("rop(class): nil accessor")
	// ErrChoiceStorage is raised when a choice property is not stored in an integer.
	ErrChoiceStorage = errors.New("rop(class): choice property storage is not an integer")
	// ErrNoUpcast is raised when a child instance cannot be converted to its parent.
	ErrNoUpcast = errors.New("rop(class): parent class is not reachable from child")
	// ErrNoName is raised when no name is given and none can be derived.
	ErrNoName = errors.New("rop(class): cannot derive class name")
	// ErrDuplicateClass is raised when a class reuses the name of an ancestor.
	ErrDuplicateClass = errors.New("rop(class): class name already used by an ancestor")
	// ErrForeignObject is raised when an instance is not of the type of the class it reports.
	ErrForeignObject = errors.New("rop(class): instance type does not match its class")
)
