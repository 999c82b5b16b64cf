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

package apis

import "reflect"

// Registry is the process-wide set of known property classes.
// Keep it minimal so implementations can be lock-free or sync.Map-backed.
type Registry interface {
	// Register adds a class under its name and Go type.
	// Implementations must be idempotent for the same class value; registering
	// a different class under a taken name or type fails.
	Register(c Class) error
	// Lookup returns the class registered under name.
	Lookup(name string) (c Class, ok bool)
	// LookupType returns the class registered for the (nearest named) Go type t.
	LookupType(t reflect.Type) (c Class, ok bool)
	// Entries returns a snapshot of the registered classes sorted by name.
	Entries() []Entry
	// Count returns the number of registered classes.
	Count() int
	// Reset clears all registered classes.
	Reset()
}

// Entry is a single registered class in a Registry snapshot.
type Entry struct {
	// Name is the class name.
	Name string
	// Type is the named Go type backing the class.
	Type reflect.Type
	// Class is the registered class.
	Class Class
}
