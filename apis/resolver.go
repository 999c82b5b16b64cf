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

// Resolver turns a value or a Go type into a class name. The default chain
// asks, in order, the value's own class, Namer, the Registry, and finally
// derives "pkg.Type" from the Go type.
type Resolver interface {
	// Resolve returns the class name of v, or "" when none applies.
	Resolve(v any, cfg Config) string
	// ResolveType returns the class name of t, or "" when none applies.
	ResolveType(t reflect.Type, cfg Config) string
}

// Strategy is one step of a Resolver chain. A step that does not apply
// returns handled=false so the next step is tried; a handled "" stops the
// chain with no name.
type Strategy interface {
	TryResolve(v any, cfg Config) (name string, handled bool)
	TryResolveType(t reflect.Type, cfg Config) (name string, handled bool)
}
