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

// Class is the registry-facing view of a property class.
// The full metadata surface lives on *class.Meta; this interface only exposes
// what registries and resolvers need so they stay independent of the engine.
type Class interface {
	// Name returns the class name used for qualified property lookups.
	Name() string
	// Type returns the named Go struct type that backs the class.
	Type() reflect.Type
	// ParentName returns the declared parent class name, or "" for a root class.
	ParentName() string
}
