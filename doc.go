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

// Package rop provides runtime object properties for Go types.
//
// A class is a Go struct type whose properties are declared once, by name,
// with a type tag and an accessor, in a package-level class.Define call.
// Single inheritance is expressed by struct embedding: a class names its
// parent Meta and inherits every property the parent exposes. A property
// redeclared by a descendant shadows the ancestor's one, which stays
// reachable by qualifying the lookup with the ancestor's class name.
//
//	type Base struct{ Mode int }
//
//	var BaseClass = class.Define[Base]("Base", nil, func(r *class.Registrar[Base]) {
//		r.Choice(TagChoice, "mode", property.Field(func(b *Base) *int { return &b.Mode }),
//			[]string{"Off", "On", "Auto"})
//	})
//
//	func (*Base) PropertyClass() *class.Meta { return BaseClass }
//
// Objects are then read and written generically:
//
//	h := class.Property(obj, "mode")
//	v := property.Get[int](h)
//	property.Set(h, 2)
//	_ = h.Parse("Auto")
//
// # Design
//
// The per-class metadata (class.Meta) is finalized lazily on first use,
// exactly once, and is read-only afterwards. Lookups never lock.
//
// This package is the process-wide facade on top of it. It holds a
// read-mostly snapshot with four layers:
//
//   - Config: rules for deriving class names from Go types
//     (unwrap depth, builtins, package qualification).
//
//   - Registry: the classes known to the process, keyed by class name
//     and by Go type. A class name is bound to one class for the life
//     of the registry.
//
//   - Resolver: answers "what is the class name of this value or type?"
//     by trying, in order, the value's own class, apis.Namer, the
//     registry and finally the reflected "pkg.Type" name.
//
//   - Builder: constructs Registry and Resolver for a Config and migrates
//     entries from the previous snapshot.
//
// Readers load the snapshot atomically. Writers (SetConfig, SetRegistry,
// SetResolver, SetBuilder, SetExt, SetAll) take a build mutex, derive a new
// snapshot and publish it. A registry or resolver set explicitly is pinned
// and survives rebuilds until it is unpinned.
//
// # Extensions
//
// Classes defined by separately built parts of a program are installed
// explicitly with Install. The extension host registers every class of the
// extension in the current registry and keeps its factories, so objects can
// be created with New and disposed with Destroy by class name.
//
// # Diagnostics
//
// Registration warnings (duplicate names, duplicate choice options,
// degenerate declarations) and extension events are logged with zap.
// Nothing is logged until SetLogger installs a logger.
package rop
