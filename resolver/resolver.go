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

// Package resolver chains naming strategies into an apis.Resolver.
package resolver

import (
	"reflect"

	"dirpx.dev/rop/apis"
)

// New returns a resolver that asks each strategy in turn and keeps the first
// answer. Nil strategies are skipped. The resolver is immutable and safe for
// concurrent use when its strategies are.
func New(strategies ...apis.Strategy) apis.Resolver {
	var c chain
	for _, s := range strategies {
		if s != nil {
			c = append(c, s)
		}
	}
	return c
}

type chain []apis.Strategy

// Resolve returns the class name of v, or "" when no strategy handles it.
// A strategy that handles v with "" ends the search.
func (c chain) Resolve(v any, cfg apis.Config) string {
	return c.first(func(s apis.Strategy) (string, bool) { return s.TryResolve(v, cfg) })
}

// ResolveType returns the class name of t, or "" when no strategy handles it.
func (c chain) ResolveType(t reflect.Type, cfg apis.Config) string {
	return c.first(func(s apis.Strategy) (string, bool) { return s.TryResolveType(t, cfg) })
}

func (c chain) first(try func(apis.Strategy) (string, bool)) string {
	for _, s := range c {
		if name, ok := try(s); ok {
			return name
		}
	}
	return ""
}
