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

// Package builder assembles the default registry and resolver layers.
package builder

import (
	"dirpx.dev/rop/apis"
	"dirpx.dev/rop/class"
	"dirpx.dev/rop/registry"
	"dirpx.dev/rop/resolver"
	"dirpx.dev/rop/strategy"
)

// New returns the default apis.Builder. It is stateless.
func New() apis.Builder {
	return defaults{}
}

type defaults struct{}

var _ apis.Builder = defaults{}

// BuildRegistry returns a fresh registry for cfg carrying over every class of
// prev. Classes that no longer normalize under cfg, or that now collide, are
// dropped.
func (defaults) BuildRegistry(cfg apis.Config, prev apis.Registry, _ any) apis.Registry {
	next := registry.New(cfg)
	if prev == nil {
		return next
	}
	for _, e := range prev.Entries() {
		_ = next.Register(e.Class)
	}
	return next
}

// BuildResolver chains class objects, apis.Namer, the registry and
// reflection, in that order.
func (defaults) BuildResolver(_ apis.Config, reg apis.Registry, _ apis.Resolver, _ any) apis.Resolver {
	return resolver.New(
		class.NewObjectStrategy(),
		strategy.NewNamerStrategy(),
		strategy.NewRegistryStrategy(reg),
		strategy.NewReflectStrategy(),
	)
}
