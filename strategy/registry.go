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

package strategy

import (
	"reflect"

	"dirpx.dev/rop/apis"
)

// NewRegistryStrategy returns a strategy that names a type by the class
// registered for it in reg. A nil reg always defers.
func NewRegistryStrategy(reg apis.Registry) apis.Strategy {
	return registryStrategy{reg: reg}
}

type registryStrategy struct {
	reg apis.Registry
}

// Ensure registryStrategy implements apis.Strategy.
var _ apis.Strategy = registryStrategy{}

// TryResolve looks up the dynamic type of v in the registry.
func (s registryStrategy) TryResolve(v any, cfg apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	return s.TryResolveType(reflect.TypeOf(v), cfg)
}

// TryResolveType returns the name of the class registered for t.
func (s registryStrategy) TryResolveType(t reflect.Type, _ apis.Config) (string, bool) {
	if t == nil || s.reg == nil {
		return "", false
	}
	if c, ok := s.reg.LookupType(t); ok {
		return c.Name(), true
	}
	return "", false
}
