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

// NewNamerStrategy returns a strategy that asks the value itself: a value
// implementing apis.Namer with a non-empty ClassName names itself.
func NewNamerStrategy() apis.Strategy {
	return namerStrategy{}
}

type namerStrategy struct{}

// Ensure namerStrategy implements apis.Strategy.
var _ apis.Strategy = namerStrategy{}

// TryResolve returns v's ClassName when v implements apis.Namer. An empty
// name defers.
func (namerStrategy) TryResolve(v any, _ apis.Config) (string, bool) {
	n, ok := v.(apis.Namer)
	if !ok {
		return "", false
	}
	name := n.ClassName()
	return name, name != ""
}

// TryResolveType defers: a Namer needs an instance.
func (namerStrategy) TryResolveType(reflect.Type, apis.Config) (string, bool) {
	return "", false
}
