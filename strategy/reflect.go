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
	"path"
	"reflect"
	"strings"
	"sync"

	"dirpx.dev/rop/apis"
	uref "dirpx.dev/rop/utils/reflect"
)

// NewReflectStrategy returns the fallback strategy. It names any value whose
// type normalizes to a named type as "pkg.Type" and never defers.
func NewReflectStrategy() apis.Strategy {
	return reflectStrategy{}
}

type reflectStrategy struct{}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = reflectStrategy{}

// derived memoizes names per type and configuration. Unnamed results are
// stored as "".
var derived sync.Map // derivedKey -> string

type derivedKey struct {
	t   reflect.Type
	cfg apis.Config
}

// TryResolve derives the class name of v's dynamic type.
func (reflectStrategy) TryResolve(v any, cfg apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	return deriveName(reflect.TypeOf(v), cfg), true
}

// TryResolveType derives the class name of t. Unnamed types resolve to "".
func (reflectStrategy) TryResolveType(t reflect.Type, cfg apis.Config) (string, bool) {
	if t == nil {
		return "", false
	}
	return deriveName(t, cfg), true
}

// deriveName returns the memoized name of t under cfg.
func deriveName(t reflect.Type, cfg apis.Config) string {
	key := derivedKey{t: t, cfg: cfg}
	if name, ok := derived.Load(key); ok {
		return name.(string)
	}
	name := qualifiedName(t, cfg)
	derived.Store(key, name)
	return name
}

// qualifiedName renders the normalized type of t. Builtins have no package
// and are kept only with IncludeBuiltins.
func qualifiedName(t reflect.Type, cfg apis.Config) string {
	nt, err := uref.Normalize(t, cfg)
	if err != nil {
		return ""
	}
	local := nt.Name()
	if i := strings.IndexByte(local, '['); i >= 0 {
		local = local[:i]
	}
	pkg := nt.PkgPath()
	switch {
	case pkg == "" && cfg.IncludeBuiltins:
		return local
	case pkg == "":
		return ""
	case !cfg.QualifyPackage:
		pkg = path.Base(pkg)
	}
	return pkg + "." + local
}
