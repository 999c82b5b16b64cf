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

package registry

import (
	"reflect"

	"dirpx.dev/rop/apis"
)

// Named returns a class without properties, naming t. It lets plain Go types
// take part in name resolution next to reflected classes.
func Named(t reflect.Type, name string) apis.Class {
	return named{name: name, typ: t}
}

// named is a comparable apis.Class, so registering the same pair twice is idempotent.
type named struct {
	name string
	typ  reflect.Type
}

// Ensure named implements apis.Class.
var _ apis.Class = named{}

func (n named) Name() string       { return n.name }
func (n named) Type() reflect.Type { return n.typ }
func (n named) ParentName() string { return "" }
