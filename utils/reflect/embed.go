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

package reflect

import (
	"errors"
	"reflect"
	"unsafe"
)

// ErrNotEmbedded is returned when a struct does not embed the requested type.
var ErrNotEmbedded = errors.New("rop(reflect): type is not embedded")

// step is one hop of an embedding path.
type step struct {
	index int
	ptr   bool
}

// Path is a field path from a struct to a nested field or embedded struct.
// Intermediate pointer hops are dereferenced while walking.
type Path struct {
	steps []step
	// deref makes Walk dereference a final pointer hop as well.
	deref bool
}

// Len returns the number of hops.
func (p Path) Len() int { return len(p.steps) }

// EmbedPath finds target among the anonymous fields of the struct type child,
// embedded either by value or by pointer, searching breadth-first up to
// maxDepth levels. The shallowest match wins.
func EmbedPath(child, target reflect.Type, maxDepth int) (Path, error) {
	if child == nil || target == nil {
		return Path{}, ErrReflectNilType
	}
	if child.Kind() != reflect.Struct {
		return Path{}, ErrNotEmbedded
	}

	type node struct {
		t     reflect.Type
		steps []step
	}
	queue := []node{{t: child}}
	for depth := 0; depth < maxDepth && len(queue) > 0; depth++ {
		var next []node
		for _, n := range queue {
			for i := 0; i < n.t.NumField(); i++ {
				f := n.t.Field(i)
				if !f.Anonymous {
					continue
				}
				ft, ptr := f.Type, false
				if ft.Kind() == reflect.Ptr {
					ft, ptr = ft.Elem(), true
				}
				steps := append(append([]step(nil), n.steps...), step{index: i, ptr: ptr})
				if ft == target {
					return Path{steps: steps, deref: true}, nil
				}
				if ft.Kind() == reflect.Struct {
					next = append(next, node{t: ft, steps: steps})
				}
			}
		}
		queue = next
	}
	return Path{}, ErrNotEmbedded
}

// FieldPath returns the path of the named field of struct type t, following
// promoted fields. The final hop is never dereferenced.
func FieldPath(t reflect.Type, name string) (Path, reflect.Type, bool) {
	if t == nil || t.Kind() != reflect.Struct {
		return Path{}, nil, false
	}
	sf, ok := t.FieldByName(name)
	if !ok {
		return Path{}, nil, false
	}
	steps := make([]step, 0, len(sf.Index))
	cur := t
	for _, i := range sf.Index {
		f := cur.Field(i)
		ptr := f.Type.Kind() == reflect.Ptr
		steps = append(steps, step{index: i, ptr: ptr})
		cur = f.Type
		if ptr {
			cur = cur.Elem()
		}
	}
	return Path{steps: steps}, sf.Type, true
}

// Walk follows p from root, which must be a non-nil pointer to the struct the
// path was computed for, and returns a pointer to the reached value.
// It returns nil when root is nil or an embedded pointer on the way is nil.
// Unexported fields are reachable: the pointer is rebuilt from the field address.
func Walk(root any, p Path) any {
	v := reflect.ValueOf(root)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return nil
	}
	v = v.Elem()
	for i, s := range p.steps {
		v = v.Field(s.index)
		last := i == len(p.steps)-1
		if s.ptr && (!last || p.deref) {
			if v.IsNil() {
				return nil
			}
			v = v.Elem()
		}
	}
	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Interface()
}
