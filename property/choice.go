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

package property

import (
	"fmt"
	"reflect"

	"dirpx.dev/rop/merge"
)

// Choice is a Handle on an enumerated property. Its integer value indexes a
// list of option strings.
//
// Two option lists are in play: the declaring class's own list, and the
// merged list materialized at construction (own options followed by the
// options of every ancestor of the instance's class that declares a choice
// property of the same name, without repeated strings). Lookups consult the
// own list first and fall back to the merged list.
type Choice struct {
	Handle
	own    []string
	merged []string
}

// AsChoice converts h. It fails with ErrInvalidHandle or ErrNotChoice.
func AsChoice(h Handle) (Choice, error) {
	if h.d == nil {
		return Choice{}, ErrInvalidHandle
	}
	if !h.d.choice {
		return Choice{}, fmt.Errorf("%w: %s", ErrNotChoice, h.d)
	}
	c := Choice{Handle: h}
	if h.tbl == nil {
		return c, nil
	}
	own, _ := h.tbl.Options(h.d.class, h.d.name)
	c.own = own
	c.merged = merge.Options(own, h.tbl.Ancestors(), func(class string) ([]string, bool) {
		return h.tbl.Options(class, h.d.name)
	})
	return c, nil
}

// MustChoice is like AsChoice but panics on failure.
func MustChoice(h Handle) Choice {
	c, err := AsChoice(h)
	if err != nil {
		panic(err)
	}
	return c
}

// Index returns the stored integer code.
func (c Choice) Index() int {
	v := reflect.ValueOf(c.location()).Elem()
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int(v.Uint())
	}
	panic(fmt.Errorf("%w: %s stores %s, not an integer", ErrTypeMismatch, c.d, v.Type()))
}

// Option returns the option string of the current code: from the own list
// when in range, else from the merged list, else "".
func (c Choice) Option() string {
	i := c.Index()
	if i >= 0 && i < len(c.own) {
		return c.own[i]
	}
	if i >= 0 && i < len(c.merged) {
		return c.merged[i]
	}
	return ""
}

// SetOption stores the index of s, searching the own list first and the
// merged list second. It reports whether s was found.
func (c Choice) SetOption(s string) bool {
	for i, o := range c.own {
		if o == s {
			c.setIndex(i)
			return true
		}
	}
	for i, o := range c.merged {
		if o == s {
			c.setIndex(i)
			return true
		}
	}
	return false
}

// SetIndex stores i if it is within the own list or the merged list.
func (c Choice) SetIndex(i int) bool {
	if i < 0 || (i >= len(c.own) && i >= len(c.merged)) {
		return false
	}
	c.setIndex(i)
	return true
}

// Options returns a copy of the merged option list.
func (c Choice) Options() []string { return append([]string(nil), c.merged...) }

// OwnOptions returns a copy of the declaring class's option list.
func (c Choice) OwnOptions() []string { return append([]string(nil), c.own...) }

// Count returns the length of the merged option list.
func (c Choice) Count() int { return len(c.merged) }

// setIndex writes i through the setter using a temporary of the storage type.
func (c Choice) setIndex(i int) {
	tmp := reflect.New(c.d.acc.typ)
	switch tmp.Elem().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		tmp.Elem().SetInt(int64(i))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		tmp.Elem().SetUint(uint64(i))
	default:
		panic(fmt.Errorf("%w: %s stores %s, not an integer", ErrTypeMismatch, c.d, c.d.acc.typ))
	}
	c.store(tmp.Interface())
}
