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
	"encoding"
	"fmt"
	"reflect"
	"strconv"

	"github.com/spf13/cast"
)

var (
	textMarshaler   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshaler = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// Format renders the current value as text. Choice properties render their
// option string, or the bare code when it is out of range.
func (h Handle) Format() string {
	if h.IsChoice() {
		c := MustChoice(h)
		if s := c.Option(); s != "" {
			return s
		}
		return strconv.Itoa(c.Index())
	}
	loc := reflect.ValueOf(h.location())
	if loc.Type().Implements(textMarshaler) {
		if b, err := loc.Interface().(encoding.TextMarshaler).MarshalText(); err == nil {
			return string(b)
		}
	}
	v := loc.Elem().Interface()
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}

// Parse converts s to the storage type and commits it through the setter.
// Choice properties accept an option string or a numeric code. Integers are
// read in base 10 only, so "010" is ten.
func (h Handle) Parse(s string) error {
	if h.d == nil {
		return ErrInvalidHandle
	}
	if h.d.choice {
		c := MustChoice(h)
		if c.SetOption(s) {
			return nil
		}
		if i, err := strconv.Atoi(s); err == nil && c.SetIndex(i) {
			return nil
		}
		return fmt.Errorf("%w: %q for %s", ErrUnknownOption, s, h.d)
	}

	tmp := reflect.New(h.d.acc.typ)
	if tmp.Type().Implements(textUnmarshaler) {
		if err := tmp.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return fmt.Errorf("rop(property): parse %s: %w", h.d, err)
		}
		h.store(tmp.Interface())
		return nil
	}

	v := tmp.Elem()
	var err error
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		var b bool
		if b, err = cast.ToBoolE(s); err == nil {
			v.SetBool(b)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// Integers are decimal only, matching Format.
		var n int64
		if n, err = strconv.ParseInt(s, 10, v.Type().Bits()); err == nil {
			v.SetInt(n)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		var n uint64
		if n, err = strconv.ParseUint(s, 10, v.Type().Bits()); err == nil {
			v.SetUint(n)
		}
	case reflect.Float32, reflect.Float64:
		var f float64
		if f, err = cast.ToFloat64E(s); err == nil {
			v.SetFloat(f)
		}
	default:
		return fmt.Errorf("%w: %s is %s", ErrUnsupportedKind, h.d, h.d.acc.typ)
	}
	if err != nil {
		return fmt.Errorf("rop(property): parse %s: %w", h.d, err)
	}
	h.store(tmp.Interface())
	return nil
}
