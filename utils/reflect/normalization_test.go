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

package reflect_test

import (
	"errors"
	"reflect"
	"testing"

	"dirpx.dev/rop/apis"
	uref "dirpx.dev/rop/utils/reflect"
)

// Local test types.
type Valve struct{}
type Gauge[T any] struct{}

func cfg(opts ...func(*apis.Config)) apis.Config {
	c := apis.Config{MaxUnwrap: 8, MapPreferElem: true}
	for _, o := range opts {
		o(&c)
	}
	return c
}

func TestNormalize_Containers(t *testing.T) {
	want := reflect.TypeOf(Valve{})
	cases := []struct {
		name string
		typ  reflect.Type
		conf apis.Config
		want reflect.Type
	}{
		{"plain", reflect.TypeOf(Valve{}), cfg(), want},
		{"ptr", reflect.TypeOf(&Valve{}), cfg(), want},
		{"slice of ptr", reflect.TypeOf([]*Valve{}), cfg(), want},
		{"array", reflect.TypeOf([2]Valve{}), cfg(), want},
		{"chan", reflect.TypeOf((chan Valve)(nil)), cfg(), want},
		{"map prefer elem", reflect.TypeOf(map[string]Valve{}), cfg(), want},
		{"map prefer key", reflect.TypeOf(map[string]Valve{}), cfg(func(c *apis.Config) { c.MapPreferElem = false }), reflect.TypeOf("")},
		{"map unnamed sides", reflect.TypeOf(map[string][]Valve{}), cfg(func(c *apis.Config) { c.MapPreferElem = false }), reflect.TypeOf("")},
		{"generic", reflect.TypeOf(&Gauge[int]{}), cfg(), reflect.TypeOf(Gauge[int]{})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uref.Normalize(tc.typ, tc.conf)
			if err != nil {
				t.Fatalf("Normalize(%v) returned error: %v", tc.typ, err)
			}
			if got != tc.want {
				t.Fatalf("Normalize(%v) = %v, want %v", tc.typ, got, tc.want)
			}
		})
	}
}

func TestNormalize_Errors(t *testing.T) {
	if _, err := uref.Normalize(nil, cfg()); !errors.Is(err, uref.ErrReflectNilType) {
		t.Fatalf("nil type: want ErrReflectNilType, got %v", err)
	}
	if _, err := uref.Normalize(reflect.TypeOf(struct{}{}), cfg()); !errors.Is(err, uref.ErrReflectTypeNotNamed) {
		t.Fatalf("anonymous struct: want ErrReflectTypeNotNamed, got %v", err)
	}
	var pp **Valve
	if _, err := uref.Normalize(reflect.TypeOf(pp), cfg(func(c *apis.Config) { c.MaxUnwrap = 1 })); !errors.Is(err, uref.ErrReflectTypeNotNamed) {
		t.Fatalf("**Valve with MaxUnwrap=1: want ErrReflectTypeNotNamed, got %v", err)
	}
}
