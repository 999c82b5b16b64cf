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

package class_test

import (
	"dirpx.dev/rop/apis"
	"dirpx.dev/rop/class"
	"dirpx.dev/rop/property"
)

const (
	tagInt apis.Tag = iota + 1
	tagChoice
	tagString
	tagFloat
)

type Base struct {
	Mode  int
	Value int
}

var BaseClass = class.Define[Base]("Base", nil, func(r *class.Registrar[Base]) {
	r.Choice(tagChoice, "mode", property.Field(func(b *Base) *int { return &b.Mode }), []string{"Off", "On", "Auto"})
	r.Property(tagInt, "value", property.Field(func(b *Base) *int { return &b.Value }), property.Doc("raw value"))
})

func (*Base) PropertyClass() *class.Meta { return BaseClass }

type Derived struct {
	Base
	Level int
	temp  float64
}

func (d *Derived) temperature() *float64 { return &d.temp }

func (d *Derived) setTemperature(v *float64) {
	if *v < -273.15 {
		*v = -273.15
	}
	d.temp = *v
}

var DerivedClass = class.Define[Derived]("Derived", BaseClass, func(r *class.Registrar[Derived]) {
	r.Choice(tagChoice, "mode", property.Field(func(d *Derived) *int { return &d.Mode }), []string{"Disabled", "Enabled", "Super"})
	r.Choice(tagChoice, "level", property.Field(func(d *Derived) *int { return &d.Level }), []string{"Low", "Medium", "High"})
	r.Property(tagFloat, "temperature", property.Methods((*Derived).temperature, (*Derived).setTemperature))
	r.Describe("temperature", "degrees Celsius")
})

func (*Derived) PropertyClass() *class.Meta { return DerivedClass }

// Leaf embeds its parent by pointer.
type Leaf struct {
	*Derived
	Name string
}

var LeafClass = class.Define[Leaf]("Leaf", DerivedClass, func(r *class.Registrar[Leaf]) {
	r.Property(tagString, "name", property.StructField[Leaf]("Name"))
})

func (*Leaf) PropertyClass() *class.Meta { return LeafClass }

func names(ds []*property.Descriptor) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.String())
	}
	return out
}
