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

// Package demo defines a small class hierarchy packaged as an extension.
// The ropctl command installs it so its classes can be listed, described
// and edited from the command line.
package demo

import (
	"github.com/google/uuid"

	"dirpx.dev/rop/apis"
	"dirpx.dev/rop/class"
	"dirpx.dev/rop/extension"
	"dirpx.dev/rop/property"
)

// Name is the extension name of the demo classes.
const Name = "demo"

// Property tags used by the demo classes.
const (
	TagInt apis.Tag = iota + 1
	TagFloat
	TagString
	TagBool
	TagChoice
	TagID
)

var tagNames = map[apis.Tag]string{
	TagInt:    "int",
	TagFloat:  "float",
	TagString: "string",
	TagBool:   "bool",
	TagChoice: "choice",
	TagID:     "id",
}

// TagName returns the readable name of a demo tag, or "" for unknown tags.
func TagName(t apis.Tag) string { return tagNames[t] }

// Ensure TagName is a TagNamer.
var _ apis.TagNamer = TagName

// Base is the root of the demo hierarchy.
type Base struct {
	Mode    int
	Value   int
	Enabled bool
}

var BaseClass = class.Define[Base]("Base", nil, func(r *class.Registrar[Base]) {
	r.Choice(TagChoice, "mode", property.Field(func(b *Base) *int { return &b.Mode }),
		[]string{"Off", "On", "Auto"}, property.Doc("operating mode"))
	r.Property(TagInt, "value", property.Field(func(b *Base) *int { return &b.Value }))
	r.Property(TagBool, "enabled", property.Field(func(b *Base) *bool { return &b.Enabled }),
		property.Doc("whether the device reacts to input"))
})

func (*Base) PropertyClass() *class.Meta { return BaseClass }

// Derived redeclares mode with its own options and adds a level.
type Derived struct {
	Base
	Level int
	Label string
}

var DerivedClass = class.Define[Derived]("Derived", BaseClass, func(r *class.Registrar[Derived]) {
	r.Choice(TagChoice, "mode", property.Field(func(d *Derived) *int { return &d.Mode }),
		[]string{"Disabled", "Enabled", "Super"}, property.Doc("extended operating mode"))
	r.Choice(TagChoice, "level", property.Field(func(d *Derived) *int { return &d.Level }),
		[]string{"Low", "Medium", "High"})
	r.Property(TagString, "label", property.Field(func(d *Derived) *string { return &d.Label }))
})

func (*Derived) PropertyClass() *class.Meta { return DerivedClass }

// MinReading is the lowest reading a Sensor accepts.
const MinReading = -273.15

// Sensor is a Derived with an identity and a validated reading.
type Sensor struct {
	Derived
	ID      uuid.UUID
	Unit    string
	reading float64
}

// Reading returns the last accepted reading.
func (s *Sensor) Reading() float64 { return s.reading }

func (s *Sensor) readingRef() *float64 { return &s.reading }

func (s *Sensor) setReading(v *float64) {
	if *v < MinReading {
		*v = MinReading
	}
	s.reading = *v
}

var SensorClass = class.Define[Sensor]("Sensor", DerivedClass, func(r *class.Registrar[Sensor]) {
	r.Property(TagID, "id", property.Field(func(s *Sensor) *uuid.UUID { return &s.ID }))
	r.Property(TagFloat, "reading", property.Methods((*Sensor).readingRef, (*Sensor).setReading))
	r.Property(TagString, "unit", property.StructField[Sensor]("Unit"))
	r.Describe("reading", "clamped at absolute zero")
	r.Describe("unit", "unit of the reading")
})

func (*Sensor) PropertyClass() *class.Meta { return SensorClass }

// NewSensor returns a Sensor with a fresh identity.
func NewSensor() *Sensor {
	return &Sensor{ID: uuid.New(), Unit: "C"}
}

// Classes returns the demo classes, root first.
func Classes() []*class.Meta {
	return []*class.Meta{BaseClass, DerivedClass, SensorClass}
}

// Extension returns the demo classes and their factories as one extension.
func Extension() extension.Extension {
	return extension.Static{
		ID:    Name,
		Metas: Classes(),
		Exported: map[string]extension.Factory{
			"Base":    {New: func() class.Object { return &Base{} }},
			"Derived": {New: func() class.Object { return &Derived{} }},
			"Sensor": {
				New: func() class.Object { return NewSensor() },
				Destroy: func(obj class.Object) {
					if s, ok := obj.(*Sensor); ok {
						s.ID = uuid.Nil
					}
				},
			},
		},
	}
}
