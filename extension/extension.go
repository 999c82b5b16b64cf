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

// Package extension installs classes contributed by separately built parts
// of a program into one shared registry.
//
// An Extension lists the classes it defines and the factories it exports by
// class name. A Host installs extensions explicitly, once, at startup: it
// finalizes every class, registers it, and keeps the factories so that
// objects can be created and destroyed by class name. A class name is bound
// to exactly one Meta for the life of the registry, so two extensions that
// disagree about a class fail to install instead of diverging.
package extension

import (
	"errors"

	"dirpx.dev/rop/class"
)

var (
	// ErrNilExtension is returned when a nil extension is installed.
	ErrNilExtension = errors.New("rop(extension): nil extension")
	// ErrEmptyName is returned when an extension reports an empty name.
	ErrEmptyName = errors.New("rop(extension): empty extension name")
	// ErrNilFactory is returned when a factory has no New function.
	ErrNilFactory = errors.New("rop(extension): factory without constructor")
	// ErrFactoryTaken is returned when a factory name is already exported by another extension.
	ErrFactoryTaken = errors.New("rop(extension): factory already provided")
	// ErrNoFactory is returned when no factory is installed for a class name.
	ErrNoFactory = errors.New("rop(extension): no factory for class")
	// ErrFactoryMismatch is returned when a factory builds an object of another class.
	ErrFactoryMismatch = errors.New("rop(extension): factory built an object of another class")
)

// Extension is a unit of classes and factories installed together.
type Extension interface {
	// Name identifies the extension. Installing the same name twice is a no-op.
	Name() string
	// Classes returns the classes the extension defines.
	Classes() []*class.Meta
	// Factories returns the exported constructors keyed by class name.
	Factories() map[string]Factory
}

// Factory creates and optionally disposes objects of one class.
type Factory struct {
	New     func() class.Object
	Destroy func(class.Object)
}

// Static is an Extension built from plain values.
type Static struct {
	ID       string
	Metas    []*class.Meta
	Exported map[string]Factory
}

// Ensure Static implements Extension.
var _ Extension = Static{}

func (s Static) Name() string                  { return s.ID }
func (s Static) Classes() []*class.Meta        { return s.Metas }
func (s Static) Factories() map[string]Factory { return s.Exported }
