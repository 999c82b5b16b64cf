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

// Package property holds the building blocks of reflected properties:
// accessors that bind a name to storage on an instance, the immutable
// Descriptor recorded per declared property, and the instance-bound Handle
// (plus its Choice specialization) used to read and write values.
//
// Handles are cheap values. Obtain one by name through the class package,
// check Valid, and cache it for repeated access:
//
//	h := class.Property(obj, "value")
//	if h.Valid() {
//	    property.Set(h, 42)
//	    v := property.Get[int](h)
//	}
//
// Caller contract: Get and Set must be instantiated with the storage type
// of the property (Descriptor.Type). The tag is advisory metadata and is
// never checked. A wrong type argument, or any use of an invalid handle,
// is a programming error and panics.
package property

import (
	"errors"
)

var (
	// ErrInvalidHandle is raised when an invalid handle is read, written or converted.
	ErrInvalidHandle = errors.New("rop(property): invalid property handle")
	// ErrTypeMismatch is raised when Get/Set is instantiated with a type other
	// than the property's storage type.
	ErrTypeMismatch = errors.New("rop(property): value type does not match property storage")
	// ErrNotChoice is returned when a non-choice property is converted to a Choice.
	ErrNotChoice = errors.New("rop(property): property is not a choice property")
	// ErrUnreachable is raised when storage cannot be reached from the instance
	// (nil instance or nil embedded pointer on the way to the declaring struct).
	ErrUnreachable = errors.New("rop(property): property storage is unreachable")
	// ErrNoField is raised by StructField when the named field does not exist.
	ErrNoField = errors.New("rop(property): no such struct field")
	// ErrUnknownOption is returned when text does not match any option of a choice.
	ErrUnknownOption = errors.New("rop(property): unknown choice option")
	// ErrUnsupportedKind is returned when text cannot be converted to the storage kind.
	ErrUnsupportedKind = errors.New("rop(property): storage kind has no text form")
)
