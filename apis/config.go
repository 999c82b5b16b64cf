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

package apis

// Config carries read-only knobs that influence class-name resolution.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// IncludeBuiltins controls whether builtin/no-package named types
	// (e.g., "int", "string") are returned as class names. If false, such cases yield "".
	IncludeBuiltins bool

	// MaxUnwrap limits container unwrapping depth (ptr/slice/array/chan/map)
	// when looking for the Go type behind a value.
	MaxUnwrap int

	// MapPreferElem controls which side of map[K]V is considered "primary"
	// when searching for a nearest named inner type. If true, prefer V; otherwise K.
	MapPreferElem bool

	// QualifyPackage makes names derived from Go types carry the full import
	// path ("dirpx.dev/rop/internal/demo.Sensor") instead of its last
	// element ("demo.Sensor").
	QualifyPackage bool
}
