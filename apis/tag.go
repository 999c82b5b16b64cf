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

import "fmt"

// Tag classifies the semantic kind of a property (e.g. "choice", "color",
// "temperature"). Applications define their own Tag constants; the engine
// stores and returns tags but never interprets them.
type Tag int

// String returns a diagnostic form "Tag(<n>)". Applications that want
// readable names supply a TagNamer where one is accepted.
func (t Tag) String() string {
	return fmt.Sprintf("Tag(%d)", int(t))
}

// TagNamer maps a Tag to a human-readable name. It returns "" for unknown tags.
type TagNamer func(Tag) string
