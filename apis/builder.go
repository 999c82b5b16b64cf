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

// Builder assembles the Registry and Resolver of a snapshot. It is called
// again whenever the configuration, the extension payload or the builder
// itself changes, with the previous layers so that registered classes can
// be carried over.
type Builder interface {
	// BuildRegistry returns the registry for cfg. prev is the registry being
	// replaced, or nil. ext is the opaque payload given to SetExt.
	BuildRegistry(cfg Config, prev Registry, ext any) Registry
	// BuildResolver returns a resolver over reg. prev is the resolver being
	// replaced, or nil.
	BuildResolver(cfg Config, reg Registry, prev Resolver, ext any) Resolver
}
