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

// Package config builds the naming configuration of rop.
//
// The configuration only affects how class names are derived from Go types
// (for classes defined without a name and for rop.ClassNameOf). Property
// metadata itself is never configured. Options compose in order, the last
// one wins; Load reads the same knobs from a file and ROP_* variables.
package config

import "dirpx.dev/rop/apis"

// Defaults applied by DefaultConfig and by Load for missing keys.
const (
	// Builtin types never back a class, so they have no class name.
	DefaultIncludeBuiltins = false
	// Deep enough for any realistic *[]map[string]*T nesting.
	DefaultMaxUnwrap = 8
	// map[string]*Sensor is named after Sensor, not string.
	DefaultMapPreferElem = true
	// Names are "pkg.Type"; the full import path is opt-in.
	DefaultQualifyPackage = false
)

// Option adjusts a configuration under construction.
type Option func(*apis.Config)

// DefaultConfig returns the configuration used when none is set.
func DefaultConfig() apis.Config {
	return apis.Config{
		IncludeBuiltins: DefaultIncludeBuiltins,
		MaxUnwrap:       DefaultMaxUnwrap,
		MapPreferElem:   DefaultMapPreferElem,
		QualifyPackage:  DefaultQualifyPackage,
	}
}

// NewConfig applies opts over DefaultConfig.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	return cfg
}

// WithIncludeBuiltins lets builtin types such as int resolve to their own name.
func WithIncludeBuiltins(include bool) Option {
	return func(c *apis.Config) { c.IncludeBuiltins = include }
}

// WithMaxUnwrap bounds how many pointer, slice, array, chan or map layers are
// peeled off to find a named type. Negative values restore the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			max = DefaultMaxUnwrap
		}
		c.MaxUnwrap = max
	}
}

// WithMapPreferElem selects the map value (true) or key (false) as the
// first candidate for a name.
func WithMapPreferElem(prefer bool) Option {
	return func(c *apis.Config) { c.MapPreferElem = prefer }
}

// WithQualifyPackage switches derived names to the full import path.
func WithQualifyPackage(qualify bool) Option {
	return func(c *apis.Config) { c.QualifyPackage = qualify }
}
