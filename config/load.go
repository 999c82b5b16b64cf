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

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"

	"dirpx.dev/rop/apis"
)

// EnvPrefix is the prefix of environment variables read by Load (e.g. ROP_NAMING_MAX_UNWRAP).
const EnvPrefix = "ROP"

// Keys understood by Load and FromViper.
const (
	KeyIncludeBuiltins = "naming.include_builtins"
	KeyMaxUnwrap       = "naming.max_unwrap"
	KeyMapPreferElem   = "naming.map_prefer_elem"
	KeyQualifyPackage  = "naming.qualify_package"
)

// ErrEmptyPath is returned when Load is called without a file path.
var ErrEmptyPath = errors.New("rop(config): empty config path")

// SetDefaults registers the defaults of DefaultConfig on v.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault(KeyIncludeBuiltins, d.IncludeBuiltins)
	v.SetDefault(KeyMaxUnwrap, d.MaxUnwrap)
	v.SetDefault(KeyMapPreferElem, d.MapPreferElem)
	v.SetDefault(KeyQualifyPackage, d.QualifyPackage)
}

// FromViper builds an apis.Config from the naming.* keys of v.
// Missing keys fall back to DefaultConfig.
func FromViper(v *viper.Viper) apis.Config {
	SetDefaults(v)
	return NewConfig(
		WithIncludeBuiltins(v.GetBool(KeyIncludeBuiltins)),
		WithMaxUnwrap(v.GetInt(KeyMaxUnwrap)),
		WithMapPreferElem(v.GetBool(KeyMapPreferElem)),
		WithQualifyPackage(v.GetBool(KeyQualifyPackage)),
	)
}

// NewViper returns a viper instance wired for ROP_* environment variables.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads the config file at path (YAML, TOML or JSON, picked by extension)
// and overlays ROP_* environment variables. A missing file is not an error:
// defaults and environment still apply.
func Load(path string) (apis.Config, error) {
	if path == "" {
		return apis.Config{}, ErrEmptyPath
	}
	v := NewViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !errors.Is(err, fs.ErrNotExist) {
			return apis.Config{}, fmt.Errorf("rop(config): read %s: %w", path, err)
		}
	}
	return FromViper(v), nil
}
