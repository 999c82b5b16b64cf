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

package rop

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"dirpx.dev/rop/apis"
	"dirpx.dev/rop/builder"
	"dirpx.dev/rop/class"
	"dirpx.dev/rop/config"
	"dirpx.dev/rop/extension"
	"dirpx.dev/rop/registry"
)

// init publishes the default snapshot and creates the extension host.
func init() {
	s := &state{cfg: config.DefaultConfig(), log: zap.NewNop()}
	b := builder.New()
	s.reg = b.BuildRegistry(s.cfg, nil, nil)
	s.res = b.BuildResolver(s.cfg, s.reg, nil, nil)
	s.bld = b
	st.Store(s)
	host = extension.NewHost(Registry)
}

var (
	// ErrNilRegistry is raised when a builder returns a nil registry.
	ErrNilRegistry = errors.New("rop: builder returned nil registry")
	// ErrNilResolver is raised when a builder returns a nil resolver.
	ErrNilResolver = errors.New("rop: builder returned nil resolver")
)

// ClassNameOf resolves the class name of v with the global resolver.
func ClassNameOf(v any) string {
	s := st.Load()
	return s.res.Resolve(v, s.cfg)
}

// ClassNameOfType resolves the class name of t with the global resolver.
func ClassNameOfType(t reflect.Type) string {
	s := st.Load()
	return s.res.ResolveType(t, s.cfg)
}

// Register finalizes m and adds it to the global registry.
func Register(m *class.Meta) error {
	m.Init()
	return st.Load().reg.Register(m)
}

// RegisterType names a plain Go type in the global registry.
func RegisterType(t reflect.Type, name string) error {
	return st.Load().reg.Register(registry.Named(t, name))
}

// Class returns the reflected class registered under name.
func Class(name string) (*class.Meta, bool) {
	c, ok := st.Load().reg.Lookup(name)
	if !ok {
		return nil, false
	}
	m, ok := c.(*class.Meta)
	return m, ok
}

// Classes returns every reflected class in the global registry, by name.
func Classes() []*class.Meta {
	entries := st.Load().reg.Entries()
	out := make([]*class.Meta, 0, len(entries))
	for _, e := range entries {
		if m, ok := e.Class.(*class.Meta); ok {
			out = append(out, m)
		}
	}
	return out
}

// Install installs ext through the global host into the global registry.
func Install(ext extension.Extension) error { return host.Install(ext) }

// New creates an object of className with an installed factory.
func New(className string) (class.Object, error) { return host.New(className) }

// Destroy disposes obj with its installed factory.
func Destroy(obj class.Object) error { return host.Destroy(obj) }

// Host returns the global extension host.
func Host() *extension.Host { return host }

// Logger returns the global logger.
func Logger() *zap.Logger { return st.Load().log }

// SetLogger routes registration and extension diagnostics to l.
// A nil logger silences them.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	next.log = l
	class.SetLogger(l)
	host.SetLogger(l)
	st.Store(&next)
}

// Configure loads the configuration at path (and ROP_* variables) and
// applies it with SetConfig.
func Configure(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	SetConfig(cfg)
	return nil
}

// SetAll explicitly sets all global state components.
//
// Nil arguments leave the corresponding component unchanged,
// except for ext which is always replaced. A given registry or resolver
// is pinned; a nil one is rebuilt and unpinned.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := &state{cfg: old.cfg, ext: ext, bld: old.bld, log: old.log}
	if cfg != nil {
		next.cfg = *cfg
	}
	if bld != nil {
		next.bld = bld
	}

	next.reg, next.preg = reg, reg != nil
	if reg == nil {
		next.reg = next.bld.BuildRegistry(next.cfg, old.reg, ext)
	}
	next.res, next.pres = res, res != nil
	if res == nil {
		next.res = next.bld.BuildResolver(next.cfg, next.reg, old.res, ext)
	}
	publish(next)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration and rebuilds the unpinned layers.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	next.cfg = cfg
	rebuild(&next, st.Load())
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry pins reg as the global registry and rebuilds the resolver
// unless it is pinned. A nil reg is ignored.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	next.reg, next.preg = reg, true
	if !old.pres {
		next.res = old.bld.BuildResolver(old.cfg, reg, old.res, old.ext)
	}
	publish(&next)
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver pins res as the global resolver. A nil res is ignored.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	next.res, next.pres = res, true
	publish(&next)
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder replaces the builder and rebuilds the unpinned layers with it.
// A nil b is ignored.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	next.bld = b
	rebuild(&next, st.Load())
}

// SetExt replaces the extension payload handed to the builder and rebuilds
// the unpinned layers.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	next.ext = ext
	rebuild(&next, st.Load())
}

// ExtAs returns the extension payload as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned reports whether the global registry is pinned.
func IsRegistryPinned() bool { return st.Load().preg }

// PinRegistry stops automatic rebuilds of the global registry.
func PinRegistry() { setPins(func(s *state) { s.preg = true }) }

// UnpinRegistry lets the global registry be rebuilt again.
func UnpinRegistry() { setPins(func(s *state) { s.preg = false }) }

// IsResolverPinned reports whether the global resolver is pinned.
func IsResolverPinned() bool { return st.Load().pres }

// PinResolver stops automatic rebuilds of the global resolver.
func PinResolver() { setPins(func(s *state) { s.pres = true }) }

// UnpinResolver lets the global resolver be rebuilt again.
func UnpinResolver() { setPins(func(s *state) { s.pres = false }) }

func setPins(fn func(*state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	fn(&next)
	publish(&next)
}

// rebuild recomputes the unpinned layers of next from old and publishes it.
// The caller holds buildMu.
func rebuild(next, old *state) {
	if !next.preg {
		next.reg = next.bld.BuildRegistry(next.cfg, old.reg, next.ext)
	}
	if !next.pres {
		next.res = next.bld.BuildResolver(next.cfg, next.reg, old.res, next.ext)
	}
	publish(next)
}

// publish stores s after checking that both layers exist.
// The caller holds buildMu.
func publish(s *state) {
	if s.reg == nil {
		panic(ErrNilRegistry)
	}
	if s.res == nil {
		panic(ErrNilResolver)
	}
	st.Store(s)
}

// buildMu serializes writers so that partially built snapshots are never published.
var buildMu sync.Mutex

// st is the global snapshot.
var st atomic.Pointer[state]

// host installs extensions into the registry of the current snapshot.
var host *extension.Host

// state is an immutable snapshot published atomically via st.Store; never
// mutate fields of a published state. Writers copy, modify and swap.
type state struct {
	cfg apis.Config
	// ext is the opaque payload handed to the builder.
	ext any
	reg apis.Registry
	res apis.Resolver
	bld apis.Builder
	log *zap.Logger
	// preg and pres mark pinned layers that rebuilds leave alone.
	preg bool
	pres bool
}
