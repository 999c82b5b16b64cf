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

package extension

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dirpx.dev/rop/apis"
	"dirpx.dev/rop/class"
)

// Installation records one installed extension.
type Installation struct {
	ID        uuid.UUID
	Name      string
	Classes   []string
	Factories []string
}

// Host installs extensions into the registry returned by registry.
type Host struct {
	registry func() apis.Registry
	log      *zap.Logger

	mu        sync.RWMutex
	installed []Installation
	byName    map[string]int
	factories map[string]Factory
	owners    map[string]string
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithLogger sets the host logger.
func WithLogger(l *zap.Logger) HostOption {
	return func(h *Host) {
		if l != nil {
			h.log = l
		}
	}
}

// NewHost creates a host. registry is consulted on every Install so that the
// host follows registry swaps.
func NewHost(registry func() apis.Registry, opts ...HostOption) *Host {
	h := &Host{
		registry:  registry,
		log:       zap.NewNop(),
		byName:    make(map[string]int),
		factories: make(map[string]Factory),
		owners:    make(map[string]string),
	}
	for _, o := range opts {
		if o != nil {
			o(h)
		}
	}
	return h
}

// SetLogger replaces the host logger. A nil logger silences the host.
func (h *Host) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	h.mu.Lock()
	h.log = l
	h.mu.Unlock()
}

// Install finalizes and registers every class of ext and records its
// factories. It is idempotent per extension name. Classes registered before
// a failing one stay registered; the extension is not recorded.
func (h *Host) Install(ext Extension) error {
	if ext == nil {
		return ErrNilExtension
	}
	name := ext.Name()
	if name == "" {
		return ErrEmptyName
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.byName[name]; ok {
		h.log.Debug("extension already installed", zap.String("extension", name))
		return nil
	}

	factories := ext.Factories()
	for cls, f := range factories {
		if f.New == nil {
			return fmt.Errorf("%w: %s exports %q", ErrNilFactory, name, cls)
		}
		if owner, ok := h.owners[cls]; ok {
			return fmt.Errorf("%w: %q by %s", ErrFactoryTaken, cls, owner)
		}
	}

	reg := h.registry()
	inst := Installation{ID: uuid.New(), Name: name}
	for _, m := range ext.Classes() {
		if m == nil {
			continue
		}
		m.Init()
		if err := reg.Register(m); err != nil {
			h.log.Error("class registration failed",
				zap.String("extension", name),
				zap.String("class", m.Name()),
				zap.Error(err))
			return fmt.Errorf("rop(extension): install %s: %w", name, err)
		}
		inst.Classes = append(inst.Classes, m.Name())
	}

	for cls, f := range factories {
		h.factories[cls] = f
		h.owners[cls] = name
		inst.Factories = append(inst.Factories, cls)
	}
	sort.Strings(inst.Factories)

	h.byName[name] = len(h.installed)
	h.installed = append(h.installed, inst)
	h.log.Info("extension installed",
		zap.String("extension", name),
		zap.Stringer("install_id", inst.ID),
		zap.Strings("classes", inst.Classes),
		zap.Strings("factories", inst.Factories))
	return nil
}

// New creates an object of className with the installed factory.
func (h *Host) New(className string) (class.Object, error) {
	h.mu.RLock()
	f, ok := h.factories[className]
	h.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoFactory, className)
	}
	obj := f.New()
	if got := class.Of(obj); got == nil || got.Name() != className {
		return nil, fmt.Errorf("%w: %q built %T", ErrFactoryMismatch, className, obj)
	}
	return obj, nil
}

// Destroy disposes obj with the Destroy function of its class's factory,
// when there is one.
func (h *Host) Destroy(obj class.Object) error {
	m := class.Of(obj)
	if m == nil {
		return fmt.Errorf("%w: %T", ErrNoFactory, obj)
	}
	h.mu.RLock()
	f, ok := h.factories[m.Name()]
	h.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoFactory, m.Name())
	}
	if f.Destroy != nil {
		f.Destroy(obj)
	}
	return nil
}

// Extensions returns the installations in install order.
func (h *Host) Extensions() []Installation {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]Installation(nil), h.installed...)
}

// Installed reports whether an extension called name is installed.
func (h *Host) Installed(name string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.byName[name]
	return ok
}

// Factories returns the sorted names of the classes that can be created.
func (h *Host) Factories() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, 0, len(h.factories))
	for cls := range h.factories {
		out = append(out, cls)
	}
	sort.Strings(out)
	return out
}
