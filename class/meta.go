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

package class

import (
	"fmt"
	"maps"
	"reflect"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"dirpx.dev/rop/apis"
	"dirpx.dev/rop/config"
	"dirpx.dev/rop/merge"
	"dirpx.dev/rop/property"
	"dirpx.dev/rop/resolver"
	"dirpx.dev/rop/strategy"
	uref "dirpx.dev/rop/utils/reflect"
)

// maxEmbedDepth bounds the search for an embedded parent struct.
const maxEmbedDepth = 8

// Meta is the process-wide property store of one class.
//
// Identity fields (name, type, parent, upcast) are fixed by Define. Every
// other field is written once by finalize and read-only afterwards.
type Meta struct {
	name    string
	typ     reflect.Type
	ptr     reflect.Type
	parent  *Meta
	up      func(any) any
	declare func(*Meta)
	log     *zap.Logger

	once   sync.Once
	inited atomic.Bool
	// failure holds the panic value of a failed finalize.
	failure any

	// own holds the descriptors declared by this class, keyed by name.
	own     map[string]*property.Descriptor
	ownList []*property.Descriptor
	// ancestors holds every ancestor's own descriptors, rebased onto this class.
	ancestors     map[string]map[string]*property.Descriptor
	ancestorLists map[string][]*property.Descriptor
	chain         []string
	shadowed      map[string]*property.Descriptor
	all           []*property.Descriptor
	effective     []*property.Descriptor
	// options maps class name to choice property name to its option list.
	options map[string]map[string][]string
	counter int
}

// Ensure Meta implements apis.Class and property.OptionTable.
var (
	_ apis.Class           = (*Meta)(nil)
	_ property.OptionTable = (*Meta)(nil)
)

// Option configures Define.
type Option func(*options)

type options struct {
	log    *zap.Logger
	up     func(any) any
	upFrom reflect.Type
	upTo   reflect.Type
}

// WithLogger routes the class's registration diagnostics to l.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithUpcast supplies the child to parent conversion instead of discovering
// an embedded parent struct. up may return nil when the parent part of an
// instance is absent.
func WithUpcast[C, P any](up func(*C) *P) Option {
	return func(o *options) {
		o.upFrom = reflect.TypeFor[*C]()
		o.upTo = reflect.TypeFor[*P]()
		o.up = func(obj any) any {
			if p := up(obj.(*C)); p != nil {
				return p
			}
			return nil
		}
	}
}

// Define declares class C named name with an optional parent. declare runs
// once, on first use, and registers the class's own properties. An empty
// name is derived from C (apis.Namer on *C, else "pkg.Type").
//
// Define panics with ErrNoUpcast when parent is set and C neither embeds the
// parent struct nor got WithUpcast, with ErrNoName when no name can be
// derived, and with ErrDuplicateClass when name is taken by an ancestor.
func Define[C any](name string, parent *Meta, declare func(r *Registrar[C]), opts ...Option) *Meta {
	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	t := reflect.TypeFor[C]()
	if name == "" {
		name = deriveName[C]()
	}
	for a := parent; a != nil; a = a.parent {
		if a.name == name {
			panic(fmt.Errorf("%w: %s", ErrDuplicateClass, name))
		}
	}
	m := &Meta{
		name:   name,
		typ:    t,
		ptr:    reflect.PointerTo(t),
		parent: parent,
		log:    o.log,
	}
	if parent != nil {
		m.up = upcast(m, parent, o)
	}
	if declare != nil {
		m.declare = func(m *Meta) { declare(&Registrar[C]{m: m}) }
	}
	return m
}

// deriveName names C through the namer and reflection strategies.
func deriveName[C any]() string {
	res := resolver.New(strategy.NewNamerStrategy(), strategy.NewReflectStrategy())
	name := res.Resolve(new(C), config.DefaultConfig())
	if name == "" {
		panic(fmt.Errorf("%w: %s", ErrNoName, reflect.TypeFor[C]()))
	}
	return name
}

// upcast returns the child to parent instance conversion for m.
func upcast(m, parent *Meta, o options) func(any) any {
	if o.up != nil {
		if o.upFrom != m.ptr || o.upTo != parent.ptr {
			panic(fmt.Errorf("%w: upcast converts %s to %s, want %s to %s",
				ErrNoUpcast, o.upFrom, o.upTo, m.ptr, parent.ptr))
		}
		return o.up
	}
	p, err := uref.EmbedPath(m.typ, parent.typ, maxEmbedDepth)
	if err != nil {
		panic(fmt.Errorf("%w: %s does not embed %s", ErrNoUpcast, m.typ, parent.typ))
	}
	return func(obj any) any { return uref.Walk(obj, p) }
}

// Init finalizes the store, parent first. It is idempotent and safe for
// concurrent use; every query calls it. A declaration that panicked makes
// every later Init panic with the same value.
func (m *Meta) Init() {
	if m.inited.Load() {
		return
	}
	m.once.Do(m.finalize)
	if !m.inited.Load() {
		panic(m.failure)
	}
}

// Initialized reports whether the store has been finalized.
func (m *Meta) Initialized() bool { return m.inited.Load() }

// finalize runs the registration: inherit from the parent, collect the own
// declarations, then build the merged views.
func (m *Meta) finalize() {
	defer func() {
		if r := recover(); r != nil {
			m.failure = r
			panic(r)
		}
	}()

	m.own = make(map[string]*property.Descriptor)
	m.ancestors = make(map[string]map[string]*property.Descriptor)
	m.options = make(map[string]map[string][]string)

	var parentChain []string
	if p := m.parent; p != nil {
		p.Init()
		m.ancestors[p.name] = rebaseAll(p.own, m.ptr, m.up)
		for cls, descs := range p.ancestors {
			m.ancestors[cls] = rebaseAll(descs, m.ptr, m.up)
		}
		for cls, opts := range p.options {
			m.options[cls] = maps.Clone(opts)
		}
		parentChain = p.chain
	}

	if m.declare != nil {
		m.declare(m)
		m.declare = nil
	}

	m.chain = merge.Chain(m.parentName(), parentChain)
	m.ownList = merge.Ordered(m.own)
	m.ancestorLists = make(map[string][]*property.Descriptor, len(m.chain))
	for _, cls := range m.chain {
		m.ancestorLists[cls] = merge.Ordered(m.ancestors[cls])
	}
	m.all = merge.All(m.ownList, m.chain, m.ancestorLists)
	m.shadowed = merge.Shadowed(m.ownList, m.chain, m.ancestorLists)
	m.effective = merge.Effective(m.all)

	m.logger().Debug("class registered",
		zap.String("class", m.name),
		zap.String("parent", m.parentName()),
		zap.Int("own", len(m.ownList)),
		zap.Int("all", len(m.all)))
	m.inited.Store(true)
}

// rebaseAll rebases every descriptor of src onto owner.
func rebaseAll(src map[string]*property.Descriptor, owner reflect.Type, up func(any) any) map[string]*property.Descriptor {
	out := make(map[string]*property.Descriptor, len(src))
	for name, d := range src {
		out[name] = d.Rebase(owner, up)
	}
	return out
}

func (m *Meta) parentName() string {
	if m.parent == nil {
		return ""
	}
	return m.parent.name
}

func (m *Meta) logger() *zap.Logger {
	if m.log != nil {
		return m.log
	}
	return defaultLogger.Load()
}
