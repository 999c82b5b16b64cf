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

package class_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dirpx.dev/rop/class"
	"dirpx.dev/rop/config"
	"dirpx.dev/rop/property"
)

type sample struct {
	A     int
	B     int
	Label string
}

func (*sample) ClassName() string { return "sample.custom" }

type unnamedSample struct{ X int }

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func fieldA() property.Accessor { return property.Field(func(s *sample) *int { return &s.A }) }
func fieldB() property.Accessor { return property.Field(func(s *sample) *int { return &s.B }) }

func TestDuplicateOptionsWarn(t *testing.T) {
	log, logs := observed()
	m := class.Define[sample]("Dups", nil, func(r *class.Registrar[sample]) {
		r.Choice(tagChoice, "a", fieldA(), []string{"x", "y", "x", "z", "y"})
	}, class.WithLogger(log))
	m.Init()

	entries := logs.FilterMessage("choice property has duplicate options").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "Dups", ctx["class"])
	assert.Equal(t, "a", ctx["property"])
	assert.Equal(t, []interface{}{"x", "y"}, ctx["duplicates"])

	// registration proceeds and own indexes stay valid
	opts, ok := m.Options("Dups", "a")
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y", "x", "z", "y"}, opts)
	s := &sample{A: 3}
	c := property.MustChoice(property.Bind(m.Find("a"), s, m))
	assert.Equal(t, "z", c.Option())
	require.True(t, c.SetOption("x"))
	assert.Equal(t, 0, s.A)
}

func TestDegenerateDeclarationsAccepted(t *testing.T) {
	log, logs := observed()
	m := class.Define[sample]("Degenerate", nil, func(r *class.Registrar[sample]) {
		r.Choice(tagChoice, "a", fieldA(), nil)
		r.Property(tagInt, "", fieldB())
	}, class.WithLogger(log))

	assert.Equal(t, 2, m.Count())
	assert.Len(t, logs.FilterMessage("choice property has no options").All(), 1)
	assert.Len(t, logs.FilterMessage("property declared with empty name").All(), 1)

	c := property.MustChoice(property.Bind(m.Find("a"), &sample{}, m))
	assert.Equal(t, "", c.Option())
	assert.False(t, c.SetIndex(0))
	assert.NotNil(t, m.Find(""))
}

func TestDuplicateNameLaterWins(t *testing.T) {
	log, logs := observed()
	m := class.Define[sample]("Twice", nil, func(r *class.Registrar[sample]) {
		r.Choice(tagChoice, "x", fieldA(), []string{"p", "q"})
		r.Property(tagInt, "y", fieldB())
		r.Property(tagInt, "x", fieldB(), property.Doc("second"))
	}, class.WithLogger(log))

	own := m.Own()
	require.Len(t, own, 2)
	assert.Equal(t, []string{"Twice.y", "Twice.x"}, names(own))
	assert.Equal(t, 2, own[1].Order())
	assert.False(t, own[1].IsChoice())
	assert.Equal(t, "second", own[1].Description())
	_, ok := m.Options("Twice", "x")
	assert.False(t, ok)

	entries := logs.FilterMessage("property declared twice, later declaration wins").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestDeclarationMisusePanics(t *testing.T) {
	cases := []struct {
		name    string
		declare func(r *class.Registrar[sample])
		want    error
	}{
		{"foreign accessor", func(r *class.Registrar[sample]) {
			r.Property(tagInt, "v", property.Field(func(b *Base) *int { return &b.Value }))
		}, class.ErrAccessorOwner},
		{"zero accessor", func(r *class.Registrar[sample]) {
			r.Property(tagInt, "v", property.Accessor{})
		}, class.ErrNilAccessor},
		{"zero choice accessor", func(r *class.Registrar[sample]) {
			r.Choice(tagChoice, "v", property.Accessor{}, []string{"a"})
		}, class.ErrNilAccessor},
		{"string choice", func(r *class.Registrar[sample]) {
			r.Choice(tagChoice, "v", property.StructField[sample]("Label"), []string{"a"})
		}, class.ErrChoiceStorage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := class.Define[sample]("Misuse", nil, tc.declare)
			panicsWith(t, tc.want, m.Init)

			// A failed declaration stays failed.
			assert.False(t, m.Initialized())
			panicsWith(t, tc.want, m.Init)
			panicsWith(t, tc.want, func() { m.Own() })
			panicsWith(t, tc.want, func() { m.Find("v") })

			child := class.Define[sampleChild]("MisuseChild", m, nil)
			panicsWith(t, tc.want, child.Init)
		})
	}
}

type sampleChild struct{ sample }

func TestAncestorNameRejected(t *testing.T) {
	panicsWith(t, class.ErrDuplicateClass, func() { class.Define[Derived]("Base", BaseClass, nil) })
	panicsWith(t, class.ErrDuplicateClass, func() { class.Define[Leaf]("Base", DerivedClass, nil) })
}

func TestChildLeavesParentOptions(t *testing.T) {
	child := class.Define[Derived]("Sibling", BaseClass, func(r *class.Registrar[Derived]) {
		r.Choice(tagChoice, "mode", property.Field(func(d *Derived) *int { return &d.Mode }), []string{"X", "Y"})
	})
	child.Init()

	own, ok := child.Options("Sibling", "mode")
	require.True(t, ok)
	assert.Equal(t, []string{"X", "Y"}, own)

	for _, m := range []*class.Meta{BaseClass, child} {
		opts, ok := m.Options("Base", "mode")
		require.True(t, ok, m.Name())
		assert.Equal(t, []string{"Off", "On", "Auto"}, opts, m.Name())
	}
	_, ok = BaseClass.Options("Sibling", "mode")
	assert.False(t, ok)
}

// panicsWith asserts that f panics with an error matching want.
func panicsWith(t *testing.T, want error, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic with %v", want)
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		assert.True(t, errors.Is(err, want), "got %v, want %v", err, want)
	}()
	f()
}

type stranger struct{ X int }

type holder struct {
	inner *Base
}

func TestUpcast(t *testing.T) {
	assert.PanicsWithError(t,
		"rop(class): parent class is not reachable from child: class_test.stranger does not embed class_test.Base",
		func() { class.Define[stranger]("Stranger", BaseClass, nil) })

	assert.Panics(t, func() {
		class.Define[stranger]("Stranger", BaseClass, nil, class.WithUpcast(func(d *Derived) *Base { return &d.Base }))
	})

	m := class.Define[holder]("Holder", BaseClass, nil, class.WithUpcast(func(h *holder) *Base { return h.inner }))
	h := &holder{inner: &Base{}}
	v := property.Bind(m.Find("value"), h, m)
	property.Set(v, 12)
	assert.Equal(t, 12, h.inner.Value)

	empty := property.Bind(m.Find("value"), &holder{}, m)
	assert.Panics(t, func() { property.Get[int](empty) })
}

func TestDerivedNames(t *testing.T) {
	assert.Equal(t, "sample.custom", class.Define[sample]("", nil, nil).Name())
	assert.Equal(t, "class_test.unnamedSample", class.Define[unnamedSample]("", nil, nil).Name())
	assert.Panics(t, func() { class.Define[struct{ X int }]("", nil, nil) })
}

func TestInitIdempotent(t *testing.T) {
	calls := 0
	m := class.Define[sample]("Once", nil, func(r *class.Registrar[sample]) {
		calls++
		r.Property(tagInt, "a", fieldA())
	})
	assert.False(t, m.Initialized())
	m.Init()
	m.Init()
	_ = m.All()
	assert.True(t, m.Initialized())
	assert.Equal(t, 1, calls)
	assert.Len(t, m.Own(), 1)
}

func TestParentInitializedFirst(t *testing.T) {
	var order []string
	parent := class.Define[Base]("P", nil, func(r *class.Registrar[Base]) {
		order = append(order, r.Name())
	})
	child := class.Define[Derived]("C", parent, func(r *class.Registrar[Derived]) {
		order = append(order, r.Name())
	})
	child.Init()
	assert.Equal(t, []string{"P", "C"}, order)
	assert.True(t, parent.Initialized())
}

type impostor struct{ Base }

func TestForeignObjectPanics(t *testing.T) {
	assert.Panics(t, func() { class.Property(&impostor{}, "mode") })
	assert.False(t, class.Property(&impostor{}, "missing").Valid())
}

func TestObjectStrategy(t *testing.T) {
	s := class.NewObjectStrategy()
	cfg := config.DefaultConfig()

	name, ok := s.TryResolve(&Derived{}, cfg)
	assert.True(t, ok)
	assert.Equal(t, "Derived", name)

	for _, typ := range []reflect.Type{reflect.TypeOf(Leaf{}), reflect.TypeOf(&Leaf{})} {
		name, ok = s.TryResolveType(typ, cfg)
		assert.True(t, ok)
		assert.Equal(t, "Leaf", name)
	}

	_, ok = s.TryResolve(sample{}, cfg)
	assert.False(t, ok)
	_, ok = s.TryResolveType(reflect.TypeOf(0), cfg)
	assert.False(t, ok)
	_, ok = s.TryResolveType(nil, cfg)
	assert.False(t, ok)
}

func TestSetLogger(t *testing.T) {
	log, logs := observed()
	class.SetLogger(log)
	defer class.SetLogger(nil)

	class.Define[sample]("Defaulted", nil, func(r *class.Registrar[sample]) {
		r.Choice(tagChoice, "a", fieldA(), []string{"k", "k"})
	}).Init()
	assert.Len(t, logs.FilterMessage("choice property has duplicate options").All(), 1)
	assert.Len(t, logs.FilterMessage("class registered").All(), 1)

	class.SetLogger(nil)
	assert.NotNil(t, class.Logger())
}
