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

package extension_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dirpx.dev/rop/apis"
	"dirpx.dev/rop/class"
	"dirpx.dev/rop/config"
	"dirpx.dev/rop/extension"
	"dirpx.dev/rop/property"
	"dirpx.dev/rop/registry"
)

type lamp struct {
	On     bool
	closed bool
}

var lampClass = class.Define[lamp]("Lamp", nil, func(r *class.Registrar[lamp]) {
	r.Property(1, "on", property.Field(func(l *lamp) *bool { return &l.On }))
})

func (*lamp) PropertyClass() *class.Meta { return lampClass }

type dimmer struct {
	lamp
	Level uint8
}

var dimmerClass = class.Define[dimmer]("Dimmer", lampClass, func(r *class.Registrar[dimmer]) {
	r.Property(2, "level", property.Field(func(d *dimmer) *uint8 { return &d.Level }))
})

func (*dimmer) PropertyClass() *class.Meta { return dimmerClass }

// twin claims the name of lamp with another type.
type twin struct{ On bool }

var twinClass = class.Define[twin]("Lamp", nil, nil)

func (*twin) PropertyClass() *class.Meta { return twinClass }

type orphan struct{}

var orphanClass = class.Define[orphan]("Orphan", nil, nil)

func (*orphan) PropertyClass() *class.Meta { return orphanClass }

func lights() extension.Static {
	return extension.Static{
		ID:    "lights",
		Metas: []*class.Meta{lampClass, dimmerClass},
		Exported: map[string]extension.Factory{
			"Lamp": {
				New:     func() class.Object { return &lamp{} },
				Destroy: func(o class.Object) { o.(*lamp).closed = true },
			},
			"Dimmer": {New: func() class.Object { return &dimmer{Level: 50} }},
		},
	}
}

func newHost(t *testing.T) (*extension.Host, apis.Registry, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	reg := registry.New(config.DefaultConfig())
	return extension.NewHost(func() apis.Registry { return reg }, extension.WithLogger(zap.New(core))), reg, logs
}

func TestInstallRegistersClasses(t *testing.T) {
	h, reg, logs := newHost(t)
	require.NoError(t, h.Install(lights()))

	assert.True(t, lampClass.Initialized())
	assert.True(t, dimmerClass.Initialized())
	c, ok := reg.Lookup("Dimmer")
	require.True(t, ok)
	assert.Equal(t, "Lamp", c.ParentName())
	assert.Equal(t, 2, reg.Count())

	inst := h.Extensions()
	require.Len(t, inst, 1)
	assert.Equal(t, "lights", inst[0].Name)
	assert.Equal(t, []string{"Lamp", "Dimmer"}, inst[0].Classes)
	assert.Equal(t, []string{"Dimmer", "Lamp"}, inst[0].Factories)
	assert.NotEqual(t, uuid.Nil, inst[0].ID)
	assert.Equal(t, []string{"Dimmer", "Lamp"}, h.Factories())
	assert.True(t, h.Installed("lights"))

	require.Len(t, logs.FilterMessage("extension installed").All(), 1)
}

func TestInstallIdempotent(t *testing.T) {
	h, reg, logs := newHost(t)
	require.NoError(t, h.Install(lights()))
	require.NoError(t, h.Install(lights()))
	assert.Len(t, h.Extensions(), 1)
	assert.Equal(t, 2, reg.Count())
	assert.Len(t, logs.FilterMessage("extension already installed").All(), 1)
}

func TestInstallConflicts(t *testing.T) {
	h, _, logs := newHost(t)
	require.NoError(t, h.Install(lights()))

	err := h.Install(extension.Static{ID: "shadow", Metas: []*class.Meta{twinClass}})
	assert.True(t, errors.Is(err, registry.ErrConflictingRegistration), "got %v", err)
	assert.False(t, h.Installed("shadow"))
	assert.Len(t, logs.FilterMessage("class registration failed").All(), 1)

	err = h.Install(extension.Static{ID: "copycat", Exported: map[string]extension.Factory{
		"Lamp": {New: func() class.Object { return &lamp{} }},
	}})
	assert.True(t, errors.Is(err, extension.ErrFactoryTaken), "got %v", err)

	err = h.Install(extension.Static{ID: "broken", Exported: map[string]extension.Factory{"X": {}}})
	assert.True(t, errors.Is(err, extension.ErrNilFactory), "got %v", err)

	assert.Equal(t, extension.ErrNilExtension, h.Install(nil))
	assert.Equal(t, extension.ErrEmptyName, h.Install(extension.Static{}))
}

func TestNewAndDestroy(t *testing.T) {
	h, _, _ := newHost(t)
	require.NoError(t, h.Install(lights()))

	obj, err := h.New("Dimmer")
	require.NoError(t, err)
	v, ok := class.Value[uint8](obj, "level")
	require.True(t, ok)
	assert.Equal(t, uint8(50), v)
	require.True(t, class.SetValue(obj, "on", true))
	assert.True(t, obj.(*dimmer).On)
	require.NoError(t, h.Destroy(obj))

	l, err := h.New("Lamp")
	require.NoError(t, err)
	require.NoError(t, h.Destroy(l))
	assert.True(t, l.(*lamp).closed)

	_, err = h.New("Nope")
	assert.True(t, errors.Is(err, extension.ErrNoFactory))
	assert.True(t, errors.Is(h.Destroy(&orphan{}), extension.ErrNoFactory))
	assert.True(t, errors.Is(h.Destroy(nil), extension.ErrNoFactory))
}

func TestFactoryMismatch(t *testing.T) {
	h, _, _ := newHost(t)
	require.NoError(t, h.Install(extension.Static{ID: "liar", Exported: map[string]extension.Factory{
		"Ghost": {New: func() class.Object { return &lamp{} }},
	}}))
	_, err := h.New("Ghost")
	assert.True(t, errors.Is(err, extension.ErrFactoryMismatch))
}

func TestHostFollowsRegistrySwap(t *testing.T) {
	first := registry.New(config.DefaultConfig())
	second := registry.New(config.DefaultConfig())
	current := first
	h := extension.NewHost(func() apis.Registry { return current })

	require.NoError(t, h.Install(extension.Static{ID: "a", Metas: []*class.Meta{lampClass}}))
	current = second
	require.NoError(t, h.Install(extension.Static{ID: "b", Metas: []*class.Meta{dimmerClass}}))

	assert.Equal(t, 1, first.Count())
	assert.Equal(t, 1, second.Count())
	_, ok := second.Lookup("Dimmer")
	assert.True(t, ok)
}
