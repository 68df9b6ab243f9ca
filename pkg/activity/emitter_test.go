package activity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitterStampsDefaultChannel(t *testing.T) {
	capture := &CaptureHook{}
	em := NewEmitter(Hooks{capture}, Config{Enabled: true})
	require.True(t, em.Enabled())

	require.NoError(t, em.Emit(context.Background(), Event{
		Verb:       "dashboard.layout.resize",
		ObjectType: "column_layout",
		ObjectID:   "sku",
	}))
	require.Len(t, capture.Events, 1)
	assert.Equal(t, DefaultChannel, capture.Events[0].Channel)
}

func TestEmitterChannelOverride(t *testing.T) {
	capture := &CaptureHook{}
	em := NewEmitter(Hooks{capture}, Config{Enabled: true, Channel: "layouts"})

	require.NoError(t, em.Emit(context.Background(), Event{Verb: "dedupe.products.removed", ObjectType: "product", Channel: "maintenance"}))
	require.NoError(t, em.Emit(context.Background(), Event{Verb: "dashboard.layout.reset", ObjectType: "widget_layout"}))

	require.Len(t, capture.Events, 2)
	assert.Equal(t, "maintenance", capture.Events[0].Channel, "explicit channel wins")
	assert.Equal(t, "layouts", capture.Events[1].Channel)
}

func TestEmitterDisabled(t *testing.T) {
	capture := &CaptureHook{}
	cases := []struct {
		name string
		em   *Emitter
	}{
		{name: "config off", em: NewEmitter(Hooks{capture}, Config{})},
		{name: "no hooks", em: NewEmitter(nil, Config{Enabled: true})},
		{name: "nil emitter", em: nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, tc.em.Enabled())
			assert.NoError(t, tc.em.Emit(context.Background(), Event{Verb: "dashboard.layout.toggle", ObjectType: "widget_layout"}))
		})
	}
	assert.Empty(t, capture.Events)
}
