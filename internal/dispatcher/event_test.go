package dispatcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriBug/internal/eventbus"
	"github.com/Rorical/RoriBug/internal/models"
	"github.com/Rorical/RoriBug/internal/update"
)

func TestListenForCoreEvents(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	d := NewEventDispatcher(eb)

	snap := models.SessionSnapshot{Application: "Wikimedia Commons", ChatVisible: true}
	require.NoError(t, eb.SendToUI(eventbus.StateUpdateEvent{Session: snap}))

	msg := d.ListenForCoreEvents()()
	coreMsg, ok := msg.(update.CoreEventMsg)
	require.True(t, ok)
	assert.Equal(t, eventbus.StateUpdateEvent{Session: snap}, coreMsg.Event)
}

func TestListenForCoreEvents_Stopped(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	d := NewEventDispatcher(eb)
	d.Stop()

	assert.Nil(t, d.ListenForCoreEvents()())
}
