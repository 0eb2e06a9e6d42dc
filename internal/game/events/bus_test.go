package events

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/core"
)

// recordingSubscriber is a test implementation of Subscriber
type recordingSubscriber struct {
	id              string
	interestedTypes map[string]bool
	received        []Event
	log             *[]string
}

func (rs *recordingSubscriber) ID() string { return rs.id }

func (rs *recordingSubscriber) HandleEvent(e Event) {
	rs.received = append(rs.received, e)
	if rs.log != nil {
		*rs.log = append(*rs.log, rs.id)
	}
}

func (rs *recordingSubscriber) InterestedIn(eventType string) bool {
	if rs.interestedTypes == nil {
		return true
	}
	return rs.interestedTypes[eventType]
}

func newTestBus() *EventBus {
	return NewEventBusWithLogger(zerolog.Nop())
}

func TestEventBus_FuncHandler(t *testing.T) {
	bus := newTestBus()

	var got Event
	handle := bus.SubscribeFunc(TypeGameStarted, func(e Event) { got = e })
	assert.Equal(t, "game.started_func_1", handle)
	assert.Equal(t, 1, bus.FuncHandlerCount(TypeGameStarted))

	bus.Publish(NewGameStartedEvent("g-1", 4, 4, nil, []core.Cell{{X: 3, Y: 3}}, core.Evader))

	require.NotNil(t, got)
	assert.Equal(t, TypeGameStarted, got.Type())
	assert.Equal(t, "g-1", got.GameID())
	assert.False(t, got.Timestamp().IsZero())

	started, ok := got.(*GameStartedEvent)
	require.True(t, ok)
	assert.Equal(t, core.Evader, started.FirstMover)
}

func TestEventBus_SubscribersInOrder(t *testing.T) {
	bus := newTestBus()
	var calls []string

	a := &recordingSubscriber{id: "a", log: &calls}
	b := &recordingSubscriber{id: "b", log: &calls}
	c := &recordingSubscriber{id: "c", log: &calls, interestedTypes: map[string]bool{TypeGameEnded: true}}
	bus.Subscribe(a)
	bus.Subscribe(b)
	bus.Subscribe(c)
	assert.Equal(t, 3, bus.SubscriberCount())

	for i := 0; i < 3; i++ {
		bus.Publish(NewTurnStartedEvent("g", i+1, core.Pursuer))
	}
	assert.Equal(t, []string{"a", "b", "a", "b", "a", "b"}, calls)
	assert.Empty(t, c.received, "c only wants game.ended")

	bus.Unsubscribe("a")
	bus.Unsubscribe("missing")
	calls = nil
	bus.Publish(NewGameEndedEvent("g", core.Pursuer, 9, 0))
	assert.Equal(t, []string{"b", "c"}, calls)
	assert.Equal(t, 2, bus.SubscriberCount())
}

func TestEventBus_ResubscribeKeepsPosition(t *testing.T) {
	bus := newTestBus()
	var calls []string

	bus.Subscribe(&recordingSubscriber{id: "a", log: &calls})
	bus.Subscribe(&recordingSubscriber{id: "b", log: &calls})
	bus.Subscribe(&recordingSubscriber{id: "a", log: &calls})

	bus.Publish(NewTurnStartedEvent("g", 1, core.Evader))
	assert.Equal(t, []string{"a", "b"}, calls)
}

type panickingSubscriber struct{}

func (panickingSubscriber) ID() string                 { return "boom" }
func (panickingSubscriber) HandleEvent(Event)          { panic("boom") }
func (panickingSubscriber) InterestedIn(_ string) bool { return true }

func TestEventBus_PanicIsolation(t *testing.T) {
	bus := newTestBus()
	after := &recordingSubscriber{id: "after"}
	bus.Subscribe(panickingSubscriber{})
	bus.Subscribe(after)

	handled := false
	bus.SubscribeFunc(TypeAgentHeld, func(Event) { panic("handler") })
	bus.SubscribeFunc(TypeAgentHeld, func(Event) { handled = true })

	assert.NotPanics(t, func() {
		bus.Publish(NewAgentHeldEvent("g", 2, core.Evader, core.Cell{X: 1, Y: 1}, HoldNoRoute))
	})
	assert.Len(t, after.received, 1)
	assert.True(t, handled)
}

func TestEventConstructors(t *testing.T) {
	moved := NewAgentMovedEvent("g", 3, core.Evader, core.Cell{X: 0, Y: 0}, core.Cell{X: 1, Y: 0}, 5)
	assert.Equal(t, TypeAgentMoved, moved.Type())
	assert.Equal(t, core.Cell{X: 1, Y: 0}, moved.To)
	assert.Equal(t, 5, moved.PathLen)

	reset := NewGameResetEvent("old", "new", 12)
	assert.Equal(t, TypeGameReset, reset.Type())
	assert.Equal(t, "old", reset.GameID())
	assert.Equal(t, "new", reset.NextGameID)
}
