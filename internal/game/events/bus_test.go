package events

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())

	received := false
	var receivedEvent Event

	bus.SubscribeFunc(TypeGameStarted, func(e Event) {
		received = true
		receivedEvent = e
	})

	bus.Publish(NewGameStartedEvent("test-game", 4, 61, 10))

	assert.True(t, received, "Event handler should have been called")
	require.NotNil(t, receivedEvent)
	assert.Equal(t, TypeGameStarted, receivedEvent.Type())
	assert.Equal(t, "test-game", receivedEvent.GameID())
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())

	handler1Called := false
	handler2Called := false

	bus.SubscribeFunc(TypeTurnStarted, func(e Event) {
		handler1Called = true
	})
	bus.SubscribeFunc(TypeTurnStarted, func(e Event) {
		handler2Called = true
	})

	bus.Publish(NewTurnStartedEvent("test-game", 0, 1))

	assert.True(t, handler1Called, "Handler 1 should have been called")
	assert.True(t, handler2Called, "Handler 2 should have been called")
	assert.Equal(t, 2, bus.GetFuncHandlerCount(TypeTurnStarted))
}

func TestEventBusUnsubscribeFunc(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())

	calls := 0
	id := bus.SubscribeFunc(TypePlayerWon, func(e Event) { calls++ })
	bus.Publish(NewPlayerWonEvent("g", 1, 9))
	bus.Unsubscribe(id)
	bus.Publish(NewPlayerWonEvent("g", 1, 9))

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, bus.GetFuncHandlerCount(TypePlayerWon))
}

func TestEventBusRecoversFromPanics(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())

	called := false
	bus.SubscribeFunc(TypeTurnEnded, func(e Event) { panic("boom") })
	bus.SubscribeFunc(TypeTurnEnded, func(e Event) { called = true })

	assert.NotPanics(t, func() {
		bus.Publish(NewTurnEndedEvent("g", 0, 1, 0))
	})
	assert.True(t, called, "later handlers still run")
}

// TestSubscriber is a test implementation of Subscriber
type TestSubscriber struct {
	id              string
	interestedTypes map[string]bool
	receivedEvents  []Event
}

func (ts *TestSubscriber) ID() string {
	return ts.id
}

func (ts *TestSubscriber) HandleEvent(e Event) {
	ts.receivedEvents = append(ts.receivedEvents, e)
}

func (ts *TestSubscriber) InterestedIn(eventType string) bool {
	if ts.interestedTypes == nil {
		return true
	}
	return ts.interestedTypes[eventType]
}

func TestEventBusSubscriber(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())

	subscriber := &TestSubscriber{
		id: "test-subscriber",
		interestedTypes: map[string]bool{
			TypeGameStarted: true,
			TypePlayerWon:   true,
		},
	}

	bus.Subscribe(subscriber)
	assert.Equal(t, 1, bus.GetSubscriberCount())

	bus.Publish(NewGameStartedEvent("test-game", 2, 19, 4))
	bus.Publish(NewTurnStartedEvent("test-game", 0, 1))
	bus.Publish(NewPlayerWonEvent("test-game", 0, 30))

	require.Len(t, subscriber.receivedEvents, 2)
	assert.Equal(t, TypeGameStarted, subscriber.receivedEvents[0].Type())
	assert.Equal(t, TypePlayerWon, subscriber.receivedEvents[1].Type())

	bus.Unsubscribe(subscriber.ID())
	bus.Publish(NewGameStartedEvent("test-game", 2, 19, 4))

	assert.Len(t, subscriber.receivedEvents, 2)
}

func TestEventBusDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())

	var order []string
	bus.SubscribeFunc(TypeTurnStarted, func(Event) { order = append(order, "first") })
	sub := &TestSubscriber{id: "second"}
	bus.Subscribe(sub)
	bus.SubscribeFunc(TypeTurnStarted, func(Event) { order = append(order, "third") })

	for i := 0; i < 5; i++ {
		order = order[:0]
		bus.Publish(NewTurnStartedEvent("g", 0, i))
		assert.Equal(t, []string{"first", "third"}, order)
	}
	assert.Len(t, sub.receivedEvents, 5)

	// resubscribing keeps the original slot
	bus.Subscribe(&TestSubscriber{id: "second"})
	assert.Equal(t, 1, bus.GetSubscriberCount())
}

func TestEventBusHandlersMaySubscribe(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())

	late := 0
	bus.SubscribeFunc(TypeTurnEnded, func(Event) {
		bus.SubscribeFunc(TypeTurnEnded, func(Event) { late++ })
	})

	assert.NotPanics(t, func() { bus.Publish(NewTurnEndedEvent("g", 0, 1, 0)) })
	assert.Equal(t, 0, late, "handlers added during delivery wait for the next event")

	bus.Publish(NewTurnEndedEvent("g", 0, 2, 0))
	assert.Equal(t, 1, late)
}
