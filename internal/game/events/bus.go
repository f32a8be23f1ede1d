package events

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EventBus delivers events synchronously, in subscription order. Replaying a
// match with the same seed therefore drives subscribers in the same order.
type EventBus struct {
	mu     sync.RWMutex
	routes []route
	nextID int
	logger zerolog.Logger
}

// route is either a Subscriber (eventType empty) or a function handler
// bound to one event type
type route struct {
	id        string
	eventType string
	sub       Subscriber
	handler   EventHandler
}

func (r route) wants(eventType string) bool {
	if r.sub != nil {
		return r.sub.InterestedIn(eventType)
	}
	return r.eventType == eventType
}

func (r route) deliver(e Event) {
	if r.sub != nil {
		r.sub.HandleEvent(e)
		return
	}
	r.handler(e)
}

// NewEventBus creates a bus logging through the global logger
func NewEventBus() *EventBus {
	return NewEventBusWithLogger(log.Logger)
}

// NewEventBusWithLogger creates a new event bus logging through logger
func NewEventBusWithLogger(logger zerolog.Logger) *EventBus {
	return &EventBus{
		logger: logger.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe adds a subscriber. Subscribing an ID twice replaces the earlier
// subscriber in place.
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	r := route{id: subscriber.ID(), sub: subscriber}
	for i := range eb.routes {
		if eb.routes[i].id == r.id {
			eb.routes[i] = r
			return
		}
	}
	eb.routes = append(eb.routes, r)
	eb.logger.Debug().Str("subscriber_id", r.id).Msg("Subscriber added to event bus")
}

// SubscribeFunc registers handler for one event type and returns an id
// usable with Unsubscribe
func (eb *EventBus) SubscribeFunc(eventType string, handler EventHandler) string {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextID++
	id := fmt.Sprintf("%s_func_%d", eventType, eb.nextID)
	eb.routes = append(eb.routes, route{id: id, eventType: eventType, handler: handler})
	eb.logger.Debug().
		Str("event_type", eventType).
		Str("handler_id", id).
		Msg("Function handler added to event bus")
	return id
}

// Unsubscribe removes a subscriber or a function handler
func (eb *EventBus) Unsubscribe(id string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for i := range eb.routes {
		if eb.routes[i].id == id {
			eb.routes = append(eb.routes[:i:i], eb.routes[i+1:]...)
			eb.logger.Debug().Str("subscriber_id", id).Msg("Subscriber removed from event bus")
			return
		}
	}
}

// Publish hands event to every interested route. The route list is copied
// first, so handlers may subscribe or publish without deadlocking; routes
// added during delivery see only later events. A panicking handler is
// logged and skipped.
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	routes := make([]route, len(eb.routes))
	copy(routes, eb.routes)
	eb.mu.RUnlock()

	eventType := event.Type()
	eb.logger.Debug().
		Str("event_type", eventType).
		Str("game_id", event.GameID()).
		Msg("Publishing event")

	for _, r := range routes {
		if r.wants(eventType) {
			eb.safeDeliver(r, event)
		}
	}
}

func (eb *EventBus) safeDeliver(r route, e Event) {
	defer func() {
		if p := recover(); p != nil {
			eb.logger.Error().
				Str("subscriber_id", r.id).
				Str("event_type", e.Type()).
				Interface("panic", p).
				Msg("Subscriber panicked while handling event")
		}
	}()
	r.deliver(e)
}

// GetSubscriberCount returns the number of Subscribers, excluding function
// handlers
func (eb *EventBus) GetSubscriberCount() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	n := 0
	for _, r := range eb.routes {
		if r.sub != nil {
			n++
		}
	}
	return n
}

// GetFuncHandlerCount returns the number of function handlers for eventType
func (eb *EventBus) GetFuncHandlerCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	n := 0
	for _, r := range eb.routes {
		if r.sub == nil && r.eventType == eventType {
			n++
		}
	}
	return n
}
