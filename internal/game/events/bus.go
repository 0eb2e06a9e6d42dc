package events

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EventBus delivers events synchronously, in subscription order.
type EventBus struct {
	mu           sync.RWMutex
	order        []string
	subscribers  map[string]Subscriber
	funcHandlers map[string][]EventHandler
	logger       zerolog.Logger
}

// NewEventBus creates a new event bus logging through the global logger
func NewEventBus() *EventBus {
	return NewEventBusWithLogger(log.Logger)
}

// NewEventBusWithLogger creates a new event bus with its own logger
func NewEventBusWithLogger(logger zerolog.Logger) *EventBus {
	return &EventBus{
		subscribers:  make(map[string]Subscriber),
		funcHandlers: make(map[string][]EventHandler),
		logger:       logger.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe adds a subscriber. Re-subscribing an ID replaces the old one
// but keeps its position.
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	id := subscriber.ID()
	if _, exists := eb.subscribers[id]; !exists {
		eb.order = append(eb.order, id)
	}
	eb.subscribers[id] = subscriber
	eb.logger.Debug().Str("subscriber_id", id).Msg("Subscriber added to event bus")
}

// Unsubscribe removes a subscriber from the event bus
func (eb *EventBus) Unsubscribe(subscriberID string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if _, exists := eb.subscribers[subscriberID]; !exists {
		return
	}
	delete(eb.subscribers, subscriberID)
	for i, id := range eb.order {
		if id == subscriberID {
			eb.order = append(eb.order[:i], eb.order[i+1:]...)
			break
		}
	}
	eb.logger.Debug().Str("subscriber_id", subscriberID).Msg("Subscriber removed from event bus")
}

// SubscribeFunc adds a function handler for one event type and returns its handle.
func (eb *EventBus) SubscribeFunc(eventType string, handler EventHandler) string {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.funcHandlers[eventType] = append(eb.funcHandlers[eventType], handler)
	return fmt.Sprintf("%s_func_%d", eventType, len(eb.funcHandlers[eventType]))
}

// Publish sends an event to every interested subscriber, then to the
// function handlers registered for its type. A panicking receiver is
// logged and skipped.
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	eventType := event.Type()
	eb.logger.Debug().
		Str("event_type", eventType).
		Str("game_id", event.GameID()).
		Msg("Publishing event")

	for _, id := range eb.order {
		subscriber := eb.subscribers[id]
		if !subscriber.InterestedIn(eventType) {
			continue
		}
		eb.deliver(eventType, id, func() { subscriber.HandleEvent(event) })
	}
	for i, handler := range eb.funcHandlers[eventType] {
		h := handler
		eb.deliver(eventType, fmt.Sprintf("func_%d", i), func() { h(event) })
	}
}

func (eb *EventBus) deliver(eventType, receiver string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error().
				Str("receiver", receiver).
				Str("event_type", eventType).
				Interface("panic", r).
				Msg("Event receiver panicked")
		}
	}()
	fn()
}

// SubscriberCount returns the number of subscribers
func (eb *EventBus) SubscriberCount() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers)
}

// FuncHandlerCount returns the number of function handlers for an event type
func (eb *EventBus) FuncHandlerCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.funcHandlers[eventType])
}
