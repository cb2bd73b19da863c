package event

import (
	"sync"

	"github.com/tradeboard/backend/internal/domain/shared"
)

// Wildcard subscribes a handler to every event type
const Wildcard = "*"

// HandlerRegistry manages event handler registrations
type HandlerRegistry struct {
	mu       sync.RWMutex
	handlers map[string][]shared.EventHandler // eventType -> handlers
	wildcard []shared.EventHandler            // handlers for all events
}

// NewHandlerRegistry creates a new handler registry
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		handlers: make(map[string][]shared.EventHandler),
		wildcard: make([]shared.EventHandler, 0),
	}
}

// Register adds a handler for an event type; Wildcard subscribes to all
func (r *HandlerRegistry) Register(eventType string, handler shared.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if eventType == Wildcard {
		r.wildcard = append(r.wildcard, handler)
		return
	}
	r.handlers[eventType] = append(r.handlers[eventType], handler)
}

// Unregister removes a handler from an event type
func (r *HandlerRegistry) Unregister(eventType string, handler shared.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if eventType == Wildcard {
		r.wildcard = removeHandler(r.wildcard, handler)
		return
	}
	r.handlers[eventType] = removeHandler(r.handlers[eventType], handler)
	if len(r.handlers[eventType]) == 0 {
		delete(r.handlers, eventType)
	}
}

// GetHandlers returns type-specific handlers plus wildcard handlers
func (r *HandlerRegistry) GetHandlers(eventType string) []shared.EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typeHandlers := r.handlers[eventType]
	result := make([]shared.EventHandler, 0, len(typeHandlers)+len(r.wildcard))
	result = append(result, typeHandlers...)
	result = append(result, r.wildcard...)

	return result
}

func removeHandler(handlers []shared.EventHandler, target shared.EventHandler) []shared.EventHandler {
	result := make([]shared.EventHandler, 0, len(handlers))
	for _, h := range handlers {
		if h != target {
			result = append(result, h)
		}
	}
	return result
}
