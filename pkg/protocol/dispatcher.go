package protocol

import "sync"

// Handler processes a single event.
type Handler func(Event)

// Dispatcher routes events to handlers registered per event name.
// Dispatch runs the matching handler synchronously on the calling
// goroutine, so a single reader loop processes events strictly in
// arrival order with no concurrent handler execution.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	fallback Handler
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]Handler),
	}
}

// Bind registers the handler for the named event, replacing any
// previous binding for that name.
func (d *Dispatcher) Bind(name string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = h
}

// BindFallback registers the handler invoked for events with no
// matching binding.
func (d *Dispatcher) BindFallback(h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fallback = h
}

// Dispatch invokes the handler bound to the event's name and reports
// whether any handler ran.
func (d *Dispatcher) Dispatch(ev Event) bool {
	d.mu.RLock()
	h, ok := d.handlers[ev.Name]
	if !ok {
		h = d.fallback
	}
	d.mu.RUnlock()

	if h == nil {
		return false
	}
	h(ev)
	return true
}
