package bridge

import "sync"

// transportControl is the slice of the client the registry needs: telling
// the backend which events to deliver. Kept as an interface so the registry
// can be exercised without a live socket.
type transportControl interface {
	sendSubscribe(EventName) error
	sendUnsubscribe(EventName) error
}

// Registry fans push events out to in-process subscribers. It deduplicates
// transport-level subscriptions: the backend is asked for an event name once
// when the first subscriber arrives, and released when the last one leaves.
//
// A Registry is created at startup and handed to whoever needs it; there is
// deliberately no package-level instance.
type Registry struct {
	mu        sync.Mutex
	transport transportControl
	subs      map[EventName]map[int]func(Event)
	nextToken int
}

// NewRegistry returns an empty registry. It becomes active once a Client
// binds to it via Dial or NewClientConn.
func NewRegistry() *Registry {
	return &Registry{
		subs: make(map[EventName]map[int]func(Event)),
	}
}

// bind attaches the registry to a transport. Called by the client.
func (r *Registry) bind(t transportControl) {
	r.mu.Lock()
	r.transport = t
	r.mu.Unlock()
}

// Subscribe registers fn for the named event and returns a cancel function.
// The first subscriber for an event triggers a transport subscription;
// duplicates share it. Callbacks run on the client's read goroutine, so
// they must hand work off rather than block.
func (r *Registry) Subscribe(name EventName, fn func(Event)) (cancel func()) {
	r.mu.Lock()

	listeners, ok := r.subs[name]
	if !ok {
		listeners = make(map[int]func(Event))
		r.subs[name] = listeners
	}
	r.nextToken++
	token := r.nextToken
	listeners[token] = fn

	first := len(listeners) == 1
	t := r.transport
	r.mu.Unlock()

	if first && t != nil {
		// Best effort: a failed subscribe frame is retried on reconnect.
		_ = t.sendSubscribe(name)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			r.unsubscribe(name, token)
		})
	}
}

func (r *Registry) unsubscribe(name EventName, token int) {
	r.mu.Lock()
	listeners, ok := r.subs[name]
	if ok {
		delete(listeners, token)
		if len(listeners) == 0 {
			delete(r.subs, name)
		}
	}
	last := ok && len(listeners) == 0
	t := r.transport
	r.mu.Unlock()

	if last && t != nil {
		_ = t.sendUnsubscribe(name)
	}
}

// SubscriberCount returns the number of callbacks registered for name.
func (r *Registry) SubscriberCount(name EventName) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs[name])
}

// activeNames lists event names with at least one subscriber, for
// resubscription after a reconnect.
func (r *Registry) activeNames() []EventName {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]EventName, 0, len(r.subs))
	for name := range r.subs {
		names = append(names, name)
	}
	return names
}

// dispatch delivers an event to every subscriber of its name.
func (r *Registry) dispatch(ev Event) {
	r.mu.Lock()
	listeners := r.subs[ev.Name]
	fns := make([]func(Event), 0, len(listeners))
	for _, fn := range listeners {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
