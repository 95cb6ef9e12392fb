package bridge

import (
	"encoding/json"
	"sync"
	"testing"
)

// recordingTransport counts sub/unsub frames without a socket.
type recordingTransport struct {
	mu     sync.Mutex
	subs   []EventName
	unsubs []EventName
}

func (r *recordingTransport) sendSubscribe(name EventName) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, name)
	return nil
}

func (r *recordingTransport) sendUnsubscribe(name EventName) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unsubs = append(r.unsubs, name)
	return nil
}

func (r *recordingTransport) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs), len(r.unsubs)
}

func TestRegistryDeduplicatesTransportSubscriptions(t *testing.T) {
	reg := NewRegistry()
	tr := &recordingTransport{}
	reg.bind(tr)

	cancel1 := reg.Subscribe(EventMediaPlayback, func(Event) {})
	cancel2 := reg.Subscribe(EventMediaPlayback, func(Event) {})

	if subs, _ := tr.counts(); subs != 1 {
		t.Errorf("transport subscriptions = %d, want 1 (deduplicated)", subs)
	}
	if n := reg.SubscriberCount(EventMediaPlayback); n != 2 {
		t.Errorf("SubscriberCount = %d, want 2", n)
	}

	cancel1()
	if _, unsubs := tr.counts(); unsubs != 0 {
		t.Error("transport unsubscribed while a subscriber remains")
	}

	cancel2()
	if _, unsubs := tr.counts(); unsubs != 1 {
		t.Errorf("transport unsubscribes = %d, want 1 after last cancel", unsubs)
	}
	if n := reg.SubscriberCount(EventMediaPlayback); n != 0 {
		t.Errorf("SubscriberCount after cancels = %d", n)
	}
}

func TestRegistryCancelIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	tr := &recordingTransport{}
	reg.bind(tr)

	cancel := reg.Subscribe(EventMenubarHide, func(Event) {})
	cancel()
	cancel()

	if _, unsubs := tr.counts(); unsubs != 1 {
		t.Errorf("unsubs = %d, want 1 (double cancel must not double-unsubscribe)", unsubs)
	}
}

func TestRegistryDispatchFansOut(t *testing.T) {
	reg := NewRegistry()

	var mu sync.Mutex
	var seen []string
	reg.Subscribe(EventCLICommand, func(ev Event) {
		var p CLICommandPayload
		_ = ev.DecodePayload(&p)
		mu.Lock()
		seen = append(seen, "a:"+p.Command)
		mu.Unlock()
	})
	reg.Subscribe(EventCLICommand, func(ev Event) {
		mu.Lock()
		seen = append(seen, "b")
		mu.Unlock()
	})

	payload, _ := json.Marshal(CLICommandPayload{Command: "refresh"})
	reg.dispatch(Event{Name: EventCLICommand, Payload: payload})

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 {
		t.Fatalf("dispatch reached %d subscribers, want 2: %v", len(seen), seen)
	}
	found := false
	for _, s := range seen {
		if s == "a:refresh" {
			found = true
		}
	}
	if !found {
		t.Errorf("payload not decoded by subscriber: %v", seen)
	}
}

func TestRegistryDispatchNoSubscribers(t *testing.T) {
	reg := NewRegistry()
	// Must not panic.
	reg.dispatch(Event{Name: EventScreenFocus})
}

func TestRegistryActiveNames(t *testing.T) {
	reg := NewRegistry()
	reg.Subscribe(EventMediaPlayback, func(Event) {})
	reg.Subscribe(EventWorkspaceChanged, func(Event) {})
	reg.Subscribe(EventWorkspaceChanged, func(Event) {})

	names := reg.activeNames()
	if len(names) != 2 {
		t.Errorf("activeNames = %v, want 2 entries", names)
	}
}

func TestKnownEvent(t *testing.T) {
	if !KnownEvent(EventWindowCreated) {
		t.Error("EventWindowCreated not known")
	}
	if KnownEvent(EventName("tiling:nonsense")) {
		t.Error("unknown name reported as known")
	}
}
