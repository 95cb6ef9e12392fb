package app

import (
	"gitlab.com/tinyland/lab/pulsebar/pkg/bridge"
)

// SubscribeEvents funnels the named backend events into one buffered
// channel suitable for WaitForBridgeEventCmd. Registry callbacks run on the
// client's read goroutine, so delivery is non-blocking: an event arriving
// while the buffer is full is dropped rather than stalling the socket.
// The returned cancel releases every subscription; the channel is not
// closed, matching the pump's select-free read.
func SubscribeEvents(reg *bridge.Registry, buf int, names ...bridge.EventName) (<-chan bridge.Event, func()) {
	if buf <= 0 {
		buf = 32
	}
	ch := make(chan bridge.Event, buf)
	cancels := make([]func(), 0, len(names))
	for _, name := range names {
		cancels = append(cancels, reg.Subscribe(name, func(ev bridge.Event) {
			select {
			case ch <- ev:
			default:
			}
		}))
	}
	return ch, func() {
		for _, c := range cancels {
			c()
		}
	}
}
