package mock

import (
	"context"
	"sync"

	"github.com/nbd-wtf/go-nostr"
)

// Relay is an in-memory signed-event store implementing the ledger
// transport. Events are returned in insertion order, which exercises no
// ordering assumptions since callers must fold commutatively anyway.
type Relay struct {
	mu     sync.Mutex
	events []nostr.Event

	FuncPublish func(ctx context.Context, ev nostr.Event) error
	FuncQuery   func(ctx context.Context, filter nostr.Filter) ([]*nostr.Event, error)
}

func NewRelay() *Relay {
	return &Relay{}
}

func (relay *Relay) Publish(ctx context.Context, ev nostr.Event) error {
	if relay.FuncPublish != nil {
		return relay.FuncPublish(ctx, ev)
	}
	relay.mu.Lock()
	defer relay.mu.Unlock()
	relay.events = append(relay.events, ev)
	return nil
}

func (relay *Relay) Query(ctx context.Context, filter nostr.Filter) ([]*nostr.Event, error) {
	if relay.FuncQuery != nil {
		return relay.FuncQuery(ctx, filter)
	}
	relay.mu.Lock()
	defer relay.mu.Unlock()

	matched := []*nostr.Event{}
	for i := range relay.events {
		ev := relay.events[i]
		if !filter.Matches(&ev) {
			continue
		}
		matched = append(matched, &ev)
		if filter.Limit > 0 && len(matched) >= filter.Limit {
			break
		}
	}
	return matched, nil
}

// Inject stores a raw event without going through Publish, for feeding
// hand-built histories to the reducer.
func (relay *Relay) Inject(events ...nostr.Event) {
	relay.mu.Lock()
	defer relay.mu.Unlock()
	relay.events = append(relay.events, events...)
}
