package store

import (
	"sync"
	"time"
)

// ChangeEvent names a store key whose value was written or removed.
type ChangeEvent struct {
	Key       string
	ChangedAt time.Time
}

const changeEventDefaultBuffer = 8

// ChangeBroadcaster fan-outs store change events to subscribed views. It is
// the explicit subscription abstraction the underlying store lacks: views
// register interest once and unregister on teardown.
type ChangeBroadcaster struct {
	mutex        sync.Mutex
	subscribers  map[string]chan ChangeEvent
	closed       bool
	bufferLength int
}

// NewChangeBroadcaster constructs a broadcaster for store change events.
func NewChangeBroadcaster() *ChangeBroadcaster {
	return &ChangeBroadcaster{
		subscribers:  make(map[string]chan ChangeEvent),
		bufferLength: changeEventDefaultBuffer,
	}
}

// Subscribe returns a subscription that streams change events, or nil when the
// broadcaster is closed.
func (broadcaster *ChangeBroadcaster) Subscribe() *ChangeSubscription {
	broadcaster.mutex.Lock()
	defer broadcaster.mutex.Unlock()
	if broadcaster.closed {
		return nil
	}
	subscriptionID := NewSubscriptionID()
	eventChannel := make(chan ChangeEvent, broadcaster.bufferLength)
	broadcaster.subscribers[subscriptionID] = eventChannel
	return &ChangeSubscription{
		broadcaster: broadcaster,
		identifier:  subscriptionID,
		events:      eventChannel,
	}
}

// Broadcast delivers the event to all active subscribers. Slow subscribers
// drop events rather than block the writer.
func (broadcaster *ChangeBroadcaster) Broadcast(event ChangeEvent) {
	broadcaster.mutex.Lock()
	defer broadcaster.mutex.Unlock()
	if broadcaster.closed || len(broadcaster.subscribers) == 0 {
		return
	}
	for _, eventChannel := range broadcaster.subscribers {
		select {
		case eventChannel <- event:
		default:
		}
	}
}

// Close stops the broadcaster and closes all subscriber channels.
func (broadcaster *ChangeBroadcaster) Close() {
	broadcaster.mutex.Lock()
	if broadcaster.closed {
		broadcaster.mutex.Unlock()
		return
	}
	broadcaster.closed = true
	for identifier, eventChannel := range broadcaster.subscribers {
		close(eventChannel)
		delete(broadcaster.subscribers, identifier)
	}
	broadcaster.mutex.Unlock()
}

func (broadcaster *ChangeBroadcaster) remove(identifier string) {
	broadcaster.mutex.Lock()
	eventChannel, exists := broadcaster.subscribers[identifier]
	if exists {
		delete(broadcaster.subscribers, identifier)
		close(eventChannel)
	}
	broadcaster.mutex.Unlock()
}

// ChangeSubscription represents a single subscriber to store change events.
type ChangeSubscription struct {
	broadcaster *ChangeBroadcaster
	identifier  string
	events      chan ChangeEvent
	once        sync.Once
}

// Events exposes the receive-only event channel.
func (subscription *ChangeSubscription) Events() <-chan ChangeEvent {
	if subscription == nil {
		return nil
	}
	return subscription.events
}

// Close unregisters the subscription and closes its channel.
func (subscription *ChangeSubscription) Close() {
	if subscription == nil {
		return
	}
	subscription.once.Do(func() {
		subscription.broadcaster.remove(subscription.identifier)
	})
}

// NotifyingStore decorates a Store so every successful Set and Remove
// broadcasts the touched key.
type NotifyingStore struct {
	inner       Store
	broadcaster *ChangeBroadcaster
	now         func() time.Time
}

// NewNotifyingStore wraps inner so writes are announced on broadcaster.
func NewNotifyingStore(inner Store, broadcaster *ChangeBroadcaster) *NotifyingStore {
	return &NotifyingStore{inner: inner, broadcaster: broadcaster, now: time.Now}
}

// Get returns the value at key and whether it exists.
func (notifyingStore *NotifyingStore) Get(key string) (string, bool, error) {
	return notifyingStore.inner.Get(key)
}

// Set stores value at key and broadcasts the change.
func (notifyingStore *NotifyingStore) Set(key string, value string) error {
	if setErr := notifyingStore.inner.Set(key, value); setErr != nil {
		return setErr
	}
	notifyingStore.broadcaster.Broadcast(ChangeEvent{Key: key, ChangedAt: notifyingStore.now()})
	return nil
}

// Remove deletes the value at key and broadcasts the change.
func (notifyingStore *NotifyingStore) Remove(key string) error {
	if removeErr := notifyingStore.inner.Remove(key); removeErr != nil {
		return removeErr
	}
	notifyingStore.broadcaster.Broadcast(ChangeEvent{Key: key, ChangedAt: notifyingStore.now()})
	return nil
}
