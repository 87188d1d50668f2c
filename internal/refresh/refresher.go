// Package refresh re-runs a view's read function on a fixed interval and on
// store change notifications, so every open view converges on the stored
// state without manual reloads.
package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/trekora/trekdesk/internal/store"
)

// DefaultInterval is the poll period used when none is configured.
const DefaultInterval = 2 * time.Second

// ViewFunc reloads one view from the store.
type ViewFunc func(context.Context)

// Refresher drives a ViewFunc from a timer loop and a coalescing trigger
// channel. Change events for watched keys feed the trigger, so a burst of
// writes collapses into one refresh.
type Refresher struct {
	interval      time.Duration
	view          ViewFunc
	trigger       chan struct{}
	controlMutex  sync.Mutex
	cancel        context.CancelFunc
	done          chan struct{}
	subscriptions []*store.ChangeSubscription
	watchDone     []chan struct{}
}

// NewRefresher creates a refresher for the view. Non-positive intervals fall
// back to DefaultInterval.
func NewRefresher(interval time.Duration, view ViewFunc) *Refresher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Refresher{
		interval: interval,
		view:     view,
		trigger:  make(chan struct{}, 1),
	}
}

// Start launches the refresh loop. Starting an already running refresher is a
// no-op.
func (refresher *Refresher) Start(ctx context.Context) {
	if refresher == nil || refresher.view == nil {
		return
	}
	refresher.controlMutex.Lock()
	if refresher.cancel != nil {
		refresher.controlMutex.Unlock()
		return
	}
	runtimeCtx, cancel := context.WithCancel(ctx)
	refresher.cancel = cancel
	done := make(chan struct{})
	refresher.done = done
	refresher.controlMutex.Unlock()

	go refresher.loop(runtimeCtx, done)
}

// Trigger requests an immediate refresh. Pending triggers coalesce.
func (refresher *Refresher) Trigger() {
	if refresher == nil {
		return
	}
	select {
	case refresher.trigger <- struct{}{}:
	default:
	}
}

// Watch subscribes to store change events and triggers a refresh whenever one
// of the watched keys changes. An empty key list watches every key. Watch may
// be called before or after Start; subscriptions are torn down by Stop.
func (refresher *Refresher) Watch(broadcaster *store.ChangeBroadcaster, watchedKeys ...string) {
	if refresher == nil || broadcaster == nil {
		return
	}
	subscription := broadcaster.Subscribe()
	if subscription == nil {
		return
	}
	watched := make(map[string]struct{}, len(watchedKeys))
	for _, watchedKey := range watchedKeys {
		watched[watchedKey] = struct{}{}
	}

	watchDone := make(chan struct{})
	refresher.controlMutex.Lock()
	refresher.subscriptions = append(refresher.subscriptions, subscription)
	refresher.watchDone = append(refresher.watchDone, watchDone)
	refresher.controlMutex.Unlock()

	go func() {
		defer close(watchDone)
		defer subscription.Close()
		for event := range subscription.Events() {
			if len(watched) > 0 {
				if _, interested := watched[event.Key]; !interested {
					continue
				}
			}
			refresher.Trigger()
		}
	}()
}

// Stop halts the loop and waits for it and the watch goroutines to exit.
// Stop is idempotent.
func (refresher *Refresher) Stop() {
	if refresher == nil {
		return
	}
	refresher.controlMutex.Lock()
	cancel := refresher.cancel
	done := refresher.done
	subscriptions := refresher.subscriptions
	watchDone := refresher.watchDone
	refresher.cancel = nil
	refresher.done = nil
	refresher.subscriptions = nil
	refresher.watchDone = nil
	refresher.controlMutex.Unlock()
	if cancel != nil {
		cancel()
	}
	for _, subscription := range subscriptions {
		subscription.Close()
	}
	if done != nil {
		<-done
	}
	for _, watchExit := range watchDone {
		<-watchExit
	}
}

func (refresher *Refresher) loop(ctx context.Context, done chan struct{}) {
	timer := time.NewTimer(refresher.interval)
	defer func() {
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
	}()
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-refresher.trigger:
			refresher.view(ctx)
		case <-timer.C:
			refresher.view(ctx)
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(refresher.interval)
	}
}
