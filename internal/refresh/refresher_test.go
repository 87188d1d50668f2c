package refresh

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trekora/trekdesk/internal/store"
)

const (
	testRefreshInterval = 10 * time.Millisecond
	testRefreshTimeout  = 2 * time.Second
)

func TestNewRefresherDefaultsInterval(testingT *testing.T) {
	refresher := NewRefresher(0, func(context.Context) {})
	require.Equal(testingT, DefaultInterval, refresher.interval)
}

func TestRefresherRunsOnInterval(testingT *testing.T) {
	var runCount int64
	refresher := NewRefresher(testRefreshInterval, func(context.Context) {
		atomic.AddInt64(&runCount, 1)
	})
	refresher.Start(context.Background())
	testingT.Cleanup(refresher.Stop)

	require.Eventually(testingT, func() bool {
		return atomic.LoadInt64(&runCount) > 1
	}, testRefreshTimeout, testRefreshInterval)
}

func TestRefresherRunsOnTrigger(testingT *testing.T) {
	var runCount int64
	refresher := NewRefresher(time.Hour, func(context.Context) {
		atomic.AddInt64(&runCount, 1)
	})
	refresher.Start(context.Background())
	testingT.Cleanup(refresher.Stop)

	refresher.Trigger()

	require.Eventually(testingT, func() bool {
		return atomic.LoadInt64(&runCount) > 0
	}, testRefreshTimeout, testRefreshInterval)
}

func TestRefresherWatchedKeyChangeTriggersRefresh(testingT *testing.T) {
	broadcaster := store.NewChangeBroadcaster()
	testingT.Cleanup(broadcaster.Close)
	notifyingStore := store.NewNotifyingStore(store.NewMemoryStore(), broadcaster)

	var runCount int64
	refresher := NewRefresher(time.Hour, func(context.Context) {
		atomic.AddInt64(&runCount, 1)
	})
	refresher.Watch(broadcaster, store.KeyUserBookings)
	refresher.Start(context.Background())
	testingT.Cleanup(refresher.Stop)

	require.NoError(testingT, notifyingStore.Set(store.KeyUserBookings, `[]`))

	require.Eventually(testingT, func() bool {
		return atomic.LoadInt64(&runCount) > 0
	}, testRefreshTimeout, testRefreshInterval)
}

func TestRefresherIgnoresUnwatchedKeys(testingT *testing.T) {
	broadcaster := store.NewChangeBroadcaster()
	testingT.Cleanup(broadcaster.Close)
	notifyingStore := store.NewNotifyingStore(store.NewMemoryStore(), broadcaster)

	var runCount int64
	refresher := NewRefresher(time.Hour, func(context.Context) {
		atomic.AddInt64(&runCount, 1)
	})
	refresher.Watch(broadcaster, store.KeyUserBookings)
	refresher.Start(context.Background())
	testingT.Cleanup(refresher.Stop)

	require.NoError(testingT, notifyingStore.Set(store.KeyAdminHotels, `[]`))

	time.Sleep(5 * testRefreshInterval)
	require.Zero(testingT, atomic.LoadInt64(&runCount))
}

func TestRefresherWatchAllKeysWhenNoneNamed(testingT *testing.T) {
	broadcaster := store.NewChangeBroadcaster()
	testingT.Cleanup(broadcaster.Close)
	notifyingStore := store.NewNotifyingStore(store.NewMemoryStore(), broadcaster)

	var runCount int64
	refresher := NewRefresher(time.Hour, func(context.Context) {
		atomic.AddInt64(&runCount, 1)
	})
	refresher.Watch(broadcaster)
	refresher.Start(context.Background())
	testingT.Cleanup(refresher.Stop)

	require.NoError(testingT, notifyingStore.Set(store.KeyAdminGuides, `[]`))

	require.Eventually(testingT, func() bool {
		return atomic.LoadInt64(&runCount) > 0
	}, testRefreshTimeout, testRefreshInterval)
}

func TestRefresherStopIsIdempotent(testingT *testing.T) {
	refresher := NewRefresher(testRefreshInterval, func(context.Context) {})
	refresher.Start(context.Background())
	refresher.Stop()
	refresher.Stop()
	require.Nil(testingT, refresher.cancel)
}

func TestRefresherHandlesNilReceiver(testingT *testing.T) {
	var refresher *Refresher
	refresher.Start(context.Background())
	refresher.Trigger()
	refresher.Watch(nil)
	refresher.Stop()
}

func TestRefresherStartIsIdempotent(testingT *testing.T) {
	refresher := NewRefresher(testRefreshInterval, func(context.Context) {})
	refresher.Start(context.Background())
	doneAfterStart := refresher.done
	require.NotNil(testingT, refresher.cancel)
	refresher.Start(context.Background())
	require.Equal(testingT, doneAfterStart, refresher.done)
	refresher.Stop()
}
