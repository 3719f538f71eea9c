package services

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"snapbook-backend/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionsOpenIsCached(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessions(store.NewMemoryStore(), testDeps())

	a, err := sessions.Open(ctx, "p1")
	require.NoError(t, err)
	b, err := sessions.Open(ctx, "p1")
	require.NoError(t, err)
	assert.Same(t, a, b)

	sessions.Close("p1")
	c, err := sessions.Open(ctx, "p1")
	require.NoError(t, err)
	assert.NotSame(t, a, c)
}

func TestSessionsCloseDropsUnsavedState(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessions(store.NewMemoryStore(), testDeps())

	w, err := sessions.Open(ctx, "p1")
	require.NoError(t, err)
	w.Profile.Edit()
	_, err = w.Profile.AddSpecialty("Drone")
	require.NoError(t, err)
	w.Pricing.NewDraft()

	sessions.Close("p1")
	w, err = sessions.Open(ctx, "p1")
	require.NoError(t, err)
	assert.NotContains(t, w.Profile.Profile().Specialties, "Drone")
	assert.False(t, w.Profile.Editing())
	_, err = w.Pricing.Draft()
	assert.ErrorIs(t, err, ErrNoDraft)
}

func TestSessionsArePerPhotographer(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	sessions := NewSessions(s, testDeps())

	alice, err := sessions.Open(ctx, "alice")
	require.NoError(t, err)
	bob, err := sessions.Open(ctx, "bob")
	require.NoError(t, err)

	require.NoError(t, alice.Pricing.Delete(ctx, "1"))
	assert.Len(t, alice.Pricing.Packages(), 2)
	assert.Len(t, bob.Pricing.Packages(), 3)

	_, err = s.Get(ctx, store.Key(store.KeyPackages, "alice"))
	assert.NoError(t, err)
	_, err = s.Get(ctx, store.Key(store.KeyPackages, "bob"))
	assert.ErrorIs(t, err, store.ErrNotFound)

	var ids []string
	sessions.Each(func(w *Workspace) { ids = append(ids, w.PhotographerID) })
	assert.ElementsMatch(t, []string{"alice", "bob"}, ids)
}

func TestSessionsOpenFailsOnBackendError(t *testing.T) {
	sessions := NewSessions(brokenStore{}, testDeps())

	_, err := sessions.Open(context.Background(), "p1")
	assert.ErrorIs(t, err, errWrite)
}

func TestWorkspaceOverview(t *testing.T) {
	sessions := NewSessions(store.NewMemoryStore(), testDeps())
	w, err := sessions.Open(context.Background(), "p1")
	require.NoError(t, err)

	o := w.Overview()
	assert.Equal(t, 3, o.TotalBookings)
	assert.Equal(t, 300, o.Revenue)
	assert.Equal(t, 3, o.PortfolioImages)
	assert.Equal(t, 1234, o.PortfolioViews)
	assert.Equal(t, 3, o.Categories)
	assert.Equal(t, 3, o.Messages)
	assert.Equal(t, 1, o.UnreadThreads)
	assert.Equal(t, 3, o.Notifications)
	require.Len(t, o.UpcomingBookings, 2)
	assert.Equal(t, "1", o.UpcomingBookings[0].ID)
	assert.Equal(t, 3, o.PricingAnalytics.TotalPackages)
	assert.Equal(t, BookingStats{Pending: 1, Confirmed: 1, Completed: 1, TotalRevenue: 300}, o.BookingStatistics)
	assert.Len(t, w.Notifications(), 3)
}

// brokenStore fails every read.
type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, error) { return nil, errWrite }
func (brokenStore) Set(context.Context, string, []byte) error   { return errWrite }
func (brokenStore) Delete(context.Context, string) error        { return errWrite }

// gatedStore holds reads for slow photographers until release is closed
// and counts every read.
type gatedStore struct {
	*store.MemoryStore
	release chan struct{}
	reads   atomic.Int32
}

func (g *gatedStore) Get(ctx context.Context, key string) ([]byte, error) {
	g.reads.Add(1)
	if strings.HasSuffix(key, ":slow") {
		select {
		case <-g.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return g.MemoryStore.Get(ctx, key)
}

func TestSessionsSlowLoadDoesNotBlockOthers(t *testing.T) {
	ctx := context.Background()
	gs := &gatedStore{MemoryStore: store.NewMemoryStore(), release: make(chan struct{})}
	sessions := NewSessions(gs, testDeps())

	slow := make(chan error, 1)
	go func() {
		_, err := sessions.Open(ctx, "slow")
		slow <- err
	}()

	opened := make(chan error, 1)
	go func() {
		_, err := sessions.Open(ctx, "fast")
		opened <- err
	}()
	select {
	case err := <-opened:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("fast workspace waited on a slow load")
	}

	close(gs.release)
	require.NoError(t, <-slow)
}

func TestSessionsConcurrentOpenSharesWorkspace(t *testing.T) {
	ctx := context.Background()
	gs := &gatedStore{MemoryStore: store.NewMemoryStore(), release: make(chan struct{})}
	sessions := NewSessions(gs, testDeps())

	const callers = 5
	var wg sync.WaitGroup
	got := make([]*Workspace, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w, err := sessions.Open(ctx, "slow")
			assert.NoError(t, err)
			got[i] = w
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(gs.release)
	wg.Wait()

	for _, w := range got[1:] {
		assert.Same(t, got[0], w)
	}
	assert.Equal(t, int32(5), gs.reads.Load(), "one load, one read per panel")
}
