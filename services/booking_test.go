package services

import (
	"context"
	"errors"
	"testing"

	"snapbook-backend/models"
	"snapbook-backend/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bookingsKey = "photographer_bookings:p1"

func newBookings(t *testing.T, s store.Store, deps Deps) *BookingManager {
	t.Helper()
	m, err := NewBookingManager(context.Background(), s, bookingsKey, deps)
	require.NoError(t, err)
	return m
}

func TestBookingStats(t *testing.T) {
	m := newBookings(t, store.NewMemoryStore(), testDeps())

	assert.Equal(t, BookingStats{Pending: 1, Confirmed: 1, Completed: 1, TotalRevenue: 300}, m.Stats())
}

func TestBookingConfirmPending(t *testing.T) {
	deps := testDeps()
	notifier := deps.Notifier.(*recordingNotifier)
	m := newBookings(t, store.NewMemoryStore(), deps)

	updated, err := m.UpdateStatus(context.Background(), "1", models.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, updated.Status)

	st := m.Stats()
	assert.Equal(t, 0, st.Pending)
	assert.Equal(t, 2, st.Confirmed)

	sent := notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "+1 (555) 123-4567", sent[0].To)
	assert.Contains(t, sent[0].Body, "now confirmed")
}

func TestBookingTransitions(t *testing.T) {
	tests := []struct {
		id   string
		to   models.BookingStatus
		ok   bool
		name string
	}{
		{name: "decline pending", id: "1", to: models.BookingCancelled, ok: true},
		{name: "complete confirmed", id: "2", to: models.BookingCompleted, ok: true},
		{name: "reopen completed", id: "3", to: models.BookingPending},
		{name: "complete pending", id: "1", to: models.BookingCompleted},
		{name: "same status", id: "2", to: models.BookingConfirmed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newBookings(t, store.NewMemoryStore(), testDeps())
			before, err := m.Get(tt.id)
			require.NoError(t, err)

			_, err = m.UpdateStatus(context.Background(), tt.id, tt.to)
			if tt.ok {
				assert.NoError(t, err)
				return
			}

			var terr *TransitionError
			require.True(t, errors.As(err, &terr))
			assert.Equal(t, before.Status, terr.From)
			assert.Equal(t, tt.to, terr.To)

			after, _ := m.Get(tt.id)
			assert.Equal(t, before.Status, after.Status)
		})
	}
}

func TestBookingUnknownID(t *testing.T) {
	ctx := context.Background()
	m := newBookings(t, store.NewMemoryStore(), testDeps())

	_, err := m.UpdateStatus(ctx, "nope", models.BookingConfirmed)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	_, err = m.AppendMessage(ctx, "nope", "hello", "")
	assert.ErrorIs(t, err, ErrBookingNotFound)
	_, err = m.Get("nope")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestBookingAppendMessage(t *testing.T) {
	deps := testDeps()
	notifier := deps.Notifier.(*recordingNotifier)
	m := newBookings(t, store.NewMemoryStore(), deps)
	before := m.MessageCount()

	updated, err := m.AppendMessage(context.Background(), "2", "See you at 9am!", "")
	require.NoError(t, err)

	require.Len(t, updated.Messages, 2)
	last := updated.Messages[1]
	assert.Equal(t, models.SenderPhotographer, last.Sender)
	assert.Equal(t, "See you at 9am!", last.Content)
	assert.True(t, last.Timestamp.Equal(fixedNow))
	assert.Equal(t, before+1, m.MessageCount())
	assert.Len(t, notifier.Sent(), 1)

	_, err = m.AppendMessage(context.Background(), "2", "Thanks", models.SenderClient)
	require.NoError(t, err)
	assert.Len(t, notifier.Sent(), 1, "client messages are not texted back")
}

func TestBookingAppendBlankMessage(t *testing.T) {
	m := newBookings(t, store.NewMemoryStore(), testDeps())

	_, err := m.AppendMessage(context.Background(), "1", "   ", "")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	b, _ := m.Get("1")
	assert.Len(t, b.Messages, 2)
}

func TestBookingFilter(t *testing.T) {
	m := newBookings(t, store.NewMemoryStore(), testDeps())

	assert.Len(t, m.Filter(FilterAll), 3)
	assert.Len(t, m.Filter(""), 3)

	pending := m.Filter("pending")
	require.Len(t, pending, 1)
	assert.Equal(t, "1", pending[0].ID)
	assert.Empty(t, m.Filter("cancelled"))
}

func TestBookingUnreadThreads(t *testing.T) {
	m := newBookings(t, store.NewMemoryStore(), testDeps())

	assert.Equal(t, 1, m.UnreadThreads())
	assert.Equal(t, 3, m.MessageCount())
}

func TestBookingCreatePersists(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	m := newBookings(t, s, testDeps())

	created, err := m.Create(ctx, NewBookingInput{
		ClientName: "Ana Silva",
		EventType:  "Engagement",
		EventDate:  "2025-07-01",
		Price:      450,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, created.Status)
	assert.Len(t, m.Filter("pending"), 2)

	reloaded := newBookings(t, s, testDeps())
	all := reloaded.Bookings()
	require.Len(t, all, 4)
	assert.Equal(t, created.ID, all[0].ID)
	assert.Equal(t, "2025-07-01", all[0].EventDate.Format("2006-01-02"))
	assert.NotNil(t, all[0].Messages)
}

func TestBookingCreateInvalidDate(t *testing.T) {
	m := newBookings(t, store.NewMemoryStore(), testDeps())

	_, err := m.Create(context.Background(), NewBookingInput{ClientName: "X", EventDate: "next friday"})
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Len(t, m.Bookings(), 3)
}

func TestBookingSeedChangesResetOnReload(t *testing.T) {
	s := store.NewMemoryStore()
	m := newBookings(t, s, testDeps())

	_, err := m.UpdateStatus(context.Background(), "1", models.BookingConfirmed)
	require.NoError(t, err)

	reloaded := newBookings(t, s, testDeps())
	b, err := reloaded.Get("1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, b.Status)
}

func TestBookingNotifyFailureKeepsChange(t *testing.T) {
	deps := testDeps()
	deps.Notifier = &recordingNotifier{err: errors.New("twilio down")}
	m := newBookings(t, store.NewMemoryStore(), deps)

	updated, err := m.UpdateStatus(context.Background(), "1", models.BookingCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, updated.Status)
}

func TestBookingWriteFailure(t *testing.T) {
	s := newFlakyStore()
	m := newBookings(t, s, testDeps())
	s.failWrites(true)

	_, err := m.UpdateStatus(context.Background(), "1", models.BookingConfirmed)
	assert.ErrorIs(t, err, errWrite)
	b, _ := m.Get("1")
	assert.Equal(t, models.BookingPending, b.Status)
}
