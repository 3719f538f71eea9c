package services

import (
	"context"
	"slices"
	"testing"

	"snapbook-backend/models"
	"snapbook-backend/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const availabilityKey = "photographer_availability:p1"

func newAvailability(t *testing.T, s store.Store) *AvailabilityManager {
	t.Helper()
	m, err := NewAvailabilityManager(context.Background(), s, availabilityKey, testDeps())
	require.NoError(t, err)
	return m
}

func TestAvailabilityLoadsSeeds(t *testing.T) {
	m := newAvailability(t, store.NewMemoryStore())

	slots := m.Slots()
	require.Len(t, slots, 2)
	assert.Equal(t, models.SlotBooked, m.Status(day(3)))
	assert.Equal(t, models.SlotBooked, m.Status(day(7)))
	assert.Equal(t, models.SlotUnavailable, m.Status(day(4)))
}

func TestAvailabilityBlockRange(t *testing.T) {
	ctx := context.Background()
	m := newAvailability(t, store.NewMemoryStore())

	n, err := m.BlockRange(ctx, day(20), day(22))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, d := range []int{20, 21, 22} {
		assert.Equal(t, models.SlotBlocked, m.Status(day(d)), "day +%d", d)
		on := m.SlotsOn(day(d))
		require.Len(t, on, 1)
		assert.Empty(t, on[0].TimeSlots)
		assert.Equal(t, "Blocked period", on[0].Notes)
		assert.Regexp(t, `^block_\d+$`, on[0].ID)
	}
	assert.Equal(t, models.SlotUnavailable, m.Status(day(23)))
}

func TestAvailabilityBlockRangeSkipsBookedDays(t *testing.T) {
	ctx := context.Background()
	m := newAvailability(t, store.NewMemoryStore())

	n, err := m.BlockRange(ctx, day(2), day(4))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, models.SlotBlocked, m.Status(day(2)))
	assert.Equal(t, models.SlotBooked, m.Status(day(3)))
	assert.Equal(t, models.SlotBlocked, m.Status(day(4)))
	assert.Len(t, m.SlotsOn(day(3)), 1)
}

func TestAvailabilityBlockRangeReplacesOpenDays(t *testing.T) {
	ctx := context.Background()
	m := newAvailability(t, store.NewMemoryStore())

	_, err := m.SaveSlot(ctx, m.NewSlot(day(10)))
	require.NoError(t, err)
	require.Equal(t, models.SlotAvailable, m.Status(day(10)))

	_, err = m.BlockRange(ctx, day(10), day(10))
	require.NoError(t, err)

	on := m.SlotsOn(day(10))
	require.Len(t, on, 1)
	assert.Equal(t, models.SlotBlocked, on[0].Status)
}

func TestAvailabilityBlockRangeEndBeforeStart(t *testing.T) {
	m := newAvailability(t, store.NewMemoryStore())

	n, err := m.BlockRange(context.Background(), day(5), day(4))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, m.Slots(), 2)
}

func TestAvailabilityDeleteBookedSlot(t *testing.T) {
	m := newAvailability(t, store.NewMemoryStore())
	before := m.Slots()

	err := m.DeleteSlot(context.Background(), "1")
	assert.ErrorIs(t, err, ErrBookedSlot)
	assert.Equal(t, before, m.Slots())
}

func TestAvailabilityDeleteSlot(t *testing.T) {
	ctx := context.Background()
	m := newAvailability(t, store.NewMemoryStore())

	saved, err := m.SaveSlot(ctx, m.NewSlot(day(12)))
	require.NoError(t, err)

	require.NoError(t, m.DeleteSlot(ctx, saved.ID))
	assert.Equal(t, models.SlotUnavailable, m.Status(day(12)))
	assert.ErrorIs(t, m.DeleteSlot(ctx, saved.ID), ErrSlotNotFound)
}

func TestAvailabilityNewSlotDefaults(t *testing.T) {
	m := newAvailability(t, store.NewMemoryStore())

	draft := m.NewSlot(day(9))
	assert.Equal(t, models.SlotAvailable, draft.Status)
	assert.Equal(t, []models.TimeSlot{{Start: "09:00", End: "17:00"}}, draft.TimeSlots)
	assert.Empty(t, draft.Notes)
	assert.Len(t, m.Slots(), 2, "drafts are not committed")
}

func TestAvailabilitySaveSlotRejectsBooked(t *testing.T) {
	ctx := context.Background()
	m := newAvailability(t, store.NewMemoryStore())

	draft := m.NewSlot(day(9))
	draft.Status = models.SlotBooked
	_, err := m.SaveSlot(ctx, draft)
	assert.ErrorIs(t, err, ErrBookedSlot)

	_, err = m.SaveSlot(ctx, m.NewSlot(day(3)))
	assert.ErrorIs(t, err, ErrBookedSlot, "booked day is read-only")

	seed := m.Slots()[0]
	seed.Status = models.SlotAvailable
	_, err = m.SaveSlot(ctx, seed)
	assert.ErrorIs(t, err, ErrBookedSlot)

	draft = m.NewSlot(day(9))
	draft.Status = "maybe"
	_, err = m.SaveSlot(ctx, draft)
	assert.ErrorIs(t, err, ErrInvalidSlotStatus)
}

func TestAvailabilitySaveSlotUpserts(t *testing.T) {
	ctx := context.Background()
	m := newAvailability(t, store.NewMemoryStore())

	saved, err := m.SaveSlot(ctx, m.NewSlot(day(9)))
	require.NoError(t, err)

	saved.Notes = "Morning only"
	saved.TimeSlots = []models.TimeSlot{{Start: "08:00", End: "12:00"}}
	_, err = m.SaveSlot(ctx, saved)
	require.NoError(t, err)

	on := m.SlotsOn(day(9))
	require.Len(t, on, 1)
	assert.Equal(t, "Morning only", on[0].Notes)
	assert.Len(t, m.Slots(), 3)

	saved.Status = models.SlotBlocked
	_, err = m.SaveSlot(ctx, saved)
	require.NoError(t, err)
	assert.Empty(t, m.SlotsOn(day(9))[0].TimeSlots)
}

func TestAvailabilityPersistsAcrossReload(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	m := newAvailability(t, s)

	saved, err := m.SaveSlot(ctx, m.NewSlot(day(15)))
	require.NoError(t, err)

	reloaded := newAvailability(t, s)
	slots := reloaded.Slots()
	require.Len(t, slots, 3)
	assert.Equal(t, saved.ID, slots[0].ID)
	assert.True(t, saved.Date.Equal(slots[0].Date))
	assert.Equal(t, models.SlotAvailable, reloaded.Status(day(15)))
}

func TestAvailabilityWriteFailureKeepsList(t *testing.T) {
	ctx := context.Background()
	s := newFlakyStore()
	m := newAvailability(t, s)
	before := m.Slots()

	s.failWrites(true)
	_, err := m.SaveSlot(ctx, m.NewSlot(day(9)))
	assert.ErrorIs(t, err, errWrite)
	_, err = m.BlockRange(ctx, day(20), day(21))
	assert.ErrorIs(t, err, errWrite)

	assert.Equal(t, before, m.Slots())
}

func TestAvailabilityUpcomingBookings(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	var stored []models.AvailabilitySlot
	for i, offset := range []int{30, 1, 12, -4, 20, 9, 2} {
		stored = append(stored, models.AvailabilitySlot{
			ID:        "b" + string(rune('a'+i)),
			Date:      day(offset),
			Status:    models.SlotBooked,
			TimeSlots: []models.TimeSlot{},
		})
	}
	repo := store.NewCollection[models.AvailabilitySlot](s, availabilityKey, store.MergeSeeds, nil, nil)
	require.NoError(t, repo.Save(ctx, stored))

	m := newAvailability(t, s)

	var got []string
	for slot := range m.UpcomingBookings() {
		got = append(got, slot.ID)
	}
	// +1, +2, +3 (seed 1), +7 (seed 2), +9
	assert.Equal(t, []string{"bb", "bg", "1", "2", "bf"}, got)

	again := slices.Collect(m.UpcomingBookings())
	assert.Len(t, again, 5)

	for slot := range m.UpcomingBookings() {
		assert.Equal(t, "bb", slot.ID)
		break
	}
}
