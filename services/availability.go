package services

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"sync"
	"time"

	"snapbook-backend/models"
	"snapbook-backend/store"
	"snapbook-backend/utils"

	"go.uber.org/zap"
)

const upcomingBookingsLimit = 5

var defaultHours = models.TimeSlot{Start: "09:00", End: "17:00"}

// AvailabilityManager owns a photographer's calendar. A day holds at most
// one slot, and booked days cannot be edited, deleted or blocked.
type AvailabilityManager struct {
	mu    sync.Mutex
	repo  *store.Collection[models.AvailabilitySlot]
	slots []models.AvailabilitySlot
	deps  Deps
}

func NewAvailabilityManager(ctx context.Context, s store.Store, key string, deps Deps) (*AvailabilityManager, error) {
	deps = deps.withDefaults()

	repo := store.NewCollection(s, key, store.MergeSeeds, seedAvailability(deps.now()), deps.Logger)
	repo.Hydrate = func(slot models.AvailabilitySlot) models.AvailabilitySlot {
		slot.Date = slot.Date.In(deps.Location)
		return slot
	}

	slots, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &AvailabilityManager{repo: repo, slots: slots, deps: deps}, nil
}

func (m *AvailabilityManager) Slots() []models.AvailabilitySlot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.slots)
}

// Location is the zone calendar days are read in.
func (m *AvailabilityManager) Location() *time.Location {
	return m.deps.Location
}

// Status reports the status of the slot on date's calendar day, or
// SlotUnavailable when the day has none.
func (m *AvailabilityManager) Status(date time.Time) models.SlotStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	if slot, ok := m.findDay(date); ok {
		return slot.Status
	}
	return models.SlotUnavailable
}

// SlotsOn lists the slots on date's calendar day.
func (m *AvailabilityManager) SlotsOn(date time.Time) []models.AvailabilitySlot {
	m.mu.Lock()
	defer m.mu.Unlock()

	date = date.In(m.deps.Location)
	var out []models.AvailabilitySlot
	for _, s := range m.slots {
		if utils.SameDay(date, s.Date) {
			out = append(out, s)
		}
	}
	return out
}

// NewSlot opens an uncommitted draft for date with business hours.
func (m *AvailabilityManager) NewSlot(date time.Time) models.AvailabilitySlot {
	return models.AvailabilitySlot{
		ID:        m.deps.IDs.Next(),
		Date:      date.In(m.deps.Location),
		Status:    models.SlotAvailable,
		TimeSlots: []models.TimeSlot{defaultHours},
		Notes:     "",
	}
}

// SaveSlot upserts draft by id. A draft for a day that already holds a
// different non-booked slot supersedes it.
func (m *AvailabilityManager) SaveSlot(ctx context.Context, draft models.AvailabilitySlot) (models.AvailabilitySlot, error) {
	switch draft.Status {
	case models.SlotAvailable, models.SlotBlocked:
	case models.SlotBooked:
		return models.AvailabilitySlot{}, ErrBookedSlot
	default:
		return models.AvailabilitySlot{}, fmt.Errorf("%w: %q", ErrInvalidSlotStatus, draft.Status)
	}

	if draft.ID == "" {
		draft.ID = m.deps.IDs.Next()
	}
	draft.Date = draft.Date.In(m.deps.Location)
	draft.BookingInfo = nil
	if draft.Status == models.SlotBlocked || draft.TimeSlots == nil {
		draft.TimeSlots = []models.TimeSlot{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.slots {
		if s.Status != models.SlotBooked {
			continue
		}
		if s.ID == draft.ID || utils.SameDay(s.Date, draft.Date) {
			return models.AvailabilitySlot{}, ErrBookedSlot
		}
	}

	next := make([]models.AvailabilitySlot, 0, len(m.slots)+1)
	replaced := false
	for _, s := range m.slots {
		switch {
		case s.ID == draft.ID:
			next = append(next, draft)
			replaced = true
		case utils.SameDay(s.Date, draft.Date):
			// superseded by draft
		default:
			next = append(next, s)
		}
	}
	if !replaced {
		next = append(next, draft)
	}

	if err := m.commit(ctx, next); err != nil {
		return models.AvailabilitySlot{}, err
	}
	return draft, nil
}

// DeleteSlot removes a slot. Booked slots are refused and the list is left
// untouched.
func (m *AvailabilityManager) DeleteSlot(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := slices.IndexFunc(m.slots, func(s models.AvailabilitySlot) bool { return s.ID == id })
	if idx < 0 {
		return ErrSlotNotFound
	}
	if m.slots[idx].Status == models.SlotBooked {
		return ErrBookedSlot
	}

	next := slices.Delete(slices.Clone(m.slots), idx, idx+1)
	return m.commit(ctx, next)
}

// BlockRange blocks every calendar day from start to end inclusive, skipping
// booked days. It returns how many days were blocked.
func (m *AvailabilityManager) BlockRange(ctx context.Context, start, end time.Time) (int, error) {
	first := utils.BeginningOfDay(start.In(m.deps.Location))
	last := utils.BeginningOfDay(end.In(m.deps.Location))

	m.mu.Lock()
	defer m.mu.Unlock()

	var blocks []models.AvailabilitySlot
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		if m.bookedOn(day) {
			continue
		}
		blocks = append(blocks, models.AvailabilitySlot{
			ID:        fmt.Sprintf("block_%d", day.UnixMilli()),
			Date:      day,
			Status:    models.SlotBlocked,
			TimeSlots: []models.TimeSlot{},
			Notes:     "Blocked period",
		})
	}

	next := make([]models.AvailabilitySlot, 0, len(m.slots)+len(blocks))
	for _, s := range m.slots {
		covered := slices.ContainsFunc(blocks, func(b models.AvailabilitySlot) bool {
			return utils.SameDay(b.Date, s.Date)
		})
		if covered && s.Status != models.SlotBooked {
			continue
		}
		next = append(next, s)
	}
	next = append(next, blocks...)

	if err := m.commit(ctx, next); err != nil {
		return 0, err
	}
	m.deps.Logger.Info("blocked date range",
		zap.Time("start", first), zap.Time("end", last), zap.Int("days", len(blocks)))
	return len(blocks), nil
}

// UpcomingBookings yields the next booked days after now, soonest first,
// at most five. Every range over the sequence reads the current calendar.
func (m *AvailabilityManager) UpcomingBookings() iter.Seq[models.AvailabilitySlot] {
	return func(yield func(models.AvailabilitySlot) bool) {
		now := m.deps.now()

		m.mu.Lock()
		var booked []models.AvailabilitySlot
		for _, s := range m.slots {
			if s.Status == models.SlotBooked && s.Date.After(now) {
				booked = append(booked, s)
			}
		}
		m.mu.Unlock()

		slices.SortStableFunc(booked, func(a, b models.AvailabilitySlot) int {
			return a.Date.Compare(b.Date)
		})
		for i, s := range booked {
			if i == upcomingBookingsLimit || !yield(s) {
				return
			}
		}
	}
}

func (m *AvailabilityManager) findDay(date time.Time) (models.AvailabilitySlot, bool) {
	for _, s := range m.slots {
		if utils.SameDay(s.Date, date) {
			return s, true
		}
	}
	return models.AvailabilitySlot{}, false
}

func (m *AvailabilityManager) bookedOn(day time.Time) bool {
	return slices.ContainsFunc(m.slots, func(s models.AvailabilitySlot) bool {
		return s.Status == models.SlotBooked && utils.SameDay(s.Date, day)
	})
}

// commit persists next and only then makes it the live list. Callers hold mu.
func (m *AvailabilityManager) commit(ctx context.Context, next []models.AvailabilitySlot) error {
	if err := m.repo.Save(ctx, next); err != nil {
		m.deps.Logger.Error("failed to save availability", zap.Error(err))
		return err
	}
	m.slots = next
	return nil
}
