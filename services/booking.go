package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"snapbook-backend/models"
	"snapbook-backend/store"
	"snapbook-backend/utils"

	"go.uber.org/zap"
)

// FilterAll is the bookings tab that shows every status.
const FilterAll = "all"

type BookingStats struct {
	Pending      int `json:"pending"`
	Confirmed    int `json:"confirmed"`
	Completed    int `json:"completed"`
	TotalRevenue int `json:"totalRevenue"`
}

// NewBookingInput is a booking entered by hand from the dashboard.
type NewBookingInput struct {
	ClientName    string `json:"clientName" binding:"required"`
	ClientEmail   string `json:"clientEmail"`
	ClientPhone   string `json:"clientPhone"`
	EventType     string `json:"eventType"`
	EventDate     string `json:"eventDate" binding:"required"`
	EventLocation string `json:"eventLocation"`
	Package       string `json:"package"`
	Price         int    `json:"price"`
	Notes         string `json:"notes"`
}

type BookingManager struct {
	mu       sync.Mutex
	repo     *store.Collection[models.Booking]
	bookings []models.Booking
	deps     Deps
}

func NewBookingManager(ctx context.Context, s store.Store, key string, deps Deps) (*BookingManager, error) {
	deps = deps.withDefaults()

	repo := store.NewCollection(s, key, store.MergeSeeds, seedBookings(deps.now()), deps.Logger)
	repo.Hydrate = func(b models.Booking) models.Booking {
		b.EventDate = b.EventDate.In(deps.Location)
		b.CreatedAt = b.CreatedAt.In(deps.Location)
		if b.Messages == nil {
			b.Messages = []models.Message{}
		}
		for i := range b.Messages {
			b.Messages[i].Timestamp = b.Messages[i].Timestamp.In(deps.Location)
		}
		return b
	}

	bookings, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &BookingManager{repo: repo, bookings: bookings, deps: deps}, nil
}

func (m *BookingManager) Bookings() []models.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.bookings)
}

func (m *BookingManager) Get(id string) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.index(id)
	if idx < 0 {
		return models.Booking{}, ErrBookingNotFound
	}
	return m.bookings[idx], nil
}

// Filter returns the bookings on a tab: FilterAll, or an exact status.
func (m *BookingManager) Filter(tab string) []models.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tab == "" || tab == FilterAll {
		return slices.Clone(m.bookings)
	}
	out := []models.Booking{}
	for _, b := range m.bookings {
		if string(b.Status) == tab {
			out = append(out, b)
		}
	}
	return out
}

// Stats recounts the current list on every call.
func (m *BookingManager) Stats() BookingStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	var st BookingStats
	for _, b := range m.bookings {
		switch b.Status {
		case models.BookingPending:
			st.Pending++
		case models.BookingConfirmed:
			st.Confirmed++
		case models.BookingCompleted:
			st.Completed++
			st.TotalRevenue += b.Price
		}
	}
	return st
}

// Create records a new pending booking.
func (m *BookingManager) Create(ctx context.Context, in NewBookingInput) (models.Booking, error) {
	date, err := utils.ParseDay(in.EventDate, m.deps.Location)
	if err != nil {
		return models.Booking{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	b := models.Booking{
		ID:            m.deps.IDs.Next(),
		ClientName:    in.ClientName,
		ClientEmail:   in.ClientEmail,
		ClientPhone:   in.ClientPhone,
		EventType:     in.EventType,
		EventDate:     date,
		EventLocation: in.EventLocation,
		Package:       in.Package,
		Price:         in.Price,
		Status:        models.BookingPending,
		Notes:         in.Notes,
		CreatedAt:     m.deps.now(),
		Messages:      []models.Message{},
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	next := append(slices.Clone(m.bookings), b)
	if err := m.commit(ctx, next); err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

// UpdateStatus moves a booking along its lifecycle and tells the client.
func (m *BookingManager) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (models.Booking, error) {
	m.mu.Lock()

	idx := m.index(id)
	if idx < 0 {
		m.mu.Unlock()
		return models.Booking{}, ErrBookingNotFound
	}
	current := m.bookings[idx]
	if !models.CanTransition(current.Status, status) {
		m.mu.Unlock()
		return models.Booking{}, &TransitionError{From: current.Status, To: status}
	}

	updated := current
	updated.Status = status
	next := slices.Clone(m.bookings)
	next[idx] = updated

	if err := m.commit(ctx, next); err != nil {
		m.mu.Unlock()
		return models.Booking{}, err
	}
	m.mu.Unlock()

	m.notify(ctx, updated, statusText(updated))
	return updated, nil
}

// AppendMessage adds a message to the booking's thread. An empty sender
// means the photographer.
func (m *BookingManager) AppendMessage(ctx context.Context, id, content string, sender models.MessageSender) (models.Booking, error) {
	if strings.TrimSpace(content) == "" {
		return models.Booking{}, ErrEmptyMessage
	}
	if sender == "" {
		sender = models.SenderPhotographer
	}

	m.mu.Lock()

	idx := m.index(id)
	if idx < 0 {
		m.mu.Unlock()
		return models.Booking{}, ErrBookingNotFound
	}

	msg := models.Message{
		ID:        m.deps.IDs.Next(),
		Sender:    sender,
		Content:   content,
		Timestamp: m.deps.now(),
	}
	updated := m.bookings[idx]
	updated.Messages = append(slices.Clone(updated.Messages), msg)
	next := slices.Clone(m.bookings)
	next[idx] = updated

	if err := m.commit(ctx, next); err != nil {
		m.mu.Unlock()
		return models.Booking{}, err
	}
	m.mu.Unlock()

	if sender == models.SenderPhotographer {
		m.notify(ctx, updated, "New message from your photographer: "+content)
	}
	return updated, nil
}

// UnreadThreads counts bookings whose latest message came from the client.
func (m *BookingManager) UnreadThreads() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, b := range m.bookings {
		if len(b.Messages) > 0 && b.Messages[len(b.Messages)-1].Sender == models.SenderClient {
			n++
		}
	}
	return n
}

func (m *BookingManager) MessageCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, b := range m.bookings {
		n += len(b.Messages)
	}
	return n
}

func (m *BookingManager) index(id string) int {
	return slices.IndexFunc(m.bookings, func(b models.Booking) bool { return b.ID == id })
}

func (m *BookingManager) commit(ctx context.Context, next []models.Booking) error {
	if err := m.repo.Save(ctx, next); err != nil {
		m.deps.Logger.Error("failed to save bookings", zap.Error(err))
		return err
	}
	m.bookings = next
	return nil
}

// notify is best effort; a failed text never undoes the change.
func (m *BookingManager) notify(ctx context.Context, b models.Booking, body string) {
	if err := m.deps.Notifier.Notify(ctx, b.ClientPhone, body); err != nil {
		m.deps.Logger.Warn("client notification failed",
			zap.String("booking", b.ID), zap.Error(err))
	}
}

func statusText(b models.Booking) string {
	return fmt.Sprintf("Hi %s, your %s booking on %s is now %s.",
		b.ClientName, b.EventType, b.EventDate.Format("Jan 2, 2006"), b.Status)
}
