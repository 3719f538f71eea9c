package services

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"snapbook-backend/models"
	"snapbook-backend/store"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Workspace is one photographer's open dashboard: the five panels, each
// loaded once when the workspace opens.
type Workspace struct {
	PhotographerID string

	Profile      *ProfileManager
	Portfolio    *PortfolioManager
	Pricing      *PricingManager
	Availability *AvailabilityManager
	Bookings     *BookingManager

	notifications []models.Notification
}

func (w *Workspace) Notifications() []models.Notification {
	return slices.Clone(w.notifications)
}

// View tracking is not implemented; the dashboard shows a fixed figure.
const portfolioViews = 1234

// Overview is the summary row across the top of the dashboard.
type Overview struct {
	TotalBookings     int                       `json:"totalBookings"`
	Revenue           int                       `json:"revenue"`
	PortfolioImages   int                       `json:"portfolioImages"`
	PortfolioViews    int                       `json:"portfolioViews"`
	Categories        int                       `json:"categories"`
	Messages          int                       `json:"messages"`
	UnreadThreads     int                       `json:"unreadThreads"`
	Notifications     int                       `json:"notifications"`
	UpcomingBookings  []models.AvailabilitySlot `json:"upcomingBookings"`
	PricingAnalytics  models.PricingAnalytics   `json:"pricingAnalytics"`
	BookingStatistics BookingStats              `json:"bookingStatistics"`
}

func (w *Workspace) Overview() Overview {
	stats := w.Bookings.Stats()
	upcoming := []models.AvailabilitySlot{}
	for slot := range w.Availability.UpcomingBookings() {
		upcoming = append(upcoming, slot)
	}
	return Overview{
		TotalBookings:     len(w.Bookings.Bookings()),
		Revenue:           stats.TotalRevenue,
		PortfolioImages:   len(w.Portfolio.Images()),
		PortfolioViews:    portfolioViews,
		Categories:        w.Portfolio.CategoryCount(),
		Messages:          w.Bookings.MessageCount(),
		UnreadThreads:     w.Bookings.UnreadThreads(),
		Notifications:     len(w.notifications),
		UpcomingBookings:  upcoming,
		PricingAnalytics:  w.Pricing.Analytics(),
		BookingStatistics: stats,
	}
}

// Sessions keeps the open workspaces. A workspace lives from the first
// dashboard request after login until logout, so unsaved edits and seed
// data behave as they would in a single browser tab.
type Sessions struct {
	mu    sync.Mutex
	open  map[string]*Workspace
	loads singleflight.Group
	store store.Store
	deps  Deps
}

func NewSessions(s store.Store, deps Deps) *Sessions {
	return &Sessions{
		open:  make(map[string]*Workspace),
		store: s,
		deps:  deps.withDefaults(),
	}
}

// Open returns the photographer's workspace, loading it on first use.
// Loads run outside the registry lock; concurrent first requests for the
// same photographer share one load.
func (s *Sessions) Open(ctx context.Context, photographerID string) (*Workspace, error) {
	if w, ok := s.lookup(photographerID); ok {
		return w, nil
	}

	v, err, _ := s.loads.Do(photographerID, func() (any, error) {
		if w, ok := s.lookup(photographerID); ok {
			return w, nil
		}
		w, err := s.load(ctx, photographerID)
		if err != nil {
			return nil, fmt.Errorf("open workspace %s: %w", photographerID, err)
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if existing, ok := s.open[photographerID]; ok {
			return existing, nil
		}
		s.open[photographerID] = w
		s.deps.Logger.Info("workspace opened", zap.String("photographer", photographerID))
		return w, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Workspace), nil
}

func (s *Sessions) lookup(photographerID string) (*Workspace, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.open[photographerID]
	return w, ok
}

// Close drops the workspace and everything it held in memory.
func (s *Sessions) Close(photographerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.open[photographerID]; ok {
		delete(s.open, photographerID)
		s.deps.Logger.Info("workspace closed", zap.String("photographer", photographerID))
	}
}

// Each calls fn for a snapshot of the open workspaces.
func (s *Sessions) Each(fn func(*Workspace)) {
	s.mu.Lock()
	open := make([]*Workspace, 0, len(s.open))
	for _, w := range s.open {
		open = append(open, w)
	}
	s.mu.Unlock()

	for _, w := range open {
		fn(w)
	}
}

func (s *Sessions) load(ctx context.Context, id string) (*Workspace, error) {
	logger := s.deps.Logger.With(zap.String("photographer", id))
	deps := s.deps
	deps.Logger = logger

	profile, err := NewProfileManager(ctx, s.store, store.Key(store.KeyProfile, id), deps)
	if err != nil {
		return nil, err
	}
	portfolio, err := NewPortfolioManager(ctx, s.store, store.Key(store.KeyPortfolio, id), deps)
	if err != nil {
		return nil, err
	}
	pricing, err := NewPricingManager(ctx, s.store, store.Key(store.KeyPackages, id), deps)
	if err != nil {
		return nil, err
	}
	availability, err := NewAvailabilityManager(ctx, s.store, store.Key(store.KeyAvailability, id), deps)
	if err != nil {
		return nil, err
	}
	bookings, err := NewBookingManager(ctx, s.store, store.Key(store.KeyBookings, id), deps)
	if err != nil {
		return nil, err
	}

	return &Workspace{
		PhotographerID: id,
		Profile:        profile,
		Portfolio:      portfolio,
		Pricing:        pricing,
		Availability:   availability,
		Bookings:       bookings,
		notifications:  seedNotifications(),
	}, nil
}
