// services/reminder_service.go
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"snapbook-backend/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const DefaultReminderSchedule = "0 9 * * *"

// ReminderLog records one reminder attempt.
type ReminderLog struct {
	PhotographerID string    `json:"photographerId"`
	BookingID      string    `json:"bookingId"`
	Message        string    `json:"message"`
	Status         string    `json:"status"` // sent, failed
	ErrorMessage   string    `json:"errorMessage,omitempty"`
	SentAt         time.Time `json:"sentAt"`
}

// ReminderService texts clients ahead of confirmed shoots in every open
// workspace. A booking is reminded at most once per event date.
type ReminderService struct {
	sessions *Sessions
	notifier Notifier
	window   time.Duration
	now      Clock
	log      *zap.Logger
	cron     *cron.Cron

	mu   sync.Mutex
	sent map[string]ReminderLog
}

func NewReminderService(sessions *Sessions, notifier Notifier, window time.Duration, log *zap.Logger) *ReminderService {
	if log == nil {
		log = zap.NewNop()
	}
	if window <= 0 {
		window = 48 * time.Hour
	}
	return &ReminderService{
		sessions: sessions,
		notifier: notifier,
		window:   window,
		now:      time.Now,
		log:      log,
		sent:     make(map[string]ReminderLog),
	}
}

// StartScheduler runs SendDailyReminders on spec, a standard 5-field cron
// expression.
func (s *ReminderService) StartScheduler(spec string) error {
	if spec == "" {
		spec = DefaultReminderSchedule
	}
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		s.SendDailyReminders(ctx)
	}); err != nil {
		return fmt.Errorf("schedule reminders %q: %w", spec, err)
	}
	c.Start()
	s.cron = c
	s.log.Info("Reminder scheduler started", zap.String("schedule", spec))
	return nil
}

func (s *ReminderService) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func (s *ReminderService) SendDailyReminders(ctx context.Context) []ReminderLog {
	s.log.Info("Starting daily reminder processing...")

	var logs []ReminderLog
	s.sessions.Each(func(w *Workspace) {
		logs = append(logs, s.ProcessPhotographerReminders(ctx, w)...)
	})

	s.log.Info("Daily reminder processing completed", zap.Int("reminders", len(logs)))
	return logs
}

func (s *ReminderService) ProcessPhotographerReminders(ctx context.Context, w *Workspace) []ReminderLog {
	now := s.now()
	horizon := now.Add(s.window)

	var logs []ReminderLog
	for _, b := range w.Bookings.Filter(string(models.BookingConfirmed)) {
		if !b.EventDate.After(now) || b.EventDate.After(horizon) {
			continue
		}
		key := w.PhotographerID + "/" + b.ID + "/" + b.EventDate.Format("2006-01-02")
		if !s.reserve(key) {
			continue
		}

		message := fmt.Sprintf("Hi %s, a reminder that your %s shoot is on %s at %s.",
			b.ClientName, b.EventType, b.EventDate.Format("Mon Jan 2"), b.EventLocation)

		entry := ReminderLog{
			PhotographerID: w.PhotographerID,
			BookingID:      b.ID,
			Message:        message,
			Status:         "sent",
			SentAt:         now,
		}
		if err := s.notifier.Notify(ctx, b.ClientPhone, message); err != nil {
			s.log.Warn("Failed to send reminder",
				zap.String("photographer", w.PhotographerID), zap.String("booking", b.ID), zap.Error(err))
			entry.Status = "failed"
			entry.ErrorMessage = err.Error()
			s.release(key)
		} else {
			s.markSent(key, entry)
		}
		logs = append(logs, entry)
	}
	return logs
}

// reserve claims key for one sender. Concurrent runs skip a booking whose
// reminder is already in flight or sent.
func (s *ReminderService) reserve(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sent[key]; ok {
		return false
	}
	s.sent[key] = ReminderLog{Status: "pending"}
	return true
}

// release drops a reservation so a failed send is retried next run.
func (s *ReminderService) release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sent, key)
}

func (s *ReminderService) markSent(key string, entry ReminderLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent[key] = entry
}
