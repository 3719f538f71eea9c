package models

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return BookingStatus(s), nil
	default:
		return "", fmt.Errorf("unknown booking status: %q", s)
	}
}

// allowedTransitions mirrors the actions the dashboard offers: a pending
// request is accepted or declined, a confirmed shoot is marked done.
var allowedTransitions = map[BookingStatus]map[BookingStatus]bool{
	BookingPending:   {BookingConfirmed: true, BookingCancelled: true},
	BookingConfirmed: {BookingCompleted: true},
	BookingCompleted: {},
	BookingCancelled: {},
}

func CanTransition(from, to BookingStatus) bool {
	return allowedTransitions[from][to]
}

type MessageSender string

const (
	SenderClient       MessageSender = "client"
	SenderPhotographer MessageSender = "photographer"
)

type Message struct {
	ID        string        `json:"id"`
	Sender    MessageSender `json:"sender"`
	Content   string        `json:"content"`
	Timestamp time.Time     `json:"timestamp"`
}

type Booking struct {
	ID            string        `json:"id"`
	ClientName    string        `json:"clientName"`
	ClientEmail   string        `json:"clientEmail"`
	ClientPhone   string        `json:"clientPhone"`
	EventType     string        `json:"eventType"`
	EventDate     time.Time     `json:"eventDate"`
	EventLocation string        `json:"eventLocation"`
	Package       string        `json:"package"`
	Price         int           `json:"price"`
	Status        BookingStatus `json:"status"`
	Notes         string        `json:"notes"`
	CreatedAt     time.Time     `json:"createdAt"`
	Messages      []Message     `json:"messages"`
}

func (b Booking) EntityID() string { return b.ID }
