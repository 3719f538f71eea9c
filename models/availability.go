package models

import "time"

type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
	SlotBlocked   SlotStatus = "blocked"

	// SlotUnavailable is reported for days that have no slot at all.
	// It is never stored.
	SlotUnavailable SlotStatus = "unavailable"
)

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type BookingInfo struct {
	ClientName string `json:"clientName"`
	EventType  string `json:"eventType"`
	Package    string `json:"package"`
}

// AvailabilitySlot is one calendar day of a photographer's availability.
type AvailabilitySlot struct {
	ID          string       `json:"id"`
	Date        time.Time    `json:"date"`
	Status      SlotStatus   `json:"status"`
	TimeSlots   []TimeSlot   `json:"timeSlots"`
	Notes       string       `json:"notes,omitempty"`
	BookingInfo *BookingInfo `json:"bookingInfo,omitempty"`
}

func (s AvailabilitySlot) EntityID() string { return s.ID }
