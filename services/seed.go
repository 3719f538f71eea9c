package services

import (
	"time"

	"snapbook-backend/models"
)

// Sample data every dashboard starts with. Availability and booking seeds
// are dated relative to when the session opens.

func seedAvailability(now time.Time) []models.AvailabilitySlot {
	return []models.AvailabilitySlot{
		{
			ID:        "1",
			Date:      now.AddDate(0, 0, 3),
			Status:    models.SlotBooked,
			TimeSlots: []models.TimeSlot{{Start: "10:00", End: "18:00"}},
			BookingInfo: &models.BookingInfo{
				ClientName: "Sarah & Mike",
				EventType:  "Wedding",
				Package:    "Wedding Premium",
			},
		},
		{
			ID:        "2",
			Date:      now.AddDate(0, 0, 7),
			Status:    models.SlotBooked,
			TimeSlots: []models.TimeSlot{{Start: "14:00", End: "17:00"}},
			BookingInfo: &models.BookingInfo{
				ClientName: "Johnson Family",
				EventType:  "Family Portrait",
				Package:    "Portrait Session",
			},
		},
	}
}

func seedBookings(now time.Time) []models.Booking {
	day := func(n int) time.Time { return now.AddDate(0, 0, n) }
	return []models.Booking{
		{
			ID:            "1",
			ClientName:    "Sarah Johnson",
			ClientEmail:   "sarah.j@email.com",
			ClientPhone:   "+1 (555) 123-4567",
			EventType:     "Wedding",
			EventDate:     day(14),
			EventLocation: "Central Park, New York",
			Package:       "Wedding Premium",
			Price:         2500,
			Status:        models.BookingPending,
			Notes:         "Outdoor ceremony, reception until 11pm. Need drone shots.",
			CreatedAt:     day(-2),
			Messages: []models.Message{
				{
					ID:        "1",
					Sender:    models.SenderClient,
					Content:   "Hi! I'm interested in booking you for our wedding on the 15th. Do you have availability?",
					Timestamp: day(-2),
				},
				{
					ID:        "2",
					Sender:    models.SenderPhotographer,
					Content:   "Hello Sarah! Congratulations on your engagement! Yes, I have availability for that date. I'd love to discuss your vision for the day.",
					Timestamp: day(-1),
				},
			},
		},
		{
			ID:            "2",
			ClientName:    "Mike Thompson",
			ClientEmail:   "mike.t@email.com",
			ClientPhone:   "+1 (555) 987-6543",
			EventType:     "Corporate Event",
			EventDate:     day(7),
			EventLocation: "Downtown Conference Center",
			Package:       "Corporate Event",
			Price:         800,
			Status:        models.BookingConfirmed,
			Notes:         "Annual company meeting, need headshots of executives.",
			CreatedAt:     day(-5),
			Messages: []models.Message{
				{
					ID:        "1",
					Sender:    models.SenderClient,
					Content:   "We need professional photography for our annual meeting. Can you handle both event coverage and individual headshots?",
					Timestamp: day(-5),
				},
			},
		},
		{
			ID:            "3",
			ClientName:    "Emily Chen",
			ClientEmail:   "emily.c@email.com",
			ClientPhone:   "+1 (555) 456-7890",
			EventType:     "Family Portrait",
			EventDate:     day(-10),
			EventLocation: "Brooklyn Bridge Park",
			Package:       "Portrait Session",
			Price:         300,
			Status:        models.BookingCompleted,
			Notes:         "Family of 4, golden hour session requested.",
			CreatedAt:     day(-15),
			Messages:      []models.Message{},
		},
	}
}

func seedPortfolio() []models.PortfolioImage {
	return []models.PortfolioImage{
		{ID: "1", Src: "/assets/photographer-1.jpg", Category: "Wedding", Title: "Romantic Wedding Ceremony", Description: "Beautiful outdoor wedding ceremony at sunset"},
		{ID: "2", Src: "/assets/photographer-2.jpg", Category: "Portrait", Title: "Professional Headshots", Description: "Corporate headshot session"},
		{ID: "3", Src: "/assets/photographer-3.jpg", Category: "Event", Title: "Corporate Gala", Description: "Annual company celebration event"},
	}
}

func seedPackages() []models.PricingPackage {
	return []models.PricingPackage{
		{
			ID:          "1",
			Name:        "Wedding Essential",
			Category:    "Wedding",
			Price:       1500,
			Duration:    "6 hours",
			Description: "Perfect for intimate weddings and ceremonies",
			Features:    []string{"6 hours coverage", "300+ edited photos", "Online gallery", "Print release"},
		},
		{
			ID:          "2",
			Name:        "Wedding Premium",
			Category:    "Wedding",
			Price:       2500,
			Duration:    "8 hours",
			Description: "Complete wedding day coverage with premium features",
			Features:    []string{"8 hours coverage", "500+ edited photos", "Online gallery", "Print release", "Engagement session", "USB drive"},
			IsPopular:   true,
		},
		{
			ID:          "3",
			Name:        "Portrait Session",
			Category:    "Portrait",
			Price:       300,
			Duration:    "1 hour",
			Description: "Professional portrait session for individuals or families",
			Features:    []string{"1 hour session", "30+ edited photos", "Online gallery", "Print release"},
		},
	}
}

func defaultProfile() models.Profile {
	return models.Profile{
		FirstName:       "John",
		LastName:        "Smith",
		Email:           "john.smith@example.com",
		Phone:           "+1 (555) 123-4567",
		Location:        "New York, NY",
		Bio:             "Professional photographer with over 8 years of experience capturing life's most precious moments. Specializing in weddings, portraits, and events.",
		Website:         "www.johnsmithphotography.com",
		Specialties:     []string{"Wedding", "Portrait", "Event", "Corporate"},
		YearsExperience: "8",
		Avatar:          "/placeholder.svg",
	}
}

func seedNotifications() []models.Notification {
	return []models.Notification{
		{ID: 1, Type: "booking", Message: "New booking request for Wedding Photography", Time: "2 hours ago"},
		{ID: 2, Type: "message", Message: "Sarah M. sent you a message", Time: "4 hours ago"},
		{ID: 3, Type: "booking", Message: "Booking confirmed for Corporate Event", Time: "1 day ago"},
	}
}
