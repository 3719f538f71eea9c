package controllers

import (
	"fmt"
	"net/http"
	"time"

	"snapbook-backend/models"
	"snapbook-backend/services"
	"snapbook-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DashboardController serves every /api/dashboard route from the logged-in
// photographer's workspace.
type DashboardController struct {
	Sessions  *services.Sessions
	Reminders *services.ReminderService
	Now       func() time.Time
	Log       *zap.Logger
}

type UpcomingBooking struct {
	models.AvailabilitySlot
	When string `json:"when"` // e.g. "Tomorrow", "3 days"
}

type DashboardOverview struct {
	services.Overview
	UpcomingBookings []UpcomingBooking `json:"upcomingBookings"`
}

func (d *DashboardController) workspace(c *gin.Context) (*services.Workspace, bool) {
	id := c.GetString(utils.ContextPhotographerID)
	if id == "" {
		utils.RespondWithError(c, http.StatusUnauthorized, "Photographer ID not found in context")
		return nil, false
	}

	w, err := d.Sessions.Open(c.Request.Context(), id)
	if err != nil {
		d.Log.Error("failed to open workspace", zap.String("photographer", id), zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load dashboard")
		return nil, false
	}
	return w, true
}

func (d *DashboardController) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *DashboardController) GetOverview(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}

	overview := w.Overview()
	today := d.now()
	upcoming := make([]UpcomingBooking, 0, len(overview.UpcomingBookings))
	for _, slot := range overview.UpcomingBookings {
		upcoming = append(upcoming, UpcomingBooking{
			AvailabilitySlot: slot,
			When:             relativeDay(today.In(slot.Date.Location()), slot.Date),
		})
	}

	c.JSON(http.StatusOK, DashboardOverview{Overview: overview, UpcomingBookings: upcoming})
}

func (d *DashboardController) GetNotifications(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": w.Notifications()})
}

func relativeDay(today, date time.Time) string {
	switch n := utils.DaysBetween(today, date); {
	case n == 0:
		return "Today"
	case n == 1:
		return "Tomorrow"
	case n < 0:
		return fmt.Sprintf("%d days ago", -n)
	default:
		return fmt.Sprintf("%d days", n)
	}
}
