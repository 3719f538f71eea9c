package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"snapbook-backend/models"
	"snapbook-backend/services"
	"snapbook-backend/utils"

	"github.com/gin-gonic/gin"
)

type SlotInput struct {
	ID        string            `json:"id"`
	Date      string            `json:"date" binding:"required"`
	Status    models.SlotStatus `json:"status" binding:"required"`
	TimeSlots []models.TimeSlot `json:"timeSlots"`
	Notes     string            `json:"notes"`
}

type BlockRangeInput struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

func (d *DashboardController) ListAvailability(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": w.Availability.Slots()})
}

// GetDay handles GET /availability/day?date=2025-06-10
func (d *DashboardController) GetDay(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}
	date, ok := d.queryDate(c, w)
	if !ok {
		return
	}
	slots := w.Availability.SlotsOn(date)
	if slots == nil {
		slots = []models.AvailabilitySlot{}
	}
	c.JSON(http.StatusOK, gin.H{
		"date":   date.Format(utils.DayLayout),
		"status": w.Availability.Status(date),
		"slots":  slots,
	})
}

// NewSlot returns an uncommitted draft for ?date=.
func (d *DashboardController) NewSlot(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}
	date, ok := d.queryDate(c, w)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": w.Availability.NewSlot(date)})
}

func (d *DashboardController) SaveSlot(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}

	var input SlotInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	date, err := utils.ParseDay(input.Date, d.location(w))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date: "+input.Date)
		return
	}

	saved, err := w.Availability.SaveSlot(c.Request.Context(), models.AvailabilitySlot{
		ID:        input.ID,
		Date:      date,
		Status:    input.Status,
		TimeSlots: input.TimeSlots,
		Notes:     input.Notes,
	})
	if err != nil {
		respondServiceError(c, d.Log, err)
		return
	}
	utils.RespondWithMessage(c, http.StatusOK, "Availability updated successfully!", saved)
}

func (d *DashboardController) DeleteSlot(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}

	err := w.Availability.DeleteSlot(c.Request.Context(), c.Param("id"))
	if errors.Is(err, services.ErrBookedSlot) {
		utils.RespondWithError(c, http.StatusConflict, "Cannot delete booked time slots")
		return
	}
	if err != nil {
		respondServiceError(c, d.Log, err)
		return
	}
	utils.RespondWithMessage(c, http.StatusOK, "Availability slot deleted!", nil)
}

func (d *DashboardController) BlockRange(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}

	var input BlockRangeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	loc := d.location(w)
	start, err := utils.ParseDay(input.Start, loc)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid start date: "+input.Start)
		return
	}
	end, err := utils.ParseDay(input.End, loc)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid end date: "+input.End)
		return
	}

	n, err := w.Availability.BlockRange(c.Request.Context(), start, end)
	if err != nil {
		respondServiceError(c, d.Log, err)
		return
	}
	utils.RespondWithMessage(c, http.StatusOK, fmt.Sprintf("Blocked %d days", n), gin.H{"blocked": n})
}

func (d *DashboardController) UpcomingBookings(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}
	upcoming := []models.AvailabilitySlot{}
	for slot := range w.Availability.UpcomingBookings() {
		upcoming = append(upcoming, slot)
	}
	c.JSON(http.StatusOK, gin.H{"upcoming": upcoming})
}

// queryDate reads ?date=, defaulting to today.
func (d *DashboardController) queryDate(c *gin.Context, w *services.Workspace) (time.Time, bool) {
	loc := d.location(w)
	raw := c.Query("date")
	if raw == "" {
		return d.now().In(loc), true
	}
	date, err := utils.ParseDay(raw, loc)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date: "+raw)
		return time.Time{}, false
	}
	return date, true
}

// location is the zone the workspace reads calendar days in.
func (d *DashboardController) location(w *services.Workspace) *time.Location {
	return w.Availability.Location()
}
