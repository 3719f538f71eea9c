package controllers

import (
	"net/http"

	"snapbook-backend/models"
	"snapbook-backend/services"
	"snapbook-backend/utils"

	"github.com/gin-gonic/gin"
)

type StatusInput struct {
	Status string `json:"status" binding:"required"`
}

type MessageInput struct {
	Content string               `json:"content"`
	Sender  models.MessageSender `json:"sender"`
}

// ListBookings handles GET /bookings?status=pending. No status means all.
func (d *DashboardController) ListBookings(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookings": w.Bookings.Filter(c.DefaultQuery("status", services.FilterAll)),
		"stats":    w.Bookings.Stats(),
	})
}

func (d *DashboardController) BookingStats(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, w.Bookings.Stats())
}

func (d *DashboardController) GetBooking(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}
	b, err := w.Bookings.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, d.Log, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (d *DashboardController) CreateBooking(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}

	var input services.NewBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	b, err := w.Bookings.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, d.Log, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (d *DashboardController) UpdateBookingStatus(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}

	var input StatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	status, err := models.ParseBookingStatus(input.Status)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	b, err := w.Bookings.UpdateStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		respondServiceError(c, d.Log, err)
		return
	}
	utils.RespondWithMessage(c, http.StatusOK, "Booking "+string(b.Status)+"!", b)
}

func (d *DashboardController) SendMessage(c *gin.Context) {
	w, ok := d.workspace(c)
	if !ok {
		return
	}

	var input MessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	switch input.Sender {
	case "", models.SenderClient, models.SenderPhotographer:
	default:
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid sender")
		return
	}

	b, err := w.Bookings.AppendMessage(c.Request.Context(), c.Param("id"), input.Content, input.Sender)
	if err != nil {
		respondServiceError(c, d.Log, err)
		return
	}
	utils.RespondWithMessage(c, http.StatusOK, "Message sent!", b)
}
