// controllers/reminder.go
package controllers

import (
	"fmt"
	"net/http"

	"snapbook-backend/utils"

	"github.com/gin-gonic/gin"
)

// RunReminders texts the reminders due for this photographer's confirmed
// shoots without waiting for the daily job.
func (d *DashboardController) RunReminders(c *gin.Context) {
	if d.Reminders == nil {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Reminders are not configured")
		return
	}
	w, ok := d.workspace(c)
	if !ok {
		return
	}

	logs := d.Reminders.ProcessPhotographerReminders(c.Request.Context(), w)
	sent := 0
	for _, l := range logs {
		if l.Status == "sent" {
			sent++
		}
	}
	utils.RespondWithMessage(c, http.StatusOK, fmt.Sprintf("%d of %d reminders sent", sent, len(logs)), logs)
}
