package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dmorales/restroom-app/models"
	"github.com/dmorales/restroom-app/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats serves the counters the admin dashboard shows: incident
// totals by status/priority and cleaning activity volume.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	today := time.Now().Format("2006-01-02")

	var stats struct {
		TotalIncidents   int64 `json:"total_incidents"`
		HighPriorityOpen int64 `json:"high_priority_open"`
		TotalActivities  int64 `json:"total_activities"`
		TodayActivities  int64 `json:"today_activities"`
		StaffCount       int64 `json:"staff_count"`
		IncidentStats    struct {
			Pending    int64 `json:"pending"`
			InProgress int64 `json:"in_progress"`
			Resolved   int64 `json:"resolved"`
		} `json:"incident_stats"`
	}

	incidents := ac.DB.Model(&models.Incident{})
	if err := incidents.Count(&stats.TotalIncidents).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	ac.DB.Model(&models.Incident{}).Where("status = ?", models.IncidentPending).
		Count(&stats.IncidentStats.Pending)
	ac.DB.Model(&models.Incident{}).Where("status = ?", models.IncidentInProgress).
		Count(&stats.IncidentStats.InProgress)
	ac.DB.Model(&models.Incident{}).Where("status = ?", models.IncidentResolved).
		Count(&stats.IncidentStats.Resolved)
	ac.DB.Model(&models.Incident{}).
		Where("priority = ? AND status != ?", models.PriorityHigh, models.IncidentResolved).
		Count(&stats.HighPriorityOpen)

	ac.DB.Model(&models.CleaningActivity{}).Count(&stats.TotalActivities)
	ac.DB.Model(&models.CleaningActivity{}).Where("DATE(created_at) = ?", today).
		Count(&stats.TodayActivities)
	ac.DB.Model(&models.User{}).Where("role = ?", models.RoleCleaningStaff).
		Count(&stats.StaffCount)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}
