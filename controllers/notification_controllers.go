package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dmorales/restroom-app/models"
	"github.com/dmorales/restroom-app/utils"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetMyNotifications lists the caller's notifications, unread first.
func (nc *NotificationController) GetMyNotifications(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var notifications []models.Notification
	err := nc.DB.Where("user_id = ?", userID).
		Order("`read` asc, created_at desc").
		Find(&notifications).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All notifications", notifications)
}

// MarkNotificationRead flips one of the caller's notifications to read.
func (nc *NotificationController) MarkNotificationRead(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("notif_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid notification id"))
		return
	}

	userID, _ := c.Get("user_id")

	var notification models.Notification
	if err := nc.DB.Where("id = ? AND user_id = ?", id, userID).First(&notification).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("notification not found"))
		return
	}

	if err := nc.DB.Model(&notification).Update("read", true).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	notification.Read = true
	utils.RespondJSON(c, http.StatusOK, "Notification marked as read", notification)
}
