package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"petcare-app-server/internal/middleware"
	"petcare-app-server/internal/models"
	"petcare-app-server/internal/utils"
)

// NotificationHandler handles notification inbox requests.
type NotificationHandler struct {
	DB *gorm.DB
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{DB: db}
}

// GetNotificationsForUser handles fetching the logged-in user's notifications,
// newest first. Supports ?filter=unread and ?filter=emergency.
func (h *NotificationHandler) GetNotificationsForUser(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	query := h.DB.Where("user_id = ?", userID).Order("created_at desc")
	switch c.Query("filter") {
	case "unread":
		query = query.Where("is_read = ?", false)
	case "emergency":
		query = query.Where("type = ? AND is_user_triggered = ?", models.NotificationSOS, true)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch notifications: "+err.Error())
		return
	}

	utils.Success(c, "Notifications fetched successfully", notifications)
}

// MarkNotificationAsRead handles marking one notification as read.
func (h *NotificationHandler) MarkNotificationAsRead(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	result := h.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		Update("is_read", true)
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to mark notification as read: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Notification not found")
		return
	}

	utils.Success(c, "Notification marked as read", nil)
}

// MarkAllNotificationsAsRead handles marking every unread notification for
// the logged-in user as read.
func (h *NotificationHandler) MarkAllNotificationsAsRead(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		utils.InternalServerError(c, "Failed to mark notifications as read: "+err.Error())
		return
	}

	utils.Success(c, "All notifications marked as read", nil)
}
