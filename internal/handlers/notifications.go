package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-booking-server/internal/middleware"
	"clinic-booking-server/internal/store"
	"clinic-booking-server/internal/utils"
)

// NotificationHandler handles the per-user notification inbox.
type NotificationHandler struct {
	Notifications *store.Notifications
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{Notifications: store.NewNotifications(db)}
}

// NotificationView is the inbox projection of a notification.
type NotificationView struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedOn string `json:"createdOn"`
}

// GetMyNotifications lists the caller's notifications, newest first.
func (h *NotificationHandler) GetMyNotifications(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	notifications, err := h.Notifications.FindByUser(userID)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch notifications: "+err.Error())
		return
	}

	views := make([]NotificationView, 0, len(notifications))
	for _, n := range notifications {
		views = append(views, NotificationView{
			ID:        n.ID,
			Message:   n.Message,
			Read:      n.Read,
			CreatedOn: n.CreatedAt.Format(time.RFC3339),
		})
	}
	utils.Success(c, "Notifications fetched successfully", views)
}

// MarkAsRead flips the read flag on one of the caller's notifications.
// Only the owning user may do this.
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	n, err := h.Notifications.Get(c.Param("id"))
	if err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}
	if n == nil {
		utils.NotFound(c, "Notification not found")
		return
	}
	if n.UserID != userID {
		utils.Forbidden(c, "You cannot modify someone else's notification")
		return
	}

	n.Read = true
	if err := h.Notifications.Save(n); err != nil {
		utils.InternalServerError(c, "Failed to update notification: "+err.Error())
		return
	}
	utils.Success(c, "Notification marked as read", nil)
}
