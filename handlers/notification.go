package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotwise/services/notification"
	"slotwise/utils"
)

// NotificationHandler exposes the notification center over HTTP.
type NotificationHandler struct {
	Service notification.Service
}

func NewNotificationHandler(svc notification.Service) *NotificationHandler {
	return &NotificationHandler{Service: svc}
}

// ListNotificationsHandler returns the acting user's notifications, newest
// first. Passing ?markRead=true marks everything read in the same call, which
// is how opening the notification list flips the unread state.
func (h *NotificationHandler) ListNotificationsHandler(c *gin.Context) {
	recipientID, _ := actor(c)

	items, err := h.Service.ListForRecipient(c.Request.Context(), recipientID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list notifications", err.Error())
		return
	}

	if c.Query("markRead") == "true" {
		if err := h.Service.MarkAllRead(c.Request.Context(), recipientID); err != nil {
			utils.GetLogger().Warn("Failed to mark notifications read", zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": items})
}

// MarkReadHandler marks a single notification read.
func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	id := c.Param("notificationID")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing notification ID in path"})
		return
	}
	if err := h.Service.MarkRead(c.Request.Context(), id); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to mark notification read", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked read"})
}

// MarkActionedHandler marks a booking_request notification actioned. The
// actioned=false response means another surface already resolved the request.
func (h *NotificationHandler) MarkActionedHandler(c *gin.Context) {
	id := c.Param("notificationID")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing notification ID in path"})
		return
	}
	actioned, err := h.Service.MarkActioned(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to mark notification actioned", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"actioned": actioned})
}
