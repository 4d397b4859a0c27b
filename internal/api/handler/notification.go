package handler

import (
	"errors"
	"net/http"

	"civicalert/backend/internal/models"
	"civicalert/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// ListNotifications returns the 50 most recent notifications of the
// authenticated user, newest first.
func (h *Handler) ListNotifications(c *gin.Context) {
	user := currentUser(c)

	notifications, err := h.Store.GetNotifications(user.ID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, storage.ErrInvalidID) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": notifications})
}

// MarkNotificationRead marks one notification as read. A notification that
// does not exist and one owned by somebody else both come back as 404.
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	user := currentUser(c)

	updated, err := h.Store.MarkNotificationRead(c.Param("id"), user.ID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, storage.ErrInvalidID) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Notification not found or unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}

// MarkAllNotificationsRead marks every unread notification of the user.
func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	user := currentUser(c)

	count, err := h.Store.MarkAllNotificationsRead(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"modifiedCount": count}})
}

// DeleteNotification removes one notification, same ownership rules as
// MarkNotificationRead.
func (h *Handler) DeleteNotification(c *gin.Context) {
	user := currentUser(c)

	deleted, err := h.Store.DeleteNotification(c.Param("id"), user.ID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, storage.ErrInvalidID) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Notification not found or unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Notification deleted successfully"})
}

type testNotificationRequest struct {
	Message  string `json:"message"`
	Type     string `json:"type"`
	ReportID string `json:"reportId"`
}

// CreateTestNotification creates a synthetic notification for the
// logged-in user. Development aid.
func (h *Handler) CreateTestNotification(c *gin.Context) {
	user := currentUser(c)

	var req testNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Message is required"})
		return
	}
	if req.ReportID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "reportId is required"})
		return
	}

	notificationType := req.Type
	if notificationType == "" {
		notificationType = models.NotificationInfo
	}

	notification := &models.Notification{
		UserID:   user.ID,
		ReportID: req.ReportID,
		Message:  req.Message,
		Type:     notificationType,
	}
	if err := h.Store.CreateNotification(notification); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	h.Notifier.Deliver(notification)

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": notification})
}
