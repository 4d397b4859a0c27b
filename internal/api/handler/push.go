package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type registerTokenRequest struct {
	Token string `json:"token"`
}

// RegisterPushToken stores the caller's device push token for the offline
// fallback. The app re-registers on every login, so tokens may expire.
func (h *Handler) RegisterPushToken(c *gin.Context) {
	user := currentUser(c)

	var req registerTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Token is required"})
		return
	}

	if err := h.Store.SavePushToken(user.ID, req.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Push token registered"})
}

// UnregisterPushToken removes the caller's device push token.
func (h *Handler) UnregisterPushToken(c *gin.Context) {
	user := currentUser(c)

	if err := h.Store.DeletePushToken(user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Push token removed"})
}
