package handler

import (
	"errors"
	"net/http"
	"strconv"

	"civicalert/backend/internal/chat"

	"github.com/gin-gonic/gin"
)

type postMessageRequest struct {
	Text   string `json:"text"`
	ChatID string `json:"chatId"`
}

// PostChatMessage appends a chat message for the authenticated actor.
func (h *Handler) PostChatMessage(c *gin.Context) {
	user := currentUser(c)

	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	result, err := h.Chats.PostMessage(user, req.Text, req.ChatID)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrTextRequired), errors.Is(err, chat.ErrMissingTarget):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, chat.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": result})
}

// ListChats returns all chats for officers, or the citizen's own chat.
func (h *Handler) ListChats(c *gin.Context) {
	user := currentUser(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	chats, err := h.Chats.ListChats(user, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": chats})
}

// GetChat fetches one chat by id.
func (h *Handler) GetChat(c *gin.Context) {
	user := currentUser(c)

	result, err := h.Chats.GetChat(c.Param("id"), user)
	if err != nil {
		if errors.Is(err, chat.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// DeleteChat removes a chat, officer only.
func (h *Handler) DeleteChat(c *gin.Context) {
	user := currentUser(c)

	if err := h.Chats.DeleteChat(c.Param("id"), user); err != nil {
		switch {
		case errors.Is(err, chat.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, chat.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Chat deleted successfully"})
}
