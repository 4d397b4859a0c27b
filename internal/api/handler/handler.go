package handler

import (
	"civicalert/backend/internal/chat"
	"civicalert/backend/internal/config"
	"civicalert/backend/internal/notifier"
	"civicalert/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// Handler carries the services the HTTP layer dispatches into.
type Handler struct {
	Store    storage.Storage
	Chats    *chat.Service
	Notifier *notifier.Notifier
	Cfg      config.Config
}

func NewHandler(store storage.Storage, chats *chat.Service, n *notifier.Notifier, cfg config.Config) *Handler {
	return &Handler{
		Store:    store,
		Chats:    chats,
		Notifier: n,
		Cfg:      cfg,
	}
}

// RegisterRoutes wires every endpoint onto the router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/health", h.Health)

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", h.Protect(), h.Me)
	}

	reports := r.Group("/api/reports", h.Protect())
	{
		reports.POST("", h.CreateReport)
		reports.GET("", h.ListReports)
		reports.GET("/:id", h.GetReport)
		reports.PUT("/:id", h.UpdateReport)
		reports.DELETE("/:id", h.DeleteReport)
		reports.PUT("/:id/status", h.RequireOfficer(), h.UpdateReportStatus)
	}

	notifications := r.Group("/api/notifications", h.Protect())
	{
		notifications.GET("", h.ListNotifications)
		notifications.PATCH("/mark-all-read", h.MarkAllNotificationsRead)
		notifications.PATCH("/:id/read", h.MarkNotificationRead)
		notifications.DELETE("/:id", h.DeleteNotification)
		notifications.POST("/test", h.CreateTestNotification)
	}

	chats := r.Group("/api/chats", h.Protect())
	{
		chats.POST("", h.PostChatMessage)
		chats.GET("", h.ListChats)
		chats.GET("/:id", h.GetChat)
		chats.DELETE("/:id", h.DeleteChat)
	}

	pushGroup := r.Group("/api/push", h.Protect())
	{
		pushGroup.POST("/register", h.RegisterPushToken)
		pushGroup.DELETE("/register", h.UnregisterPushToken)
	}

	r.GET("/ws", h.ServeWebSocket)
}
