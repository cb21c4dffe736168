package handler

import (
	"net/http"

	"krishiconnect/internal/model"
	"krishiconnect/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler serves the messaging panel
type ChatHandler struct {
	service service.ChatService
	logger  *zap.Logger
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(s service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{service: s, logger: logger}
}

func (h *ChatHandler) ListMessages(c *gin.Context) {
	sid, err := getAuthSessionID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}
	msgs, err := h.service.List(c.Request.Context(), sid)
	if err != nil {
		respondError(c, h.logger, err, "Failed to load messages")
		return
	}
	c.JSON(http.StatusOK, msgs)
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	sid, err := getAuthSessionID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}
	role, err := getAuthUserRole(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	var req model.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	msg, err := h.service.Send(c.Request.Context(), sid, role, req.Message)
	if err != nil {
		respondError(c, h.logger, err, "Failed to send message")
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// RegisterChatRoutes registers the chat routes
func (h *ChatHandler) RegisterChatRoutes(rg *gin.RouterGroup, jwtAuthMW gin.HandlerFunc) {
	chatGroup := rg.Group("/chat", jwtAuthMW)
	{
		chatGroup.GET("/messages", h.ListMessages)
		chatGroup.POST("/messages", h.SendMessage)
	}
}
