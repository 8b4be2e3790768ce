package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/learnai/learnai-backend/internal/services"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (ch *ChatHandler) Ask(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	var req struct {
		CourseID *uuid.UUID `json:"course_id"`
		Message  string     `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	answer, err := ch.chatService.Ask(c.Request.Context(), userID, req.CourseID, req.Message)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true, "answer": answer})
}

func (ch *ChatHandler) History(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	messages, err := ch.chatService.History(c.Request.Context(), userID, queryLimit(c, 50))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"messages": messages})
}
