package handler

import (
	"net/http"
	"strconv"

	"github.com/flatmatch/flatmatch-backend/internal/usecase/chat"
	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatUseCase *chat.UseCase
}

func NewChatHandler(chatUseCase *chat.UseCase) *ChatHandler {
	return &ChatHandler{chatUseCase: chatUseCase}
}

type sendMessageRequest struct {
	ReceiverID int    `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required,max=5000"`
}

// Send handles POST /messages
func (h *ChatHandler) Send(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	msg, err := h.chatUseCase.SendMessage(c.Request.Context(), userID, req.ReceiverID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// Thread handles GET /messages/:user_id. Retrieval doubles as the read
// receipt for everything the other user sent.
func (h *ChatHandler) Thread(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	otherID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
		return
	}

	messages, err := h.chatUseCase.Thread(c.Request.Context(), userID, otherID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// Conversations handles GET /conversations
func (h *ChatHandler) Conversations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	conversations, err := h.chatUseCase.Conversations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conversations)
}
