package controllers

import (
	"errors"
	"net/http"

	"github.com/iCodeLakshay/fit-tracker-backend/middlewares"
	"github.com/iCodeLakshay/fit-tracker-backend/services"

	"github.com/gin-gonic/gin"
)

type AIController struct {
	AI *services.AIService
	// production strips diagnostic detail from 500 responses
	production bool
}

func NewAIController(ai *services.AIService, production bool) *AIController {
	return &AIController{AI: ai, production: production}
}

type ChatInput struct {
	Message             string                 `json:"message"`
	ConversationHistory []services.ChatMessage `json:"conversationHistory"`
}

func (a *AIController) Chat(c *gin.Context) {
	userID := middlewares.GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := a.AI.SendMessage(userID, input.Message, input.ConversationHistory)
	if err != nil {
		a.renderChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"response":  reply.Response,
		"timestamp": reply.Timestamp,
	})
}

func (a *AIController) renderChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAINotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI service is not configured on the server"})
	case errors.Is(err, services.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, services.ErrUpstreamAuth):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key or API key not configured"})
	case errors.Is(err, services.ErrUpstreamQuota):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "API quota exceeded. Please try again later."})
	default:
		body := gin.H{"error": "Failed to generate AI response"}
		if !a.production {
			body["details"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}

// Suggestions never surfaces a hard failure; the service degrades to a
// fixed list on any error.
func (a *AIController) Suggestions(c *gin.Context) {
	userID := middlewares.GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	result := a.AI.GetSuggestions(userID)
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"suggestions": result.Suggestions,
	})
}
