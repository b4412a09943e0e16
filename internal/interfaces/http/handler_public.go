package http

import (
	"net/http"
	"widgetdesk/internal/entities"
	"widgetdesk/internal/usecases"

	"github.com/gin-gonic/gin"
)

// GetPublicWidgetData serves the payload the embedded widget bootstraps from.
// Unknown owners and store failures both yield the empty shape with 200 so the
// widget script degrades silently on customer sites.
func (h *Handler) GetPublicWidgetData(c *gin.Context) {
	c.JSON(http.StatusOK, h.widgetService.GetPublicWidgetData(c.Request.Context(), c.Param("ownerID")))
}

// StartSession opens a chat session for a visitor on an owner's widget.
func (h *Handler) StartSession(c *gin.Context) {
	ownerID := c.Param("ownerID")
	if !h.visitorLimit.Allow(c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
		return
	}

	var payload struct {
		VisitorID   string `json:"visitor_id"`
		VisitorName string `json:"visitor_name"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	session := h.widgetService.CreateChatSession(c.Request.Context(), &entities.ChatSession{
		UserID:      ownerID,
		VisitorID:   TruncateString(SanitizeString(payload.VisitorID), MaxVisitorNameLength),
		VisitorName: TruncateString(SanitizeString(payload.VisitorName), MaxVisitorNameLength),
		Status:      entities.SessionActive,
	})
	if session == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
		return
	}
	c.JSON(http.StatusCreated, session)
}

// ListSessionMessages lets the widget poll its own transcript.
func (h *Handler) ListSessionMessages(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if !ValidUUID(sessionID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
		return
	}
	c.JSON(http.StatusOK, h.widgetService.ListMessages(c.Request.Context(), sessionID))
}

// PostVisitorMessage appends a visitor message and, when a configured keyword
// matches, the automatic bot reply right after it.
func (h *Handler) PostVisitorMessage(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if !ValidUUID(sessionID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
		return
	}
	if !h.visitorLimit.Allow(sessionID) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many messages"})
		return
	}

	var payload struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	content := TruncateString(SanitizeString(payload.Content), MaxMessageLength)

	session := h.widgetService.GetChatSession(c.Request.Context(), sessionID)
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if session.Status == entities.SessionClosed {
		c.JSON(http.StatusConflict, gin.H{"error": "Session is closed"})
		return
	}

	message := h.widgetService.CreateMessage(c.Request.Context(), &entities.ChatMessage{
		SessionID: sessionID,
		Sender:    entities.SenderVisitor,
		Content:   content,
	})
	if message == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	// First-match-wins auto-reply; the list is already priority-ordered.
	var reply *entities.ChatMessage
	responses := h.widgetService.ListKeywordResponses(c.Request.Context(), session.UserID)
	if matched := usecases.MatchKeywordResponse(content, responses); matched != nil {
		reply = h.widgetService.CreateMessage(c.Request.Context(), &entities.ChatMessage{
			SessionID: sessionID,
			Sender:    entities.SenderBot,
			Content:   matched.Response,
		})
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": message,
		"reply":   reply,
	})
}
