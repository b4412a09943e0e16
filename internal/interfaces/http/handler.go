package http

import (
	"fmt"
	"net/http"
	"widgetdesk/internal/entities"
	"widgetdesk/internal/infrastructure"
	"widgetdesk/internal/usecases"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

type Handler struct {
	widgetService *usecases.WidgetService
	authUsecase   *usecases.AuthUsecase
	visitorLimit  *infrastructure.VisitorRateLimiter
	embedBaseURL  string // e.g. https://widget.example.com
}

func NewHandler(service *usecases.WidgetService, auth *usecases.AuthUsecase, visitorLimit *infrastructure.VisitorRateLimiter, embedBaseURL string) *Handler {
	return &Handler{
		widgetService: service,
		authUsecase:   auth,
		visitorLimit:  visitorLimit,
		embedBaseURL:  embedBaseURL,
	}
}

func SetupRoutes(r *gin.Engine, service *usecases.WidgetService, auth *usecases.AuthUsecase, visitorLimit *infrastructure.VisitorRateLimiter, embedBaseURL string, middleware *Middleware) {
	h := NewHandler(service, auth, visitorLimit, embedBaseURL)

	// Apply Security Middleware
	r.Use(SecurityHeaders())
	r.Use(RequestSizeLimiter(1 << 20)) // 1MB max request size
	r.Use(middleware.CORSMiddleware())

	// Public Auth Routes
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	// Public widget routes (unauthenticated, embedded on customer sites)
	widget := r.Group("/widget")
	{
		widget.GET("/:ownerID", h.GetPublicWidgetData)
		widget.POST("/:ownerID/sessions", h.StartSession)
	}
	chat := r.Group("/sessions")
	{
		chat.GET("/:sessionID/messages", h.ListSessionMessages)
		chat.POST("/:sessionID/messages", h.PostVisitorMessage)
	}

	// Dashboard API (JWT)
	api := r.Group("/api")
	api.Use(middleware.AuthRequired())
	api.Use(middleware.RateLimitPerUser(10, 20)) // 10 req/s, burst 20
	{
		api.GET("/settings", h.GetSettings)
		api.PUT("/settings", h.SaveSettings)

		api.GET("/keywords", h.ListKeywords)
		api.POST("/keywords", h.CreateKeyword)
		api.PUT("/keywords/:id", h.UpdateKeyword)
		api.DELETE("/keywords/:id", h.DeleteKeyword)

		api.GET("/sessions", h.ListSessions)
		api.PUT("/sessions/:id", h.UpdateSession)
		api.GET("/sessions/:id/messages", h.ListMessages)

		api.GET("/analytics", h.GetAnalytics)
		api.GET("/embed-qr", h.EmbedQR)
	}
}

// Auth

func (h *Handler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if err := h.authUsecase.Register(c.Request.Context(), req.Email, req.Password); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "registered"})
}

func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	token, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Widget settings

func (h *Handler) GetSettings(c *gin.Context) {
	settings := h.widgetService.GetWidgetSettings(c.Request.Context(), getUserID(c))
	c.JSON(http.StatusOK, settings)
}

// SaveSettings treats the body as a patch: only the fields present in the
// JSON are validated and written; everything else keeps its stored value.
func (h *Handler) SaveSettings(c *gin.Context) {
	var payload entities.WidgetSettingsUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if payload.PrimaryColor != nil && !ValidHexColor(*payload.PrimaryColor) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid primary color"})
		return
	}
	if payload.Position != nil && !ValidPosition(*payload.Position) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid position"})
		return
	}
	if payload.BusinessName != nil {
		*payload.BusinessName = TruncateString(SanitizeString(*payload.BusinessName), MaxBusinessNameLength)
	}
	if payload.WelcomeMessage != nil {
		*payload.WelcomeMessage = TruncateString(SanitizeString(*payload.WelcomeMessage), MaxMessageLength)
	}

	saved := h.widgetService.SaveWidgetSettings(c.Request.Context(), getUserID(c), &payload)
	if saved == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}
	c.JSON(http.StatusOK, saved)
}

// Keyword responses

func (h *Handler) ListKeywords(c *gin.Context) {
	c.JSON(http.StatusOK, h.widgetService.ListKeywordResponses(c.Request.Context(), getUserID(c)))
}

func bindKeywordPayload(c *gin.Context) (*entities.KeywordResponse, bool) {
	var payload entities.KeywordResponse
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return nil, false
	}
	if len(payload.Keywords) == 0 || len(payload.Keywords) > MaxKeywordCount {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Between 1 and 32 keywords required"})
		return nil, false
	}
	for i, kw := range payload.Keywords {
		payload.Keywords[i] = TruncateString(SanitizeString(kw), MaxKeywordLength)
	}
	payload.Response = TruncateString(SanitizeString(payload.Response), MaxResponseLength)
	payload.UserID = getUserID(c)
	return &payload, true
}

func (h *Handler) CreateKeyword(c *gin.Context) {
	payload, ok := bindKeywordPayload(c)
	if !ok {
		return
	}
	payload.ID = "" // ids are assigned by the store
	created := h.widgetService.CreateKeywordResponse(c.Request.Context(), payload)
	if created == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create keyword response"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateKeyword patches the addressed row; omitted fields are untouched.
// Rows belonging to another account come back as not found.
func (h *Handler) UpdateKeyword(c *gin.Context) {
	var payload entities.KeywordResponseUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if payload.Keywords != nil {
		if len(payload.Keywords) == 0 || len(payload.Keywords) > MaxKeywordCount {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Between 1 and 32 keywords required"})
			return
		}
		for i, kw := range payload.Keywords {
			payload.Keywords[i] = TruncateString(SanitizeString(kw), MaxKeywordLength)
		}
	}
	if payload.Response != nil {
		*payload.Response = TruncateString(SanitizeString(*payload.Response), MaxResponseLength)
	}
	payload.ID = c.Param("id")

	updated := h.widgetService.UpdateKeywordResponse(c.Request.Context(), getUserID(c), &payload)
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Keyword response not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteKeyword(c *gin.Context) {
	deleted := h.widgetService.DeleteKeywordResponse(c.Request.Context(), getUserID(c), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// Chat sessions

// ListSessions returns the owner's sessions; ?active=true narrows to the live
// inbox (active and agent_assigned).
func (h *Handler) ListSessions(c *gin.Context) {
	if c.Query("active") == "true" {
		c.JSON(http.StatusOK, h.widgetService.ListActiveChatSessions(c.Request.Context(), getUserID(c)))
		return
	}
	c.JSON(http.StatusOK, h.widgetService.ListChatSessions(c.Request.Context(), getUserID(c)))
}

// UpdateSession patches the addressed row; omitted fields are untouched.
// Sessions belonging to another account come back as not found.
func (h *Handler) UpdateSession(c *gin.Context) {
	var payload entities.ChatSessionUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if payload.Status != nil && !ValidSessionStatus(*payload.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session status"})
		return
	}
	if payload.VisitorName != nil {
		*payload.VisitorName = TruncateString(SanitizeString(*payload.VisitorName), MaxVisitorNameLength)
	}
	payload.ID = c.Param("id")

	updated := h.widgetService.UpdateChatSession(c.Request.Context(), getUserID(c), &payload)
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ListMessages only serves transcripts of the caller's own sessions.
func (h *Handler) ListMessages(c *gin.Context) {
	c.JSON(http.StatusOK, h.widgetService.ListMessagesForOwner(c.Request.Context(), getUserID(c), c.Param("id")))
}

// Analytics

func (h *Handler) GetAnalytics(c *gin.Context) {
	timeRange := c.DefaultQuery("range", usecases.DefaultTimeRange)
	c.JSON(http.StatusOK, h.widgetService.GetAnalytics(c.Request.Context(), getUserID(c), timeRange))
}

// EmbedQR renders a QR code pointing at the owner's public widget page, for
// the "install on your site" dashboard card.
func (h *Handler) EmbedQR(c *gin.Context) {
	url := fmt.Sprintf("%s/widget/%s", h.embedBaseURL, getUserID(c))
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
