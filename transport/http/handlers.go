package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/tokenasset/core"
	"github.com/layer-3/tokenasset/service"
)

// CookieConfig controls the session cookie
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandlers contains HTTP handlers for session endpoints
type AuthHandlers struct {
	authService *service.AuthService
	cookie      CookieConfig
	logger      *slog.Logger
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authService *service.AuthService, cookie CookieConfig, logger *slog.Logger) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles the login request
func (h *AuthHandlers) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	session, token, err := h.authService.Login(c.Request.Context(), core.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, core.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		respondError(c, h.logger, "login", err)
		return
	}

	h.startSession(c, session, token)
}

// Register creates an account and opens a session for it
func (h *AuthHandlers) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	session, token, err := h.authService.Register(c.Request.Context(), core.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, core.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		respondError(c, h.logger, "register", err)
		return
	}

	h.startSession(c, session, token)
}

func (h *AuthHandlers) startSession(c *gin.Context, session *core.Session, token string) {
	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, maxAge, "/", "", h.cookie.Secure, true)

	c.JSON(http.StatusOK, gin.H{
		"user":       session.User(),
		"expires_at": session.ExpiresAt,
		"token":      token,
	})
}

// Logout handles session logout
func (h *AuthHandlers) Logout(c *gin.Context) {
	session := currentSession(c)

	if err := h.authService.Logout(c.Request.Context(), session); err != nil {
		h.logger.Error("logout failed", "session_id", session.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Session returns the signed-in user
func (h *AuthHandlers) Session(c *gin.Context) {
	session := currentSession(c)

	c.JSON(http.StatusOK, gin.H{
		"user":       session.User(),
		"expires_at": session.ExpiresAt,
	})
}
