package http

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/layer-3/tokenasset/core"
	"github.com/layer-3/tokenasset/service"
	"golang.org/x/time/rate"
)

const (
	sessionKey   = "session"
	requestIDKey = "requestID"

	limiterIdle = 10 * time.Minute
)

// SessionMiddleware resolves the session cookie or bearer token into a
// session. Requests without a live session stop here with 401.
func SessionMiddleware(authService *service.AuthService, cookieName string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c, cookieName)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		session, err := authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			logger.Debug("session rejected", "path", c.Request.URL.Path, "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

func sessionToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	auth := c.GetHeader("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

// currentSession returns the session set by SessionMiddleware
func currentSession(c *gin.Context) *core.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	session, _ := v.(*core.Session)
	return session
}

// RequestLogger logs one line per request
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(requestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", requestID,
		}
		if session := currentSession(c); session != nil {
			attrs = append(attrs, "user", session.Username)
		}
		logger.Info("request", attrs...)
	}
}

// ActionLimiter caps mutating requests per session
type ActionLimiter struct {
	perMinute int
	limiters  map[string]*limiterEntry
	mu        sync.Mutex
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewActionLimiter creates a limiter allowing perMinute actions per session
func NewActionLimiter(perMinute int) *ActionLimiter {
	return &ActionLimiter{
		perMinute: perMinute,
		limiters:  make(map[string]*limiterEntry),
	}
}

func (l *ActionLimiter) allow(sessionID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	entry, ok := l.limiters[sessionID]
	if !ok {
		for id, e := range l.limiters {
			if now.Sub(e.lastSeen) > limiterIdle {
				delete(l.limiters, id)
			}
		}
		entry = &limiterEntry{
			limiter: rate.NewLimiter(rate.Limit(float64(l.perMinute)/60), l.perMinute),
		}
		l.limiters[sessionID] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

// Middleware rejects requests over the session's budget with 429. Must run
// after SessionMiddleware.
func (l *ActionLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := currentSession(c)
		if l.perMinute <= 0 || session == nil {
			c.Next()
			return
		}
		if !l.allow(session.ID) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}
