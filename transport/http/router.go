package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/tokenasset/service"
)

// DefaultCookieName is the session cookie set on login
const DefaultCookieName = "tokenasset_session"

// RouterConfig carries transport settings
type RouterConfig struct {
	Cookie      CookieConfig
	ActionLimit int
	Logger      *slog.Logger
}

// SetupRouter sets up the Gin router
func SetupRouter(authService *service.AuthService, marketService *service.MarketService, cfg RouterConfig) *gin.Engine {
	if cfg.Cookie.Name == "" {
		cfg.Cookie.Name = DefaultCookieName
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(cfg.Logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Create handlers
	authHandlers := NewAuthHandlers(authService, cfg.Cookie, cfg.Logger)
	marketHandlers := NewMarketHandlers(marketService, cfg.Logger)
	requireSession := SessionMiddleware(authService, cfg.Cookie.Name, cfg.Logger)
	limiter := NewActionLimiter(cfg.ActionLimit)

	// Session routes
	auth := router.Group("/api/auth")
	{
		auth.POST("/login", authHandlers.Login)
		auth.POST("/register", authHandlers.Register)
		auth.POST("/logout", requireSession, authHandlers.Logout)
		auth.GET("/session", requireSession, authHandlers.Session)
	}

	// Protected API routes
	api := router.Group("/api")
	api.Use(requireSession)
	{
		for _, route := range service.ForwardRoutes {
			handlers := []gin.HandlerFunc{}
			if route.Activity != "" {
				handlers = append(handlers, limiter.Middleware())
			}
			handlers = append(handlers, marketHandlers.Forward(route))
			api.Handle(route.Method, "/"+route.Name, handlers...)
		}

		api.GET("/marketplace", marketHandlers.Marketplace)
		api.GET("/assets", marketHandlers.Assets)
		api.GET("/dashboard", marketHandlers.Dashboard)
		api.GET("/activity", marketHandlers.Activity)
	}

	return router
}
