package http

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/tokenasset/core"
	"github.com/layer-3/tokenasset/service"
)

// maxRequestBody caps client bodies forwarded to the backend
const maxRequestBody = 1 << 20

// MarketHandlers serves the forwarding routes and the read views
type MarketHandlers struct {
	market *service.MarketService
	logger *slog.Logger
}

// NewMarketHandlers creates new marketplace handlers
func NewMarketHandlers(market *service.MarketService, logger *slog.Logger) *MarketHandlers {
	return &MarketHandlers{market: market, logger: logger}
}

// Forward returns a handler relaying the request to the route's backend endpoint
func (h *MarketHandlers) Forward(route service.Route) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body []byte
		if route.Method != http.MethodGet {
			var err error
			body, err = readBody(c.Request.Body, maxRequestBody)
			if err != nil {
				respondError(c, h.logger, route.Name, err)
				return
			}
		}

		resp, err := h.market.Forward(c.Request.Context(), currentSession(c), route, body)
		if err != nil {
			respondError(c, h.logger, route.Name, err)
			return
		}

		relayResponse(c, resp)
	}
}

// readBody reads at most limit bytes and fails instead of truncating
func readBody(r io.Reader, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, core.ErrRequestTooLarge
	}
	return body, nil
}

// Marketplace returns active offers split into the user's and everyone else's
func (h *MarketHandlers) Marketplace(c *gin.Context) {
	market, err := h.market.Marketplace(c.Request.Context(), currentSession(c))
	if err != nil {
		respondError(c, h.logger, "marketplace", err)
		return
	}
	c.JSON(http.StatusOK, market)
}

// Assets returns the user's NFTs with decoded metadata
func (h *MarketHandlers) Assets(c *gin.Context) {
	assets, err := h.market.Assets(c.Request.Context(), currentSession(c))
	if err != nil {
		respondError(c, h.logger, "assets", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

// Dashboard returns the holdings summary
func (h *MarketHandlers) Dashboard(c *gin.Context) {
	dashboard, err := h.market.Dashboard(c.Request.Context(), currentSession(c))
	if err != nil {
		respondError(c, h.logger, "dashboard", err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// Activity returns the user's journal
func (h *MarketHandlers) Activity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	activity, err := h.market.Activity(c.Request.Context(), currentSession(c), limit)
	if err != nil {
		respondError(c, h.logger, "activity", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": activity})
}
