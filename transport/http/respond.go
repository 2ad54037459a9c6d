package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/tokenasset/core"
	"github.com/layer-3/tokenasset/ports"
	"github.com/layer-3/tokenasset/service"
)

const jsonContentType = "application/json; charset=utf-8"

// relay writes a backend reply back to the browser. JSON bodies pass through
// untouched; anything else is wrapped so the client always gets JSON.
func relay(c *gin.Context, status int, body []byte) {
	trimmed := strings.TrimSpace(string(body))

	switch {
	case trimmed != "" && json.Valid(body):
		c.Data(status, jsonContentType, body)
	case trimmed == "" && status >= 200 && status < 300:
		c.JSON(status, gin.H{})
	case trimmed == "":
		c.JSON(status, gin.H{"error": http.StatusText(status)})
	default:
		c.JSON(status, gin.H{"error": trimmed})
	}
}

func relayResponse(c *gin.Context, resp *ports.Response) {
	relay(c, resp.Status, resp.Body)
}

// respondError maps service errors onto HTTP replies
func respondError(c *gin.Context, logger *slog.Logger, op string, err error) {
	var upstream *service.UpstreamError
	var validation *core.ValidationError

	switch {
	case errors.As(err, &upstream):
		relay(c, upstream.Status, upstream.Body)
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Reason})
	case errors.Is(err, core.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
	case errors.Is(err, core.ErrRequestTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
	case errors.Is(err, core.ErrResponseTooLarge):
		logger.Warn("backend reply over limit", "op", op, "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Bad Gateway"})
	default:
		logger.Error("request failed", "op", op, "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}
