package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	unsplash "github.com/jassus213/go-unsplash"
	"github.com/jassus213/go-unsplash/ratelimiter"
)

type handlers struct {
	client *unsplash.Client
	gate   *ratelimiter.Gate
	logger *zap.Logger
}

func (h *handlers) searchPhotos(c *gin.Context) {
	data, err := h.client.SearchPhotos(c.Request.Context(), c.Query("query"), intQuery(c, "per_page"), intQuery(c, "page"))
	h.respond(c, data, err)
}

func (h *handlers) searchPhotosAdvanced(c *gin.Context) {
	data, err := h.client.SearchPhotosAdvanced(c.Request.Context(), queryParams(c))
	h.respond(c, data, err)
}

func (h *handlers) randomPhoto(c *gin.Context) {
	data, err := h.client.GetRandomPhoto(c.Request.Context(), queryParams(c))
	h.respond(c, data, err)
}

func (h *handlers) photo(c *gin.Context) {
	data, err := h.client.GetPhoto(c.Request.Context(), c.Param("id"))
	h.respond(c, data, err)
}

func (h *handlers) photoDownload(c *gin.Context) {
	link, err := h.client.GetPhotoDownloadLink(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respond(c, nil, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": link})
}

func (h *handlers) listCollections(c *gin.Context) {
	data, err := h.client.ListCollections(c.Request.Context(), intQuery(c, "per_page"), intQuery(c, "page"))
	h.respond(c, data, err)
}

func (h *handlers) searchCollections(c *gin.Context) {
	data, err := h.client.SearchCollections(c.Request.Context(), c.Query("query"), intQuery(c, "per_page"), intQuery(c, "page"))
	h.respond(c, data, err)
}

func (h *handlers) collection(c *gin.Context) {
	data, err := h.client.GetCollection(c.Request.Context(), c.Param("id"))
	h.respond(c, data, err)
}

func (h *handlers) user(c *gin.Context) {
	data, err := h.client.GetUser(c.Request.Context(), c.Param("username"))
	h.respond(c, data, err)
}

func (h *handlers) userPhotos(c *gin.Context) {
	data, err := h.client.GetUserPhotos(c.Request.Context(), c.Param("username"), intQuery(c, "per_page"), intQuery(c, "page"))
	h.respond(c, data, err)
}

// rateLimit reports the cached telemetry. Counters that were never observed
// or have expired are null.
func (h *handlers) rateLimit(c *gin.Context) {
	t, err := h.gate.Telemetry(c.Request.Context())
	if err != nil {
		h.logger.Error("read rate limit telemetry", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rate limit telemetry unavailable"})
		return
	}

	cfg := h.gate.Config()
	body := gin.H{
		"limit":     nil,
		"remaining": nil,
		"threshold": cfg.Threshold,
		"enabled":   cfg.Enabled,
	}
	if t.HasLimit {
		body["limit"] = t.Limit
	}
	if t.HasRemaining {
		body["remaining"] = t.Remaining
	}
	c.JSON(http.StatusOK, body)
}

// respond writes data as JSON. An upstream HTTP error is relayed with its
// status code and decoded body; any other failure becomes 502.
func (h *handlers) respond(c *gin.Context, data any, err error) {
	if err == nil {
		c.JSON(http.StatusOK, data)
		return
	}

	var apiErr *unsplash.ApiError
	if errors.As(err, &apiErr) && apiErr.Type == unsplash.TypeHTTPStatus {
		h.logger.Warn("upstream returned error status",
			zap.String("path", apiErr.Path),
			zap.Int("status", apiErr.StatusCode))
		if isNil(data) {
			c.JSON(apiErr.StatusCode, gin.H{"error": http.StatusText(apiErr.StatusCode)})
			return
		}
		c.JSON(apiErr.StatusCode, data)
		return
	}

	h.logger.Error("upstream call failed", zap.Error(err))
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}

// isNil reports whether v carries no decoded body.
func isNil(v any) bool {
	switch d := v.(type) {
	case nil:
		return true
	case map[string]any:
		return d == nil
	case []any:
		return d == nil
	}
	return false
}

func intQuery(c *gin.Context, name string) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return n
}

// queryParams copies the request query. Repeated keys become lists.
func queryParams(c *gin.Context) map[string]any {
	params := make(map[string]any)
	for k, vs := range c.Request.URL.Query() {
		if len(vs) == 1 {
			params[k] = vs[0]
			continue
		}
		params[k] = append([]string(nil), vs...)
	}
	return params
}
