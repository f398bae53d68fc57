package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfside/boardgame-tracker/internal/upstream"
	"github.com/shelfside/boardgame-tracker/pkg/response"
)

// Caller is the slice of the transport client the proxy needs.
type Caller interface {
	Call(ctx context.Context, method, endpoint string, body any) upstream.Result
}

// ProxyHandler forwards backend routes verbatim, adding the bearer
// credential on the way out and rewrapping every response into the
// canonical envelope on the way back.
type ProxyHandler struct {
	client Caller
}

func NewProxyHandler(client Caller) *ProxyHandler {
	return &ProxyHandler{client: client}
}

func (h *ProxyHandler) Register(r *gin.RouterGroup) {
	games := r.Group("/games")
	{
		games.GET("", h.forward("/games"))
		games.POST("", h.forward("/games"))
		games.GET("/:id", h.forwardID("/games/%s"))
		games.PUT("/:id", h.forwardID("/games/%s"))
		games.DELETE("/:id", h.forwardID("/games/%s"))
		games.PUT("/:id/notes", h.forwardID("/games/%s/notes"))
		games.GET("/:id/data", h.forwardID("/games/%s/data"))
		games.POST("/:id/sync", h.forwardID("/games/%s/sync"))
		games.GET("/:id/history", h.forwardID("/games/%s/history"))
	}
	plays := r.Group("/plays")
	{
		plays.GET("", h.forward("/plays"))
		plays.POST("", h.forward("/plays"))
		plays.DELETE("/:id", h.forwardID("/plays/%s"))
	}
	stats := r.Group("/stats")
	{
		stats.GET("/winners", h.forward("/stats/winners"))
		stats.GET("/totals", h.forward("/stats/totals"))
		stats.GET("/last-played", h.forward("/stats/last-played"))
		stats.GET("/recent", h.forward("/stats/recent"))
		stats.GET("/games", h.forward("/stats/games"))
		stats.GET("/players/:name", func(c *gin.Context) {
			h.do(c, "/stats/players/"+c.Param("name"))
		})
	}
	r.GET("/export", h.forward("/export"))
	r.POST("/query", h.forward("/query"))
}

func (h *ProxyHandler) forward(endpoint string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.do(c, endpoint)
	}
}

func (h *ProxyHandler) forwardID(pattern string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.do(c, fmt.Sprintf(pattern, c.Param("id")))
	}
}

func (h *ProxyHandler) do(c *gin.Context, endpoint string) {
	var body any
	if c.Request.Body != nil && c.Request.Method != http.MethodGet {
		raw, err := io.ReadAll(c.Request.Body)
		if err == nil && len(raw) > 0 {
			body = json.RawMessage(raw)
		}
	}
	res := h.client.Call(c.Request.Context(), c.Request.Method, endpoint, body)
	response.WriteResult(c, res)
}
