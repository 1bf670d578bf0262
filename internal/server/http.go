package server

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"github.com/muurk/selectbox/internal/logging"
	"github.com/muurk/selectbox/internal/selectbox"
	"github.com/muurk/selectbox/internal/version"
)

// optionsResponse is the reply envelope for both transports. Clients accept
// the list under "data".
type optionsResponse struct {
	Data []map[string]any `json:"data"`
}

func (s *Server) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.HEAD("/", func(c *gin.Context) { c.String(http.StatusOK, "selectbox option source is running") })
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "selectbox option source is running") })
	r.GET("/version", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"version": version.Version}) })
	r.GET("/options", s.OptionsHandler)
	r.GET("/ws", s.WebSocketHandler)
	return r
}

// requestLogger logs every request once it has been served.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logging.LogHTTPRequest(c.ClientIP(), c.Request.Method, c.Request.URL.Path, c.Writer.Status())
	}
}

// OptionsHandler answers GET /options?q=term[&limit=n][&mode=fuzzy].
func (s *Server) OptionsHandler(c *gin.Context) {
	items, err := s.lookup(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, optionsResponse{Data: items})
}

// lookup runs one search described by query parameters. It waits for the
// configured latency first, giving up when ctx ends.
func (s *Server) lookup(ctx context.Context, query url.Values) ([]map[string]any, error) {
	limit := s.config.Limit
	if raw := query.Get("limit"); raw != "" {
		n, err := cast.ToIntE(raw)
		if err != nil || n < 0 {
			return nil, selectbox.NewConfigurationError("limit", "limit must be a non-negative integer")
		}
		limit = n
	}
	mode := s.config.Mode
	if raw := query.Get("mode"); raw != "" {
		mode = selectbox.SearchMode(raw)
		if mode != selectbox.SearchPattern && mode != selectbox.SearchFuzzy {
			return nil, selectbox.NewConfigurationError("mode", "mode must be pattern or fuzzy")
		}
	}

	if s.config.Latency > 0 {
		timer := time.NewTimer(s.config.Latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return s.source.Search(query.Get(s.config.TermQuery), mode, limit), nil
}
