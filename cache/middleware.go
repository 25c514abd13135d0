package cache

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"factionhub/catalog"
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// CacheMiddleware caches rendered public faction pages (/f/:factionId).
// Visit tracking happens here, not in the page handler: a cache hit never
// reaches the handler, and the visit still counts.
func CacheMiddleware(maxAge time.Duration, track func(c *gin.Context, factionID string)) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "GET" {
			c.Next()
			return
		}

		factionID, ok := factionIDFromPath(c.Request.URL.Path)
		if !ok {
			c.Next()
			return
		}

		if track != nil && catalog.ByID(factionID) != nil {
			track(c, factionID)
		}

		// Query params (page, expand) change the rendered page; only the
		// default view is cached.
		if c.Request.URL.RawQuery != "" {
			c.Next()
			return
		}

		if cached, found := ReadCache(factionID, maxAge); found {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(cached))
			c.Abort()
			return
		}

		c.Header("X-Cache", "MISS")

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           bytes.NewBuffer(nil),
		}
		c.Writer = writer

		c.Next()

		if c.Writer.Status() == http.StatusOK &&
			c.Writer.Header().Get("Content-Type") == "text/html; charset=utf-8" {
			WriteCache(factionID, writer.body.String())
		}
	}
}

// factionIDFromPath matches /f/{factionId} with no further segments.
func factionIDFromPath(path string) (string, bool) {
	if !strings.HasPrefix(path, "/f/") {
		return "", false
	}
	id := strings.TrimPrefix(path, "/f/")
	id = strings.TrimSuffix(id, "/")
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}
