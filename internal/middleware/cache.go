package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
)

type cachedResponse struct {
	status      int
	contentType string
	body        []byte
}

type bodyCapture struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// ResponseCache memoises successful GET responses for a short TTL. Slot
// listings are read-heavy and a few seconds of staleness is acceptable;
// booking always re-validates against the database anyway.
type ResponseCache struct {
	store *gocache.Cache
}

func NewResponseCache(ttl time.Duration) *ResponseCache {
	return &ResponseCache{store: gocache.New(ttl, 2*ttl)}
}

func (rc *ResponseCache) Cached() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.RequestURI()
		if v, ok := rc.store.Get(key); ok {
			resp := v.(cachedResponse)
			c.Data(resp.status, resp.contentType, resp.body)
			c.Abort()
			return
		}

		w := &bodyCapture{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		if c.Writer.Status() == http.StatusOK {
			rc.store.SetDefault(key, cachedResponse{
				status:      c.Writer.Status(),
				contentType: c.Writer.Header().Get("Content-Type"),
				body:        w.buf.Bytes(),
			})
		}
	}
}
