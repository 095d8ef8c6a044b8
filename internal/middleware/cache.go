package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
)

// Advertised max-age seconds per route class. These govern the Cache-Control
// header only; the internal lifetime of stored entries is the separate TTL
// handed to NewResponseCache.
const (
	// ttlStatic is for payloads that only change on deploy or ingestion
	// (the discovery document, the foods listing): effectively unbounded.
	ttlStatic = 365 * 24 * time.Hour
	// ttlHealth keeps the health timestamp reasonably fresh.
	ttlHealth = 10 * time.Minute
	// ttlFood covers the food detail and search responses.
	ttlFood = 8 * time.Hour
	// ttlDefault is the fallback for anything unclassified.
	ttlDefault = time.Hour
)

// ResponseCache memoizes successful GET response bodies keyed by the full
// request URL. Losing an entry only costs a store round trip, never
// correctness, so concurrent misses for one URL are allowed to race.
type ResponseCache struct {
	store    *gocache.Cache
	basePath string
}

// NewResponseCache builds a cache whose entries live for ttl regardless of
// route class.
func NewResponseCache(basePath string, ttl time.Duration) *ResponseCache {
	return &ResponseCache{
		store:    gocache.New(ttl, 2*ttl),
		basePath: strings.TrimSuffix(basePath, "/"),
	}
}

// advertisedTTL classifies a request path. Recomputed on every request, hit
// or miss, so a policy change applies to already-cached entries immediately.
func (rc *ResponseCache) advertisedTTL(path string) time.Duration {
	route := strings.TrimPrefix(path, rc.basePath)
	if route == "" {
		route = "/"
	}

	switch {
	case route == "/" || route == "/foods":
		return ttlStatic
	case route == "/health":
		return ttlHealth
	case strings.HasPrefix(route, "/food"):
		return ttlFood
	default:
		return ttlDefault
	}
}

// bodyBuffer holds back the handler's response so the middleware can decide
// whether to cache it before anything reaches the wire.
type bodyBuffer struct {
	gin.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *bodyBuffer) WriteHeader(code int) { w.status = code }

func (w *bodyBuffer) Write(b []byte) (int, error) { return w.body.Write(b) }

func (w *bodyBuffer) WriteString(s string) (int, error) { return w.body.WriteString(s) }

func (rc *ResponseCache) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.RequestURI()
		maxAge := int(rc.advertisedTTL(c.Request.URL.Path).Seconds())

		if cached, ok := rc.store.Get(key); ok {
			writeJSON(c.Writer, maxAge, cached.([]byte))
			c.Abort()
			return
		}

		buffer := &bodyBuffer{ResponseWriter: c.Writer, status: http.StatusOK}
		c.Writer = buffer
		c.Next()
		c.Writer = buffer.ResponseWriter

		body := buffer.body.Bytes()
		if buffer.status != http.StatusOK {
			// Possibly transient; pass through untouched and uncached.
			c.Writer.WriteHeader(buffer.status)
			_, _ = c.Writer.Write(body)
			return
		}

		rc.store.Set(key, body, gocache.DefaultExpiration)
		writeJSON(c.Writer, maxAge, body)
	}
}

func writeJSON(w gin.ResponseWriter, maxAge int, body []byte) {
	header := w.Header()
	header.Set("Content-Type", "application/json")
	header.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", maxAge))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
