package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/wedding-invitation/internal/config"
)

// bodyRecorder captures the response body while forwarding it to the
// client, so a successful response can be stored after the handler ran.
type bodyRecorder struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *bodyRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// NewResponseCache caches successful JSON GET responses in Redis for
// cfg.TTL.  It is applied only to the public read endpoints (gift
// listing, invite page), which every guest loads and which change
// rarely; writes go through uncached handlers, so a stale entry lives
// at most one TTL.  With caching disabled or Redis unavailable the
// middleware is a pass-through.
func NewResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			req := c.Request()
			// The concrete URL path (not the route pattern) keys the entry,
			// so /v1/invite/<token-a> and <token-b> never collide.
			sum := sha1.Sum([]byte(req.Method + ":" + req.URL.Path + ":" + req.URL.RawQuery))
			key := fmt.Sprintf("%s:%x", cfg.Prefix, sum)

			if body, err := rdb.Get(req.Context(), key).Bytes(); err == nil {
				c.Response().Header().Set("X-Cache", "HIT")
				return c.JSONBlob(http.StatusOK, body)
			}

			rec := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = rec
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}
			if rec.status == http.StatusOK && rec.buf.Len() > 0 {
				// Store outside the request context so a client that hangs
				// up right after the response does not abort the write.
				_ = rdb.SetEx(context.Background(), key, rec.buf.Bytes(), ttl).Err()
			}
			return nil
		}
	}
}
