package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// ShowroomCacheHeader tells clients whether a response came from the cache.
const ShowroomCacheHeader = "x-showroom-cache"

const (
	cacheHit  = "hit"
	cacheMiss = "miss"

	fallbackKeyPrefix = "showroom-api-cache:"
	fallbackTTL       = 15 * time.Second
	maxStoredBody     = 1 << 20
	skipStoreKey      = "showroom.cache.skip"

	fieldStatus = "status"
	fieldType   = "content_type"
	fieldBody   = "body"
)

type HTTPCacheOptions struct {
	TTL       time.Duration
	KeyPrefix string
	Disable   bool
	// MaxBodyBytes caps stored bodies; larger responses are served but not cached.
	MaxBodyBytes int
}

// SkipCache keeps the current response out of the cache. Listing handlers
// call it when they answer with demo content.
func SkipCache(c *gin.Context) {
	c.Set(skipStoreKey, true)
}

func skipped(c *gin.Context) bool {
	return c.GetBool(skipStoreKey)
}

// HTTPCache serves repeated GETs from Redis. Each entry is a hash holding
// status, content type and body, expiring after TTL. A nil client turns the
// middleware into a no-op.
func HTTPCache(rdb *redis.Client, opts HTTPCacheOptions) gin.HandlerFunc {
	if opts.TTL <= 0 {
		opts.TTL = fallbackTTL
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = maxStoredBody
	}
	if strings.TrimSpace(opts.KeyPrefix) == "" {
		opts.KeyPrefix = fallbackKeyPrefix
	}

	return func(c *gin.Context) {
		if opts.Disable || rdb == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := opts.KeyPrefix + c.Request.URL.RequestURI()
		if entry, ok := loadEntry(ctx, rdb, key); ok {
			c.Header(ShowroomCacheHeader, cacheHit)
			c.Data(entry.status, entry.contentType, entry.body)
			c.Abort()
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer, limit: opts.MaxBodyBytes}
		c.Writer = rec
		c.Header(ShowroomCacheHeader, cacheMiss)
		c.Next()

		if skipped(c) || rec.truncated || len(rec.body) == 0 {
			return
		}
		if !storable(rec.Status(), rec.Header().Get("Cache-Control")) {
			return
		}
		entry := cachedEntry{
			status:      rec.Status(),
			contentType: rec.Header().Get("Content-Type"),
			body:        rec.body,
		}
		_ = storeEntry(ctx, rdb, key, entry, opts.TTL)
	}
}

// PurgeHTTPCache deletes every entry under prefix and reports how many keys
// were removed.
func PurgeHTTPCache(ctx context.Context, rdb *redis.Client, prefix string) (int64, error) {
	if rdb == nil {
		return 0, nil
	}
	if strings.TrimSpace(prefix) == "" {
		prefix = fallbackKeyPrefix
	}

	var removed int64
	iter := rdb.Scan(ctx, 0, prefix+"*", 200).Iterator()
	batch := make([]string, 0, 200)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := rdb.Del(ctx, batch...).Result()
		removed += n
		batch = batch[:0]
		return err
	}
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := flush(); err != nil {
				return removed, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return removed, err
	}
	return removed, flush()
}

type cachedEntry struct {
	status      int
	contentType string
	body        []byte
}

func loadEntry(ctx context.Context, rdb *redis.Client, key string) (cachedEntry, bool) {
	fields, err := rdb.HGetAll(ctx, key).Result()
	if err != nil || len(fields) == 0 {
		return cachedEntry{}, false
	}
	status, err := strconv.Atoi(fields[fieldStatus])
	if err != nil || status <= 0 {
		return cachedEntry{}, false
	}
	body, ok := fields[fieldBody]
	if !ok {
		return cachedEntry{}, false
	}
	contentType := fields[fieldType]
	if contentType == "" {
		contentType = gin.MIMEJSON + "; charset=utf-8"
	}
	return cachedEntry{status: status, contentType: contentType, body: []byte(body)}, true
}

func storeEntry(ctx context.Context, rdb *redis.Client, key string, e cachedEntry, ttl time.Duration) error {
	_, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			fieldStatus, strconv.Itoa(e.status),
			fieldType, e.contentType,
			fieldBody, e.body,
		)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	return err
}

// storable accepts plain 200s that did not opt out through Cache-Control.
func storable(status int, cacheControl string) bool {
	if status != http.StatusOK {
		return false
	}
	cc := strings.ToLower(cacheControl)
	for _, directive := range []string{"no-store", "no-cache", "private"} {
		if strings.Contains(cc, directive) {
			return false
		}
	}
	return true
}

// bodyRecorder copies up to limit bytes of the response body while passing
// every write through.
type bodyRecorder struct {
	gin.ResponseWriter
	body      []byte
	limit     int
	truncated bool
}

func (r *bodyRecorder) Write(p []byte) (int, error) {
	r.record(p)
	return r.ResponseWriter.Write(p)
}

func (r *bodyRecorder) WriteString(s string) (int, error) {
	r.record([]byte(s))
	return r.ResponseWriter.WriteString(s)
}

func (r *bodyRecorder) record(p []byte) {
	if r.truncated || len(p) == 0 {
		return
	}
	room := r.limit - len(r.body)
	if len(p) > room {
		r.body = append(r.body, p[:max(room, 0)]...)
		r.truncated = true
		return
	}
	r.body = append(r.body, p...)
}
