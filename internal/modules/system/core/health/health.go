package health

import (
	"context"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/showroom/internal/database"
	"github.com/mx-space/showroom/internal/pkg/response"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	backendRunning     = "✅ Running"
	dbNotAvailable     = "❌ Not Available"
	dbAvailable        = "✅ Available"
	dbWorking          = "✅ Connected & Working"
	dbErrorPrefix      = "⚠️  Connected but Error: "
	dbNotInitialized   = "⚠️  Available but not initialized"
	statusConnected    = "Connected"
	statusNotConnected = "Not Connected"
	envSet             = "✅ Set"
	envNotSet          = "❌ Not Set"
	cacheDisabled      = "⚪ Disabled"
	cacheConnected     = "✅ Connected"
	cacheErrorPrefix   = "⚠️  Error: "
	maxCollections     = 10
	maxErrorRunes      = 50
)

// Pinger is the slice of the cache client the diagnostics probe needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Status is the body of GET /test.
type Status struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
	Cache            string   `json:"cache"`
}

type Options struct {
	Store   database.Store
	Cache   Pinger // nil when the response cache is off
	HasURL  bool
	HasName bool
}

type Handler struct {
	opts   Options
	logger *zap.Logger
}

func NewHandler(opts Options, logger *zap.Logger) *Handler {
	return &Handler{opts: opts, logger: logger}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/test", h.test)
}

// test GET /test
func (h *Handler) test(c *gin.Context) {
	response.OK(c, h.Check(c.Request.Context()))
}

// Check probes the store and the cache concurrently and never fails; every
// problem ends up as text in the returned Status.
func (h *Handler) Check(ctx context.Context) Status {
	st := Status{
		Backend:          backendRunning,
		Database:         dbNotAvailable,
		ConnectionStatus: statusNotConnected,
		Collections:      []string{},
		Cache:            cacheDisabled,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		h.probeStore(gctx, &st)
		return nil
	})
	if h.opts.Cache != nil {
		g.Go(func() error {
			if err := h.opts.Cache.Ping(gctx); err != nil {
				h.logger.Warn("cache probe failed", zap.Error(err))
				st.Cache = cacheErrorPrefix + truncate(err.Error(), maxErrorRunes)
				return nil
			}
			st.Cache = cacheConnected
			return nil
		})
	}
	_ = g.Wait()

	st.DatabaseURL = setIndicator(h.opts.HasURL)
	st.DatabaseName = setIndicator(h.opts.HasName)
	return st
}

// probeStore only touches the database related fields of st.
func (h *Handler) probeStore(ctx context.Context, st *Status) {
	store := h.opts.Store
	if store == nil || !store.Available() {
		st.Database = dbNotInitialized
		return
	}
	st.Database = dbAvailable
	st.ConnectionStatus = statusConnected

	names, err := store.CollectionNames(ctx)
	if err != nil {
		h.logger.Warn("store probe failed", zap.String("db", store.Name()), zap.Error(err))
		st.Database = dbErrorPrefix + truncate(err.Error(), maxErrorRunes)
		return
	}
	if len(names) > maxCollections {
		names = names[:maxCollections]
	}
	st.Collections = append(st.Collections, names...)
	st.Database = dbWorking
}

func setIndicator(ok bool) string {
	if ok {
		return envSet
	}
	return envNotSet
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
