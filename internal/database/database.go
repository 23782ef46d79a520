// Package database provides read access to the document store backing the
// content API. Two drivers are supported: MongoDB and Cloud Firestore.
package database

import (
	"context"
	"errors"
	"fmt"
	neturl "net/url"
	"strings"
	"time"

	"github.com/mx-space/showroom/internal/config"
	"go.uber.org/zap"
)

// IDField is the key holding a document's store-assigned identifier.
const IDField = "_id"

var (
	// ErrStoreUnavailable means the store is not configured or could not be reached.
	ErrStoreUnavailable = errors.New("document store unavailable")
	// ErrQueryFailure means the store answered but reading a collection failed.
	ErrQueryFailure = errors.New("document store query failed")
)

// Document is a raw key-value record as returned by the store driver.
type Document map[string]interface{}

// Store is a read-only document store handle shared by all requests.
type Store interface {
	// FetchAll returns every document of the named collection in the
	// store's native order.
	FetchAll(ctx context.Context, collection string) ([]Document, error)
	// CollectionNames lists the collections visible in the database.
	CollectionNames(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
	// Name returns the configured database name.
	Name() string
	// Available is false when Open could not build a driver.
	Available() bool
	Close(ctx context.Context) error
}

// Open builds the store described by cfg. It never fails: when the
// configuration is missing or the driver cannot be constructed, the returned
// Store reports ErrStoreUnavailable on every call.
func Open(ctx context.Context, cfg config.StoreRuntimeConfig, logger *zap.Logger) Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.HasStoreURL() {
		logger.Warn("document store disabled, serving fallback content", zap.String("missing", config.EnvDatabaseURL))
		return NewUnavailable(config.EnvDatabaseURL + " is not set")
	}
	if !cfg.HasStoreName() {
		logger.Warn("document store disabled, serving fallback content", zap.String("missing", config.EnvDatabaseName))
		return NewUnavailable(config.EnvDatabaseName + " is not set")
	}

	var (
		store Store
		err   error
	)
	driver := driverFromURL(cfg.URL)
	switch driver {
	case driverMongo:
		store, err = openMongo(ctx, cfg)
	case driverFirestore:
		store, err = openFirestore(ctx, cfg)
	default:
		err = fmt.Errorf("unsupported store url scheme %q", driver)
	}
	if err != nil {
		logger.Warn("document store init failed", zap.Error(err))
		return NewUnavailable(err.Error())
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		// keep the handle; the driver reconnects on its own once the store is back
		logger.Warn("document store ping failed", zap.String("driver", driver), zap.Error(err))
	} else {
		logger.Info("connected to document store", zap.String("driver", driver), zap.String("database", cfg.Name))
	}
	return store
}

const (
	driverMongo     = "mongodb"
	driverFirestore = "firestore"
)

func driverFromURL(raw string) string {
	u, err := neturl.Parse(raw)
	if err != nil || u.Scheme == "" {
		return ""
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme == "mongodb+srv" {
		return driverMongo
	}
	return scheme
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

type unavailableStore struct {
	reason string
}

// NewUnavailable returns a Store whose every call fails with ErrStoreUnavailable.
func NewUnavailable(reason string) Store {
	return unavailableStore{reason: reason}
}

func (u unavailableStore) err() error {
	return fmt.Errorf("%w: %s", ErrStoreUnavailable, u.reason)
}

func (u unavailableStore) FetchAll(context.Context, string) ([]Document, error) {
	return nil, u.err()
}

func (u unavailableStore) CollectionNames(context.Context) ([]string, error) {
	return nil, u.err()
}

func (u unavailableStore) Ping(context.Context) error { return u.err() }
func (u unavailableStore) Name() string               { return "" }
func (u unavailableStore) Available() bool            { return false }
func (u unavailableStore) Close(context.Context) error {
	return nil
}
