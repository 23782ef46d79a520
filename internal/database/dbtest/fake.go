// Package dbtest provides an in-memory database.Store for handler tests.
package dbtest

import (
	"context"
	"sync"

	"github.com/mx-space/showroom/internal/database"
)

// Fake serves fixed collections. Err, when set, is returned by every call
// instead of data.
type Fake struct {
	mu          sync.Mutex
	Collections map[string][]database.Document
	Err         error
	ListErr     error
	DBName      string
	Calls       []string
}

var _ database.Store = (*Fake)(nil)

func (f *Fake) FetchAll(_ context.Context, collection string) ([]database.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, collection)
	if f.Err != nil {
		return nil, f.Err
	}
	docs := f.Collections[collection]
	out := make([]database.Document, len(docs))
	copy(out, docs)
	return out, nil
}

func (f *Fake) CollectionNames(context.Context) ([]string, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	names := make([]string, 0, len(f.Collections))
	for name := range f.Collections {
		names = append(names, name)
	}
	return names, nil
}

func (f *Fake) Ping(context.Context) error { return f.Err }
func (f *Fake) Name() string              { return f.DBName }
func (f *Fake) Available() bool           { return true }
func (f *Fake) Close(context.Context) error {
	return nil
}
