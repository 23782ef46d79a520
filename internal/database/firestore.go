package database

import (
	"context"
	"errors"
	"fmt"
	neturl "net/url"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/mx-space/showroom/internal/config"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// firestoreStore reads from Cloud Firestore. The store URL has the form
// firestore://<project-id>; the database name selects the Firestore database
// ("(default)" for the default one).
type firestoreStore struct {
	client  *firestore.Client
	name    string
	timeout time.Duration
}

func openFirestore(ctx context.Context, cfg config.StoreRuntimeConfig) (*firestoreStore, error) {
	u, err := neturl.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse firestore url: %w", err)
	}
	projectID := u.Host
	if projectID == "" {
		return nil, errors.New("firestore url is missing the project id")
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, cfg.Name, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore.NewClientWithDatabase: %w", err)
	}
	return &firestoreStore{client: client, name: cfg.Name, timeout: cfg.Timeout}, nil
}

func (s *firestoreStore) FetchAll(ctx context.Context, collection string) ([]Document, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	iter := s.client.Collection(collection).Documents(ctx)
	defer iter.Stop()

	docs := make([]Document, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: iterate %q: %w", ErrQueryFailure, collection, err)
		}
		docs = append(docs, snapshotDocument(snap.Ref.ID, snap.Data()))
	}
	return docs, nil
}

// snapshotDocument exposes the Firestore document id under IDField, where
// Mongo documents carry their ObjectID. The id wins over a stored "_id" field.
func snapshotDocument(id string, data map[string]interface{}) Document {
	doc := make(Document, len(data)+1)
	for k, v := range data {
		doc[k] = v
	}
	doc[IDField] = id
	return doc
}

func (s *firestoreStore) CollectionNames(ctx context.Context) ([]string, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	iter := s.client.Collections(ctx)
	names := make([]string, 0)
	for {
		ref, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: list collections: %w", ErrQueryFailure, err)
		}
		names = append(names, ref.ID)
	}
	return names, nil
}

// Ping has no dedicated RPC in Firestore; fetching the first collection ref
// is the cheapest authenticated round trip.
func (s *firestoreStore) Ping(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.client.Collections(ctx).Next(); err != nil && err != iterator.Done {
		return fmt.Errorf("%w: firestore ping: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *firestoreStore) Name() string    { return s.name }
func (s *firestoreStore) Available() bool { return true }

func (s *firestoreStore) Close(context.Context) error {
	return s.client.Close()
}
