package database

import (
	"context"
	"fmt"
	"time"

	"github.com/mx-space/showroom/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type mongoStore struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
}

func openMongo(ctx context.Context, cfg config.StoreRuntimeConfig) (*mongoStore, error) {
	opts := options.Client().
		ApplyURI(cfg.URL).
		SetConnectTimeout(cfg.Timeout).
		SetServerSelectionTimeout(cfg.Timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	return &mongoStore{
		client:  client,
		db:      client.Database(cfg.Name),
		timeout: cfg.Timeout,
	}, nil
}

func (s *mongoStore) FetchAll(ctx context.Context, collection string) ([]Document, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	cur, err := s.db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("%w: find %q: %w", ErrQueryFailure, collection, err)
	}
	defer cur.Close(ctx)

	var rows []bson.M
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("%w: decode %q: %w", ErrQueryFailure, collection, err)
	}

	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, Document(row))
	}
	return docs, nil
}

func (s *mongoStore) CollectionNames(ctx context.Context) ([]string, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("%w: list collections: %w", ErrQueryFailure, err)
	}
	return names, nil
}

func (s *mongoStore) Ping(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: mongo ping: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *mongoStore) Name() string    { return s.db.Name() }
func (s *mongoStore) Available() bool { return true }

func (s *mongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
