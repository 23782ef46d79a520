package blog

import (
	"context"
	"errors"

	"github.com/mx-space/showroom/internal/database"
	"github.com/mx-space/showroom/internal/models"
	"go.uber.org/zap"
)

// Service reads blog posts from the document store.
type Service struct {
	store      database.Store
	collection string
	logger     *zap.Logger
}

func NewService(store database.Store, collection string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, collection: collection, logger: logger}
}

// List returns the stored posts in store order, or the demo posts with
// fallback=true when the store cannot be read.
func (s *Service) List(ctx context.Context) (posts []models.BlogPostModel, fallback bool) {
	docs, err := s.store.FetchAll(ctx, s.collection)
	switch {
	case err == nil:
	case errors.Is(err, database.ErrStoreUnavailable):
		s.logger.Warn("blog store unavailable, serving demo posts", zap.Error(err))
		return Fallback(), true
	case errors.Is(err, database.ErrQueryFailure):
		s.logger.Warn("blog query failed, serving demo posts", zap.String("collection", s.collection), zap.Error(err))
		return Fallback(), true
	default:
		s.logger.Error("unexpected blog store error, serving demo posts", zap.String("collection", s.collection), zap.Error(err))
		return Fallback(), true
	}

	posts = make([]models.BlogPostModel, 0, len(docs))
	for _, doc := range docs {
		post, err := FromDocument(doc)
		if err != nil {
			s.logger.Warn("skipping malformed blog document",
				zap.String("collection", s.collection),
				zap.String("id", doc.ID()),
				zap.Error(err),
			)
			continue
		}
		posts = append(posts, post)
	}
	return posts, false
}

// FromDocument maps a raw store document to a BlogPostModel.
func FromDocument(doc database.Document) (models.BlogPostModel, error) {
	var (
		post models.BlogPostModel
		err  error
	)
	post.ID = doc.ID()
	if post.Title, err = doc.StringOr("title", ""); err != nil {
		return models.BlogPostModel{}, err
	}
	if post.Excerpt, err = doc.OptionalString("excerpt"); err != nil {
		return models.BlogPostModel{}, err
	}
	if post.Content, err = doc.StringOr("content", ""); err != nil {
		return models.BlogPostModel{}, err
	}
	if post.Author, err = doc.StringOr("author", models.DefaultBlogAuthor); err != nil {
		return models.BlogPostModel{}, err
	}
	if post.CoverImage, err = doc.OptionalString("cover_image"); err != nil {
		return models.BlogPostModel{}, err
	}
	if post.Tags, err = doc.Strings("tags"); err != nil {
		return models.BlogPostModel{}, err
	}
	return post, nil
}
