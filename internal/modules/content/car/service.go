package car

import (
	"context"
	"errors"

	"github.com/mx-space/showroom/internal/database"
	"github.com/mx-space/showroom/internal/models"
	"go.uber.org/zap"
)

// Service reads car listings from the document store.
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

// List returns the stored cars in store order. When the store cannot be
// read it returns the demo catalogue and fallback=true. A store that answers
// with no documents yields an empty list, not the demo catalogue.
func (s *Service) List(ctx context.Context) (cars []models.CarModel, fallback bool) {
	docs, err := s.store.FetchAll(ctx, s.collection)
	switch {
	case err == nil:
	case errors.Is(err, database.ErrStoreUnavailable):
		s.logger.Warn("car store unavailable, serving demo catalogue", zap.Error(err))
		return Fallback(), true
	case errors.Is(err, database.ErrQueryFailure):
		s.logger.Warn("car query failed, serving demo catalogue", zap.String("collection", s.collection), zap.Error(err))
		return Fallback(), true
	default:
		s.logger.Error("unexpected car store error, serving demo catalogue", zap.String("collection", s.collection), zap.Error(err))
		return Fallback(), true
	}

	cars = make([]models.CarModel, 0, len(docs))
	for _, doc := range docs {
		car, err := FromDocument(doc)
		if err != nil {
			s.logger.Warn("skipping malformed car document",
				zap.String("collection", s.collection),
				zap.String("id", doc.ID()),
				zap.Error(err),
			)
			continue
		}
		cars = append(cars, car)
	}
	return cars, false
}

// FromDocument maps a raw store document to a CarModel, applying defaults
// for absent fields.
func FromDocument(doc database.Document) (models.CarModel, error) {
	var (
		car models.CarModel
		err error
	)
	car.ID = doc.ID()
	if car.Make, err = doc.StringOr("make", ""); err != nil {
		return models.CarModel{}, err
	}
	if car.Model, err = doc.StringOr("model", ""); err != nil {
		return models.CarModel{}, err
	}
	if car.Year, err = doc.IntOr("year", models.DefaultCarYear); err != nil {
		return models.CarModel{}, err
	}
	if car.Price, err = doc.FloatOr("price", models.DefaultCarPrice); err != nil {
		return models.CarModel{}, err
	}
	if car.Image, err = doc.OptionalString("image"); err != nil {
		return models.CarModel{}, err
	}
	if car.Mileage, err = doc.OptionalInt("mileage"); err != nil {
		return models.CarModel{}, err
	}
	if car.Fuel, err = doc.OptionalString("fuel"); err != nil {
		return models.CarModel{}, err
	}
	if car.Transmission, err = doc.OptionalString("transmission"); err != nil {
		return models.CarModel{}, err
	}
	if car.IsFeatured, err = doc.BoolOr("is_featured", false); err != nil {
		return models.CarModel{}, err
	}
	return car, nil
}
