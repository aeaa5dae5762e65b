package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storerate/internal/cache"
	apperrors "storerate/internal/errors"
	"storerate/internal/model"
	"storerate/internal/query"
	"storerate/internal/repository"
)

// RatingService exposes rating submission and retrieval.
type RatingService interface {
	Submit(ctx context.Context, userID, storeID uint, rating int) (*model.Rating, error)
	MyRating(ctx context.Context, userID, storeID uint) (*model.Rating, error)
	ListForStore(ctx context.Context, storeID uint, params query.ListParams) ([]model.RatingWithUser, query.Pagination, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	storeRepo  repository.StoreRepository
	cache      *cache.Client
}

// NewRatingService creates a new rating service.
func NewRatingService(ratingRepo repository.RatingRepository, storeRepo repository.StoreRepository, cache *cache.Client) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		storeRepo:  storeRepo,
		cache:      cache,
	}
}

// Submit records the caller's rating for a store, overwriting any
// previous value for the same (user, store) pair.
func (s *ratingService) Submit(ctx context.Context, userID, storeID uint, rating int) (*model.Rating, error) {
	if _, err := s.storeRepo.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStoreNotFound
		}
		return nil, fmt.Errorf("find store: %w", err)
	}

	saved, err := s.ratingRepo.Upsert(ctx, &model.Rating{
		UserID:  userID,
		StoreID: storeID,
		Rating:  rating,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert rating: %w", err)
	}

	_ = s.cache.Delete(ctx, statsCacheKey)
	return saved, nil
}

// MyRating returns the caller's rating for a store.
func (s *ratingService) MyRating(ctx context.Context, userID, storeID uint) (*model.Rating, error) {
	rating, err := s.ratingRepo.FindByUserAndStore(ctx, userID, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRatingNotFound
		}
		return nil, err
	}
	return rating, nil
}

// ListForStore returns a page of a store's ratings with rater details.
func (s *ratingService) ListForStore(ctx context.Context, storeID uint, params query.ListParams) ([]model.RatingWithUser, query.Pagination, error) {
	if _, err := s.storeRepo.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, query.Pagination{}, apperrors.ErrStoreNotFound
		}
		return nil, query.Pagination{}, fmt.Errorf("find store: %w", err)
	}

	ratings, total, err := s.ratingRepo.ListByStore(ctx, storeID, params)
	if err != nil {
		return nil, query.Pagination{}, fmt.Errorf("list ratings: %w", err)
	}
	if ratings == nil {
		ratings = []model.RatingWithUser{}
	}
	return ratings, params.Paginate(total), nil
}
