package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storerate/internal/cache"
	apperrors "storerate/internal/errors"
	"storerate/internal/model"
	"storerate/internal/query"
	"storerate/internal/repository"
)

// OwnerDashboard is what a store owner sees: their store's aggregate
// rating and every individual rating with rater details.
type OwnerDashboard struct {
	StoreID       uint                   `json:"storeId"`
	StoreName     string                 `json:"storeName"`
	AverageRating float64                `json:"averageRating"`
	TotalRatings  int64                  `json:"totalRatings"`
	Ratings       []model.RatingWithUser `json:"ratings"`
}

// StoreService exposes store creation, listing and the owner dashboard.
type StoreService interface {
	CreateStore(ctx context.Context, name, email, address, ownerName, ownerPassword string) (*model.Store, error)
	ListAdmin(ctx context.Context, filter repository.StoreFilter, params query.ListParams) ([]model.StoreWithRating, query.Pagination, error)
	ListForUser(ctx context.Context, userID uint, filter repository.StoreFilter, params query.ListParams) ([]model.StoreWithRating, query.Pagination, error)
	GetDetail(ctx context.Context, id, userID uint) (*model.StoreWithRating, error)
	OwnerDashboard(ctx context.Context, ownerID uint) (*OwnerDashboard, error)
}

type storeService struct {
	userRepo   repository.UserRepository
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
	cache      *cache.Client
}

// NewStoreService creates a new store service.
func NewStoreService(userRepo repository.UserRepository, storeRepo repository.StoreRepository, ratingRepo repository.RatingRepository, cache *cache.Client) StoreService {
	return &storeService{
		userRepo:   userRepo,
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
		cache:      cache,
	}
}

// CreateStore creates the owner user (role store_owner) and the store in
// a single transaction; a failure of either insert leaves no orphan row.
// The shared email must be free of both user and store accounts.
func (s *storeService) CreateStore(ctx context.Context, name, email, address, ownerName, ownerPassword string) (*model.Store, error) {
	if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user email: %w", err)
	}
	if existing, err := s.storeRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check store email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(ownerPassword), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash owner password: %w", err)
	}

	owner := &model.User{
		Name:         ownerName,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Address:      address,
		Role:         model.RoleStoreOwner,
	}
	store := &model.Store{
		Name:    name,
		Email:   email,
		Address: address,
	}
	if err := s.storeRepo.CreateWithOwner(ctx, owner, store); err != nil {
		// A concurrent creation can win the race against the pre-checks;
		// the transaction has already rolled both rows back.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create store with owner: %w", err)
	}

	_ = s.cache.Delete(ctx, statsCacheKey)
	return store, nil
}

// ListAdmin returns the management store listing with aggregates.
func (s *storeService) ListAdmin(ctx context.Context, filter repository.StoreFilter, params query.ListParams) ([]model.StoreWithRating, query.Pagination, error) {
	stores, total, err := s.storeRepo.ListAdmin(ctx, filter, params)
	if err != nil {
		return nil, query.Pagination{}, fmt.Errorf("list stores: %w", err)
	}
	if stores == nil {
		stores = []model.StoreWithRating{}
	}
	return stores, params.Paginate(total), nil
}

// ListForUser returns the browse listing carrying the caller's own rating.
func (s *storeService) ListForUser(ctx context.Context, userID uint, filter repository.StoreFilter, params query.ListParams) ([]model.StoreWithRating, query.Pagination, error) {
	stores, total, err := s.storeRepo.ListForUser(ctx, userID, filter, params)
	if err != nil {
		return nil, query.Pagination{}, fmt.Errorf("list stores: %w", err)
	}
	if stores == nil {
		stores = []model.StoreWithRating{}
	}
	return stores, params.Paginate(total), nil
}

// GetDetail returns one store with aggregates and, for authenticated
// callers, their own rating.
func (s *storeService) GetDetail(ctx context.Context, id, userID uint) (*model.StoreWithRating, error) {
	store, err := s.storeRepo.FindDetail(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStoreNotFound
		}
		return nil, err
	}
	return store, nil
}

// OwnerDashboard resolves the caller's store and returns its aggregate
// rating and full ratings list.
func (s *storeService) OwnerDashboard(ctx context.Context, ownerID uint) (*OwnerDashboard, error) {
	store, err := s.storeRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoOwnedStore
		}
		return nil, fmt.Errorf("find owned store: %w", err)
	}

	avg, total, err := s.ratingRepo.AggregateForStore(ctx, store.ID)
	if err != nil {
		return nil, fmt.Errorf("aggregate ratings: %w", err)
	}

	ratings, err := s.ratingRepo.ListAllByStore(ctx, store.ID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	if ratings == nil {
		ratings = []model.RatingWithUser{}
	}

	return &OwnerDashboard{
		StoreID:       store.ID,
		StoreName:     store.Name,
		AverageRating: math.Round(avg*100) / 100,
		TotalRatings:  total,
		Ratings:       ratings,
	}, nil
}
