package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storerate/internal/cache"
	apperrors "storerate/internal/errors"
	"storerate/internal/model"
	"storerate/internal/query"
	"storerate/internal/repository"
	"storerate/internal/validation"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 1 * time.Minute
)

// DashboardStats are the aggregate counts on the admin dashboard.
type DashboardStats struct {
	TotalUsers   int64 `json:"total_users"`
	TotalStores  int64 `json:"total_stores"`
	TotalRatings int64 `json:"total_ratings"`
}

// AdminService exposes the admin-only operations.
type AdminService interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	CreateUser(ctx context.Context, name, email, password, address, role string) (*model.User, error)
	ListUsers(ctx context.Context, filter repository.UserFilter, params query.ListParams) ([]model.User, query.Pagination, error)
	GetUserDetail(ctx context.Context, id uint) (*model.UserDetail, error)
}

type adminService struct {
	userRepo   repository.UserRepository
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
	cache      *cache.Client
}

// NewAdminService creates a new admin service.
func NewAdminService(userRepo repository.UserRepository, storeRepo repository.StoreRepository, ratingRepo repository.RatingRepository, cache *cache.Client) AdminService {
	return &adminService{
		userRepo:   userRepo,
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
		cache:      cache,
	}
}

// DashboardStats returns total users, stores and ratings. Counts are
// cached briefly; writes that change them delete the cache key.
func (s *adminService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if found, _ := s.cache.GetJSON(ctx, statsCacheKey, &stats); found {
		return &stats, nil
	}

	var err error
	if stats.TotalUsers, err = s.userRepo.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if stats.TotalStores, err = s.storeRepo.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("count stores: %w", err)
	}
	if stats.TotalRatings, err = s.ratingRepo.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("count ratings: %w", err)
	}

	_ = s.cache.SetJSON(ctx, statsCacheKey, &stats, statsCacheTTL)
	return &stats, nil
}

// CreateUser creates an admin or normal user. The store_owner role is
// reserved for the store-creation flow.
func (s *adminService) CreateUser(ctx context.Context, name, email, password, address, role string) (*model.User, error) {
	if msg := validation.AdminRole(role); msg != "" {
		return nil, apperrors.ErrInvalidRole
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Address:      address,
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent submit can win the race against the pre-check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	_ = s.cache.Delete(ctx, statsCacheKey)
	return user, nil
}

// ListUsers returns a filtered, sorted, paginated user listing.
func (s *adminService) ListUsers(ctx context.Context, filter repository.UserFilter, params query.ListParams) ([]model.User, query.Pagination, error) {
	users, total, err := s.userRepo.List(ctx, filter, params)
	if err != nil {
		return nil, query.Pagination{}, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, params.Paginate(total), nil
}

// GetUserDetail returns a user with the owned-store summary.
func (s *adminService) GetUserDetail(ctx context.Context, id uint) (*model.UserDetail, error) {
	detail, err := s.userRepo.FindDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return detail, nil
}
