package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storerate/internal/model"
	"storerate/internal/query"
	"storerate/internal/repository"
)

// testListParams builds normalized list params for a page and limit.
func testListParams(page, limit int) query.ListParams {
	return query.Normalize(query.UserSort, "", "", page, limit)
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, filter repository.UserFilter, params query.ListParams) ([]model.User, int64, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) FindDetailByID(ctx context.Context, id uint) (*model.UserDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserDetail), args.Error(1)
}

func (m *MockUserRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockStoreRepository is a mock implementation of repository.StoreRepository.
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) CreateWithOwner(ctx context.Context, owner *model.User, store *model.Store) error {
	args := m.Called(ctx, owner, store)
	return args.Error(0)
}

func (m *MockStoreRepository) FindByID(ctx context.Context, id uint) (*model.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Store), args.Error(1)
}

func (m *MockStoreRepository) FindByEmail(ctx context.Context, email string) (*model.Store, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Store), args.Error(1)
}

func (m *MockStoreRepository) FindByOwnerID(ctx context.Context, ownerID uint) (*model.Store, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Store), args.Error(1)
}

func (m *MockStoreRepository) ListAdmin(ctx context.Context, filter repository.StoreFilter, params query.ListParams) ([]model.StoreWithRating, int64, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.StoreWithRating), args.Get(1).(int64), args.Error(2)
}

func (m *MockStoreRepository) ListForUser(ctx context.Context, userID uint, filter repository.StoreFilter, params query.ListParams) ([]model.StoreWithRating, int64, error) {
	args := m.Called(ctx, userID, filter, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.StoreWithRating), args.Get(1).(int64), args.Error(2)
}

func (m *MockStoreRepository) FindDetail(ctx context.Context, id, userID uint) (*model.StoreWithRating, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StoreWithRating), args.Error(1)
}

func (m *MockStoreRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockRatingRepository is a mock implementation of repository.RatingRepository.
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Upsert(ctx context.Context, rating *model.Rating) (*model.Rating, error) {
	args := m.Called(ctx, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Rating), args.Error(1)
}

func (m *MockRatingRepository) FindByUserAndStore(ctx context.Context, userID, storeID uint) (*model.Rating, error) {
	args := m.Called(ctx, userID, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Rating), args.Error(1)
}

func (m *MockRatingRepository) ListByStore(ctx context.Context, storeID uint, params query.ListParams) ([]model.RatingWithUser, int64, error) {
	args := m.Called(ctx, storeID, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.RatingWithUser), args.Get(1).(int64), args.Error(2)
}

func (m *MockRatingRepository) ListAllByStore(ctx context.Context, storeID uint) ([]model.RatingWithUser, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RatingWithUser), args.Error(1)
}

func (m *MockRatingRepository) AggregateForStore(ctx context.Context, storeID uint) (float64, int64, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

func (m *MockRatingRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
