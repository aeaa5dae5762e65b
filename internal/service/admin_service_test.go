package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "storerate/internal/errors"
	"storerate/internal/model"
	"storerate/internal/repository"
)

func TestAdminService_CreateUser(t *testing.T) {
	tests := []struct {
		name          string
		role          string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "create admin",
			role: model.RoleAdmin,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name: "create normal user",
			role: model.RoleUser,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:          "store_owner role rejected",
			role:          model.RoleStoreOwner,
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrInvalidRole,
		},
		{
			name: "duplicate email",
			role: model.RoleUser,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "new@example.com").Return(&model.User{Email: "new@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name: "duplicate email raced past the pre-check",
			role: model.RoleUser,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAdminService(mockRepo, new(MockStoreRepository), new(MockRatingRepository), nil)
			user, err := service.CreateUser(context.Background(),
				"A Name That Clears The Minimum", "new@example.com", "Password@1", "", tt.role)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.role, user.Role)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAdminService_DashboardStats(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("CountAll", mock.Anything).Return(int64(12), nil)
	mockStores := new(MockStoreRepository)
	mockStores.On("CountAll", mock.Anything).Return(int64(4), nil)
	mockRatings := new(MockRatingRepository)
	mockRatings.On("CountAll", mock.Anything).Return(int64(31), nil)

	service := NewAdminService(mockUsers, mockStores, mockRatings, nil)
	stats, err := service.DashboardStats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(12), stats.TotalUsers)
	assert.Equal(t, int64(4), stats.TotalStores)
	assert.Equal(t, int64(31), stats.TotalRatings)
}

func TestAdminService_ListUsers(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("List", mock.Anything, mock.Anything, mock.Anything).
		Return([]model.User{{ID: 1}, {ID: 2}}, int64(2), nil)

	service := NewAdminService(mockRepo, new(MockStoreRepository), new(MockRatingRepository), nil)
	users, pagination, err := service.ListUsers(context.Background(), repository.UserFilter{}, testListParams(1, 10))

	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, 1, pagination.TotalPages)
}

func TestAdminService_ListUsersEmptyPage(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("List", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, int64(25), nil)

	service := NewAdminService(mockRepo, new(MockStoreRepository), new(MockRatingRepository), nil)
	users, pagination, err := service.ListUsers(context.Background(), repository.UserFilter{}, testListParams(4, 10))

	assert.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
	assert.Equal(t, 3, pagination.TotalPages)

	// A page past the end must serialize as an empty list, never null.
	body, err := json.Marshal(users)
	assert.NoError(t, err)
	assert.Equal(t, "[]", string(body))
}

func TestAdminService_GetUserDetail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindDetailByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewAdminService(mockRepo, new(MockStoreRepository), new(MockRatingRepository), nil)
	detail, err := service.GetUserDetail(context.Background(), 404)

	assert.Equal(t, apperrors.ErrUserNotFound, err)
	assert.Nil(t, detail)
}
