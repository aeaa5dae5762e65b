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
)

func TestRatingService_Submit(t *testing.T) {
	tests := []struct {
		name          string
		storeID       uint
		rating        int
		setupMock     func(*MockStoreRepository, *MockRatingRepository)
		expectedError error
	}{
		{
			name:    "successful submission",
			storeID: 1,
			rating:  5,
			setupMock: func(mStores *MockStoreRepository, mRatings *MockRatingRepository) {
				mStores.On("FindByID", mock.Anything, uint(1)).Return(&model.Store{ID: 1}, nil)
				mRatings.On("Upsert", mock.Anything, mock.AnythingOfType("*model.Rating")).
					Return(&model.Rating{ID: 10, UserID: 2, StoreID: 1, Rating: 5}, nil)
			},
		},
		{
			name:    "store does not exist",
			storeID: 99,
			rating:  4,
			setupMock: func(mStores *MockStoreRepository, mRatings *MockRatingRepository) {
				mStores.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrStoreNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStores := new(MockStoreRepository)
			mockRatings := new(MockRatingRepository)
			tt.setupMock(mockStores, mockRatings)

			service := NewRatingService(mockRatings, mockStores, nil)
			rating, err := service.Submit(context.Background(), 2, tt.storeID, tt.rating)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, rating)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, rating)
				assert.Equal(t, tt.rating, rating.Rating)
			}

			mockStores.AssertExpectations(t)
			mockRatings.AssertExpectations(t)
		})
	}
}

// Resubmitting overwrites in place: the repository returns the same row
// id with the new value, and the service passes it through untouched.
func TestRatingService_SubmitOverwrites(t *testing.T) {
	mockStores := new(MockStoreRepository)
	mockStores.On("FindByID", mock.Anything, uint(1)).Return(&model.Store{ID: 1}, nil)

	mockRatings := new(MockRatingRepository)
	mockRatings.On("Upsert", mock.Anything, mock.MatchedBy(func(r *model.Rating) bool {
		return r.UserID == 2 && r.StoreID == 1 && r.Rating == 5
	})).Return(&model.Rating{ID: 10, UserID: 2, StoreID: 1, Rating: 5}, nil).Once()
	mockRatings.On("Upsert", mock.Anything, mock.MatchedBy(func(r *model.Rating) bool {
		return r.UserID == 2 && r.StoreID == 1 && r.Rating == 3
	})).Return(&model.Rating{ID: 10, UserID: 2, StoreID: 1, Rating: 3}, nil).Once()

	service := NewRatingService(mockRatings, mockStores, nil)

	first, err := service.Submit(context.Background(), 2, 1, 5)
	assert.NoError(t, err)
	second, err := service.Submit(context.Background(), 2, 1, 3)
	assert.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, second.Rating)
	mockRatings.AssertExpectations(t)
}

func TestRatingService_MyRating(t *testing.T) {
	mockRatings := new(MockRatingRepository)
	mockRatings.On("FindByUserAndStore", mock.Anything, uint(2), uint(1)).Return(nil, gorm.ErrRecordNotFound)

	service := NewRatingService(mockRatings, new(MockStoreRepository), nil)
	rating, err := service.MyRating(context.Background(), 2, 1)

	assert.Equal(t, apperrors.ErrRatingNotFound, err)
	assert.Nil(t, rating)
	mockRatings.AssertExpectations(t)
}

func TestRatingService_ListForStore(t *testing.T) {
	mockStores := new(MockStoreRepository)
	mockStores.On("FindByID", mock.Anything, uint(1)).Return(&model.Store{ID: 1}, nil)

	mockRatings := new(MockRatingRepository)
	mockRatings.On("ListByStore", mock.Anything, uint(1), mock.Anything).
		Return([]model.RatingWithUser{{ID: 1, Rating: 5}, {ID: 2, Rating: 3}}, int64(25), nil)

	service := NewRatingService(mockRatings, mockStores, nil)
	ratings, pagination, err := service.ListForStore(context.Background(), 1, testListParams(2, 10))

	assert.NoError(t, err)
	assert.Len(t, ratings, 2)
	assert.Equal(t, 2, pagination.CurrentPage)
	assert.Equal(t, 3, pagination.TotalPages)
	assert.Equal(t, int64(25), pagination.Total)
}

func TestRatingService_ListForStoreEmptyPage(t *testing.T) {
	mockStores := new(MockStoreRepository)
	mockStores.On("FindByID", mock.Anything, uint(1)).Return(&model.Store{ID: 1}, nil)

	mockRatings := new(MockRatingRepository)
	mockRatings.On("ListByStore", mock.Anything, uint(1), mock.Anything).
		Return(nil, int64(25), nil)

	service := NewRatingService(mockRatings, mockStores, nil)
	ratings, pagination, err := service.ListForStore(context.Background(), 1, testListParams(4, 10))

	assert.NoError(t, err)
	assert.NotNil(t, ratings)
	assert.Empty(t, ratings)
	assert.Equal(t, 3, pagination.TotalPages)

	// A page past the end must serialize as an empty list, never null.
	body, err := json.Marshal(ratings)
	assert.NoError(t, err)
	assert.Equal(t, "[]", string(body))
}
