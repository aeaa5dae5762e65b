package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storerate/internal/model"
	"storerate/internal/query"
)

// RatingRepository defines rating persistence operations.
type RatingRepository interface {
	Upsert(ctx context.Context, rating *model.Rating) (*model.Rating, error)
	FindByUserAndStore(ctx context.Context, userID, storeID uint) (*model.Rating, error)
	ListByStore(ctx context.Context, storeID uint, params query.ListParams) ([]model.RatingWithUser, int64, error)
	ListAllByStore(ctx context.Context, storeID uint) ([]model.RatingWithUser, error)
	AggregateForStore(ctx context.Context, storeID uint) (avg float64, total int64, err error)
	CountAll(ctx context.Context) (int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new rating repository.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert inserts the rating or, when the (user_id, store_id) pair already
// exists, overwrites the value and updated_at in place. The conflict
// resolution happens in the storage engine, so concurrent submissions by
// the same user can never produce duplicate rows.
func (r *ratingRepository) Upsert(ctx context.Context, rating *model.Rating) (*model.Rating, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "store_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"rating":     rating.Rating,
			"updated_at": time.Now(),
		}),
	}).Create(rating).Error
	if err != nil {
		return nil, err
	}
	// Re-read so the caller sees the canonical row id and timestamps on update.
	return r.FindByUserAndStore(ctx, rating.UserID, rating.StoreID)
}

// FindByUserAndStore returns a user's rating for a store.
func (r *ratingRepository) FindByUserAndStore(ctx context.Context, userID, storeID uint) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// ListByStore returns a page of a store's ratings with rater details,
// ordered per the caller's normalized sort, plus the total count.
func (r *ratingRepository) ListByStore(ctx context.Context, storeID uint, params query.ListParams) ([]model.RatingWithUser, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Rating{}).Where("ratings.store_id = ?", storeID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	ratings := make([]model.RatingWithUser, 0, params.Limit)
	err := base.Session(&gorm.Session{}).
		Select(`ratings.id, ratings.rating, ratings.created_at, ratings.updated_at,
			users.id AS user_id, users.name AS user_name, users.email AS user_email`).
		Joins("JOIN users ON users.id = ratings.user_id").
		Order(params.OrderClause()).
		Limit(params.Limit).
		Offset(params.Offset()).
		Scan(&ratings).Error
	if err != nil {
		return nil, 0, err
	}
	return ratings, total, nil
}

// ListAllByStore returns every rating for a store with rater details,
// newest first. Used by the owner dashboard.
func (r *ratingRepository) ListAllByStore(ctx context.Context, storeID uint) ([]model.RatingWithUser, error) {
	ratings := make([]model.RatingWithUser, 0)
	err := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Select(`ratings.id, ratings.rating, ratings.created_at, ratings.updated_at,
			users.id AS user_id, users.name AS user_name, users.email AS user_email`).
		Joins("JOIN users ON users.id = ratings.user_id").
		Where("ratings.store_id = ?", storeID).
		Order("ratings.created_at DESC").
		Scan(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// AggregateForStore computes the average and count of a store's ratings.
func (r *ratingRepository) AggregateForStore(ctx context.Context, storeID uint) (float64, int64, error) {
	var result struct {
		AverageRating float64
		TotalRatings  int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Select("COALESCE(AVG(rating), 0) AS average_rating, COUNT(*) AS total_ratings").
		Where("store_id = ?", storeID).
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}
	return result.AverageRating, result.TotalRatings, nil
}

// CountAll counts every rating.
func (r *ratingRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Rating{}).Count(&total).Error
	return total, err
}
