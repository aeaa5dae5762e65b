package repository

import (
	"context"

	"gorm.io/gorm"

	"storerate/internal/model"
	"storerate/internal/query"
)

// StoreFilter holds the optional substring filters for store listings.
type StoreFilter struct {
	Name    string
	Email   string
	Address string
}

// StoreRepository defines store persistence operations.
type StoreRepository interface {
	CreateWithOwner(ctx context.Context, owner *model.User, store *model.Store) error
	FindByID(ctx context.Context, id uint) (*model.Store, error)
	FindByEmail(ctx context.Context, email string) (*model.Store, error)
	FindByOwnerID(ctx context.Context, ownerID uint) (*model.Store, error)
	ListAdmin(ctx context.Context, filter StoreFilter, params query.ListParams) ([]model.StoreWithRating, int64, error)
	ListForUser(ctx context.Context, userID uint, filter StoreFilter, params query.ListParams) ([]model.StoreWithRating, int64, error)
	FindDetail(ctx context.Context, id, userID uint) (*model.StoreWithRating, error)
	CountAll(ctx context.Context) (int64, error)
}

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a new store repository.
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

// CreateWithOwner inserts the owner user and the store in one
// transaction. Either both rows commit or neither does; GORM rolls back
// and releases the connection on any error or panic inside the closure.
func (r *storeRepository) CreateWithOwner(ctx context.Context, owner *model.User, store *model.Store) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(owner).Error; err != nil {
			return err
		}
		store.OwnerID = owner.ID
		return tx.Create(store).Error
	})
}

// FindByID finds a store by ID.
func (r *storeRepository) FindByID(ctx context.Context, id uint) (*model.Store, error) {
	var store model.Store
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// FindByEmail finds a store by email.
func (r *storeRepository) FindByEmail(ctx context.Context, email string) (*model.Store, error) {
	var store model.Store
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// FindByOwnerID finds the store owned by a user.
func (r *storeRepository) FindByOwnerID(ctx context.Context, ownerID uint) (*model.Store, error) {
	var store model.Store
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) filtered(ctx context.Context, filter StoreFilter) *gorm.DB {
	base := r.db.WithContext(ctx).Model(&model.Store{})
	base = query.Like(base, "stores.name", filter.Name)
	base = query.Like(base, "stores.email", filter.Email)
	base = query.Like(base, "stores.address", filter.Address)
	return base
}

// ListAdmin returns the management view: store fields plus rating
// aggregates. The ratings join and grouping happen before ORDER BY so a
// rating sort ranks the whole filtered set, not just one page.
func (r *storeRepository) ListAdmin(ctx context.Context, filter StoreFilter, params query.ListParams) ([]model.StoreWithRating, int64, error) {
	base := r.filtered(ctx, filter)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	stores := make([]model.StoreWithRating, 0, params.Limit)
	err := base.Session(&gorm.Session{}).
		Select(`stores.id, stores.name, stores.email, stores.address, stores.created_at,
			COALESCE(AVG(ratings.rating), 0) AS average_rating,
			COUNT(ratings.id) AS total_ratings`).
		Joins("LEFT JOIN ratings ON ratings.store_id = stores.id").
		Group("stores.id").
		Order(params.OrderClause()).
		Limit(params.Limit).
		Offset(params.Offset()).
		Scan(&stores).Error
	if err != nil {
		return nil, 0, err
	}
	return stores, total, nil
}

// ListForUser returns the browse view for an end user: aggregates plus
// the caller's own rating for each store (null when unrated).
func (r *storeRepository) ListForUser(ctx context.Context, userID uint, filter StoreFilter, params query.ListParams) ([]model.StoreWithRating, int64, error) {
	base := r.filtered(ctx, filter)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	stores := make([]model.StoreWithRating, 0, params.Limit)
	err := base.Session(&gorm.Session{}).
		Select(`stores.id, stores.name, stores.address, stores.created_at,
			COALESCE(AVG(ratings.rating), 0) AS average_rating,
			COUNT(ratings.id) AS total_ratings,
			own.rating AS user_rating`).
		Joins("LEFT JOIN ratings ON ratings.store_id = stores.id").
		Joins("LEFT JOIN ratings own ON own.store_id = stores.id AND own.user_id = ?", userID).
		Group("stores.id, own.rating").
		Order(params.OrderClause()).
		Limit(params.Limit).
		Offset(params.Offset()).
		Scan(&stores).Error
	if err != nil {
		return nil, 0, err
	}
	return stores, total, nil
}

// FindDetail returns one store with aggregates; userID 0 means anonymous
// and leaves the caller rating null.
func (r *storeRepository) FindDetail(ctx context.Context, id, userID uint) (*model.StoreWithRating, error) {
	var store model.StoreWithRating
	err := r.db.WithContext(ctx).
		Model(&model.Store{}).
		Select(`stores.id, stores.name, stores.email, stores.address, stores.created_at,
			COALESCE(AVG(ratings.rating), 0) AS average_rating,
			COUNT(ratings.id) AS total_ratings,
			own.rating AS user_rating`).
		Joins("LEFT JOIN ratings ON ratings.store_id = stores.id").
		Joins("LEFT JOIN ratings own ON own.store_id = stores.id AND own.user_id = ?", userID).
		Where("stores.id = ?", id).
		Group("stores.id, own.rating").
		Scan(&store).Error
	if err != nil {
		return nil, err
	}
	if store.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &store, nil
}

// CountAll counts every store.
func (r *storeRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Store{}).Count(&total).Error
	return total, err
}
