package repository

import (
	"context"

	"gorm.io/gorm"

	"storerate/internal/model"
	"storerate/internal/query"
)

// UserFilter holds the optional filters for the admin user listing.
// String filters are substring matches; Role is an exact match.
type UserFilter struct {
	Name    string
	Email   string
	Address string
	Role    string
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	List(ctx context.Context, filter UserFilter, params query.ListParams) ([]model.User, int64, error)
	FindDetailByID(ctx context.Context, id uint) (*model.UserDetail, error)
	CountAll(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID finds a user by ID.
func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePassword replaces the stored password hash.
func (r *userRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

// List returns a filtered, sorted page of users with the total count of
// the filtered set.
func (r *userRepository) List(ctx context.Context, filter UserFilter, params query.ListParams) ([]model.User, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.User{})
	base = query.Like(base, "name", filter.Name)
	base = query.Like(base, "email", filter.Email)
	base = query.Like(base, "address", filter.Address)
	base = query.Equals(base, "role", filter.Role)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Pre-sized so an empty page serializes as [] rather than null.
	users := make([]model.User, 0, params.Limit)
	err := base.Session(&gorm.Session{}).
		Order(params.OrderClause()).
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// FindDetailByID returns a user joined with the owned store summary and
// its average rating.
func (r *userRepository) FindDetailByID(ctx context.Context, id uint) (*model.UserDetail, error) {
	var detail model.UserDetail
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Select(`users.id, users.name, users.email, users.address, users.role, users.created_at,
			stores.id AS store_id, stores.name AS store_name,
			COALESCE(AVG(ratings.rating), 0) AS average_rating`).
		Joins("LEFT JOIN stores ON stores.owner_id = users.id").
		Joins("LEFT JOIN ratings ON ratings.store_id = stores.id").
		Where("users.id = ?", id).
		Group("users.id, stores.id, stores.name").
		Scan(&detail).Error
	if err != nil {
		return nil, err
	}
	if detail.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	if detail.StoreID == nil {
		detail.AverageRating = nil
	}
	return &detail, nil
}

// CountAll counts every user.
func (r *userRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&total).Error
	return total, err
}
