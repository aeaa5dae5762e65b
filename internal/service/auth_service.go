package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storerate/internal/auth"
	apperrors "storerate/internal/errors"
	"storerate/internal/model"
	"storerate/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration, login and password management.
type AuthService interface {
	Register(ctx context.Context, name, email, password, address string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (user *model.User, storeID *uint, token string, err error)
	ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
	Profile(ctx context.Context, userID uint) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	storeRepo  repository.StoreRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, storeRepo repository.StoreRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		storeRepo:  storeRepo,
		jwtService: jwtService,
	}
}

// Register creates a user with a hashed password and issues a token. The
// role is always "user" regardless of anything the caller supplied.
func (s *authService) Register(ctx context.Context, name, email, password, address string) (*model.User, string, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Address:      address,
		Role:         model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent registration can win the race against the pre-check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperrors.ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password produce the identical error so accounts cannot be enumerated.
// Store owners also get their store id resolved.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, *uint, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, nil, "", fmt.Errorf("generate token: %w", err)
	}

	var storeID *uint
	if user.Role == model.RoleStoreOwner {
		if store, err := s.storeRepo.FindByOwnerID(ctx, user.ID); err == nil {
			storeID = &store.ID
		}
	}

	return user, storeID, token, nil
}

// ChangePassword verifies the current password and stores a new hash.
// Outstanding tokens stay valid until their original expiry.
func (s *authService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return apperrors.ErrWrongPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, userID, string(hashedPassword))
}

// Profile returns the caller's own user record.
func (s *authService) Profile(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
