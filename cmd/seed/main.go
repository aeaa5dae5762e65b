package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storerate/internal/config"
	"storerate/internal/db"
	"storerate/internal/model"
	"storerate/internal/repository"
)

// seedPassword is shared by all demo accounts.
const seedPassword = "Welcome@123"

type seedStore struct {
	Name      string
	Email     string
	Address   string
	OwnerName string
}

type seedUser struct {
	Name    string
	Email   string
	Address string
}

var demoStores = []seedStore{
	{
		Name:      "Riverside Books and Stationery",
		Email:     "riverside@stores.example.com",
		Address:   "12 Riverside Avenue",
		OwnerName: "Riverside Books Proprietor Lee",
	},
	{
		Name:      "Corner Grocery of Maple Street",
		Email:     "maplegrocery@stores.example.com",
		Address:   "48 Maple Street",
		OwnerName: "Maple Street Grocery Owner Kim",
	},
	{
		Name:      "Downtown Hardware and Supplies",
		Email:     "downtownhw@stores.example.com",
		Address:   "301 Main Street",
		OwnerName: "Downtown Hardware Owner Patel",
	},
}

var demoUsers = []seedUser{
	{Name: "Demo Shopper Alexandra Martin", Email: "alex@users.example.com", Address: "7 Elm Court"},
	{Name: "Demo Shopper Benjamin Okafor", Email: "ben@users.example.com", Address: "22 Oak Lane"},
}

// ratings[userIdx][storeIdx]; 0 means no rating.
var demoRatings = [][]int{
	{5, 3, 0},
	{4, 0, 2},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, db.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Store{}, &model.Rating{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	storeRepo := repository.NewStoreRepository(gormDB)
	ratingRepo := repository.NewRatingRepository(gormDB)
	ctx := context.Background()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	stores := make([]*model.Store, 0, len(demoStores))
	for _, s := range demoStores {
		store, err := ensureStore(ctx, storeRepo, s, string(hashedPassword))
		if err != nil {
			log.Fatalf("Failed to seed store %s: %v", s.Email, err)
		}
		stores = append(stores, store)
	}

	users := make([]*model.User, 0, len(demoUsers))
	for _, u := range demoUsers {
		user, err := ensureUser(ctx, userRepo, u, string(hashedPassword))
		if err != nil {
			log.Fatalf("Failed to seed user %s: %v", u.Email, err)
		}
		users = append(users, user)
	}

	seeded := 0
	for ui, row := range demoRatings {
		for si, value := range row {
			if value == 0 {
				continue
			}
			if _, err := ratingRepo.Upsert(ctx, &model.Rating{
				UserID:  users[ui].ID,
				StoreID: stores[si].ID,
				Rating:  value,
			}); err != nil {
				log.Fatalf("Failed to seed rating: %v", err)
			}
			seeded++
		}
	}

	log.Printf("Seed completed: %d stores, %d users, %d ratings", len(stores), len(users), seeded)
	log.Printf("All demo accounts use password %q", seedPassword)
}

func ensureStore(ctx context.Context, repo repository.StoreRepository, s seedStore, passwordHash string) (*model.Store, error) {
	existing, err := repo.FindByEmail(ctx, s.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	owner := &model.User{
		Name:         s.OwnerName,
		Email:        s.Email,
		PasswordHash: passwordHash,
		Address:      s.Address,
		Role:         model.RoleStoreOwner,
	}
	store := &model.Store{
		Name:    s.Name,
		Email:   s.Email,
		Address: s.Address,
	}
	if err := repo.CreateWithOwner(ctx, owner, store); err != nil {
		return nil, err
	}
	return store, nil
}

func ensureUser(ctx context.Context, repo repository.UserRepository, u seedUser, passwordHash string) (*model.User, error) {
	existing, err := repo.FindByEmail(ctx, u.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &model.User{
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: passwordHash,
		Address:      u.Address,
		Role:         model.RoleUser,
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
