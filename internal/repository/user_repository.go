package repository

import (
	"context"

	"gorm.io/gorm"

	"quickthumb/internal/model"
)

// UserRepository defines user persistence operations. Credit mutations are
// issued as store-level atomic increments; there is no transaction spanning
// a read-then-write cycle.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	AddCredits(ctx context.Context, userID string, amount int) error
	SpendCredit(ctx context.Context, userID string) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// AddCredits increments a user's balance atomically in the store.
func (r *userRepository) AddCredits(ctx context.Context, userID string, amount int) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("user_id = ?", userID).
		UpdateColumn("credits", gorm.Expr("credits + ?", amount)).Error
}

// SpendCredit decrements a user's balance by exactly one. The caller
// checks the precondition; the decrement itself is unconditional.
func (r *userRepository) SpendCredit(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("user_id = ?", userID).
		UpdateColumn("credits", gorm.Expr("credits - 1")).Error
}
