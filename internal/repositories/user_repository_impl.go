package repositories

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apperrors "bankcards/internal/errors"
	"bankcards/internal/models"
	"bankcards/internal/repositories/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewUserRepository creates a new instance of UserRepository.
// cache may be nil, in which case every lookup hits the database.
func NewUserRepository(db *gorm.DB, cache *cache.CacheService) UserRepository {
	return &userRepository{
		db:    db,
		cache: cache,
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translateError(fmt.Errorf("failed to create user: %w", err), apperrors.ErrEmailTaken)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if r.cache != nil {
		if user, err := r.cache.GetUserByID(ctx, id); err == nil {
			return user, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			slog.WarnContext(ctx, "user cache lookup failed", "user_id", id, "error", err)
		}
	}

	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound.WithMessage("user with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.CacheUser(ctx, &user); err != nil {
			slog.WarnContext(ctx, "failed to cache user", "user_id", id, "error", err)
		}
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound.WithMessage("user with email %s not found", email)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	var previous models.User
	// The old email key must be invalidated too when the email changes.
	if err := r.db.WithContext(ctx).Select("id", "email").Where("id = ?", user.ID).First(&previous).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound.WithMessage("user with id %s not found", user.ID)
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return translateError(fmt.Errorf("failed to update user: %w", err), apperrors.ErrEmailTaken)
	}

	r.invalidate(ctx, &previous)
	r.invalidate(ctx, user)
	return nil
}

func (r *userRepository) IncrementTokenVersion(ctx context.Context, userID uuid.UUID) error {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound.WithMessage("user with id %s not found", userID)
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("token_version", gorm.Expr("token_version + 1")).Error; err != nil {
		return fmt.Errorf("failed to increment token version: %w", err)
	}

	r.invalidate(ctx, &user)
	return nil
}

func (r *userRepository) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	if err := r.db.WithContext(ctx).Order("email ASC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}

func (r *userRepository) invalidate(ctx context.Context, user *models.User) {
	if r.cache == nil {
		return
	}
	if err := r.cache.InvalidateUser(ctx, user); err != nil {
		slog.WarnContext(ctx, "failed to invalidate user cache", "user_id", user.ID, "error", err)
	}
}
