package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	apperrors "bankcards/internal/errors"
	"bankcards/internal/models"
	"bankcards/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput carries an already validated registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateInput holds the optional fields an admin may change. Nil means unchanged.
type UpdateInput struct {
	Name     *string
	Email    *string
	Password *string
}

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	EnsureAdmin(ctx context.Context, name, email, password string) (*models.User, bool, error)
}

type service struct {
	repo repositories.UserRepository
}

func NewService(repo repositories.UserRepository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	return s.create(ctx, input.Name, input.Email, input.Password, models.RoleUser)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if email != user.Email {
			if err := s.ensureEmailFree(ctx, email); err != nil {
				return nil, err
			}
			user.Email = email
		}
	}
	if input.Password != nil {
		hash, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
		// Existing sessions end with the old password.
		user.TokenVersion++
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "user updated", "user_id", user.ID)
	return user, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repo.GetByEmail(ctx, normalizeEmail(email))
}

func (s *service) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	return s.repo.List(ctx, offset, limit)
}

// EnsureAdmin creates the admin account unless the email is already
// registered. The bool reports whether a new account was created.
func (s *service) EnsureAdmin(ctx context.Context, name, email, password string) (*models.User, bool, error) {
	existing, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err == nil {
		if !existing.IsAdmin() {
			slog.WarnContext(ctx, "admin email belongs to a non-admin account", "user_id", existing.ID)
		}
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, false, err
	}

	user, err := s.create(ctx, name, email, password, models.RoleAdmin)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *service) create(ctx context.Context, name, email, password, role string) (*models.User, error) {
	email = normalizeEmail(email)
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		Password:     hash,
		Role:         role,
		TokenVersion: 1,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID, "role", role)
	return user, nil
}

func (s *service) ensureEmailFree(ctx context.Context, email string) error {
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrEmailTaken.WithMessage("user with email %s already exists", email)
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
