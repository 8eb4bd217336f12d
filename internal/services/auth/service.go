package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	apperrors "bankcards/internal/errors"
	"bankcards/internal/models"
	"bankcards/internal/repositories"
	"bankcards/internal/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Tokens is a freshly issued access/refresh pair.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Service interface {
	Login(ctx context.Context, email, password string) (*models.User, *Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*Tokens, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	// Authenticate checks an access token and that it has not been revoked.
	Authenticate(ctx context.Context, accessToken string) (*models.UserClaims, error)
}

type service struct {
	userRepo repositories.UserRepository
}

func NewService(userRepo repositories.UserRepository) Service {
	return &service{
		userRepo: userRepo,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (*models.User, *Tokens, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			slog.InfoContext(ctx, "login failed: unknown email")
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		slog.InfoContext(ctx, "login failed: incorrect password", "user_id", user.ID)
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	tokens, err := issue(user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

func (s *service) RefreshTokens(ctx context.Context, refreshToken string) (*Tokens, error) {
	claims, err := s.verify(ctx, refreshToken, utils.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return issue(user)
}

func (s *service) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.userRepo.IncrementTokenVersion(ctx, userID); err != nil {
		return err
	}
	slog.InfoContext(ctx, "user logged out", "user_id", userID)
	return nil
}

func (s *service) Authenticate(ctx context.Context, accessToken string) (*models.UserClaims, error) {
	return s.verify(ctx, accessToken, utils.TokenTypeAccess)
}

func (s *service) verify(ctx context.Context, token, tokenType string) (*models.UserClaims, error) {
	_, claims, err := utils.ParseToken(token)
	if err != nil {
		if errors.Is(err, utils.ErrJWTSecretMissing) {
			return nil, err
		}
		return nil, apperrors.ErrInvalidToken
	}
	if claims.TokenType != tokenType {
		return nil, apperrors.ErrInvalidToken.WithMessage("expected %s token", tokenType)
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, apperrors.ErrTokenRevoked
	}
	// Role changes take effect without a new login.
	claims.Role = user.Role
	return claims, nil
}

func issue(user *models.User) (*Tokens, error) {
	access, refresh, err := utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role),
	})
	if err != nil {
		return nil, err
	}
	return &Tokens{AccessToken: access, RefreshToken: refresh}, nil
}
