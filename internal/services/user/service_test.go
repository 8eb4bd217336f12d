package user

import (
	"context"
	"errors"
	"testing"

	apperrors "bankcards/internal/errors"
	"bankcards/internal/models"
	"bankcards/internal/repositories/repotest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func strPtr(s string) *string { return &s }

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name      string
		input     RegisterInput
		setupMock func(*repotest.MockUserRepository)
		wantErr   error
	}{
		{
			name:  "registers user with hashed password",
			input: RegisterInput{Name: "Ann", Email: " Ann@Example.com ", Password: "secret-pass"},
			setupMock: func(r *repotest.MockUserRepository) {
				r.On("ExistsByEmail", mock.Anything, "ann@example.com").Return(false, nil)
				r.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
					return u.Email == "ann@example.com" &&
						u.Role == models.RoleUser &&
						bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret-pass")) == nil
				})).Return(nil)
			},
		},
		{
			name:  "email already registered",
			input: RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "secret-pass"},
			setupMock: func(r *repotest.MockUserRepository) {
				r.On("ExistsByEmail", mock.Anything, "ann@example.com").Return(true, nil)
			},
			wantErr: apperrors.ErrEmailTaken,
		},
		{
			name:  "unique index race surfaces as conflict",
			input: RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "secret-pass"},
			setupMock: func(r *repotest.MockUserRepository) {
				r.On("ExistsByEmail", mock.Anything, "ann@example.com").Return(false, nil)
				r.On("Create", mock.Anything, mock.Anything).Return(apperrors.ErrEmailTaken)
			},
			wantErr: apperrors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(repotest.MockUserRepository)
			tt.setupMock(repo)

			user, err := NewService(repo).Register(context.Background(), tt.input)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, models.RoleUser, user.Role)
				assert.NotEqual(t, "secret-pass", user.Password)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestUserService_Update(t *testing.T) {
	id := uuid.New()
	existing := func() *models.User {
		return &models.User{ID: id, Name: "Ann", Email: "ann@example.com", Role: models.RoleUser, TokenVersion: 3}
	}

	t.Run("changes name and email", func(t *testing.T) {
		repo := new(repotest.MockUserRepository)
		repo.On("GetByID", mock.Anything, id).Return(existing(), nil)
		repo.On("ExistsByEmail", mock.Anything, "new@example.com").Return(false, nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		user, err := NewService(repo).Update(context.Background(), id, UpdateInput{
			Name:  strPtr("Anna"),
			Email: strPtr("New@Example.com"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Anna", user.Name)
		assert.Equal(t, "new@example.com", user.Email)
		assert.Equal(t, 3, user.TokenVersion)
		repo.AssertExpectations(t)
	})

	t.Run("same email skips conflict check", func(t *testing.T) {
		repo := new(repotest.MockUserRepository)
		repo.On("GetByID", mock.Anything, id).Return(existing(), nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		_, err := NewService(repo).Update(context.Background(), id, UpdateInput{Email: strPtr("ann@example.com")})
		require.NoError(t, err)
		repo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
	})

	t.Run("email taken", func(t *testing.T) {
		repo := new(repotest.MockUserRepository)
		repo.On("GetByID", mock.Anything, id).Return(existing(), nil)
		repo.On("ExistsByEmail", mock.Anything, "bob@example.com").Return(true, nil)

		_, err := NewService(repo).Update(context.Background(), id, UpdateInput{Email: strPtr("bob@example.com")})
		assert.True(t, errors.Is(err, apperrors.ErrEmailTaken))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("password change revokes tokens", func(t *testing.T) {
		repo := new(repotest.MockUserRepository)
		repo.On("GetByID", mock.Anything, id).Return(existing(), nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		user, err := NewService(repo).Update(context.Background(), id, UpdateInput{Password: strPtr("another-pass")})
		require.NoError(t, err)
		assert.Equal(t, 4, user.TokenVersion)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("another-pass")))
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(repotest.MockUserRepository)
		repo.On("GetByID", mock.Anything, id).Return(nil, apperrors.ErrUserNotFound)

		_, err := NewService(repo).Update(context.Background(), id, UpdateInput{Name: strPtr("x")})
		assert.True(t, errors.Is(err, apperrors.ErrUserNotFound))
	})
}

func TestUserService_EnsureAdmin(t *testing.T) {
	t.Run("creates missing admin", func(t *testing.T) {
		repo := new(repotest.MockUserRepository)
		repo.On("GetByEmail", mock.Anything, "admin@example.com").Return(nil, apperrors.ErrUserNotFound)
		repo.On("ExistsByEmail", mock.Anything, "admin@example.com").Return(false, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Role == models.RoleAdmin
		})).Return(nil)

		user, created, err := NewService(repo).EnsureAdmin(context.Background(), "Admin", "admin@example.com", "admin-pass")
		require.NoError(t, err)
		assert.True(t, created)
		assert.True(t, user.IsAdmin())
		repo.AssertExpectations(t)
	})

	t.Run("keeps existing account", func(t *testing.T) {
		admin := &models.User{ID: uuid.New(), Email: "admin@example.com", Role: models.RoleAdmin}
		repo := new(repotest.MockUserRepository)
		repo.On("GetByEmail", mock.Anything, "admin@example.com").Return(admin, nil)

		user, created, err := NewService(repo).EnsureAdmin(context.Background(), "Admin", "admin@example.com", "admin-pass")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, admin.ID, user.ID)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("lookup failure", func(t *testing.T) {
		repo := new(repotest.MockUserRepository)
		repo.On("GetByEmail", mock.Anything, "admin@example.com").Return(nil, errors.New("db down"))

		_, _, err := NewService(repo).EnsureAdmin(context.Background(), "Admin", "admin@example.com", "admin-pass")
		assert.EqualError(t, err, "db down")
	})
}

func TestUserService_List(t *testing.T) {
	users := []*models.User{{ID: uuid.New()}, {ID: uuid.New()}}
	repo := new(repotest.MockUserRepository)
	repo.On("List", mock.Anything, 20, 10).Return(users, int64(32), nil)

	got, total, err := NewService(repo).List(context.Background(), 20, 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int64(32), total)
}

func TestUserService_GetByEmailNormalizes(t *testing.T) {
	u := &models.User{ID: uuid.New(), Email: "ann@example.com"}
	repo := new(repotest.MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "ann@example.com").Return(u, nil)

	got, err := NewService(repo).GetByEmail(context.Background(), "  ANN@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}
