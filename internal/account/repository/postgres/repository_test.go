package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrefasa/user-service/internal/account/domain"
	repo "github.com/andrefasa/user-service/internal/account/repository/postgres"
)

var userColumns = []string{
	"id", "full_name", "email", "gender", "password_hash",
	"image_url", "cover_image_url", "refresh_token", "created_at", "updated_at",
}

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *repo.UserRepository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, repo.NewUserRepository(mock)
}

func userRow(u *domain.User) *pgxmock.Rows {
	return pgxmock.NewRows(userColumns).AddRow(
		u.ID, u.FullName, u.Email, u.Gender, u.PasswordHash,
		u.ImageURL, u.CoverImageURL, u.RefreshToken, u.CreatedAt, u.UpdatedAt,
	)
}

func TestGetByEmail(t *testing.T) {
	mock, r := newMockRepo(t)
	ctx := context.Background()

	refreshToken := "stored-refresh-token"
	expected := &domain.User{
		ID:           "user-123",
		FullName:     "A B",
		Email:        "a@b.com",
		Gender:       "f",
		PasswordHash: "hash",
		ImageURL:     "https://cdn.example.com/p.png",
		RefreshToken: &refreshToken,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs(expected.Email).
			WillReturnRows(userRow(expected))

		user, err := r.GetByEmail(ctx, expected.Email)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, expected.ID, user.ID)
		require.NotNil(t, user.RefreshToken)
		assert.Equal(t, refreshToken, *user.RefreshToken)
	})

	t.Run("not found returns nil user and nil error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs(expected.Email).
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByEmail(ctx, expected.Email)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs(expected.Email).
			WillReturnError(errors.New("connection refused"))

		user, err := r.GetByEmail(ctx, expected.Email)
		assert.Error(t, err)
		assert.Nil(t, user)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	mock, r := newMockRepo(t)
	ctx := context.Background()

	expected := &domain.User{
		ID:        "user-123",
		FullName:  "A B",
		Email:     "a@b.com",
		Gender:    "f",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	t.Run("success with null refresh token", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
			WithArgs(expected.ID).
			WillReturnRows(userRow(expected))

		user, err := r.GetByID(ctx, expected.ID)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, expected.Email, user.Email)
		assert.Nil(t, user.RefreshToken)
	})

	t.Run("not found returns nil user and nil error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
			WithArgs("ghost").
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByID(ctx, "ghost")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate(t *testing.T) {
	mock, r := newMockRepo(t)
	ctx := context.Background()

	now := time.Now()
	user := &domain.User{
		ID:           "user-123",
		FullName:     "A B",
		Email:        "a@b.com",
		Gender:       "f",
		PasswordHash: "hash",
		ImageURL:     "https://cdn.example.com/p.png",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.FullName, user.Email, user.Gender, user.PasswordHash,
				user.ImageURL, user.CoverImageURL, user.RefreshToken, user.CreatedAt, user.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := r.Create(ctx, user)
		assert.NoError(t, err)
	})

	t.Run("insert error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.FullName, user.Email, user.Gender, user.PasswordHash,
				user.ImageURL, user.CoverImageURL, user.RefreshToken, user.CreatedAt, user.UpdatedAt).
			WillReturnError(errors.New("unique constraint violation"))

		err := r.Create(ctx, user)
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRefreshToken(t *testing.T) {
	mock, r := newMockRepo(t)
	ctx := context.Background()

	t.Run("sets a new token", func(t *testing.T) {
		token := "new-refresh-token"
		mock.ExpectExec("UPDATE users SET refresh_token").
			WithArgs("user-123", &token).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := r.UpdateRefreshToken(ctx, "user-123", &token)
		assert.NoError(t, err)
	})

	t.Run("clears the token", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET refresh_token").
			WithArgs("user-123", (*string)(nil)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := r.UpdateRefreshToken(ctx, "user-123", nil)
		assert.NoError(t, err)
	})

	t.Run("exec error", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET refresh_token").
			WithArgs("user-123", (*string)(nil)).
			WillReturnError(errors.New("connection refused"))

		err := r.UpdateRefreshToken(ctx, "user-123", nil)
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePassword(t *testing.T) {
	mock, r := newMockRepo(t)
	ctx := context.Background()

	mock.ExpectExec("UPDATE users SET password_hash").
		WithArgs("user-123", "new-hash").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := r.UpdatePassword(ctx, "user-123", "new-hash")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfileImage(t *testing.T) {
	mock, r := newMockRepo(t)
	ctx := context.Background()

	mock.ExpectExec("UPDATE users SET image_url").
		WithArgs("user-123", "https://cdn.example.com/new.png").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := r.UpdateProfileImage(ctx, "user-123", "https://cdn.example.com/new.png")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
