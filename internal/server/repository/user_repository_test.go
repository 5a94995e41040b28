package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cineshelf/cineshelf/internal/server/models"
	"github.com/cineshelf/cineshelf/internal/server/repository"
)

// Вспомогательная функция для создания мока БД и репозитория.
func setupUserRepoMock(t *testing.T) (repository.UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := repository.NewPostgresUserRepository(sqlxDB)
	return repo, mock
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	insertQuery := regexp.QuoteMeta(`INSERT INTO users (id, username, email, password_hash)`)

	tests := []struct {
		name        string
		user        *models.User
		mockSetup   func(mock sqlmock.Sqlmock, user *models.User)
		expectErr   error
		expectExtID bool
	}{
		{
			name: "Успешное создание",
			user: &models.User{Username: "ivan", Email: "ivan@example.com", PasswordHash: "hash123"},
			mockSetup: func(mock sqlmock.Sqlmock, user *models.User) {
				rows := sqlmock.NewRows([]string{"id"}).AddRow("7b0d3c2e-0000-0000-0000-000000000001")
				mock.ExpectQuery(insertQuery).
					WithArgs(sqlmock.AnyArg(), user.Username, user.Email, user.PasswordHash).
					WillReturnRows(rows)
			},
			expectErr:   nil,
			expectExtID: true,
		},
		{
			name: "Email занят",
			user: &models.User{Username: "ivan", Email: "taken@example.com", PasswordHash: "hash456"},
			mockSetup: func(mock sqlmock.Sqlmock, user *models.User) {
				pqErr := &pq.Error{Code: "23505"}
				mock.ExpectQuery(insertQuery).
					WithArgs(sqlmock.AnyArg(), user.Username, user.Email, user.PasswordHash).
					WillReturnError(pqErr)
			},
			expectErr: repository.ErrEmailTaken,
		},
		{
			name: "Ошибка базы данных",
			user: &models.User{Username: "ivan", Email: "err@example.com", PasswordHash: "hash789"},
			mockSetup: func(mock sqlmock.Sqlmock, user *models.User) {
				mock.ExpectQuery(insertQuery).
					WithArgs(sqlmock.AnyArg(), user.Username, user.Email, user.PasswordHash).
					WillReturnError(errors.New("database error"))
			},
			expectErr: errors.New("ошибка выполнения запроса на создание пользователя: database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setupUserRepoMock(t)
			tt.mockSetup(mock, tt.user)

			id, err := repo.CreateUser(ctx, tt.user)

			if tt.expectErr != nil {
				require.Error(t, err)
				assert.EqualError(t, err, tt.expectErr.Error())
				assert.Empty(t, id)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, id)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetUserByEmail(t *testing.T) {
	ctx := context.Background()
	selectQuery := regexp.QuoteMeta(`FROM users WHERE email=$1`)
	now := time.Now()

	t.Run("Пользователь найден", func(t *testing.T) {
		repo, mock := setupUserRepoMock(t)
		rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at", "updated_at"}).
			AddRow("u1", "ivan", "ivan@example.com", "hash", now, now)
		mock.ExpectQuery(selectQuery).WithArgs("ivan@example.com").WillReturnRows(rows)

		user, err := repo.GetUserByEmail(ctx, "ivan@example.com")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		assert.Equal(t, "ivan", user.Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		repo, mock := setupUserRepoMock(t)
		mock.ExpectQuery(selectQuery).WithArgs("ghost@example.com").WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByEmail(ctx, "ghost@example.com")
		require.ErrorIs(t, err, repository.ErrUserNotFound)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetUserByID(t *testing.T) {
	ctx := context.Background()
	selectQuery := regexp.QuoteMeta(`FROM users WHERE id=$1`)

	t.Run("Пользователь не найден", func(t *testing.T) {
		repo, mock := setupUserRepoMock(t)
		mock.ExpectQuery(selectQuery).WithArgs("nope").WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByID(ctx, "nope")
		require.ErrorIs(t, err, repository.ErrUserNotFound)
		assert.Nil(t, user)
	})
}
