package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/cineshelf/cineshelf/internal/server/models"
)

// Коды ошибок PostgreSQL.
const (
	pgUniqueViolationCode = "23505"
)

// Кастомные ошибки репозитория пользователей.
var (
	ErrUserNotFound = errors.New("пользователь не найден")
	ErrEmailTaken   = errors.New("email уже занят")
)

// UserRepository определяет методы для работы с данными пользователей в хранилище.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (string, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// postgresUserRepository реализует UserRepository для PostgreSQL.
type postgresUserRepository struct {
	db *sqlx.DB
}

// NewPostgresUserRepository создает новый экземпляр репозитория пользователей для PostgreSQL.
func NewPostgresUserRepository(db *sqlx.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

// CreateUser создает нового пользователя и возвращает его ID.
func (r *postgresUserRepository) CreateUser(ctx context.Context, user *models.User) (string, error) {
	query := `INSERT INTO users (id, username, email, password_hash)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	userID := uuid.NewString()

	err := r.db.QueryRowxContext(ctx, query, userID, user.Username, user.Email, user.PasswordHash).Scan(&userID)
	if err != nil {
		// Нарушение уникальности: email (или username) уже заняты
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			log.Printf("[Repo] Ошибка создания пользователя: email '%s' уже занят", user.Email)
			return "", ErrEmailTaken
		}
		log.Printf("[Repo] Непредвиденная ошибка при создании пользователя '%s': %v", user.Email, err)
		return "", fmt.Errorf("ошибка выполнения запроса на создание пользователя: %w", err)
	}

	log.Printf("[Repo] Пользователь '%s' успешно создан с ID %s", user.Email, userID)
	return userID, nil
}

// GetUserByEmail находит пользователя по email.
func (r *postgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, username, email, password_hash, created_at, updated_at
	          FROM users WHERE email=$1`
	var user models.User

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("[Repo] Пользователь с email '%s' не найден", email)
			return nil, ErrUserNotFound
		}
		log.Printf("[Repo] Ошибка при поиске пользователя '%s': %v", email, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение пользователя: %w", err)
	}

	return &user, nil
}

// GetUserByID находит пользователя по идентификатору.
func (r *postgresUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT id, username, email, password_hash, created_at, updated_at
	          FROM users WHERE id=$1`
	var user models.User

	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		log.Printf("[Repo] Ошибка при поиске пользователя по ID '%s': %v", id, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение пользователя: %w", err)
	}

	return &user, nil
}
