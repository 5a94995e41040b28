// Package services содержит бизнес-логику сервера CineShelf.
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/cineshelf/cineshelf/internal/server/models"
	"github.com/cineshelf/cineshelf/internal/server/repository"
)

// Время жизни токена - 24 часа.
const tokenTTL = time.Hour * 24

// Кастомные ошибки сервиса аутентификации.
var (
	ErrInvalidCredentials = errors.New("неверный email или пароль")
	ErrEmailTaken         = errors.New("email уже занят")
)

// Claims - полезная нагрузка JWT с данными пользователя.
// Профиль кладется в токен целиком, чтобы не ходить в БД на каждый запрос.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService определяет интерфейс для сервиса аутентификации.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (string, *models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

// Убедимся, что authService удовлетворяет интерфейсу AuthService.
var _ AuthService = (*authService)(nil)

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
}

// NewAuthService создает новый экземпляр сервиса аутентификации.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string) AuthService {
	return &authService{userRepo: userRepo, jwtSecret: []byte(jwtSecret)}
}

// Register регистрирует нового пользователя и сразу возвращает токен с профилем.
func (s *authService) Register(
	ctx context.Context,
	username, email, password string,
) (string, *models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[AuthService] Ошибка хеширования пароля для '%s': %v", email, err)
		return "", nil, errors.New("внутренняя ошибка сервера при хешировании пароля")
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	userID, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			log.Printf("[AuthService] Попытка регистрации с занятым email: %s", email)
			return "", nil, ErrEmailTaken
		}
		log.Printf("[AuthService] Непредвиденная ошибка репозитория при регистрации '%s': %v", email, err)
		return "", nil, errors.New("внутренняя ошибка сервера при создании пользователя")
	}
	user.ID = userID

	token, err := s.generateJWT(user)
	if err != nil {
		log.Printf("[AuthService] Ошибка генерации JWT для '%s': %v", email, err)
		return "", nil, errors.New("внутренняя ошибка сервера при генерации токена")
	}

	log.Printf("[AuthService] Пользователь '%s' успешно зарегистрирован", email)
	return token, user, nil
}

// Login аутентифицирует пользователя и возвращает JWT токен с профилем.
func (s *authService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Printf("[AuthService] Попытка входа несуществующего пользователя: %s", email)
			// Общая ошибка для несуществующего пользователя и неверного пароля
			return "", nil, ErrInvalidCredentials
		}
		log.Printf("[AuthService] Ошибка репозитория при поиске '%s': %v", email, err)
		return "", nil, errors.New("внутренняя ошибка сервера при поиске пользователя")
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Printf("[AuthService] Неверный пароль для пользователя: %s", email)
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateJWT(user)
	if err != nil {
		log.Printf("[AuthService] Ошибка генерации JWT для '%s': %v", email, err)
		return "", nil, errors.New("внутренняя ошибка сервера при генерации токена")
	}

	log.Printf("[AuthService] Пользователь '%s' успешно аутентифицирован", email)
	return token, user, nil
}

// generateJWT создает и подписывает JWT токен для пользователя.
func (s *authService) generateJWT(user *models.User) (string, error) {
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "cineshelf-server",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи JWT: %w", err)
	}

	return signedToken, nil
}
