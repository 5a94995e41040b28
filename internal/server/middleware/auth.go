// Package middleware содержит HTTP middleware сервера CineShelf.
package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cineshelf/cineshelf/internal/server/services"
)

// Тип для ключа контекста.
type contextKey string

// Ключ для хранения данных пользователя в контексте.
const claimsKey contextKey = "claims"

// NewAuthenticator возвращает middleware проверки JWT токена аутентификации.
// Секретный ключ приходит из конфигурации сервера.
func NewAuthenticator(jwtSecret string) func(http.Handler) http.Handler {
	secret := []byte(jwtSecret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Println("[AuthMiddleware] Заголовок Authorization отсутствует")
				http.Error(w, "Требуется аутентификация", http.StatusUnauthorized)
				return
			}

			// Проверяем формат "Bearer token"
			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				log.Printf("[AuthMiddleware] Неверный формат заголовка Authorization: %s", authHeader)
				http.Error(w, "Неверный формат токена", http.StatusUnauthorized)
				return
			}

			tokenString := headerParts[1]

			claims := &services.Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				// Убеждаемся, что метод подписи - HS256
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
				}
				return secret, nil
			})

			if err != nil {
				log.Printf("[AuthMiddleware] Ошибка парсинга/валидации токена: %v", err)
				http.Error(w, "Невалидный токен", http.StatusUnauthorized)
				return
			}

			if !token.Valid {
				log.Println("[AuthMiddleware] Предоставлен невалидный токен (возможно, истек)")
				http.Error(w, "Невалидный токен", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)

			log.Printf("[AuthMiddleware] Пользователь %s успешно аутентифицирован", claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaimsFromContext извлекает данные пользователя из контекста запроса.
func GetClaimsFromContext(ctx context.Context) (*services.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*services.Claims)
	return claims, ok
}

// GetUserIDFromContext извлекает ID пользователя из контекста запроса.
// Возвращает ID и true, если пользователь аутентифицирован, иначе "" и false.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	claims, ok := GetClaimsFromContext(ctx)
	if !ok {
		return "", false
	}
	return claims.UserID, true
}
