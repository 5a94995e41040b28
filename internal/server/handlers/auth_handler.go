package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/cineshelf/cineshelf/internal/server/services"
	"github.com/cineshelf/cineshelf/models"
)

// registerRequest - тело запроса на регистрацию.
type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest - тело запроса на вход.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthHandler обрабатывает HTTP-запросы, связанные с аутентификацией.
type AuthHandler struct {
	service services.AuthService
}

// NewAuthHandler создает новый экземпляр AuthHandler.
func NewAuthHandler(s services.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[AuthHandler] Ошибка декодирования запроса регистрации: %v", err)
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		log.Printf("[AuthHandler] Неполные данные при регистрации")
		http.Error(w, "Имя пользователя, email и пароль не могут быть пустыми", http.StatusBadRequest)
		return
	}

	log.Printf("[AuthHandler] Попытка регистрации пользователя: %s", req.Email)

	token, user, err := h.service.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			http.Error(w, "Email уже занят", http.StatusConflict)
			return
		}
		log.Printf("[AuthHandler] Ошибка сервиса при регистрации '%s': %v", req.Email, err)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.AuthResponse{
		Token: token,
		User:  models.User{ID: user.ID, Username: user.Username, Email: user.Email},
	})
	log.Printf("[AuthHandler] Успешная регистрация: %s", req.Email)
}

// Login обрабатывает запрос на вход пользователя.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[AuthHandler] Ошибка декодирования запроса входа: %v", err)
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		log.Printf("[AuthHandler] Пустой email или пароль при входе")
		http.Error(w, "Email и пароль не могут быть пустыми", http.StatusBadRequest)
		return
	}

	log.Printf("[AuthHandler] Попытка входа пользователя: %s", req.Email)

	token, user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			http.Error(w, "Неверный email или пароль", http.StatusUnauthorized)
			return
		}
		log.Printf("[AuthHandler] Ошибка сервиса при входе '%s': %v", req.Email, err)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.AuthResponse{
		Token: token,
		User:  models.User{ID: user.ID, Username: user.Username, Email: user.Email},
	})
	log.Printf("[AuthHandler] Успешный вход: %s", req.Email)
}

// Logout обрабатывает запрос на выход.
// Токены не хранятся на сервере, поэтому выход сводится к подтверждению:
// клиент забывает токен у себя.
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
