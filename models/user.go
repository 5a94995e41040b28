package models

// User представляет публичный профиль пользователя системы.
// Снимок профиля фиксируется в момент входа/регистрации и далее не обновляется.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// RegisterRequest представляет тело запроса на регистрацию.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest представляет тело запроса на вход.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse представляет тело ответа при успешном входе или регистрации.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
