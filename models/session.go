package models

// Session представляет сохраняемую между запусками сессию пользователя:
// токен доступа и кэшированный профиль.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
