package models

// Movie представляет каноническую форму записи о фильме, с которой работает клиент.
// CreatedAt хранится строкой в формате RFC 3339: такие строки монотонны
// лексикографически, поэтому сортировка по времени сводится к сравнению строк.
type Movie struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Year      int    `json:"year"`
	Genre     string `json:"genre"`
	Poster    string `json:"poster"`
	Summary   string `json:"summary"`
	OwnerID   string `json:"ownerId"`
	CreatedAt string `json:"createdAt"`
}

// MovieRequest представляет тело запроса на создание или обновление фильма.
type MovieRequest struct {
	Title   string `json:"title"`
	Year    int    `json:"year"`
	Genre   string `json:"genre"`
	Poster  string `json:"poster"`
	Summary string `json:"summary"`
}
