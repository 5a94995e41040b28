package models

// Comment представляет комментарий к фильму.
// Комментарии только добавляются: редактирования и удаления нет.
type Comment struct {
	ID         string `json:"id"`
	MovieID    string `json:"movieId"`
	AuthorID   string `json:"authorId"`
	AuthorName string `json:"authorName"`
	Text       string `json:"text"`
	CreatedAt  string `json:"createdAt"`
}

// CommentRequest представляет тело запроса на добавление комментария.
// Поле называется content по историческим причинам (так его называет сервер).
type CommentRequest struct {
	Content string `json:"content"`
}
