package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cineshelf/cineshelf/internal/server/middleware"
	"github.com/cineshelf/cineshelf/internal/server/services"
)

// commentRequest - тело запроса на добавление комментария.
type commentRequest struct {
	Content string `json:"content"`
}

// CommentHandler обрабатывает HTTP-запросы, связанные с комментариями.
type CommentHandler struct {
	service services.CommentService
}

// NewCommentHandler создает новый экземпляр CommentHandler.
func NewCommentHandler(s services.CommentService) *CommentHandler {
	return &CommentHandler{service: s}
}

// List обрабатывает GET запрос на комментарии фильма.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")

	comments, err := h.service.ListComments(r.Context(), movieID)
	if err != nil {
		if errors.Is(err, services.ErrMovieNotFound) {
			http.Error(w, "Фильм не найден", http.StatusNotFound)
			return
		}
		log.Printf("[CommentHandler:List] Ошибка получения комментариев фильма '%s': %v", movieID, err)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	writeData(w, http.StatusOK, comments)
}

// Create обрабатывает POST запрос на добавление комментария.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		log.Printf("[CommentHandler:Create] Не удалось получить userID из контекста")
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	movieID := chi.URLParam(r, "id")

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[CommentHandler:Create] Ошибка декодирования запроса комментария: %v", err)
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	text := strings.TrimSpace(req.Content)
	if text == "" {
		http.Error(w, "Комментарий не может быть пустым", http.StatusBadRequest)
		return
	}

	comment, err := h.service.AddComment(r.Context(), userID, movieID, text)
	if err != nil {
		if errors.Is(err, services.ErrMovieNotFound) {
			http.Error(w, "Фильм не найден", http.StatusNotFound)
			return
		}
		log.Printf("[CommentHandler:Create] Ошибка добавления комментария к фильму '%s': %v", movieID, err)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	writeData(w, http.StatusCreated, comment)
}
