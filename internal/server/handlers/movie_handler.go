package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cineshelf/cineshelf/internal/server/middleware"
	"github.com/cineshelf/cineshelf/internal/server/services"
)

// Минимальный допустимый год выпуска фильма.
const minMovieYear = 1888

// movieRequest - тело запроса на создание/обновление фильма.
type movieRequest struct {
	Title   string `json:"title"`
	Year    int    `json:"year"`
	Genre   string `json:"genre"`
	Poster  string `json:"poster"`
	Summary string `json:"summary"`
}

// MovieHandler обрабатывает HTTP-запросы, связанные с фильмами.
type MovieHandler struct {
	service services.MovieService
}

// NewMovieHandler создает новый экземпляр MovieHandler.
func NewMovieHandler(s services.MovieService) *MovieHandler {
	return &MovieHandler{service: s}
}

// List обрабатывает GET запрос на список всех фильмов.
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.ListMovies(r.Context())
	if err != nil {
		log.Printf("[MovieHandler:List] Ошибка получения списка фильмов: %v", err)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	writeData(w, http.StatusOK, movies)
}

// Get обрабатывает GET запрос на один фильм.
func (h *MovieHandler) Get(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")

	movie, err := h.service.GetMovie(r.Context(), movieID)
	if err != nil {
		if errors.Is(err, services.ErrMovieNotFound) {
			http.Error(w, "Фильм не найден", http.StatusNotFound)
			return
		}
		log.Printf("[MovieHandler:Get] Ошибка получения фильма '%s': %v", movieID, err)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	writeData(w, http.StatusOK, movie)
}

// Create обрабатывает POST запрос на создание фильма.
func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		log.Printf("[MovieHandler:Create] Не удалось получить userID из контекста")
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	req, ok := h.decodeMovieRequest(w, r)
	if !ok {
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), userID, services.MovieInput{
		Title:   req.Title,
		Year:    req.Year,
		Genre:   req.Genre,
		Poster:  req.Poster,
		Summary: req.Summary,
	})
	if err != nil {
		log.Printf("[MovieHandler:Create] Ошибка создания фильма для пользователя %s: %v", userID, err)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	writeData(w, http.StatusCreated, movie)
}

// Update обрабатывает PUT запрос на обновление фильма. Только для владельца.
func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		log.Printf("[MovieHandler:Update] Не удалось получить userID из контекста")
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	movieID := chi.URLParam(r, "id")

	req, ok := h.decodeMovieRequest(w, r)
	if !ok {
		return
	}

	movie, err := h.service.UpdateMovie(r.Context(), userID, movieID, services.MovieInput{
		Title:   req.Title,
		Year:    req.Year,
		Genre:   req.Genre,
		Poster:  req.Poster,
		Summary: req.Summary,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMovieNotFound):
			http.Error(w, "Фильм не найден", http.StatusNotFound)
		case errors.Is(err, services.ErrNotOwner):
			http.Error(w, "Можно изменять только свои фильмы", http.StatusForbidden)
		default:
			log.Printf("[MovieHandler:Update] Ошибка обновления фильма '%s': %v", movieID, err)
			http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	writeData(w, http.StatusOK, movie)
}

// Delete обрабатывает DELETE запрос на удаление фильма. Только для владельца.
func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		log.Printf("[MovieHandler:Delete] Не удалось получить userID из контекста")
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	movieID := chi.URLParam(r, "id")

	if err := h.service.DeleteMovie(r.Context(), userID, movieID); err != nil {
		switch {
		case errors.Is(err, services.ErrMovieNotFound):
			http.Error(w, "Фильм не найден", http.StatusNotFound)
		case errors.Is(err, services.ErrNotOwner):
			http.Error(w, "Можно удалять только свои фильмы", http.StatusForbidden)
		default:
			log.Printf("[MovieHandler:Delete] Ошибка удаления фильма '%s': %v", movieID, err)
			http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeMovieRequest декодирует и валидирует тело запроса фильма.
func (h *MovieHandler) decodeMovieRequest(w http.ResponseWriter, r *http.Request) (movieRequest, bool) {
	var req movieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[MovieHandler] Ошибка декодирования запроса фильма: %v", err)
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return movieRequest{}, false
	}

	if req.Title == "" || req.Genre == "" || req.Summary == "" || req.Year == 0 {
		http.Error(w, "Название, год, жанр и описание обязательны", http.StatusBadRequest)
		return movieRequest{}, false
	}

	if req.Year < minMovieYear {
		http.Error(w, "Год выпуска не может быть раньше 1888", http.StatusBadRequest)
		return movieRequest{}, false
	}

	return req, true
}
