package handlers

import (
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/cineshelf/cineshelf/internal/server/middleware"
	"github.com/cineshelf/cineshelf/internal/server/storage"
)

// Максимальный размер загружаемого постера - 10 МБ.
const maxPosterSize = 10 << 20

// posterResponse - тело ответа на загрузку постера.
type posterResponse struct {
	URL string `json:"url"`
}

// PosterHandler обрабатывает загрузку изображений постеров.
type PosterHandler struct {
	storage storage.PosterStorage
}

// NewPosterHandler создает новый экземпляр PosterHandler.
func NewPosterHandler(s storage.PosterStorage) *PosterHandler {
	return &PosterHandler{storage: s}
}

// Upload обрабатывает POST запрос с multipart-полем "poster".
// Возвращает ссылку, которую клиент подставляет в поле poster фильма.
func (h *PosterHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		log.Printf("[PosterHandler:Upload] Не удалось получить userID из контекста")
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	if err := r.ParseMultipartForm(maxPosterSize); err != nil {
		log.Printf("[PosterHandler:Upload] Ошибка разбора multipart-формы: %v", err)
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("poster")
	if err != nil {
		log.Printf("[PosterHandler:Upload] Поле 'poster' отсутствует: %v", err)
		http.Error(w, "Отсутствует файл постера", http.StatusBadRequest)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("[PosterHandler:Upload] Ошибка закрытия файла: %v", closeErr)
		}
	}()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		http.Error(w, "Постер должен быть изображением", http.StatusBadRequest)
		return
	}

	// Ключ объекта: постеры пользователя лежат под его ID
	objectKey := userID + "/" + uuid.NewString() + filepath.Ext(header.Filename)

	posterURL, err := h.storage.UploadPoster(r.Context(), objectKey, file, header.Size, contentType)
	if err != nil {
		log.Printf("[PosterHandler:Upload] Ошибка загрузки постера для пользователя %s: %v", userID, err)
		http.Error(w, "Внутренняя ошибка сервера при загрузке постера", http.StatusInternalServerError)
		return
	}

	log.Printf("[PosterHandler:Upload] Пользователь %s загрузил постер '%s'", userID, objectKey)
	writeData(w, http.StatusCreated, posterResponse{URL: posterURL})
}
