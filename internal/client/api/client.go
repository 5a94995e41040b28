// Package api содержит HTTP-клиент REST API сервера и слой нормализации
// ответов к каноническим моделям.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cineshelf/cineshelf/models"
)

// Сообщение об ошибке по умолчанию, если сервер не прислал ничего осмысленного.
const fallbackErrorMessage = "Запрос не выполнен. Попробуйте еще раз."

// APIError представляет ответ сервера со статусом вне диапазона 2xx.
// Несет HTTP-статус и человекочитаемое сообщение, извлеченное из тела ответа.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client определяет интерфейс для взаимодействия с REST API сервера CineShelf.
type Client interface {
	// Register регистрирует нового пользователя и возвращает сессию (токен + профиль).
	Register(ctx context.Context, req models.RegisterRequest) (*models.Session, error)
	// Login аутентифицирует пользователя и возвращает сессию.
	Login(ctx context.Context, req models.LoginRequest) (*models.Session, error)
	// Logout завершает сессию на сервере.
	Logout(ctx context.Context, token string) error
	// ListMovies возвращает все фильмы каталога.
	ListMovies(ctx context.Context) ([]models.Movie, error)
	// GetMovie возвращает один фильм по идентификатору.
	GetMovie(ctx context.Context, movieID string) (*models.Movie, error)
	// CreateMovie создает фильм от имени владельца токена.
	CreateMovie(ctx context.Context, req models.MovieRequest, token string) (*models.Movie, error)
	// UpdateMovie обновляет фильм (сервер проверяет владельца).
	UpdateMovie(ctx context.Context, movieID string, req models.MovieRequest, token string) (*models.Movie, error)
	// DeleteMovie удаляет фильм (сервер проверяет владельца).
	DeleteMovie(ctx context.Context, movieID string, token string) error
	// ListComments возвращает комментарии к фильму.
	ListComments(ctx context.Context, movieID string) ([]models.Comment, error)
	// AddComment добавляет комментарий к фильму.
	AddComment(ctx context.Context, movieID string, req models.CommentRequest, token string) (*models.Comment, error)
}

// httpClient реализует интерфейс Client поверх net/http.
type httpClient struct {
	baseURL    string       // Базовый URL сервера, например "http://localhost:5000"
	httpClient *http.Client // Таймауты не задаем: полагаемся на транспорт по умолчанию
}

// NewHTTPClient создает новый экземпляр API клиента.
func NewHTTPClient(baseURL string) Client {
	return &httpClient{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// do - единая точка выполнения запросов к API.
// Сериализует тело в JSON (если есть), добавляет заголовок Authorization (если
// передан токен) и разбирает ответ: 204 -> nil, JSON -> декодированное значение,
// иначе текст. Статус вне 2xx превращается в *APIError.
func (c *httpClient) do(ctx context.Context, method, path string, body any, token string) (any, error) {
	requestURL, err := url.JoinPath(c.baseURL, "/api", path)
	if err != nil {
		return nil, fmt.Errorf("ошибка формирования URL запроса: %w", err)
	}

	var reader io.Reader
	if body != nil {
		jsonData, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return nil, fmt.Errorf("ошибка кодирования тела запроса: %w", marshalErr)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения тела ответа: %w", err)
	}

	var payload any
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		if err = json.Unmarshal(raw, &payload); err != nil {
			return nil, fmt.Errorf("ошибка декодирования JSON ответа: %w", err)
		}
	} else {
		payload = string(raw)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{
			Status:  resp.StatusCode,
			Message: extractErrorMessage(payload),
		}
	}

	return payload, nil
}

// extractErrorMessage извлекает сообщение об ошибке из тела ответа.
// Приоритет: строковое тело, поле message, общее сообщение по умолчанию.
func extractErrorMessage(payload any) string {
	switch v := payload.(type) {
	case string:
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	case map[string]any:
		if msg, ok := v["message"].(string); ok && msg != "" {
			return msg
		}
	}
	return fallbackErrorMessage
}

// unwrapData снимает конверт {data: ...}, если сервер его прислал.
// Исторически одни ревизии сервера отвечают голым значением, другие - конвертом.
func unwrapData(payload any) any {
	if m, ok := payload.(map[string]any); ok {
		if data, exists := m["data"]; exists {
			return data
		}
	}
	return payload
}

// unwrapList приводит ответ к списку элементов (голый массив или {data: [...]}).
func unwrapList(payload any) []any {
	items, _ := unwrapData(payload).([]any)
	return items
}

// Register отправляет запрос на регистрацию и нормализует ответ в сессию.
func (c *httpClient) Register(ctx context.Context, req models.RegisterRequest) (*models.Session, error) {
	payload, err := c.do(ctx, http.MethodPost, "/auth/register", req, "")
	if err != nil {
		return nil, err
	}
	return sessionFromPayload(payload)
}

// Login отправляет запрос на вход и нормализует ответ в сессию.
func (c *httpClient) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	payload, err := c.do(ctx, http.MethodPost, "/auth/login", req, "")
	if err != nil {
		return nil, err
	}
	return sessionFromPayload(payload)
}

// Logout завершает сессию на сервере. Сервер отвечает 204 без тела.
func (c *httpClient) Logout(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, token)
	return err
}

// ListMovies возвращает нормализованный список фильмов.
func (c *httpClient) ListMovies(ctx context.Context) ([]models.Movie, error) {
	payload, err := c.do(ctx, http.MethodGet, "/movies", nil, "")
	if err != nil {
		return nil, err
	}

	items := unwrapList(payload)
	movies := make([]models.Movie, 0, len(items))
	for _, item := range items {
		if movie := NormalizeMovie(item); movie != nil {
			movies = append(movies, *movie)
		}
	}
	return movies, nil
}

// GetMovie возвращает один нормализованный фильм.
func (c *httpClient) GetMovie(ctx context.Context, movieID string) (*models.Movie, error) {
	payload, err := c.do(ctx, http.MethodGet, "/movies/"+movieID, nil, "")
	if err != nil {
		return nil, err
	}

	movie := NormalizeMovie(unwrapData(payload))
	if movie == nil {
		return nil, errors.New("сервер вернул пустой ответ вместо фильма")
	}
	return movie, nil
}

// CreateMovie создает фильм и возвращает нормализованную запись из ответа.
func (c *httpClient) CreateMovie(ctx context.Context, req models.MovieRequest, token string) (*models.Movie, error) {
	payload, err := c.do(ctx, http.MethodPost, "/movies", req, token)
	if err != nil {
		return nil, err
	}

	movie := NormalizeMovie(unwrapData(payload))
	if movie == nil {
		return nil, errors.New("сервер вернул пустой ответ при создании фильма")
	}
	return movie, nil
}

// UpdateMovie обновляет фильм и возвращает нормализованную запись из ответа.
func (c *httpClient) UpdateMovie(
	ctx context.Context,
	movieID string,
	req models.MovieRequest,
	token string,
) (*models.Movie, error) {
	payload, err := c.do(ctx, http.MethodPut, "/movies/"+movieID, req, token)
	if err != nil {
		return nil, err
	}

	movie := NormalizeMovie(unwrapData(payload))
	if movie == nil {
		return nil, errors.New("сервер вернул пустой ответ при обновлении фильма")
	}
	return movie, nil
}

// DeleteMovie удаляет фильм. Успехом считается любой 2xx (200 или 204).
func (c *httpClient) DeleteMovie(ctx context.Context, movieID string, token string) error {
	_, err := c.do(ctx, http.MethodDelete, "/movies/"+movieID, nil, token)
	return err
}

// ListComments возвращает нормализованный список комментариев к фильму.
func (c *httpClient) ListComments(ctx context.Context, movieID string) ([]models.Comment, error) {
	payload, err := c.do(ctx, http.MethodGet, "/movies/"+movieID+"/comments", nil, "")
	if err != nil {
		return nil, err
	}

	items := unwrapList(payload)
	comments := make([]models.Comment, 0, len(items))
	for _, item := range items {
		if comment := NormalizeComment(item); comment != nil {
			comments = append(comments, *comment)
		}
	}
	return comments, nil
}

// AddComment добавляет комментарий и возвращает нормализованную запись из ответа.
func (c *httpClient) AddComment(
	ctx context.Context,
	movieID string,
	req models.CommentRequest,
	token string,
) (*models.Comment, error) {
	payload, err := c.do(ctx, http.MethodPost, "/movies/"+movieID+"/comments", req, token)
	if err != nil {
		return nil, err
	}

	comment := NormalizeComment(unwrapData(payload))
	if comment == nil {
		return nil, errors.New("сервер вернул пустой ответ при добавлении комментария")
	}
	return comment, nil
}

// sessionFromPayload собирает сессию из ответа на вход/регистрацию.
func sessionFromPayload(payload any) (*models.Session, error) {
	data, ok := unwrapData(payload).(map[string]any)
	if !ok {
		return nil, errors.New("сервер вернул неожиданный формат ответа аутентификации")
	}

	token, _ := data["token"].(string)
	if token == "" {
		return nil, errors.New("сервер вернул пустой токен")
	}

	user := NormalizeUser(data["user"])
	if user == nil {
		return nil, errors.New("сервер не вернул профиль пользователя")
	}

	return &models.Session{Token: token, User: *user}, nil
}
