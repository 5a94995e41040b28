package api

import (
	"strconv"
	"time"

	"github.com/cineshelf/cineshelf/models"
)

// Слой совместимости: имена полей в ответах сервера менялись от ревизии к
// ревизии (id/_id, year/releaseYear, ownerId/userId/owner._id и т.д.), и в
// проде одновременно встречаются старые и новые формы. Для каждого
// канонического поля здесь задан упорядоченный список кандидатов-аксессоров;
// берется первый, который что-то вернул. Все исторические варианты имен
// должны жить только в этом файле.

// accessor извлекает значение-кандидат из сырого объекта ответа.
type accessor func(map[string]any) (any, bool)

// field возвращает аксессор верхнеуровневого поля.
func field(name string) accessor {
	return func(m map[string]any) (any, bool) {
		v, ok := m[name]
		return v, ok
	}
}

// nested возвращает аксессор поля внутри вложенного объекта (например owner._id).
func nested(outer, inner string) accessor {
	return func(m map[string]any) (any, bool) {
		child, ok := m[outer].(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok := child[inner]
		return v, ok
	}
}

// pickString возвращает первую непустую строку среди кандидатов.
func pickString(m map[string]any, candidates ...accessor) string {
	for _, get := range candidates {
		if v, ok := get(m); ok {
			if s, isString := v.(string); isString && s != "" {
				return s
			}
		}
	}
	return ""
}

// pickInt возвращает первое числовое значение среди кандидатов.
// JSON-числа приходят как float64, но строки с числом тоже принимаем.
func pickInt(m map[string]any, candidates ...accessor) int {
	for _, get := range candidates {
		v, ok := get(m)
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		case string:
			if parsed, err := strconv.Atoi(n); err == nil {
				return parsed
			}
		}
	}
	return 0
}

// pickCreatedAt возвращает первую непустую метку времени,
// либо текущее время в RFC 3339, если сервер ее не прислал.
func pickCreatedAt(m map[string]any, candidates ...accessor) string {
	if v := pickString(m, candidates...); v != "" {
		return v
	}
	return time.Now().UTC().Format(time.RFC3339)
}

// NormalizeUser приводит сырой объект пользователя к канонической форме.
// nil на входе дает nil на выходе; повторная нормализация ничего не меняет.
func NormalizeUser(v any) *models.User {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	username := pickString(m, field("username"), field("name"), field("email"))
	if username == "" {
		username = "User"
	}

	return &models.User{
		ID:       pickString(m, field("id"), field("_id")),
		Username: username,
		Email:    pickString(m, field("email")),
	}
}

// NormalizeMovie приводит сырой объект фильма к канонической форме.
// nil на входе дает nil на выходе; повторная нормализация ничего не меняет.
func NormalizeMovie(v any) *models.Movie {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	return &models.Movie{
		ID:        pickString(m, field("id"), field("_id")),
		Title:     pickString(m, field("title")),
		Year:      pickInt(m, field("year"), field("releaseYear")),
		Genre:     pickString(m, field("genre")),
		Poster:    pickString(m, field("poster"), field("imageUrl")),
		Summary:   pickString(m, field("summary"), field("description")),
		OwnerID:   pickString(m, field("ownerId"), field("userId"), nested("owner", "_id")),
		CreatedAt: pickCreatedAt(m, field("createdAt"), field("created_at")),
	}
}

// NormalizeComment приводит сырой объект комментария к канонической форме.
// nil на входе дает nil на выходе; повторная нормализация ничего не меняет.
func NormalizeComment(v any) *models.Comment {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	authorName := pickString(m,
		field("authorName"),
		nested("author", "username"),
		nested("author", "name"),
	)
	if authorName == "" {
		authorName = "Anonymous"
	}

	return &models.Comment{
		ID:         pickString(m, field("id"), field("_id")),
		MovieID:    pickString(m, field("movieId"), field("movie"), nested("movie", "_id")),
		AuthorID:   pickString(m, field("authorId"), field("userId"), nested("author", "_id")),
		AuthorName: authorName,
		Text:       pickString(m, field("text"), field("content")),
		CreatedAt:  pickCreatedAt(m, field("createdAt"), field("created_at")),
	}
}
