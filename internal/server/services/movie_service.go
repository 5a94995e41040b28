package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/cineshelf/cineshelf/internal/server/models"
	"github.com/cineshelf/cineshelf/internal/server/repository"
)

// Кастомные ошибки сервиса фильмов.
var (
	ErrMovieNotFound = errors.New("фильм не найден")
	ErrNotOwner      = errors.New("фильм принадлежит другому пользователю")
)

// MovieInput - данные фильма, приходящие от клиента при создании/обновлении.
type MovieInput struct {
	Title   string
	Year    int
	Genre   string
	Poster  string
	Summary string
}

// MovieService определяет интерфейс для сервиса фильмов.
// Операции изменения проверяют владельца: чужой фильм трогать нельзя.
type MovieService interface {
	ListMovies(ctx context.Context) ([]models.Movie, error)
	GetMovie(ctx context.Context, id string) (*models.Movie, error)
	CreateMovie(ctx context.Context, ownerID string, input MovieInput) (*models.Movie, error)
	UpdateMovie(ctx context.Context, userID, movieID string, input MovieInput) (*models.Movie, error)
	DeleteMovie(ctx context.Context, userID, movieID string) error
}

// Убедимся, что movieService удовлетворяет интерфейсу MovieService.
var _ MovieService = (*movieService)(nil)

type movieService struct {
	movieRepo repository.MovieRepository
}

// NewMovieService создает новый экземпляр сервиса фильмов.
func NewMovieService(movieRepo repository.MovieRepository) MovieService {
	return &movieService{movieRepo: movieRepo}
}

// ListMovies возвращает все фильмы каталога.
func (s *movieService) ListMovies(ctx context.Context) ([]models.Movie, error) {
	movies, err := s.movieRepo.ListMovies(ctx)
	if err != nil {
		log.Printf("[MovieService] Ошибка получения списка фильмов: %v", err)
		return nil, errors.New("внутренняя ошибка сервера при получении списка фильмов")
	}
	return movies, nil
}

// GetMovie возвращает фильм по идентификатору.
func (s *movieService) GetMovie(ctx context.Context, id string) (*models.Movie, error) {
	movie, err := s.movieRepo.GetMovieByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return nil, ErrMovieNotFound
		}
		log.Printf("[MovieService] Ошибка получения фильма '%s': %v", id, err)
		return nil, errors.New("внутренняя ошибка сервера при получении фильма")
	}
	return movie, nil
}

// CreateMovie создает фильм от имени пользователя ownerID.
func (s *movieService) CreateMovie(
	ctx context.Context,
	ownerID string,
	input MovieInput,
) (*models.Movie, error) {
	movie := &models.Movie{
		Title:   input.Title,
		Year:    input.Year,
		Genre:   input.Genre,
		Poster:  input.Poster,
		Summary: input.Summary,
		OwnerID: ownerID,
	}

	created, err := s.movieRepo.CreateMovie(ctx, movie)
	if err != nil {
		log.Printf("[MovieService] Ошибка создания фильма '%s': %v", input.Title, err)
		return nil, errors.New("внутренняя ошибка сервера при создании фильма")
	}

	log.Printf("[MovieService] Пользователь %s создал фильм '%s' (ID: %s)", ownerID, created.Title, created.ID)
	return created, nil
}

// UpdateMovie обновляет фильм после проверки владельца.
func (s *movieService) UpdateMovie(
	ctx context.Context,
	userID, movieID string,
	input MovieInput,
) (*models.Movie, error) {
	existing, err := s.requireOwnership(ctx, userID, movieID)
	if err != nil {
		return nil, err
	}

	existing.Title = input.Title
	existing.Year = input.Year
	existing.Genre = input.Genre
	existing.Poster = input.Poster
	existing.Summary = input.Summary

	updated, err := s.movieRepo.UpdateMovie(ctx, existing)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return nil, ErrMovieNotFound
		}
		log.Printf("[MovieService] Ошибка обновления фильма '%s': %v", movieID, err)
		return nil, errors.New("внутренняя ошибка сервера при обновлении фильма")
	}

	log.Printf("[MovieService] Пользователь %s обновил фильм '%s'", userID, movieID)
	return updated, nil
}

// DeleteMovie удаляет фильм после проверки владельца.
func (s *movieService) DeleteMovie(ctx context.Context, userID, movieID string) error {
	if _, err := s.requireOwnership(ctx, userID, movieID); err != nil {
		return err
	}

	if err := s.movieRepo.DeleteMovie(ctx, movieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return ErrMovieNotFound
		}
		log.Printf("[MovieService] Ошибка удаления фильма '%s': %v", movieID, err)
		return errors.New("внутренняя ошибка сервера при удалении фильма")
	}

	log.Printf("[MovieService] Пользователь %s удалил фильм '%s'", userID, movieID)
	return nil
}

// requireOwnership загружает фильм и проверяет, что он принадлежит userID.
func (s *movieService) requireOwnership(
	ctx context.Context,
	userID, movieID string,
) (*models.Movie, error) {
	movie, err := s.movieRepo.GetMovieByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("ошибка получения фильма для проверки владельца: %w", err)
	}

	if movie.OwnerID != userID {
		log.Printf("[MovieService] Пользователь %s попытался изменить чужой фильм '%s' (владелец %s)",
			userID, movieID, movie.OwnerID)
		return nil, ErrNotOwner
	}

	return movie, nil
}
