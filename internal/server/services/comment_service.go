package services

import (
	"context"
	"errors"
	"log"

	"github.com/cineshelf/cineshelf/internal/server/models"
	"github.com/cineshelf/cineshelf/internal/server/repository"
)

// CommentService определяет интерфейс для сервиса комментариев.
type CommentService interface {
	ListComments(ctx context.Context, movieID string) ([]models.Comment, error)
	AddComment(ctx context.Context, authorID, movieID, text string) (*models.Comment, error)
}

// Убедимся, что commentService удовлетворяет интерфейсу CommentService.
var _ CommentService = (*commentService)(nil)

type commentService struct {
	commentRepo repository.CommentRepository
	movieRepo   repository.MovieRepository
}

// NewCommentService создает новый экземпляр сервиса комментариев.
func NewCommentService(
	commentRepo repository.CommentRepository,
	movieRepo repository.MovieRepository,
) CommentService {
	return &commentService{commentRepo: commentRepo, movieRepo: movieRepo}
}

// ListComments возвращает комментарии фильма. Фильм должен существовать.
func (s *commentService) ListComments(ctx context.Context, movieID string) ([]models.Comment, error) {
	if _, err := s.movieRepo.GetMovieByID(ctx, movieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return nil, ErrMovieNotFound
		}
		log.Printf("[CommentService] Ошибка проверки фильма '%s': %v", movieID, err)
		return nil, errors.New("внутренняя ошибка сервера при получении комментариев")
	}

	comments, err := s.commentRepo.ListCommentsByMovie(ctx, movieID)
	if err != nil {
		log.Printf("[CommentService] Ошибка получения комментариев фильма '%s': %v", movieID, err)
		return nil, errors.New("внутренняя ошибка сервера при получении комментариев")
	}
	return comments, nil
}

// AddComment добавляет комментарий от имени authorID к фильму movieID.
func (s *commentService) AddComment(
	ctx context.Context,
	authorID, movieID, text string,
) (*models.Comment, error) {
	if _, err := s.movieRepo.GetMovieByID(ctx, movieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return nil, ErrMovieNotFound
		}
		log.Printf("[CommentService] Ошибка проверки фильма '%s': %v", movieID, err)
		return nil, errors.New("внутренняя ошибка сервера при добавлении комментария")
	}

	comment := &models.Comment{
		MovieID:  movieID,
		AuthorID: authorID,
		Text:     text,
	}

	created, err := s.commentRepo.CreateComment(ctx, comment)
	if err != nil {
		log.Printf("[CommentService] Ошибка создания комментария к фильму '%s': %v", movieID, err)
		return nil, errors.New("внутренняя ошибка сервера при добавлении комментария")
	}

	log.Printf("[CommentService] Пользователь %s прокомментировал фильм '%s'", authorID, movieID)
	return created, nil
}
