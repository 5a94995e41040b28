package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cineshelf/cineshelf/internal/server/models"
)

// CommentRepository определяет методы для работы с комментариями в хранилище.
// Комментарии только добавляются: операций обновления и удаления нет.
type CommentRepository interface {
	ListCommentsByMovie(ctx context.Context, movieID string) ([]models.Comment, error)
	CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error)
}

// postgresCommentRepository реализует CommentRepository для PostgreSQL.
type postgresCommentRepository struct {
	db *sqlx.DB
}

// NewPostgresCommentRepository создает новый экземпляр репозитория комментариев для PostgreSQL.
func NewPostgresCommentRepository(db *sqlx.DB) CommentRepository {
	return &postgresCommentRepository{db: db}
}

// ListCommentsByMovie возвращает комментарии фильма с именами авторов, новые первыми.
func (r *postgresCommentRepository) ListCommentsByMovie(
	ctx context.Context,
	movieID string,
) ([]models.Comment, error) {
	query := `SELECT c.id, c.movie_id, c.author_id, u.username AS author_name, c.text, c.created_at
	          FROM comments c
	          JOIN users u ON u.id = c.author_id
	          WHERE c.movie_id=$1
	          ORDER BY c.created_at DESC`
	comments := []models.Comment{}

	if err := r.db.SelectContext(ctx, &comments, query, movieID); err != nil {
		log.Printf("[Repo] Ошибка получения комментариев фильма '%s': %v", movieID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на список комментариев: %w", err)
	}

	return comments, nil
}

// CreateComment создает комментарий и возвращает созданную запись с именем автора.
func (r *postgresCommentRepository) CreateComment(
	ctx context.Context,
	comment *models.Comment,
) (*models.Comment, error) {
	query := `WITH inserted AS (
	              INSERT INTO comments (id, movie_id, author_id, text)
	              VALUES ($1, $2, $3, $4)
	              RETURNING id, movie_id, author_id, text, created_at
	          )
	          SELECT i.id, i.movie_id, i.author_id, u.username AS author_name, i.text, i.created_at
	          FROM inserted i
	          JOIN users u ON u.id = i.author_id`
	commentID := uuid.NewString()
	var created models.Comment

	err := r.db.GetContext(ctx, &created, query, commentID, comment.MovieID, comment.AuthorID, comment.Text)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Автор исчез между проверкой токена и вставкой
			return nil, ErrUserNotFound
		}
		log.Printf("[Repo] Ошибка создания комментария к фильму '%s': %v", comment.MovieID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на создание комментария: %w", err)
	}

	log.Printf("[Repo] Комментарий %s к фильму '%s' успешно создан", created.ID, created.MovieID)
	return &created, nil
}
