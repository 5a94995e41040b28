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

// Кастомные ошибки репозитория фильмов.
var (
	ErrMovieNotFound = errors.New("фильм не найден")
)

// MovieRepository определяет методы для работы с фильмами в хранилище.
type MovieRepository interface {
	ListMovies(ctx context.Context) ([]models.Movie, error)
	GetMovieByID(ctx context.Context, id string) (*models.Movie, error)
	CreateMovie(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	UpdateMovie(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	DeleteMovie(ctx context.Context, id string) error
}

// postgresMovieRepository реализует MovieRepository для PostgreSQL.
type postgresMovieRepository struct {
	db *sqlx.DB
}

// NewPostgresMovieRepository создает новый экземпляр репозитория фильмов для PostgreSQL.
func NewPostgresMovieRepository(db *sqlx.DB) MovieRepository {
	return &postgresMovieRepository{db: db}
}

// ListMovies возвращает все фильмы, новые первыми.
func (r *postgresMovieRepository) ListMovies(ctx context.Context) ([]models.Movie, error) {
	query := `SELECT id, title, year, genre, poster, summary, owner_id, created_at, updated_at
	          FROM movies ORDER BY created_at DESC`
	movies := []models.Movie{}

	if err := r.db.SelectContext(ctx, &movies, query); err != nil {
		log.Printf("[Repo] Ошибка получения списка фильмов: %v", err)
		return nil, fmt.Errorf("ошибка выполнения запроса на список фильмов: %w", err)
	}

	return movies, nil
}

// GetMovieByID находит фильм по идентификатору.
func (r *postgresMovieRepository) GetMovieByID(ctx context.Context, id string) (*models.Movie, error) {
	query := `SELECT id, title, year, genre, poster, summary, owner_id, created_at, updated_at
	          FROM movies WHERE id=$1`
	var movie models.Movie

	err := r.db.GetContext(ctx, &movie, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("[Repo] Фильм с ID '%s' не найден", id)
			return nil, ErrMovieNotFound
		}
		log.Printf("[Repo] Ошибка при поиске фильма '%s': %v", id, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение фильма: %w", err)
	}

	return &movie, nil
}

// CreateMovie создает фильм и возвращает созданную запись с метками времени из БД.
func (r *postgresMovieRepository) CreateMovie(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	query := `INSERT INTO movies (id, title, year, genre, poster, summary, owner_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, title, year, genre, poster, summary, owner_id, created_at, updated_at`
	movieID := uuid.NewString()
	var created models.Movie

	err := r.db.GetContext(ctx, &created, query,
		movieID, movie.Title, movie.Year, movie.Genre, movie.Poster, movie.Summary, movie.OwnerID)
	if err != nil {
		log.Printf("[Repo] Ошибка создания фильма '%s': %v", movie.Title, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на создание фильма: %w", err)
	}

	log.Printf("[Repo] Фильм '%s' успешно создан с ID %s", created.Title, created.ID)
	return &created, nil
}

// UpdateMovie обновляет фильм и возвращает обновленную запись.
func (r *postgresMovieRepository) UpdateMovie(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	query := `UPDATE movies
	          SET title=$2, year=$3, genre=$4, poster=$5, summary=$6, updated_at=NOW()
	          WHERE id=$1
	          RETURNING id, title, year, genre, poster, summary, owner_id, created_at, updated_at`
	var updated models.Movie

	err := r.db.GetContext(ctx, &updated, query,
		movie.ID, movie.Title, movie.Year, movie.Genre, movie.Poster, movie.Summary)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		log.Printf("[Repo] Ошибка обновления фильма '%s': %v", movie.ID, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на обновление фильма: %w", err)
	}

	return &updated, nil
}

// DeleteMovie удаляет фильм по идентификатору.
// Комментарии удаляются каскадно на уровне схемы БД.
func (r *postgresMovieRepository) DeleteMovie(ctx context.Context, id string) error {
	query := `DELETE FROM movies WHERE id=$1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Printf("[Repo] Ошибка удаления фильма '%s': %v", id, err)
		return fmt.Errorf("ошибка выполнения запроса на удаление фильма: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка получения числа удаленных строк: %w", err)
	}
	if affected == 0 {
		return ErrMovieNotFound
	}

	log.Printf("[Repo] Фильм '%s' успешно удален", id)
	return nil
}
