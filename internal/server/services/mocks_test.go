package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cineshelf/cineshelf/internal/server/models"
)

// Моки репозиториев на testify/mock.

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user *models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *mockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMovieRepository struct {
	mock.Mock
}

func (m *mockMovieRepository) ListMovies(ctx context.Context) ([]models.Movie, error) {
	args := m.Called(ctx)
	if movies, ok := args.Get(0).([]models.Movie); ok {
		return movies, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMovieRepository) GetMovieByID(ctx context.Context, id string) (*models.Movie, error) {
	args := m.Called(ctx, id)
	if movie, ok := args.Get(0).(*models.Movie); ok {
		return movie, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMovieRepository) CreateMovie(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	args := m.Called(ctx, movie)
	if created, ok := args.Get(0).(*models.Movie); ok {
		return created, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMovieRepository) UpdateMovie(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	args := m.Called(ctx, movie)
	if updated, ok := args.Get(0).(*models.Movie); ok {
		return updated, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMovieRepository) DeleteMovie(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockCommentRepository struct {
	mock.Mock
}

func (m *mockCommentRepository) ListCommentsByMovie(
	ctx context.Context,
	movieID string,
) ([]models.Comment, error) {
	args := m.Called(ctx, movieID)
	if comments, ok := args.Get(0).([]models.Comment); ok {
		return comments, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCommentRepository) CreateComment(
	ctx context.Context,
	comment *models.Comment,
) (*models.Comment, error) {
	args := m.Called(ctx, comment)
	if created, ok := args.Get(0).(*models.Comment); ok {
		return created, args.Error(1)
	}
	return nil, args.Error(1)
}
