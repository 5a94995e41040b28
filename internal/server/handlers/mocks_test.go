package handlers_test

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/cineshelf/cineshelf/internal/server/models"
	"github.com/cineshelf/cineshelf/internal/server/services"
)

// Моки сервисов на testify/mock.

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(
	ctx context.Context,
	username, email, password string,
) (string, *models.User, error) {
	args := m.Called(ctx, username, email, password)
	var user *models.User
	if u, ok := args.Get(1).(*models.User); ok {
		user = u
	}
	return args.String(0), user, args.Error(2)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	args := m.Called(ctx, email, password)
	var user *models.User
	if u, ok := args.Get(1).(*models.User); ok {
		user = u
	}
	return args.String(0), user, args.Error(2)
}

type mockMovieService struct {
	mock.Mock
}

func (m *mockMovieService) ListMovies(ctx context.Context) ([]models.Movie, error) {
	args := m.Called(ctx)
	if movies, ok := args.Get(0).([]models.Movie); ok {
		return movies, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMovieService) GetMovie(ctx context.Context, id string) (*models.Movie, error) {
	args := m.Called(ctx, id)
	if movie, ok := args.Get(0).(*models.Movie); ok {
		return movie, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMovieService) CreateMovie(
	ctx context.Context,
	ownerID string,
	input services.MovieInput,
) (*models.Movie, error) {
	args := m.Called(ctx, ownerID, input)
	if movie, ok := args.Get(0).(*models.Movie); ok {
		return movie, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMovieService) UpdateMovie(
	ctx context.Context,
	userID, movieID string,
	input services.MovieInput,
) (*models.Movie, error) {
	args := m.Called(ctx, userID, movieID, input)
	if movie, ok := args.Get(0).(*models.Movie); ok {
		return movie, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMovieService) DeleteMovie(ctx context.Context, userID, movieID string) error {
	args := m.Called(ctx, userID, movieID)
	return args.Error(0)
}

type mockCommentService struct {
	mock.Mock
}

func (m *mockCommentService) ListComments(ctx context.Context, movieID string) ([]models.Comment, error) {
	args := m.Called(ctx, movieID)
	if comments, ok := args.Get(0).([]models.Comment); ok {
		return comments, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCommentService) AddComment(
	ctx context.Context,
	authorID, movieID, text string,
) (*models.Comment, error) {
	args := m.Called(ctx, authorID, movieID, text)
	if comment, ok := args.Get(0).(*models.Comment); ok {
		return comment, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPosterStorage struct {
	mock.Mock
}

func (m *mockPosterStorage) UploadPoster(
	ctx context.Context,
	objectKey string,
	reader io.Reader,
	size int64,
	contentType string,
) (string, error) {
	args := m.Called(ctx, objectKey, reader, size, contentType)
	return args.String(0), args.Error(1)
}
