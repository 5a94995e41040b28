package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cineshelf/cineshelf/internal/server/models"
	"github.com/cineshelf/cineshelf/internal/server/repository"
	"github.com/cineshelf/cineshelf/internal/server/services"
)

func TestCommentService_ListComments(t *testing.T) {
	ctx := context.Background()

	t.Run("Комментарии существующего фильма", func(t *testing.T) {
		commentRepo := new(mockCommentRepository)
		movieRepo := new(mockMovieRepository)
		movieRepo.On("GetMovieByID", ctx, "m1").
			Return(&models.Movie{ID: "m1"}, nil).Once()
		commentRepo.On("ListCommentsByMovie", ctx, "m1").
			Return([]models.Comment{{ID: "c1", AuthorName: "ivan"}}, nil).Once()

		svc := services.NewCommentService(commentRepo, movieRepo)
		comments, err := svc.ListComments(ctx, "m1")
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, "ivan", comments[0].AuthorName)
	})

	t.Run("Фильм не найден", func(t *testing.T) {
		commentRepo := new(mockCommentRepository)
		movieRepo := new(mockMovieRepository)
		movieRepo.On("GetMovieByID", ctx, "nope").
			Return(nil, repository.ErrMovieNotFound).Once()

		svc := services.NewCommentService(commentRepo, movieRepo)
		comments, err := svc.ListComments(ctx, "nope")
		require.ErrorIs(t, err, services.ErrMovieNotFound)
		assert.Nil(t, comments)
		commentRepo.AssertNotCalled(t, "ListCommentsByMovie", ctx, "nope")
	})
}

func TestCommentService_AddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("Успешное добавление", func(t *testing.T) {
		commentRepo := new(mockCommentRepository)
		movieRepo := new(mockMovieRepository)
		movieRepo.On("GetMovieByID", ctx, "m1").
			Return(&models.Movie{ID: "m1"}, nil).Once()
		commentRepo.On("CreateComment", ctx, mock.AnythingOfType("*models.Comment")).
			Return(&models.Comment{ID: "c1", MovieID: "m1", AuthorID: "u1", AuthorName: "ivan"}, nil).Once()

		svc := services.NewCommentService(commentRepo, movieRepo)
		comment, err := svc.AddComment(ctx, "u1", "m1", "Отлично")
		require.NoError(t, err)
		assert.Equal(t, "c1", comment.ID)
		assert.Equal(t, "ivan", comment.AuthorName)
	})

	t.Run("Фильм не найден", func(t *testing.T) {
		commentRepo := new(mockCommentRepository)
		movieRepo := new(mockMovieRepository)
		movieRepo.On("GetMovieByID", ctx, "nope").
			Return(nil, repository.ErrMovieNotFound).Once()

		svc := services.NewCommentService(commentRepo, movieRepo)
		comment, err := svc.AddComment(ctx, "u1", "nope", "Отлично")
		require.ErrorIs(t, err, services.ErrMovieNotFound)
		assert.Nil(t, comment)
	})
}
