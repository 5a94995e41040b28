package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cineshelf/cineshelf/internal/client/api"
	"github.com/cineshelf/cineshelf/internal/client/app"
	"github.com/cineshelf/cineshelf/models"
)

// Команды выполняются в отдельных горутинах bubbletea и не трогают состояние:
// результат возвращается сообщением и применяется в Update. Запросы не
// отменяются и не ретраятся; поздний ответ устаревшего запроса отбрасывается
// по номеру поколения (gen) в Update.

// --- Сообщения загрузки данных --- //

type moviesLoadedMsg struct {
	movies []models.Movie
}

type moviesLoadErrMsg struct {
	err error
}

type movieDetailLoadedMsg struct {
	gen   int
	movie *models.Movie
}

type movieDetailErrMsg struct {
	gen int
	err error
}

type commentsLoadedMsg struct {
	gen      int
	comments []models.Comment
}

type commentsErrMsg struct {
	gen int
	err error
}

// --- Сообщения аутентификации --- //

type authSuccessMsg struct {
	session *models.Session
	text    string // Текст приветственного уведомления
}

type authErrMsg struct {
	err error
}

type logoutDoneMsg struct {
	err error // Ошибку показываем, но сессию чистим в любом случае
}

// --- Сообщения мутаций --- //

type movieCreatedMsg struct {
	movie models.Movie
}

type movieUpdatedMsg struct {
	movie models.Movie
}

type movieDeletedMsg struct {
	movieID string
}

type commentAddedMsg struct {
	comment models.Comment
}

type mutationErrMsg struct {
	err error
}

// noticeExpiredMsg приходит по таймеру скрытия уведомления.
type noticeExpiredMsg struct {
	seq int
}

// expireNoticeCmd скрывает уведомление с номером seq через app.NoticeTTL.
func expireNoticeCmd(seq int) tea.Cmd {
	return tea.Tick(app.NoticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// loadMoviesCmd загружает список фильмов.
func loadMoviesCmd(client api.Client) tea.Cmd {
	return func() tea.Msg {
		movies, err := client.ListMovies(context.Background())
		if err != nil {
			return moviesLoadErrMsg{err: err}
		}
		return moviesLoadedMsg{movies: movies}
	}
}

// loadMovieDetailCmd загружает детали фильма для страницы деталей/редактирования.
func loadMovieDetailCmd(client api.Client, movieID string, gen int) tea.Cmd {
	return func() tea.Msg {
		movie, err := client.GetMovie(context.Background(), movieID)
		if err != nil {
			return movieDetailErrMsg{gen: gen, err: err}
		}
		return movieDetailLoadedMsg{gen: gen, movie: movie}
	}
}

// loadCommentsCmd загружает комментарии фильма.
func loadCommentsCmd(client api.Client, movieID string, gen int) tea.Cmd {
	return func() tea.Msg {
		comments, err := client.ListComments(context.Background(), movieID)
		if err != nil {
			return commentsErrMsg{gen: gen, err: err}
		}
		return commentsLoadedMsg{gen: gen, comments: comments}
	}
}

// loginCmd выполняет вход через API.
func loginCmd(client api.Client, req models.LoginRequest) tea.Cmd {
	return func() tea.Msg {
		sess, err := client.Login(context.Background(), req)
		if err != nil {
			return authErrMsg{err: err}
		}
		return authSuccessMsg{
			session: sess,
			text:    "С возвращением, " + sess.User.Username + ".",
		}
	}
}

// registerCmd выполняет регистрацию через API.
func registerCmd(client api.Client, req models.RegisterRequest) tea.Cmd {
	return func() tea.Msg {
		sess, err := client.Register(context.Background(), req)
		if err != nil {
			return authErrMsg{err: err}
		}
		return authSuccessMsg{
			session: sess,
			text:    "Добро пожаловать! Аккаунт готов.",
		}
	}
}

// logoutCmd завершает сессию на сервере.
func logoutCmd(client api.Client, token string) tea.Cmd {
	return func() tea.Msg {
		return logoutDoneMsg{err: client.Logout(context.Background(), token)}
	}
}

// createMovieCmd создает фильм.
func createMovieCmd(client api.Client, req models.MovieRequest, token string) tea.Cmd {
	return func() tea.Msg {
		movie, err := client.CreateMovie(context.Background(), req, token)
		if err != nil {
			return mutationErrMsg{err: err}
		}
		return movieCreatedMsg{movie: *movie}
	}
}

// updateMovieCmd обновляет фильм.
func updateMovieCmd(client api.Client, movieID string, req models.MovieRequest, token string) tea.Cmd {
	return func() tea.Msg {
		movie, err := client.UpdateMovie(context.Background(), movieID, req, token)
		if err != nil {
			return mutationErrMsg{err: err}
		}
		return movieUpdatedMsg{movie: *movie}
	}
}

// deleteMovieCmd удаляет фильм. Вызывается только после подтверждения.
func deleteMovieCmd(client api.Client, movieID string, token string) tea.Cmd {
	return func() tea.Msg {
		if err := client.DeleteMovie(context.Background(), movieID, token); err != nil {
			return mutationErrMsg{err: err}
		}
		return movieDeletedMsg{movieID: movieID}
	}
}

// addCommentCmd добавляет комментарий к фильму.
func addCommentCmd(client api.Client, movieID string, req models.CommentRequest, token string) tea.Cmd {
	return func() tea.Msg {
		comment, err := client.AddComment(context.Background(), movieID, req, token)
		if err != nil {
			return mutationErrMsg{err: err}
		}
		return commentAddedMsg{comment: *comment}
	}
}
