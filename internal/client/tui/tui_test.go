//nolint:testpackage // Тесты в том же пакете для доступа к приватным компонентам
package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cineshelf/cineshelf/internal/client/app"
	"github.com/cineshelf/cineshelf/internal/client/router"
	"github.com/cineshelf/cineshelf/models"
)

// stubClient - заглушка API клиента: сетевые вызовы в тестах не выполняются,
// команды bubbletea не запускаются.
type stubClient struct{}

func (stubClient) Register(context.Context, models.RegisterRequest) (*models.Session, error) {
	return nil, nil
}

func (stubClient) Login(context.Context, models.LoginRequest) (*models.Session, error) {
	return nil, nil
}

func (stubClient) Logout(context.Context, string) error { return nil }

func (stubClient) ListMovies(context.Context) ([]models.Movie, error) { return nil, nil }

func (stubClient) GetMovie(context.Context, string) (*models.Movie, error) { return nil, nil }

func (stubClient) CreateMovie(context.Context, models.MovieRequest, string) (*models.Movie, error) {
	return nil, nil
}

func (stubClient) UpdateMovie(context.Context, string, models.MovieRequest, string) (*models.Movie, error) {
	return nil, nil
}

func (stubClient) DeleteMovie(context.Context, string, string) error { return nil }

func (stubClient) ListComments(context.Context, string) ([]models.Comment, error) {
	return nil, nil
}

func (stubClient) AddComment(context.Context, string, models.CommentRequest, string) (*models.Comment, error) {
	return nil, nil
}

// stubStore - хранилище сессии в памяти.
type stubStore struct {
	sess *models.Session
}

func (s *stubStore) Read() *models.Session { return s.sess }

func (s *stubStore) Write(sess *models.Session) error {
	s.sess = sess
	return nil
}

func newTestModel(t *testing.T, sess *models.Session) *model {
	t.Helper()
	r := router.New("")
	state := app.New(r, &stubStore{sess: sess})
	t.Cleanup(state.Close)
	m := initModel(state, stubClient{})
	m.lastRouteShown = state.Route
	return &m
}

func testSession() *models.Session {
	return &models.Session{
		Token: "jwt",
		User:  models.User{ID: "u1", Username: "ivan", Email: "ivan@example.com"},
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case keyEnter:
		return tea.KeyMsg{Type: tea.KeyEnter}
	case keyEsc:
		return tea.KeyMsg{Type: tea.KeyEsc}
	case keyTab:
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestMoviesLoadedPopulatesList(t *testing.T) {
	m := newTestModel(t, nil)

	_, _ = m.Update(moviesLoadedMsg{movies: []models.Movie{
		{ID: "m1", Title: "Solaris", CreatedAt: "2026-01-01T00:00:00Z"},
		{ID: "m2", Title: "Stalker", CreatedAt: "2026-01-02T00:00:00Z"},
	}})

	require.Len(t, m.movieList.Items(), 2)
	// Сортировка по убыванию createdAt
	first, ok := m.movieList.Items()[0].(movieItem)
	require.True(t, ok)
	assert.Equal(t, "m2", first.movie.ID)
	assert.False(t, m.state.Loading)
}

func TestSearchFiltersList(t *testing.T) {
	m := newTestModel(t, nil)
	_, _ = m.Update(moviesLoadedMsg{movies: []models.Movie{
		{ID: "m1", Title: "Alpha", Genre: "Drama", CreatedAt: "2026-01-01T00:00:00Z"},
		{ID: "m2", Title: "Beta", Genre: "Comedy", CreatedAt: "2026-01-02T00:00:00Z"},
	}})

	// Фокус на поиск и ввод запроса
	_, _ = m.Update(keyMsg("/"))
	require.True(t, m.searchFocus)
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("al")})

	require.Len(t, m.movieList.Items(), 1)
	item, ok := m.movieList.Items()[0].(movieItem)
	require.True(t, ok)
	assert.Equal(t, "Alpha", item.movie.Title)
}

func TestAuthSuccessStoresSessionAndNavigatesHome(t *testing.T) {
	m := newTestModel(t, nil)
	m.state.Navigate("/login")
	m.prepareRoute()

	_, cmd := m.Update(authSuccessMsg{session: testSession(), text: "С возвращением, ivan."})

	require.NotNil(t, m.state.Session)
	assert.Equal(t, "jwt", m.state.Token())
	assert.Equal(t, router.PageHome, m.state.Route.Page)
	require.NotNil(t, m.state.Notice)
	assert.Equal(t, app.NoticeSuccess, m.state.Notice.Kind)
	assert.NotNil(t, cmd, "должен запуститься таймер скрытия уведомления")
}

func TestMovieCreatedNavigatesToDetails(t *testing.T) {
	m := newTestModel(t, testSession())

	_, _ = m.Update(movieCreatedMsg{movie: models.Movie{ID: "m9", Title: "Mirror"}})

	assert.Equal(t, router.PageDetails, m.state.Route.Page)
	assert.Equal(t, "m9", m.state.Route.MovieID)
	require.NotNil(t, m.state.Notice)
	assert.Equal(t, "Фильм создан.", m.state.Notice.Text)
	require.Len(t, m.state.Movies, 1)
}

func TestMovieDeletedNavigatesHome(t *testing.T) {
	m := newTestModel(t, testSession())
	_, _ = m.Update(moviesLoadedMsg{movies: []models.Movie{{ID: "m1", Title: "Solaris"}}})

	_, _ = m.Update(movieDeletedMsg{movieID: "m1"})

	assert.Equal(t, router.PageHome, m.state.Route.Page)
	assert.Empty(t, m.state.Movies)
	assert.Empty(t, m.movieList.Items())
}

func TestCreateWithoutSessionRedirectsToLogin(t *testing.T) {
	m := newTestModel(t, nil)

	// "n" на домашней странице без сессии: уведомление + переход на вход,
	// сетевых команд не запускается
	_, _ = m.Update(keyMsg("n"))

	assert.Equal(t, router.PageLogin, m.state.Route.Page)
	require.NotNil(t, m.state.Notice)
	assert.Equal(t, app.NoticeError, m.state.Notice.Kind)
}

func TestCreateWithSessionOpensForm(t *testing.T) {
	m := newTestModel(t, testSession())

	_, _ = m.Update(keyMsg("n"))

	assert.Equal(t, router.PageCreate, m.state.Route.Page)
	assert.Empty(t, m.formMovieID)
	assert.Equal(t, formFieldTitle, m.formFocus)
}

func TestFormValidation(t *testing.T) {
	m := newTestModel(t, testSession())
	m.state.Navigate("/create")
	m.prepareRoute()

	tests := []struct {
		name       string
		title      string
		year       string
		genre      string
		summary    string
		wantErrors []int
	}{
		{
			name:       "Все поля пустые",
			wantErrors: []int{formFieldTitle, formFieldYear, formFieldGenre, formFieldSummary},
		},
		{
			name:  "Год не число",
			title: "X", year: "abc", genre: "Drama", summary: "...",
			wantErrors: []int{formFieldYear},
		},
		{
			name:  "Год раньше кинематографа",
			title: "X", year: "1800", genre: "Drama", summary: "...",
			wantErrors: []int{formFieldYear},
		},
		{
			name:  "Валидная форма",
			title: "X", year: "1972", genre: "Drama", summary: "...",
			wantErrors: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.formInputs[formFieldTitle].SetValue(tt.title)
			m.formInputs[formFieldYear].SetValue(tt.year)
			m.formInputs[formFieldGenre].SetValue(tt.genre)
			m.formInputs[formFieldSummary].SetValue(tt.summary)

			req, valid := m.validateMovieForm()
			if len(tt.wantErrors) > 0 {
				assert.False(t, valid)
				for _, field := range tt.wantErrors {
					assert.Contains(t, m.formErrors, field)
				}
			} else {
				require.True(t, valid)
				assert.Equal(t, "X", req.Title)
				assert.Equal(t, 1972, req.Year)
			}
		})
	}
}

func TestEditFormPrefilledFromCache(t *testing.T) {
	m := newTestModel(t, testSession())
	_, _ = m.Update(moviesLoadedMsg{movies: []models.Movie{
		{ID: "m1", Title: "Solaris", Year: 1972, Genre: "Sci-Fi", Summary: "...", OwnerID: "u1"},
	}})

	m.state.Navigate("/movies/m1/edit")
	m.prepareRoute()

	assert.Equal(t, "m1", m.formMovieID)
	assert.Equal(t, "Solaris", m.formInputs[formFieldTitle].Value())
	assert.Equal(t, "1972", m.formInputs[formFieldYear].Value())
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m := newTestModel(t, testSession())
	_, _ = m.Update(moviesLoadedMsg{movies: []models.Movie{
		{ID: "m1", Title: "Solaris", OwnerID: "u1"},
	}})
	m.state.Navigate("/movies/m1")
	m.prepareRoute()

	// "d" включает режим подтверждения, но ничего не удаляет
	_, cmd := m.Update(keyMsg("d"))
	assert.True(t, m.confirmDelete)
	assert.Equal(t, "m1", m.deleteMovieID)
	assert.Nil(t, cmd)

	// Любая клавиша, кроме y, отменяет
	_, _ = m.Update(keyMsg("n"))
	assert.False(t, m.confirmDelete)
	assert.Empty(t, m.deleteMovieID)

	// y после повторного d запускает команду удаления
	_, _ = m.Update(keyMsg("d"))
	_, cmd = m.Update(keyMsg("y"))
	assert.False(t, m.confirmDelete)
	assert.NotNil(t, cmd)
}

func TestDeleteHiddenForNonOwner(t *testing.T) {
	m := newTestModel(t, testSession())
	_, _ = m.Update(moviesLoadedMsg{movies: []models.Movie{
		{ID: "m1", Title: "Solaris", OwnerID: "u2"},
	}})
	m.state.Navigate("/movies/m1")
	m.prepareRoute()

	_, _ = m.Update(keyMsg("d"))
	assert.False(t, m.confirmDelete, "чужой фильм нельзя выбрать для удаления")

	_, _ = m.Update(keyMsg("e"))
	assert.Equal(t, router.PageDetails, m.state.Route.Page, "редактирование чужого фильма недоступно")
}

func TestStaleDetailResultIgnored(t *testing.T) {
	m := newTestModel(t, nil)

	m.state.Navigate("/movies/m1")
	m.prepareRoute()
	staleLoads := m.state.TakeLoads()

	m.state.Navigate("/movies/m2")
	m.prepareRoute()
	_ = m.state.TakeLoads()

	// Поздний ответ для m1 приходит после перехода на m2
	_, _ = m.Update(movieDetailLoadedMsg{gen: staleLoads.MovieGen, movie: &models.Movie{ID: "m1"}})
	assert.Nil(t, m.state.ActiveMovie)
}

func TestNoticeExpiry(t *testing.T) {
	m := newTestModel(t, nil)

	seq := m.state.SetNotice(app.NoticeError, "Ошибка")
	_, _ = m.Update(noticeExpiredMsg{seq: seq})
	assert.Nil(t, m.state.Notice)

	// Устаревший таймер не скрывает новое уведомление
	seq = m.state.SetNotice(app.NoticeError, "Первое")
	m.state.SetNotice(app.NoticeSuccess, "Второе")
	_, _ = m.Update(noticeExpiredMsg{seq: seq})
	require.NotNil(t, m.state.Notice)
	assert.Equal(t, "Второе", m.state.Notice.Text)
}

func TestLogoutClearsSession(t *testing.T) {
	m := newTestModel(t, testSession())

	_, _ = m.Update(logoutDoneMsg{})

	assert.Nil(t, m.state.Session)
	assert.Equal(t, router.PageHome, m.state.Route.Page)
}

func TestAuthPageFieldCycle(t *testing.T) {
	m := newTestModel(t, nil)
	m.state.Navigate("/register")
	m.prepareRoute()
	require.Equal(t, authFieldUsername, m.authFocus)

	_, _ = m.Update(keyMsg(keyTab))
	assert.Equal(t, authFieldEmail, m.authFocus)

	_, _ = m.Update(keyMsg(keyTab))
	assert.Equal(t, authFieldPassword, m.authFocus)

	// По кругу обратно к имени пользователя
	_, _ = m.Update(keyMsg(keyTab))
	assert.Equal(t, authFieldUsername, m.authFocus)

	// На странице входа цикл начинается с email
	m.state.Navigate("/login")
	m.prepareRoute()
	require.Equal(t, authFieldEmail, m.authFocus)
	_, _ = m.Update(keyMsg(keyTab))
	assert.Equal(t, authFieldPassword, m.authFocus)
	_, _ = m.Update(keyMsg(keyTab))
	assert.Equal(t, authFieldEmail, m.authFocus)
}

func TestCreateRouteRestrictedForGuest(t *testing.T) {
	m := newTestModel(t, nil)

	// Прямой переход по адресу, минуя клавиши домашней страницы
	m.state.Navigate("/create")
	m.prepareRoute()

	view := m.View()
	assert.Contains(t, view, "Доступ ограничен")
	assert.NotContains(t, view, "Новый фильм", "форма не должна отрисовываться без сессии")

	// Клавиши формы не доходят до полей ввода
	_, _ = m.Update(keyMsg("x"))
	assert.Empty(t, m.formInputs[formFieldTitle].Value())

	// l ведет на страницу входа
	_, _ = m.Update(keyMsg("l"))
	assert.Equal(t, router.PageLogin, m.state.Route.Page)
}

func TestEditRouteRestrictedForNonOwner(t *testing.T) {
	m := newTestModel(t, testSession())
	_, _ = m.Update(moviesLoadedMsg{movies: []models.Movie{
		{ID: "m1", Title: "Solaris", OwnerID: "u2"},
	}})

	m.state.Navigate("/movies/m1/edit")
	m.prepareRoute()

	view := m.View()
	assert.Contains(t, view, "Доступ ограничен")
	assert.NotContains(t, view, "Редактирование фильма")

	_, _ = m.Update(keyMsg(keyEnter))
	assert.Equal(t, router.PageHome, m.state.Route.Page)
}

func TestEditRouteOpenForOwner(t *testing.T) {
	m := newTestModel(t, testSession())
	_, _ = m.Update(moviesLoadedMsg{movies: []models.Movie{
		{ID: "m1", Title: "Solaris", OwnerID: "u1"},
	}})

	m.state.Navigate("/movies/m1/edit")
	m.prepareRoute()

	assert.Contains(t, m.View(), "Редактирование фильма")
}

func TestUnknownRouteShowsNotFound(t *testing.T) {
	m := newTestModel(t, nil)
	m.state.Navigate("/definitely/not/a/page")
	m.prepareRoute()

	require.Equal(t, router.PageNotFound, m.state.Route.Page)
	assert.Contains(t, m.View(), "Страница не найдена")

	_, _ = m.Update(keyMsg(keyEnter))
	assert.Equal(t, router.PageHome, m.state.Route.Page)
}
