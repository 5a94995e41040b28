package app_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cineshelf/cineshelf/internal/client/app"
	"github.com/cineshelf/cineshelf/internal/client/router"
	"github.com/cineshelf/cineshelf/models"
)

// memoryStore - хранилище сессии в памяти для тестов.
type memoryStore struct {
	sess     *models.Session
	writes   int
	writeErr error
}

func (s *memoryStore) Read() *models.Session { return s.sess }

func (s *memoryStore) Write(sess *models.Session) error {
	s.writes++
	if s.writeErr != nil {
		return s.writeErr
	}
	s.sess = sess
	return nil
}

func newTestApp(t *testing.T, sess *models.Session) (*app.App, *memoryStore, *router.Router) {
	t.Helper()
	store := &memoryStore{sess: sess}
	r := router.New("")
	a := app.New(r, store)
	t.Cleanup(a.Close)
	return a, store, r
}

func testSession() *models.Session {
	return &models.Session{
		Token: "jwt",
		User:  models.User{ID: "u1", Username: "ivan", Email: "ivan@example.com"},
	}
}

func TestNewReadsSessionAndNormalizesRoute(t *testing.T) {
	a, _, r := newTestApp(t, testSession())

	assert.Equal(t, "/", r.Fragment(), "пустой фрагмент нормализуется к корню")
	assert.Equal(t, router.PageHome, a.Route.Page)
	require.NotNil(t, a.CurrentUser())
	assert.Equal(t, "ivan", a.CurrentUser().Username)
}

func TestSetSessionWritesThrough(t *testing.T) {
	a, store, _ := newTestApp(t, nil)

	a.SetSession(testSession())
	assert.Equal(t, 1, store.writes)
	require.NotNil(t, store.sess)
	assert.Equal(t, "jwt", store.sess.Token)

	a.SetSession(nil)
	assert.Equal(t, 2, store.writes)
	assert.Nil(t, store.sess, "выход из аккаунта очищает хранилище")
}

func TestSetRouteClearsTransientState(t *testing.T) {
	a, _, _ := newTestApp(t, nil)

	a.Navigate("/movies/m1")
	loads := a.TakeLoads()
	assert.True(t, loads.Movie)
	assert.True(t, loads.Comments)
	assert.Equal(t, "m1", loads.MovieID)

	a.ApplyMovieDetail(loads.MovieGen, &models.Movie{ID: "m1", Title: "Solaris"})
	a.ApplyComments(loads.CommentsGen, []models.Comment{{ID: "c1"}})
	require.NotNil(t, a.ActiveMovie)
	require.Len(t, a.ActiveComments, 1)

	// Уход со страницы деталей чистит активный фильм и комментарии
	a.Navigate("/")
	assert.Nil(t, a.ActiveMovie)
	assert.Nil(t, a.ActiveComments)

	loads = a.TakeLoads()
	assert.False(t, loads.Movie)
	assert.False(t, loads.Comments)
}

func TestEditRouteLoadsMovieWithoutComments(t *testing.T) {
	a, _, _ := newTestApp(t, nil)

	a.Navigate("/movies/m1/edit")
	loads := a.TakeLoads()
	assert.True(t, loads.Movie)
	assert.False(t, loads.Comments, "страница редактирования не загружает комментарии")
}

// Ответ запроса, пережившего навигацию, не должен портить состояние
// новой страницы: поколение уже изменилось, результат отбрасывается.
func TestLateFetchResultIsDropped(t *testing.T) {
	a, _, _ := newTestApp(t, nil)

	a.Navigate("/movies/m1")
	stale := a.TakeLoads()

	a.Navigate("/movies/m2")
	fresh := a.TakeLoads()

	// Поздний ответ для m1 приходит после перехода на m2
	a.ApplyMovieDetail(stale.MovieGen, &models.Movie{ID: "m1"})
	assert.Nil(t, a.ActiveMovie)

	a.ApplyMovieDetail(fresh.MovieGen, &models.Movie{ID: "m2"})
	require.NotNil(t, a.ActiveMovie)
	assert.Equal(t, "m2", a.ActiveMovie.ID)

	// То же для ошибок: устаревшая ошибка не показывает уведомление
	a.ApplyMovieDetailError(stale.MovieGen, errors.New("поздняя ошибка"))
	assert.Nil(t, a.Notice)
	assert.Equal(t, "m2", a.ActiveMovie.ID)
}

func TestApplyMoviesErrorKeepsPreviousList(t *testing.T) {
	a, _, _ := newTestApp(t, nil)

	a.ApplyMovies([]models.Movie{{ID: "m1"}})
	a.SetLoading(true)

	a.ApplyMoviesError(errors.New("сервер недоступен"))
	assert.False(t, a.Loading)
	assert.Len(t, a.Movies, 1, "при ошибке прежний список сохраняется")
	require.NotNil(t, a.Notice)
	assert.Equal(t, app.NoticeError, a.Notice.Kind)
}

func TestOptimisticUpdates(t *testing.T) {
	a, _, _ := newTestApp(t, nil)
	a.ApplyMovies([]models.Movie{
		{ID: "m1", Title: "Solaris", CreatedAt: "2026-01-01T00:00:00Z"},
		{ID: "m2", Title: "Stalker", CreatedAt: "2026-01-02T00:00:00Z"},
	})

	// Создание: новый фильм встает в голову списка без перезагрузки
	a.InsertMovie(models.Movie{ID: "m3", Title: "Mirror", CreatedAt: "2026-01-03T00:00:00Z"})
	require.Len(t, a.Movies, 3)
	assert.Equal(t, "m3", a.Movies[0].ID)
	require.NotNil(t, a.ActiveMovie)
	assert.Equal(t, "m3", a.ActiveMovie.ID)

	// Обновление: замена по идентификатору
	a.ReplaceMovie(models.Movie{ID: "m1", Title: "Solaris (1972)", CreatedAt: "2026-01-01T00:00:00Z"})
	assert.Equal(t, "Solaris (1972)", a.FindMovie("m1").Title)

	// Удаление: фильтрация по идентификатору
	a.RemoveMovie("m2")
	assert.Len(t, a.Movies, 2)
	assert.Nil(t, a.FindMovie("m2"))
	assert.Nil(t, a.ActiveMovie)
}

func TestInsertCommentPrepends(t *testing.T) {
	a, _, _ := newTestApp(t, nil)

	a.Navigate("/movies/m1")
	loads := a.TakeLoads()
	a.ApplyComments(loads.CommentsGen, []models.Comment{{ID: "c1"}})

	a.InsertComment(models.Comment{ID: "c2"})
	require.Len(t, a.ActiveComments, 2)
	assert.Equal(t, "c2", a.ActiveComments[0].ID)
}

func TestSortedMoviesDescendingByCreatedAt(t *testing.T) {
	a, _, _ := newTestApp(t, nil)
	a.ApplyMovies([]models.Movie{
		{ID: "m1", CreatedAt: "2026-01-01T00:00:00Z"},
		{ID: "m3", CreatedAt: "2026-01-03T00:00:00Z"},
		{ID: "m2", CreatedAt: "2026-01-02T00:00:00Z"},
	})

	sorted := a.SortedMovies()
	require.Len(t, sorted, 3)
	assert.Equal(t, []string{"m3", "m2", "m1"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID})

	// Исходный кэш не переупорядочивается
	assert.Equal(t, "m1", a.Movies[0].ID)
}

func TestFilterMovies(t *testing.T) {
	a, _, _ := newTestApp(t, nil)
	a.ApplyMovies([]models.Movie{
		{ID: "m1", Title: "Alpha", Genre: "Drama", CreatedAt: "2026-01-01T00:00:00Z"},
		{ID: "m2", Title: "Beta", Genre: "Comedy", CreatedAt: "2026-01-02T00:00:00Z"},
	})

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{name: "Подстрока названия без учета регистра", query: "al", expected: []string{"m1"}},
		{name: "Совпадение по жанру", query: "COMEDY", expected: []string{"m2"}},
		{name: "Пустой запрос - все фильмы", query: "  ", expected: []string{"m2", "m1"}},
		{name: "Нет совпадений", query: "zeta", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.FilterMovies(tt.query)
			ids := make([]string, 0, len(got))
			for _, m := range got {
				ids = append(ids, m.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestNoticeSequence(t *testing.T) {
	a, _, _ := newTestApp(t, nil)

	seq1 := a.SetNotice(app.NoticeSuccess, "Фильм создан.")
	require.NotNil(t, a.Notice)

	// Новое уведомление замещает старое, таймер старого больше не действует
	seq2 := a.SetNotice(app.NoticeError, "Что-то пошло не так.")
	a.ExpireNotice(seq1)
	require.NotNil(t, a.Notice, "устаревший таймер не скрывает новое уведомление")
	assert.Equal(t, "Что-то пошло не так.", a.Notice.Text)

	a.ExpireNotice(seq2)
	assert.Nil(t, a.Notice)
}

func TestRequireAuth(t *testing.T) {
	t.Run("С токеном", func(t *testing.T) {
		a, _, r := newTestApp(t, testSession())

		token, ok := a.RequireAuth("Войдите, чтобы создавать фильмы.")
		assert.True(t, ok)
		assert.Equal(t, "jwt", token)
		assert.Nil(t, a.Notice)
		assert.Equal(t, "/", r.Fragment())
	})

	t.Run("Без токена", func(t *testing.T) {
		a, _, r := newTestApp(t, nil)

		token, ok := a.RequireAuth("Войдите, чтобы создавать фильмы.")
		assert.False(t, ok)
		assert.Empty(t, token)

		// Ровно одно уведомление об ошибке и переход на страницу входа
		require.NotNil(t, a.Notice)
		assert.Equal(t, app.NoticeError, a.Notice.Kind)
		assert.Equal(t, "Войдите, чтобы создавать фильмы.", a.Notice.Text)
		assert.Equal(t, "/login", r.Fragment())
		assert.Equal(t, router.PageLogin, a.Route.Page)
	})
}

func TestIsOwner(t *testing.T) {
	a, _, _ := newTestApp(t, testSession())

	assert.True(t, a.IsOwner(&models.Movie{ID: "m1", OwnerID: "u1"}))
	assert.False(t, a.IsOwner(&models.Movie{ID: "m1", OwnerID: "u2"}))
	assert.False(t, a.IsOwner(nil))

	a.SetSession(nil)
	assert.False(t, a.IsOwner(&models.Movie{ID: "m1", OwnerID: "u1"}))
}

func TestDisplayMovieFallsBackToCache(t *testing.T) {
	a, _, _ := newTestApp(t, nil)
	a.ApplyMovies([]models.Movie{{ID: "m1", Title: "Solaris"}})

	a.Navigate("/movies/m1")
	loads := a.TakeLoads()

	// Детали еще не загружены - показываем из кэша списка
	got := a.DisplayMovie()
	require.NotNil(t, got)
	assert.Equal(t, "Solaris", got.Title)

	// После загрузки - свежая запись
	a.ApplyMovieDetail(loads.MovieGen, &models.Movie{ID: "m1", Title: "Solaris (режиссерская версия)"})
	assert.Equal(t, "Solaris (режиссерская версия)", a.DisplayMovie().Title)
}
