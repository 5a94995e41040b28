// Package app содержит состояние клиентского приложения и точки входа для его
// изменения. Все мутации выполняются из одного цикла событий TUI, поэтому
// внутренняя синхронизация не требуется.
package app

import (
	"sort"
	"strings"
	"time"

	"github.com/cineshelf/cineshelf/internal/client/router"
	"github.com/cineshelf/cineshelf/models"
)

// NoticeTTL - время показа уведомления до автоматического скрытия.
const NoticeTTL = 3200 * time.Millisecond

// NoticeKind - тип уведомления.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

// Notice представляет временное уведомление в интерфейсе.
type Notice struct {
	Kind NoticeKind
	Text string
}

// SessionStore определяет интерфейс долговременного хранилища сессии.
type SessionStore interface {
	Read() *models.Session
	Write(sess *models.Session) error
}

// RouteLoads описывает, какие загрузки данных нужны новому маршруту.
// Поля MovieGen/CommentsGen - номера поколений: результат загрузки применяется
// только если поколение не изменилось (защита от поздних записей устаревших
// запросов, см. ApplyMovieDetail/ApplyComments).
type RouteLoads struct {
	Movie       bool
	Comments    bool
	MovieID     string
	MovieGen    int
	CommentsGen int
}

// App владеет всем изменяемым состоянием клиента: сессией, кэшем фильмов,
// активным фильмом и его комментариями, маршрутом и уведомлением.
type App struct {
	Session        *models.Session
	Movies         []models.Movie
	ActiveMovie    *models.Movie
	ActiveComments []models.Comment
	Route          router.Route
	Notice         *Notice
	Loading        bool

	router      *router.Router
	store       SessionStore
	unsubscribe func()

	noticeSeq   int
	movieGen    int // Поколение загрузки деталей фильма
	commentsGen int // Поколение загрузки комментариев
	loads       RouteLoads
}

// New создает контроллер приложения: читает сессию с диска, нормализует
// стартовый фрагмент и подписывается на изменения маршрута.
func New(r *router.Router, store SessionStore) *App {
	a := &App{
		router:  r,
		store:   store,
		Session: store.Read(),
	}
	// Маршрут пересчитывается синхронно при каждой навигации,
	// до запуска любых привязанных к нему загрузок.
	a.unsubscribe = r.Subscribe(func(rt router.Route) {
		a.loads = a.applyRoute(rt)
	})
	r.Mount()
	a.Route = r.Current()
	return a
}

// Close отписывается от роутера. Вызывается при завершении работы.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

// CurrentUser возвращает профиль текущего пользователя или nil.
func (a *App) CurrentUser() *models.User {
	if a.Session == nil {
		return nil
	}
	return &a.Session.User
}

// Token возвращает токен текущей сессии или пустую строку.
func (a *App) Token() string {
	if a.Session == nil {
		return ""
	}
	return a.Session.Token
}

// SetSession устанавливает сессию в памяти и сразу пишет ее на диск.
// Инвариант: сессия в памяти и в хранилище всегда совпадают, поэтому
// запись выполняется здесь, а не на совести вызывающих.
func (a *App) SetSession(sess *models.Session) {
	a.Session = sess
	if err := a.store.Write(sess); err != nil {
		a.SetNotice(NoticeError, "Не удалось сохранить сессию: "+err.Error())
	}
}

// Navigate переходит по указанному пути через роутер.
func (a *App) Navigate(path string) {
	a.router.Navigate(path)
}

// TakeLoads забирает (и сбрасывает) загрузки, запрошенные последней навигацией.
func (a *App) TakeLoads() RouteLoads {
	loads := a.loads
	a.loads = RouteLoads{}
	return loads
}

// applyRoute применяет новый маршрут: чистит временное состояние покинутой
// страницы и возвращает список загрузок для новой.
func (a *App) applyRoute(rt router.Route) RouteLoads {
	a.Route = rt

	var loads RouteLoads

	needMovie := (rt.Page == router.PageDetails || rt.Page == router.PageEdit) && rt.MovieID != ""
	needComments := rt.Page == router.PageDetails && rt.MovieID != ""

	if needMovie {
		a.movieGen++
		loads.Movie = true
		loads.MovieID = rt.MovieID
		loads.MovieGen = a.movieGen
	} else {
		// Уходим со страницы деталей/редактирования - чистим активный фильм,
		// чтобы на следующей странице не мелькали устаревшие данные.
		a.movieGen++
		a.ActiveMovie = nil
	}

	if needComments {
		a.commentsGen++
		loads.Comments = true
		loads.CommentsGen = a.commentsGen
	} else {
		a.commentsGen++
		a.ActiveComments = nil
	}

	return loads
}

// SetLoading выставляет флаг загрузки списка фильмов.
func (a *App) SetLoading(loading bool) {
	a.Loading = loading
}

// ApplyMovies заменяет кэш фильмов свежим списком с сервера.
func (a *App) ApplyMovies(movies []models.Movie) {
	a.Movies = movies
	a.Loading = false
}

// ApplyMoviesError фиксирует ошибку загрузки списка: показываем уведомление,
// прежний список оставляем как есть.
func (a *App) ApplyMoviesError(err error) {
	a.Loading = false
	a.SetNotice(NoticeError, err.Error())
}

// ApplyMovieDetail применяет результат загрузки деталей фильма.
// Результат устаревшего запроса (поколение не совпало) молча отбрасывается.
func (a *App) ApplyMovieDetail(gen int, movie *models.Movie) {
	if gen != a.movieGen {
		return
	}
	a.ActiveMovie = movie
}

// ApplyMovieDetailError применяет ошибку загрузки деталей фильма.
func (a *App) ApplyMovieDetailError(gen int, err error) {
	if gen != a.movieGen {
		return
	}
	a.ActiveMovie = nil
	a.SetNotice(NoticeError, err.Error())
}

// ApplyComments применяет результат загрузки комментариев.
func (a *App) ApplyComments(gen int, comments []models.Comment) {
	if gen != a.commentsGen {
		return
	}
	a.ActiveComments = comments
}

// ApplyCommentsError применяет ошибку загрузки комментариев:
// список остается пустым, пользователь видит уведомление.
func (a *App) ApplyCommentsError(gen int, err error) {
	if gen != a.commentsGen {
		return
	}
	a.ActiveComments = nil
	a.SetNotice(NoticeError, err.Error())
}

// InsertMovie добавляет созданный фильм в начало кэша (оптимистичное
// обновление из ответа мутации, без перезагрузки списка).
func (a *App) InsertMovie(movie models.Movie) {
	a.Movies = append([]models.Movie{movie}, a.Movies...)
	a.ActiveMovie = &movie
}

// ReplaceMovie заменяет фильм в кэше по идентификатору.
func (a *App) ReplaceMovie(movie models.Movie) {
	for i := range a.Movies {
		if a.Movies[i].ID == movie.ID {
			a.Movies[i] = movie
			break
		}
	}
	a.ActiveMovie = &movie
}

// RemoveMovie удаляет фильм из кэша по идентификатору.
func (a *App) RemoveMovie(movieID string) {
	filtered := a.Movies[:0]
	for _, m := range a.Movies {
		if m.ID != movieID {
			filtered = append(filtered, m)
		}
	}
	a.Movies = filtered
	a.ActiveMovie = nil
}

// InsertComment добавляет комментарий в начало активного списка.
func (a *App) InsertComment(comment models.Comment) {
	a.ActiveComments = append([]models.Comment{comment}, a.ActiveComments...)
}

// FindMovie ищет фильм в кэше по идентификатору.
func (a *App) FindMovie(movieID string) *models.Movie {
	for i := range a.Movies {
		if a.Movies[i].ID == movieID {
			return &a.Movies[i]
		}
	}
	return nil
}

// DisplayMovie возвращает фильм для страниц деталей/редактирования:
// свежезагруженный, либо из кэша списка, пока загрузка не завершилась.
func (a *App) DisplayMovie() *models.Movie {
	if a.ActiveMovie != nil {
		return a.ActiveMovie
	}
	return a.FindMovie(a.Route.MovieID)
}

// IsOwner сообщает, принадлежит ли фильм текущему пользователю.
func (a *App) IsOwner(movie *models.Movie) bool {
	user := a.CurrentUser()
	return user != nil && movie != nil && user.ID == movie.OwnerID
}

// SortedMovies возвращает фильмы по убыванию createdAt.
// RFC 3339 монотонен лексикографически, поэтому сравниваем строки.
func (a *App) SortedMovies() []models.Movie {
	sorted := make([]models.Movie, len(a.Movies))
	copy(sorted, a.Movies)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt > sorted[j].CreatedAt
	})
	return sorted
}

// FilterMovies возвращает отсортированные фильмы, у которых название или жанр
// содержит запрос (без учета регистра). Сервер при этом не вызывается.
func (a *App) FilterMovies(query string) []models.Movie {
	sorted := a.SortedMovies()

	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return sorted
	}

	filtered := make([]models.Movie, 0, len(sorted))
	for _, m := range sorted {
		if strings.Contains(strings.ToLower(m.Title), normalized) ||
			strings.Contains(strings.ToLower(m.Genre), normalized) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// SortedComments возвращает комментарии по убыванию createdAt.
func (a *App) SortedComments() []models.Comment {
	sorted := make([]models.Comment, len(a.ActiveComments))
	copy(sorted, a.ActiveComments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt > sorted[j].CreatedAt
	})
	return sorted
}

// SetNotice показывает уведомление и возвращает его порядковый номер.
// Новое уведомление замещает видимое, номер при этом увеличивается -
// так таймер скрытия перезапускается.
func (a *App) SetNotice(kind NoticeKind, text string) int {
	a.noticeSeq++
	a.Notice = &Notice{Kind: kind, Text: text}
	return a.noticeSeq
}

// ExpireNotice скрывает уведомление по таймеру. Если номер не совпадает,
// уведомление уже заменено новым и скрывать его не нужно.
func (a *App) ExpireNotice(seq int) {
	if seq == a.noticeSeq {
		a.Notice = nil
	}
}

// NoticeSeq возвращает номер текущего уведомления (для запуска таймера скрытия).
func (a *App) NoticeSeq() int {
	return a.noticeSeq
}

// RequireAuth проверяет предусловие мутаций: есть ли живой токен.
// Без токена показывает одно уведомление об ошибке, уводит на страницу входа
// и сообщает вызывающему, что сетевой запрос выполнять нельзя.
func (a *App) RequireAuth(message string) (string, bool) {
	if token := a.Token(); token != "" {
		return token, true
	}
	a.SetNotice(NoticeError, message)
	a.Navigate("/login")
	return "", false
}
