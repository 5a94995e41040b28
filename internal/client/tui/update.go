package tui

import (
	"log/slog"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cineshelf/cineshelf/internal/client/app"
	"github.com/cineshelf/cineshelf/internal/client/router"
	"github.com/cineshelf/cineshelf/models"
)

// Init запускает стартовые загрузки: список фильмов и данные стартового маршрута.
func (m *model) Init() tea.Cmd {
	m.state.SetLoading(true)
	m.lastRouteShown = m.state.Route
	return tea.Batch(
		textinput.Blink,
		loadMoviesCmd(m.apiClient),
		m.routeLoadCmds(),
	)
}

// notify показывает уведомление и возвращает команду его автоскрытия.
func (m *model) notify(kind app.NoticeKind, text string) tea.Cmd {
	seq := m.state.SetNotice(kind, text)
	return expireNoticeCmd(seq)
}

// expireCurrentNotice планирует скрытие уведомления, выставленного контроллером.
func (m *model) expireCurrentNotice() tea.Cmd {
	return expireNoticeCmd(m.state.NoticeSeq())
}

// routeLoadCmds превращает загрузки, запрошенные навигацией, в команды.
func (m *model) routeLoadCmds() tea.Cmd {
	loads := m.state.TakeLoads()

	var cmds []tea.Cmd
	if loads.Movie {
		cmds = append(cmds, loadMovieDetailCmd(m.apiClient, loads.MovieID, loads.MovieGen))
	}
	if loads.Comments {
		cmds = append(cmds, loadCommentsCmd(m.apiClient, loads.MovieID, loads.CommentsGen))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update обрабатывает входящие сообщения.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := m.docStyle.GetFrameSize()
		m.movieList.SetSize(msg.Width-h, msg.Height-v-listChromeHeight)
		inputWidth := msg.Width - h - inputWidthOffset
		m.searchInput.Width = inputWidth
		m.commentInput.Width = inputWidth
		for i := range m.authInputs {
			m.authInputs[i].Width = inputWidth
		}
		for i := range m.formInputs {
			m.formInputs[i].Width = inputWidth
		}
		return m, nil

	case noticeExpiredMsg:
		m.state.ExpireNotice(msg.seq)
		return m, nil

	// == Результаты загрузок ==
	case moviesLoadedMsg:
		m.state.ApplyMovies(msg.movies)
		m.syncMovieList()
		return m, nil

	case moviesLoadErrMsg:
		slog.Warn("Ошибка загрузки списка фильмов", "error", msg.err)
		m.state.ApplyMoviesError(msg.err)
		return m, m.expireCurrentNotice()

	case movieDetailLoadedMsg:
		m.state.ApplyMovieDetail(msg.gen, msg.movie)
		// На странице редактирования форма заполняется свежими данными
		if m.state.Route.Page == router.PageEdit && m.state.ActiveMovie != nil {
			m.fillMovieForm(*m.state.ActiveMovie)
		}
		return m, nil

	case movieDetailErrMsg:
		slog.Warn("Ошибка загрузки фильма", "error", msg.err)
		m.state.ApplyMovieDetailError(msg.gen, msg.err)
		return m, m.expireCurrentNotice()

	case commentsLoadedMsg:
		m.state.ApplyComments(msg.gen, msg.comments)
		return m, nil

	case commentsErrMsg:
		slog.Warn("Ошибка загрузки комментариев", "error", msg.err)
		m.state.ApplyCommentsError(msg.gen, msg.err)
		return m, m.expireCurrentNotice()

	// == Аутентификация ==
	case authSuccessMsg:
		m.state.SetSession(msg.session)
		cmds = append(cmds, m.notify(app.NoticeSuccess, msg.text))
		m.state.Navigate("/")

	case authErrMsg:
		return m, m.notify(app.NoticeError, msg.err.Error())

	case logoutDoneMsg:
		if msg.err != nil {
			slog.Warn("Ошибка выхода на сервере", "error", msg.err)
			cmds = append(cmds, m.notify(app.NoticeError, msg.err.Error()))
		}
		// Локальную сессию чистим независимо от ответа сервера
		m.state.SetSession(nil)
		m.state.Navigate("/")

	// == Мутации ==
	case movieCreatedMsg:
		m.state.InsertMovie(msg.movie)
		m.syncMovieList()
		cmds = append(cmds, m.notify(app.NoticeSuccess, "Фильм создан."))
		m.state.Navigate("/movies/" + msg.movie.ID)

	case movieUpdatedMsg:
		m.state.ReplaceMovie(msg.movie)
		m.syncMovieList()
		cmds = append(cmds, m.notify(app.NoticeSuccess, "Фильм обновлен."))
		m.state.Navigate("/movies/" + msg.movie.ID)

	case movieDeletedMsg:
		m.state.RemoveMovie(msg.movieID)
		m.syncMovieList()
		cmds = append(cmds, m.notify(app.NoticeSuccess, "Фильм удален."))
		m.state.Navigate("/")

	case commentAddedMsg:
		m.state.InsertComment(msg.comment)
		m.commentInput.Reset()
		return m, nil

	case mutationErrMsg:
		return m, m.notify(app.NoticeError, msg.err.Error())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.state.Close()
			return m, tea.Quit
		}
		cmds = append(cmds, m.updateActivePage(msg))

	default:
		cmds = append(cmds, m.updateActivePage(msg))
	}

	// Любая ветка выше могла вызвать навигацию: готовим новую страницу
	// и запускаем привязанные к ней загрузки.
	if m.state.Route != m.lastRouteShown {
		m.prepareRoute()
		cmds = append(cmds, m.routeLoadCmds())
	}

	return m, tea.Batch(cmds...)
}

// updateActivePage делегирует сообщение обработчику текущей страницы.
func (m *model) updateActivePage(msg tea.Msg) tea.Cmd {
	switch m.state.Route.Page {
	case router.PageHome:
		return m.updateHomePage(msg)
	case router.PageLogin:
		return m.updateAuthPage(msg, false)
	case router.PageRegister:
		return m.updateAuthPage(msg, true)
	case router.PageCreate, router.PageEdit:
		if m.restrictedAccess() != "" {
			return m.updateRestrictedPage(msg)
		}
		return m.updateFormPage(msg)
	case router.PageDetails:
		return m.updateDetailsPage(msg)
	case router.PageNotFound:
		return m.updateDeadEndPage(msg)
	default:
		return nil
	}
}

// restrictedAccess возвращает текст ограничения для текущего маршрута или
// пустую строку, если страница доступна. Формы создания и редактирования
// могут быть открыты напрямую по адресу, поэтому проверка выполняется при
// отрисовке, а не только на клавишах навигации.
func (m *model) restrictedAccess() string {
	switch m.state.Route.Page {
	case router.PageCreate:
		if m.state.CurrentUser() == nil {
			return "Войдите, чтобы добавлять фильмы."
		}
	case router.PageEdit:
		if m.state.CurrentUser() == nil {
			return "Войдите, чтобы редактировать фильмы."
		}
		if movie := m.state.DisplayMovie(); movie != nil && !m.state.IsOwner(movie) {
			return "Редактировать фильм может только его владелец."
		}
	}
	return ""
}

// prepareRoute сбрасывает и фокусирует поля ввода новой страницы.
func (m *model) prepareRoute() {
	route := m.state.Route
	m.lastRouteShown = route

	switch route.Page {
	case router.PageLogin, router.PageRegister:
		for i := range m.authInputs {
			m.authInputs[i].Reset()
			m.authInputs[i].Blur()
		}
		if route.Page == router.PageRegister {
			m.authFocus = authFieldUsername
		} else {
			m.authFocus = authFieldEmail
		}
		m.authInputs[m.authFocus].Focus()

	case router.PageCreate:
		m.formMovieID = ""
		m.formErrors = make(map[int]string)
		for i := range m.formInputs {
			m.formInputs[i].Reset()
			m.formInputs[i].Blur()
		}
		m.formFocus = formFieldTitle
		m.formInputs[formFieldTitle].Focus()

	case router.PageEdit:
		m.formMovieID = route.MovieID
		m.formErrors = make(map[int]string)
		// Пока детали не загружены, заполняем из кэша списка
		if movie := m.state.DisplayMovie(); movie != nil {
			m.fillMovieForm(*movie)
		}
		m.formFocus = formFieldTitle
		for i := range m.formInputs {
			m.formInputs[i].Blur()
		}
		m.formInputs[formFieldTitle].Focus()

	case router.PageDetails:
		m.commentInput.Reset()
		m.commentInput.Blur()
		m.commentFocus = false
		m.confirmDelete = false
		m.deleteMovieID = ""

	case router.PageHome:
		m.searchFocus = false
		m.searchInput.Blur()
		m.syncMovieList()
	}
}

// fillMovieForm заполняет форму значениями фильма.
func (m *model) fillMovieForm(movie models.Movie) {
	m.formInputs[formFieldTitle].SetValue(movie.Title)
	if movie.Year > 0 {
		m.formInputs[formFieldYear].SetValue(strconv.Itoa(movie.Year))
	} else {
		m.formInputs[formFieldYear].SetValue("")
	}
	m.formInputs[formFieldGenre].SetValue(movie.Genre)
	m.formInputs[formFieldPoster].SetValue(movie.Poster)
	m.formInputs[formFieldSummary].SetValue(movie.Summary)
}
