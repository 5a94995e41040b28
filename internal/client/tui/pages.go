package tui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cineshelf/cineshelf/internal/client/app"
	"github.com/cineshelf/cineshelf/models"
)

// Обработчики сообщений по страницам. Каждый обработчик получает сообщения,
// не перехваченные глобальной логикой Update, и возвращает команды страницы.

// updateHomePage обрабатывает домашнюю страницу: поиск и список фильмов.
func (m *model) updateHomePage(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.movieList, cmd = m.movieList.Update(msg)
		return cmd
	}

	if m.searchFocus {
		switch keyMsg.String() {
		case keyEsc:
			m.searchFocus = false
			m.searchInput.Blur()
			return nil
		case keyEnter, keyDown:
			// Переводим фокус на список, фильтр остается примененным
			m.searchFocus = false
			m.searchInput.Blur()
			return nil
		default:
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			m.syncMovieList()
			return cmd
		}
	}

	switch keyMsg.String() {
	case "/":
		m.searchFocus = true
		return m.searchInput.Focus()

	case keyEnter:
		if movie := m.selectedMovie(); movie != nil {
			m.state.Navigate("/movies/" + movie.ID)
		}
		return nil

	case "n":
		if _, ok := m.state.RequireAuth("Войдите, чтобы добавлять фильмы."); !ok {
			return m.expireCurrentNotice()
		}
		m.state.Navigate("/create")
		return nil

	case "l":
		if m.state.CurrentUser() == nil {
			m.state.Navigate("/login")
		}
		return nil

	case "r":
		if m.state.CurrentUser() == nil {
			m.state.Navigate("/register")
		}
		return nil

	case "o":
		if token := m.state.Token(); token != "" {
			return logoutCmd(m.apiClient, token)
		}
		return nil

	case "q":
		m.state.Close()
		return tea.Quit

	default:
		var cmd tea.Cmd
		m.movieList, cmd = m.movieList.Update(msg)
		return cmd
	}
}

// updateAuthPage обрабатывает страницы входа и регистрации.
func (m *model) updateAuthPage(msg tea.Msg, register bool) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateFocusedAuthInput(msg)
	}

	firstField := authFieldEmail
	if register {
		firstField = authFieldUsername
	}

	switch keyMsg.String() {
	case keyEsc:
		m.state.Navigate("/")
		return nil

	case keyTab, keyDown:
		m.moveAuthFocus(firstField, 1)
		return nil

	case "shift+tab", keyUp:
		m.moveAuthFocus(firstField, -1)
		return nil

	case keyEnter:
		if m.authFocus < authFieldPassword {
			m.moveAuthFocus(firstField, 1)
			return nil
		}
		return m.submitAuth(register)

	default:
		return m.updateFocusedAuthInput(msg)
	}
}

// moveAuthFocus переводит фокус формы аутентификации на delta полей по кругу.
func (m *model) moveAuthFocus(firstField, delta int) {
	fields := numAuthFields - firstField
	m.authInputs[m.authFocus].Blur()
	m.authFocus = firstField + ((m.authFocus-firstField+delta)+fields)%fields
	m.authInputs[m.authFocus].Focus()
}

func (m *model) updateFocusedAuthInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.authInputs[m.authFocus], cmd = m.authInputs[m.authFocus].Update(msg)
	return cmd
}

// submitAuth проверяет заполненность полей и отправляет запрос входа/регистрации.
func (m *model) submitAuth(register bool) tea.Cmd {
	username := strings.TrimSpace(m.authInputs[authFieldUsername].Value())
	email := strings.TrimSpace(m.authInputs[authFieldEmail].Value())
	password := m.authInputs[authFieldPassword].Value()

	if register && username == "" {
		return m.notify(app.NoticeError, "Укажите имя пользователя.")
	}
	if email == "" || password == "" {
		return m.notify(app.NoticeError, "Заполните email и пароль.")
	}

	if register {
		return registerCmd(m.apiClient, models.RegisterRequest{
			Username: username,
			Email:    email,
			Password: password,
		})
	}
	return loginCmd(m.apiClient, models.LoginRequest{
		Email:    email,
		Password: password,
	})
}

// updateFormPage обрабатывает форму создания/редактирования фильма.
func (m *model) updateFormPage(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateFocusedFormInput(msg)
	}

	switch keyMsg.String() {
	case keyEsc:
		if m.formMovieID != "" {
			m.state.Navigate("/movies/" + m.formMovieID)
		} else {
			m.state.Navigate("/")
		}
		return nil

	case keyTab, keyDown:
		m.moveFormFocus(1)
		return nil

	case "shift+tab", keyUp:
		m.moveFormFocus(-1)
		return nil

	case keyEnter:
		if m.formFocus < numFormFields-1 {
			m.moveFormFocus(1)
			return nil
		}
		return m.submitMovieForm()

	default:
		return m.updateFocusedFormInput(msg)
	}
}

func (m *model) moveFormFocus(delta int) {
	m.formInputs[m.formFocus].Blur()
	m.formFocus = (m.formFocus + delta + numFormFields) % numFormFields
	m.formInputs[m.formFocus].Focus()
}

func (m *model) updateFocusedFormInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
	return cmd
}

// validateMovieForm заполняет formErrors и возвращает запрос, если форма валидна.
func (m *model) validateMovieForm() (models.MovieRequest, bool) {
	m.formErrors = make(map[int]string)

	title := strings.TrimSpace(m.formInputs[formFieldTitle].Value())
	if title == "" {
		m.formErrors[formFieldTitle] = "Укажите название."
	}

	yearRaw := strings.TrimSpace(m.formInputs[formFieldYear].Value())
	year, err := strconv.Atoi(yearRaw)
	if yearRaw == "" {
		m.formErrors[formFieldYear] = "Укажите год выпуска."
	} else if err != nil || year < minMovieYear {
		m.formErrors[formFieldYear] = "Год должен быть числом не меньше " + strconv.Itoa(minMovieYear) + "."
	}

	genre := strings.TrimSpace(m.formInputs[formFieldGenre].Value())
	if genre == "" {
		m.formErrors[formFieldGenre] = "Укажите жанр."
	}

	summary := strings.TrimSpace(m.formInputs[formFieldSummary].Value())
	if summary == "" {
		m.formErrors[formFieldSummary] = "Добавьте краткое описание."
	}

	if len(m.formErrors) > 0 {
		return models.MovieRequest{}, false
	}

	return models.MovieRequest{
		Title:   title,
		Year:    year,
		Genre:   genre,
		Poster:  strings.TrimSpace(m.formInputs[formFieldPoster].Value()),
		Summary: summary,
	}, true
}

// submitMovieForm валидирует форму и отправляет создание либо обновление.
func (m *model) submitMovieForm() tea.Cmd {
	req, valid := m.validateMovieForm()
	if !valid {
		return m.notify(app.NoticeError, "Исправьте отмеченные поля.")
	}

	token, ok := m.state.RequireAuth("Войдите, чтобы сохранять фильмы.")
	if !ok {
		return m.expireCurrentNotice()
	}

	if m.formMovieID != "" {
		return updateMovieCmd(m.apiClient, m.formMovieID, req, token)
	}
	return createMovieCmd(m.apiClient, req, token)
}

// updateDetailsPage обрабатывает страницу деталей фильма.
func (m *model) updateDetailsPage(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.commentFocus {
			var cmd tea.Cmd
			m.commentInput, cmd = m.commentInput.Update(msg)
			return cmd
		}
		return nil
	}

	// Режим подтверждения удаления перехватывает все клавиши
	if m.confirmDelete {
		switch keyMsg.String() {
		case "y", "Y":
			m.confirmDelete = false
			token, ok := m.state.RequireAuth("Войдите, чтобы удалять фильмы.")
			if !ok {
				return m.expireCurrentNotice()
			}
			return deleteMovieCmd(m.apiClient, m.deleteMovieID, token)
		default:
			m.confirmDelete = false
			m.deleteMovieID = ""
			return nil
		}
	}

	if m.commentFocus {
		switch keyMsg.String() {
		case keyEsc:
			m.commentFocus = false
			m.commentInput.Blur()
			return nil
		case keyEnter:
			return m.submitComment()
		default:
			var cmd tea.Cmd
			m.commentInput, cmd = m.commentInput.Update(msg)
			return cmd
		}
	}

	switch keyMsg.String() {
	case keyEsc, keyBack:
		m.state.Navigate("/")
		return nil

	case "e":
		movie := m.state.DisplayMovie()
		if movie != nil && m.state.IsOwner(movie) {
			m.state.Navigate("/movies/" + movie.ID + "/edit")
		}
		return nil

	case "d":
		movie := m.state.DisplayMovie()
		if movie != nil && m.state.IsOwner(movie) {
			m.confirmDelete = true
			m.deleteMovieID = movie.ID
		}
		return nil

	case "c":
		if _, ok := m.state.RequireAuth("Войдите, чтобы оставлять комментарии."); !ok {
			return m.expireCurrentNotice()
		}
		m.commentFocus = true
		return m.commentInput.Focus()
	}
	return nil
}

// submitComment отправляет комментарий к активному фильму.
func (m *model) submitComment() tea.Cmd {
	text := strings.TrimSpace(m.commentInput.Value())
	if text == "" {
		return m.notify(app.NoticeError, "Комментарий не может быть пустым.")
	}

	token, ok := m.state.RequireAuth("Войдите, чтобы оставлять комментарии.")
	if !ok {
		return m.expireCurrentNotice()
	}

	return addCommentCmd(m.apiClient, m.state.Route.MovieID, models.CommentRequest{Content: text}, token)
}

// updateRestrictedPage обрабатывает страницу ограниченного доступа.
func (m *model) updateRestrictedPage(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "l":
		if m.state.CurrentUser() == nil {
			m.state.Navigate("/login")
		}
	case keyEnter, keyEsc, keyBack:
		m.state.Navigate("/")
	}
	return nil
}

// updateDeadEndPage обрабатывает страницу "не найдено": любой выход ведет домой.
func (m *model) updateDeadEndPage(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case keyEnter, keyEsc, keyBack:
		m.state.Navigate("/")
	}
	return nil
}
