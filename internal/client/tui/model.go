// Package tui реализует терминальный интерфейс CineShelf поверх bubbletea.
// Страница определяется текущим маршрутом роутера; все сетевые вызовы
// выполняются командами, состояние меняется только в Update.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/cineshelf/cineshelf/internal/client/api"
	"github.com/cineshelf/cineshelf/internal/client/app"
	"github.com/cineshelf/cineshelf/internal/client/router"
	"github.com/cineshelf/cineshelf/models"
)

// Константы TUI.
const (
	defaultListWidth  = 80 // Ширина списка до первого WindowSizeMsg
	defaultListHeight = 20 // Высота списка до первого WindowSizeMsg
	inputWidthOffset  = 4  // Отступ полей ввода от края
	listChromeHeight  = 6  // Высота шапки и строки поиска над списком

	keyEnter = "enter"
	keyEsc   = "esc"
	keyBack  = "b"
	keyTab   = "tab"
	keyUp    = "up"
	keyDown  = "down"
)

// Индексы полей формы входа/регистрации.
const (
	authFieldUsername = iota // Только для регистрации
	authFieldEmail
	authFieldPassword
	numAuthFields
)

// Индексы полей формы фильма.
const (
	formFieldTitle = iota
	formFieldYear
	formFieldGenre
	formFieldPoster
	formFieldSummary
	numFormFields
)

// Минимальный допустимый год выпуска (первый фильм братьев Люмьер снят позже).
const minMovieYear = 1888

// movieItem оборачивает фильм для bubbles/list.
type movieItem struct {
	movie models.Movie
}

func (i movieItem) Title() string {
	if i.movie.Year > 0 {
		return fmt.Sprintf("%s (%d)", i.movie.Title, i.movie.Year)
	}
	return i.movie.Title
}

func (i movieItem) Description() string {
	if i.movie.Genre != "" {
		return i.movie.Genre
	}
	return "без жанра"
}

func (i movieItem) FilterValue() string { return i.movie.Title }

// model представляет состояние TUI приложения.
type model struct {
	state     *app.App   // Контроллер состояния приложения
	apiClient api.Client // Клиент REST API

	// Домашняя страница
	searchInput textinput.Model // Поле поиска по названию/жанру
	movieList   list.Model      // Список фильмов (фильтрация своя, не list)
	searchFocus bool            // Фокус на поле поиска, а не на списке

	// Вход/регистрация
	authInputs [numAuthFields]textinput.Model
	authFocus  int

	// Форма создания/редактирования фильма
	formInputs  [numFormFields]textinput.Model
	formFocus   int
	formErrors  map[int]string // Ошибки локальной валидации по индексу поля
	formMovieID string         // Непустой при редактировании

	// Детали фильма
	commentInput   textinput.Model
	commentFocus   bool
	confirmDelete  bool   // Показан запрос подтверждения удаления
	deleteMovieID  string // Фильм, выбранный для удаления
	lastRouteShown router.Route

	width    int
	height   int
	docStyle lipgloss.Style
}

// initModel собирает начальную модель TUI.
func initModel(state *app.App, client api.Client) model {
	search := textinput.New()
	search.Placeholder = "Поиск по названию или жанру"
	search.CharLimit = 100

	delegate := list.NewDefaultDelegate()
	movieList := list.New(nil, delegate, defaultListWidth, defaultListHeight)
	movieList.Title = "CineShelf"
	movieList.SetShowHelp(false)
	// Фильтрацией управляет наше поле поиска, встроенную отключаем
	movieList.SetFilteringEnabled(false)
	movieList.SetShowStatusBar(false)

	var authInputs [numAuthFields]textinput.Model
	for i := range authInputs {
		authInputs[i] = textinput.New()
		authInputs[i].CharLimit = 100
	}
	authInputs[authFieldUsername].Placeholder = "Имя пользователя"
	authInputs[authFieldEmail].Placeholder = "Email"
	authInputs[authFieldPassword].Placeholder = "Пароль"
	authInputs[authFieldPassword].EchoMode = textinput.EchoPassword
	authInputs[authFieldPassword].EchoCharacter = '*'

	var formInputs [numFormFields]textinput.Model
	for i := range formInputs {
		formInputs[i] = textinput.New()
		formInputs[i].CharLimit = 200
	}
	formInputs[formFieldTitle].Placeholder = "Название"
	formInputs[formFieldYear].Placeholder = "Год (например, 1979)"
	formInputs[formFieldGenre].Placeholder = "Жанр"
	formInputs[formFieldPoster].Placeholder = "URL постера (необязательно)"
	formInputs[formFieldSummary].Placeholder = "Краткое описание"

	comment := textinput.New()
	comment.Placeholder = "Поделитесь впечатлениями"
	comment.CharLimit = 500

	return model{
		state:        state,
		apiClient:    client,
		searchInput:  search,
		movieList:    movieList,
		authInputs:   authInputs,
		formInputs:   formInputs,
		commentInput: comment,
		formErrors:   make(map[int]string),
		docStyle:     lipgloss.NewStyle().Margin(1, 2),
	}
}

// syncMovieList обновляет элементы списка по текущему фильтру.
func (m *model) syncMovieList() {
	filtered := m.state.FilterMovies(m.searchInput.Value())
	items := make([]list.Item, len(filtered))
	for i, movie := range filtered {
		items[i] = movieItem{movie: movie}
	}
	m.movieList.SetItems(items)
}

// selectedMovie возвращает фильм, выбранный в списке, или nil.
func (m *model) selectedMovie() *models.Movie {
	item, ok := m.movieList.SelectedItem().(movieItem)
	if !ok {
		return nil
	}
	movie := item.movie
	return &movie
}
