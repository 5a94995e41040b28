package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cineshelf/cineshelf/internal/client/app"
	"github.com/cineshelf/cineshelf/internal/client/router"
	"github.com/cineshelf/cineshelf/models"
)

// Стили интерфейса.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))

	successNoticeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42")).
				Bold(true)

	errorNoticeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Bold(true)

	fieldErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

// View отрисовывает текущую страницу.
func (m *model) View() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")

	switch m.state.Route.Page {
	case router.PageHome:
		b.WriteString(m.viewHome())
	case router.PageLogin:
		b.WriteString(m.viewAuth(false))
	case router.PageRegister:
		b.WriteString(m.viewAuth(true))
	case router.PageCreate, router.PageEdit:
		if reason := m.restrictedAccess(); reason != "" {
			b.WriteString(m.viewRestricted(reason))
		} else {
			b.WriteString(m.viewMovieForm())
		}
	case router.PageDetails:
		b.WriteString(m.viewDetails())
	default:
		b.WriteString(m.viewNotFound())
	}

	if notice := m.viewNotice(); notice != "" {
		b.WriteString("\n\n")
		b.WriteString(notice)
	}

	return m.docStyle.Render(b.String())
}

// viewHeader показывает название приложения и текущего пользователя.
func (m *model) viewHeader() string {
	title := titleStyle.Render("CineShelf")
	if user := m.state.CurrentUser(); user != nil {
		return title + subtleStyle.Render("  ·  "+user.Username)
	}
	return title + subtleStyle.Render("  ·  гость")
}

// viewNotice отрисовывает активное уведомление.
func (m *model) viewNotice() string {
	notice := m.state.Notice
	if notice == nil {
		return ""
	}
	if notice.Kind == app.NoticeSuccess {
		return successNoticeStyle.Render("✓ " + notice.Text)
	}
	return errorNoticeStyle.Render("✗ " + notice.Text)
}

func (m *model) viewHome() string {
	var b strings.Builder

	cursor := "  "
	if m.searchFocus {
		cursor = "> "
	}
	b.WriteString(cursor + m.searchInput.View())
	b.WriteString("\n\n")

	if m.state.Loading && len(m.state.Movies) == 0 {
		b.WriteString(subtleStyle.Render("Загружаем фильмы..."))
	} else if len(m.movieList.Items()) == 0 {
		b.WriteString(subtleStyle.Render("Пока пусто. Нажмите n, чтобы добавить первый фильм."))
	} else {
		b.WriteString(m.movieList.View())
	}

	help := "enter: открыть · /: поиск · n: добавить"
	if m.state.CurrentUser() != nil {
		help += " · o: выйти"
	} else {
		help += " · l: вход · r: регистрация"
	}
	help += " · q: выход"
	b.WriteString("\n" + helpStyle.Render(help))
	return b.String()
}

func (m *model) viewAuth(register bool) string {
	var b strings.Builder

	if register {
		b.WriteString(labelStyle.Render("Регистрация"))
		b.WriteString("\n\n")
		b.WriteString(m.viewAuthField(authFieldUsername))
	} else {
		b.WriteString(labelStyle.Render("Вход"))
		b.WriteString("\n\n")
	}
	b.WriteString(m.viewAuthField(authFieldEmail))
	b.WriteString(m.viewAuthField(authFieldPassword))

	b.WriteString(helpStyle.Render("enter: далее/отправить · tab: следующее поле · esc: назад"))
	return b.String()
}

func (m *model) viewAuthField(field int) string {
	cursor := "  "
	if m.authFocus == field {
		cursor = "> "
	}
	return cursor + m.authInputs[field].View() + "\n"
}

func (m *model) viewMovieForm() string {
	var b strings.Builder

	if m.formMovieID != "" {
		b.WriteString(labelStyle.Render("Редактирование фильма"))
	} else {
		b.WriteString(labelStyle.Render("Новый фильм"))
	}
	b.WriteString("\n\n")

	for i := range m.formInputs {
		cursor := "  "
		if m.formFocus == i {
			cursor = "> "
		}
		b.WriteString(cursor + m.formInputs[i].View() + "\n")
		if errText, ok := m.formErrors[i]; ok {
			b.WriteString("    " + fieldErrorStyle.Render(errText) + "\n")
		}
	}

	b.WriteString(helpStyle.Render("enter на последнем поле: сохранить · tab: следующее поле · esc: отмена"))
	return b.String()
}

func (m *model) viewDetails() string {
	movie := m.state.DisplayMovie()
	if movie == nil {
		return subtleStyle.Render("Загружаем фильм...")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(movie.Title))
	if movie.Year > 0 {
		b.WriteString(subtleStyle.Render(fmt.Sprintf(" (%d)", movie.Year)))
	}
	b.WriteString("\n")
	if movie.Genre != "" {
		b.WriteString(labelStyle.Render("Жанр: ") + movie.Genre + "\n")
	}
	if movie.Poster != "" {
		b.WriteString(labelStyle.Render("Постер: ") + movie.Poster + "\n")
	}
	if movie.Summary != "" {
		b.WriteString("\n" + movie.Summary + "\n")
	}

	if m.confirmDelete {
		b.WriteString("\n" + errorNoticeStyle.Render("Удалить фильм? (y/n)") + "\n")
	}

	b.WriteString("\n" + labelStyle.Render("Комментарии") + "\n")
	comments := m.state.SortedComments()
	if len(comments) == 0 {
		b.WriteString(subtleStyle.Render("Пока никто не высказался.") + "\n")
	}
	for _, c := range comments {
		b.WriteString(m.viewComment(c))
	}

	cursor := "  "
	if m.commentFocus {
		cursor = "> "
	}
	b.WriteString("\n" + cursor + m.commentInput.View())

	help := "c: комментировать · esc: назад"
	if m.state.IsOwner(movie) {
		help = "e: редактировать · d: удалить · " + help
	}
	b.WriteString("\n" + helpStyle.Render(help))
	return b.String()
}

func (m *model) viewComment(c models.Comment) string {
	when := c.CreatedAt
	if t, err := time.Parse(time.RFC3339, c.CreatedAt); err == nil {
		when = t.Local().Format("02.01.2006 15:04")
	}
	header := labelStyle.Render(c.AuthorName) + subtleStyle.Render("  "+when)
	return header + "\n" + c.Text + "\n\n"
}

// viewRestricted показывает страницу ограниченного доступа: маршрут открыт
// напрямую, но у пользователя нет прав на эту страницу.
func (m *model) viewRestricted(reason string) string {
	help := "enter/esc: на главную"
	if m.state.CurrentUser() == nil {
		help = "l: вход · " + help
	}
	return labelStyle.Render("Доступ ограничен") + "\n\n" +
		subtleStyle.Render(reason) + "\n\n" +
		helpStyle.Render(help)
}

func (m *model) viewNotFound() string {
	return labelStyle.Render("Страница не найдена") + "\n\n" +
		subtleStyle.Render("Такого адреса нет. Нажмите enter, чтобы вернуться на главную.")
}
