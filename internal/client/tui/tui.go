package tui

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cineshelf/cineshelf/internal/client/api"
	"github.com/cineshelf/cineshelf/internal/client/app"
	"github.com/cineshelf/cineshelf/internal/client/router"
	"github.com/cineshelf/cineshelf/internal/client/session"
)

// Start запускает TUI приложение.
// serverURL - адрес REST API, sessionPath - файл с сохраненной сессией,
// fragment - стартовый маршрут (обычно пустой, нормализуется к "/").
func Start(serverURL, sessionPath, fragment string) {
	apiClient := api.NewHTTPClient(serverURL)
	slog.Info("API клиент инициализирован", "baseURL", serverURL)

	store := session.NewStore(sessionPath)
	r := router.New(fragment)
	state := app.New(r, store)
	defer state.Close()

	m := initModel(state, apiClient)

	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("Ошибка работы TUI", "error", err)
		fmt.Fprintf(os.Stderr, "Ошибка запуска интерфейса: %v\n", err)
		os.Exit(1)
	}
}
