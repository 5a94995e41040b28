package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cineshelf/cineshelf/internal/client/tui"
)

const (
	logDir             = "logs"
	logFileName        = "client.log"
	logFilePermissions = 0666

	// Имя переменной окружения с адресом сервера.
	serverURLEnvVar  = "CINESHELF_SERVER_URL"
	defaultServerURL = "http://localhost:8080"

	// Имя переменной окружения с путем к файлу сессии.
	sessionPathEnvVar  = "CINESHELF_SESSION_PATH"
	defaultSessionFile = "session.json"
)

// Переменные для версии и даты сборки, устанавливаются через ldflags.
var (
	version = "dev"
	//nolint:gochecknoglobals // Устанавливается через ldflags при сборке
	buildDate = "unknown"
	//nolint:gochecknoglobals // Устанавливается через ldflags при сборке
	commitHash = "N/A"
)

// setupLogging настраивает логирование в файл logs/client.log.
// В stdout писать нельзя: его занимает TUI.
func setupLogging() {
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		panic("Не удалось создать директорию для логов: " + err.Error())
	}
	logPath := filepath.Join(logDir, logFileName)
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermissions)
	if err != nil {
		panic("Не удалось открыть лог-файл: " + err.Error())
	}
	// Файл остается открытым на все время работы приложения,
	// его закроет ОС при завершении процесса.

	logHandler := slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(logHandler))
	slog.Info("Логгер инициализирован", "path", logPath)
}

// defaultSessionPath возвращает путь к файлу сессии в каталоге конфигурации
// пользователя, с запасным вариантом в текущем каталоге.
func defaultSessionPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return defaultSessionFile
	}
	return filepath.Join(configDir, "cineshelf", defaultSessionFile)
}

func main() {
	versionFlag := flag.Bool("version", false, "Показать версию и дату сборки")

	setupLogging()

	serverURLFlag := flag.String("server-url", "",
		"URL сервера CineShelf (переопределяет "+serverURLEnvVar+")")
	sessionFlag := flag.String("session", "",
		"Путь к файлу сессии (переопределяет "+sessionPathEnvVar+")")
	routeFlag := flag.String("route", "", "Стартовый маршрут, например /movies/42")

	flag.Parse()

	if *versionFlag {
		// Используем стандартный log для вывода в консоль, так как slog настроен на файл
		log.SetOutput(os.Stdout)
		log.SetFlags(0)
		log.Println("CineShelf Client")
		log.Printf("Version: %s", version)
		log.Printf("Build Date: %s", buildDate)
		log.Printf("Commit Hash: %s", commitHash)
		os.Exit(0)
	}

	// Приоритет: флаг, затем переменная окружения, затем значение по умолчанию
	serverURL := defaultServerURL
	if envURL := os.Getenv(serverURLEnvVar); envURL != "" {
		serverURL = envURL
	}
	if *serverURLFlag != "" {
		serverURL = *serverURLFlag
	}

	sessionPath := defaultSessionPath()
	if envPath := os.Getenv(sessionPathEnvVar); envPath != "" {
		sessionPath = envPath
	}
	if *sessionFlag != "" {
		sessionPath = *sessionFlag
	}

	slog.Info("Запуск CineShelf",
		"server_url", serverURL,
		"session_path", sessionPath,
		"route", *routeFlag,
	)

	tui.Start(serverURL, sessionPath, *routeFlag)
}
