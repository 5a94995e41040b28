package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq" // Драйвер PostgreSQL

	"github.com/cineshelf/cineshelf/internal/server/handlers"
	appmiddleware "github.com/cineshelf/cineshelf/internal/server/middleware"
	"github.com/cineshelf/cineshelf/internal/server/repository"
	"github.com/cineshelf/cineshelf/internal/server/services"
	"github.com/cineshelf/cineshelf/internal/server/storage"
)

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultIdleTimeout  = 30 * time.Second

	defaultServerPort = "8080"
	envServerPort     = "SERVER_PORT"

	// Секрет для подписи JWT. Значение по умолчанию только для локальной разработки.
	envJWTSecret     = "JWT_SECRET" //nolint:gosec // Имя переменной окружения, не секрет
	defaultJWTSecret = "dev-secret-change-me"

	// Переменные окружения для БД (значения по умолчанию из docker-compose).
	envDBUser     = "POSTGRES_USER"
	envDBPass     = "POSTGRES_PASSWORD" //nolint:gosec // Имя переменной окружения, не секрет
	envDBName     = "POSTGRES_DB"
	envDBHost     = "POSTGRES_HOST"
	envDBPort     = "POSTGRES_PORT"
	defaultDBUser = "cineshelf"
	defaultDBPass = "secret"
	defaultDBName = "cineshelf"
	defaultDBHost = "localhost"
	defaultDBPort = "5432"

	// Переменные окружения для MinIO (значения по умолчанию из docker-compose).
	envMinioEndpoint     = "MINIO_ENDPOINT"
	envMinioUser         = "MINIO_USER"
	envMinioPassword     = "MINIO_PASSWORD"
	envMinioBucket       = "MINIO_BUCKET"
	defaultMinioEndpoint = "localhost:9000"
	defaultMinioUser     = "minioadmin"
	defaultMinioPassword = "minioadmin"
	defaultMinioBucket   = "cineshelf-posters"
	minioUseSSL          = false // Для локальной разработки

	// Ограничение частоты запросов с одного IP.
	rateLimitRPS   = 10
	rateLimitBurst = 20
)

// Структура для хранения инициализированных зависимостей.
type dependencies struct {
	db             *sqlx.DB
	posterStorage  storage.PosterStorage
	jwtSecret      string
	authHandler    *handlers.AuthHandler
	movieHandler   *handlers.MovieHandler
	commentHandler *handlers.CommentHandler
	posterHandler  *handlers.PosterHandler
}

// main - точка входа. Вызывает run и обрабатывает ошибку.
func main() {
	if err := run(); err != nil {
		log.Printf("Ошибка выполнения сервера: %v", err)
		os.Exit(1)
	}
}

// run содержит основную логику запуска сервера и возвращает ошибку.
func run() error {
	log.Println("Запуск сервера CineShelf...")

	// Подхватываем .env, если он есть; переменные окружения имеют приоритет
	if err := godotenv.Load(); err != nil {
		log.Println("Файл .env не найден, используются переменные окружения.")
	}

	deps, err := setupDependencies()
	if err != nil {
		return fmt.Errorf("ошибка инициализации зависимостей: %w", err)
	}
	defer func() {
		if deps.db != nil {
			if closeErr := deps.db.Close(); closeErr != nil {
				log.Printf("Ошибка закрытия соединения с БД: %v", closeErr)
			}
		}
	}()

	r := setupRouter(deps)

	port := getEnv(envServerPort, defaultServerPort)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", port),
		Handler:      r,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	log.Printf("Запуск HTTP-сервера на порту %s...", port)
	if err = server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("ошибка запуска HTTP-сервера: %w", err)
	}
	return nil
}

// setupDependencies инициализирует и возвращает все необходимые зависимости сервера.
func setupDependencies() (*dependencies, error) {
	deps := &dependencies{}
	var err error

	// 1. Подключение к БД
	dsn := getDSNFromEnv()
	deps.db, err = repository.NewPostgresDB(dsn)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации БД: %w", err)
	}
	log.Println("Соединение с БД успешно установлено.")

	// 2. Инициализация клиента MinIO для постеров
	minioCfg := storage.MinioConfig{
		Endpoint:        getEnv(envMinioEndpoint, defaultMinioEndpoint),
		AccessKeyID:     getEnv(envMinioUser, defaultMinioUser),
		SecretAccessKey: getEnv(envMinioPassword, defaultMinioPassword),
		UseSSL:          minioUseSSL,
		BucketName:      getEnv(envMinioBucket, defaultMinioBucket),
	}
	deps.posterStorage, err = storage.NewMinioClient(minioCfg)
	if err != nil {
		if dbCloseErr := deps.db.Close(); dbCloseErr != nil {
			log.Printf("Ошибка закрытия соединения с БД при ошибке MinIO: %v", dbCloseErr)
		}
		return nil, fmt.Errorf("ошибка инициализации клиента MinIO: %w", err)
	}

	// 3. Создание репозиториев
	userRepo := repository.NewPostgresUserRepository(deps.db)
	movieRepo := repository.NewPostgresMovieRepository(deps.db)
	commentRepo := repository.NewPostgresCommentRepository(deps.db)

	// 4. Создание сервисов
	deps.jwtSecret = getEnv(envJWTSecret, defaultJWTSecret)
	authService := services.NewAuthService(userRepo, deps.jwtSecret)
	movieService := services.NewMovieService(movieRepo)
	commentService := services.NewCommentService(commentRepo, movieRepo)

	// 5. Создание обработчиков
	deps.authHandler = handlers.NewAuthHandler(authService)
	deps.movieHandler = handlers.NewMovieHandler(movieService)
	deps.commentHandler = handlers.NewCommentHandler(commentService)
	deps.posterHandler = handlers.NewPosterHandler(deps.posterStorage)

	return deps, nil
}

// setupRouter настраивает и возвращает роутер chi.
func setupRouter(deps *dependencies) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(appmiddleware.RateLimit(rateLimitRPS, rateLimitBurst))

	authenticator := appmiddleware.NewAuthenticator(deps.jwtSecret)

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong\n"))
	})

	r.Route("/api", func(r chi.Router) {
		// Публичные маршруты
		r.Post("/auth/register", deps.authHandler.Register)
		r.Post("/auth/login", deps.authHandler.Login)

		r.Route("/movies", func(r chi.Router) {
			r.Get("/", deps.movieHandler.List)
			r.Get("/{id}", deps.movieHandler.Get)
			r.Get("/{id}/comments", deps.commentHandler.List)

			// Мутации требуют аутентификации
			r.Group(func(r chi.Router) {
				r.Use(authenticator)
				r.Post("/", deps.movieHandler.Create)
				r.Put("/{id}", deps.movieHandler.Update)
				r.Delete("/{id}", deps.movieHandler.Delete)
				r.Post("/{id}/comments", deps.commentHandler.Create)
			})
		})

		// Приватные маршруты
		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Post("/auth/logout", deps.authHandler.Logout)
			r.Post("/posters", deps.posterHandler.Upload)
		})
	})
	return r
}

// getDSNFromEnv формирует строку подключения к БД из переменных окружения.
func getDSNFromEnv() string {
	user := getEnv(envDBUser, defaultDBUser)
	password := getEnv(envDBPass, defaultDBPass)
	host := getEnv(envDBHost, defaultDBHost)
	port := getEnv(envDBPort, defaultDBPort)
	dbname := getEnv(envDBName, defaultDBName)

	// sslmode=disable - небезопасно для продакшена, но удобно для локальной разработки с Docker
	//nolint:nosprintfhostport // DSN - это URL, а не просто host:port
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		user, password, host, port, dbname)
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	log.Printf("Переменная окружения '%s' не установлена, используется значение по умолчанию: '%s'", key, fallback)
	return fallback
}
