// Package session отвечает за долговременное хранение сессии пользователя
// (токен + профиль) между запусками клиента.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/cineshelf/cineshelf/models"
)

const sessionFilePerm = 0600

// Store читает и записывает файл сессии.
// Файл защищен advisory-блокировкой, чтобы два экземпляра клиента
// не перемешивали записи друг друга.
type Store struct {
	path     string
	fileLock *flock.Flock
}

// NewStore создает хранилище сессии для указанного пути.
func NewStore(path string) *Store {
	return &Store{
		path:     path,
		fileLock: flock.New(path + ".lock"),
	}
}

// Read загружает сессию с диска.
// Отсутствие файла и битый JSON трактуются одинаково: сессии нет (nil).
// Ошибок наружу не отдаем - клиент в таком случае просто не авторизован.
func (s *Store) Read() *models.Session {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("Не удалось прочитать файл сессии", "path", s.path, "error", err)
		}
		return nil
	}

	var sess models.Session
	if err = json.Unmarshal(raw, &sess); err != nil {
		slog.Warn("Файл сессии поврежден, считаем что сессии нет", "path", s.path, "error", err)
		return nil
	}
	if sess.Token == "" {
		// Сессия без токена бесполезна
		return nil
	}

	return &sess
}

// Write сохраняет сессию на диск. nil означает очистку (выход из аккаунта).
func (s *Store) Write(sess *models.Session) error {
	locked, err := s.fileLock.TryLock()
	if err != nil {
		return fmt.Errorf("ошибка блокировки файла сессии: %w", err)
	}
	if locked {
		defer func() {
			if unlockErr := s.fileLock.Unlock(); unlockErr != nil {
				slog.Warn("Не удалось снять блокировку файла сессии", "error", unlockErr)
			}
		}()
	}

	if sess == nil {
		if err = os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("ошибка удаления файла сессии: %w", err)
		}
		return nil
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("ошибка кодирования сессии: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err = os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("ошибка создания директории для сессии: %w", err)
		}
	}

	if err = os.WriteFile(s.path, data, sessionFilePerm); err != nil {
		return fmt.Errorf("ошибка записи файла сессии: %w", err)
	}

	return nil
}
