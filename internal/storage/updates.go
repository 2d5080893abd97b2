package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/model"
)

// Снапшот обновлений хранится одним json массивом.
// Его читает дашборд и переписывает коллектор.
type UpdateFileStorage struct {
	path string
	mu   sync.Mutex
}

func NewUpdateFileStorage(path string) *UpdateFileStorage {
	return &UpdateFileStorage{path: path}
}

func (s *UpdateFileStorage) Path() string {
	return s.path
}

// Updates читает весь снапшот. Отсутствующий файл - это пустая коллекция.
func (s *UpdateFileStorage) Updates(ctx context.Context) ([]model.Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var updates []model.Update
	if err := readJSON(s.path, &updates); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []model.Update{}, nil
		}
		return nil, fmt.Errorf("read updates %s: %w", s.path, err)
	}

	return updates, nil
}

// Save целиком заменяет снапшот
func (s *UpdateFileStorage) Save(ctx context.Context, updates []model.Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	if updates == nil {
		updates = []model.Update{}
	}

	if err := writeJSON(s.path, updates); err != nil {
		return fmt.Errorf("write updates %s: %w", s.path, err)
	}

	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, v)
}

// Пишем во временный файл рядом и переименовываем,
// чтобы читатель (например, preview сервер) не увидел половину файла.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
