package preview

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/kamal-hamza/storefront-cli/internal/core/domain"
)

// ErrIncompletePayload is returned for files whose source stopped reading
// early; writing them would leave a broken image on disk
var ErrIncompletePayload = errors.New("payload is incomplete")

// FileStore materialises previews as files so terminal tools and browsers
// can display them. Revoking a token deletes its file.
type FileStore struct {
	dir string

	mu    sync.Mutex
	paths map[domain.PreviewToken]string
}

// NewFileStore stores previews under dir, creating it on first use
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir:   dir,
		paths: make(map[domain.PreviewToken]string),
	}
}

func (s *FileStore) Create(ctx context.Context, slot domain.Slot, file *domain.File) (domain.PreviewToken, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if file.Truncated() {
		return "", fmt.Errorf("%s: %w", file.Name, ErrIncompletePayload)
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create preview directory: %w", err)
	}

	token := domain.PreviewToken(uuid.NewString())
	path := filepath.Join(s.dir, fmt.Sprintf("%s-%s%s", slot, token, extensionFor(file)))

	if err := os.WriteFile(path, file.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to write preview: %w", err)
	}

	s.mu.Lock()
	s.paths[token] = path
	s.mu.Unlock()

	return token, nil
}

func (s *FileStore) Resolve(token domain.PreviewToken) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, ok := s.paths[token]
	if !ok {
		return "", fmt.Errorf("preview not found: %s", token)
	}
	return path, nil
}

func (s *FileStore) Revoke(token domain.PreviewToken) error {
	s.mu.Lock()
	path, ok := s.paths[token]
	delete(s.paths, token)
	s.mu.Unlock()

	if !ok {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove preview %s: %w", path, err)
	}
	return nil
}

// Len returns the number of live previews
func (s *FileStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.paths)
}

// extensionFor keeps the original extension so viewers pick the right format
func extensionFor(file *domain.File) string {
	if ext := filepath.Ext(file.Name); ext != "" {
		return ext
	}
	return ".png"
}
