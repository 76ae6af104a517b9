package source

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/kamal-hamza/storefront-cli/internal/core/domain"
)

// DefaultMediaType is declared for extensions the mime table does not know
const DefaultMediaType = "application/octet-stream"

// LocalFiles loads payloads from disk. The media type is declared from the
// file extension, the same way a browser fills File.type, so it is a claim
// about the content rather than a verified fact.
type LocalFiles struct {
	// maxBytes stops reading oversized files early; 0 reads everything
	maxBytes int64
}

// NewLocalFiles creates a loader. Files longer than maxBytes are truncated
// to maxBytes+1 bytes, which is enough for the size check to reject them;
// the returned File still reports the size found on disk.
func NewLocalFiles(maxBytes int64) *LocalFiles {
	return &LocalFiles{maxBytes: maxBytes}
}

func (l *LocalFiles) Load(ctx context.Context, path string) (*domain.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	var r io.Reader = f
	if l.maxBytes > 0 {
		r = io.LimitReader(f, l.maxBytes+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	file := &domain.File{
		Name:      filepath.Base(path),
		MediaType: MediaTypeFor(path),
		Data:      data,
	}
	if info.Size() > int64(len(data)) {
		file.SourceSize = info.Size()
	}
	return file, nil
}

// MediaTypeFor declares a media type from the path's extension
func MediaTypeFor(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return DefaultMediaType
	}
	mt, _, err := mime.ParseMediaType(mime.TypeByExtension(ext))
	if err != nil || mt == "" {
		return DefaultMediaType
	}
	return mt
}
