package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaTypeFor(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"banner.png", "image/png"},
		{"BANNER.PNG", "image/png"},
		{"photo.jpg", "image/jpeg"},
		{"anim.gif", "image/gif"},
		{"README", DefaultMediaType},
		{"archive.unknownext", DefaultMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, MediaTypeFor(tt.path))
		})
	}
}

func TestLocalFiles_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mobile.png")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0644))

	file, err := NewLocalFiles(0).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "mobile.png", file.Name)
	assert.Equal(t, "image/png", file.MediaType)
	assert.Equal(t, int64(10), file.Size())
}

func TestLocalFiles_LoadStopsPastLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huge.png")
	require.NoError(t, os.WriteFile(path, make([]byte, 1000), 0644))

	file, err := NewLocalFiles(100).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, file.Data, 101)
	assert.True(t, file.Truncated())
	assert.Equal(t, int64(1000), file.Size(), "size should come from disk, not the bytes read")
}

func TestLocalFiles_LoadErrors(t *testing.T) {
	loader := NewLocalFiles(0)

	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)

	_, err = loader.Load(context.Background(), t.TempDir())
	assert.Error(t, err)
}
