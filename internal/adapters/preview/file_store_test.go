package preview

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamal-hamza/storefront-cli/internal/core/domain"
)

func TestFileStore_CreateResolveRevoke(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "previews")
	store := NewFileStore(dir)
	file := &domain.File{Name: "hero.png", MediaType: domain.AllowedMediaType, Data: []byte("pixels")}

	token, err := store.Create(context.Background(), domain.SlotDesktop, file)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	path, err := store.Resolve(token)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "desktop-"))
	assert.Equal(t, ".png", filepath.Ext(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(content))
	assert.Equal(t, 1, store.Len())

	require.NoError(t, store.Revoke(token))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "preview file should be removed")
	assert.Equal(t, 0, store.Len())

	_, err = store.Resolve(token)
	assert.Error(t, err)
}

func TestFileStore_RevokeUnknownToken(t *testing.T) {
	store := NewFileStore(t.TempDir())
	assert.NoError(t, store.Revoke("missing"))
}

func TestFileStore_RefusesIncompletePayload(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	file := &domain.File{Name: "huge.png", Data: make([]byte, 11), SourceSize: 4096}

	token, err := store.Create(context.Background(), domain.SlotDesktop, file)
	assert.ErrorIs(t, err, ErrIncompletePayload)
	assert.Empty(t, token)
	assert.Equal(t, 0, store.Len())

	written, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, written, "no preview file should be written")
}

func TestFileStore_TokensAreUnique(t *testing.T) {
	store := NewFileStore(t.TempDir())
	file := &domain.File{Name: "same.png", Data: []byte("x")}

	a, err := store.Create(context.Background(), domain.SlotMobile, file)
	require.NoError(t, err)
	b, err := store.Create(context.Background(), domain.SlotMobile, file)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, store.Len())
}

func TestRenderPicture(t *testing.T) {
	p := domain.ResponsivePreview{
		Sources: []domain.PreviewSource{
			{Slot: domain.SlotDesktop, MinViewportWidth: 1024, Token: "d"},
			{Slot: domain.SlotTablet, MinViewportWidth: 768, Token: "t"},
		},
		Fallback: domain.PreviewSource{Slot: domain.SlotMobile, Token: "m"},
	}
	resolve := func(tok domain.PreviewToken) (string, error) {
		return "/tmp/previews/" + string(tok) + ".png", nil
	}

	var sb strings.Builder
	require.NoError(t, RenderPicture(&sb, p, resolve))
	out := sb.String()

	assert.Contains(t, out, `<source media="(min-width: 1024px)" srcset="file:///tmp/previews/d.png">`)
	assert.Contains(t, out, `<source media="(min-width: 768px)" srcset="file:///tmp/previews/t.png">`)
	assert.Contains(t, out, `<img src="file:///tmp/previews/m.png" alt="Responsive preview">`)
	assert.Less(t, strings.Index(out, "1024px"), strings.Index(out, "768px"), "desktop source must come first")
}

func TestRenderPage_UnresolvableToken(t *testing.T) {
	p := domain.ResponsivePreview{Fallback: domain.PreviewSource{Slot: domain.SlotMobile, Token: "gone"}}
	resolve := func(tok domain.PreviewToken) (string, error) {
		return "", os.ErrNotExist
	}

	var sb strings.Builder
	err := RenderPage(&sb, p, resolve)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
