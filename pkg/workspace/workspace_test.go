package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_UsesXDGDirectories(t *testing.T) {
	data := t.TempDir()
	conf := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)
	t.Setenv("XDG_CONFIG_HOME", conf)

	w, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"root", w.RootPath, filepath.Join(data, "storefront")},
		{"previews", w.PreviewsPath, filepath.Join(data, "storefront", "cache", "previews")},
		{"pages", w.PagesPath, filepath.Join(data, "storefront", "cache", "pages")},
		{"config", w.ConfigPath, filepath.Join(conf, "storefront", "config.yaml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %q, want %q", tt.got, tt.expected)
			}
		})
	}
}

func TestWorkspace_InitializeAndExists(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws")
	w := At(root, filepath.Join(root, "config.yaml"))

	if w.Exists() {
		t.Fatal("workspace should not exist before Initialize")
	}

	if err := w.Initialize(); err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}

	if !w.Exists() {
		t.Error("workspace should exist after Initialize")
	}

	for _, dir := range []string{w.PreviewsPath, w.PagesPath} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("expected directory %s", dir)
		}
	}
}

func TestWorkspace_CleanPreviews(t *testing.T) {
	w := At(t.TempDir(), "")
	if err := w.Initialize(); err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}

	files := []string{
		filepath.Join(w.PreviewsPath, "desktop-a.png"),
		filepath.Join(w.PreviewsPath, "mobile-b.png"),
		filepath.Join(w.PagesPath, "preview-1.html"),
	}
	for _, f := range files {
		if err := os.WriteFile(f, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := w.CleanPreviews()
	if err != nil {
		t.Fatalf("CleanPreviews() error: %v", err)
	}
	if removed != len(files) {
		t.Errorf("removed %d files, want %d", removed, len(files))
	}

	for _, f := range files {
		if _, err := os.Stat(f); !os.IsNotExist(err) {
			t.Errorf("%s should be removed", f)
		}
	}
}

func TestWorkspace_CreatePageNamesAreUnique(t *testing.T) {
	w := At(filepath.Join(t.TempDir(), "fresh"), "")

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		f, err := w.CreatePage()
		if err != nil {
			t.Fatalf("CreatePage() error: %v", err)
		}
		f.Close()

		if filepath.Dir(f.Name()) != w.PagesPath {
			t.Errorf("page %s created outside %s", f.Name(), w.PagesPath)
		}
		if filepath.Ext(f.Name()) != ".html" {
			t.Errorf("page %s lacks .html extension", f.Name())
		}
		if seen[f.Name()] {
			t.Fatalf("page name %s reused", f.Name())
		}
		seen[f.Name()] = true
	}
}

func TestWorkspace_CleanPreviewsBeforeInit(t *testing.T) {
	w := At(filepath.Join(t.TempDir(), "missing"), "")

	removed, err := w.CleanPreviews()
	if err != nil {
		t.Fatalf("CleanPreviews() error: %v", err)
	}
	if removed != 0 {
		t.Errorf("removed %d files, want 0", removed)
	}
}
