package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "storefront"

// Workspace is the on-disk state of sf: preview files and rendered pages
type Workspace struct {
	RootPath     string
	CachePath    string
	PreviewsPath string
	PagesPath    string
	ConfigPath   string
}

// New creates a Workspace with XDG-compliant paths
func New() (*Workspace, error) {
	rootPath, err := dataRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to determine workspace root: %w", err)
	}
	configPath, err := configPath()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", err)
	}
	return At(rootPath, configPath), nil
}

// At lays out a workspace under root with the config file at configPath
func At(root, configPath string) *Workspace {
	cache := filepath.Join(root, "cache")
	return &Workspace{
		RootPath:     root,
		CachePath:    cache,
		PreviewsPath: filepath.Join(cache, "previews"),
		PagesPath:    filepath.Join(cache, "pages"),
		ConfigPath:   configPath,
	}
}

// dataRoot follows XDG on Unix and AppData on Windows
func dataRoot() (string, error) {
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return filepath.Join(xdgDataHome, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, appName), nil
	}

	return filepath.Join(homeDir, ".local", "share", appName), nil
}

func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, appName+"-config", "config.yaml"), nil
	}

	return filepath.Join(homeDir, ".config", appName, "config.yaml"), nil
}

// Initialize creates the directory structure if it doesn't exist
func (w *Workspace) Initialize() error {
	directories := []string{
		w.RootPath,
		w.CachePath,
		w.PreviewsPath,
		w.PagesPath,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// Exists checks if the workspace has been initialized
func (w *Workspace) Exists() bool {
	info, err := os.Stat(w.RootPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// CreatePage opens a new, uniquely named preview page for writing.
// The caller closes the file.
func (w *Workspace) CreatePage() (*os.File, error) {
	if err := os.MkdirAll(w.PagesPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create pages directory: %w", err)
	}
	f, err := os.CreateTemp(w.PagesPath, "preview-*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to create preview page: %w", err)
	}
	return f, nil
}

// CleanPreviews removes leftover preview files and rendered pages
func (w *Workspace) CleanPreviews() (int, error) {
	removed := 0
	for _, dir := range []string{w.PreviewsPath, w.PagesPath} {
		entries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return removed, fmt.Errorf("failed to read %s: %w", dir, err)
		}

		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if err := os.RemoveAll(path); err != nil {
				return removed, fmt.Errorf("failed to remove %s: %w", path, err)
			}
			removed++
		}
	}
	return removed, nil
}
