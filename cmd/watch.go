package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamal-hamza/storefront-cli/internal/core/domain"
	"github.com/kamal-hamza/storefront-cli/internal/core/services"
	"github.com/kamal-hamza/storefront-cli/pkg/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Revalidate banners in a directory whenever they change",
	Long: `Watch a directory for desktop.png, tablet.png and mobile.png and
re-select the matching slot whenever one is written.

The file stem decides the slot, so desktop.jpg is picked up too and then
rejected as the wrong format. After each change the slot table and the
current submit outcome are printed.

Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

// slotForFile maps desktop.png, Tablet.PNG etc. to their slot
func slotForFile(path string) (domain.Slot, bool) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "~") {
		return "", false
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	slot, err := domain.ParseSlot(stem)
	if err != nil {
		return "", false
	}
	return slot, true
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dir := args[0]

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	form := newUploadForm()
	defer form.Discard()

	fmt.Println(ui.FormatInfo("Watching: " + dir))
	fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
	fmt.Println()

	var out sync.Mutex
	report := func() {
		out.Lock()
		defer out.Unlock()
		fmt.Print(renderEntries(form))
		printStatus(form.Submit())
		fmt.Println()
	}

	if err := selectExisting(ctx, form, dir); err != nil {
		return err
	}
	report()

	debounce := time.Duration(appConfig.WatchDebounceMS) * time.Millisecond
	timers := make(map[domain.Slot]*time.Timer)
	var wg sync.WaitGroup
	defer wg.Wait()

	reselect := func(slot domain.Slot, path string) {
		defer wg.Done()
		file, err := fileSource.Load(ctx, path)
		if err != nil {
			logger.Debug("could not read changed file", zap.String("path", path), zap.Error(err))
			return
		}
		if _, err := form.SelectFile(ctx, slot, file); err != nil {
			logger.Debug("selection dropped", zap.String("slot", string(slot)), zap.Error(err))
			return
		}
		report()
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			slot, ok := slotForFile(event.Name)
			if !ok {
				continue
			}

			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				out.Lock()
				fmt.Println(ui.FormatWarning(fmt.Sprintf("%s removed; keeping the last %s selection", filepath.Base(event.Name), slot)))
				out.Unlock()
				continue
			}

			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				if t := timers[slot]; t != nil && t.Stop() {
					wg.Done()
				}
				path := event.Name
				wg.Add(1)
				timers[slot] = time.AfterFunc(debounce, func() { reselect(slot, path) })
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))

		case <-ctx.Done():
			for slot, t := range timers {
				if t.Stop() {
					wg.Done()
				}
				delete(timers, slot)
			}
			fmt.Println()
			fmt.Println(ui.FormatMuted("Watcher stopped"))
			return nil
		}
	}
}

// selectExisting selects the slot files already present in dir
func selectExisting(ctx context.Context, form *services.UploadForm, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dir, err)
	}

	paths := make(map[domain.Slot]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if slot, ok := slotForFile(entry.Name()); ok {
			paths[slot] = filepath.Join(dir, entry.Name())
		}
	}

	files, err := loadFiles(ctx, paths)
	if err != nil {
		return err
	}
	_, err = form.SelectAll(ctx, files)
	return err
}
