package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/storefront-cli/internal/core/domain"
	"github.com/kamal-hamza/storefront-cli/pkg/ui"
)

var (
	uploadPaths       = make(map[domain.Slot]*string, 3)
	uploadPick        bool
	uploadInteractive bool
	uploadOpen        bool
	uploadCopy        bool
)

// errUploadRejected signals a failed submit after the reason was printed
var errUploadRejected = errors.New("upload rejected")

var uploadCmd = &cobra.Command{
	Use:     "upload",
	Aliases: []string{"up"},
	Short:   "Validate a desktop, tablet and mobile banner (alias: up)",
	Long: `Select one PNG banner per breakpoint and validate it.

Each slot accepts a PNG under 150KB with exact dimensions:
  desktop  1280x300  (shown from 1024px)
  tablet    768x300  (shown from 768px)
  mobile    320x150  (fallback)

Selections are measured concurrently. Once every slot has a file, a
responsive preview page is written to the workspace cache. The upload
only succeeds when all three banners pass validation.

Without any path flags the interactive picker opens.

Examples:
  sf upload --desktop d.png --tablet t.png --mobile m.png
  sf upload --desktop d.png --pick     # fuzzy-pick the missing slots
  sf upload                            # interactive form`,
	RunE: runUpload,
}

func init() {
	for _, slot := range domain.Slots() {
		uploadPaths[slot] = new(string)
		uploadCmd.Flags().StringVar(uploadPaths[slot], string(slot), "",
			fmt.Sprintf("PNG for the %s slot (%s)", slot, slot.RequiredDimensions()))
	}
	uploadCmd.Flags().BoolVarP(&uploadPick, "pick", "p", false, "Fuzzy-pick files for slots without a path")
	uploadCmd.Flags().BoolVarP(&uploadInteractive, "interactive", "i", false, "Open the interactive form")
	uploadCmd.Flags().BoolVarP(&uploadOpen, "open", "o", false, "Open the preview page after writing it")
	uploadCmd.Flags().BoolVarP(&uploadCopy, "copy", "c", false, "Copy the <picture> snippet to the clipboard")
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	paths := make(map[domain.Slot]string, len(uploadPaths))
	for slot, p := range uploadPaths {
		if *p != "" {
			paths[slot] = *p
		}
	}

	if uploadInteractive || (len(paths) == 0 && !uploadPick) {
		return runUploadInteractive(ctx, paths)
	}

	if uploadPick {
		if err := pickMissing(paths); err != nil {
			return err
		}
	}

	return runUploadBatch(ctx, paths)
}

func runUploadBatch(ctx context.Context, paths map[domain.Slot]string) error {
	files, err := loadFiles(ctx, paths)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to read file"))
		return err
	}

	form := newUploadForm()
	keepPreviews := false
	defer func() {
		if !keepPreviews {
			form.Discard()
		}
	}()

	fmt.Println(ui.FormatInfo(fmt.Sprintf("Measuring %d image(s)...", len(files))))
	if _, err := form.SelectAll(ctx, files); err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(renderEntries(form))
	fmt.Println()

	page, composed, err := writePreviewPage(form)
	switch {
	case err != nil:
		fmt.Println(ui.FormatWarning("Preview not written: " + err.Error()))
	case composed:
		keepPreviews = true
		reportPreviewPage(page)
	default:
		fmt.Println(ui.FormatMuted("Preview needs all three slots."))
	}
	fmt.Println()

	if !printStatus(form.Submit()) {
		return errUploadRejected
	}
	return nil
}

func reportPreviewPage(page previewPage) {
	fmt.Println(ui.RenderKeyValue("Preview", page.Path))

	if uploadCopy || appConfig.CopySnippet {
		copySnippet(page.Snippet)
	}
	if uploadOpen {
		if err := OpenFile(page.Path, appConfig.PreviewViewer); err != nil {
			fmt.Println(ui.FormatWarning(err.Error()))
		}
	}
}

// pickMissing asks for a file for every slot without a path
func pickMissing(paths map[domain.Slot]string) error {
	candidates, err := findImages(".")
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		fmt.Println(ui.FormatWarning("No PNG files found under the current directory."))
		return nil
	}

	for _, slot := range domain.Slots() {
		if paths[slot] != "" {
			continue
		}

		idx, err := fuzzyfinder.Find(
			candidates,
			func(i int) string { return candidates[i] },
			fuzzyfinder.WithHeader(fmt.Sprintf("%s banner (%s)", slot, slot.RequiredDimensions())),
			fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
				if i == -1 {
					return ""
				}
				return describeCandidate(slot, candidates[i])
			}),
		)
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			// Aborting leaves the slot empty
			continue
		}
		if err != nil {
			return err
		}
		paths[slot] = candidates[idx]
	}
	return nil
}

func describeCandidate(slot domain.Slot, path string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Slot: %s\nRequired: %s PNG, < 150KB\n\nFile: %s\n", slot, slot.RequiredDimensions(), path)
	if info, err := os.Stat(path); err == nil {
		fmt.Fprintf(&b, "Size: %d bytes\n", info.Size())
	}
	return b.String()
}

// findImages lists PNG files under root, skipping hidden directories
func findImages(root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".png") {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan for images: %w", err)
	}
	return found, nil
}
