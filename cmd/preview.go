package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/storefront-cli/internal/core/domain"
	"github.com/kamal-hamza/storefront-cli/pkg/ui"
)

var (
	previewPaths = make(map[domain.Slot]*string, 3)
	previewWidth int
	previewCopy  bool
	previewOpen  bool
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Compose the responsive preview for three banners",
	Long: `Compose a <picture> element from a desktop, tablet and mobile banner and
report which one a viewport of the given width would show.

The preview is built as soon as every slot has a file, even when a banner
fails validation, so you can see what a wrong image looks like in place.

Examples:
  sf preview --desktop d.png --tablet t.png --mobile m.png
  sf preview --desktop d.png --tablet t.png --mobile m.png --width 800 --copy`,
	RunE: runPreview,
}

func init() {
	for _, slot := range domain.Slots() {
		previewPaths[slot] = new(string)
		previewCmd.Flags().StringVar(previewPaths[slot], string(slot), "", fmt.Sprintf("Image for the %s slot", slot))
	}
	previewCmd.Flags().IntVarP(&previewWidth, "width", "w", 0, "Viewport width in px (defaults to preview_width)")
	previewCmd.Flags().BoolVarP(&previewCopy, "copy", "c", false, "Copy the <picture> snippet to the clipboard")
	previewCmd.Flags().BoolVarP(&previewOpen, "open", "o", false, "Open the preview page")
}

func runPreview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	paths := make(map[domain.Slot]string, len(previewPaths))
	for slot, p := range previewPaths {
		if *p == "" {
			return fmt.Errorf("missing --%s: a preview needs all three slots", slot)
		}
		paths[slot] = *p
	}

	width := previewWidth
	if width <= 0 {
		width = appConfig.PreviewWidth
	}

	files, err := loadFiles(ctx, paths)
	if err != nil {
		return err
	}

	form := newUploadForm()
	if _, err := form.SelectAll(ctx, files); err != nil {
		form.Discard()
		return err
	}

	composed, ok := form.ComposePreview()
	if !ok {
		form.Discard()
		return fmt.Errorf("preview could not be composed")
	}

	shown := composed.Select(width)
	fmt.Println(ui.FormatInfo(fmt.Sprintf("At %dpx the %s banner is shown", width, shown.Slot)))
	if entry := form.Entry(shown.Slot); entry != nil && entry.Error != nil {
		fmt.Println(ui.FormatWarning(fmt.Sprintf("%s does not pass validation: %s", entry.File.Name, entry.Error.Message)))
	}
	fmt.Println()

	page, _, err := writePreviewPage(form)
	if err != nil {
		form.Discard()
		return err
	}

	fmt.Println(highlightHTML(page.Snippet))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Preview", page.Path))

	if previewCopy || appConfig.CopySnippet {
		copySnippet(page.Snippet)
	}
	if previewOpen {
		if err := OpenFile(page.Path, appConfig.PreviewViewer); err != nil {
			fmt.Println(ui.FormatWarning(err.Error()))
		}
	}

	return nil
}
