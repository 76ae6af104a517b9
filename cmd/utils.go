package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/kamal-hamza/storefront-cli/internal/adapters/preview"
	"github.com/kamal-hamza/storefront-cli/internal/core/domain"
	"github.com/kamal-hamza/storefront-cli/internal/core/services"
	"github.com/kamal-hamza/storefront-cli/pkg/ui"
)

// OpenFile opens a file using a custom viewer or the OS default application.
func OpenFile(path string, viewer string) error {
	var cmd *exec.Cmd

	if viewer != "" {
		cmd = exec.Command(viewer, path)
	} else {
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", path)
		case "windows":
			cmd = exec.Command("cmd", "/c", "start", path)
		default:
			cmd = exec.Command("xdg-open", path)
		}
	}

	// Start() detaches so sf can exit while the viewer stays open
	if err := cmd.Start(); err != nil {
		if viewer != "" {
			return fmt.Errorf("failed to open '%s' with '%s': %w", path, viewer, err)
		}
		return fmt.Errorf("failed to open '%s': %w", path, err)
	}

	return nil
}

// loadFiles reads the given paths; empty paths are skipped
func loadFiles(ctx context.Context, paths map[domain.Slot]string) (map[domain.Slot]*domain.File, error) {
	files := make(map[domain.Slot]*domain.File, len(paths))
	for _, slot := range domain.Slots() {
		path := paths[slot]
		if path == "" {
			continue
		}
		file, err := fileSource.Load(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", slot, err)
		}
		files[slot] = file
	}
	return files, nil
}

// renderEntries prints one row per slot with its validation outcome
func renderEntries(form *services.UploadForm) string {
	table := ui.NewTable([]ui.TableColumn{
		{Header: "SLOT", Width: 8},
		{Header: "REQUIRED"},
		{Header: "FILE"},
		{Header: "SIZE", Align: "right"},
		{Header: "DIMENSIONS"},
		{Header: "STATUS"},
	})

	for i, entry := range form.Entries() {
		slot := domain.Slots()[i]
		required := slot.RequiredDimensions().String()

		if entry == nil {
			table.AddRow([]string{string(slot), required, "-", "-", "-", ui.IconPending + " not selected"})
			continue
		}

		dims := "?"
		if entry.Dimensions != nil {
			dims = entry.Dimensions.String()
		}

		status := ui.IconSuccess + " ok"
		if entry.Error != nil {
			status = ui.IconError + " " + entry.Error.Message
		}

		table.AddRow([]string{
			string(slot),
			required,
			safeTruncate(entry.File.Name, 32),
			humanize.IBytes(uint64(entry.File.Size())),
			dims,
			status,
		})
	}

	return table.Render()
}

// printStatus prints the submit outcome and reports whether it succeeded
func printStatus(status domain.SubmitStatus) bool {
	if status.Succeeded() {
		fmt.Println(ui.FormatSuccess(status.Message))
		return true
	}
	fmt.Println(ui.FormatError(status.Message))
	return false
}

// previewPage is a rendered responsive preview on disk
type previewPage struct {
	Path    string
	Snippet string
}

// writePreviewPage renders the composed preview once every slot has a file.
// ok is false while a slot is still empty.
func writePreviewPage(form *services.UploadForm) (page previewPage, ok bool, err error) {
	composed, ok := form.ComposePreview()
	if !ok {
		return page, false, nil
	}

	var snippet bytes.Buffer
	if err := preview.RenderPicture(&snippet, *composed, previewStore.Resolve); err != nil {
		return page, true, err
	}

	f, err := appWorkspace.CreatePage()
	if err != nil {
		return page, true, err
	}
	defer f.Close()

	if err := preview.RenderPage(f, *composed, previewStore.Resolve); err != nil {
		return page, true, err
	}

	return previewPage{Path: f.Name(), Snippet: snippet.String()}, true, nil
}

// copySnippet writes the <picture> markup to the clipboard
func copySnippet(snippet string) {
	if err := clipboard.WriteAll(snippet); err != nil {
		logger.Debug("clipboard unavailable", zap.Error(err))
		fmt.Println(ui.FormatMuted("(Clipboard access failed, please copy manually)"))
		return
	}
	fmt.Println(ui.FormatMuted("Snippet copied to clipboard."))
}

// highlightHTML colours markup for the terminal, returning it unchanged on failure
func highlightHTML(content string) string {
	lexer := lexers.Get("html")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return content
	}

	var buf strings.Builder
	if err := formatters.TTY16m.Format(&buf, style, iterator); err != nil {
		return content
	}
	return buf.String()
}

func safeTruncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
