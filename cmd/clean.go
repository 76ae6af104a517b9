package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/storefront-cli/pkg/ui"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove preview files and rendered pages",
	Long: `Remove preview copies and rendered preview pages left in the workspace cache.

'sf upload' and 'sf preview' keep the previews behind a written page so the
page can be opened later; this command clears them.`,
	RunE: runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	fmt.Print(ui.StyleWarning.Render("Cleaning preview cache... "))

	removed, err := appWorkspace.CleanPreviews()
	if err != nil {
		fmt.Println(ui.FormatError("Failed"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Done"))
	fmt.Println(ui.FormatMuted(fmt.Sprintf("%d files removed.", removed)))
	return nil
}
