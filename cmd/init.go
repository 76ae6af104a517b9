package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/storefront-cli/pkg/config"
	"github.com/kamal-hamza/storefront-cli/pkg/ui"
	"github.com/kamal-hamza/storefront-cli/pkg/workspace"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the sf workspace",
	Long: `Initialize the sf workspace directory structure.

This creates the workspace at ~/.local/share/storefront/ with the following structure:
  - cache/previews/ : Preview copies of selected images
  - cache/pages/    : Rendered responsive preview pages
  - config.yaml     : Global configuration (in ~/.config/storefront/)`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	ws, err := workspace.New()
	if err != nil {
		fmt.Println(ui.FormatError("Failed to determine workspace location"))
		return err
	}

	if ws.Exists() {
		fmt.Println(ui.FormatWarning("Workspace already initialized"))
		fmt.Println(ui.FormatMuted("Location: " + ws.RootPath))
		return nil
	}

	fmt.Println(ui.FormatInfo("Initializing sf workspace..."))
	fmt.Println()

	if err := ws.Initialize(); err != nil {
		fmt.Println(ui.FormatError("Failed to initialize workspace"))
		return err
	}

	if err := createDefaultConfig(ws); err != nil {
		// config is optional
		fmt.Println(ui.FormatWarning("Failed to create default config: " + err.Error()))
	} else {
		fmt.Println(ui.FormatSuccess("Default config created"))
	}

	fmt.Println(ui.FormatSuccess("Workspace initialized successfully!"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Location", ws.RootPath))
	fmt.Println(ui.RenderKeyValue("Config", ws.ConfigPath))
	fmt.Println()
	fmt.Println(ui.FormatInfo("Next steps:"))
	fmt.Print(ui.RenderSimpleList(nextSteps))

	return nil
}

var nextSteps = []string{
	"Validate banners: sf upload --desktop d.png --tablet t.png --mobile m.png",
	"Pick them interactively: sf upload",
	"Serve the upload API: sf serve",
}

// createDefaultConfig writes the defaults unless a config file already exists
func createDefaultConfig(ws *workspace.Workspace) error {
	if _, err := os.Stat(ws.ConfigPath); err == nil {
		return nil
	}
	if err := config.DefaultConfig().Save(ws.ConfigPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", ws.ConfigPath, err)
	}
	return nil
}
