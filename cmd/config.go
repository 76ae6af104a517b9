package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/storefront-cli/pkg/ui"
)

var configEdit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration sf is running with, after defaults and
SF_DECODER, SF_SERVE_ADDR and SF_LOG_LEVEL overrides are applied.

Use --edit to open the config file in $EDITOR instead.`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVarP(&configEdit, "edit", "e", false, "Open the config file in $EDITOR")
}

func runConfig(cmd *cobra.Command, args []string) error {
	path := appWorkspace.ConfigPath

	if configEdit {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := appConfig.Save(path); err != nil {
				return err
			}
		}

		fmt.Println(ui.FormatInfo("Opening config: " + path))

		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}

		c := exec.Command(editor, path)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		return c.Run()
	}

	data, err := yaml.Marshal(appConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	fmt.Println(ui.RenderKeyValue("File", path))
	fmt.Println()
	fmt.Print(string(data))
	return nil
}
