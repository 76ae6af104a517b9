package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamal-hamza/storefront-cli/internal/adapters/fixtures"
	"github.com/kamal-hamza/storefront-cli/internal/adapters/imaging"
	"github.com/kamal-hamza/storefront-cli/internal/adapters/preview"
	"github.com/kamal-hamza/storefront-cli/internal/adapters/source"
	"github.com/kamal-hamza/storefront-cli/internal/core/domain"
	"github.com/kamal-hamza/storefront-cli/internal/core/ports"
	"github.com/kamal-hamza/storefront-cli/internal/core/services"
	"github.com/kamal-hamza/storefront-cli/pkg/config"
	"github.com/kamal-hamza/storefront-cli/pkg/logging"
	"github.com/kamal-hamza/storefront-cli/pkg/ui"
	"github.com/kamal-hamza/storefront-cli/pkg/workspace"
)

var (
	appWorkspace *workspace.Workspace
	appConfig    *config.Config
	logger       *zap.Logger

	verbose bool

	// Adapters
	imageDecoder ports.ImageDecoder
	previewStore *preview.FileStore
	fileSource   *source.LocalFiles

	// Services
	catalogService *services.CatalogService
	loginService   *services.LoginService
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sf",
	Short: "SF - storefront banner uploads and mock shop API",
	Long: ui.FormatTitle("SF") + " - Storefront CLI\n\n" +
		"Validate a set of responsive banner images (desktop, tablet, mobile),\n" +
		"preview how they swap across breakpoints and browse the mock shop.",
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Log debug output to stderr")
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	// Skip initialization for commands that need no workspace
	if cmd.Name() == "init" || cmd.Name() == "version" {
		return nil
	}

	ws, err := workspace.New()
	if err != nil {
		return fmt.Errorf("failed to initialize workspace: %w", err)
	}
	appWorkspace = ws

	if !appWorkspace.Exists() {
		fmt.Println(ui.FormatError("Workspace not initialized"))
		fmt.Println(ui.FormatInfo("Run 'sf init' to create it"))
		return fmt.Errorf("workspace missing at %s", appWorkspace.RootPath)
	}

	cfg, err := config.Load(appWorkspace.ConfigPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	appConfig = cfg

	ui.SetTheme(appConfig.ColorTheme)

	logger, err = logging.New(appConfig.LogLevel, verbose)
	if err != nil {
		return err
	}

	imageDecoder, err = imaging.New(appConfig.Decoder)
	if err != nil {
		return err
	}

	previewStore = preview.NewFileStore(appWorkspace.PreviewsPath)
	fileSource = source.NewLocalFiles(domain.MaxFileSizeBytes)

	users, err := fixtures.NewUsers()
	if err != nil {
		return err
	}
	catalogService = services.NewCatalogService(
		fixtures.NewCatalog(),
		time.Duration(appConfig.ProductDelayMS)*time.Millisecond,
		logger.Named("catalog"),
	)
	loginService = services.NewLoginService(
		users,
		time.Duration(appConfig.LoginDelayMS)*time.Millisecond,
		logger.Named("login"),
	)

	logger.Debug("initialized",
		zap.String("workspace", appWorkspace.RootPath),
		zap.String("decoder", appConfig.Decoder),
		zap.Bool("stale_guard", appConfig.StaleGuard))

	return nil
}

// newUploadForm creates a form wired to the configured decoder and preview store
func newUploadForm() *services.UploadForm {
	return services.NewUploadForm(
		imageDecoder,
		previewStore,
		services.WithLogger(logger.Named("upload")),
		services.WithStaleGuard(appConfig.StaleGuard),
	)
}
