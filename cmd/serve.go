package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamal-hamza/storefront-cli/internal/adapters/httpapi"
	"github.com/kamal-hamza/storefront-cli/pkg/ui"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the upload and mock shop API over HTTP",
	Long: `Start an HTTP server exposing:

  POST /api/upload    multipart fields desktop, tablet, mobile
  GET  /api/products  mock product catalog
  POST /api/login     {"username": "...", "password": "..."}

Every upload request gets its own form. The response is 200 when all three
banners pass validation and 422 otherwise, with per-slot details.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (defaults to serve_addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	addr := serveAddr
	if addr == "" {
		addr = appConfig.ServeAddr
	}

	api := httpapi.NewServer(newUploadForm, catalogService, loginService, appConfig.UploadMaxSize, logger.Named("http"))
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	fmt.Println(ui.FormatServer("Listening on http://" + addr))
	fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", zap.Error(err))
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
