package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lakshayg/face-search/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve <album>",
	Short: "Serve face queries for an album over HTTP",
	Long: `Start a local HTTP server answering face queries against the album index.

The album is synced once at startup. Endpoints:
  GET  /healthz          liveness check
  GET  /api/v1/files     indexed file listing
  GET  /api/v1/stats     file and face counts
  POST /api/v1/search    multipart image upload, returns matching files

Examples:
  face-search serve ~/Pictures/holiday --port 8087`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 8087, "Port to listen on")
	serveCmd.Flags().String("host", "127.0.0.1", "Host to bind to")
}

func runServe(cmd *cobra.Command, args []string) error {
	port := mustGetInt(cmd, "port")
	host := mustGetString(cmd, "host")

	ab, err := openAlbum(args[0], true)
	if err != nil {
		return err
	}
	defer ab.Close()

	if err := ab.syncAlbum(cmd.Context(), true); err != nil {
		return err
	}

	server := web.NewServer(ab.store, ab.matcher(), host, port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		fmt.Printf("Received %s, shutting down...\n", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	}
}
