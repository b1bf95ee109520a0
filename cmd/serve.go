package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsphweid/chordex/chord"
	"github.com/jsphweid/chordex/constants"
	"github.com/jsphweid/chordex/logger"
	"github.com/jsphweid/chordex/relay"
	"github.com/jsphweid/chordex/server"
	"github.com/spf13/cobra"
)

var servePort int

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", constants.GetPort(), "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the chord api and the multiplayer relay",
	Long: `Serves the chord api and the multiplayer relay.

  POST /analyze  {"notes": [60, 64, 67]}
  GET  /catalog
  GET  /_ws      websocket relay`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(servePort)
	},
}

func serve(port int) error {
	log := logger.GetLogger()
	analyzer := chord.NewAnalyzer(chord.DefaultCatalog())
	origins := constants.GetAllowedOrigins()
	hub := relay.NewHub(analyzer, relay.AllowOrigins(origins))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           server.NewRouter(analyzer, hub, origins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Info("http: listening", "addr", srv.Addr, "origins", origins)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("http: shutting down")
	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
