package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/turnforge/gridclash/dispatcher"
	"github.com/turnforge/gridclash/internal/draft"
	"github.com/turnforge/gridclash/transport/ws"
)

var addr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the match server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on (env: GRIDCLASH_ADDR)")
	viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	listenAddr := addr
	if !cmd.Flags().Changed("addr") {
		if v := viper.GetString("addr"); v != "" {
			listenAddr = v
		}
	}

	d := dispatcher.New(draft.Default, slog.Default())
	mux := http.NewServeMux()
	mux.Handle("/ws", ws.NewHandler(d, slog.Default()))

	srv := &http.Server{Addr: listenAddr, Handler: mux}

	srvErr := make(chan error, 1)
	go func() {
		slog.Info("starting gridclash server", "addr", listenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-srvErr:
		return err
	case <-sigCh:
		slog.Info("shutting down gridclash server...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return err
		}
		slog.Info("gridclash server stopped.")
		return nil
	}
}
