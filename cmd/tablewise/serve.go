package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tablewise/tablewise"
	"github.com/tablewise/tablewise/internal/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the CSV analysis JSON API",
	RunE: func(_ *cobra.Command, _ []string) error {
		// Optional .env for deployment settings; absence is fine
		_ = godotenv.Load()

		if addr := os.Getenv("TABLEWISE_ADDR"); addr != "" && serveAddr == defaultAddr {
			serveAddr = addr
		}

		store := tablewise.NewSessionStore()
		server := web.NewServer(store)

		errCh := make(chan error, 1)
		go func() {
			fmt.Printf("listening on %s\n", serveAddr)
			errCh <- server.Start(serveAddr)
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		case <-stop:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return err
			}
		}
		return nil
	},
}

const defaultAddr = ":8080"

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", defaultAddr, "listen address")
	rootCmd.AddCommand(serveCmd)
}
