/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/tieubaoca/litellm-chat/handler"
	"github.com/tieubaoca/litellm-chat/logging"
	"github.com/tieubaoca/litellm-chat/service"
)

const shutdownTimeout = 10 * time.Second

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the generation server",
	Long:  `Starts an HTTP server exposing POST /generate, POST /chat, GET /ws and GET /health`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.GetLogger()

		gin.SetMode(cfg.GinMode)
		gin.DefaultWriter = log.Writer()

		// built once, shared by every request
		generator, err := service.NewGenerator(cfg)
		if err != nil {
			return err
		}
		if closer, ok := generator.(io.Closer); ok {
			defer closer.Close()
		}

		server := &http.Server{
			Addr:              cfg.Address(),
			Handler:           handler.NewRouter(generator),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Infof("Starting server on %s with provider %s", server.Addr, cfg.Provider)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Infoln("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
}
