package commands

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"employee_management/routes"
	"employee_management/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Starts the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := routes.NewApp(app.Metrics, app.Registry)

			errCh := make(chan error, 1)
			go func() {
				utils.Logger.Info("Server starting", zap.String("port", app.Config.Port), zap.String("env", app.Config.Env))
				errCh <- server.Listen(":" + app.Config.Port)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			utils.Logger.Info("Shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := server.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return nil
		},
	}
}
