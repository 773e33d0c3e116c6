package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jassus213/go-unsplash/config"
	"github.com/jassus213/go-unsplash/internal/server"
	ginmw "github.com/jassus213/go-unsplash/middleware/gin"
)

func newServeCmd(cfgFile *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP proxy",
		Long: `Start the HTTP proxy with graceful shutdown support.

Routes under /api call Unsplash behind the rate limit gate. /ratelimit reports
the cached quota and /metrics exposes Prometheus metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgFile)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if !cfg.Logging.Development {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			srv := server.New(cfg.Server.Addr, server.Deps{
				Client:   a.client,
				Gate:     a.gate,
				Gatherer: a.registry,
				Logger:   a.logger,
			})

			a.logger.Info("Initializing server",
				zap.String("addr", cfg.Server.Addr),
				zap.String("middleware", ginmw.Name),
				zap.Bool("rate_limiting", cfg.RateLimiting.Enabled),
				zap.Int64("threshold", cfg.RateLimiting.Threshold))

			errChan := make(chan error, 1)
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errChan <- err
				}
			}()

			select {
			case err := <-errChan:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			a.logger.Info("HTTP server stopped gracefully")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
