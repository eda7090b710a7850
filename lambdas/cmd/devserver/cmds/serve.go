package cmds

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sh3r4rd/survey_submissions/internal/config"
	"github.com/sh3r4rd/survey_submissions/internal/handler"
	"github.com/sh3r4rd/survey_submissions/internal/logger"
)

const shutdownTimeout = 10 * time.Second

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the function at " + handler.FunctionPath,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if port != "" {
			cfg.Server.Port = port
		}

		log := logger.New(cfg.Logging)
		return serve(cmd.Context(), cfg, log)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (overrides SURVEY_SERVER_PORT)")
	rootCmd.AddCommand(serveCmd)
}

func newEcho(h *handler.SubmissionHandler, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= http.StatusInternalServerError {
				event = log.Error()
			} else if v.Status >= http.StatusBadRequest {
				event = log.Warn()
			}
			event.
				Str("method", v.Method).
				Str("path", v.URIPath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("API")
			return nil
		},
	}))

	h.Register(e)
	return e
}

func serve(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	e := newEcho(handler.FromConfig(cfg, log), log)
	e.Debug = !cfg.IsProduction()

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Server.Port).
			Str("path", handler.FunctionPath).
			Msg("dev server listening")
		errCh <- e.Start(":" + cfg.Server.Port)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		log.Error().Err(err).Msg("dev server stopped")
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("dev server shutdown failed")
		return err
	}
	log.Info().Msg("dev server stopped")
	return nil
}
