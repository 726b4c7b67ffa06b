// cmd/ticketml/serve.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ticketml-service/internal/config"
	"ticketml-service/internal/driver"
	"ticketml-service/internal/routes"
	"ticketml-service/internal/service"
	"ticketml-service/internal/utils"
)

// Application represents the HTTP print server
type Application struct {
	config *config.Config
	logger *zap.Logger
	server *http.Server

	printService *service.PrintService
}

func newServeCmd(c *cli) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP print API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				c.config.Server.Port = port
			}
			app := NewApplication(c.config, c.logger, c.registry)
			return app.Start()
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (default from configuration)")
	return cmd
}

// NewApplication creates a new application instance
func NewApplication(cfg *config.Config, logger *zap.Logger, registry *driver.Registry) *Application {
	serviceLogger := utils.NewServiceLogger(logger, cfg.App.Name)
	serviceLogger.LogServiceStart(cfg.App.Version, cfg)

	app := &Application{
		config: cfg,
		logger: logger,
	}

	// Debug connections dump to stdout
	app.printService = service.NewPrintService(registry, &cfg.Printer, os.Stdout, logger)
	app.initializeServer()

	return app
}

// initializeServer sets up HTTP server and routes
func (app *Application) initializeServer() {
	routerManager := routes.NewRouter(app.config, app.logger, app.printService)
	router := routerManager.SetupRouter()

	app.server = &http.Server{
		Addr:         app.config.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  app.config.Server.ReadTimeout,
		WriteTimeout: app.config.Server.WriteTimeout,
		IdleTimeout:  app.config.Server.IdleTimeout,
	}

	app.logger.Info("HTTP server initialized",
		zap.String("address", app.config.GetServerAddr()),
		zap.String("backend", app.config.Printer.Backend),
		zap.String("connection", app.config.Printer.Connection),
	)
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully
func (app *Application) Start() error {
	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("Starting HTTP server",
			zap.String("address", app.server.Addr),
		)

		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		app.logger.Error("HTTP server failed", zap.Error(err))
		return err
	case sig := <-quit:
		app.logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	return app.shutdown()
}

// shutdown performs graceful shutdown
func (app *Application) shutdown() error {
	serviceLogger := utils.NewServiceLogger(app.logger, app.config.App.Name)
	serviceLogger.LogServiceStop("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("HTTP server shutdown error", zap.Error(err))
		return err
	}

	app.logger.Info("HTTP server stopped")
	return nil
}
