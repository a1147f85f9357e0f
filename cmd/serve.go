package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"id-reconciler/core/loader"
	"id-reconciler/core/logger"
	"id-reconciler/core/metrics"
	"id-reconciler/core/middleware/auth"
	"id-reconciler/core/middleware/rayid"
	"id-reconciler/feature/lookup"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd starts the lookup API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the lookup HTTP server",
	Long: `Starts the HTTP server exposing /lookup and the Prometheus metrics endpoint.
All requests share one resolver, so its cache and rate gate span the process lifetime.`,
	RunE: runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logg, err := loadRuntime()
	if err != nil {
		return err
	}
	defer logg.Sync()

	if err := cfg.Server.Validate(); err != nil {
		return err
	}

	m := metrics.New()
	resolver, err := newResolver(cfg.Lookup, logg, m)
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	mgr := loader.NewManager()
	mgr.Register(lookup.NewFeature(resolver, logg))

	// RayID first so every later log line carries it
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	if cfg.Server.MetricsPath != "" {
		app.Get(cfg.Server.MetricsPath, adaptor.HTTPHandler(m.Handler()))
	}

	app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: []string{cfg.Server.MetricsPath}}))

	if err := mgr.LoadAll(app); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("Starting server", zap.String("port", cfg.Server.Port))
		errCh <- app.Listen(":" + cfg.Server.Port)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case err := <-errCh:
		return err
	case <-sig:
	}

	logg.Info("Shutting down server...")
	return app.Shutdown()
}
